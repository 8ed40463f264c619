package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/japaniel/sentencepairs/pkg/config"
	"github.com/japaniel/sentencepairs/pkg/logging"
)

// cli carries state shared by every subcommand once the root has loaded
// configuration.
type cli struct {
	configPath string
	cfg        *config.Config
	log        *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "sentencepairs",
		Short: "Build bilingual sentence-pair corpora from Tatoeba exports",
		Long: `sentencepairs matches Tatoeba sentences with their translations,
ranks each pair by how common its target-language words are and writes
one corpus file per language pair plus an info.json manifest.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			c.log = logging.New(cfg.Log)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a YAML config file (env vars override it)")

	rootCmd.AddCommand(
		newBuildCmd(c),
		newFetchCmd(c),
		newLanguagesCmd(c),
	)
	return rootCmd
}
