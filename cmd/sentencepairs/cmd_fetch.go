package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/japaniel/sentencepairs/pkg/config"
	"github.com/japaniel/sentencepairs/pkg/tatoeba"
)

func newFetchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download the Tatoeba sentence and link exports if they are missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := fetchExports(cmd.Context(), c, c.cfg.Sources); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sentences: %s\nlinks: %s\n", c.cfg.Sources.SentencesPath, c.cfg.Sources.LinksPath)
			return nil
		},
	}
}

// fetchExports makes sure both export files exist locally.
func fetchExports(ctx context.Context, c *cli, src config.SourcesConfig) error {
	d := tatoeba.NewDownloader(c.log, src.DownloadTimeout)
	base := strings.TrimSuffix(src.BaseURL, "/")

	exports := []struct{ archive, path string }{
		{tatoeba.SentencesArchive, src.SentencesPath},
		{tatoeba.LinksArchive, src.LinksPath},
	}
	for _, e := range exports {
		if err := os.MkdirAll(filepath.Dir(e.path), 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", e.path, err)
		}
		if err := d.Ensure(ctx, base+"/"+e.archive, e.path); err != nil {
			return err
		}
	}
	return nil
}
