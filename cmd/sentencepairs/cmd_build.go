package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/japaniel/sentencepairs/pkg/corpus"
	"github.com/japaniel/sentencepairs/pkg/db"
	"github.com/japaniel/sentencepairs/pkg/ingest"
	"github.com/japaniel/sentencepairs/pkg/language"
)

type buildFlags struct {
	sentences string
	links     string
	output    string
	store     string
	maxPairs  int
	workers   int
	download  bool
}

func newBuildCmd(c *cli) *cobra.Command {
	var f buildFlags

	cmd := &cobra.Command{
		Use:   "build [known-target ...]",
		Short: "Build corpora for the given language pairs (default: build.pairs from config)",
		Example: `  sentencepairs build eng-deu eng-ita
  sentencepairs build --max-pairs 500 --output out eng-jpn`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyBuildFlags(cmd, c, f)
			if f.download {
				if err := fetchExports(cmd.Context(), c, c.cfg.Sources); err != nil {
					return err
				}
			}
			requested := args
			if len(requested) == 0 {
				requested = c.cfg.Build.Pairs
			}
			return runBuild(cmd, c, requested)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.sentences, "sentences", "", "sentence export (overrides sources.sentences_path)")
	flags.StringVar(&f.links, "links", "", "link export (overrides sources.links_path)")
	flags.StringVar(&f.output, "output", "", "output directory (overrides output.dir)")
	flags.StringVar(&f.store, "store", "", "SQLite database to record the run in (overrides store.path)")
	flags.IntVar(&f.maxPairs, "max-pairs", 0, "maximum pairs per corpus (overrides build.max_pairs)")
	flags.IntVar(&f.workers, "workers", 0, "language pairs built concurrently (overrides build.workers)")
	flags.BoolVar(&f.download, "download", false, "download missing exports before building")
	return cmd
}

// applyBuildFlags lets explicitly set flags win over the loaded config.
func applyBuildFlags(cmd *cobra.Command, c *cli, f buildFlags) {
	changed := cmd.Flags().Changed
	if changed("sentences") {
		c.cfg.Sources.SentencesPath = f.sentences
	}
	if changed("links") {
		c.cfg.Sources.LinksPath = f.links
	}
	if changed("output") {
		c.cfg.Output.Dir = f.output
	}
	if changed("store") {
		c.cfg.Store.Path = f.store
	}
	if changed("max-pairs") && f.maxPairs > 0 {
		c.cfg.Build.MaxPairs = f.maxPairs
	}
	if changed("workers") && f.workers > 0 {
		c.cfg.Build.Workers = f.workers
	}
}

// parsePairs validates every requested pair before anything is written.
func parsePairs(requested []string) ([]corpus.Pair, error) {
	if len(requested) == 0 {
		return nil, fmt.Errorf("no language pairs requested")
	}
	pairs := make([]corpus.Pair, 0, len(requested))
	for _, s := range requested {
		p, err := corpus.ParsePair(s)
		if err != nil {
			return nil, err
		}
		for _, code := range []string{p.Known, p.Target} {
			if _, err := language.ByAbbrev(code); err != nil {
				return nil, err
			}
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

func runBuild(cmd *cobra.Command, c *cli, requested []string) (err error) {
	ctx := cmd.Context()
	cfg := c.cfg

	pairs, err := parsePairs(requested)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	b := &corpus.Builder{
		SentencesPath: cfg.Sources.SentencesPath,
		LinksPath:     cfg.Sources.LinksPath,
		OutputDir:     cfg.Output.Dir,
		MaxPairs:      cfg.Build.MaxPairs,
		ScoreWorkers:  cfg.Build.ScoreWorkers,
		Workers:       cfg.Build.Workers,
		Log:           c.log,
	}

	if cfg.Store.Path != "" {
		finish, storeErr := attachStore(c, b)
		if storeErr != nil {
			return storeErr
		}
		// err is the named result, so the run is marked failed on any return path.
		defer func() { finish(err) }()
	}

	start := time.Now()
	manifest, err := b.BuildAll(ctx, pairs)
	if err != nil {
		return err
	}

	manifestPath := filepath.Join(cfg.Output.Dir, cfg.Output.ManifestName)
	if err := corpus.WriteManifest(manifestPath, manifest); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, col := range manifest.SentencesCollections {
		fmt.Fprintf(out, "%s\t%d pairs\n", filepath.Join(cfg.Output.Dir, col.Filename), col.Count)
	}
	fmt.Fprintf(out, "manifest\t%s\n", manifestPath)

	c.log.Info("build complete",
		slog.Int("collections", len(manifest.SentencesCollections)),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

// attachStore opens the run database, records a new run and wires an
// ingester into b. The returned func records the run outcome and closes
// the database.
func attachStore(c *cli, b *corpus.Builder) (func(error), error) {
	conn, err := db.Open(c.cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	if err := db.CreateRun(conn, runID, time.Now()); err != nil {
		conn.Close()
		return nil, err
	}
	c.log.Info("recording run", slog.String("run_id", runID), slog.String("store", c.cfg.Store.Path))

	ig := ingest.NewIngester(conn, runID, c.log)
	ig.BatchSize = c.cfg.Store.BatchSize
	b.Sink = ig

	return func(buildErr error) {
		status := db.StatusSucceeded
		if buildErr != nil {
			status = db.StatusFailed
		}
		if err := db.FinishRun(conn, runID, status, time.Now()); err != nil {
			c.log.Error("failed to record run outcome", slog.String("run_id", runID), slog.Any("error", err))
		}
		conn.Close()
	}, nil
}
