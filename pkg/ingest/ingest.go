// Package ingest persists built corpora into the SQLite store through a
// batched transactional writer.
package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/japaniel/sentencepairs/pkg/corpus"
	"github.com/japaniel/sentencepairs/pkg/db"
)

// Ingester stores the collections of one run. It implements corpus.Sink.
type Ingester struct {
	DB        *sql.DB
	RunID     string
	BatchSize int
	Logger    *slog.Logger
	// OnProgress is called with the number of pairs submitted so far and
	// the collection total.
	OnProgress func(collection string, current, total int)

	// SQLite allows one writer; collections are persisted one at a time.
	mu sync.Mutex
}

// NewIngester creates an Ingester for runID.
func NewIngester(conn *sql.DB, runID string, logger *slog.Logger) *Ingester {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingester{
		DB:        conn,
		RunID:     runID,
		BatchSize: 500,
		Logger:    logger,
	}
}

var _ corpus.Sink = (*Ingester)(nil)

// Persist stores c and its pairs in corpus order, then records the pair
// count on the collection. Re-persisting a collection overwrites its pairs.
func (ig *Ingester) Persist(ctx context.Context, c corpus.SentenceCollection, pairs []corpus.SentencePair) error {
	ig.mu.Lock()
	defer ig.mu.Unlock()

	start := time.Now()
	collectionID, err := db.CreateOrGetCollection(ig.DB, ig.RunID, c.KnownLanguage, c.TargetLanguage, c.Filename)
	if err != nil {
		return err
	}

	bw := NewBatchWriter(ctx, ig.DB, BatchOptions{
		Size:          ig.BatchSize,
		FlushInterval: time.Second,
		Logger:        ig.Logger,
	})

	name := corpus.CorpusFilename(c.KnownLanguage, c.TargetLanguage)
	for i, p := range pairs {
		if err := ctx.Err(); err != nil {
			_ = bw.Close()
			return err
		}
		rec := db.SentencePair{
			CollectionID:     collectionID,
			Position:         i,
			PairID:           p.PairID,
			TargetSentenceID: p.TargetSentenceID,
			KnownText:        p.KnownText,
			TargetText:       p.TargetText,
			Complexity:       p.Complexity,
		}
		err := bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
			return db.UpsertSentencePair(tx, rec)
		})
		if err != nil {
			_ = bw.Close()
			return err
		}
		if ig.OnProgress != nil && ig.BatchSize > 0 && (i+1)%ig.BatchSize == 0 {
			ig.OnProgress(name, i+1, len(pairs))
		}
	}
	if err := bw.Close(); err != nil {
		return fmt.Errorf("store pairs for %s: %w", name, err)
	}
	if ig.OnProgress != nil {
		ig.OnProgress(name, len(pairs), len(pairs))
	}

	if err := db.UpdateCollectionCount(ig.DB, collectionID, len(pairs)); err != nil {
		return err
	}

	stats := bw.Stats()
	ig.Logger.Info("collection stored",
		slog.String("run_id", ig.RunID),
		slog.String("collection", name),
		slog.Int("pairs", stats.Writes),
		slog.Int("batches", stats.Batches),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}
