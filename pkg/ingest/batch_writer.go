package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// WriteFunc performs database writes inside a batch transaction.
type WriteFunc func(ctx context.Context, tx *sql.Tx) error

// BatchOptions tunes a BatchWriter.
type BatchOptions struct {
	// Size flushes the buffer once it holds this many writes.
	Size int
	// FlushInterval also flushes on a timer. Zero disables it.
	FlushInterval time.Duration
	Logger        *slog.Logger
}

// BatchStats reports what a BatchWriter committed.
type BatchStats struct {
	Batches int
	Writes  int
}

// BatchWriter buffers writes and commits them in batches, one transaction
// per batch. A failing write rolls back its whole batch. The first
// asynchronous error is returned by Close.
type BatchWriter struct {
	mu     sync.Mutex
	buf    []WriteFunc
	size   int
	ticker *time.Ticker
	closed bool
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	log    *slog.Logger

	commitCh chan []WriteFunc
	db       *sql.DB
	OnError  func(error)

	errMu   sync.Mutex
	lastErr error
	stats   BatchStats
}

// NewBatchWriter starts a writer committing to db. Cancelling ctx stops
// further batches from being queued; queued batches are reported as
// dropped.
func NewBatchWriter(ctx context.Context, db *sql.DB, opts BatchOptions) *BatchWriter {
	if opts.Size <= 0 {
		opts.Size = 100
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(ctx)
	bw := &BatchWriter{
		buf:      make([]WriteFunc, 0, opts.Size),
		size:     opts.Size,
		ctx:      ctx,
		cancel:   cancel,
		log:      opts.Logger,
		commitCh: make(chan []WriteFunc, 2),
		db:       db,
	}

	bw.wg.Add(1)
	go bw.committer()

	if opts.FlushInterval > 0 {
		bw.ticker = time.NewTicker(opts.FlushInterval)
		bw.wg.Add(1)
		go bw.loop()
	}
	return bw
}

// Submit enqueues a write.
func (bw *BatchWriter) Submit(w WriteFunc) error {
	bw.mu.Lock()
	defer bw.mu.Unlock()
	if bw.closed {
		return ErrBatchWriterClosed
	}
	bw.buf = append(bw.buf, w)
	if len(bw.buf) >= bw.size {
		bw.flushLocked()
	}
	return nil
}

// flushLocked assumes bw.mu is held. A full commit queue blocks the caller.
func (bw *BatchWriter) flushLocked() {
	if len(bw.buf) == 0 {
		return
	}
	batch := bw.buf
	bw.buf = make([]WriteFunc, 0, bw.size)

	select {
	case bw.commitCh <- batch:
	case <-bw.ctx.Done():
		bw.fail(fmt.Errorf("batch writer: dropping batch of %d writes: %w", len(batch), bw.ctx.Err()))
	}
}

func (bw *BatchWriter) fail(err error) {
	bw.errMu.Lock()
	if bw.lastErr == nil {
		bw.lastErr = err
	}
	bw.errMu.Unlock()
	bw.log.Error("batch write failed", slog.Any("error", err))
	if bw.OnError != nil {
		bw.OnError(err)
	}
}

func (bw *BatchWriter) committer() {
	defer bw.wg.Done()
	for batch := range bw.commitCh {
		if err := bw.executeBatch(batch); err != nil {
			bw.fail(err)
			continue
		}
		bw.errMu.Lock()
		bw.stats.Batches++
		bw.stats.Writes += len(batch)
		bw.errMu.Unlock()
	}
}

func (bw *BatchWriter) executeBatch(batch []WriteFunc) error {
	// Without a database the writes run with a nil tx.
	if bw.db == nil {
		for _, w := range batch {
			if err := w(bw.ctx, nil); err != nil {
				return err
			}
		}
		return nil
	}

	// Batches already queued are committed even while closing.
	ctx := context.WithoutCancel(bw.ctx)

	tx, err := bw.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // ignored if committed
	}()

	for _, w := range batch {
		if err := w(ctx, tx); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch (%d writes): %w", len(batch), err)
	}
	return nil
}

func (bw *BatchWriter) loop() {
	defer bw.wg.Done()
	for {
		select {
		case <-bw.ctx.Done():
			return
		case <-bw.ticker.C:
			bw.mu.Lock()
			bw.flushLocked()
			bw.mu.Unlock()
		}
	}
}

// Stats returns the committed batch and write counts so far.
func (bw *BatchWriter) Stats() BatchStats {
	bw.errMu.Lock()
	defer bw.errMu.Unlock()
	return bw.stats
}

// Close flushes what is buffered, waits for pending commits and returns
// the first error seen.
func (bw *BatchWriter) Close() error {
	bw.mu.Lock()
	if bw.closed {
		bw.mu.Unlock()
		return ErrBatchWriterClosed
	}
	bw.closed = true
	if bw.ticker != nil {
		bw.ticker.Stop()
	}
	bw.flushLocked()
	bw.mu.Unlock()

	bw.cancel()
	close(bw.commitCh)
	bw.wg.Wait()

	bw.errMu.Lock()
	defer bw.errMu.Unlock()
	return bw.lastErr
}

var ErrBatchWriterClosed = &BatchWriterError{"batch writer closed"}

type BatchWriterError struct{ msg string }

func (e *BatchWriterError) Error() string { return e.msg }
