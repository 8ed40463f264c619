package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("not found")

// CreateRun records the start of a run.
func CreateRun(db DBExecutor, id string, startedAt time.Time) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("run id must be non-empty")
	}
	_, err := db.Exec(
		`INSERT INTO runs (id, started_at, status) VALUES (?, ?, ?)`,
		id, startedAt.UTC(), StatusRunning,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FinishRun stamps a run with its final status.
func FinishRun(db DBExecutor, id, status string, finishedAt time.Time) error {
	res, err := db.Exec(
		`UPDATE runs SET status = ?, finished_at = ? WHERE id = ?`,
		status, finishedAt.UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetRun loads a run by id.
func GetRun(db DBExecutor, id string) (Run, error) {
	var r Run
	err := db.QueryRow(
		`SELECT id, started_at, finished_at, status FROM runs WHERE id = ?`, id,
	).Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Status)
	if err == sql.ErrNoRows {
		return Run{}, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	return r, nil
}

// CreateOrGetCollection returns the id of the run's collection for the
// language pair, inserting it if needed.
func CreateOrGetCollection(db DBExecutor, runID, known, target, filename string) (int64, error) {
	var id int64
	query := `INSERT INTO collections (run_id, known_language, target_language, filename)
			  VALUES (?, ?, ?, ?)
			  ON CONFLICT(run_id, known_language, target_language)
			  DO UPDATE SET filename = excluded.filename
			  RETURNING id`

	err := db.QueryRow(query, runID, known, target, filename).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert collection: %w", err)
	}
	return id, nil
}

// UpdateCollectionCount sets the number of pairs stored for a collection.
func UpdateCollectionCount(db DBExecutor, collectionID int64, count int) error {
	_, err := db.Exec(`UPDATE collections SET pair_count = ? WHERE id = ?`, count, collectionID)
	if err != nil {
		return fmt.Errorf("update collection count: %w", err)
	}
	return nil
}

// UpsertSentencePair stores one corpus line. Re-inserting the same pair id
// into a collection overwrites it.
func UpsertSentencePair(db DBExecutor, p SentencePair) error {
	_, err := db.Exec(
		`INSERT INTO sentence_pairs
			(collection_id, position, pair_id, target_sentence_id, known_text, target_text, complexity)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(collection_id, pair_id) DO UPDATE SET
			position = excluded.position,
			known_text = excluded.known_text,
			target_text = excluded.target_text,
			complexity = excluded.complexity`,
		p.CollectionID, p.Position, p.PairID, p.TargetSentenceID, p.KnownText, p.TargetText, p.Complexity,
	)
	if err != nil {
		return fmt.Errorf("upsert sentence pair %s: %w", p.PairID, err)
	}
	return nil
}

// GetCollectionsByRun returns a run's collections in insertion order.
func GetCollectionsByRun(db DBExecutor, runID string) ([]Collection, error) {
	rows, err := db.Query(
		`SELECT id, run_id, known_language, target_language, pair_count, filename
		 FROM collections WHERE run_id = ? ORDER BY id`, runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Collection
	for rows.Next() {
		var c Collection
		if err := rows.Scan(&c.ID, &c.RunID, &c.KnownLanguage, &c.TargetLanguage, &c.PairCount, &c.Filename); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetPairsByCollection returns a collection's pairs in corpus order.
func GetPairsByCollection(db DBExecutor, collectionID int64) ([]SentencePair, error) {
	rows, err := db.Query(
		`SELECT id, collection_id, position, pair_id, target_sentence_id, known_text, target_text, complexity
		 FROM sentence_pairs WHERE collection_id = ? ORDER BY position`, collectionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SentencePair
	for rows.Next() {
		var p SentencePair
		if err := rows.Scan(&p.ID, &p.CollectionID, &p.Position, &p.PairID, &p.TargetSentenceID, &p.KnownText, &p.TargetText, &p.Complexity); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
