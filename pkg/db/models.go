package db

import (
	"database/sql"
	"time"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Run is one invocation of the corpus builder.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt sql.NullTime
	Status     string
}

// Collection is one corpus produced by a run.
type Collection struct {
	ID             int64
	RunID          string
	KnownLanguage  string
	TargetLanguage string
	PairCount      int
	Filename       string
}

// SentencePair is a stored corpus line. Position is its 0-based line number
// in the corpus file.
type SentencePair struct {
	ID               int64
	CollectionID     int64
	Position         int
	PairID           string
	TargetSentenceID int64
	KnownText        string
	TargetText       string
	Complexity       float64
}
