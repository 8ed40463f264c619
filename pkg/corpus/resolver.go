package corpus

import (
	"fmt"

	"github.com/japaniel/sentencepairs/pkg/tatoeba"
)

// SentencePair is a known-language sentence matched with its
// target-language translation.
type SentencePair struct {
	PairID           string
	TargetSentenceID int64
	KnownText        string
	TargetText       string
	Complexity       float64
}

// PairID formats the identifier of the pair built from targetID.
func PairID(known, target string, targetID int64) string {
	return fmt.Sprintf("%s-%s-%d", known, target, targetID)
}

// ResolveStats counts what happened to the links offered to a Resolver.
type ResolveStats struct {
	Links      int
	Consumed   int // skipped because one side was already paired
	Unresolved int // one side missing from its index
	Accepted   int
}

// Resolver turns links into sentence pairs. Each sentence id takes part in
// at most one pair: the first link that resolves claims both of its ids.
//
// A link (a, b) resolves only when a is in the known index and b is in the
// target index. Links stored in the opposite direction are not flipped.
type Resolver struct {
	known, target         *SentenceIndex
	knownLang, targetLang string

	consumed map[int64]struct{}
	pairs    []SentencePair
	stats    ResolveStats
}

func NewResolver(known, target *SentenceIndex, knownLang, targetLang string) *Resolver {
	return &Resolver{
		known:      known,
		target:     target,
		knownLang:  knownLang,
		targetLang: targetLang,
		consumed:   make(map[int64]struct{}),
	}
}

// Offer considers one link and reports whether it produced a pair.
func (r *Resolver) Offer(l tatoeba.Link) bool {
	r.stats.Links++

	if r.isConsumed(l.SentenceID1) || r.isConsumed(l.SentenceID2) {
		r.stats.Consumed++
		return false
	}

	knownSentence, ok1 := r.known.Get(l.SentenceID1)
	targetSentence, ok2 := r.target.Get(l.SentenceID2)
	if !ok1 || !ok2 {
		r.stats.Unresolved++
		return false
	}

	r.consumed[l.SentenceID1] = struct{}{}
	r.consumed[l.SentenceID2] = struct{}{}
	r.pairs = append(r.pairs, SentencePair{
		PairID:           PairID(r.knownLang, r.targetLang, targetSentence.ID),
		TargetSentenceID: targetSentence.ID,
		KnownText:        knownSentence.Text,
		TargetText:       targetSentence.Text,
	})
	r.stats.Accepted++
	return true
}

func (r *Resolver) isConsumed(id int64) bool {
	_, ok := r.consumed[id]
	return ok
}

// Pairs returns the accepted pairs in the order their links were offered.
func (r *Resolver) Pairs() []SentencePair { return r.pairs }

func (r *Resolver) Stats() ResolveStats { return r.stats }
