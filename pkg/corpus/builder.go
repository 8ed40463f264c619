// Package corpus builds bilingual sentence-pair corpora from Tatoeba exports.
//
// A build for one (known, target) language pair makes a single pass over the
// sentence export to count target-language word frequencies and index the
// sentences of both languages, then a single pass over the link export to
// match them into pairs. Pairs are scored, sorted by target sentence id,
// truncated and written as a tab-separated corpus file.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/japaniel/sentencepairs/pkg/language"
	"github.com/japaniel/sentencepairs/pkg/tatoeba"
	"github.com/japaniel/sentencepairs/pkg/tokenize"
)

// DefaultMaxPairs caps the number of pairs written per corpus.
const DefaultMaxPairs = 15000

// ErrInvalidPair is returned by ParsePair for malformed pair specs.
var ErrInvalidPair = errors.New("invalid language pair")

// Pair names a (known, target) build request by language code.
type Pair struct {
	Known  string
	Target string
}

func (p Pair) String() string { return p.Known + "-" + p.Target }

// ParsePair parses "known-target", e.g. "eng-deu".
func ParsePair(s string) (Pair, error) {
	known, target, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok || known == "" || target == "" || strings.Contains(target, "-") {
		return Pair{}, fmt.Errorf("%w: %q", ErrInvalidPair, s)
	}
	return Pair{Known: known, Target: target}, nil
}

// Sink receives every built corpus. Implementations persist it elsewhere.
type Sink interface {
	Persist(ctx context.Context, c SentenceCollection, pairs []SentencePair) error
}

// Builder builds corpora from a pair of export files.
type Builder struct {
	SentencesPath string
	LinksPath     string
	OutputDir     string

	// MaxPairs caps each corpus; zero means DefaultMaxPairs.
	MaxPairs int
	// ScoreWorkers is the number of goroutines scoring one corpus.
	ScoreWorkers int
	// Workers is the number of language pairs BuildAll builds at once.
	Workers int

	Log  *slog.Logger
	Sink Sink // optional
}

func (b *Builder) maxPairs() int {
	if b.MaxPairs <= 0 {
		return DefaultMaxPairs
	}
	return b.MaxPairs
}

func (b *Builder) logger() *slog.Logger {
	if b.Log == nil {
		return slog.Default()
	}
	return b.Log
}

// ctxCheckEvery is how many records are read between context checks.
const ctxCheckEvery = 4096

// Build produces the corpus for one language pair and returns its summary.
// All state is local to the call, so concurrent builds share nothing.
func (b *Builder) Build(ctx context.Context, p Pair) (SentenceCollection, error) {
	start := time.Now()
	log := b.logger().With(slog.String("pair", p.String()))

	known, err := language.ByAbbrev(p.Known)
	if err != nil {
		return SentenceCollection{}, err
	}
	target, err := language.ByAbbrev(p.Target)
	if err != nil {
		return SentenceCollection{}, err
	}
	tok, err := tokenize.ForLanguage(target)
	if err != nil {
		return SentenceCollection{}, err
	}

	counter := NewWordCounter(tok)
	knownIdx := NewSentenceIndex()
	targetIdx := NewSentenceIndex()

	seen := 0
	sentenceStats, err := tatoeba.ReadSentencesFile(b.SentencesPath, func(r tatoeba.SentenceRecord) error {
		if seen++; seen%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if r.Lang == target.Abbrev {
			counter.Accumulate(r.Text)
			targetIdx.Add(Sentence{ID: r.ID, Text: r.Text})
		}
		if r.Lang == known.Abbrev {
			knownIdx.Add(Sentence{ID: r.ID, Text: r.Text})
		}
		return nil
	})
	if err != nil {
		return SentenceCollection{}, err
	}
	if sentenceStats.Skipped > 0 {
		log.Warn("skipped malformed sentence lines", slog.Int("skipped", sentenceStats.Skipped))
	}
	table := counter.Finalize()
	log.Info("indexed sentences",
		slog.Int("known", knownIdx.Len()),
		slog.Int("target", targetIdx.Len()),
		slog.Int("distinct_tokens", table.Size()),
	)

	resolver := NewResolver(knownIdx, targetIdx, known.Abbrev, target.Abbrev)
	seen = 0
	linkStats, err := tatoeba.ReadLinksFile(b.LinksPath, func(l tatoeba.Link) error {
		if seen++; seen%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		resolver.Offer(l)
		return nil
	})
	if err != nil {
		return SentenceCollection{}, err
	}
	if linkStats.Skipped > 0 {
		log.Warn("skipped malformed link lines", slog.Int("skipped", linkStats.Skipped))
	}
	rs := resolver.Stats()
	log.Info("resolved links",
		slog.Int("links", rs.Links),
		slog.Int("accepted", rs.Accepted),
		slog.Int("consumed", rs.Consumed),
		slog.Int("unresolved", rs.Unresolved),
	)

	pairs := resolver.Pairs()
	if err := ScoreAll(ctx, pairs, table, b.ScoreWorkers); err != nil {
		return SentenceCollection{}, fmt.Errorf("score %s: %w", p, err)
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].TargetSentenceID < pairs[j].TargetSentenceID
	})
	if len(pairs) > b.maxPairs() {
		pairs = pairs[:b.maxPairs()]
	}

	c := SentenceCollection{
		KnownLanguage:  known.Abbrev,
		TargetLanguage: target.Abbrev,
		Count:          len(pairs),
		Filename:       CorpusFilename(known.Abbrev, target.Abbrev),
	}
	if err := WriteCorpus(filepath.Join(b.OutputDir, c.Filename), pairs); err != nil {
		return SentenceCollection{}, fmt.Errorf("write corpus %s: %w", c.Filename, err)
	}
	if b.Sink != nil {
		if err := b.Sink.Persist(ctx, c, pairs); err != nil {
			return SentenceCollection{}, fmt.Errorf("persist %s: %w", p, err)
		}
	}

	log.Info("corpus written",
		slog.String("file", c.Filename),
		slog.Int("count", c.Count),
		slog.Duration("duration", time.Since(start)),
	)
	return c, nil
}

// BuildAll builds every requested pair and returns the manifest listing
// their collections in request order. The first failure cancels the
// remaining builds and is returned.
func (b *Builder) BuildAll(ctx context.Context, pairs []Pair) (Manifest, error) {
	collections := make([]SentenceCollection, len(pairs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(b.Workers, 1))
	for i, p := range pairs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := b.Build(ctx, p)
			if err != nil {
				return fmt.Errorf("build %s: %w", p, err)
			}
			collections[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Manifest{}, err
	}
	return NewManifest(collections), nil
}
