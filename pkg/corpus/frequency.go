package corpus

import "github.com/japaniel/sentencepairs/pkg/tokenize"

// WordCounter accumulates token counts from target-language sentences.
// Once Finalize is called the counter is spent and further Accumulate
// calls panic.
type WordCounter struct {
	tok       tokenize.Tokenizer
	counts    map[string]int
	finalized bool
}

// NewWordCounter returns an empty counter that splits text with tok.
func NewWordCounter(tok tokenize.Tokenizer) *WordCounter {
	return &WordCounter{tok: tok, counts: make(map[string]int)}
}

// Accumulate tokenizes text and counts every token occurrence, repeats
// included.
func (c *WordCounter) Accumulate(text string) {
	if c.finalized {
		panic("corpus: Accumulate called on a finalized WordCounter")
	}
	if text == "" {
		return
	}
	for _, token := range c.tok.Tokenize(text) {
		c.counts[token]++
	}
}

// Size returns the number of distinct tokens counted so far.
func (c *WordCounter) Size() int { return len(c.counts) }

// Finalize freezes the counts into a read-only FrequencyTable.
func (c *WordCounter) Finalize() *FrequencyTable {
	if c.finalized {
		panic("corpus: Finalize called twice")
	}
	c.finalized = true
	t := &FrequencyTable{tok: c.tok, counts: c.counts}
	c.counts = nil
	return t
}

// FrequencyTable is a finalized token count table. It is safe for
// concurrent reads.
type FrequencyTable struct {
	tok    tokenize.Tokenizer
	counts map[string]int
}

// FrequencyOf returns how often token occurred, 0 if never.
func (t *FrequencyTable) FrequencyOf(token string) int { return t.counts[token] }

// Size returns the number of distinct tokens.
func (t *FrequencyTable) Size() int { return len(t.counts) }

// Tokenizer returns the tokenizer the table was built with.
func (t *FrequencyTable) Tokenizer() tokenize.Tokenizer { return t.tok }
