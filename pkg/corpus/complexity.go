package corpus

import "context"

// ComplexityThreshold is the sentence length, in tokens, above which longer
// sentences are scored proportionally higher.
const ComplexityThreshold = 6

// Score computes the complexity of a target-language sentence: the average
// corpus frequency of its tokens, scaled by n/ComplexityThreshold when the
// sentence has more than ComplexityThreshold tokens. A sentence without
// tokens scores 0.
func Score(text string, table *FrequencyTable) float64 {
	tokens := table.Tokenizer().Tokenize(text)
	n := len(tokens)
	if n == 0 {
		return 0
	}

	sum := 0
	for _, token := range tokens {
		sum += table.FrequencyOf(token)
	}
	avg := float64(sum) / float64(n)

	if n > ComplexityThreshold {
		return avg * float64(n) / ComplexityThreshold
	}
	return avg
}

// scoreChunk is the number of pairs one pool job scores.
const scoreChunk = 512

// ScoreAll sets Complexity on every pair in place. Pairs are split into
// disjoint chunks scored by up to workers goroutines.
func ScoreAll(ctx context.Context, pairs []SentencePair, table *FrequencyTable, workers int) error {
	if workers <= 1 || len(pairs) <= scoreChunk {
		for i := range pairs {
			pairs[i].Complexity = Score(pairs[i].TargetText, table)
		}
		return ctx.Err()
	}

	pool := NewWorkerPool(workers, workers*2)
	pool.Start(ctx)
	for start := 0; start < len(pairs); start += scoreChunk {
		chunk := pairs[start:min(start+scoreChunk, len(pairs))]
		err := pool.Submit(func(ctx context.Context) error {
			for i := range chunk {
				chunk[i].Complexity = Score(chunk[i].TargetText, table)
			}
			return nil
		})
		if err != nil {
			pool.Close()
			return err
		}
	}
	return pool.Close()
}
