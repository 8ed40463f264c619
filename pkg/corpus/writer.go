package corpus

import (
	"bufio"
	"io"
	"strconv"

	"github.com/japaniel/sentencepairs/pkg/atomicfile"
)

// CorpusFilename is the file a (known, target) corpus is written to.
func CorpusFilename(known, target string) string {
	return known + "-" + target + ".csv"
}

// FormatComplexity renders a score with the shortest decimal that parses
// back to the same value.
func FormatComplexity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteCorpus writes pairs as pairId<TAB>knownText<TAB>targetText<TAB>complexity
// lines, one per pair. The file at path is replaced only once every line
// has been written.
func WriteCorpus(path string, pairs []SentencePair) error {
	return atomicfile.Write(path, func(w io.Writer) error {
		return EncodeCorpus(w, pairs)
	})
}

// EncodeCorpus writes the corpus lines for pairs to w.
func EncodeCorpus(w io.Writer, pairs []SentencePair) error {
	bw := bufio.NewWriter(w)
	for _, p := range pairs {
		bw.WriteString(p.PairID)
		bw.WriteByte('\t')
		bw.WriteString(p.KnownText)
		bw.WriteByte('\t')
		bw.WriteString(p.TargetText)
		bw.WriteByte('\t')
		bw.WriteString(FormatComplexity(p.Complexity))
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
