package tatoeba

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSentences(t *testing.T) {
	input := strings.Join([]string{
		"1\teng\tI eat",
		"2\tdeu\tIch esse\tuser\t2020-01-01\t2020-01-02",
		"",
		"x\teng\tnot a number",
		"3\tita",
		"4\tspa\tComo\r",
		"5\tfra\t",
	}, "\n")

	var got []SentenceRecord
	stats, err := ReadSentences(strings.NewReader(input), func(r SentenceRecord) error {
		got = append(got, r)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []SentenceRecord{
		{ID: 1, Lang: "eng", Text: "I eat"},
		{ID: 2, Lang: "deu", Text: "Ich esse"},
		{ID: 4, Lang: "spa", Text: "Como"},
		{ID: 5, Lang: "fra", Text: ""},
	}, got)
	assert.Equal(t, Stats{Lines: 7, Skipped: 2}, stats)
}

func TestReadLinks(t *testing.T) {
	input := "1\t2\n2\t1\n\n7\n8\tnine\n10\t11\textra\n"

	var got []Link
	stats, err := ReadLinks(strings.NewReader(input), func(l Link) error {
		got = append(got, l)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []Link{{1, 2}, {2, 1}, {10, 11}}, got)
	assert.Equal(t, Stats{Lines: 6, Skipped: 2}, stats)
}

func TestReadStopsOnCallbackError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	_, err := ReadLinks(strings.NewReader("1\t2\n3\t4\n"), func(Link) error {
		calls++
		return stop
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestReadRejectsOverlongLine(t *testing.T) {
	line := "1\teng\t" + strings.Repeat("a", maxLineSize+1)
	_, err := ReadSentences(strings.NewReader(line), func(SentenceRecord) error { return nil })
	assert.Error(t, err)
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	sentences := filepath.Join(dir, "sentences.csv")
	links := filepath.Join(dir, "links.csv")
	require.NoError(t, os.WriteFile(sentences, []byte("1\teng\tHi\n"), 0o644))
	require.NoError(t, os.WriteFile(links, []byte("1\t2\n"), 0o644))

	n := 0
	_, err := ReadSentencesFile(sentences, func(SentenceRecord) error { n++; return nil })
	require.NoError(t, err)
	_, err = ReadLinksFile(links, func(Link) error { n++; return nil })
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = ReadSentencesFile(filepath.Join(dir, "missing.csv"), func(SentenceRecord) error { return nil })
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = ReadLinksFile(filepath.Join(dir, "missing.csv"), func(Link) error { return nil })
	assert.ErrorIs(t, err, os.ErrNotExist)
}
