// Package tatoeba reads the tab-separated sentence and link exports
// published by Tatoeba (sentences_detailed.csv, links.csv).
//
// Malformed lines are skipped and counted rather than failing the read, so a
// handful of irregular rows in a multi-million line export does not abort a
// build. Read errors and callback errors stop the read and are returned.
package tatoeba

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// maxLineSize bounds a single line; sentences are far shorter in practice.
const maxLineSize = 1024 * 1024

// SentenceRecord is one row of the sentence export.
type SentenceRecord struct {
	ID   int64
	Lang string
	Text string
}

// Link asserts that two sentence ids are translations of each other.
// Nothing is guaranteed about their languages or order.
type Link struct {
	SentenceID1 int64
	SentenceID2 int64
}

// Stats counts what a read saw.
type Stats struct {
	Lines   int // all lines, including blank and skipped ones
	Skipped int // malformed lines
}

// ReadSentences parses lines of the form id<TAB>lang<TAB>text[<TAB>...] and
// calls fn for each well-formed record in file order.
func ReadSentences(r io.Reader, fn func(SentenceRecord) error) (Stats, error) {
	return scanLines(r, func(line string, stats *Stats) error {
		fields := strings.SplitN(line, "\t", 4)
		if len(fields) < 3 {
			stats.Skipped++
			return nil
		}
		id, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			stats.Skipped++
			return nil
		}
		return fn(SentenceRecord{ID: id, Lang: fields[1], Text: fields[2]})
	})
}

// ReadLinks parses lines of the form id1<TAB>id2 and calls fn for each link
// in file order.
func ReadLinks(r io.Reader, fn func(Link) error) (Stats, error) {
	return scanLines(r, func(line string, stats *Stats) error {
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			stats.Skipped++
			return nil
		}
		id1, err1 := strconv.ParseInt(fields[0], 10, 64)
		id2, err2 := strconv.ParseInt(fields[1], 10, 64)
		if err1 != nil || err2 != nil {
			stats.Skipped++
			return nil
		}
		return fn(Link{SentenceID1: id1, SentenceID2: id2})
	})
}

// ReadSentencesFile opens path and runs ReadSentences over it.
func ReadSentencesFile(path string, fn func(SentenceRecord) error) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("open sentences: %w", err)
	}
	defer f.Close()

	stats, err := ReadSentences(f, fn)
	if err != nil {
		return stats, fmt.Errorf("read sentences %s: %w", path, err)
	}
	return stats, nil
}

// ReadLinksFile opens path and runs ReadLinks over it.
func ReadLinksFile(path string, fn func(Link) error) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("open links: %w", err)
	}
	defer f.Close()

	stats, err := ReadLinks(f, fn)
	if err != nil {
		return stats, fmt.Errorf("read links %s: %w", path, err)
	}
	return stats, nil
}

func scanLines(r io.Reader, handle func(line string, stats *Stats) error) (Stats, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var stats Stats
	for scanner.Scan() {
		stats.Lines++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if err := handle(line, &stats); err != nil {
			return stats, err
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("scanner error: %w", err)
	}
	return stats, nil
}
