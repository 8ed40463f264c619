// Package tokenize splits sentence text into normalized word tokens.
//
// The same Tokenizer must be used when counting word frequencies and when
// scoring sentences, otherwise lookups silently degrade to zero. All
// tokenizers in this package are safe for concurrent use.
package tokenize

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Tokenizer maps a sentence to an ordered sequence of normalized tokens.
// Repeated words are returned once per occurrence.
type Tokenizer interface {
	Tokenize(text string) []string
}

// Unicode is a script-agnostic tokenizer. Text is NFC-normalized and
// lowercased with the case rules of its language; a word is a run of
// letters, combining marks and digits. An apostrophe between a word and a
// following letter stays inside the word ("don't"). Han, Hiragana and
// Katakana runes are emitted as single-rune tokens since those scripts do
// not separate words with spaces.
type Unicode struct {
	tag language.Tag
}

// NewUnicode returns a tokenizer lowercasing with the rules of tag.
func NewUnicode(tag language.Tag) *Unicode {
	return &Unicode{tag: tag}
}

// Tokenize implements Tokenizer.
func (u *Unicode) Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	// A Caser keeps state between calls, so each call gets its own.
	runes := []rune(cases.Lower(u.tag).String(norm.NFC.String(text)))

	var tokens []string
	start := -1
	flush := func(end int) {
		if start >= 0 {
			tokens = append(tokens, string(runes[start:end]))
			start = -1
		}
	}

	for i, r := range runes {
		switch {
		case isUnspaced(r):
			flush(i)
			tokens = append(tokens, string(r))
		case isWordRune(r):
			if start < 0 {
				start = i
			}
		case isApostrophe(r) && start >= 0 && i+1 < len(runes) &&
			unicode.IsLetter(runes[i+1]) && !isUnspaced(runes[i+1]):
			// keep inside the word
		default:
			flush(i)
		}
	}
	flush(len(runes))
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r)
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’' || r == 'ʼ'
}

func isUnspaced(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana)
}
