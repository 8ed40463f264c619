package tokenize

import (
	"strings"
	"sync"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// posSymbol is the IPA part-of-speech label for punctuation and symbols.
const posSymbol = "記号"

// Japanese segments text with kagome and the IPA dictionary. Surfaces are
// kept as they appear (no lemmatization); symbols and whitespace are dropped.
type Japanese struct {
	t *tokenizer.Tokenizer
}

// NewJapanese loads the IPA dictionary. Loading is slow and memory heavy;
// prefer ForLanguage, which shares one instance.
func NewJapanese() (*Japanese, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Japanese{t: t}, nil
}

// Tokenize implements Tokenizer.
func (j *Japanese) Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	lower := cases.Lower(language.Japanese)

	var tokens []string
	for _, tok := range j.t.Tokenize(norm.NFC.String(text)) {
		if tok.Class == tokenizer.DUMMY {
			continue
		}
		if strings.TrimSpace(tok.Surface) == "" {
			continue
		}
		// Features()[0] is the primary part of speech.
		if features := tok.Features(); len(features) > 0 && features[0] == posSymbol {
			continue
		}
		tokens = append(tokens, lower.String(tok.Surface))
	}
	return tokens
}

var (
	japaneseOnce sync.Once
	japanese     *Japanese
	japaneseErr  error
)

func sharedJapanese() (*Japanese, error) {
	japaneseOnce.Do(func() {
		japanese, japaneseErr = NewJapanese()
	})
	return japanese, japaneseErr
}
