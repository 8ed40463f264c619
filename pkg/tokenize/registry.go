package tokenize

import (
	"fmt"

	textlang "golang.org/x/text/language"

	"github.com/japaniel/sentencepairs/pkg/language"
)

// ForLanguage returns the tokenizer used for sentences written in l.
func ForLanguage(l language.Language) (Tokenizer, error) {
	if l.Abbrev == "jpn" {
		j, err := sharedJapanese()
		if err != nil {
			return nil, fmt.Errorf("load japanese tokenizer: %w", err)
		}
		return j, nil
	}

	tag, err := textlang.Parse(l.Tag)
	if err != nil {
		return nil, fmt.Errorf("language %s: parse tag %q: %w", l.Abbrev, l.Tag, err)
	}
	return NewUnicode(tag), nil
}
