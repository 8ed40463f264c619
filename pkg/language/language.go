// Package language is the static registry of languages a corpus can be built for.
package language

import (
	"errors"
	"fmt"
)

// ErrUnknownLanguage is returned by ByAbbrev for codes missing from the registry.
var ErrUnknownLanguage = errors.New("unknown language")

// Language describes one registry entry.
type Language struct {
	Abbrev      string `json:"abbrev"` // ISO 639-3 code as used by Tatoeba
	Name        string `json:"name"`
	RightToLeft bool   `json:"rightToLeft"`
	// Tag is the BCP 47 tag used for case mapping. Not part of the manifest.
	Tag string `json:"-"`
}

var registry = []Language{
	{Abbrev: "ara", Name: "Arabic", Tag: "ar", RightToLeft: true},
	{Abbrev: "ces", Name: "Czech", Tag: "cs"},
	{Abbrev: "cmn", Name: "Chinese (Mandarin)", Tag: "zh"},
	{Abbrev: "dan", Name: "Danish", Tag: "da"},
	{Abbrev: "deu", Name: "German", Tag: "de"},
	{Abbrev: "ell", Name: "Greek", Tag: "el"},
	{Abbrev: "eng", Name: "English", Tag: "en"},
	{Abbrev: "epo", Name: "Esperanto", Tag: "eo"},
	{Abbrev: "fin", Name: "Finnish", Tag: "fi"},
	{Abbrev: "fra", Name: "French", Tag: "fr"},
	{Abbrev: "heb", Name: "Hebrew", Tag: "he", RightToLeft: true},
	{Abbrev: "hin", Name: "Hindi", Tag: "hi"},
	{Abbrev: "hrv", Name: "Croatian", Tag: "hr"},
	{Abbrev: "hun", Name: "Hungarian", Tag: "hu"},
	{Abbrev: "ita", Name: "Italian", Tag: "it"},
	{Abbrev: "jpn", Name: "Japanese", Tag: "ja"},
	{Abbrev: "kor", Name: "Korean", Tag: "ko"},
	{Abbrev: "nld", Name: "Dutch", Tag: "nl"},
	{Abbrev: "nob", Name: "Norwegian (Bokmål)", Tag: "nb"},
	{Abbrev: "pes", Name: "Persian", Tag: "fa", RightToLeft: true},
	{Abbrev: "pol", Name: "Polish", Tag: "pl"},
	{Abbrev: "por", Name: "Portuguese", Tag: "pt"},
	{Abbrev: "ron", Name: "Romanian", Tag: "ro"},
	{Abbrev: "rus", Name: "Russian", Tag: "ru"},
	{Abbrev: "slv", Name: "Slovenian", Tag: "sl"},
	{Abbrev: "spa", Name: "Spanish", Tag: "es"},
	{Abbrev: "swe", Name: "Swedish", Tag: "sv"},
	{Abbrev: "tur", Name: "Turkish", Tag: "tr"},
	{Abbrev: "ukr", Name: "Ukrainian", Tag: "uk"},
}

var byAbbrev = func() map[string]Language {
	m := make(map[string]Language, len(registry))
	for _, l := range registry {
		m[l.Abbrev] = l
	}
	return m
}()

// Languages returns a copy of the registry in stable (abbrev) order.
func Languages() []Language {
	out := make([]Language, len(registry))
	copy(out, registry)
	return out
}

// ByAbbrev looks up a language by its three-letter code.
func ByAbbrev(code string) (Language, error) {
	l, ok := byAbbrev[code]
	if !ok {
		return Language{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}
	return l, nil
}
