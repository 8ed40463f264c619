package corpus

import (
	"encoding/json"
	"io"

	"github.com/japaniel/sentencepairs/pkg/atomicfile"
	"github.com/japaniel/sentencepairs/pkg/language"
)

// SentenceCollection summarizes one written corpus file.
type SentenceCollection struct {
	KnownLanguage  string `json:"knownLanguage"`
	TargetLanguage string `json:"targetLanguage"`
	Count          int    `json:"count"`
	Filename       string `json:"filename"`
}

// Manifest lists the supported languages and every corpus produced by a run.
type Manifest struct {
	Languages            []language.Language  `json:"languages"`
	SentencesCollections []SentenceCollection `json:"sentencesCollections"`
}

// NewManifest returns a manifest over the full language registry.
func NewManifest(collections []SentenceCollection) Manifest {
	if collections == nil {
		collections = []SentenceCollection{}
	}
	return Manifest{
		Languages:            language.Languages(),
		SentencesCollections: collections,
	}
}

// WriteManifest atomically writes m as indented JSON to path.
func WriteManifest(path string, m Manifest) error {
	return atomicfile.Write(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	})
}
