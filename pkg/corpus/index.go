package corpus

// Sentence is a single sentence of one language.
type Sentence struct {
	ID   int64
	Text string
}

// SentenceIndex maps sentence ids to sentences of a single language.
type SentenceIndex struct {
	byID map[int64]Sentence
}

func NewSentenceIndex() *SentenceIndex {
	return &SentenceIndex{byID: make(map[int64]Sentence)}
}

// Add stores s, replacing any earlier sentence with the same id.
func (idx *SentenceIndex) Add(s Sentence) { idx.byID[s.ID] = s }

func (idx *SentenceIndex) Get(id int64) (Sentence, bool) {
	s, ok := idx.byID[id]
	return s, ok
}

func (idx *SentenceIndex) Len() int { return len(idx.byID) }
