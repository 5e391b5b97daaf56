package rag

// Corpus identifies one of the three priority-ordered knowledge bases.
type Corpus string

const (
	CorpusWorldview  Corpus = "worldview"
	CorpusCurriculum Corpus = "curriculum"
	CorpusScripture  Corpus = "scripture"
)

// Document is one indexed chunk of source text. A document belongs to
// exactly one corpus and is immutable after the index is built.
type Document struct {
	ID      string
	Content string
	Source  string // originating file name
	Corpus  Corpus
}

// Match pairs a retrieved document with its similarity score.
type Match struct {
	Document Document
	Score    float64
}

// Result holds the per-corpus matches for a single query. Corpora that
// failed to build or to search contribute an empty slice.
type Result struct {
	Worldview  []Match
	Curriculum []Match
	Scripture  []Match
}
