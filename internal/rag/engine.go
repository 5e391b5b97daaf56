package rag

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Limits fixes how many matches each corpus contributes per query.
type Limits struct {
	Worldview  int
	Curriculum int
	Scripture  int
}

func DefaultLimits() Limits {
	return Limits{
		Worldview:  2,
		Curriculum: 3,
		Scripture:  1,
	}
}

// Config locates the three knowledge base directories and sets the chunking
// constants used at build time.
type Config struct {
	WorldviewDir  string
	CurriculumDir string
	ScriptureDir  string
	ChunkSize     int
	ChunkOverlap  int
	Limits        Limits
}

func DefaultConfig() Config {
	return Config{
		WorldviewDir:  "knowledge_base/biblical_worldview",
		CurriculumDir: "knowledge_base/curricula",
		ScriptureDir:  "knowledge_base/scripture",
		ChunkSize:     1000,
		ChunkOverlap:  200,
		Limits:        DefaultLimits(),
	}
}

// Engine retrieves context from the three corpora in priority order:
// worldview first, then curriculum, then scripture. Indices are built once
// by NewEngine and never mutated, so Retrieve is safe for concurrent use.
type Engine struct {
	embedder   Embedder
	limits     Limits
	worldview  *CorpusIndex
	curriculum *CorpusIndex
	scripture  *CorpusIndex
}

// NewEngine loads and indexes all three knowledge bases. A corpus whose
// directory is missing or whose index fails to build is served as empty for
// the process lifetime; only the engine itself is never nil.
func NewEngine(ctx context.Context, config Config, embedder Embedder) *Engine {
	loader := NewLoader(NewChunker(config.ChunkSize, config.ChunkOverlap))

	engine := &Engine{
		embedder: embedder,
		limits:   config.Limits,
	}

	engine.worldview = buildCorpus(ctx, loader, embedder, CorpusWorldview, config.WorldviewDir)
	engine.curriculum = buildCorpus(ctx, loader, embedder, CorpusCurriculum, config.CurriculumDir)
	engine.scripture = buildCorpus(ctx, loader, embedder, CorpusScripture, config.ScriptureDir)

	return engine
}

func buildCorpus(ctx context.Context, loader *Loader, embedder Embedder, corpus Corpus, dir string) *CorpusIndex {
	documents, err := loader.LoadDirectory(dir, corpus)
	if err != nil {
		log.Warn().Err(err).Str("corpus", string(corpus)).Msg("Failed to load knowledge base, serving empty corpus")
		return &CorpusIndex{corpus: corpus}
	}

	index, err := BuildIndex(ctx, corpus, documents, embedder)
	if err != nil {
		log.Warn().Err(err).Str("corpus", string(corpus)).Msg("Failed to build index, serving empty corpus")
		return &CorpusIndex{corpus: corpus}
	}

	log.Info().Str("corpus", string(corpus)).Int("documents", index.Size()).Msg("Corpus index ready")
	return index
}

// Retrieve runs the query against each corpus independently and returns the
// per-corpus top matches. It never fails as a whole: when the query cannot
// be embedded or a corpus search misbehaves, that part of the result is
// empty and the pipeline continues with less context.
func (e *Engine) Retrieve(ctx context.Context, query string) Result {
	result := Result{
		Worldview:  []Match{},
		Curriculum: []Match{},
		Scripture:  []Match{},
	}

	queryEmbedding, err := e.embedder.GenerateEmbeddings(ctx, query)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to embed query, continuing without retrieved context")
		return result
	}

	result.Worldview = e.worldview.Search(queryEmbedding, e.limits.Worldview)
	result.Curriculum = e.curriculum.Search(queryEmbedding, e.limits.Curriculum)
	result.Scripture = e.scripture.Search(queryEmbedding, e.limits.Scripture)

	return result
}
