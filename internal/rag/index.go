package rag

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// Embedder turns text into dense vectors. Implemented by the Bedrock Titan
// client; tests substitute a deterministic fake.
type Embedder interface {
	GenerateEmbeddings(ctx context.Context, text string) ([]float32, error)
	GenerateBatchEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// CorpusIndex owns the documents and embeddings of a single corpus. It is
// built once and read-only afterwards, so searches need no locking.
type CorpusIndex struct {
	corpus     Corpus
	documents  []Document
	embeddings [][]float32
}

// BuildIndex embeds every document and returns the ready index. Building is
// a one-time blocking operation that must finish before the index serves
// searches.
func BuildIndex(ctx context.Context, corpus Corpus, documents []Document, embedder Embedder) (*CorpusIndex, error) {
	index := &CorpusIndex{corpus: corpus}

	if len(documents) == 0 {
		return index, nil
	}

	contents := make([]string, len(documents))
	for i, doc := range documents {
		contents[i] = doc.Content
	}

	embeddings, err := embedder.GenerateBatchEmbeddings(ctx, contents)
	if err != nil {
		return nil, fmt.Errorf("failed to embed %s corpus: %w", corpus, err)
	}
	if len(embeddings) != len(documents) {
		return nil, fmt.Errorf("embedding count mismatch for %s corpus: got %d, want %d", corpus, len(embeddings), len(documents))
	}

	index.documents = documents
	index.embeddings = embeddings

	return index, nil
}

func (idx *CorpusIndex) Corpus() Corpus {
	return idx.corpus
}

func (idx *CorpusIndex) Size() int {
	return len(idx.documents)
}

// Search returns the top-k documents by descending cosine similarity to the
// query embedding. An empty index returns an empty slice.
func (idx *CorpusIndex) Search(queryEmbedding []float32, k int) []Match {
	if len(idx.documents) == 0 || k <= 0 {
		return []Match{}
	}

	matches := make([]Match, 0, len(idx.documents))
	for i, doc := range idx.documents {
		matches = append(matches, Match{
			Document: doc,
			Score:    cosineSimilarity(queryEmbedding, idx.embeddings[i]),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > k {
		matches = matches[:k]
	}

	return matches
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
