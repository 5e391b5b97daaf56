package rag

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Loader reads a directory of plain-text files and splits each file into
// overlapping chunks ready for indexing.
type Loader struct {
	chunker *Chunker
}

func NewLoader(chunker *Chunker) *Loader {
	return &Loader{
		chunker: chunker,
	}
}

// LoadDirectory returns one Document per chunk of every .txt file in dir.
// A missing directory is not an error: it is logged and treated as an empty
// corpus. Files that cannot be read are skipped with a warning.
func (l *Loader) LoadDirectory(dir string, corpus Corpus) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("dir", dir).Str("corpus", string(corpus)).Msg("Knowledge base directory not found")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read knowledge base directory %s: %w", dir, err)
	}

	var documents []Document

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("Failed to read knowledge base file")
			continue
		}
		if len(content) == 0 {
			continue
		}

		for _, chunk := range l.chunker.ChunkText(string(content)) {
			documents = append(documents, Document{
				ID:      uuid.New().String(),
				Content: chunk.Content,
				Source:  entry.Name(),
				Corpus:  corpus,
			})
		}
	}

	return documents, nil
}
