package rag

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCorpusFiles(t *testing.T, dir string, contents ...string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for i, content := range contents {
		name := filepath.Join(dir, "doc"+strings.Repeat("x", i)+".txt")
		if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func testConfig(root string) Config {
	return Config{
		WorldviewDir:  filepath.Join(root, "worldview"),
		CurriculumDir: filepath.Join(root, "curriculum"),
		ScriptureDir:  filepath.Join(root, "scripture"),
		ChunkSize:     1000,
		ChunkOverlap:  200,
		Limits:        DefaultLimits(),
	}
}

func TestEngine_RetrieveRespectsPerCorpusLimits(t *testing.T) {
	root := t.TempDir()
	config := testConfig(root)

	writeCorpusFiles(t, config.WorldviewDir, "w one", "w two", "w three", "w four")
	writeCorpusFiles(t, config.CurriculumDir, "c one", "c two", "c three", "c four")
	writeCorpusFiles(t, config.ScriptureDir, "s one", "s two")

	engine := NewEngine(context.Background(), config, &fakeEmbedder{})

	result := engine.Retrieve(context.Background(), "anything")

	if len(result.Worldview) != 2 {
		t.Errorf("worldview matches = %d, want 2", len(result.Worldview))
	}
	if len(result.Curriculum) != 3 {
		t.Errorf("curriculum matches = %d, want 3", len(result.Curriculum))
	}
	if len(result.Scripture) != 1 {
		t.Errorf("scripture matches = %d, want 1", len(result.Scripture))
	}
}

func TestEngine_MissingDirectoryServesEmptyCorpus(t *testing.T) {
	root := t.TempDir()
	config := testConfig(root)

	// Only the curriculum directory exists.
	writeCorpusFiles(t, config.CurriculumDir, "algebra basics")

	engine := NewEngine(context.Background(), config, &fakeEmbedder{})

	result := engine.Retrieve(context.Background(), "algebra")

	if len(result.Worldview) != 0 {
		t.Errorf("worldview matches = %d, want 0", len(result.Worldview))
	}
	if len(result.Scripture) != 0 {
		t.Errorf("scripture matches = %d, want 0", len(result.Scripture))
	}
	if len(result.Curriculum) != 1 {
		t.Errorf("curriculum matches = %d, want 1", len(result.Curriculum))
	}
}

func TestEngine_EmbedderFailureAtBuildDegradesToEmpty(t *testing.T) {
	root := t.TempDir()
	config := testConfig(root)

	writeCorpusFiles(t, config.WorldviewDir, "some content")

	engine := NewEngine(context.Background(), config, &fakeEmbedder{fail: true})

	// Query-time embedding also fails, so every corpus is empty, but the
	// call itself must not fail.
	result := engine.Retrieve(context.Background(), "question")

	if len(result.Worldview) != 0 || len(result.Curriculum) != 0 || len(result.Scripture) != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
}

func TestEngine_QueryEmbeddingFailureReturnsEmptyResult(t *testing.T) {
	root := t.TempDir()
	config := testConfig(root)

	writeCorpusFiles(t, config.WorldviewDir, "some content")

	embedder := &fakeEmbedder{vectors: map[string][]float32{}}
	engine := NewEngine(context.Background(), config, embedder)

	embedder.fail = true

	result := engine.Retrieve(context.Background(), "question")

	if len(result.Worldview) != 0 {
		t.Errorf("worldview matches = %d, want 0", len(result.Worldview))
	}
}

func TestLoader_SplitsLongFilesIntoChunks(t *testing.T) {
	dir := t.TempDir()
	long := strings.Repeat("lorem ipsum ", 200) // ~2400 bytes

	if err := os.WriteFile(filepath.Join(dir, "long.txt"), []byte(long), 0o644); err != nil {
		t.Fatal(err)
	}
	// Non-txt files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "ignore.md"), []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(NewChunker(1000, 200))
	docs, err := loader.LoadDirectory(dir, CorpusCurriculum)
	if err != nil {
		t.Fatalf("LoadDirectory failed: %v", err)
	}

	if len(docs) < 3 {
		t.Errorf("got %d documents, want at least 3 chunks", len(docs))
	}

	for _, doc := range docs {
		if doc.Source != "long.txt" {
			t.Errorf("unexpected source %q", doc.Source)
		}
		if doc.Corpus != CorpusCurriculum {
			t.Errorf("unexpected corpus %q", doc.Corpus)
		}
	}
}

func TestLoader_MissingDirectoryIsNotAnError(t *testing.T) {
	loader := NewLoader(NewChunker(1000, 200))

	docs, err := loader.LoadDirectory(filepath.Join(t.TempDir(), "does-not-exist"), CorpusWorldview)
	if err != nil {
		t.Fatalf("expected nil error for missing directory, got %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("got %d documents, want 0", len(docs))
	}
}
