package worldview

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a foundation config from a YAML file. Fields left empty in the
// file fall back to the built-in defaults so a partial override stays usable.
func Load(path string) (*Foundation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read worldview config %s: %w", path, err)
	}

	var f Foundation
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse worldview config %s: %w", path, err)
	}

	applyDefaults(&f)

	return &f, nil
}

// LoadOrDefault falls back to the built-in foundation when path is empty or
// the file is missing.
func LoadOrDefault(path string) (*Foundation, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

func applyDefaults(f *Foundation) {
	def := Default()

	if len(f.GuidanceKeywords) == 0 {
		f.GuidanceKeywords = def.GuidanceKeywords
	}
	if len(f.TopicRules) == 0 {
		f.TopicRules = def.TopicRules
	}
	if len(f.GroundingTerms) == 0 {
		f.GroundingTerms = def.GroundingTerms
	}
	if len(f.Principles) == 0 {
		f.Principles = def.Principles
	}
}

func splitWords(s string) []string {
	return strings.Fields(strings.ToLower(s))
}
