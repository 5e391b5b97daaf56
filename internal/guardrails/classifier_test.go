package guardrails

import (
	"reflect"
	"testing"

	"github.com/guyhitalk/educapp-backend/internal/worldview"
)

func TestClassifier_GuidanceKeywords(t *testing.T) {
	classifier := NewClassifier(worldview.Default())

	tests := []struct {
		name          string
		question      string
		needsGuidance bool
	}{
		{
			name:          "plain keyword",
			question:      "What is salvation?",
			needsGuidance: true,
		},
		{
			name:          "uppercase keyword",
			question:      "Explain SALVATION to me",
			needsGuidance: true,
		},
		{
			name:          "keyword inside sentence",
			question:      "My friend asked about the rapture yesterday",
			needsGuidance: true,
		},
		{
			name:          "phrase keyword",
			question:      "Do we have free will?",
			needsGuidance: true,
		},
		{
			name:          "no keyword",
			question:      "How did the earth form?",
			needsGuidance: false,
		},
		{
			name:          "math question",
			question:      "What is 7 times 8?",
			needsGuidance: true, // "times" comes from the parent discussion topics
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := classifier.Check(test.question)

			if result.NeedsParentDiscussion != test.needsGuidance {
				t.Errorf("NeedsParentDiscussion = %t, want %t", result.NeedsParentDiscussion, test.needsGuidance)
			}
		})
	}
}

func TestClassifier_TopicAreas(t *testing.T) {
	classifier := NewClassifier(worldview.Default())

	tests := []struct {
		name     string
		question string
		topic    string
	}{
		{
			name:     "creation question",
			question: "How did the earth form?",
			topic:    "creation_and_science",
		},
		{
			name:     "life and death question",
			question: "What happens when we die?",
			topic:    "life_and_death",
		},
		{
			name:     "morality question",
			question: "Why is stealing wrong?",
			topic:    "morality_and_ethics",
		},
		{
			name:     "substring match without word boundary",
			question: "Questions about sexuality",
			topic:    "human_sexuality_and_marriage",
		},
		{
			name:     "no topic",
			question: "What is 12 divided by 4?",
			topic:    "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := classifier.Check(test.question)

			if result.TopicArea != test.topic {
				t.Errorf("TopicArea = %q, want %q", result.TopicArea, test.topic)
			}
		})
	}
}

// A query matching multiple topic rules takes the first declared rule, so
// reversing the declaration order must change the outcome.
func TestClassifier_FirstMatchingRuleWins(t *testing.T) {
	question := "Is evolution right or wrong?"

	classifier := NewClassifier(worldview.Default())
	result := classifier.Check(question)
	if result.TopicArea != "creation_and_science" {
		t.Errorf("TopicArea = %q, want creation_and_science", result.TopicArea)
	}

	reversed := worldview.Default()
	for i, j := 0, len(reversed.TopicRules)-1; i < j; i, j = i+1, j-1 {
		reversed.TopicRules[i], reversed.TopicRules[j] = reversed.TopicRules[j], reversed.TopicRules[i]
	}

	result = NewClassifier(reversed).Check(question)
	if result.TopicArea != "morality_and_ethics" {
		t.Errorf("TopicArea with reversed rules = %q, want morality_and_ethics", result.TopicArea)
	}
}

// The guidance keyword set and the topic triggers are independent: one word
// can set both, and overlapping keywords are not deduplicated.
func TestClassifier_GuidanceAndTopicIndependent(t *testing.T) {
	classifier := NewClassifier(worldview.Default())

	result := classifier.Check("What does biblical mean?")

	if !result.NeedsParentDiscussion {
		t.Error("expected NeedsParentDiscussion for 'biblical'")
	}
	if result.TopicArea != "biblical_authority" {
		t.Errorf("TopicArea = %q, want biblical_authority", result.TopicArea)
	}

	// Guidance without topic
	result = classifier.Check("predestination")
	if !result.NeedsParentDiscussion {
		t.Error("expected NeedsParentDiscussion for 'predestination'")
	}
	if result.TopicArea != "" {
		t.Errorf("TopicArea = %q, want empty", result.TopicArea)
	}

	// Topic without guidance
	result = classifier.Check("How did the earth form?")
	if result.NeedsParentDiscussion {
		t.Error("did not expect NeedsParentDiscussion for earth question")
	}
	if result.TopicArea != "creation_and_science" {
		t.Errorf("TopicArea = %q, want creation_and_science", result.TopicArea)
	}
}

func TestClassifier_DetectedTopicsRecordsAllMatches(t *testing.T) {
	classifier := NewClassifier(worldview.Default())

	result := classifier.Check("Is salvation by election or free will?")

	want := []string{"salvation", "election", "free will"}
	if !reflect.DeepEqual(result.DetectedTopics, want) {
		t.Errorf("DetectedTopics = %v, want %v", result.DetectedTopics, want)
	}
}

func TestClassifier_Deterministic(t *testing.T) {
	classifier := NewClassifier(worldview.Default())
	question := "Is salvation about heaven and hell?"

	first := classifier.Check(question)
	second := classifier.Check(question)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Check is not deterministic: %+v vs %+v", first, second)
	}
}
