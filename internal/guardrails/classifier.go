package guardrails

import (
	"strings"

	"github.com/guyhitalk/educapp-backend/internal/worldview"
)

// Classifier flags questions that should be discussed with parents and tags
// them with a biblical context area. It holds no mutable state: Check is a
// pure function of the foundation config and the input text, safe for
// concurrent use.
type Classifier struct {
	foundation *worldview.Foundation
}

func NewClassifier(foundation *worldview.Foundation) *Classifier {
	return &Classifier{
		foundation: foundation,
	}
}

// Check scans a question for guidance keywords and topic triggers.
//
// Matching is case-insensitive substring containment, not word-boundary
// anchored ("sexuality" matches the "sex" trigger). Every guidance keyword
// that matches is recorded; topic rules are evaluated in declared order and
// the first matching rule wins. The two rule sets are independent, so a
// single word can set both the parent-discussion flag and the topic area.
func (c *Classifier) Check(question string) CheckResult {
	lower := strings.ToLower(question)

	result := CheckResult{}

	for _, keyword := range c.foundation.GuidanceKeywords {
		if strings.Contains(lower, keyword) {
			result.NeedsParentDiscussion = true
			result.DetectedTopics = append(result.DetectedTopics, keyword)
		}
	}

	for _, rule := range c.foundation.TopicRules {
		if matchesAny(lower, rule.Triggers) {
			result.TopicArea = rule.Topic
			break
		}
	}

	return result
}

func matchesAny(lower string, triggers []string) bool {
	for _, trigger := range triggers {
		if strings.Contains(lower, strings.ToLower(trigger)) {
			return true
		}
	}
	return false
}
