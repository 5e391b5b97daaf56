package guardrails

// CheckResult is the classification of a single student question.
type CheckResult struct {
	TopicArea             string   // one of the configured topic areas, or "" when none matched
	NeedsParentDiscussion bool     // true when the question touches a parent-discussion keyword
	DetectedTopics        []string // every guidance keyword found in the question
}
