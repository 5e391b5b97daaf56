package guardrails

import "strings"

const parentGuidanceNotice = "\n\n---\n**Discussion with Parents**: This topic involves important theological matters where Christians may have different understandings. Please discuss this with your parents to understand your family's biblical perspective.\n---"

const groundingNote = "\n\n*Biblical Foundation*: Remember that as Christians, we understand this topic through what God's Word teaches us."

// ApplyParentGuidance appends the parent-discussion notice when the check
// flagged the question. The answer is returned unchanged otherwise.
func (c *Classifier) ApplyParentGuidance(answer string, result CheckResult) string {
	if result.NeedsParentDiscussion {
		return answer + parentGuidanceNotice
	}
	return answer
}

// EnsureGrounding appends a grounding note when a topic area was detected
// but the generated answer mentions none of the configured grounding terms.
func (c *Classifier) EnsureGrounding(answer string, topicArea string) string {
	if topicArea == "" {
		return answer
	}

	lower := strings.ToLower(answer)
	for _, term := range c.foundation.GroundingTerms {
		if strings.Contains(lower, term) {
			return answer
		}
	}

	return answer + groundingNote
}
