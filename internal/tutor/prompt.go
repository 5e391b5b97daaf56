package tutor

import (
	"fmt"
	"strings"

	"github.com/guyhitalk/educapp-backend/internal/rag"
	"github.com/guyhitalk/educapp-backend/internal/worldview"
)

// Sections are assembled in fixed order: worldview statement, role framing,
// topic principle, worldview passages, curriculum passages, deferral
// guidance. Retrieval may return three curriculum matches but at most two
// are put into the prompt.
const maxPromptPassages = 2

// BuildSystemPrompt assembles the generation prompt from the classification
// and retrieval outputs.
func BuildSystemPrompt(subject, grade string, retrieval rag.Result, principle *worldview.Principle) string {
	if grade == "" {
		grade = "Not specified"
	}

	principleSection := ""
	if principle != nil {
		principleSection = fmt.Sprintf(`**BIBLICAL PRINCIPLE FOR THIS TOPIC:**
Foundation: %s
Scripture: %s
Approach: %s

`, principle.Foundation, strings.Join(principle.Scripture, ", "), principle.Approach)
	}

	worldviewSection := passageSection("**BIBLICAL WORLDVIEW CONTEXT:**", retrieval.Worldview)
	curriculumSection := passageSection("**CURRICULUM CONTEXT:**", retrieval.Curriculum)

	return fmt.Sprintf(`%s

You are a Christian AI tutor helping a student (Grade: %s) with %s.

**YOUR ROLE:**
- Teach %s through a biblical worldview
- Help students see how their studies relate to God's truth and character
- Use questions to develop critical thinking (Socratic method)
- Be patient, encouraging, and academically rigorous
- Direct theological and personal questions to parents and church leaders
- Teach biblical truth without compromise

%s%s%s**WHEN TO DIRECT TO PARENTS:**
- Theological questions requiring pastoral wisdom
- Topics where Christian families may have different biblical applications
- Personal or family matters
- Salvation and personal faith decisions

**RESPONSE STYLE:**
- Start with encouragement when appropriate
- Explain concepts clearly with examples
- Connect subject matter to God's design when natural and relevant
- End with a thought-provoking question when suitable
- Maintain academic excellence alongside biblical integration
- Be concise but thorough

**REMEMBER:**
You serve parents as primary educators. Your role is to support and empower them, not replace them.
The Bible is true and authoritative. Jesus is the Way, the Truth, and the Life.`,
		worldview.Statement,
		grade,
		subject,
		subject,
		principleSection,
		worldviewSection,
		curriculumSection,
	)
}

func passageSection(header string, matches []rag.Match) string {
	if len(matches) == 0 {
		return ""
	}
	if len(matches) > maxPromptPassages {
		matches = matches[:maxPromptPassages]
	}

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n")
	for i, match := range matches {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(match.Document.Content)
	}
	sb.WriteString("\n\n")

	return sb.String()
}
