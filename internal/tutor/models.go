package tutor

import (
	"github.com/guyhitalk/educapp-backend/internal/middleware"
)

type AskRequest struct {
	Question     string `json:"question" description:"The student question"`
	Subject      string `json:"subject,omitempty" description:"Subject hint (default: general)"`
	StudentGrade string `json:"student_grade,omitempty" description:"Optional grade hint"`
	UserEmail    string `json:"user_email,omitempty" description:"Opaque user identifier for usage tracking"`
}

type AskResponse struct {
	Answer                string `json:"answer" description:"Final composed answer"`
	TopicArea             string `json:"topic_area,omitempty" description:"Detected biblical context area"`
	NeedsParentDiscussion bool   `json:"needs_parent_discussion" description:"Whether the topic should be discussed with parents"`
	Model                 string `json:"model" description:"Model ID used"`
	Cached                bool   `json:"cached,omitempty" description:"Whether the answer came from cache"`
}

type ClassifyRequest struct {
	Question string `json:"question" description:"The question to classify"`
}

type ClassifyResponse struct {
	TopicArea             string   `json:"topic_area,omitempty"`
	NeedsParentDiscussion bool     `json:"needs_parent_discussion"`
	DetectedTopics        []string `json:"detected_topics,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status" description:"Service status"`
	Version string `json:"version" description:"API version"`
}

func (r *AskRequest) Validate() error {
	if r.Question == "" {
		return middleware.ErrEmptyQuestion
	}
	return nil
}

func (r *AskRequest) SetDefaults() {
	if r.Subject == "" {
		r.Subject = "general"
	}
}
