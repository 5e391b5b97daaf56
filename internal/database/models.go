package database

import "time"

// Conversation is a saved question/answer exchange keyed by an opaque user
// identifier.
type Conversation struct {
	ID        string
	UserID    string
	Question  string
	Answer    string
	Subject   string
	Timestamp time.Time
}

// APICall is one logged model invocation with its estimated cost.
type APICall struct {
	UserID        string
	InputTokens   int
	OutputTokens  int
	EstimatedCost float64
	Model         string
	Timestamp     time.Time
}
