package tutor

import (
	"context"
	"fmt"
	"time"

	"github.com/guyhitalk/educapp-backend/internal/bedrock"
	"github.com/guyhitalk/educapp-backend/internal/cache"
	"github.com/guyhitalk/educapp-backend/internal/guardrails"
	"github.com/guyhitalk/educapp-backend/internal/rag"
	"github.com/guyhitalk/educapp-backend/internal/usage"
	"github.com/guyhitalk/educapp-backend/internal/worldview"
	"github.com/rs/zerolog/log"
)

// LLMClient is the generation backend. The interface allows mocking in
// tests without real API calls.
type LLMClient interface {
	InvokeModel(ctx context.Context, request bedrock.ClaudeRequest) (*bedrock.ClaudeResponse, error)
}

// Retriever produces per-corpus context for a query. Implemented by
// rag.Engine.
type Retriever interface {
	Retrieve(ctx context.Context, query string) rag.Result
}

// ConversationStore persists question/answer pairs. Best-effort from the
// service's perspective.
type ConversationStore interface {
	SaveConversation(ctx context.Context, userID, question, answer, subject string) error
}

const (
	defaultMaxTokens    = 2000
	defaultTemperature  = 0.3
	hookTimeout         = 5 * time.Second
	scriptureExcerptLen = 300
)

type Service struct {
	llm           LLMClient
	retriever     Retriever
	classifier    *guardrails.Classifier
	foundation    *worldview.Foundation
	modelID       string
	tracker       usage.Tracker
	conversations ConversationStore
	answers       cache.AnswerCache
}

func NewService(
	llm LLMClient,
	retriever Retriever,
	classifier *guardrails.Classifier,
	foundation *worldview.Foundation,
	modelID string,
	tracker usage.Tracker,
	conversations ConversationStore,
	answers cache.AnswerCache,
) *Service {
	return &Service{
		llm:           llm,
		retriever:     retriever,
		classifier:    classifier,
		foundation:    foundation,
		modelID:       modelID,
		tracker:       tracker,
		conversations: conversations,
		answers:       answers,
	}
}

// Classify exposes the classification summary without generating an answer.
func (s *Service) Classify(question string) guardrails.CheckResult {
	return s.classifier.Check(question)
}

// Ask runs the full pipeline: classify, retrieve, compose, generate, then
// apply the content policy to the generated text. Retrieval failures degrade
// silently; a generation failure yields an apologetic fallback answer.
func (s *Service) Ask(ctx context.Context, req AskRequest) AskResponse {
	check := s.classifier.Check(req.Question)

	if answer, ok := s.answers.Get(ctx, req.Question, req.Subject); ok {
		log.Info().Str("subject", req.Subject).Msg("Answer served from cache")
		return AskResponse{
			Answer:                answer,
			TopicArea:             check.TopicArea,
			NeedsParentDiscussion: check.NeedsParentDiscussion,
			Model:                 s.modelID,
			Cached:                true,
		}
	}

	retrieval := s.retriever.Retrieve(ctx, req.Question)

	systemPrompt := BuildSystemPrompt(
		req.Subject,
		req.StudentGrade,
		retrieval,
		s.foundation.PrincipleFor(check.TopicArea),
	)

	response, err := s.llm.InvokeModel(ctx, bedrock.ClaudeRequest{
		System:      systemPrompt,
		Prompt:      fmt.Sprintf("Student question: %s", req.Question),
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate response")
		return AskResponse{
			Answer:                fmt.Sprintf("I encountered an error generating a response. Please try again. Error: %s", err),
			TopicArea:             check.TopicArea,
			NeedsParentDiscussion: check.NeedsParentDiscussion,
			Model:                 s.modelID,
		}
	}

	// Best-effort side calls run on the raw generated text, before the
	// policy appendices are attached.
	s.notifyCollaborators(req, response)

	// Grounding is judged against the generated text alone: the parent
	// guidance notice mentions grounding terms itself and must not mask a
	// missing foundation.
	answer := response.Content
	answer = s.classifier.EnsureGrounding(answer, check.TopicArea)
	answer = s.classifier.ApplyParentGuidance(answer, check)
	answer = appendScriptureExcerpt(answer, retrieval, check)

	if err := s.answers.Set(ctx, req.Question, req.Subject, answer); err != nil {
		log.Warn().Err(err).Msg("Failed to cache answer")
	}

	return AskResponse{
		Answer:                answer,
		TopicArea:             check.TopicArea,
		NeedsParentDiscussion: check.NeedsParentDiscussion,
		Model:                 s.modelID,
	}
}

// notifyCollaborators forwards usage and the conversation to their stores.
// Failures are logged and swallowed: a broken collaborator must never fail
// or delay the student-facing answer beyond the hook timeout.
func (s *Service) notifyCollaborators(req AskRequest, response *bedrock.ClaudeResponse) {
	if req.UserEmail == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), hookTimeout)
	defer cancel()

	if response.InputTokens > 0 && response.OutputTokens > 0 {
		if err := s.tracker.TrackAPICall(ctx, req.UserEmail, response.InputTokens, response.OutputTokens, s.modelID); err != nil {
			log.Warn().Err(err).Msg("Failed to track usage")
		}
	}

	if err := s.conversations.SaveConversation(ctx, req.UserEmail, req.Question, response.Content, req.Subject); err != nil {
		log.Warn().Err(err).Msg("Failed to save conversation")
	}
}

// appendScriptureExcerpt attaches the top scripture passage, truncated, as a
// citation footer. Suppressed when the question needs parent discussion.
func appendScriptureExcerpt(answer string, retrieval rag.Result, check guardrails.CheckResult) string {
	if len(retrieval.Scripture) == 0 || check.NeedsParentDiscussion {
		return answer
	}

	excerpt := []rune(retrieval.Scripture[0].Document.Content)
	if len(excerpt) > scriptureExcerptLen {
		excerpt = excerpt[:scriptureExcerptLen]
	}

	return fmt.Sprintf("%s\n\n📖 *Relevant Scripture*: %s...", answer, string(excerpt))
}
