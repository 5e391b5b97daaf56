package tutor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/guyhitalk/educapp-backend/internal/bedrock"
	"github.com/guyhitalk/educapp-backend/internal/guardrails"
	"github.com/guyhitalk/educapp-backend/internal/rag"
	"github.com/guyhitalk/educapp-backend/internal/worldview"
)

type MockLLMClient struct {
	ResponseToReturn *bedrock.ClaudeResponse
	ErrorToReturn    error
	WasCalled        bool
	LastRequest      *bedrock.ClaudeRequest
}

func (m *MockLLMClient) InvokeModel(ctx context.Context, request bedrock.ClaudeRequest) (*bedrock.ClaudeResponse, error) {
	m.WasCalled = true
	m.LastRequest = &request
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}
	return m.ResponseToReturn, nil
}

type stubRetriever struct {
	result rag.Result
}

func (s *stubRetriever) Retrieve(ctx context.Context, query string) rag.Result {
	return s.result
}

type recordingStore struct {
	err          error
	savedUserID  string
	savedAnswer  string
	savedSubject string
	wasCalled    bool
}

func (r *recordingStore) SaveConversation(ctx context.Context, userID, question, answer, subject string) error {
	r.wasCalled = true
	r.savedUserID = userID
	r.savedAnswer = answer
	r.savedSubject = subject
	return r.err
}

type recordingTracker struct {
	err          error
	wasCalled    bool
	inputTokens  int
	outputTokens int
}

func (r *recordingTracker) TrackAPICall(ctx context.Context, userID string, inputTokens, outputTokens int, model string) error {
	r.wasCalled = true
	r.inputTokens = inputTokens
	r.outputTokens = outputTokens
	return r.err
}

type fakeAnswerCache struct {
	entries   map[string]string
	lastSet   string
	setFailed error
}

func (f *fakeAnswerCache) Get(ctx context.Context, question, subject string) (string, bool) {
	answer, ok := f.entries[question+"|"+subject]
	return answer, ok
}

func (f *fakeAnswerCache) Set(ctx context.Context, question, subject, answer string) error {
	f.lastSet = answer
	return f.setFailed
}

func newTestService(llm LLMClient, retrieval rag.Result) (*Service, *recordingTracker, *recordingStore, *fakeAnswerCache) {
	foundation := worldview.Default()
	tracker := &recordingTracker{}
	store := &recordingStore{}
	answers := &fakeAnswerCache{entries: map[string]string{}}

	service := NewService(
		llm,
		&stubRetriever{result: retrieval},
		guardrails.NewClassifier(foundation),
		foundation,
		"claude-3-opus",
		tracker,
		store,
		answers,
	)

	return service, tracker, store, answers
}

func scriptureResult(content string) rag.Result {
	return rag.Result{
		Scripture: []rag.Match{{Document: rag.Document{Content: content, Corpus: rag.CorpusScripture}}},
	}
}

func TestAsk_LifeAndDeathAppendsGroundingAndScripture(t *testing.T) {
	mock := &MockLLMClient{
		ResponseToReturn: &bedrock.ClaudeResponse{
			Content: "That is a thoughtful topic that many people wonder about.",
		},
	}
	scripture := strings.Repeat("a", 400)
	service, _, _, _ := newTestService(mock, scriptureResult(scripture))

	resp := service.Ask(context.Background(), AskRequest{Question: "What happens when we die?", Subject: "general"})

	if resp.TopicArea != "life_and_death" {
		t.Errorf("TopicArea = %q, want life_and_death", resp.TopicArea)
	}
	if resp.NeedsParentDiscussion {
		t.Error("did not expect NeedsParentDiscussion")
	}
	if !strings.Contains(resp.Answer, "*Biblical Foundation*") {
		t.Error("expected grounding note for an answer without grounding terms")
	}
	if !strings.Contains(resp.Answer, "📖 *Relevant Scripture*: ") {
		t.Error("expected scripture citation footer")
	}

	// The excerpt is truncated to 300 characters.
	want := strings.Repeat("a", 300) + "..."
	if !strings.HasSuffix(resp.Answer, want) {
		t.Error("expected scripture excerpt truncated to 300 characters")
	}
	if strings.Contains(resp.Answer, strings.Repeat("a", 301)) {
		t.Error("scripture excerpt longer than 300 characters")
	}
}

func TestAsk_GroundedAnswerGetsNoGroundingNote(t *testing.T) {
	mock := &MockLLMClient{
		ResponseToReturn: &bedrock.ClaudeResponse{
			Content: "The Bible teaches that God gives life.",
		},
	}
	service, _, _, _ := newTestService(mock, rag.Result{})

	resp := service.Ask(context.Background(), AskRequest{Question: "What happens when we die?", Subject: "general"})

	if strings.Contains(resp.Answer, "*Biblical Foundation*") {
		t.Error("grounding note must not be appended when a grounding term is present")
	}
}

func TestAsk_ParentDiscussionSuppressesScripture(t *testing.T) {
	mock := &MockLLMClient{
		ResponseToReturn: &bedrock.ClaudeResponse{
			Content: "A short explanation.",
		},
	}
	service, _, _, _ := newTestService(mock, scriptureResult("In the beginning"))

	resp := service.Ask(context.Background(), AskRequest{Question: "Tell me about predestination", Subject: "general"})

	if !resp.NeedsParentDiscussion {
		t.Error("expected NeedsParentDiscussion for predestination")
	}
	if !strings.Contains(resp.Answer, "**Discussion with Parents**") {
		t.Error("expected parent discussion notice")
	}
	if !strings.HasSuffix(resp.Answer, "---") {
		t.Error("expected answer to end with the parent discussion notice")
	}
	if strings.Contains(resp.Answer, "Relevant Scripture") {
		t.Error("scripture footer must be suppressed when parent discussion is required")
	}
}

func TestAsk_PromptIncludesPrincipleForCreationQuestion(t *testing.T) {
	mock := &MockLLMClient{
		ResponseToReturn: &bedrock.ClaudeResponse{Content: "God made it."},
	}
	service, _, _, _ := newTestService(mock, rag.Result{})

	service.Ask(context.Background(), AskRequest{Question: "How did the earth form?", Subject: "science"})

	if mock.LastRequest == nil {
		t.Fatal("model was not invoked")
	}
	if !strings.Contains(mock.LastRequest.System, "God created the heavens and the earth") {
		t.Error("system prompt missing creation principle foundation")
	}
	if !strings.Contains(mock.LastRequest.System, "Genesis 1:1") {
		t.Error("system prompt missing scripture citations")
	}
	if mock.LastRequest.Prompt != "Student question: How did the earth form?" {
		t.Errorf("unexpected user message: %q", mock.LastRequest.Prompt)
	}
}

func TestAsk_GenerationErrorReturnsFallback(t *testing.T) {
	mock := &MockLLMClient{ErrorToReturn: errors.New("backend unreachable")}
	service, tracker, store, _ := newTestService(mock, rag.Result{})

	resp := service.Ask(context.Background(), AskRequest{
		Question:  "What happens when we die?",
		Subject:   "general",
		UserEmail: "student@example.com",
	})

	if !strings.Contains(resp.Answer, "I encountered an error generating a response") {
		t.Errorf("expected fallback message, got %q", resp.Answer)
	}
	if !strings.Contains(resp.Answer, "backend unreachable") {
		t.Error("fallback message must embed the error detail")
	}
	if tracker.wasCalled || store.wasCalled {
		t.Error("collaborators must not be notified on generation failure")
	}
	// The classification summary is still returned.
	if resp.TopicArea != "life_and_death" {
		t.Errorf("TopicArea = %q, want life_and_death", resp.TopicArea)
	}
}

func TestAsk_CollaboratorFailuresDoNotAffectAnswer(t *testing.T) {
	mock := &MockLLMClient{
		ResponseToReturn: &bedrock.ClaudeResponse{
			Content:      "Raw generated answer about arithmetic.",
			InputTokens:  120,
			OutputTokens: 80,
		},
	}
	service, tracker, store, _ := newTestService(mock, rag.Result{})
	tracker.err = errors.New("billing db down")
	store.err = errors.New("conversation db down")

	resp := service.Ask(context.Background(), AskRequest{
		Question:  "What is 12 divided by 4?",
		Subject:   "math",
		UserEmail: "student@example.com",
	})

	if !strings.HasPrefix(resp.Answer, "Raw generated answer") {
		t.Errorf("answer altered by failing collaborators: %q", resp.Answer)
	}
	if !tracker.wasCalled {
		t.Error("tracker should have been invoked")
	}
	if tracker.inputTokens != 120 || tracker.outputTokens != 80 {
		t.Errorf("tracker tokens = %d/%d, want 120/80", tracker.inputTokens, tracker.outputTokens)
	}
	if !store.wasCalled {
		t.Error("conversation store should have been invoked")
	}
	// The stored answer is the raw generated text, before policy appendices.
	if store.savedAnswer != "Raw generated answer about arithmetic." {
		t.Errorf("stored answer = %q", store.savedAnswer)
	}
}

func TestAsk_NoIdentityMeansNoSideCalls(t *testing.T) {
	mock := &MockLLMClient{
		ResponseToReturn: &bedrock.ClaudeResponse{Content: "Answer.", InputTokens: 5, OutputTokens: 7},
	}
	service, tracker, store, _ := newTestService(mock, rag.Result{})

	service.Ask(context.Background(), AskRequest{Question: "What is 12 divided by 4?", Subject: "math"})

	if tracker.wasCalled || store.wasCalled {
		t.Error("side calls must be skipped without a user identity")
	}
}

func TestAsk_CacheHitSkipsGeneration(t *testing.T) {
	mock := &MockLLMClient{}
	service, _, _, answers := newTestService(mock, rag.Result{})
	answers.entries["What is 12 divided by 4?|math"] = "Cached answer."

	resp := service.Ask(context.Background(), AskRequest{Question: "What is 12 divided by 4?", Subject: "math"})

	if mock.WasCalled {
		t.Error("model must not be invoked on a cache hit")
	}
	if resp.Answer != "Cached answer." || !resp.Cached {
		t.Errorf("unexpected cached response: %+v", resp)
	}
}

func TestAsk_FinalAnswerIsCached(t *testing.T) {
	mock := &MockLLMClient{
		ResponseToReturn: &bedrock.ClaudeResponse{Content: "A topic many wonder about."},
	}
	service, _, _, answers := newTestService(mock, scriptureResult("In the beginning"))

	resp := service.Ask(context.Background(), AskRequest{Question: "What happens when we die?", Subject: "general"})

	if answers.lastSet != resp.Answer {
		t.Error("cache must store the final post-policy answer")
	}
}
