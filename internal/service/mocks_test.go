package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"lexiguide/internal/domain"
	"lexiguide/internal/ocr"

	"github.com/supabase-community/supabase-go"
)

type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		messages: []string{},
	}
}

func (m *MockLogger) record(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, line)
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.record("INFO: " + msg)
}

func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	m.record("ERROR: " + msg + " - " + err.Error())
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.record("DEBUG: " + msg)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.record("WARN: " + msg)
}

// MockLLM answers every prompt kind with a fixed reply and records the prompts.
type MockLLM struct {
	mu      sync.Mutex
	replies map[domain.PromptKind]string
	errs    map[domain.PromptKind]error
	prompts []domain.Prompt
}

func NewMockLLM() *MockLLM {
	return &MockLLM{
		replies: make(map[domain.PromptKind]string),
		errs:    make(map[domain.PromptKind]error),
	}
}

func (m *MockLLM) Complete(_ context.Context, prompt domain.Prompt) (*domain.Completion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	if err := m.errs[prompt.Kind]; err != nil {
		return nil, err
	}
	reply, ok := m.replies[prompt.Kind]
	if !ok {
		reply = "reply to " + string(prompt.Kind)
	}
	return &domain.Completion{Text: reply, Model: "mock-model", PromptTokens: 10, CompletionTokens: 5}, nil
}

func (m *MockLLM) Model() string {
	return "mock-model"
}

func (m *MockLLM) Prompts() []domain.Prompt {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Prompt(nil), m.prompts...)
}

func (m *MockLLM) countKind(kind domain.PromptKind) int {
	n := 0
	for _, p := range m.Prompts() {
		if p.Kind == kind {
			n++
		}
	}
	return n
}

type MockOCREngine struct {
	text  string
	err   error
	calls int
}

func (m *MockOCREngine) Recognize(_ context.Context, _ []byte) (*ocr.Result, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &ocr.Result{Text: m.text, Confidence: 0.8, Engine: "mock"}, nil
}

func (m *MockOCREngine) Name() string {
	return "mock"
}

type MockRetriever struct {
	defs  map[string][]domain.Definition
	err   error
	calls int
}

func (m *MockRetriever) Retrieve(_ context.Context, term string) ([]domain.Definition, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.defs[term], nil
}

type MockGeocoder struct {
	locations map[string]*domain.GeoLocation
}

func (m *MockGeocoder) Geocode(_ context.Context, query string) (*domain.GeoLocation, error) {
	if loc, ok := m.locations[strings.ToLower(query)]; ok {
		return loc, nil
	}
	return nil, domain.ErrLocationNotFound
}

type MockCacheObserver struct {
	hits, misses int
}

func (m *MockCacheObserver) ObserveCacheLookup(hit bool) {
	if hit {
		m.hits++
	} else {
		m.misses++
	}
}

type MockExtractionObserver struct {
	methods []string
}

func (m *MockExtractionObserver) ObserveExtraction(method string) {
	m.methods = append(m.methods, method)
}

// MockSupabaseClient for testing
type MockSupabaseClient struct {
	users map[string]*domain.SupabaseUser
	calls int
}

func NewMockSupabaseClient() *MockSupabaseClient {
	return &MockSupabaseClient{
		users: map[string]*domain.SupabaseUser{
			"valid-token": {ID: "user-123", Email: "test@example.com"},
		},
	}
}

func (m *MockSupabaseClient) Initialize() error {
	return nil
}

func (m *MockSupabaseClient) ValidateToken(token string) (*domain.SupabaseUser, error) {
	m.calls++
	if user, ok := m.users[token]; ok {
		return user, nil
	}
	return nil, errors.New("token validation failed")
}

func (m *MockSupabaseClient) DB() *supabase.Client {
	return nil
}

func (m *MockSupabaseClient) GetClientWithToken(token string) (*supabase.Client, error) {
	return nil, nil
}
