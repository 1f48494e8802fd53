package domain

import (
	"context"
	"time"
)

// DictionarySource names the step that produced the definitions of an entry.
type DictionarySource string

const (
	DictionarySourceAPI DictionarySource = "api"
	DictionarySourceLLM DictionarySource = "llm"
)

// Definition is one sense retrieved from the public dictionary.
type Definition struct {
	PartOfSpeech string `json:"part_of_speech,omitempty"`
	Text         string `json:"text"`
	Example      string `json:"example,omitempty"`
}

// DictionaryEntry is the result of a retrieve, augment, format lookup.
type DictionaryEntry struct {
	Term         string           `json:"term"`
	LegalContext bool             `json:"legal_context"`
	Definitions  []Definition     `json:"definitions"`
	Augmented    string           `json:"augmented,omitempty"`
	Formatted    string           `json:"formatted"`
	Source       DictionarySource `json:"source"`
	Cached       bool             `json:"cached"`
	CreatedAt    time.Time        `json:"created_at"`
}

// DefinitionRetriever fetches raw definitions for a term. A term the source
// does not know yields an empty slice and no error.
type DefinitionRetriever interface {
	Retrieve(ctx context.Context, term string) ([]Definition, error)
}

// DictionaryCache memoizes finished entries. Get reports found=false on a miss.
type DictionaryCache interface {
	Get(ctx context.Context, key string) (*DictionaryEntry, bool, error)
	Set(ctx context.Context, key string, entry *DictionaryEntry, ttl time.Duration) error
}

type DictionaryService interface {
	Lookup(ctx context.Context, term string, legalContext bool) (*DictionaryEntry, error)
}
