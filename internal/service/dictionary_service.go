package service

import (
	"context"
	"time"

	"lexiguide/internal/dictionary"
	"lexiguide/internal/domain"
	"lexiguide/internal/llm"
	apperrors "lexiguide/pkg/errors"
)

// CacheObserver is told whether each dictionary lookup hit the cache.
type CacheObserver interface {
	ObserveCacheLookup(hit bool)
}

// DictionaryService retrieves definitions, augments them with the LLM and
// caches the formatted entry.
type DictionaryService struct {
	retriever domain.DefinitionRetriever
	llm       domain.LLMClient
	prompts   llm.Prompts
	cache     domain.DictionaryCache
	ttl       time.Duration
	observer  CacheObserver
	logger    domain.Logger
	now       func() time.Time
}

// NewDictionaryService wires the lookup pipeline. client, cache and
// observer may be nil.
func NewDictionaryService(
	retriever domain.DefinitionRetriever,
	client domain.LLMClient,
	prompts llm.Prompts,
	cache domain.DictionaryCache,
	ttl time.Duration,
	observer CacheObserver,
	logger domain.Logger,
) *DictionaryService {
	return &DictionaryService{
		retriever: retriever,
		llm:       client,
		prompts:   prompts,
		cache:     cache,
		ttl:       ttl,
		observer:  observer,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *DictionaryService) Lookup(ctx context.Context, term string, legalContext bool) (*domain.DictionaryEntry, error) {
	term = dictionary.NormalizeTerm(term)
	if term == "" {
		return nil, &domain.ValidationError{Field: "term", Message: "term is required"}
	}
	key := dictionary.CacheKey(term, legalContext)

	if s.cache != nil {
		entry, found, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("Dictionary cache read failed", "key", key, "error", err)
		}
		if s.observer != nil {
			s.observer.ObserveCacheLookup(found)
		}
		if found {
			entry.Cached = true
			return entry, nil
		}
	}

	// A degraded entry is returned but not cached, so the next lookup retries.
	degraded := false
	defs, err := s.retriever.Retrieve(ctx, term)
	if err != nil {
		// The LLM can still define the term on its own.
		if s.llm == nil {
			return nil, apperrors.NewNetworkError("dictionary lookup failed", err)
		}
		s.logger.Warn("Dictionary retrieval failed, falling back to the model", "term", term, "error", err)
		defs = nil
		degraded = true
	}

	entry := &domain.DictionaryEntry{
		Term:         term,
		LegalContext: legalContext,
		Definitions:  defs,
		Source:       domain.DictionarySourceAPI,
		CreatedAt:    s.now().UTC(),
	}

	switch {
	case len(defs) == 0 && s.llm == nil:
		return nil, domain.ErrTermNotFound
	case len(defs) == 0:
		completion, err := s.llm.Complete(ctx, s.prompts.DictionaryDefine(term))
		if err != nil {
			return nil, wrapLLMError(ctx, err)
		}
		entry.Augmented = completion.Text
		entry.Source = domain.DictionarySourceLLM
	case legalContext && s.llm != nil:
		completion, err := s.llm.Complete(ctx, s.prompts.DictionaryAugment(term, defs))
		if err != nil {
			// Plain definitions are still useful without the legal gloss.
			s.logger.Warn("Dictionary augmentation failed", "term", term, "error", err)
			degraded = true
		} else {
			entry.Augmented = completion.Text
		}
	}

	entry.Formatted = dictionary.Format(entry)

	if s.cache != nil && !degraded {
		if err := s.cache.Set(ctx, key, entry, s.ttl); err != nil {
			s.logger.Warn("Dictionary cache write failed", "key", key, "error", err)
		}
	}
	return entry, nil
}

var _ domain.DictionaryService = (*DictionaryService)(nil)
