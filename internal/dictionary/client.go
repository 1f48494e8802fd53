// Package dictionary retrieves general definitions from a dictionaryapi.dev
// compatible service and renders finished entries as Markdown.
package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lexiguide/internal/domain"
)

// maxDefinitions bounds how many senses are kept per term.
const maxDefinitions = 8

// APIClient implements domain.DefinitionRetriever over HTTP.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type apiEntry struct {
	Word     string `json:"word"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
			Example    string `json:"example"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// Retrieve returns the definitions for term. An unknown term yields no
// definitions and no error.
func (c *APIClient) Retrieve(ctx context.Context, term string) ([]domain.Definition, error) {
	endpoint := c.baseURL + "/" + url.PathEscape(term)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dictionary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("dictionary API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var entries []apiEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode dictionary response: %w", err)
	}

	var defs []domain.Definition
	for _, e := range entries {
		for _, m := range e.Meanings {
			for _, d := range m.Definitions {
				text := strings.TrimSpace(d.Definition)
				if text == "" {
					continue
				}
				defs = append(defs, domain.Definition{
					PartOfSpeech: m.PartOfSpeech,
					Text:         text,
					Example:      strings.TrimSpace(d.Example),
				})
				if len(defs) == maxDefinitions {
					return defs, nil
				}
			}
		}
	}
	return defs, nil
}

var _ domain.DefinitionRetriever = (*APIClient)(nil)
