package dictionary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lexiguide/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const estoppelJSON = `[{"word":"estoppel","meanings":[
 {"partOfSpeech":"noun","definitions":[
  {"definition":"A legal bar to alleging facts contrary to earlier conduct.","example":"The tenant was subject to estoppel."},
  {"definition":"  "}
 ]},
 {"partOfSpeech":"verb","definitions":[{"definition":"To bar by estoppel."}]}
]}]`

func TestAPIClient_Retrieve(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		switch r.URL.Path {
		case "/entries/en/estoppel":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(estoppelJSON))
		case "/entries/en/force majeure":
			w.Write([]byte(`[]`))
		case "/entries/en/broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"title":"No Definitions Found"}`))
		}
	}))
	defer srv.Close()

	client := NewAPIClient(srv.URL + "/entries/en/")
	ctx := context.Background()

	defs, err := client.Retrieve(ctx, "estoppel")
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "noun", defs[0].PartOfSpeech)
	assert.Equal(t, "The tenant was subject to estoppel.", defs[0].Example)
	assert.Equal(t, "verb", defs[1].PartOfSpeech)

	defs, err = client.Retrieve(ctx, "force majeure")
	require.NoError(t, err)
	assert.Empty(t, defs)
	assert.Equal(t, "/entries/en/force%20majeure", gotPath)

	defs, err = client.Retrieve(ctx, "qwzx")
	require.NoError(t, err)
	assert.Empty(t, defs)

	_, err = client.Retrieve(ctx, "broken")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	entry := &domain.DictionaryEntry{
		Term:         "estoppel",
		LegalContext: true,
		Definitions: []domain.Definition{
			{PartOfSpeech: "noun", Text: "A legal bar.", Example: "Estoppel applied."},
			{Text: "Untyped sense."},
		},
		Augmented: "In contracts, estoppel prevents a party from going back on a promise.",
	}

	out := Format(entry)
	assert.True(t, strings.HasPrefix(out, "# estoppel\n"))
	assert.Contains(t, out, "1. *noun* A legal bar.\n   > Estoppel applied.\n")
	assert.Contains(t, out, "2. Untyped sense.\n")
	assert.Contains(t, out, "## Legal context\n\nIn contracts")
	assert.Contains(t, out, domain.Disclaimer)

	entry.LegalContext = false
	assert.Contains(t, Format(entry), "## Explanation")
}

func TestNormalizeTermAndCacheKey(t *testing.T) {
	assert.Equal(t, "force majeure", NormalizeTerm("  Force \t MAJEURE "))
	assert.Equal(t, "", NormalizeTerm("   "))
	assert.Equal(t, "dictionary:legal:tort", CacheKey("tort", true))
	assert.Equal(t, "dictionary:plain:tort", CacheKey("tort", false))
}
