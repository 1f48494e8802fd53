package dictionary

import (
	"fmt"
	"strings"

	"lexiguide/internal/domain"
)

// Format renders an entry as Markdown: heading, numbered definitions, then
// the legal-context explanation when one was produced.
func Format(entry *domain.DictionaryEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", entry.Term)

	if len(entry.Definitions) > 0 {
		sb.WriteString("\n## Definitions\n\n")
		for i, d := range entry.Definitions {
			if d.PartOfSpeech != "" {
				fmt.Fprintf(&sb, "%d. *%s* %s\n", i+1, d.PartOfSpeech, d.Text)
			} else {
				fmt.Fprintf(&sb, "%d. %s\n", i+1, d.Text)
			}
			if d.Example != "" {
				fmt.Fprintf(&sb, "   > %s\n", d.Example)
			}
		}
	}

	if entry.Augmented != "" {
		heading := "Legal context"
		if !entry.LegalContext {
			heading = "Explanation"
		}
		fmt.Fprintf(&sb, "\n## %s\n\n%s\n", heading, strings.TrimSpace(entry.Augmented))
	}

	sb.WriteString("\n---\n")
	sb.WriteString(domain.Disclaimer)
	sb.WriteString("\n")
	return sb.String()
}

// NormalizeTerm trims, collapses inner whitespace and lower-cases term.
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.Join(strings.Fields(term), " "))
}

// CacheKey is the cache key for a normalized term and context flag.
func CacheKey(term string, legalContext bool) string {
	mode := "plain"
	if legalContext {
		mode = "legal"
	}
	return "dictionary:" + mode + ":" + term
}
