package llm

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"lexiguide/internal/domain"
)

const truncationMarker = "\n\n[truncated]"

// Prompts builds the prompt templates. MaxInputChars bounds the document
// text embedded in a prompt; zero disables truncation.
type Prompts struct {
	MaxInputChars int
}

// Analysis asks for a summary, key points and explained legal terms.
func (p Prompts) Analysis(text string) domain.Prompt {
	return domain.Prompt{
		Kind:   domain.PromptAnalysis,
		System: "You are a legal document analyzer. Provide a clear summary, highlight key points, and explain important legal terms used.",
		User:   "Analyze this legal document and provide: 1) A summary 2) Key points 3) Legal terms used with their explanations:\n\n" + TruncateText(text, p.MaxInputChars),
	}
}

// TermExtraction asks for every legal term with a plain-language definition.
func (p Prompts) TermExtraction(text string) domain.Prompt {
	return domain.Prompt{
		Kind:   domain.PromptTermExtraction,
		System: "You are a legal terminology expert. Extract and explain legal terms from the document.",
		User:   "Extract all legal terms from this document and provide their definitions in simple language:\n\n" + TruncateText(text, p.MaxInputChars),
	}
}

// Question answers a question about the document, with earlier turns as history.
func (p Prompts) Question(text, question string, history []*domain.ChatMessage) domain.Prompt {
	msgs := make([]domain.PromptMessage, 0, len(history))
	for _, m := range history {
		msgs = append(msgs, domain.PromptMessage{Role: m.Role, Content: m.Content})
	}
	return domain.Prompt{
		Kind:    domain.PromptQuestion,
		System:  "Answer questions about this legal document.",
		History: msgs,
		User:    fmt.Sprintf("Document: %s\nQuestion: %s", TruncateText(text, p.MaxInputChars), question),
	}
}

// DictionaryAugment enriches retrieved dictionary definitions to a legal context.
func (p Prompts) DictionaryAugment(term string, defs []domain.Definition) domain.Prompt {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Term: %s\n\nGeneral dictionary definitions:\n", term)
	for i, d := range defs {
		if d.PartOfSpeech != "" {
			fmt.Fprintf(&sb, "%d. (%s) %s\n", i+1, d.PartOfSpeech, d.Text)
		} else {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, d.Text)
		}
	}
	sb.WriteString("\nUsing the definitions above, explain what this term means in a legal context. ")
	sb.WriteString("Mention how it is typically used in contracts or court documents and give one short example. ")
	sb.WriteString("If the term has no specific legal meaning, say so and explain the general meaning simply.")

	return domain.Prompt{
		Kind:   domain.PromptDictionaryAugment,
		System: "You are a legal dictionary. Explain legal terms in simple language.",
		User:   sb.String(),
	}
}

// DictionaryDefine defines a term the public dictionary did not know.
func (p Prompts) DictionaryDefine(term string) domain.Prompt {
	return domain.Prompt{
		Kind:   domain.PromptDictionaryDefine,
		System: "You are a legal dictionary. Explain legal terms in simple language.",
		User:   "Define this legal term: " + term,
	}
}

// TruncateText cuts text to at most max bytes on a rune boundary and marks the cut.
func TruncateText(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + truncationMarker
}
