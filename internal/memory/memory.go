// Package memory keeps the bounded per-session conversation window and the
// rolling one-exchange summary fed back into the next system prompt.
package memory

import (
	"fmt"
	"strings"

	"persona-chat/internal/llm"
)

// excerptLimit caps user/assistant excerpts inside the summary sentence.
const excerptLimit = 120

// moodKeywords is checked against the assistant excerpt in order; the first
// matching label wins. Order and keyword sets are load-bearing: summaries are
// asserted on downstream.
var moodKeywords = []struct {
	label    string
	keywords []string
}{
	{"hopeful", []string{"hope", "optimistic", "positive", "reassured"}},
	{"concerned", []string{"worried", "concern", "uneasy", "anxious"}},
	{"resolute", []string{"confident", "determined", "prepared", "ready"}},
}

func EmptyHistory() []llm.Message {
	return []llm.Message{}
}

// PushAndSummarize appends one user/assistant exchange to a copy of history,
// trims it to the most recent maxTurns*2 entries, and produces a fresh
// summary of just this exchange. The input slice is never mutated.
func PushAndSummarize(history []llm.Message, userText, assistantText string, maxTurns int) ([]llm.Message, string, error) {
	if maxTurns < 1 {
		return nil, "", fmt.Errorf("maxTurns must be at least 1, got %d", maxTurns)
	}

	updated := make([]llm.Message, 0, len(history)+2)
	updated = append(updated, history...)

	userEntry := llm.Message{Role: llm.RoleUser, Content: strings.TrimSpace(userText)}
	assistantEntry := llm.Message{Role: llm.RoleAssistant, Content: strings.TrimSpace(assistantText)}
	updated = append(updated, userEntry, assistantEntry)

	maxItems := maxTurns * 2
	if len(updated) > maxItems {
		updated = updated[len(updated)-maxItems:]
	}

	summary := summarizeTurn(userEntry.Content, assistantEntry.Content)
	return updated, summary, nil
}

func summarizeTurn(userText, assistantText string) string {
	userExcerpt := excerpt(userText)
	assistantExcerpt := excerpt(assistantText)

	mood := "steady"
	lowerAssistant := strings.ToLower(assistantExcerpt)
	for _, entry := range moodKeywords {
		if containsAny(lowerAssistant, entry.keywords) {
			mood = entry.label
			break
		}
	}

	switch {
	case userExcerpt != "" && assistantExcerpt != "":
		return fmt.Sprintf("Recent discussion: %s | Response mood: %s, highlighted %s", userExcerpt, mood, assistantExcerpt)
	case userExcerpt != "":
		return fmt.Sprintf("Recent discussion: %s | Response mood: %s", userExcerpt, mood)
	case assistantExcerpt != "":
		return fmt.Sprintf("Recent response mood: %s, highlighted %s", mood, assistantExcerpt)
	default:
		return "Recent exchange noted; mood steady."
	}
}

// excerpt collapses whitespace and truncates to excerptLimit runes with an
// ellipsis marker.
func excerpt(text string) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	runes := []rune(collapsed)
	if len(runes) <= excerptLimit {
		return collapsed
	}
	return strings.TrimRight(string(runes[:excerptLimit-3]), " ") + "..."
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
