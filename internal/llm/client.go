package llm

import "context"

// FallbackMessage is substituted by the session layer whenever the gateway
// fails: missing credential, transport error, timeout, or an unusable
// response. The chat user never sees a raw error.
const FallbackMessage = "I’m sorry, I’m unable to respond right now. Let’s revisit this topic in a moment."

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string
	Content string
}

type Response struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

type Client interface {
	Generate(ctx context.Context, messages []Message) (Response, error)
}
