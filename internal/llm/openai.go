package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// requestTimeout bounds a single completion call. There are no retries: a
// timeout or error surfaces to the caller, which degrades to FallbackMessage.
const requestTimeout = 45 * time.Second

type OpenAIClient struct {
	client          *openai.Client
	model           string
	temperature     float32
	presencePenalty float32
}

type headerTransport struct {
	rt      http.RoundTripper
	headers http.Header
}

func (t headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone request to avoid mutating the original
	cl := req.Clone(req.Context())
	for k, vs := range t.headers {
		for _, v := range vs {
			cl.Header.Add(k, v)
		}
	}
	return t.rt.RoundTrip(cl)
}

// NewOpenAI builds a client for any OpenAI-compatible chat-completions
// endpoint. referrer and title map to the HTTP-Referer and X-Title headers
// OpenRouter uses for app attribution.
func NewOpenAI(apiKey, baseURL, model string, temperature, presencePenalty float32, referrer, title string) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	transport := http.DefaultTransport
	if referrer != "" || title != "" {
		h := http.Header{}
		if referrer != "" {
			h.Set("HTTP-Referer", referrer)
		}
		if title != "" {
			h.Set("X-Title", title)
		}
		transport = headerTransport{rt: transport, headers: h}
	}
	config.HTTPClient = &http.Client{Transport: transport, Timeout: requestTimeout}
	return &OpenAIClient{
		client:          openai.NewClientWithConfig(config),
		model:           model,
		temperature:     temperature,
		presencePenalty: presencePenalty,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, messages []Message) (Response, error) {
	var oaMsgs []openai.ChatCompletionMessage
	for _, m := range messages {
		oaMsgs = append(oaMsgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	req := openai.ChatCompletionRequest{
		Model:           c.model,
		Messages:        oaMsgs,
		Temperature:     c.temperature,
		PresencePenalty: c.presencePenalty,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return Response{}, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, fmt.Errorf("completion returned no choices")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return Response{}, fmt.Errorf("completion returned empty content")
	}

	out := Response{
		Content: content,
		Model:   c.model,
	}
	out.PromptTokens = resp.Usage.PromptTokens
	out.CompletionTokens = resp.Usage.CompletionTokens
	out.TotalTokens = resp.Usage.TotalTokens
	return out, nil
}
