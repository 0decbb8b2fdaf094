package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func completionServer(t *testing.T, content string, capture *http.Header) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			*capture = r.Header.Clone()
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
			"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestOpenAIGenerateTrimsContent(t *testing.T) {
	srv := completionServer(t, "  a reply with padding \n", nil)
	defer srv.Close()

	client := NewOpenAI("test-key", srv.URL+"/v1", "test-model", 0.8, 0.4, "", "")
	resp, err := client.Generate(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "a reply with padding" {
		t.Fatalf("content not trimmed: %q", resp.Content)
	}
	if resp.TotalTokens != 15 {
		t.Fatalf("usage not mapped: %+v", resp)
	}
}

func TestOpenAIGenerateSendsAttributionHeaders(t *testing.T) {
	var got http.Header
	srv := completionServer(t, "ok", &got)
	defer srv.Close()

	client := NewOpenAI("test-key", srv.URL+"/v1", "test-model", 0.8, 0.4, "https://example.org", "Persona Chat")
	if _, err := client.Generate(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Get("HTTP-Referer") != "https://example.org" {
		t.Fatalf("HTTP-Referer not sent: %v", got)
	}
	if got.Get("X-Title") != "Persona Chat" {
		t.Fatalf("X-Title not sent: %v", got)
	}
	if got.Get("Authorization") != "Bearer test-key" {
		t.Fatalf("Authorization not sent: %v", got)
	}
}

func TestOpenAIGenerateEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	client := NewOpenAI("test-key", srv.URL+"/v1", "test-model", 0.8, 0.4, "", "")
	if _, err := client.Generate(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}); err == nil {
		t.Fatalf("expected error for empty choices")
	}
}

func TestOpenAIGenerateEmptyContent(t *testing.T) {
	srv := completionServer(t, "   ", nil)
	defer srv.Close()

	client := NewOpenAI("test-key", srv.URL+"/v1", "test-model", 0.8, 0.4, "", "")
	if _, err := client.Generate(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}); err == nil {
		t.Fatalf("expected error for blank content")
	}
}

func TestOpenAIGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewOpenAI("test-key", srv.URL+"/v1", "test-model", 0.8, 0.4, "", "")
	if _, err := client.Generate(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}); err == nil {
		t.Fatalf("expected error for non-success status")
	}
}
