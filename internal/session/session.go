// Package session wires one user conversation through the full pipeline:
// sanitize input, compose the persona system prompt, call the chat gateway,
// filter the reply, and update the bounded history and rolling summary.
package session

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"persona-chat/internal/guardrails"
	"persona-chat/internal/llm"
	"persona-chat/internal/memory"
	"persona-chat/internal/persona"
	"persona-chat/internal/storage"
)

type transcriptEntry struct {
	role string
	text string
}

// Session owns the conversation state of a single user. A turn is processed
// synchronously end to end; the mutex only guards against overlapping HTTP
// requests reusing one session ID.
type Session struct {
	mu       sync.Mutex
	id       string
	store    *persona.Store
	client   llm.Client
	recorder storage.Recorder
	maxTurns int

	personaName string
	history     []llm.Message
	summary     string
	transcript  []transcriptEntry
}

func New(id string, store *persona.Store, client llm.Client, recorder storage.Recorder, maxTurns int) *Session {
	return &Session{
		id:       id,
		store:    store,
		client:   client,
		recorder: recorder,
		maxTurns: maxTurns,
		history:  memory.EmptyHistory(),
	}
}

func (s *Session) ID() string { return s.id }

// Persona returns the persona used by the most recent turn.
func (s *Session) Persona() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.personaName
}

// ProcessTurn runs one complete exchange. External failures (gateway errors,
// missing credential, bad responses) degrade silently to the fixed fallback
// reply; only integration errors such as an unknown persona are returned.
func (s *Session) ProcessTurn(ctx context.Context, personaName, userText string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.store.Get(personaName)
	if !ok {
		return "", fmt.Errorf("unknown persona: %q", personaName)
	}
	s.personaName = personaName

	sanitized := guardrails.Sanitize(userText)

	city := record.Demographics.City
	hint := s.store.SentimentFor(city)
	resources := s.store.ResourcesFor(city)

	systemPrompt, err := persona.BuildPrompt(&record, s.summary, hint, resources)
	if err != nil {
		return "", fmt.Errorf("build persona prompt: %w", err)
	}

	payload := llm.FormatChatPayload(systemPrompt, s.history, sanitized)

	reply := llm.FallbackMessage
	resp, err := s.client.Generate(ctx, payload)
	if err != nil {
		log.Printf("session %s: generation failed, using fallback: %v", s.id, err)
	} else {
		reply = resp.Content
	}

	processed := guardrails.PostProcess(reply)
	if processed != reply {
		category, _ := guardrails.Scan(reply)
		log.Printf("session %s: reply blocked by %s filter", s.id, category)
	}

	history, summary, err := memory.PushAndSummarize(s.history, sanitized, processed, s.maxTurns)
	if err != nil {
		return "", fmt.Errorf("update conversation state: %w", err)
	}
	s.history = history
	s.summary = summary

	s.transcript = append(s.transcript,
		transcriptEntry{role: llm.RoleUser, text: sanitized},
		transcriptEntry{role: llm.RoleAssistant, text: processed},
	)

	if s.recorder != nil {
		ex := storage.Exchange{
			Timestamp:         time.Now().UTC(),
			SessionID:         s.id,
			Persona:           personaName,
			UserMessage:       sanitized,
			AssistantResponse: processed,
		}
		if err := s.recorder.AppendExchange(ex); err != nil {
			log.Printf("session %s: failed to record exchange: %v", s.id, err)
		}
	}

	return processed, nil
}

// History returns a copy of the retained message window.
func (s *Session) History() []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]llm.Message, len(s.history))
	copy(out, s.history)
	return out
}

// Summary returns the rolling one-exchange summary.
func (s *Session) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// Transcript renders every exchanged turn as "ROLE: text" lines separated by
// blank lines, suitable for download as a plain-text artifact.
func (s *Session) Transcript() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := make([]string, 0, len(s.transcript))
	for _, t := range s.transcript {
		lines = append(lines, fmt.Sprintf("%s: %s", strings.ToUpper(t.role), t.text))
	}
	return strings.Join(lines, "\n\n")
}
