// Package web serves the browser chat surface: an embedded HTML page, the
// chat API, and the transcript download.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"persona-chat/internal/persona"
	"persona-chat/internal/session"
)

type Server struct {
	manager   *session.Manager
	store     *persona.Store
	server    *http.Server
	port      int
	startTime time.Time
}

func New(manager *session.Manager, store *persona.Store, port int) *Server {
	return &Server{
		manager:   manager,
		store:     store,
		port:      port,
		startTime: time.Now(),
	}
}

func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/personas", s.handlePersonas)
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/transcript", s.handleTranscript)
	mux.HandleFunc("/", s.handleIndex)

	s.server = &http.Server{
		Addr:        fmt.Sprintf(":%d", s.port),
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
		// Write timeout covers the full upstream completion call
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("starting persona chat server on http://localhost:%d", s.port)
	return s.server.ListenAndServe()
}

func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
	})
}

type personaInfo struct {
	Name   string `json:"name"`
	Banner string `json:"banner"`
	City   string `json:"city"`
}

func (s *Server) handlePersonas(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var infos []personaInfo
	for _, name := range s.store.Names() {
		record, ok := s.store.Get(name)
		if !ok {
			continue
		}
		banner, err := persona.Banner(&record)
		if err != nil {
			continue
		}
		infos = append(infos, personaInfo{
			Name:   record.Name,
			Banner: banner,
			City:   record.Demographics.City,
		})
	}
	writeJSON(w, infos)
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Persona   string `json:"persona"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	Summary   string `json:"summary"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Persona == "" || req.Message == "" {
		http.Error(w, "persona and message are required", http.StatusBadRequest)
		return
	}

	sess := s.manager.Ensure(req.SessionID)
	reply, err := sess.ProcessTurn(r.Context(), req.Persona, req.Message)
	if err != nil {
		log.Printf("chat turn failed: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, chatResponse{
		SessionID: sess.ID(),
		Reply:     reply,
		Summary:   sess.Summary(),
	})
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := r.URL.Query().Get("session")
	if id == "" {
		http.Error(w, "session query parameter is required", http.StatusBadRequest)
		return
	}
	sess := s.manager.Get(id)
	if sess == nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="persona_transcript.txt"`)
	_, _ = w.Write([]byte(sess.Transcript()))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
