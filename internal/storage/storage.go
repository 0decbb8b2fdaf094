package storage

import "time"

// Exchange records one completed conversation turn: the sanitized user
// message and the filtered assistant reply. Exchanges are appended in
// chronological order.
type Exchange struct {
	Timestamp         time.Time `json:"timestamp"`
	SessionID         string    `json:"session_id"`
	Persona           string    `json:"persona"`
	UserMessage       string    `json:"user_message"`
	AssistantResponse string    `json:"assistant_response"`
}

// Recorder abstracts persistence of exchanges.
// Implementations can be file-based, database, etc.
// LoadExchanges should return exchanges in chronological order.
// AppendExchange should atomically append a new exchange.
// Implementations must be safe for concurrent use.
type Recorder interface {
	AppendExchange(ex Exchange) error
	LoadExchanges() ([]Exchange, error)
}
