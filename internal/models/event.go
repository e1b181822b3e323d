package models

import "time"

// DealEvent is published after a committed mutation. Type doubles as the
// routing key.
type DealEvent struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	DealID     string            `json:"deal_id"`
	ActorID    string            `json:"actor_id"`
	Version    int64             `json:"version"`
	Data       map[string]string `json:"data,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}
