package core

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a conversation turn record.
type Role string

const (
	// RoleUser marks input supplied by the end user.
	RoleUser Role = "user"
	// RoleAgent marks responses produced by the orchestrator.
	RoleAgent Role = "agent"
	// RoleSystem marks tool output and other orchestration records.
	RoleSystem Role = "system"
)

// Turn is a single record in the conversation log. After it has been
// appended to a log it must be treated as immutable; ordering of turns is
// insertion order and equals conversation order.
type Turn struct {
	ID        string            `json:"id"`
	Role      Role              `json:"role"`
	Content   string            `json:"content"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// NewTurn creates a turn record authored by 'role' with a fresh ID and a
// high precision UTC timestamp.
func NewTurn(role Role, content string) Turn {
	return Turn{
		ID:        NewID(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// NewID generates a new unique identifier for turn records.
//
// Returns a string representation of a new UUID.
func NewID() string { return uuid.NewString() }

// UnixSeconds returns the timestamp as fractional seconds since Unix epoch.
// Useful for metrics & numeric serialization paths.
func (t Turn) UnixSeconds() float64 { return float64(t.Timestamp.UnixNano()) / 1e9 }
