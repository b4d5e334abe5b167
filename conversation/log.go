// Package conversation implements the append-only conversation log, the
// source of truth for dialogue context. Turns are immutable once appended
// and ordering equals conversation order.
package conversation

import (
	"sync"

	"github.com/hupe1980/convokit/core"
)

// Log is an append-only ordered sequence of turn records. Read accessors
// return defensive copies so callers cannot mutate internal state. The mutex
// protects individual operations; sequencing whole turns remains the job of
// the owning orchestrator.
type Log struct {
	mu    sync.RWMutex
	turns []core.Turn
}

// NewLog constructs an empty conversation log.
func NewLog() *Log { return &Log{turns: []core.Turn{}} }

// Append adds a prepared turn record to the log.
func (l *Log) Append(t core.Turn) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = append(l.turns, t)
}

// AppendMessage creates a turn record for role/content, appends it and
// returns the stored record.
func (l *Log) AppendMessage(role core.Role, content string) core.Turn {
	t := core.NewTurn(role, content)
	l.Append(t)
	return t
}

// Turns returns a defensive copy of the full turn slice.
func (l *Log) Turns() []core.Turn {
	l.mu.RLock()
	defer l.mu.RUnlock()
	turns := make([]core.Turn, len(l.turns))
	copy(turns, l.turns)
	return turns
}

// Len returns the number of recorded turns.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.turns)
}

// Last returns the most recent turn, if any.
func (l *Log) Last() (core.Turn, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.turns) == 0 {
		return core.Turn{}, false
	}
	return l.turns[len(l.turns)-1], true
}

// ByRole returns the turns authored by the given role, preserving order.
func (l *Log) ByRole(role core.Role) []core.Turn {
	l.mu.RLock()
	defer l.mu.RUnlock()
	res := make([]core.Turn, 0, len(l.turns))
	for _, t := range l.turns {
		if t.Role == role {
			res = append(res, t)
		}
	}
	return res
}

// Clear removes all turns. Used by the orchestrator's Reset.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = l.turns[:0]
}
