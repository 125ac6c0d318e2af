// Package session holds the per-browser-session chat history.
package session

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// RoleUser labels the prompt entry appended before every bot entry.
const RoleUser = "user"

const botRolePrefix = "bot-image-"

// BotRole returns the role label for the response to the image at 1-based index.
func BotRole(index int) string {
	return botRolePrefix + strconv.Itoa(index)
}

// ChatEntry is one immutable line of the chat history.
type ChatEntry struct {
	Role string `json:"role"`
	Text string `json:"text"`

	// Failed marks a bot entry recording a generation failure; Text holds the reason.
	Failed bool `json:"failed,omitempty"`
}

// ImageIndex returns the image index of a bot entry, or 0 for user entries.
func (e ChatEntry) ImageIndex() int {
	idx, ok := strings.CutPrefix(e.Role, botRolePrefix)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(idx)
	if err != nil {
		return 0
	}
	return n
}

// Label is the display name shown in the chat history.
func (e ChatEntry) Label() string {
	if n := e.ImageIndex(); n > 0 {
		return fmt.Sprintf("Bot (Image %d)", n)
	}
	if e.Role == RoleUser {
		return "You"
	}
	return e.Role
}

// Log is an append-only, ordered chat history. It is safe for concurrent use
// since two tabs may share one session.
type Log struct {
	mu      sync.RWMutex
	entries []ChatEntry
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{}
}

// Append adds entries to the end of the log, keeping them adjacent.
func (l *Log) Append(entries ...ChatEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entries...)
}

// All returns a copy of every entry in append order.
func (l *Log) All() []ChatEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]ChatEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
