package session

import (
	"sync"
	"time"

	"datalens/domain/core"
)

// Message is one turn of a user's conversation
type Message struct {
	Role string         `json:"role"` // "user" or "bot"
	Text string         `json:"text"`
	At   core.Timestamp `json:"ts"`
}

// Memory is a bounded in-process store of recent messages per user. Request
// handlers on different goroutines share one instance, so access is
// mutex-guarded; the reasoning core itself never touches it.
type Memory struct {
	mu         sync.RWMutex
	maxPerUser int
	store      map[string][]Message
}

// NewMemory creates a memory keeping the last maxPerUser messages per user
func NewMemory(maxPerUser int) *Memory {
	if maxPerUser <= 0 {
		maxPerUser = 5
	}
	return &Memory{
		maxPerUser: maxPerUser,
		store:      make(map[string][]Message),
	}
}

// Add appends a message for a user, evicting the oldest beyond the cap
func (m *Memory) Add(userID, role, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msgs := append(m.store[userID], Message{
		Role: role,
		Text: text,
		At:   core.NewTimestamp(time.Now()),
	})
	if len(msgs) > m.maxPerUser {
		msgs = msgs[len(msgs)-m.maxPerUser:]
	}
	m.store[userID] = msgs
}

// Messages returns a user's messages in chronological order (oldest first)
func (m *Memory) Messages(userID string) []Message {
	m.mu.RLock()
	defer m.mu.RUnlock()

	msgs := m.store[userID]
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

// LastUserMessage returns the most recent message with role "user"
func (m *Memory) LastUserMessage(userID string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	msgs := m.store[userID]
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == "user" {
			return msgs[i].Text, true
		}
	}
	return "", false
}

// Clear removes all messages for a user
func (m *Memory) Clear(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, userID)
}
