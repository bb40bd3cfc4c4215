// Package chat holds the per-user conversation memory and builds the
// prompts sent to the completion API.
package chat

import (
	"strings"
	"sync"
	"time"
)

const (
	// historyCap bounds the stored exchanges per user; the oldest entry
	// is evicted first.
	historyCap = 10
	// contextWindow is how many recent exchanges ContextFor renders.
	contextWindow = 5
)

// Entry is a single completed ask exchange. Immutable once recorded.
type Entry struct {
	User string
	Bot  string
	At   time.Time
}

// History is the process-wide conversation memory, keyed by user ID.
// It lives for the process lifetime and is never persisted.
type History struct {
	mu      sync.Mutex
	entries map[string][]Entry
}

func NewHistory() *History {
	return &History{entries: map[string][]Entry{}}
}

// Record appends a completed exchange for userID, evicting the oldest
// entry once the per-user cap is exceeded.
func (h *History) Record(userID, userMessage, botResponse string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := append(h.entries[userID], Entry{
		User: userMessage,
		Bot:  botResponse,
		At:   time.Now(),
	})
	if len(entries) > historyCap {
		entries = entries[len(entries)-historyCap:]
	}
	h.entries[userID] = entries
}

// ContextFor renders the most recent exchanges for userID, oldest
// first, as an alternating User/Bot transcript. Empty string when the
// user has no history.
func (h *History) ContextFor(userID string) string {
	h.mu.Lock()
	entries := h.entries[userID]
	if len(entries) > contextWindow {
		entries = entries[len(entries)-contextWindow:]
	}
	recent := make([]Entry, len(entries))
	copy(recent, entries)
	h.mu.Unlock()

	if len(recent) == 0 {
		return ""
	}

	blocks := make([]string, 0, len(recent))
	for _, e := range recent {
		blocks = append(blocks, "User: "+e.User+"\nBot: "+e.Bot)
	}
	return strings.Join(blocks, "\n\n")
}

// Len reports how many exchanges are stored for userID.
func (h *History) Len(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries[userID])
}
