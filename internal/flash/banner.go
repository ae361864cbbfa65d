package flash

import (
	"sync"
	"time"
)

// DefaultTTL is how long a banner stays visible.
const DefaultTTL = 3 * time.Second

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

type Message struct {
	Kind      Kind      `json:"kind"`
	Text      string    `json:"text"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Banner is a single transient page message. A new message replaces the
// previous one.
type Banner struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time
	msg *Message
}

func New(ttl time.Duration, now func() time.Time) *Banner {
	if now == nil {
		now = time.Now
	}
	return &Banner{ttl: ttl, now: now}
}

func (b *Banner) Success(text string) {
	b.set(Success, text)
}

func (b *Banner) Error(text string) {
	b.set(Error, text)
}

func (b *Banner) set(kind Kind, text string) {
	b.mu.Lock()
	b.msg = &Message{Kind: kind, Text: text, ExpiresAt: b.now().Add(b.ttl)}
	b.mu.Unlock()
}

// Current returns the visible message, or nil once it expired.
func (b *Banner) Current() *Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.msg == nil {
		return nil
	}
	if !b.now().Before(b.msg.ExpiresAt) {
		b.msg = nil
		return nil
	}
	m := *b.msg
	return &m
}

func (b *Banner) Clear() {
	b.mu.Lock()
	b.msg = nil
	b.mu.Unlock()
}
