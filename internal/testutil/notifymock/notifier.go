package notifymock

import (
	"context"
	"sync"

	"auction-registration/internal/domain/notify"
)

// Notifier records every message so tests can assert on post-commit
// notifications.
type Notifier struct {
	mu   sync.Mutex
	sent []notify.Message
}

var _ notify.Notifier = (*Notifier)(nil)

func (m *Notifier) Notify(_ context.Context, msg notify.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
}

func (m *Notifier) Sent() []notify.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]notify.Message, len(m.sent))
	copy(out, m.sent)
	return out
}

func (m *Notifier) SentOfKind(k notify.Kind) []notify.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []notify.Message
	for _, msg := range m.sent {
		if msg.Kind == k {
			out = append(out, msg)
		}
	}
	return out
}
