package mocks

import (
	"context"
	"sync"

	"github.com/ricardozepinto10/NextGenAcademy/internal/notify"
)

// MockNotifier records every message it is asked to send
type MockNotifier struct {
	mu       sync.Mutex
	messages []notify.Message

	// Err, when set, is returned from every Send after recording the message
	Err error
}

var _ notify.Notifier = (*MockNotifier)(nil)

// NewMockNotifier creates a MockNotifier that accepts every message
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (n *MockNotifier) Send(ctx context.Context, msg notify.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
	return n.Err
}

// Messages returns a copy of the recorded messages
func (n *MockNotifier) Messages() []notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Message(nil), n.messages...)
}
