package memory

import (
	"context"
	"sync"
	"time"

	"github.com/geocoder89/supportdesk/internal/domain/message"
	"github.com/google/uuid"
)

type MessagesRepo struct {
	mu    sync.RWMutex
	items map[string]message.Message
}

func NewMessagesRepo() *MessagesRepo {
	return &MessagesRepo{
		items: make(map[string]message.Message),
	}
}

func (r *MessagesRepo) Create(ctx context.Context, text, sender, recipient string) (message.Message, error) {
	m := message.Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		Recipient: recipient,
		IsRead:    false,
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.items[m.ID] = m
	r.mu.Unlock()

	return m, nil
}

// All returns every stored message; test-only convenience.
func (r *MessagesRepo) All() []message.Message {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]message.Message, 0, len(r.items))
	for _, m := range r.items {
		out = append(out, m)
	}

	return out
}
