package postgres

import (
	"context"
	"time"

	"github.com/geocoder89/supportdesk/internal/domain/message"
	"github.com/geocoder89/supportdesk/internal/observability"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MessagesRepo struct {
	pool    *pgxpool.Pool
	metrics *observability.Prom
}

func NewMessagesRepo(pool *pgxpool.Pool, metrics *observability.Prom) *MessagesRepo {
	return &MessagesRepo{pool: pool, metrics: metrics}
}

func (r *MessagesRepo) observe(op string, fn func() error) error {
	if r.metrics == nil {
		return fn()
	}
	return r.metrics.ObserveDB(op, fn)
}

// Create stores a directed message. Messages are write-only in the current
// surface; delivery and listing are out of scope.
func (r *MessagesRepo) Create(ctx context.Context, text, sender, recipient string) (message.Message, error) {
	m := message.Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		Recipient: recipient,
		IsRead:    false,
		CreatedAt: time.Now().UTC(),
	}

	err := r.observe("messages.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO messages (id, text, sender, recipient, is_read, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			m.ID, m.Text, m.Sender, m.Recipient, m.IsRead, m.CreatedAt,
		)
		return err
	})

	if err != nil {
		return message.Message{}, err
	}

	return m, nil
}
