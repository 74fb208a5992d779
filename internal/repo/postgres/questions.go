package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/geocoder89/supportdesk/internal/domain/question"
	"github.com/geocoder89/supportdesk/internal/observability"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type QuestionsRepo struct {
	pool    *pgxpool.Pool
	metrics *observability.Prom
}

func NewQuestionsRepo(pool *pgxpool.Pool, metrics *observability.Prom) *QuestionsRepo {
	return &QuestionsRepo{pool: pool, metrics: metrics}
}

func (r *QuestionsRepo) observe(op string, fn func() error) error {
	if r.metrics == nil {
		return fn()
	}
	return r.metrics.ObserveDB(op, fn)
}

func (r *QuestionsRepo) Create(ctx context.Context, questionText, askedBy string) (question.Question, error) {
	now := time.Now().UTC()

	q := question.Question{
		ID:           uuid.NewString(),
		QuestionText: questionText,
		AskedBy:      askedBy,
		Answer:       "",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := r.observe("questions.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO questions (id, question_text, asked_by, answer, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			q.ID, q.QuestionText, q.AskedBy, q.Answer, q.CreatedAt, q.UpdatedAt,
		)
		return err
	})

	if err != nil {
		return question.Question{}, err
	}

	return q, nil
}

func (r *QuestionsRepo) GetByID(ctx context.Context, id string) (question.Question, error) {
	var q question.Question

	err := r.observe("questions.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, question_text, asked_by, answer, created_at, updated_at
			 FROM questions
			 WHERE id = $1`,
			id,
		).Scan(&q.ID, &q.QuestionText, &q.AskedBy, &q.Answer, &q.CreatedAt, &q.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return question.Question{}, question.ErrNotFound
		}
		return question.Question{}, err
	}

	return q, nil
}

func (r *QuestionsRepo) ListAll(ctx context.Context) ([]question.Question, error) {
	return r.list(ctx, "questions.list_all",
		`SELECT id, question_text, asked_by, answer, created_at, updated_at
		 FROM questions
		 ORDER BY created_at DESC, id DESC`,
	)
}

func (r *QuestionsRepo) ListByAsker(ctx context.Context, askerID string) ([]question.Question, error) {
	return r.list(ctx, "questions.list_by_asker",
		`SELECT id, question_text, asked_by, answer, created_at, updated_at
		 FROM questions
		 WHERE asked_by = $1
		 ORDER BY created_at DESC, id DESC`,
		askerID,
	)
}

func (r *QuestionsRepo) list(ctx context.Context, op, query string, args ...interface{}) ([]question.Question, error) {
	var out []question.Question

	err := r.observe(op, func() error {
		rows, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var q question.Question

			err = rows.Scan(&q.ID, &q.QuestionText, &q.AskedBy, &q.Answer, &q.CreatedAt, &q.UpdatedAt)
			if err != nil {
				return err
			}
			out = append(out, q)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	if out == nil {
		out = []question.Question{}
	}

	return out, nil
}

// SetAnswer replaces the answer field. Passing "" clears it; clearing an
// already-empty answer is a no-op that still succeeds.
func (r *QuestionsRepo) SetAnswer(ctx context.Context, id, answer string) (question.Question, error) {
	var q question.Question

	err := r.observe("questions.set_answer", func() error {
		return r.pool.QueryRow(ctx,
			`UPDATE questions
			 SET answer = $2, updated_at = $3
			 WHERE id = $1
			 RETURNING id, question_text, asked_by, answer, created_at, updated_at`,
			id, answer, time.Now().UTC(),
		).Scan(&q.ID, &q.QuestionText, &q.AskedBy, &q.Answer, &q.CreatedAt, &q.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return question.Question{}, question.ErrNotFound
		}
		return question.Question{}, err
	}

	return q, nil
}

func (r *QuestionsRepo) Delete(ctx context.Context, id string) error {
	return r.observe("questions.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return question.ErrNotFound
		}
		return nil
	})
}
