package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/geocoder89/supportdesk/internal/domain/question"
	"github.com/google/uuid"
)

type QuestionsRepo struct {
	mu    sync.RWMutex
	items map[string]question.Question
}

func NewQuestionsRepo() *QuestionsRepo {
	return &QuestionsRepo{
		items: make(map[string]question.Question),
	}
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

	r.mu.Lock()
	r.items[q.ID] = q
	r.mu.Unlock()

	return q, nil
}

func (r *QuestionsRepo) GetByID(ctx context.Context, id string) (question.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.items[id]
	if !ok {
		return question.Question{}, question.ErrNotFound
	}

	return q, nil
}

func (r *QuestionsRepo) ListAll(ctx context.Context) ([]question.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]question.Question, 0, len(r.items))
	for _, q := range r.items {
		out = append(out, q)
	}

	sortNewestFirst(out)

	return out, nil
}

func (r *QuestionsRepo) ListByAsker(ctx context.Context, askerID string) ([]question.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]question.Question, 0)
	for _, q := range r.items {
		if q.AskedBy == askerID {
			out = append(out, q)
		}
	}

	sortNewestFirst(out)

	return out, nil
}

func (r *QuestionsRepo) SetAnswer(ctx context.Context, id, answer string) (question.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.items[id]
	if !ok {
		return question.Question{}, question.ErrNotFound
	}

	q.Answer = answer
	q.UpdatedAt = time.Now().UTC()
	r.items[id] = q

	return q, nil
}

func (r *QuestionsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return question.ErrNotFound
	}

	delete(r.items, id)

	return nil
}

func sortNewestFirst(qs []question.Question) {
	sort.Slice(qs, func(i, j int) bool {
		if qs[i].CreatedAt.Equal(qs[j].CreatedAt) {
			return qs[i].ID > qs[j].ID
		}
		return qs[i].CreatedAt.After(qs[j].CreatedAt)
	})
}
