package feedback

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Допустимые значения оценки вакансии пользователем.
const (
	Like    = "like"
	Dislike = "dislike"
)

// Entry хранит последнюю оценку вакансии. Повторная оценка той же
// вакансии перезаписывает предыдущую (last write wins).
type Entry struct {
	JobReference string    `json:"jobReference"`
	Value        string    `json:"value"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

var ErrInvalidValue = errors.New("feedback must be \"like\" or \"dislike\"")

// Repository — порт хранилища оценок.
type Repository interface {
	Set(ctx context.Context, entry Entry) error
	All(ctx context.Context) (map[string]string, error)
}

// UseCase валидирует оценку и делегирует хранилищу.
type UseCase interface {
	Rate(ctx context.Context, jobReference, value string) error
	All(ctx context.Context) (map[string]string, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Rate(ctx context.Context, jobReference, value string) error {
	jobReference = strings.TrimSpace(jobReference)
	if jobReference == "" {
		return errors.New("job reference is required")
	}
	value = strings.ToLower(strings.TrimSpace(value))
	if value != Like && value != Dislike {
		return ErrInvalidValue
	}
	return s.repo.Set(ctx, Entry{
		JobReference: jobReference,
		Value:        value,
		UpdatedAt:    time.Now().UTC(),
	})
}

func (s *service) All(ctx context.Context) (map[string]string, error) {
	return s.repo.All(ctx)
}
