package vectorstore

import (
	"context"
	"errors"
)

// ErrUnavailable — векторный индекс недоступен (сеть, коллекция и т.п.).
// Наружу отдаётся как service-unavailable, тихого отката нет.
var ErrUnavailable = errors.New("vector index unavailable")

// Record — хранимая запись индекса: одна запись на reference,
// повторный Upsert с тем же reference заменяет запись целиком.
type Record struct {
	Reference string
	Embedding []float32
	Document  string
	Metadata  map[string]string
}

// QueryResult is a nearest-neighbour hit. Distance is whatever metric the
// index uses internally: opaque, non-negative, smaller is more similar.
type QueryResult struct {
	Reference string
	Distance  float64
	Document  string
	Metadata  map[string]string
}

// Store — порт векторного индекса.
type Store interface {
	Upsert(ctx context.Context, records []Record) error
	Query(ctx context.Context, embedding []float32, k int) ([]QueryResult, error)
	// Get возвращает записи по ссылкам, включая эмбеддинги.
	// Отсутствующие ссылки просто пропускаются.
	Get(ctx context.Context, references []string) ([]Record, error)
	Count(ctx context.Context) (int, error)
}
