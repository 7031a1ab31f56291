package memory

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/artem13815/jobfinder/pkg/vectorstore"
)

// Store — индекс в памяти с полным перебором по евклидову расстоянию.
// Используется в тестах и для локального запуска без ChromaDB.
type Store struct {
	mu      sync.RWMutex
	order   []string // порядок первой вставки, для стабильных результатов
	records map[string]vectorstore.Record
}

func New() *Store {
	return &Store{records: make(map[string]vectorstore.Record)}
}

func (s *Store) Upsert(ctx context.Context, records []vectorstore.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		if r.Reference == "" {
			return errors.New("record reference is empty")
		}
		if _, exists := s.records[r.Reference]; !exists {
			s.order = append(s.order, r.Reference)
		}
		s.records[r.Reference] = r
	}
	return nil
}

func (s *Store) Query(ctx context.Context, embedding []float32, k int) ([]vectorstore.QueryResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if k <= 0 {
		k = 5
	}
	results := make([]vectorstore.QueryResult, 0, len(s.order))
	for _, ref := range s.order {
		r := s.records[ref]
		results = append(results, vectorstore.QueryResult{
			Reference: r.Reference,
			Distance:  euclidean(embedding, r.Embedding),
			Document:  r.Document,
			Metadata:  r.Metadata,
		})
	}
	// стабильная сортировка: при равных расстояниях сохраняется порядок вставки
	sort.SliceStable(results, func(i, j int) bool { return results[i].Distance < results[j].Distance })
	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

func (s *Store) Get(ctx context.Context, references []string) ([]vectorstore.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]vectorstore.Record, 0, len(references))
	for _, ref := range references {
		if r, ok := s.records[ref]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func euclidean(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
