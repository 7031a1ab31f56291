package matching

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobfinder/pkg/cv"
	"github.com/artem13815/jobfinder/pkg/job"
	"github.com/artem13815/jobfinder/pkg/vectorstore"
	"github.com/artem13815/jobfinder/pkg/vectorstore/memory"
)

// stubEncoder считает вектор из наличия опорных слов в тексте, чтобы
// тесты не зависели от настоящей модели.
type stubEncoder struct {
	fn    func(text string) []float32
	err   error
	calls int
}

func (s *stubEncoder) Encode(_ context.Context, text string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.fn(text), nil
}

func (s *stubEncoder) Dimension() int { return 2 }

func constEncoder(vec []float32) *stubEncoder {
	return &stubEncoder{fn: func(string) []float32 { return vec }}
}

type stubCatalog struct{ jobs map[string]job.Job }

func (s *stubCatalog) UpsertBatch(context.Context, []job.Job) error { return nil }

func (s *stubCatalog) GetByReference(_ context.Context, ref string) (job.Job, error) {
	if j, ok := s.jobs[ref]; ok {
		return j, nil
	}
	return job.Job{}, job.ErrNotFound
}

func (s *stubCatalog) ListAll(context.Context, int, int) ([]job.Job, error) { return nil, nil }

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.New()
	err := s.Upsert(context.Background(), []vectorstore.Record{
		{
			Reference: "job_1",
			Embedding: []float32{1, 0},
			Document:  "senior python developer django",
			Metadata: map[string]string{
				"name":         "Senior Python Developer",
				"company_name": "Acme",
				"city":         "Paris",
				"url":          "https://example.com/jobs/1",
			},
		},
		{Reference: "job_2", Embedding: []float32{0.5, 0.5}, Document: "data engineer spark"},
		{Reference: "job_3", Embedding: []float32{0, 1}, Document: "java architect spring"},
	})
	require.NoError(t, err)
	return s
}

func TestRankScore(t *testing.T) {
	assert.InDelta(t, 1.0, rankScore(1, 5), 1e-9)
	assert.InDelta(t, 0.1, rankScore(5, 5), 1e-9)
	assert.InDelta(t, 1.0, rankScore(1, 1), 1e-9)
	assert.InDelta(t, 0.1, rankScore(2, 2), 1e-9)

	for total := 2; total <= 10; total++ {
		for rank := 2; rank <= total; rank++ {
			assert.Less(t, rankScore(rank, total), rankScore(rank-1, total),
				"score must strictly decrease: rank %d of %d", rank, total)
		}
	}
}

func TestMatchTextRanksAndScores(t *testing.T) {
	svc := NewService(constEncoder([]float32{1, 0}), seededStore(t), nil, "jobs", 20)

	matches, err := svc.MatchText(context.Background(), "python django development", 3, 0)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, "job_1", matches[0].JobReference)
	assert.Equal(t, "job_2", matches[1].JobReference)
	assert.Equal(t, "job_3", matches[2].JobReference)

	assert.InDelta(t, 1.0, matches[0].SimilarityScore, 1e-9)
	assert.InDelta(t, 0.55, matches[1].SimilarityScore, 1e-9)
	assert.InDelta(t, 0.1, matches[2].SimilarityScore, 1e-9)

	assert.Equal(t, 1, matches[0].Rank)
	assert.Equal(t, 3, matches[2].Rank)
	assert.InDelta(t, 100.0, matches[0].MatchPercentage, 1e-9)
	assert.Equal(t, 0.0, matches[0].Distance)

	assert.Equal(t, "Senior Python Developer", matches[0].JobTitle)
	assert.Equal(t, "Acme", matches[0].CompanyName)
	assert.Equal(t, "Paris", matches[0].City)
}

func TestMatchTextMinScoreFilter(t *testing.T) {
	svc := NewService(constEncoder([]float32{1, 0}), seededStore(t), nil, "jobs", 20)

	matches, err := svc.MatchText(context.Background(), "python django development", 3, 0.5)
	require.NoError(t, err)
	// порог применяется к ранговой оценке: 1.0 и 0.55 проходят, 0.1 нет
	require.Len(t, matches, 2)
	assert.Equal(t, "job_1", matches[0].JobReference)
	assert.Equal(t, "job_2", matches[1].JobReference)
}

func TestMatchTextEmptyIndex(t *testing.T) {
	svc := NewService(constEncoder([]float32{1, 0}), memory.New(), nil, "jobs", 20)

	matches, err := svc.MatchText(context.Background(), "python developer", 5, 0)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestMatchTextEmptyCV(t *testing.T) {
	enc := constEncoder([]float32{1, 0})
	svc := NewService(enc, seededStore(t), nil, "jobs", 20)

	_, err := svc.MatchText(context.Background(), "   \n ", 5, 0)
	require.ErrorIs(t, err, cv.ErrNoTextExtracted)
	assert.Zero(t, enc.calls, "empty CV must not reach the model")
}

func TestMatchPlaceholdersWithoutMetadata(t *testing.T) {
	svc := NewService(constEncoder([]float32{1, 0}), seededStore(t), nil, "jobs", 20)

	matches, err := svc.MatchText(context.Background(), "python django development", 3, 0)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	// job_2 проиндексирован без метаданных
	assert.Equal(t, "Unknown Title", matches[1].JobTitle)
	assert.Equal(t, "Unknown Company", matches[1].CompanyName)
	assert.Equal(t, "Unknown City", matches[1].City)
}

func TestMatchCatalogOverridesMetadata(t *testing.T) {
	catalog := &stubCatalog{jobs: map[string]job.Job{
		"job_1": {Reference: "job_1", Title: "Backend Engineer", CompanyName: "Globex"},
	}}
	svc := NewService(constEncoder([]float32{1, 0}), seededStore(t), catalog, "jobs", 20)

	matches, err := svc.MatchText(context.Background(), "python django development", 1, 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Backend Engineer", matches[0].JobTitle)
	assert.Equal(t, "Globex", matches[0].CompanyName)
	// каталог города не знает — остаются метаданные индекса
	assert.Equal(t, "Paris", matches[0].City)
}

func TestMatchDescriptionTruncated(t *testing.T) {
	s := memory.New()
	long := strings.Repeat("badge ", 60) // 360 символов
	require.NoError(t, s.Upsert(context.Background(), []vectorstore.Record{
		{Reference: "job_long", Embedding: []float32{1, 0}, Document: long},
	}))
	svc := NewService(constEncoder([]float32{1, 0}), s, nil, "jobs", 20)

	matches, err := svc.MatchText(context.Background(), "python developer", 1, 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.True(t, strings.HasSuffix(matches[0].JobDescription, "..."))
	assert.Len(t, []rune(matches[0].JobDescription), 203)
}

func TestStats(t *testing.T) {
	svc := NewService(constEncoder([]float32{1, 0}), seededStore(t), nil, "jobs", 20)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalJobs)
	assert.Equal(t, "jobs", stats.Collection)
}
