package job

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobfinder/pkg/embedding"
	"github.com/artem13815/jobfinder/pkg/vectorstore/memory"
)

type stubEncoder struct {
	err   error
	calls int
}

func (s *stubEncoder) Encode(context.Context, string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []float32{1, 0}, nil
}

func (s *stubEncoder) Dimension() int { return 2 }

func TestEmbeddingText(t *testing.T) {
	j := Job{
		Reference:   "job_1",
		Title:       "Senior Python Developer",
		CompanyName: "Acme",
		City:        "Paris",
		Skills:      "django flask postgresql",
	}
	text := EmbeddingText(j)
	for _, w := range []string{"python", "developer", "django", "flask", "paris"} {
		assert.Contains(t, text, w)
	}

	assert.Equal(t, "", EmbeddingText(Job{Reference: "job_2"}))
}

func TestIngestPartialFailure(t *testing.T) {
	store := memory.New()
	svc := NewIngestService(&stubEncoder{}, store, nil)

	report, err := svc.Ingest(context.Background(), []Job{
		{Reference: "job_1", Title: "Python Developer"},
		{Reference: "", Title: "No Reference"},
		{Reference: "job_3"}, // нечего эмбеддить
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Ingested)
	assert.Equal(t, 2, report.Failed)

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestIngestModelUnavailableIsFatal(t *testing.T) {
	enc := &stubEncoder{err: fmt.Errorf("%w: connect refused", embedding.ErrModelUnavailable)}
	svc := NewIngestService(enc, memory.New(), nil)

	report, err := svc.Ingest(context.Background(), []Job{
		{Reference: "job_1", Title: "Python Developer"},
		{Reference: "job_2", Title: "Java Developer"},
	})
	require.ErrorIs(t, err, embedding.ErrModelUnavailable)
	assert.Zero(t, report.Ingested)
	// пачка обрывается на первой же попытке
	assert.Equal(t, 1, enc.calls)
}

func TestIngestEmbedErrorCountsAsFailed(t *testing.T) {
	enc := &stubEncoder{err: errors.New("timeout")}
	svc := NewIngestService(enc, memory.New(), nil)

	report, err := svc.Ingest(context.Background(), []Job{
		{Reference: "job_1", Title: "Python Developer"},
	})
	require.NoError(t, err)
	assert.Zero(t, report.Ingested)
	assert.Equal(t, 1, report.Failed)
}

func TestIngestTwiceKeepsOneRecord(t *testing.T) {
	store := memory.New()
	svc := NewIngestService(&stubEncoder{}, store, nil)
	batch := []Job{{Reference: "job_1", Title: "Python Developer"}}

	for i := 0; i < 2; i++ {
		report, err := svc.Ingest(context.Background(), batch)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Ingested)
	}

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n, "re-ingest must upsert, not duplicate")
}
