package matching

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobfinder/pkg/vectorstore"
	"github.com/artem13815/jobfinder/pkg/vectorstore/memory"
)

// keywordEncoder раскладывает текст по двум осям: python и java.
func keywordEncoder() *stubEncoder {
	return &stubEncoder{fn: func(text string) []float32 {
		v := []float32{0, 0}
		if strings.Contains(text, "python") {
			v[0] = 1
		}
		if strings.Contains(text, "java") {
			v[1] = 1
		}
		return v
	}}
}

func pythonJobStore(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.New()
	require.NoError(t, s.Upsert(context.Background(), []vectorstore.Record{{
		Reference: "job_1",
		Embedding: []float32{1, 0},
		Document:  "python developer",
		Metadata:  map[string]string{"name": "Python Developer"},
	}}))
	return s
}

func TestExplainUnknownJob(t *testing.T) {
	enc := keywordEncoder()
	svc := NewService(enc, memory.New(), nil, "jobs", 20)

	_, err := svc.Explain(context.Background(), "python expert", "missing", 10)
	require.ErrorIs(t, err, ErrJobNotFound)
	// вакансия проверяется до каких-либо эмбеддингов
	assert.Zero(t, enc.calls)
}

func TestExplainWordContributions(t *testing.T) {
	enc := keywordEncoder()
	svc := NewService(enc, pythonJobStore(t), nil, "jobs", 20)

	exp, err := svc.Explain(context.Background(), "python expert java novice", "job_1", 10)
	require.NoError(t, err)

	assert.Equal(t, "job_1", exp.JobReference)
	assert.Equal(t, "Python Developer", exp.JobTitle)
	assert.Equal(t, 4, exp.TotalWords)

	// базовый текст содержит и python и java: вектор (1,1), расстояние 1
	assert.InDelta(t, 1.0, exp.BaselineDistance, 1e-9)
	assert.InDelta(t, 0.5, exp.BaselineSimilarity, 1e-9)

	// убрать python — расстояние растёт, слово помогало
	require.NotEmpty(t, exp.TopPositiveWords)
	assert.Equal(t, "python", exp.TopPositiveWords[0].Word)
	assert.Greater(t, exp.TopPositiveWords[0].Importance, 0.0)
	assert.Equal(t, 1, exp.HelpfulWords)

	// убрать java — расстояние падает, слово мешало
	require.Len(t, exp.TopNegativeWords, 1)
	assert.Equal(t, "java", exp.TopNegativeWords[0].Word)
	assert.Less(t, exp.TopNegativeWords[0].Importance, 0.0)
	assert.Equal(t, 1, exp.HarmfulWords)

	// expert и novice на вектор не влияют
	assert.Equal(t, 2, exp.NeutralWords)
}

func TestExplainTopNLimit(t *testing.T) {
	enc := &stubEncoder{fn: func(text string) []float32 {
		// каждый выброшенный токен увеличивает расстояние по-своему
		return []float32{float32(len(text)) / 100, 0}
	}}
	svc := NewService(enc, pythonJobStore(t), nil, "jobs", 20)

	exp, err := svc.Explain(context.Background(), "golang kotlin scala ruby elixir haskell", "job_1", 2)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(exp.TopPositiveWords), 2)
	assert.Equal(t, 6, exp.TotalWords)
}
