package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobfinder/pkg/vectorstore"
)

func rec(ref string, vec []float32) vectorstore.Record {
	return vectorstore.Record{Reference: ref, Embedding: vec, Document: "doc " + ref}
}

func TestUpsertReplacesByReference(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Upsert(ctx, []vectorstore.Record{rec("job_1", []float32{1, 0})}))
	require.NoError(t, s.Upsert(ctx, []vectorstore.Record{{
		Reference: "job_1",
		Embedding: []float32{0, 1},
		Document:  "updated",
	}}))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := s.Get(ctx, []string{"job_1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "updated", got[0].Document)
	assert.Equal(t, []float32{0, 1}, got[0].Embedding)
}

func TestUpsertEmptyReference(t *testing.T) {
	s := New()
	err := s.Upsert(context.Background(), []vectorstore.Record{rec("", []float32{1})})
	assert.Error(t, err)
}

func TestQueryOrdersByDistance(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Upsert(ctx, []vectorstore.Record{
		rec("far", []float32{0, 1}),
		rec("near", []float32{1, 0}),
		rec("mid", []float32{0.5, 0.5}),
	}))

	res, err := s.Query(ctx, []float32{1, 0}, 10)
	require.NoError(t, err)
	// k больше размера индекса — возвращается всё
	require.Len(t, res, 3)
	assert.Equal(t, "near", res[0].Reference)
	assert.Equal(t, "mid", res[1].Reference)
	assert.Equal(t, "far", res[2].Reference)
	assert.Equal(t, 0.0, res[0].Distance)
}

func TestQueryTiesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Upsert(ctx, []vectorstore.Record{
		rec("first", []float32{0, 1}),
		rec("second", []float32{0, 1}),
	}))

	res, err := s.Query(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "first", res[0].Reference)
	assert.Equal(t, "second", res[1].Reference)
}

func TestGetMissingReference(t *testing.T) {
	s := New()
	got, err := s.Get(context.Background(), []string{"nope"})
	require.NoError(t, err)
	assert.Empty(t, got)
}
