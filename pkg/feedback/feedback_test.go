package feedback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct{ entries map[string]string }

func (r *memRepo) Set(_ context.Context, e Entry) error {
	r.entries[e.JobReference] = e.Value
	return nil
}

func (r *memRepo) All(context.Context) (map[string]string, error) { return r.entries, nil }

func TestRateLastWriteWins(t *testing.T) {
	repo := &memRepo{entries: make(map[string]string)}
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Rate(ctx, "job_1", "like"))
	require.NoError(t, svc.Rate(ctx, "job_1", "DISLIKE "))

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"job_1": Dislike}, all)
}

func TestRateRejectsUnknownValue(t *testing.T) {
	svc := NewService(&memRepo{entries: make(map[string]string)})

	err := svc.Rate(context.Background(), "job_1", "meh")
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Error(t, svc.Rate(context.Background(), " ", "like"))
}
