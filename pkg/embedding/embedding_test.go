package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedEncoder struct{ calls int }

func (f *fixedEncoder) Encode(context.Context, string) ([]float32, error) {
	f.calls++
	return []float32{1, 2}, nil
}

func (f *fixedEncoder) Dimension() int { return 2 }

func TestLazyOpensOnce(t *testing.T) {
	enc := &fixedEncoder{}
	opens := 0
	lazy := NewLazy(func() (Encoder, error) {
		opens++
		return enc, nil
	})

	assert.Equal(t, 0, lazy.Dimension(), "dimension unknown before first encode")

	for i := 0; i < 3; i++ {
		vec, err := lazy.Encode(context.Background(), "python developer")
		require.NoError(t, err)
		assert.Equal(t, []float32{1, 2}, vec)
	}
	assert.Equal(t, 1, opens)
	assert.Equal(t, 3, enc.calls)
	assert.Equal(t, 2, lazy.Dimension())
}

func TestLazyLoadFailureIsSticky(t *testing.T) {
	opens := 0
	lazy := NewLazy(func() (Encoder, error) {
		opens++
		return nil, errors.New("model file corrupted")
	})

	for i := 0; i < 2; i++ {
		_, err := lazy.Encode(context.Background(), "text")
		require.ErrorIs(t, err, ErrModelUnavailable)
	}
	// повторные вызовы не пытаются загрузить модель заново
	assert.Equal(t, 1, opens)
}
