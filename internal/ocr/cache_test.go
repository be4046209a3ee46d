package ocr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waritt/goldbooks/internal/books"
)

type fakeExtractor struct {
	calls int
	fail  bool
}

func (f *fakeExtractor) Extract(_ context.Context, image []byte, _ string) (*books.Receipt, error) {
	f.calls++
	if f.fail {
		return nil, fmt.Errorf("%w: upstream down", ErrExtraction)
	}
	return &books.Receipt{Notes: string(image)}, nil
}

func TestCached_HitSkipsInner(t *testing.T) {
	inner := &fakeExtractor{}
	cached, err := NewCached(inner, 8)
	require.NoError(t, err)

	ctx := context.Background()
	first, err := cached.Extract(ctx, []byte("img-a"), "image/png")
	require.NoError(t, err)
	second, err := cached.Extract(ctx, []byte("img-a"), "image/png")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first.Notes, second.Notes)

	// Same bytes, different content type: a different fingerprint.
	_, err = cached.Extract(ctx, []byte("img-a"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCached_FailuresNotCached(t *testing.T) {
	inner := &fakeExtractor{fail: true}
	cached, err := NewCached(inner, 8)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = cached.Extract(ctx, []byte("img"), "image/png")
	assert.True(t, errors.Is(err, ErrExtraction))

	inner.fail = false
	receipt, err := cached.Extract(ctx, []byte("img"), "image/png")
	require.NoError(t, err)
	assert.NotNil(t, receipt)
	assert.Equal(t, 2, inner.calls, "the failed call must not have been cached")
}

func TestCached_Bounded(t *testing.T) {
	inner := &fakeExtractor{}
	cached, err := NewCached(inner, 2)
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := cached.Extract(ctx, []byte{byte(i)}, "image/png")
		require.NoError(t, err)
	}
	assert.Equal(t, 2, cached.Len(), "cache stays at its configured bound")
}
