package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetGetDelete(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "booking:1", []byte(`{"a":1}`)))

	v, found, err := s.Get(ctx, "booking:1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"a":1}`, string(v))

	require.NoError(t, s.Delete(ctx, "booking:1"))
	_, found, err = s.Get(ctx, "booking:1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_ValuesAreCopied(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	in := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", in))
	in[0] = 'X'

	out, _, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(out))

	out[1] = 'Y'
	again, _, _ := s.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestStore_GetByPrefix(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "lead:1", []byte("1")))
	require.NoError(t, s.Set(ctx, "lead:2", []byte("2")))
	require.NoError(t, s.Set(ctx, "booking:3", []byte("3")))

	values, err := s.GetByPrefix(ctx, "lead:")
	require.NoError(t, err)
	assert.Len(t, values, 2)

	values, err = s.GetByPrefix(ctx, "nothing:")
	require.NoError(t, err)
	assert.NotNil(t, values)
	assert.Empty(t, values)
}

func TestStore_FailNext(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	s.FailNext(2)

	assert.ErrorIs(t, s.Set(ctx, "k", []byte("v")), ErrUnavailable)
	_, err := s.GetByPrefix(ctx, "")
	assert.ErrorIs(t, err, ErrUnavailable)

	assert.NoError(t, s.Set(ctx, "k", []byte("v")))
	assert.Equal(t, 1, s.Len())
}
