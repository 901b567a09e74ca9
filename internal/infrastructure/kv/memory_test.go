package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDraftRepository_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryDraftRepository()

	_, ok, err := r.Get(ctx, "venda_rascunho:u1")
	require.NoError(t, err)
	assert.False(t, ok)

	value := []byte(`{"notes":"x"}`)
	require.NoError(t, r.Set(ctx, "venda_rascunho:u1", value))
	value[0] = '!'

	got, ok, err := r.Get(ctx, "venda_rascunho:u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"notes":"x"}`, string(got), "el repositorio debe guardar una copia")

	require.NoError(t, r.Delete(ctx, "venda_rascunho:u1"))
	require.NoError(t, r.Delete(ctx, "venda_rascunho:u1"), "borrar una clave ausente no es error")
	_, ok, _ = r.Get(ctx, "venda_rascunho:u1")
	assert.False(t, ok)
}
