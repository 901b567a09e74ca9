package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftRepo_MemoriaSetGetDelete(t *testing.T) {
	ctx := context.Background()
	r, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	_, ok, err := r.Get(ctx, "venda_rascunho:u1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Set(ctx, "venda_rascunho:u1", []byte(`{"current_step":1}`)))
	require.NoError(t, r.Set(ctx, "venda_rascunho:u1", []byte(`{"current_step":2}`)), "la segunda escritura reemplaza")

	got, ok, err := r.Get(ctx, "venda_rascunho:u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"current_step":2}`, string(got))

	require.NoError(t, r.Delete(ctx, "venda_rascunho:u1"))
	_, ok, err = r.Get(ctx, "venda_rascunho:u1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDraftRepo_ArchivoSobreviveReapertura(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "drafts.db")

	r, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, r.Set(ctx, "k", []byte(`{"notes":"persistido"}`)))
	require.NoError(t, r.Close())

	r, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	got, ok, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"notes":"persistido"}`, string(got))
}
