package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T, ttl time.Duration) (*DraftRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewDraftRepository(client, ttl), mr
}

func TestDraftRepo_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepo(t, 0)

	_, ok, err := r.Get(ctx, "venda_rascunho:u1")
	require.NoError(t, err)
	assert.False(t, ok, "clave ausente no es error")

	require.NoError(t, r.Set(ctx, "venda_rascunho:u1", []byte(`{"is_active":true}`)))
	got, ok, err := r.Get(ctx, "venda_rascunho:u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"is_active":true}`, string(got))

	require.NoError(t, r.Delete(ctx, "venda_rascunho:u1"))
	_, ok, err = r.Get(ctx, "venda_rascunho:u1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDraftRepo_ExpiraConTTL(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRepo(t, time.Hour)

	require.NoError(t, r.Set(ctx, "k", []byte(`{}`)))
	assert.Equal(t, time.Hour, mr.TTL("k"))

	mr.FastForward(2 * time.Hour)
	_, ok, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "el borrador abandonado expira")
}

func TestDraftRepo_ServidorCaidoDevuelveError(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRepo(t, 0)
	mr.Close()

	_, _, err := r.Get(ctx, "k")
	assert.Error(t, err)
	assert.Error(t, r.Set(ctx, "k", []byte(`{}`)))
}
