package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendas-api/internal/domain/entity"
	"github.com/jhoicas/vendas-api/internal/infrastructure/kv"
	"github.com/jhoicas/vendas-api/pkg/config"
)

func seeded(t *testing.T, d entity.SaleDraft) (*kv.Backend, opener) {
	t.Helper()
	b, err := kv.OpenBackend(context.Background(), configMemory, configNoRedis, nil)
	require.NoError(t, err)
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	require.NoError(t, b.Repo.Set(context.Background(), "venda_rascunho:u1", raw))
	return b, func(context.Context) (*kv.Backend, func(), error) { return b, func() {}, nil }
}

func run(t *testing.T, open opener, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(open, zerolog.Nop(), &out)
	root.SetArgs(args)
	root.SetErr(&bytes.Buffer{})
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func activeDraft() entity.SaleDraft {
	d := entity.DefaultSaleDraft()
	d.CurrentStep = 2
	d.SelectedCustomer = &entity.CustomerRef{ID: "42", Name: "Maria"}
	d.LastSaved = time.Now().Add(-3 * time.Minute)
	d.IsActive = true
	return d
}

func TestDraftctl_Info(t *testing.T) {
	_, open := seeded(t, activeDraft())
	out, err := run(t, open, "info", "u1")
	require.NoError(t, err)
	assert.Contains(t, out, "venda_rascunho:u1")
	assert.Contains(t, out, "select_products")
	assert.Contains(t, out, "Maria")
	assert.Contains(t, out, "3 minutos atrás")

	out, err = run(t, open, "info", "otro")
	require.NoError(t, err)
	assert.Contains(t, out, "sin borrador recuperable")
}

func TestDraftctl_DeactivateYClear(t *testing.T) {
	b, open := seeded(t, activeDraft())

	_, err := run(t, open, "deactivate", "u1")
	require.NoError(t, err)
	out, err := run(t, open, "show", "u1")
	require.NoError(t, err)
	var d entity.SaleDraft
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.False(t, d.IsActive)
	assert.Equal(t, "Maria", d.SelectedCustomer.Name, "desactivar no toca otros campos")

	_, err = run(t, open, "clear", "u1")
	require.NoError(t, err)
	_, ok, err := b.Repo.Get(context.Background(), "venda_rascunho:u1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = run(t, open, "show", "u1")
	assert.Error(t, err)
}

func TestDraftctl_ArgumentosRequeridos(t *testing.T) {
	_, open := seeded(t, activeDraft())
	_, err := run(t, open, "info")
	assert.Error(t, err)
}

var (
	configMemory  = config.DraftConfig{Store: config.DraftStoreMemory}
	configNoRedis = config.RedisConfig{}
)
