// Package sqlite guarda los borradores en un archivo SQLite embebido (sin servidor).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jhoicas/vendas-api/internal/domain/repository"
)

var _ repository.DraftRepository = (*DraftRepo)(nil)

// DraftRepo implementa DraftRepository sobre la tabla sale_drafts.
type DraftRepo struct {
	db  *sql.DB
	now func() time.Time
}

// Open abre (o crea) el archivo de borradores y aplica el esquema.
func Open(path string) (*DraftRepo, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite %s: %w", path, err)
	}
	// Un único escritor evita SQLITE_BUSY y mantiene viva una base :memory:.
	db.SetMaxOpenConns(1)
	r, err := NewDraftRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

// NewDraftRepository usa una conexión ya abierta y aplica el esquema.
func NewDraftRepository(db *sql.DB) (*DraftRepo, error) {
	r := &DraftRepo{db: db, now: time.Now}
	if err := r.migrate(); err != nil {
		return nil, fmt.Errorf("migrar sqlite: %w", err)
	}
	return r, nil
}

func (r *DraftRepo) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS sale_drafts (
		key        TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		updated_at DATETIME NOT NULL
	);`
	_, err := r.db.ExecContext(context.Background(), query)
	return err
}

// Get devuelve el valor guardado bajo key; (nil, false, nil) si no existe.
func (r *DraftRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM sale_drafts WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get draft: %w", err)
	}
	return value, true, nil
}

// Set guarda value bajo key, reemplazando el anterior.
func (r *DraftRepo) Set(ctx context.Context, key string, value []byte) error {
	query := `
	INSERT INTO sale_drafts (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, key, value, r.now().UTC()); err != nil {
		return fmt.Errorf("upsert draft: %w", err)
	}
	return nil
}

// Delete borra la clave; no falla si no existe.
func (r *DraftRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sale_drafts WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

// Close cierra la base.
func (r *DraftRepo) Close() error {
	return r.db.Close()
}
