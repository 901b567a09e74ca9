package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vendas-api/internal/domain"
	"github.com/jhoicas/vendas-api/internal/domain/entity"
	"github.com/jhoicas/vendas-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, name, person_type, cpf, cnpj, phone, email, notes, contacts, created_at, updated_at`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
// Los contactos viajan embebidos en la columna contacts (JSONB).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	contacts := customer.Contacts
	if contacts == nil {
		contacts = []entity.Contact{}
	}
	raw, err := json.Marshal(contacts)
	if err != nil {
		return fmt.Errorf("encode contacts: %w", err)
	}
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(ctx, query,
		customer.ID, customer.Name, customer.PersonType, customer.CPF, customer.CNPJ,
		customer.Phone, customer.Email, customer.Notes, raw,
		customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID. (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	row := r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	c, err := scanCustomer(row)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// GetByTaxID obtiene un cliente por CPF o CNPJ. (nil, nil) si no existe.
func (r *CustomerRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Customer, error) {
	taxID = strings.TrimSpace(taxID)
	if taxID == "" {
		return nil, nil
	}
	row := r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE cpf = $1 OR cnpj = $1 LIMIT 1`, taxID)
	c, err := scanCustomer(row)
	if err != nil {
		return nil, fmt.Errorf("get customer by tax id: %w", err)
	}
	return c, nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	var contacts []byte
	err := row.Scan(&c.ID, &c.Name, &c.PersonType, &c.CPF, &c.CNPJ, &c.Phone, &c.Email, &c.Notes,
		&contacts, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if len(contacts) > 0 {
		if err := json.Unmarshal(contacts, &c.Contacts); err != nil {
			return nil, fmt.Errorf("decode contacts: %w", err)
		}
	}
	return &c, nil
}
