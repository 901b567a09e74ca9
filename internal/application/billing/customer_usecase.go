package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/vendas-api/internal/application/dto"
	"github.com/jhoicas/vendas-api/internal/domain"
	"github.com/jhoicas/vendas-api/internal/domain/entity"
	"github.com/jhoicas/vendas-api/internal/domain/repository"
)

// CustomerUseCase alta rápida de clientes desde el paso de cliente del asistente.
type CustomerUseCase struct {
	repo repository.CustomerRepository
	now  func() time.Time
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, now: time.Now}
}

// Create valida y crea un nuevo cliente.
// Devuelve *domain.ValidationError si no cumple las reglas y domain.ErrDuplicate si el documento ya existe.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	now := uc.now()
	customer := &entity.Customer{
		ID:         uuid.New().String(),
		Name:       strings.TrimSpace(in.Name),
		PersonType: strings.TrimSpace(in.PersonType),
		CPF:        strings.TrimSpace(in.CPF),
		CNPJ:       strings.TrimSpace(in.CNPJ),
		Email:      strings.TrimSpace(in.Email),
		Phone:      strings.TrimSpace(in.Phone),
		Notes:      strings.TrimSpace(in.Notes),
		Contacts:   make([]entity.Contact, 0, len(in.Contacts)),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, c := range in.Contacts {
		contact := entity.Contact{
			ID:     uuid.New().String(),
			Kind:   strings.TrimSpace(c.Kind),
			Number: strings.TrimSpace(c.Number),
			Email:  strings.TrimSpace(c.Email),
		}
		if !contact.Live() {
			continue
		}
		customer.Contacts = append(customer.Contacts, contact)
	}
	if err := customer.Validate(in.SkipContact); err != nil {
		return nil, err
	}

	existing, err := uc.repo.GetByTaxID(ctx, customer.TaxID())
	if err != nil {
		return nil, fmt.Errorf("cliente: buscar por documento: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return ToCustomerResponse(customer), nil
}

// ToCustomerResponse mapea la entidad a la respuesta HTTP.
func ToCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	out := &dto.CustomerResponse{
		ID:         c.ID,
		Name:       c.Name,
		PersonType: c.PersonType,
		CPF:        c.CPF,
		CNPJ:       c.CNPJ,
		Email:      c.Email,
		Phone:      c.Phone,
		Notes:      c.Notes,
		Contacts:   make([]dto.ContactResponse, 0, len(c.Contacts)),
	}
	for _, ct := range c.Contacts {
		out.Contacts = append(out.Contacts, dto.ContactResponse{ID: ct.ID, Kind: ct.Kind, Number: ct.Number, Email: ct.Email})
	}
	return out
}
