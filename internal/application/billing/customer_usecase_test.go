package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendas-api/internal/application/dto"
	"github.com/jhoicas/vendas-api/internal/domain"
	"github.com/jhoicas/vendas-api/internal/domain/entity"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, c *entity.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerRepository) GetByTaxID(ctx context.Context, taxID string) (*entity.Customer, error) {
	args := m.Called(ctx, taxID)
	c, _ := args.Get(0).(*entity.Customer)
	return c, args.Error(1)
}

func TestCustomerCreate_PersonaJuridicaConContacto(t *testing.T) {
	repo := &MockCustomerRepository{}
	uc := NewCustomerUseCase(repo)

	repo.On("GetByTaxID", mock.Anything, "12.345.678/0001-90").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Customer) bool {
		return c.ID != "" && c.CNPJ == "12.345.678/0001-90" && len(c.Contacts) == 1
	})).Return(nil)

	out, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name:       " Segurança Total Ltda ",
		PersonType: entity.PersonTypeOrganization,
		CNPJ:       "12.345.678/0001-90",
		Contacts: []dto.ContactRequest{
			{Kind: entity.ContactKindBusiness, Email: "compras@seguranca.com.br"},
			{Kind: entity.ContactKindMobile},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Segurança Total Ltda", out.Name)
	require.Len(t, out.Contacts, 1, "los contactos vacíos se descartan")
	repo.AssertExpectations(t)
}

func TestCustomerCreate_SinContactoRequiereConfirmacion(t *testing.T) {
	repo := &MockCustomerRepository{}
	uc := NewCustomerUseCase(repo)
	in := dto.CreateCustomerRequest{Name: "José", PersonType: entity.PersonTypeIndividual, CPF: "123.456.789-09"}

	_, err := uc.Create(context.Background(), in)
	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ReasonCustomerContact, ve.Reason)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	repo.On("GetByTaxID", mock.Anything, "123.456.789-09").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	in.SkipContact = true
	_, err = uc.Create(context.Background(), in)
	assert.NoError(t, err)
}

func TestCustomerCreate_DocumentoDuplicado(t *testing.T) {
	repo := &MockCustomerRepository{}
	uc := NewCustomerUseCase(repo)
	repo.On("GetByTaxID", mock.Anything, "123.456.789-09").Return(&entity.Customer{ID: "x"}, nil)

	_, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name: "José", PersonType: entity.PersonTypeIndividual, CPF: "123.456.789-09", Phone: "11 3333-4444",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
