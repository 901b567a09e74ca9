package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendas-api/internal/domain"
	"github.com/jhoicas/vendas-api/internal/domain/entity"
)

func validIndividual() *entity.Customer {
	return &entity.Customer{
		ID:         "c1",
		Name:       "Maria Souza",
		PersonType: entity.PersonTypeIndividual,
		CPF:        "123.456.789-09",
		Phone:      "+55 11 99999-0000",
	}
}

func reason(t *testing.T, err error) string {
	t.Helper()
	ve, ok := domain.AsValidationError(err)
	require.True(t, ok, "se esperaba ValidationError: %v", err)
	return ve.Reason
}

func TestCustomerValidate_PersonaFisicaValida(t *testing.T) {
	assert.NoError(t, validIndividual().Validate(false))
}

func TestCustomerValidate_DocumentosExcluyentes(t *testing.T) {
	c := validIndividual()
	c.CNPJ = "12.345.678/0001-90"
	assert.Equal(t, domain.ReasonCustomerTaxID, reason(t, c.Validate(false)), "CPF y CNPJ a la vez no se permiten")

	c = validIndividual()
	c.CPF = ""
	assert.Equal(t, domain.ReasonCustomerTaxID, reason(t, c.Validate(false)), "sin documento no se permite")
}

func TestCustomerValidate_DocumentoDebeCoincidirConTipo(t *testing.T) {
	c := validIndividual()
	c.PersonType = entity.PersonTypeOrganization
	assert.Equal(t, domain.ReasonCustomerTaxID, reason(t, c.Validate(false)))

	c.CPF = ""
	c.CNPJ = "12.345.678/0001-90"
	assert.NoError(t, c.Validate(false))
	assert.Equal(t, "12.345.678/0001-90", c.TaxID())
}

func TestCustomerValidate_Contacto(t *testing.T) {
	c := validIndividual()
	c.Phone = ""
	assert.Equal(t, domain.ReasonCustomerContact, reason(t, c.Validate(false)))
	assert.NoError(t, c.Validate(true), "el bypass explícito omite la exigencia de contacto")

	c.Contacts = []entity.Contact{{ID: "k1", Kind: entity.ContactKindBusiness, Email: "compras@empresa.com.br"}}
	assert.NoError(t, c.Validate(false), "un contacto con email es suficiente")
}

func TestCustomerValidate_NombreObligatorio(t *testing.T) {
	c := validIndividual()
	c.Name = "   "
	assert.Equal(t, domain.ReasonCustomerName, reason(t, c.Validate(false)))
}

func TestCustomerRef_TomaContactoSiFaltaEnCliente(t *testing.T) {
	c := validIndividual()
	c.Phone = ""
	c.Contacts = []entity.Contact{{Kind: entity.ContactKindMobile, Number: "11 98888-7777"}}
	ref := c.Ref()
	assert.Equal(t, "11 98888-7777", ref.Phone)
	assert.Equal(t, "123.456.789-09", ref.TaxID)
	assert.True(t, ref.HasValidID())

	var nilRef *entity.CustomerRef
	assert.False(t, nilRef.HasValidID())
}
