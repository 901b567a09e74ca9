package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/vendas-api/internal/domain"
)

// Tipos de persona del cliente. Son excluyentes: física usa CPF, jurídica usa CNPJ.
const (
	PersonTypeIndividual   = "fisica"
	PersonTypeOrganization = "juridica"
)

// Tipos de contacto.
const (
	ContactKindMobile        = "celular"
	ContactKindBusiness      = "comercial"
	ContactKindLandline      = "fixo"
	ContactKindInternational = "internacional"
)

// Contact es un medio de contacto del cliente. No se persiste por separado:
// viaja embebido en el cliente y su ID solo identifica la fila durante la edición.
type Contact struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Number string `json:"number,omitempty"`
	Email  string `json:"email,omitempty"`
}

// Live indica si el contacto tiene al menos un medio utilizable.
func (c Contact) Live() bool {
	return strings.TrimSpace(c.Number) != "" || strings.TrimSpace(c.Email) != ""
}

// Customer representa un cliente de la empresa.
type Customer struct {
	ID         string
	Name       string
	PersonType string // fisica | juridica
	CPF        string // documento de persona física
	CNPJ       string // documento de persona jurídica
	Phone      string
	Email      string
	Notes      string
	Contacts   []Contact
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TaxID devuelve el documento vigente según el tipo de persona (vacío si no hay).
func (c *Customer) TaxID() string {
	if c.PersonType == PersonTypeOrganization {
		return c.CNPJ
	}
	return c.CPF
}

// HasLiveContact indica si el cliente tiene teléfono o email propio o en algún contacto.
func (c *Customer) HasLiveContact() bool {
	if strings.TrimSpace(c.Phone) != "" || strings.TrimSpace(c.Email) != "" {
		return true
	}
	for _, ct := range c.Contacts {
		if ct.Live() {
			return true
		}
	}
	return false
}

// Validate verifica las invariantes del cliente.
// bypassContact omite la exigencia de contacto (alta rápida confirmada por el vendedor).
func (c *Customer) Validate(bypassContact bool) error {
	if strings.TrimSpace(c.Name) == "" {
		return domain.NewValidationError(domain.ReasonCustomerName, "Informe o nome do cliente.")
	}
	cpf := strings.TrimSpace(c.CPF)
	cnpj := strings.TrimSpace(c.CNPJ)
	if (cpf == "") == (cnpj == "") {
		return domain.NewValidationError(domain.ReasonCustomerTaxID, "Informe apenas um documento: CPF ou CNPJ.")
	}
	switch c.PersonType {
	case PersonTypeIndividual:
		if cpf == "" {
			return domain.NewValidationError(domain.ReasonCustomerTaxID, "CPF é obrigatório para pessoa física.")
		}
	case PersonTypeOrganization:
		if cnpj == "" {
			return domain.NewValidationError(domain.ReasonCustomerTaxID, "CNPJ é obrigatório para pessoa jurídica.")
		}
	default:
		return domain.NewValidationError(domain.ReasonCustomerTaxID, "Tipo de pessoa inválido.")
	}
	if !bypassContact && !c.HasLiveContact() {
		return domain.NewValidationError(domain.ReasonCustomerContact, "Informe ao menos um telefone ou e-mail.")
	}
	return nil
}

// CustomerRef es la proyección del cliente que guarda el asistente de venta.
type CustomerRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// HasValidID indica si la referencia apunta a un cliente persistido.
func (r *CustomerRef) HasValidID() bool {
	return r != nil && strings.TrimSpace(r.ID) != ""
}

// Ref proyecta el cliente a la referencia que usa el asistente.
func (c *Customer) Ref() *CustomerRef {
	ref := &CustomerRef{
		ID:    c.ID,
		Name:  c.Name,
		TaxID: c.TaxID(),
		Phone: c.Phone,
		Email: c.Email,
	}
	if ref.Phone == "" || ref.Email == "" {
		for _, ct := range c.Contacts {
			if ref.Phone == "" && ct.Number != "" {
				ref.Phone = ct.Number
			}
			if ref.Email == "" && ct.Email != "" {
				ref.Email = ct.Email
			}
		}
	}
	return ref
}
