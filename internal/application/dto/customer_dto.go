package dto

// ContactRequest contacto en el alta rápida de cliente.
type ContactRequest struct {
	Kind   string `json:"kind"`
	Number string `json:"number,omitempty"`
	Email  string `json:"email,omitempty"`
}

// CreateCustomerRequest body para POST /api/customers.
// SkipContact confirma el alta sin teléfono ni email.
type CreateCustomerRequest struct {
	Name        string           `json:"name"`
	PersonType  string           `json:"person_type"`
	CPF         string           `json:"cpf,omitempty"`
	CNPJ        string           `json:"cnpj,omitempty"`
	Email       string           `json:"email,omitempty"`
	Phone       string           `json:"phone,omitempty"`
	Notes       string           `json:"notes,omitempty"`
	Contacts    []ContactRequest `json:"contacts,omitempty"`
	SkipContact bool             `json:"skip_contact,omitempty"`
}

// ContactResponse contacto en respuestas.
type ContactResponse struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Number string `json:"number,omitempty"`
	Email  string `json:"email,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	PersonType string            `json:"person_type"`
	CPF        string            `json:"cpf,omitempty"`
	CNPJ       string            `json:"cnpj,omitempty"`
	Email      string            `json:"email,omitempty"`
	Phone      string            `json:"phone,omitempty"`
	Notes      string            `json:"notes,omitempty"`
	Contacts   []ContactResponse `json:"contacts"`
}
