package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/vendas-api/internal/application/billing"
	"github.com/jhoicas/vendas-api/internal/application/dto"
)

// CustomerHandler alta rápida de clientes desde el asistente (protegido).
type CustomerHandler struct {
	uc  *billing.CustomerUseCase
	log zerolog.Logger
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *billing.CustomerUseCase, log zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Alta rápida de cliente
// @Description  Exige nombre, un único documento (CPF o CNPJ según el tipo de persona) y
//
//	al menos un teléfono o e-mail, salvo skip_contact=true.
//
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "cliente"
// @Success      201  {object}  dto.CustomerResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	if GetUserID(c) == "" {
		return unauthorized(c)
	}
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	customer, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}
