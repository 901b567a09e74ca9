package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valores fijos del payload de creación de venta.
const (
	SaleTypeVenda       = "venda"
	SaleStatusConcluida = "concluida"
	MoneyDecimalPlaces  = 2
)

// Seller es la identidad del vendedor que atribuye la venta.
type Seller struct {
	ID   string
	Name string
}

// SalePayloadItem línea del payload con precio y cantidad fijados.
type SalePayloadItem struct {
	ProductID    string
	Kind         string
	Name         string
	Quantity     int
	Price        decimal.Decimal // precio unitario redondeado
	ProductPrice decimal.Decimal // precio unitario de catálogo redondeado
	TotalSales   decimal.Decimal // subtotal redondeado
	Zoning       string
}

// SalePayload es la solicitud que se envía al colaborador de creación de ventas.
// Todos los montos van redondeados a dos decimales.
type SalePayload struct {
	SellerID      string
	CustomerID    string
	Items         []SalePayloadItem
	PaymentMethod string
	Total         decimal.Decimal
	Amount        decimal.Decimal
	SaleType      string
	Status        string
	Date          time.Time
	Notes         string
}

// SaleItem línea de una venta finalizada.
type SaleItem struct {
	ItemID    string
	Kind      string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
	Zoning    string
}

// Sale es la venta confirmada por el servidor. Se trata como inmutable una vez recibida.
type Sale struct {
	ID            string
	SellerID      string
	CustomerID    string
	Items         []SaleItem
	Total         decimal.Decimal
	PaymentMethod string
	Status        string
	Date          time.Time
	Notes         string
}

// RoundMoney redondea un monto a dos decimales.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyDecimalPlaces)
}
