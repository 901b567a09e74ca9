package entity

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Tipos de línea del asistente de venta.
const (
	LineKindProduct = "product"
	LineKindService = "service"
)

// ValidLineKind indica si kind es un tipo de línea conocido.
func ValidLineKind(kind string) bool {
	return kind == LineKindProduct || kind == LineKindService
}

// CatalogItem es un producto o servicio del catálogo, tal como se copia a la línea.
// Price es nulo cuando el catálogo no tiene un precio numérico utilizable.
type CatalogItem struct {
	ID          string
	Kind        string // product | service
	Name        string
	Type        string // categoría libre del catálogo (ej. "câmera", "instalação")
	Description string
	Price       decimal.NullDecimal
}

// SaleLine es una línea seleccionada en el asistente (producto o servicio).
// El subtotal nunca se guarda: se recalcula en cada lectura.
type SaleLine struct {
	ItemID      string              `json:"item_id"`
	Kind        string              `json:"kind"`
	Name        string              `json:"name"`
	Type        string              `json:"type,omitempty"`
	Description string              `json:"description,omitempty"`
	UnitPrice   decimal.NullDecimal `json:"unit_price"`
	Quantity    int                 `json:"quantity"`
	Zoning      string              `json:"zoning"`
}

// NewSaleLine crea la línea a partir del ítem de catálogo con cantidad 1 y sin zonificación.
func NewSaleLine(item CatalogItem) SaleLine {
	return SaleLine{
		ItemID:      item.ID,
		Kind:        item.Kind,
		Name:        item.Name,
		Type:        item.Type,
		Description: item.Description,
		UnitPrice:   item.Price,
		Quantity:    1,
	}
}

// PriceValid indica si el precio unitario es un número utilizable (presente y no negativo).
func (l SaleLine) PriceValid() bool {
	return l.UnitPrice.Valid && !l.UnitPrice.Decimal.IsNegative()
}

// EffectivePrice devuelve el precio unitario, o cero si es inválido.
func (l SaleLine) EffectivePrice() decimal.Decimal {
	if !l.PriceValid() {
		return decimal.Zero
	}
	return l.UnitPrice.Decimal
}

// Subtotal = precio × cantidad. Precio inválido o cantidad no positiva cuentan como cero.
func (l SaleLine) Subtotal() decimal.Decimal {
	if l.Quantity < 1 {
		return decimal.Zero
	}
	return l.EffectivePrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// BilledPrice es el precio unitario que se factura: el efectivo redondeado a centavos.
func (l SaleLine) BilledPrice() decimal.Decimal {
	return RoundMoney(l.EffectivePrice())
}

// BilledSubtotal = BilledPrice × cantidad, de modo que precio × quantidade coincide
// exactamente con total_sales en la venta enviada.
func (l SaleLine) BilledSubtotal() decimal.Decimal {
	if l.Quantity < 1 {
		return decimal.Zero
	}
	return l.BilledPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// PriceFromFloat convierte un precio de punto flotante; NaN e infinitos quedan nulos.
func PriceFromFloat(f float64) decimal.NullDecimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(f))
}

// ParsePrice interpreta un precio en texto ("1234.5" o "1.234,50"); si no es numérico queda nulo.
func ParsePrice(raw string) decimal.NullDecimal {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}
