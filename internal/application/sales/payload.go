package sales

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vendas-api/internal/domain/entity"
	"github.com/jhoicas/vendas-api/internal/domain/wizard"
)

// BuildPayload arma la solicitud de creación de venta. El precio unitario se redondea a
// centavos primero; total_sales = precio × quantidade y total = amount = Σ total_sales.
// El estado ya debe haber pasado ValidateForFinalize.
func BuildPayload(s *wizard.State, sellerID string, now time.Time) entity.SalePayload {
	lines := s.Lines()
	items := make([]entity.SalePayloadItem, 0, len(lines))
	total := decimal.Zero
	for _, l := range lines {
		price := l.BilledPrice()
		subtotal := l.BilledSubtotal()
		total = total.Add(subtotal)
		items = append(items, entity.SalePayloadItem{
			ProductID:    l.ItemID,
			Kind:         l.Kind,
			Name:         l.Name,
			Quantity:     l.Quantity,
			Price:        price,
			ProductPrice: price,
			TotalSales:   subtotal,
			Zoning:       l.Zoning,
		})
	}
	p := entity.SalePayload{
		SellerID:      sellerID,
		Items:         items,
		PaymentMethod: s.PaymentMethod,
		Total:         total,
		Amount:        total,
		SaleType:      entity.SaleTypeVenda,
		Status:        entity.SaleStatusConcluida,
		Date:          now,
		Notes:         strings.TrimSpace(s.Notes),
	}
	if s.Customer != nil {
		p.CustomerID = strings.TrimSpace(s.Customer.ID)
	}
	return p
}

// completeSale rellena los campos que el servidor no devolvió con los datos enviados.
func completeSale(sale *entity.Sale, p entity.SalePayload) *entity.Sale {
	out := *sale
	if out.SellerID == "" {
		out.SellerID = p.SellerID
	}
	if out.CustomerID == "" {
		out.CustomerID = p.CustomerID
	}
	if out.Total.IsZero() {
		out.Total = p.Total
	}
	if out.PaymentMethod == "" {
		out.PaymentMethod = p.PaymentMethod
	}
	if out.Status == "" {
		out.Status = p.Status
	}
	if out.Date.IsZero() {
		out.Date = p.Date
	}
	if out.Notes == "" {
		out.Notes = p.Notes
	}
	if len(out.Items) == 0 {
		out.Items = make([]entity.SaleItem, 0, len(p.Items))
		for _, it := range p.Items {
			out.Items = append(out.Items, entity.SaleItem{
				ItemID:    it.ProductID,
				Kind:      it.Kind,
				Name:      it.Name,
				Quantity:  it.Quantity,
				UnitPrice: it.Price,
				Subtotal:  it.TotalSales,
				Zoning:    it.Zoning,
			})
		}
	}
	return &out
}
