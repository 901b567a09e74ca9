package http

import (
	"time"

	"github.com/jhoicas/vendas-api/internal/application/dto"
	"github.com/jhoicas/vendas-api/internal/application/sales"
	"github.com/jhoicas/vendas-api/internal/domain/entity"
)

func toLineResponses(lines []entity.SaleLine) []dto.LineResponse {
	out := make([]dto.LineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.LineResponse{
			ItemID:      l.ItemID,
			Kind:        l.Kind,
			Name:        l.Name,
			Type:        l.Type,
			Description: l.Description,
			UnitPrice:   l.UnitPrice,
			PriceValid:  l.PriceValid(),
			Quantity:    l.Quantity,
			Zoning:      l.Zoning,
			Subtotal:    l.Subtotal(),
		})
	}
	return out
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	out := &dto.SaleResponse{
		ID:            s.ID,
		SellerID:      s.SellerID,
		CustomerID:    s.CustomerID,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		Status:        s.Status,
		Notes:         s.Notes,
		Items:         make([]dto.SaleItemResponse, 0, len(s.Items)),
	}
	if !s.Date.IsZero() {
		out.Date = s.Date.Format(time.RFC3339)
	}
	for _, it := range s.Items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ItemID:    it.ItemID,
			Kind:      it.Kind,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
			Zoning:    it.Zoning,
		})
	}
	return out
}

// toWizardResponse proyecta la foto de la sesión al cuerpo JSON.
func toWizardResponse(v sales.View) dto.WizardResponse {
	invalid := make([]dto.LineKey, 0, len(v.InvalidLines))
	for _, l := range v.InvalidLines {
		invalid = append(invalid, dto.LineKey{Kind: l.Kind, ItemID: l.ItemID})
	}
	return dto.WizardResponse{
		Step:            int(v.Step),
		StepName:        v.Step.String(),
		Customer:        v.Customer,
		Products:        toLineResponses(v.Products),
		Services:        toLineResponses(v.Services),
		Notes:           v.Notes,
		PaymentMethod:   v.PaymentMethod,
		Total:           v.Total,
		ItemCount:       v.ItemCount,
		InvalidLines:    invalid,
		Finalizing:      v.Finalizing,
		DraftOffer:      v.DraftOffer,
		Notification:    v.Notification,
		LastSale:        toSaleResponse(v.LastSale),
		ReportAvailable: v.ReportAvailable,
	}
}
