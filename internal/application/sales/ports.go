package sales

import (
	"context"
	"time"

	"github.com/jhoicas/vendas-api/internal/domain/entity"
)

// SellerLookup resuelve el vendedor asociado al usuario autenticado.
type SellerLookup interface {
	SellerForUser(ctx context.Context, userID string) (*entity.Seller, error)
}

// SaleCreator crea la venta en el sistema externo. La respuesta es autoritativa.
// idempotencyKey identifica el intento: dos llamadas con la misma clave son la misma venta.
type SaleCreator interface {
	CreateSale(ctx context.Context, idempotencyKey string, payload entity.SalePayload) (*entity.Sale, error)
}

// ReportInput datos con los que se arma el comprobante de la venta.
type ReportInput struct {
	Sale        *entity.Sale
	Customer    *entity.CustomerRef
	Seller      *entity.Seller
	GeneratedAt time.Time
}

// Document es un archivo generado listo para descargar.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ReportRenderer genera el comprobante de una venta finalizada.
type ReportRenderer interface {
	Render(ctx context.Context, in ReportInput) (*Document, error)
}
