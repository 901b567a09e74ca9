package report

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendas-api/internal/application/sales"
	"github.com/jhoicas/vendas-api/internal/domain/entity"
)

func sampleInput() sales.ReportInput {
	return sales.ReportInput{
		Sale: &entity.Sale{
			ID:            "981",
			CustomerID:    "42",
			Total:         decimal.RequireFromString("1234.56"),
			PaymentMethod: entity.PaymentPix,
			Date:          time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC),
			Notes:         "Entregar <sexta>",
			Items: []entity.SaleItem{
				{ItemID: "p1", Kind: entity.LineKindProduct, Name: "Tinta", Quantity: 2, UnitPrice: decimal.NewFromInt(100), Subtotal: decimal.NewFromInt(200)},
				{ItemID: "s1", Kind: entity.LineKindService, Name: "Pintura", Quantity: 1, UnitPrice: decimal.RequireFromString("1034.56"), Subtotal: decimal.RequireFromString("1034.56"), Zoning: "Sala 3"},
			},
		},
		Customer:    &entity.CustomerRef{ID: "42", Name: "Maria", TaxID: "12345678901"},
		Seller:      &entity.Seller{ID: "7", Name: "Ana"},
		GeneratedAt: time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC),
	}
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "R$ 1.234,56", Money(decimal.RequireFromString("1234.556")))
	assert.Equal(t, "R$ 0,00", Money(decimal.Zero))
}

func TestFilename(t *testing.T) {
	at := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Relatorio_Venda_981_2025-03-10.html", Filename("981", at, "html"))
	assert.Equal(t, "Relatorio_Venda_a_b_2025-03-10.pdf", Filename("a/b", at, "pdf"))
	assert.Equal(t, "Relatorio_Venda_sem_id_2025-03-10.pdf", Filename("", at, "pdf"))
}

func TestHTMLRenderer(t *testing.T) {
	doc, err := NewHTMLRenderer().Render(context.Background(), sampleInput())
	require.NoError(t, err)

	assert.Equal(t, "Relatorio_Venda_981_2025-03-10.html", doc.Filename)
	assert.True(t, strings.HasPrefix(doc.ContentType, "text/html"))
	body := string(doc.Body)
	assert.Contains(t, body, "Relatório de Venda #981")
	assert.Contains(t, body, "Maria")
	assert.Contains(t, body, "R$ 1.234,56")
	assert.Contains(t, body, "PIX")
	assert.Contains(t, body, "Sala 3")
	assert.Contains(t, body, "Entregar &lt;sexta&gt;", "las observaciones se escapan")
}

func TestHTMLRenderer_SinFechaUsaGeneracion(t *testing.T) {
	in := sampleInput()
	in.Sale.Date = time.Time{}
	doc, err := NewHTMLRenderer().Render(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Relatorio_Venda_981_2025-03-11.html", doc.Filename)
}

func TestPDFRenderer(t *testing.T) {
	doc, err := NewPDFRenderer().Render(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Equal(t, "Relatorio_Venda_981_2025-03-10.pdf", doc.Filename)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.True(t, strings.HasPrefix(string(doc.Body), "%PDF"))
}

func TestRenderers_SinVenta(t *testing.T) {
	_, err := NewHTMLRenderer().Render(context.Background(), sales.ReportInput{})
	assert.Error(t, err)
	_, err = NewPDFRenderer().Render(context.Background(), sales.ReportInput{})
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	assert.IsType(t, &PDFRenderer{}, New(" PDF "))
	assert.IsType(t, &HTMLRenderer{}, New("docx"))
}
