package report

// Layout de la página A4:
//
//	┌─────────────────────────────────────────────┐
//	│  HEADER: Relatório de venda │ N° + Data     │
//	│  VENDEDOR / CLIENTE                          │
//	│  TABELA: Tipo | Item | Qtd | Preço | Subtot. │
//	│  TOTAL + forma de pagamento                  │
//	│  OBSERVAÇÕES                                 │
//	└─────────────────────────────────────────────┘

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/vendas-api/internal/application/sales"
	"github.com/jhoicas/vendas-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// PDFRenderer genera el comprobante en PDF con Maroto v2.
type PDFRenderer struct{}

// NewPDFRenderer construye el renderer.
func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

// Render implementa sales.ReportRenderer.
func (r *PDFRenderer) Render(_ context.Context, in sales.ReportInput) (*sales.Document, error) {
	if in.Sale == nil {
		return nil, errNoSale
	}
	date := reportDate(in)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Venda "+in.Sale.ID, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(in.Sale, date.Format("02/01/2006 15:04")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(in.Seller, in.Customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(in.Sale.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(in.Sale))
	if in.Sale.Notes != "" {
		m.AddRows(row.New(14).Add(col.New(12).Add(
			text.New("OBSERVAÇÕES", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
			text.New(in.Sale.Notes, props.Text{Size: 8, Top: 7}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("report: pdf: %w", err)
	}
	return &sales.Document{
		Filename:    Filename(in.Sale.ID, date, "pdf"),
		ContentType: "application/pdf",
		Body:        doc.GetBytes(),
	}, nil
}

func headerRow(sale *entity.Sale, date string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("RELATÓRIO DE VENDA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Venda #"+sale.ID, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Data: "+date, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func partiesRow(seller *entity.Seller, customer *entity.CustomerRef) core.Row {
	sellerName, customerName, customerInfo := "—", "—", ""
	if seller != nil {
		sellerName = nonEmpty(seller.Name, seller.ID)
	}
	if customer != nil {
		customerName = nonEmpty(customer.Name, customer.ID)
		customerInfo = fmt.Sprintf("Documento: %s   |   Tel: %s   |   E-mail: %s",
			nonEmpty(customer.TaxID, "—"),
			nonEmpty(customer.Phone, "—"),
			nonEmpty(customer.Email, "—"),
		)
	}
	return row.New(20).Add(
		col.New(4).Add(
			text.New("VENDEDOR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(sellerName, props.Text{Size: 10, Top: 6}),
		),
		col.New(8).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(customerName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(customerInfo, props.Text{Size: 8, Top: 13, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Tipo", 2, align.Left),
		h("Item", 4, align.Left),
		h("Qtd.", 1, align.Center),
		h("Preço unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func itemRows(items []entity.SaleItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		name := nonEmpty(it.Name, it.ItemID)
		if it.Zoning != "" {
			name += " (" + it.Zoning + ")"
		}
		rows = append(rows, row.New(7).Add(
			col.New(2).Add(text.New(kindLabel(it.Kind), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strconv.Itoa(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(Money(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(Money(it.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalRow(sale *entity.Sale) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New("Forma de pagamento: "+paymentLabel(sale.PaymentMethod), props.Text{Size: 9, Top: 3}),
		),
		col.New(6).Add(
			text.New("TOTAL: "+Money(sale.Total), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 3, Right: 1,
			}),
		),
	)
}
