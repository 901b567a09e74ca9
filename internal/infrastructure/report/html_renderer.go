package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/jhoicas/vendas-api/internal/application/sales"
)

var errNoSale = errors.New("report: venda ausente")

const htmlTemplate = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Relatório da Venda {{.Sale.ID}}</title>
<style>
body{font-family:Helvetica,Arial,sans-serif;font-size:13px;color:#222;margin:32px}
h1{color:#00467f;font-size:20px;margin-bottom:4px}
table{border-collapse:collapse;width:100%;margin-top:16px}
th{background:#00467f;color:#fff;text-align:left;padding:6px}
td{border-bottom:1px solid #ddd;padding:6px}
.num{text-align:right}
.total{font-size:16px;font-weight:bold;color:#00467f;text-align:right;margin-top:12px}
.muted{color:#666}
</style>
</head>
<body>
<h1>Relatório de Venda #{{.Sale.ID}}</h1>
<p class="muted">Data: {{date .Date}} · Vendedor: {{.SellerName}}</p>
<h2>Cliente</h2>
<p><strong>{{.CustomerName}}</strong>{{with .TaxID}}<br>Documento: {{.}}{{end}}{{with .Phone}}<br>Telefone: {{.}}{{end}}{{with .Email}}<br>E-mail: {{.}}{{end}}</p>
<table>
<thead><tr><th>Tipo</th><th>Item</th><th class="num">Qtd.</th><th class="num">Preço unit.</th><th class="num">Subtotal</th><th>Zoneamento</th></tr></thead>
<tbody>
{{range .Sale.Items}}<tr><td>{{kind .Kind}}</td><td>{{if .Name}}{{.Name}}{{else}}{{.ItemID}}{{end}}</td><td class="num">{{.Quantity}}</td><td class="num">{{money .UnitPrice}}</td><td class="num">{{money .Subtotal}}</td><td>{{.Zoning}}</td></tr>
{{end}}</tbody>
</table>
<p class="total">Total: {{money .Sale.Total}}</p>
<p>Forma de pagamento: {{payment .Sale.PaymentMethod}}</p>
{{with .Sale.Notes}}<p>Observações: {{.}}</p>{{end}}
<p class="muted">Gerado em {{date .GeneratedAt}}</p>
</body>
</html>
`

type htmlView struct {
	sales.ReportInput
	Date         time.Time
	SellerName   string
	CustomerName string
	TaxID        string
	Phone        string
	Email        string
}

// HTMLRenderer genera el comprobante como página HTML autocontenida.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer compila la plantilla.
func NewHTMLRenderer() *HTMLRenderer {
	funcs := template.FuncMap{
		"money":   Money,
		"payment": paymentLabel,
		"kind":    kindLabel,
		"date":    func(t time.Time) string { return t.Format("02/01/2006 15:04") },
	}
	return &HTMLRenderer{tmpl: template.Must(template.New("venda").Funcs(funcs).Parse(htmlTemplate))}
}

// Render implementa sales.ReportRenderer.
func (r *HTMLRenderer) Render(_ context.Context, in sales.ReportInput) (*sales.Document, error) {
	if in.Sale == nil {
		return nil, errNoSale
	}
	v := htmlView{ReportInput: in, Date: reportDate(in), SellerName: "—", CustomerName: "—"}
	if in.Seller != nil {
		v.SellerName = nonEmpty(in.Seller.Name, in.Seller.ID)
	}
	if in.Customer != nil {
		v.CustomerName = nonEmpty(in.Customer.Name, in.Customer.ID)
		v.TaxID, v.Phone, v.Email = in.Customer.TaxID, in.Customer.Phone, in.Customer.Email
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, v); err != nil {
		return nil, fmt.Errorf("report: html: %w", err)
	}
	return &sales.Document{
		Filename:    Filename(in.Sale.ID, v.Date, "html"),
		ContentType: "text/html; charset=utf-8",
		Body:        buf.Bytes(),
	}, nil
}
