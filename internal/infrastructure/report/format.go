// Package report genera el comprobante de una venta finalizada (HTML o PDF).
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/vendas-api/internal/application/sales"
	"github.com/jhoicas/vendas-api/internal/domain/entity"
)

// Formatos soportados (REPORT_FORMAT).
const (
	FormatHTML = "html"
	FormatPDF  = "pdf"
)

const filePrefix = "Relatorio_Venda_"

var printer = message.NewPrinter(language.BrazilianPortuguese)

// New devuelve el renderer del formato pedido; cualquier valor desconocido usa HTML.
func New(format string) sales.ReportRenderer {
	if strings.EqualFold(strings.TrimSpace(format), FormatPDF) {
		return NewPDFRenderer()
	}
	return NewHTMLRenderer()
}

// Money formatea un monto en reales: R$ 1.234,56.
func Money(d decimal.Decimal) string {
	return "R$ " + printer.Sprintf("%.2f", entity.RoundMoney(d).InexactFloat64())
}

// Filename arma Relatorio_Venda_<id>_<YYYY-MM-DD>.<ext>.
func Filename(saleID string, at time.Time, ext string) string {
	return fmt.Sprintf("%s%s_%s.%s", filePrefix, sanitize(saleID), at.Format("2006-01-02"), ext)
}

func sanitize(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return "sem_id"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, id)
}

// reportDate usa la fecha de la venta y cae en la de generación si el servidor no la envió.
func reportDate(in sales.ReportInput) time.Time {
	if in.Sale != nil && !in.Sale.Date.IsZero() {
		return in.Sale.Date
	}
	return in.GeneratedAt
}

func paymentLabel(method string) string {
	switch method {
	case entity.PaymentPix:
		return "PIX"
	case entity.PaymentCash:
		return "Dinheiro"
	case entity.PaymentCreditCard:
		return "Cartão de crédito"
	case entity.PaymentDebitCard:
		return "Cartão de débito"
	case entity.PaymentBankSlip:
		return "Boleto"
	case entity.PaymentBankTransfer:
		return "Transferência"
	}
	return method
}

func kindLabel(kind string) string {
	if kind == entity.LineKindService {
		return "Serviço"
	}
	return "Produto"
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}
