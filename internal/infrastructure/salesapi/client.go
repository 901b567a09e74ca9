// Package salesapi es el cliente HTTP del sistema de ventas externo:
// creación de ventas y resolución del vendedor del usuario autenticado.
package salesapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/vendas-api/internal/application/sales"
	"github.com/jhoicas/vendas-api/internal/domain"
	"github.com/jhoicas/vendas-api/internal/domain/entity"
	"github.com/jhoicas/vendas-api/pkg/config"
)

var (
	_ sales.SaleCreator  = (*Client)(nil)
	_ sales.SellerLookup = (*Client)(nil)
)

// maxErrorBody limita lo que se lee de una respuesta de error.
const maxErrorBody = 64 << 10

// APIError respuesta no exitosa del sistema de ventas.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sales api: status %d: %s", e.Status, e.Message)
}

// UserMessage devuelve el mensaje del backend tal cual, para mostrarlo al usuario.
func (e *APIError) UserMessage() string { return e.Message }

// Client cliente del sistema de ventas.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     zerolog.Logger
}

// New construye el cliente.
func New(cfg config.SalesAPIConfig, log zerolog.Logger) *Client {
	return NewWithHTTPClient(cfg, &http.Client{Timeout: cfg.Timeout}, log)
}

// NewWithHTTPClient permite inyectar el *http.Client (tests).
func NewWithHTTPClient(cfg config.SalesAPIConfig, hc *http.Client, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		token:   cfg.Token,
		http:    hc,
		log:     log.With().Str("component", "salesapi").Logger(),
	}
}

// ── Formato de red ───────────────────────────────────────────────────────────

type saleProductWire struct {
	ProductID    string  `json:"product_id"`
	Quantity     int     `json:"quantidade"`
	Price        float64 `json:"price"`
	ProductPrice float64 `json:"product_price"`
	TotalSales   float64 `json:"total_sales"`
	Zoning       string  `json:"zoneamento"`
}

type saleRequestWire struct {
	SellerID      string            `json:"seller_id"`
	CustomerID    string            `json:"customer_id"`
	Products      []saleProductWire `json:"products"`
	PaymentMethod string            `json:"payment_method"`
	Total         float64           `json:"total"`
	Amount        float64           `json:"amount"`
	SaleType      string            `json:"sale_type"`
	Status        string            `json:"status"`
	Date          string            `json:"date"`
	Notes         string            `json:"observacoes,omitempty"`
}

type saleResponseWire struct {
	ID            flexString        `json:"id"`
	SellerID      flexString        `json:"seller_id"`
	CustomerID    flexString        `json:"customer_id"`
	Total         decimal.Decimal   `json:"total"`
	PaymentMethod string            `json:"payment_method"`
	Status        string            `json:"status"`
	Date          string            `json:"date"`
	Notes         string            `json:"observacoes"`
	Products      []saleProductResp `json:"products"`
	Data          *saleResponseWire `json:"data"`
}

type saleProductResp struct {
	ProductID  flexString      `json:"product_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantidade"`
	Price      decimal.Decimal `json:"price"`
	TotalSales decimal.Decimal `json:"total_sales"`
	Zoning     string          `json:"zoneamento"`
}

type sellerWire struct {
	SellerID flexString `json:"seller_id"`
	Name     string     `json:"name"`
}

type errorWire struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// flexString acepta IDs numéricos o de texto.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func money(d decimal.Decimal) float64 {
	return entity.RoundMoney(d).InexactFloat64()
}

func toWire(p entity.SalePayload) saleRequestWire {
	products := make([]saleProductWire, 0, len(p.Items))
	for _, it := range p.Items {
		products = append(products, saleProductWire{
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
			Price:        money(it.Price),
			ProductPrice: money(it.ProductPrice),
			TotalSales:   money(it.TotalSales),
			Zoning:       it.Zoning,
		})
	}
	return saleRequestWire{
		SellerID:      p.SellerID,
		CustomerID:    p.CustomerID,
		Products:      products,
		PaymentMethod: p.PaymentMethod,
		Total:         money(p.Total),
		Amount:        money(p.Amount),
		SaleType:      p.SaleType,
		Status:        p.Status,
		Date:          p.Date.Format(time.RFC3339),
		Notes:         p.Notes,
	}
}

func (w *saleResponseWire) toEntity() *entity.Sale {
	if w.Data != nil {
		return w.Data.toEntity()
	}
	sale := &entity.Sale{
		ID:            string(w.ID),
		SellerID:      string(w.SellerID),
		CustomerID:    string(w.CustomerID),
		Total:         w.Total,
		PaymentMethod: w.PaymentMethod,
		Status:        w.Status,
		Notes:         w.Notes,
	}
	if t, err := time.Parse(time.RFC3339, w.Date); err == nil {
		sale.Date = t
	}
	for _, p := range w.Products {
		sale.Items = append(sale.Items, entity.SaleItem{
			ItemID:    string(p.ProductID),
			Name:      p.Name,
			Quantity:  p.Quantity,
			UnitPrice: p.Price,
			Subtotal:  p.TotalSales,
			Zoning:    p.Zoning,
		})
	}
	return sale
}

// ── Operaciones ──────────────────────────────────────────────────────────────

// CreateSale envía POST /sales con la cabecera Idempotency-Key.
func (c *Client) CreateSale(ctx context.Context, idempotencyKey string, payload entity.SalePayload) (*entity.Sale, error) {
	body, err := json.Marshal(toWire(payload))
	if err != nil {
		return nil, fmt.Errorf("encode sale: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/sales", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	var out saleResponseWire
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	sale := out.toEntity()
	if sale.ID == "" {
		return nil, &APIError{Status: http.StatusBadGateway, Message: "resposta sem id da venda"}
	}
	c.log.Debug().Str("sale_id", sale.ID).Str("idempotency_key", idempotencyKey).Msg("venta creada")
	return sale, nil
}

// SellerForUser resuelve GET /sellers/by-user/{userID}. Sin vendedor devuelve domain.ErrSellerNotFound.
func (c *Client) SellerForUser(ctx context.Context, userID string) (*entity.Seller, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/sellers/by-user/"+url.PathEscape(userID), nil)
	if err != nil {
		return nil, err
	}
	var out sellerWire
	if err := c.do(req, &out); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, domain.ErrSellerNotFound
		}
		return nil, err
	}
	if strings.TrimSpace(string(out.SellerID)) == "" {
		return nil, domain.ErrSellerNotFound
	}
	return &entity.Seller{ID: string(out.SellerID), Name: out.Name}, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// do ejecuta la solicitud y decodifica la respuesta 2xx en out; el resto se convierte en *APIError.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
		c.log.Warn().Int("status", resp.StatusCode).Str("path", req.URL.Path).Str("message", apiErr.Message).Msg("sales api: respuesta de error")
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", req.URL.Path, err)
	}
	return nil
}

func errorMessage(raw []byte) string {
	var e errorWire
	if err := json.Unmarshal(raw, &e); err == nil {
		if msg := strings.TrimSpace(e.Error); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(e.Message); msg != "" {
			return msg
		}
	}
	return ""
}
