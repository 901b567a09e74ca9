package salesapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendas-api/internal/domain"
	"github.com/jhoicas/vendas-api/internal/domain/entity"
	"github.com/jhoicas/vendas-api/pkg/config"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(config.SalesAPIConfig{URL: srv.URL + "/", Timeout: 2 * time.Second, Token: "tok"}, zerolog.Nop())
}

func samplePayload() entity.SalePayload {
	return entity.SalePayload{
		SellerID:   "7",
		CustomerID: "42",
		Items: []entity.SalePayloadItem{{
			ProductID:    "p1",
			Kind:         entity.LineKindProduct,
			Quantity:     2,
			Price:        decimal.RequireFromString("100.00"),
			ProductPrice: decimal.RequireFromString("100.00"),
			TotalSales:   decimal.RequireFromString("200.00"),
			Zoning:       "Sala 1",
		}},
		PaymentMethod: entity.PaymentPix,
		Total:         decimal.RequireFromString("200.00"),
		Amount:        decimal.RequireFromString("200.00"),
		SaleType:      entity.SaleTypeVenda,
		Status:        entity.SaleStatusConcluida,
		Date:          time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC),
	}
}

func TestCreateSale_EnviaPayloadYCabeceras(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sales", r.URL.Path)
		assert.Equal(t, "key-1", r.Header.Get("Idempotency-Key"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 981, "seller_id": "7", "customer_id": 42, "total": 200, "status": "concluida", "date": "2025-03-10T14:30:00Z"}`))
	})

	sale, err := c.CreateSale(t.Context(), "key-1", samplePayload())
	require.NoError(t, err)
	assert.Equal(t, "981", sale.ID)
	assert.Equal(t, "42", sale.CustomerID)
	assert.True(t, decimal.NewFromInt(200).Equal(sale.Total))
	assert.Equal(t, 2025, sale.Date.Year())

	assert.Equal(t, "venda", got["sale_type"])
	assert.Equal(t, "concluida", got["status"])
	assert.Equal(t, 200.0, got["total"])
	assert.Equal(t, "2025-03-10T14:30:00Z", got["date"])
	assert.NotContains(t, got, "observacoes")
	products := got["products"].([]any)
	require.Len(t, products, 1)
	line := products[0].(map[string]any)
	assert.Equal(t, "p1", line["product_id"])
	assert.Equal(t, 2.0, line["quantidade"])
	assert.Equal(t, "Sala 1", line["zoneamento"])
}

func TestCreateSale_RespuestaEnvueltaEnData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"id": "abc", "products": [{"product_id": "p1", "quantidade": 2, "price": 100, "total_sales": 200}]}}`))
	})
	sale, err := c.CreateSale(t.Context(), "", samplePayload())
	require.NoError(t, err)
	assert.Equal(t, "abc", sale.ID)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, 2, sale.Items[0].Quantity)
}

func TestCreateSale_ErrorDelBackend(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error": "product_price inválido"}`))
	})
	_, err := c.CreateSale(t.Context(), "k", samplePayload())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "product_price inválido", apiErr.UserMessage())
}

func TestCreateSale_RespuestaSinID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	_, err := c.CreateSale(t.Context(), "k", samplePayload())
	var apiErr *APIError
	assert.True(t, errors.As(err, &apiErr))
}

func TestSellerForUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sellers/by-user/u1":
			_, _ = w.Write([]byte(`{"seller_id": 7, "name": "Ana"}`))
		case "/sellers/by-user/u2":
			_, _ = w.Write([]byte(`{"seller_id": null}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	seller, err := c.SellerForUser(t.Context(), "u1")
	require.NoError(t, err)
	assert.Equal(t, &entity.Seller{ID: "7", Name: "Ana"}, seller)

	_, err = c.SellerForUser(t.Context(), "u2")
	assert.ErrorIs(t, err, domain.ErrSellerNotFound)

	_, err = c.SellerForUser(t.Context(), "u3")
	assert.ErrorIs(t, err, domain.ErrSellerNotFound)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "a", errorMessage([]byte(`{"error": "a", "message": "b"}`)))
	assert.Equal(t, "b", errorMessage([]byte(`{"message": " b "}`)))
	assert.Empty(t, errorMessage([]byte(`<html>`)))
}
