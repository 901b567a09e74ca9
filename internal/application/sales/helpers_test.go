package sales_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendas-api/internal/application/notify"
	"github.com/jhoicas/vendas-api/internal/application/sales"
	"github.com/jhoicas/vendas-api/internal/domain/entity"
	"github.com/jhoicas/vendas-api/internal/infrastructure/kv"
)

// ── Mocks de colaboradores ───────────────────────────────────────────────────

type MockSellerLookup struct {
	mock.Mock
}

func (m *MockSellerLookup) SellerForUser(ctx context.Context, userID string) (*entity.Seller, error) {
	args := m.Called(ctx, userID)
	seller, _ := args.Get(0).(*entity.Seller)
	return seller, args.Error(1)
}

type MockSaleCreator struct {
	mock.Mock
}

func (m *MockSaleCreator) CreateSale(ctx context.Context, key string, payload entity.SalePayload) (*entity.Sale, error) {
	args := m.Called(ctx, key, payload)
	sale, _ := args.Get(0).(*entity.Sale)
	return sale, args.Error(1)
}

type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ctx context.Context, in sales.ReportInput) (*sales.Document, error) {
	args := m.Called(ctx, in)
	doc, _ := args.Get(0).(*sales.Document)
	return doc, args.Error(1)
}

// ── Repositorios en memoria ──────────────────────────────────────────────────

type customerRepo struct{ byID map[string]*entity.Customer }

func (r *customerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.byID[c.ID] = c
	return nil
}

func (r *customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	return r.byID[id], nil
}

func (r *customerRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Customer, error) {
	for _, c := range r.byID {
		if c.TaxID() == taxID {
			return c, nil
		}
	}
	return nil, nil
}

type catalogRepo struct{ items map[string]entity.CatalogItem }

func (r *catalogRepo) GetItem(_ context.Context, kind, id string) (*entity.CatalogItem, error) {
	it, ok := r.items[kind+"/"+id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

// countingDrafts cuenta las escrituras sobre el repositorio de borradores.
type countingDrafts struct {
	*kv.MemoryDraftRepository
	mu   sync.Mutex
	sets int
}

func (c *countingDrafts) Set(ctx context.Context, key string, value []byte) error {
	c.mu.Lock()
	c.sets++
	c.mu.Unlock()
	return c.MemoryDraftRepository.Set(ctx, key, value)
}

func (c *countingDrafts) writes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets
}

// idleScheduler nunca dispara: las notificaciones quedan visibles durante el test.
type idleScheduler struct{}

type idleTimer struct{}

func (idleTimer) Stop() bool { return true }

func (idleScheduler) AfterFunc(time.Duration, func()) notify.Timer { return idleTimer{} }

// ── Fixture ──────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

type fixture struct {
	deps     sales.Deps
	drafts   *countingDrafts
	sellers  *MockSellerLookup
	creator  *MockSaleCreator
	renderer *MockRenderer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		drafts:   &countingDrafts{MemoryDraftRepository: kv.NewMemoryDraftRepository()},
		sellers:  &MockSellerLookup{},
		creator:  &MockSaleCreator{},
		renderer: &MockRenderer{},
	}
	f.deps = sales.Deps{
		Drafts: f.drafts,
		Customers: &customerRepo{byID: map[string]*entity.Customer{
			"42": {ID: "42", Name: "Maria Souza", PersonType: entity.PersonTypeIndividual, CPF: "123.456.789-09", Phone: "11 99999-0000"},
		}},
		Catalog: &catalogRepo{items: map[string]entity.CatalogItem{
			"product/p1": {ID: "p1", Kind: entity.LineKindProduct, Name: "Câmera IP", Price: entity.PriceFromFloat(100)},
			"product/p2": {ID: "p2", Kind: entity.LineKindProduct, Name: "DVR", Price: entity.PriceFromFloat(0)},
			"service/s1": {ID: "s1", Kind: entity.LineKindService, Name: "Instalação", Price: entity.PriceFromFloat(80.5)},
			"service/sx": {ID: "sx", Kind: entity.LineKindService, Name: "Visita", Price: entity.ParsePrice("a combinar")},
		}},
		Sellers:   f.sellers,
		Creator:   f.creator,
		Renderer:  f.renderer,
		Log:       zerolog.Nop(),
		Clock:     func() time.Time { return fixedNow },
		Location:  time.UTC,
		Scheduler: idleScheduler{},
	}
	return f
}

func (f *fixture) session(t *testing.T) *sales.Session {
	t.Helper()
	s := sales.NewSession(context.Background(), "u1", f.deps)
	t.Cleanup(s.Close)
	return s
}

// readySession deja la sesión en Review con cliente 42, p1 × 2 y pago pix.
func (f *fixture) readySession(t *testing.T) *sales.Session {
	t.Helper()
	ctx := context.Background()
	s := f.session(t)
	_, err := s.SelectCustomer(ctx, "42")
	require.NoError(t, err)
	_, err = s.AddLine(ctx, entity.LineKindProduct, "p1")
	require.NoError(t, err)
	q := 2
	_, err = s.UpdateLine(ctx, entity.LineKindProduct, "p1", &q, nil)
	require.NoError(t, err)
	_, err = s.SetPaymentMethod(ctx, entity.PaymentPix)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		_, err = s.Next(ctx)
		require.NoError(t, err)
	}
	return s
}
