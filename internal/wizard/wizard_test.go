package wizard

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recordbook-web/internal/core"
)

// fakeBackend implements recordbook.MasterData in memory.
type fakeBackend struct {
	mu        sync.Mutex
	routes    []core.Route
	villages  map[int64][]core.Village
	salesmen  []core.Salesman
	customers []core.Customer
	products  []core.Product

	created   []core.AdminSalePayload
	failAfter int // fail the Nth create call (0-based); -1 never fails
	nextID    int64
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		routes: []core.Route{{RouteID: 1, RouteName: "R1"}},
		villages: map[int64][]core.Village{
			1: {{VillageID: 11, VillageName: "Kothur", RouteID: 1}},
		},
		salesmen:  []core.Salesman{{SalesmanID: 5, FirstName: "Sai", LastName: "Kumar", Alias: "sai"}},
		customers: []core.Customer{{CustomerID: 9, ShopName: "Laxmi Stores"}},
		products:  []core.Product{{ProductID: 3, ProductName: "P", ProductCode: "A"}},
		failAfter: -1,
		nextID:    100,
	}
}

func (f *fakeBackend) Routes(ctx context.Context) ([]core.Route, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]core.Route(nil), f.routes...), nil
}

func (f *fakeBackend) Villages(ctx context.Context, routeID int64) ([]core.Village, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]core.Village(nil), f.villages[routeID]...), nil
}

func (f *fakeBackend) AddRoute(ctx context.Context, name string) (core.Route, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	r := core.Route{RouteID: f.nextID, RouteName: name}
	f.routes = append(f.routes, r)
	return r, nil
}

func (f *fakeBackend) AddVillage(ctx context.Context, routeID int64, name string) (core.Village, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	v := core.Village{VillageID: f.nextID, VillageName: name, RouteID: routeID}
	f.villages[routeID] = append(f.villages[routeID], v)
	return v, nil
}

func (f *fakeBackend) Salesmen(ctx context.Context) ([]core.Salesman, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]core.Salesman(nil), f.salesmen...), nil
}

func (f *fakeBackend) AddSalesman(ctx context.Context, s core.Salesman) (core.Salesman, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	s.SalesmanID = f.nextID
	f.salesmen = append(f.salesmen, s)
	return s, nil
}

func (f *fakeBackend) Customers(ctx context.Context) ([]core.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]core.Customer(nil), f.customers...), nil
}

func (f *fakeBackend) Products(ctx context.Context) ([]core.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]core.Product(nil), f.products...), nil
}

func (f *fakeBackend) CreateAdminSale(ctx context.Context, p core.AdminSalePayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAfter >= 0 && len(f.created) == f.failAfter {
		return fmt.Errorf("backend rejected the record")
	}
	f.created = append(f.created, p)
	return nil
}

const sampleSlip = `{
	"saleDate": "01022024",
	"customer": {"name": "X"},
	"items": [{"productCode": "A", "productName": "P", "quantity": 2, "rate": 10, "revenue": 20}],
	"totalRevenue": 20,
	"amountReceived": 20,
	"balanceDue": 0,
	"paymentMode": "CASH"
}`

func TestInvalidJSONStaysAtInput(t *testing.T) {
	w := New(newFakeBackend(), nil)

	err := w.ParseInput(context.Background(), "{not json")
	require.Error(t, err)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Equal(t, StepInput, w.Step())
}

func TestUnknownFieldRejected(t *testing.T) {
	w := New(newFakeBackend(), nil)

	err := w.ParseInput(context.Background(), `{"saleDate":"01022024","customer":{"name":"X"},"surprise":true}`)
	require.Error(t, err)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Equal(t, StepInput, w.Step())
}

func TestParseAdvancesToReview(t *testing.T) {
	w := New(newFakeBackend(), nil)

	require.NoError(t, w.ParseInput(context.Background(), sampleSlip))
	assert.Equal(t, StepReview, w.Step())
	assert.Len(t, w.Routes(), 1)
	assert.Len(t, w.Salesmen(), 1)
}

func TestRouteGuardBlocksForward(t *testing.T) {
	ctx := context.Background()
	w := New(newFakeBackend(), nil)
	require.NoError(t, w.ParseInput(ctx, sampleSlip))
	require.NoError(t, w.Advance()) // review -> route-select

	assert.ErrorIs(t, w.Advance(), ErrRouteRequired)
	assert.Equal(t, StepRouteSelect, w.Step())

	require.NoError(t, w.SelectRoute(ctx, 1))
	require.NoError(t, w.Advance())
	assert.Equal(t, StepVillageSelect, w.Step())
}

func TestVillageIsOptional(t *testing.T) {
	ctx := context.Background()
	w := New(newFakeBackend(), nil)
	require.NoError(t, w.ParseInput(ctx, sampleSlip))
	require.NoError(t, w.Advance())
	require.NoError(t, w.SelectRoute(ctx, 1))
	require.NoError(t, w.Advance())

	// advance past village-select without choosing one
	require.NoError(t, w.Advance())
	assert.Equal(t, StepSalesmanSelect, w.Step())
}

func TestConfirmUnreachableWithoutSalesman(t *testing.T) {
	ctx := context.Background()
	w := New(newFakeBackend(), nil)
	require.NoError(t, w.ParseInput(ctx, sampleSlip))
	require.NoError(t, w.Advance())
	require.NoError(t, w.SelectRoute(ctx, 1))
	require.NoError(t, w.Advance())
	require.NoError(t, w.Advance())

	assert.ErrorIs(t, w.Advance(), ErrSalesmanRequired)
	assert.Equal(t, StepSalesmanSelect, w.Step())
}

func TestOutOfStepRequestsAreFlowErrors(t *testing.T) {
	ctx := context.Background()
	w := New(newFakeBackend(), nil)

	assert.ErrorIs(t, w.Advance(), ErrSlipRequired)

	require.NoError(t, w.ParseInput(ctx, sampleSlip))
	assert.ErrorIs(t, w.ParseInput(ctx, sampleSlip), ErrSlipInProgress)
	assert.Equal(t, StepReview, w.Step())

	require.NoError(t, w.Advance())
	require.NoError(t, w.SelectRoute(ctx, 1))
	require.NoError(t, w.Advance())
	require.NoError(t, w.Advance())
	w.SelectSalesman(5)
	require.NoError(t, w.Advance())

	assert.ErrorIs(t, w.Advance(), ErrAtFinalStep)
	assert.Equal(t, StepConfirm, w.Step())
}

func TestBackAllowsEarlierStepsOnly(t *testing.T) {
	ctx := context.Background()
	w := New(newFakeBackend(), nil)
	require.NoError(t, w.ParseInput(ctx, sampleSlip))
	require.NoError(t, w.Advance())

	require.NoError(t, w.Back(StepReview))
	assert.Equal(t, StepReview, w.Step())

	assert.Error(t, w.Back(StepConfirm))
	assert.Error(t, w.Back(Step("sideways")))
}

func TestConfirmEndToEnd(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend()
	w := New(backend, nil)

	require.NoError(t, w.ParseInput(ctx, sampleSlip))
	require.NoError(t, w.Advance())
	require.NoError(t, w.SelectRoute(ctx, 1))
	require.NoError(t, w.Advance())
	require.NoError(t, w.Advance())
	w.SelectSalesman(5)
	require.NoError(t, w.Advance())
	require.Equal(t, StepConfirm, w.Step())

	n, err := w.Confirm(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, backend.created, 1)

	got := backend.created[0]
	assert.Equal(t, "2024-02-01", got.OrderDate)
	assert.Equal(t, int64(2), got.Quantity)
	assert.True(t, got.ActualRate.Equal(decimal.NewFromInt(10)))
	assert.True(t, got.Revenue.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, int64(5), got.SalesmanID)
	assert.Equal(t, int64(1), got.RouteID)
	assert.Nil(t, got.VillageID)
	assert.Equal(t, "X", got.ShopName)
	assert.Equal(t, core.CustomerTypeShopkeeper, got.CustomerType)

	// success resets the flow
	assert.Equal(t, StepInput, w.Step())
}

func TestConfirmEmptyItemsBeforeNetwork(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend()
	w := New(backend, nil)

	slip := `{"saleDate":"01022024","customer":{"name":"X"},"items":[],"totalRevenue":0,"amountReceived":0,"balanceDue":0,"paymentMode":"CASH"}`
	require.NoError(t, w.ParseInput(ctx, slip))
	require.NoError(t, w.Advance())
	require.NoError(t, w.SelectRoute(ctx, 1))
	require.NoError(t, w.Advance())
	require.NoError(t, w.Advance())
	w.SelectSalesman(5)
	require.NoError(t, w.Advance())

	_, err := w.Confirm(ctx)
	assert.ErrorIs(t, err, ErrNoItems)
	assert.Empty(t, backend.created)
	assert.Equal(t, StepConfirm, w.Step())
}

func TestConfirmAbortsOnFirstFailure(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend()
	backend.failAfter = 1
	w := New(backend, nil)

	slip := `{
		"saleDate": "01022024",
		"customer": {"name": "X"},
		"items": [
			{"productCode": "A", "productName": "P", "quantity": 2, "rate": 10, "revenue": 20},
			{"productCode": "B", "productName": "Q", "quantity": 1, "rate": 30, "revenue": 30},
			{"productCode": "C", "productName": "R", "quantity": 4, "rate": 5, "revenue": 20}
		],
		"totalRevenue": 70, "amountReceived": 70, "balanceDue": 0, "paymentMode": "CASH"
	}`
	require.NoError(t, w.ParseInput(ctx, slip))
	require.NoError(t, w.Advance())
	require.NoError(t, w.SelectRoute(ctx, 1))
	require.NoError(t, w.Advance())
	require.NoError(t, w.Advance())
	w.SelectSalesman(5)
	require.NoError(t, w.Advance())

	n, err := w.Confirm(ctx)
	require.Error(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, backend.created, 1, "submitted records stay persisted")
	assert.Equal(t, StepConfirm, w.Step(), "failure keeps the wizard at confirm")
}

func TestInlineCreatesKeepState(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend()
	w := New(backend, nil)

	require.NoError(t, w.ParseInput(ctx, sampleSlip))
	require.NoError(t, w.Advance())

	require.NoError(t, w.AddRoute(ctx, "R2"))
	assert.Len(t, w.Routes(), 2)
	assert.Equal(t, StepRouteSelect, w.Step())

	assert.ErrorIs(t, w.AddVillage(ctx, "New Village"), ErrRouteRequired)

	require.NoError(t, w.SelectRoute(ctx, 1))
	require.NoError(t, w.AddVillage(ctx, "New Village"))
	assert.Len(t, w.Villages(), 2)

	require.NoError(t, w.AddSalesman(ctx, core.Salesman{FirstName: "Ravi", LastName: "Teja"}))
	assert.Len(t, w.Salesmen(), 2)

	assert.ErrorIs(t, w.AddRoute(ctx, "  "), core.ErrEmptyRouteName)
}

func TestNameResolvers(t *testing.T) {
	ctx := context.Background()
	w := New(newFakeBackend(), nil)
	require.NoError(t, w.ParseInput(ctx, sampleSlip))
	require.NoError(t, w.SelectRoute(ctx, 1))
	w.SelectVillage(11)
	w.SelectSalesman(5)

	assert.Equal(t, "R1", w.RouteName())
	assert.Equal(t, "Kothur", w.VillageName())
	assert.Equal(t, "Sai Kumar", w.SalesmanName())
}

func TestCancelResets(t *testing.T) {
	ctx := context.Background()
	w := New(newFakeBackend(), nil)
	require.NoError(t, w.ParseInput(ctx, sampleSlip))

	w.Cancel()
	assert.Equal(t, StepInput, w.Step())
	assert.Empty(t, w.Routes())
}
