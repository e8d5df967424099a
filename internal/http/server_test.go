package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"recordbook-web/internal/core"
	"recordbook-web/internal/recordbook"
	"recordbook-web/internal/wizard"
)

// fakeAPI is an in-memory stand-in for the record-keeping backend.
type fakeAPI struct {
	mu         sync.Mutex
	sales      []core.SalesRecord
	adminSales []core.AdminSalePayload
	deleted    []string
}

func (f *fakeAPI) handler() stdhttp.Handler {
	mux := stdhttp.NewServeMux()

	mux.HandleFunc("GET /api/sales", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		json.NewEncoder(w).Encode(f.sales)
	})
	mux.HandleFunc("GET /api/sales/{id}", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, rec := range f.sales {
			if rec.ID == id {
				json.NewEncoder(w).Encode(rec)
				return
			}
		}
		w.WriteHeader(stdhttp.StatusNotFound)
	})
	mux.HandleFunc("DELETE /api/sales/{id}", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.deleted = append(f.deleted, r.PathValue("id"))
		w.WriteHeader(stdhttp.StatusNoContent)
	})
	mux.HandleFunc("POST /api/sales", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		w.WriteHeader(stdhttp.StatusCreated)
	})
	mux.HandleFunc("POST /api/admin/sales", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		var p core.AdminSalePayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			w.WriteHeader(stdhttp.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.adminSales = append(f.adminSales, p)
		w.WriteHeader(stdhttp.StatusCreated)
	})

	mux.HandleFunc("GET /api/routes", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		json.NewEncoder(w).Encode([]core.Route{{RouteID: 1, RouteName: "R1"}})
	})
	mux.HandleFunc("GET /api/routes/{id}/villages", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		json.NewEncoder(w).Encode([]core.Village{{VillageID: 11, VillageName: "Kothur", RouteID: 1}})
	})
	mux.HandleFunc("GET /api/salesmen", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		json.NewEncoder(w).Encode([]core.Salesman{{SalesmanID: 5, FirstName: "Sai", LastName: "Kumar", Alias: "sai"}})
	})
	mux.HandleFunc("GET /api/v1/admin/salesmen/aliases", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		json.NewEncoder(w).Encode([]string{"sai"})
	})
	mux.HandleFunc("GET /api/customers", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		json.NewEncoder(w).Encode([]core.Customer{{CustomerID: 9, ShopName: "X"}})
	})
	mux.HandleFunc("GET /api/products", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		json.NewEncoder(w).Encode([]core.Product{{ProductID: 3, ProductName: "P", ProductCode: "A"}})
	})

	mux.HandleFunc("/", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		w.Write([]byte("[]"))
	})

	return mux
}

func newTestServer(t *testing.T, fake *fakeAPI) *Server {
	t.Helper()

	backend := httptest.NewServer(fake.handler())
	t.Cleanup(backend.Close)

	api, err := recordbook.New(backend.URL, 5*time.Second, nil)
	if err != nil {
		t.Fatal(err)
	}

	s := NewServer(":0", api, wizard.NewStore(time.Minute, 8), nil)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return s
}

func doForm(s *Server, method, path string, form url.Values, cookies []*stdhttp.Cookie) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t, &fakeAPI{})

	rec := doForm(s, stdhttp.MethodGet, "/healthz", nil, nil)
	if rec.Code != stdhttp.StatusOK {
		t.Errorf("healthz = %d", rec.Code)
	}
	rec = doForm(s, stdhttp.MethodGet, "/readyz", nil, nil)
	if rec.Code != stdhttp.StatusOK {
		t.Errorf("readyz = %d", rec.Code)
	}
}

func TestDashboardRendersRecords(t *testing.T) {
	fake := &fakeAPI{sales: []core.SalesRecord{
		{ID: 1, SaleDate: "2026-02-21", ProductName: "Phenyl 1L", Quantity: 3},
	}}
	s := newTestServer(t, fake)

	rec := doForm(s, stdhttp.MethodGet, "/admin", nil, nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("dashboard = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Phenyl 1L") {
		t.Error("dashboard should list the record")
	}
}

func TestSalesTableFilters(t *testing.T) {
	fake := &fakeAPI{sales: []core.SalesRecord{
		{ID: 1, Variant: "Lemon", Size: "1L", ProductName: "Phenyl Lemon"},
		{ID: 2, Variant: "Rose", Size: "1L", ProductName: "Phenyl Rose"},
	}}
	s := newTestServer(t, fake)

	rec := doForm(s, stdhttp.MethodGet, "/admin/sales?variant=Lemon", nil, nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("sales table = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Phenyl Lemon") || strings.Contains(body, "Phenyl Rose") {
		t.Error("variant filter should keep only matching rows")
	}
}

func TestCreateSaleValidation(t *testing.T) {
	s := newTestServer(t, &fakeAPI{})

	form := url.Values{"saleDate": {"2026-02-21"}}
	rec := doForm(s, stdhttp.MethodPost, "/admin/sales", form, nil)
	if rec.Code != stdhttp.StatusBadRequest {
		t.Errorf("missing product should 400, got %d", rec.Code)
	}

	form = url.Values{
		"saleDate":    {"2026-02-21"},
		"productName": {"Phenyl 1L"},
		"quantity":    {"2"},
	}
	rec = doForm(s, stdhttp.MethodPost, "/admin/sales", form, nil)
	if rec.Code != stdhttp.StatusOK {
		t.Errorf("valid create = %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "records:changed") {
		t.Error("create should trigger a table refresh")
	}
}

func TestEditSaleRow(t *testing.T) {
	fake := &fakeAPI{sales: []core.SalesRecord{
		{ID: 1, SaleDate: "2026-02-21", ProductName: "Phenyl 1L", Quantity: 3},
	}}
	s := newTestServer(t, fake)

	rec := doForm(s, stdhttp.MethodGet, "/admin/sales/1/edit", nil, nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("edit row = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `value="Phenyl 1L"`) || !strings.Contains(body, `hx-put="/admin/sales/1"`) {
		t.Error("edit row should prefill the record and target the update endpoint")
	}
}

func TestDeleteSale(t *testing.T) {
	fake := &fakeAPI{}
	s := newTestServer(t, fake)

	rec := doForm(s, stdhttp.MethodDelete, "/admin/sales/7", nil, nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("delete = %d", rec.Code)
	}
	if len(fake.deleted) != 1 || fake.deleted[0] != "7" {
		t.Errorf("deleted = %v", fake.deleted)
	}
}

// TestWizardFlow drives the whole sales-entry flow through HTTP, carrying
// the session cookie between steps.
func TestWizardFlow(t *testing.T) {
	fake := &fakeAPI{}
	s := newTestServer(t, fake)

	rec := doForm(s, stdhttp.MethodGet, "/admin/operations/sales/", nil, nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("wizard page = %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("wizard page should set the session cookie")
	}

	slip := `{"saleDate":"01022024","customer":{"name":"X"},"items":[{"productCode":"A","productName":"P","quantity":2,"rate":10,"revenue":20}],"totalRevenue":20,"amountReceived":20,"balanceDue":0,"paymentMode":"CASH"}`

	rec = doForm(s, stdhttp.MethodPost, "/admin/operations/sales/input", url.Values{"slip": {slip}}, cookies)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("input = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `data-step="review"`) {
		t.Fatal("parse should land on review")
	}

	rec = doForm(s, stdhttp.MethodPost, "/admin/operations/sales/advance", nil, cookies)
	if !strings.Contains(rec.Body.String(), `data-step="route-select"`) {
		t.Fatal("review should advance to route-select")
	}

	// guard: advancing without a route is refused
	rec = doForm(s, stdhttp.MethodPost, "/admin/operations/sales/advance", nil, cookies)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("route guard = %d", rec.Code)
	}

	doForm(s, stdhttp.MethodPost, "/admin/operations/sales/route", url.Values{"routeId": {"1"}}, cookies)
	doForm(s, stdhttp.MethodPost, "/admin/operations/sales/advance", nil, cookies) // -> village-select
	doForm(s, stdhttp.MethodPost, "/admin/operations/sales/advance", nil, cookies) // -> salesman-select

	// guard: confirm is unreachable without a salesman
	rec = doForm(s, stdhttp.MethodPost, "/admin/operations/sales/advance", nil, cookies)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("salesman guard = %d", rec.Code)
	}

	doForm(s, stdhttp.MethodPost, "/admin/operations/sales/salesman", url.Values{"salesmanId": {"5"}}, cookies)
	rec = doForm(s, stdhttp.MethodPost, "/admin/operations/sales/advance", nil, cookies)
	if !strings.Contains(rec.Body.String(), `data-step="confirm"`) {
		t.Fatal("salesman select should advance to confirm")
	}

	rec = doForm(s, stdhttp.MethodPost, "/admin/operations/sales/confirm", nil, cookies)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("confirm = %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("HX-Redirect") != "/admin" {
		t.Error("confirm should redirect back to the dashboard")
	}

	fake.mu.Lock()
	defer fake.mu.Unlock()
	if len(fake.adminSales) != 1 {
		t.Fatalf("admin sales = %d, want 1", len(fake.adminSales))
	}
	got := fake.adminSales[0]
	if got.OrderDate != "2024-02-01" || got.Quantity != 2 || got.SalesmanID != 5 {
		t.Errorf("payload = %+v", got)
	}
}

// Resubmitting a slip or advancing off the end must read as a client-side
// mistake, not a backend failure.
func TestWizardDoubleSubmitIsClientError(t *testing.T) {
	s := newTestServer(t, &fakeAPI{})

	rec := doForm(s, stdhttp.MethodGet, "/admin/operations/sales/", nil, nil)
	cookies := rec.Result().Cookies()

	slip := `{"saleDate":"01022024","customer":{"name":"X"},"items":[]}`
	rec = doForm(s, stdhttp.MethodPost, "/admin/operations/sales/input", url.Values{"slip": {slip}}, cookies)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("first input = %d", rec.Code)
	}

	rec = doForm(s, stdhttp.MethodPost, "/admin/operations/sales/input", url.Values{"slip": {slip}}, cookies)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Errorf("second input = %d, want 422", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "Could not reach the server") {
		t.Error("a resubmitted slip should not read as a backend failure")
	}
}

func TestWizardRejectsBadSlip(t *testing.T) {
	s := newTestServer(t, &fakeAPI{})

	rec := doForm(s, stdhttp.MethodGet, "/admin/operations/sales/", nil, nil)
	cookies := rec.Result().Cookies()

	rec = doForm(s, stdhttp.MethodPost, "/admin/operations/sales/input", url.Values{"slip": {"{nope"}}, cookies)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("bad slip = %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "show-notification") {
		t.Error("bad slip should notify the user")
	}
}

func TestDailySalesSubmit(t *testing.T) {
	s := newTestServer(t, &fakeAPI{})

	form := url.Values{
		"alias":           {"sai"},
		"date":            {"2026-02-21"},
		"sales":           {`[{"saleDate":"2026-02-21","productCode":"A","quantity":1,"rate":20,"revenue":20}]`},
		"expenseCategory": {"Fuel", ""},
		"expenseAmount":   {"150", ""},
	}
	rec := doForm(s, stdhttp.MethodPost, "/daily-sales/submit", form, nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("submit = %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("HX-Redirect") != "/daily-sales/summary" {
		t.Error("submit should redirect to the summary page")
	}
}

func TestDailySalesSubmitRequiresAlias(t *testing.T) {
	s := newTestServer(t, &fakeAPI{})

	rec := doForm(s, stdhttp.MethodPost, "/daily-sales/submit", url.Values{"sales": {"[]"}}, nil)
	if rec.Code != stdhttp.StatusBadRequest {
		t.Errorf("missing alias = %d, want 400", rec.Code)
	}
}
