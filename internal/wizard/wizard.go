package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"recordbook-web/internal/core"
	"recordbook-web/internal/log"
	"recordbook-web/internal/recordbook"
)

// Step identifies where in the flow a session currently is.
type Step string

const (
	StepInput          Step = "input"
	StepReview         Step = "review"
	StepRouteSelect    Step = "route-select"
	StepVillageSelect  Step = "village-select"
	StepSalesmanSelect Step = "salesman-select"
	StepConfirm        Step = "confirm"
)

// forward is the happy-path order of steps.
var forward = []Step{StepInput, StepReview, StepRouteSelect, StepVillageSelect, StepSalesmanSelect, StepConfirm}

// Flow errors: guard failures and out-of-step requests. All of them are the
// caller's to fix, never the backend's.
var (
	ErrRouteRequired    = errors.New("select a route before continuing")
	ErrSalesmanRequired = errors.New("select a salesman before continuing")
	ErrNotAtConfirm     = errors.New("the sale is not ready to submit")
	ErrSlipRequired     = errors.New("paste a sale slip first")
	ErrSlipInProgress   = errors.New("a slip is already in progress, go back to input to start over")
	ErrAtFinalStep      = errors.New("already at the final step")
)

// Wizard holds one session's sales-entry state: the parsed slip, the loaded
// master data and the operator's selections. Guards run here so the confirm
// step can never be reached without a route and a salesman; the backend stays
// the final authority and its rejections leave the step unchanged.
type Wizard struct {
	mu  sync.Mutex
	api recordbook.MasterData
	log *log.Logger

	step Step
	slip SaleSlip

	routes    []core.Route
	villages  []core.Village
	salesmen  []core.Salesman
	customers []core.Customer
	products  []core.Product

	selectedRoute    int64
	selectedVillage  int64 // 0 means none, village is optional
	selectedSalesman int64
}

// New starts a wizard at the input step.
func New(api recordbook.MasterData, logger *log.Logger) *Wizard {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentWizard)
	}
	return &Wizard{api: api, log: logger, step: StepInput}
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// ParseInput accepts the pasted slip text. On a successful parse the master
// data is loaded and the wizard moves to review; on failure the wizard stays
// at input and the ParseError carries the reason.
func (w *Wizard) ParseInput(ctx context.Context, raw string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepInput {
		return ErrSlipInProgress
	}

	slip, err := ParseSlip(raw)
	if err != nil {
		w.log.WarnContext(ctx, "slip rejected", log.FieldError, err)
		return err
	}

	if err := w.loadMasterData(ctx); err != nil {
		return err
	}

	w.slip = slip
	w.step = StepReview
	w.log.InfoContext(ctx, "slip accepted",
		log.FieldSaleDate, slip.SaleDate,
		log.FieldCustomer, slip.Customer.Name,
		log.FieldItemCount, len(slip.Items))
	return nil
}

// loadMasterData fetches everything the later steps need, in parallel.
// Callers hold w.mu.
func (w *Wizard) loadMasterData(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		routes, err := w.api.Routes(ctx)
		if err != nil {
			return fmt.Errorf("loading routes: %w", err)
		}
		w.routes = routes
		return nil
	})
	g.Go(func() error {
		salesmen, err := w.api.Salesmen(ctx)
		if err != nil {
			return fmt.Errorf("loading salesmen: %w", err)
		}
		w.salesmen = salesmen
		return nil
	})
	g.Go(func() error {
		customers, err := w.api.Customers(ctx)
		if err != nil {
			return fmt.Errorf("loading customers: %w", err)
		}
		w.customers = customers
		return nil
	})
	g.Go(func() error {
		products, err := w.api.Products(ctx)
		if err != nil {
			return fmt.Errorf("loading products: %w", err)
		}
		w.products = products
		return nil
	})
	return g.Wait()
}

// Advance moves one step forward, enforcing the step's guard. Review is
// always allowed forward once reached; route and salesman selections are
// required at their steps; village is optional.
func (w *Wizard) Advance() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.step {
	case StepInput:
		return ErrSlipRequired
	case StepReview:
		w.step = StepRouteSelect
	case StepRouteSelect:
		if w.selectedRoute == 0 {
			return ErrRouteRequired
		}
		w.step = StepVillageSelect
	case StepVillageSelect:
		w.step = StepSalesmanSelect
	case StepSalesmanSelect:
		if w.selectedSalesman == 0 {
			return ErrSalesmanRequired
		}
		w.step = StepConfirm
	case StepConfirm:
		return ErrAtFinalStep
	}
	return nil
}

// Back returns to any earlier step. Moving forward this way is refused so
// the guards in Advance cannot be skipped.
func (w *Wizard) Back(to Step) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	target, current := -1, -1
	for i, s := range forward {
		if s == to {
			target = i
		}
		if s == w.step {
			current = i
		}
	}
	if target == -1 {
		return fmt.Errorf("unknown step %q", to)
	}
	if target > current {
		return fmt.Errorf("cannot skip ahead to %s", to)
	}
	w.step = to
	return nil
}

// Cancel resets the session to a blank input step.
func (w *Wizard) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reset()
}

// reset clears everything. Callers hold w.mu.
func (w *Wizard) reset() {
	w.step = StepInput
	w.slip = SaleSlip{}
	w.routes = nil
	w.villages = nil
	w.salesmen = nil
	w.customers = nil
	w.products = nil
	w.selectedRoute = 0
	w.selectedVillage = 0
	w.selectedSalesman = 0
}

// SelectRoute records the route choice and loads its villages. Changing
// route clears any village picked for the previous one.
func (w *Wizard) SelectRoute(ctx context.Context, routeID int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	villages, err := w.api.Villages(ctx, routeID)
	if err != nil {
		return fmt.Errorf("loading villages: %w", err)
	}
	w.selectedRoute = routeID
	w.selectedVillage = 0
	w.villages = villages
	return nil
}

// SelectVillage records the village choice. Zero clears it.
func (w *Wizard) SelectVillage(villageID int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selectedVillage = villageID
}

// SelectSalesman records the salesman choice.
func (w *Wizard) SelectSalesman(salesmanID int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selectedSalesman = salesmanID
}

// AddRoute creates a route inline and refreshes the route list. The step and
// every selection stay as they were.
func (w *Wizard) AddRoute(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return core.ErrEmptyRouteName
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.api.AddRoute(ctx, strings.TrimSpace(name)); err != nil {
		return err
	}
	routes, err := w.api.Routes(ctx)
	if err != nil {
		return fmt.Errorf("refreshing routes: %w", err)
	}
	w.routes = routes
	return nil
}

// AddVillage creates a village on the currently selected route and refreshes
// the village list.
func (w *Wizard) AddVillage(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return core.ErrEmptyVillageName
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.selectedRoute == 0 {
		return ErrRouteRequired
	}
	if _, err := w.api.AddVillage(ctx, w.selectedRoute, strings.TrimSpace(name)); err != nil {
		return err
	}
	villages, err := w.api.Villages(ctx, w.selectedRoute)
	if err != nil {
		return fmt.Errorf("refreshing villages: %w", err)
	}
	w.villages = villages
	return nil
}

// AddSalesman registers a salesman inline and refreshes the salesman list.
func (w *Wizard) AddSalesman(ctx context.Context, s core.Salesman) error {
	if err := s.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.api.AddSalesman(ctx, s); err != nil {
		return err
	}
	salesmen, err := w.api.Salesmen(ctx)
	if err != nil {
		return fmt.Errorf("refreshing salesmen: %w", err)
	}
	w.salesmen = salesmen
	return nil
}

// Confirm submits the sale: one create call per item, in order. The first
// failure stops the remainder; records already accepted by the backend stay
// persisted. On full success the wizard resets to input and the number of
// records written is returned.
func (w *Wizard) Confirm(ctx context.Context) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepConfirm {
		return 0, ErrNotAtConfirm
	}
	if w.selectedRoute == 0 {
		return 0, ErrRouteRequired
	}
	if w.selectedSalesman == 0 {
		return 0, ErrSalesmanRequired
	}

	var villageID *int64
	if w.selectedVillage != 0 {
		id := w.selectedVillage
		villageID = &id
	}

	payloads, err := BuildPayloads(w.slip, w.customers, w.products, w.selectedRoute, villageID, w.selectedSalesman)
	if err != nil {
		return 0, err
	}

	for i, payload := range payloads {
		if err := w.api.CreateAdminSale(ctx, payload); err != nil {
			w.log.ErrorContext(ctx, "sale submit aborted",
				log.FieldItemCount, i,
				log.FieldProductCode, payload.ProductCode,
				log.FieldError, err)
			return i, fmt.Errorf("saving item %d of %d: %w", i+1, len(payloads), err)
		}
	}

	w.log.InfoContext(ctx, "sale recorded",
		log.FieldSaleDate, w.slip.SaleDate,
		log.FieldCustomer, w.slip.Customer.Name,
		log.FieldItemCount, len(payloads))
	n := len(payloads)
	w.reset()
	return n, nil
}

// Slip returns the parsed slip for rendering.
func (w *Wizard) Slip() SaleSlip {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.slip
}

// Routes returns the loaded route list.
func (w *Wizard) Routes() []core.Route {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.routes
}

// Villages returns the villages of the selected route.
func (w *Wizard) Villages() []core.Village {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.villages
}

// Salesmen returns the loaded salesman list.
func (w *Wizard) Salesmen() []core.Salesman {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.salesmen
}

// Selection reports the chosen route, village and salesman ids. Village is
// zero when none is picked.
func (w *Wizard) Selection() (routeID, villageID, salesmanID int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selectedRoute, w.selectedVillage, w.selectedSalesman
}

// RouteName resolves the selected route's display name.
func (w *Wizard) RouteName() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, r := range w.routes {
		if r.RouteID == w.selectedRoute {
			return r.RouteName
		}
	}
	return ""
}

// VillageName resolves the selected village's display name, empty when no
// village is picked.
func (w *Wizard) VillageName() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, v := range w.villages {
		if v.VillageID == w.selectedVillage {
			return v.VillageName
		}
	}
	return ""
}

// SalesmanName resolves the selected salesman's display name.
func (w *Wizard) SalesmanName() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, s := range w.salesmen {
		if s.SalesmanID == w.selectedSalesman {
			return s.DisplayName()
		}
	}
	return ""
}
