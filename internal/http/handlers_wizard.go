package http

import (
	"errors"
	stdhttp "net/http"

	"recordbook-web/internal/core"
	"recordbook-web/internal/recordbook"
	"recordbook-web/internal/wizard"
)

// wizardView is everything the step templates need to render the flow.
type wizardView struct {
	Step         wizard.Step
	Slip         wizard.SaleSlip
	Routes       []core.Route
	Villages     []core.Village
	Salesmen     []core.Salesman
	RouteID      int64
	VillageID    int64
	SalesmanID   int64
	RouteName    string
	VillageName  string
	SalesmanName string
}

func viewOf(wz *wizard.Wizard) wizardView {
	routeID, villageID, salesmanID := wz.Selection()
	return wizardView{
		Step:         wz.Step(),
		Slip:         wz.Slip(),
		Routes:       wz.Routes(),
		Villages:     wz.Villages(),
		Salesmen:     wz.Salesmen(),
		RouteID:      routeID,
		VillageID:    villageID,
		SalesmanID:   salesmanID,
		RouteName:    wz.RouteName(),
		VillageName:  wz.VillageName(),
		SalesmanName: wz.SalesmanName(),
	}
}

func (s *Server) handleWizardPage(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	wz := s.sessionWizard(w, r)
	s.render(w, r, "wizard.html", viewOf(wz))
}

// renderStep swaps in the partial for the wizard's current step.
func (s *Server) renderStep(w stdhttp.ResponseWriter, r *stdhttp.Request, wz *wizard.Wizard) {
	s.render(w, r, "wizard_step.html", viewOf(wz))
}

// wizardError maps a flow error to the right response: guard and parse
// failures are the user's to fix, anything else came from the backend. The
// step partial is re-rendered either way so the page never loses its place.
func (s *Server) wizardError(w stdhttp.ResponseWriter, err error) {
	var parseErr *wizard.ParseError
	switch {
	case errors.As(err, &parseErr),
		errors.Is(err, wizard.ErrNoItems),
		errors.Is(err, wizard.ErrRouteRequired),
		errors.Is(err, wizard.ErrSalesmanRequired),
		errors.Is(err, wizard.ErrNotAtConfirm),
		errors.Is(err, wizard.ErrSlipRequired),
		errors.Is(err, wizard.ErrSlipInProgress),
		errors.Is(err, wizard.ErrAtFinalStep),
		errors.Is(err, core.ErrEmptyRouteName),
		errors.Is(err, core.ErrEmptyVillageName),
		errors.Is(err, core.ErrEmptyName):
		UnprocessableEntityError(err.Error()).Write(w)
	default:
		BackendError(recordbook.ErrorMessage(err)).Write(w)
	}
}

func (s *Server) handleWizardInput(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	wz := s.sessionWizard(w, r)
	if err := r.ParseForm(); err != nil {
		BadRequestError("Could not read the form").Write(w)
		return
	}

	if err := wz.ParseInput(r.Context(), r.FormValue("slip")); err != nil {
		s.wizardError(w, err)
		return
	}
	s.renderStep(w, r, wz)
}

func (s *Server) handleWizardAdvance(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	wz := s.sessionWizard(w, r)
	if err := wz.Advance(); err != nil {
		s.wizardError(w, err)
		return
	}
	s.renderStep(w, r, wz)
}

func (s *Server) handleWizardBack(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	wz := s.sessionWizard(w, r)
	if err := r.ParseForm(); err != nil {
		BadRequestError("Could not read the form").Write(w)
		return
	}

	if err := wz.Back(wizard.Step(r.FormValue("to"))); err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}
	s.renderStep(w, r, wz)
}

func (s *Server) handleWizardCancel(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	wz := s.sessionWizard(w, r)
	wz.Cancel()

	NewHTMXResponse().
		Header("HX-Redirect", "/admin").
		Write(w)
}

func (s *Server) handleWizardSelectRoute(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	wz := s.sessionWizard(w, r)
	routeID, err := formInt(r, "routeId")
	if err != nil || routeID < 1 {
		UnprocessableEntityError("Select a route").Write(w)
		return
	}

	if err := wz.SelectRoute(r.Context(), routeID); err != nil {
		s.wizardError(w, err)
		return
	}
	s.renderStep(w, r, wz)
}

func (s *Server) handleWizardSelectVillage(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	wz := s.sessionWizard(w, r)
	villageID, err := formInt(r, "villageId")
	if err != nil {
		UnprocessableEntityError("Invalid village").Write(w)
		return
	}

	wz.SelectVillage(villageID)
	s.renderStep(w, r, wz)
}

func (s *Server) handleWizardSelectSalesman(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	wz := s.sessionWizard(w, r)
	salesmanID, err := formInt(r, "salesmanId")
	if err != nil || salesmanID < 1 {
		UnprocessableEntityError("Select a salesman").Write(w)
		return
	}

	wz.SelectSalesman(salesmanID)
	s.renderStep(w, r, wz)
}

func (s *Server) handleWizardAddRoute(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	wz := s.sessionWizard(w, r)
	if err := wz.AddRoute(r.Context(), r.FormValue("routeName")); err != nil {
		s.wizardError(w, err)
		return
	}
	s.renderStep(w, r, wz)
}

func (s *Server) handleWizardAddVillage(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	wz := s.sessionWizard(w, r)
	if err := wz.AddVillage(r.Context(), r.FormValue("villageName")); err != nil {
		s.wizardError(w, err)
		return
	}
	s.renderStep(w, r, wz)
}

func (s *Server) handleWizardAddSalesman(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	wz := s.sessionWizard(w, r)
	salesman := core.Salesman{
		FirstName:     sanitizeInput(r.FormValue("firstName")),
		LastName:      sanitizeInput(r.FormValue("lastName")),
		Alias:         sanitizeInput(r.FormValue("alias")),
		ContactNumber: sanitizeInput(r.FormValue("contactNumber")),
	}
	if err := wz.AddSalesman(r.Context(), salesman); err != nil {
		s.wizardError(w, err)
		return
	}
	s.renderStep(w, r, wz)
}

func (s *Server) handleWizardConfirm(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	wz := s.sessionWizard(w, r)

	items, err := wz.Confirm(r.Context())
	if err != nil {
		s.wizardError(w, err)
		return
	}

	msg := "Sales record added successfully!"
	if items > 1 {
		msg = "Sales record added successfully! All items saved."
	}
	NewHTMXResponse().
		TriggerSaleRecorded(items).
		TriggerSuccessNotification(msg).
		Header("HX-Redirect", "/admin").
		Write(w)
}
