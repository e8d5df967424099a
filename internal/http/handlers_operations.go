package http

import (
	stdhttp "net/http"

	"recordbook-web/internal/core"
	"recordbook-web/internal/log"
	"recordbook-web/internal/recordbook"
)

type operationsData struct {
	Routes []core.Route
	Error  string
}

func (s *Server) handleOperations(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	data := operationsData{}
	routes, err := s.api.Routes(r.Context())
	if err != nil {
		data.Error = recordbook.ErrorMessage(err)
	}
	data.Routes = routes
	s.render(w, r, "operations.html", data)
}

func (s *Server) handleAddCustomer(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	if err := r.ParseForm(); err != nil {
		BadRequestError("Could not read the form").Write(w)
		return
	}

	customer := core.Customer{
		ShopName:     sanitizeInput(r.FormValue("shopName")),
		CustomerType: sanitizeInput(r.FormValue("customerType")),
	}
	if customer.CustomerType == "" {
		customer.CustomerType = core.CustomerTypeShopkeeper
	}
	if err := customer.Validate(); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	if routeID, err := formInt(r, "routeId"); err == nil && routeID > 0 {
		customer.Route = &core.Route{RouteID: routeID}
		if villageID, err := formInt(r, "villageId"); err == nil && villageID > 0 {
			customer.Village = &core.Village{VillageID: villageID, RouteID: routeID}
		}
	}

	created, err := s.api.AddCustomer(r.Context(), customer)
	if err != nil {
		BackendError(recordbook.ErrorMessage(err)).Write(w)
		return
	}

	s.log.InfoContext(r.Context(), "customer added", log.FieldCustomer, created.ShopName)
	NewHTMXResponse().
		TriggerFormReset().
		TriggerSuccessNotification("Customer " + created.ShopName + " added").
		Write(w)
}

func (s *Server) handleAddSalesman(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	if err := r.ParseForm(); err != nil {
		BadRequestError("Could not read the form").Write(w)
		return
	}

	salesman := core.Salesman{
		FirstName:     sanitizeInput(r.FormValue("firstName")),
		LastName:      sanitizeInput(r.FormValue("lastName")),
		Alias:         sanitizeInput(r.FormValue("alias")),
		Address:       sanitizeInput(r.FormValue("address")),
		ContactNumber: sanitizeInput(r.FormValue("contactNumber")),
	}
	if err := salesman.Validate(); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	created, err := s.api.AddSalesman(r.Context(), salesman)
	if err != nil {
		BackendError(recordbook.ErrorMessage(err)).Write(w)
		return
	}

	s.log.InfoContext(r.Context(), "salesman added", log.FieldSalesmanAlias, created.Alias)
	NewHTMXResponse().
		TriggerFormReset().
		TriggerSuccessNotification("Salesman " + created.DisplayName() + " added").
		Write(w)
}
