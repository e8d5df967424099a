package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"recordbook-web/internal/core"
	"recordbook-web/internal/log"
	"recordbook-web/internal/recordbook"
)

type productCostsData struct {
	Costs  []core.ProductCost
	Found  *core.ProductCost
	Exists *bool
	Query  string
	Error  string
}

func (s *Server) handleProductCosts(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	data := productCostsData{}
	costs, err := s.api.ProductCosts(r.Context())
	if err != nil {
		data.Error = recordbook.ErrorMessage(err)
	}
	data.Costs = costs
	s.render(w, r, "product_costs.html", data)
}

// handleSearchProductCost serves the search partial: an existence check by
// code, or a lookup by code or name.
func (s *Server) handleSearchProductCost(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	q := r.URL.Query()
	data := productCostsData{}

	switch {
	case q.Get("exists") != "":
		data.Query = sanitizeInput(q.Get("exists"))
		exists, err := s.api.ProductCostExists(r.Context(), data.Query)
		if err != nil {
			data.Error = recordbook.ErrorMessage(err)
			break
		}
		data.Exists = &exists
	case q.Get("code") != "":
		data.Query = sanitizeInput(q.Get("code"))
		cost, err := s.api.ProductCostByCode(r.Context(), data.Query)
		if err != nil {
			data.Error = recordbook.ErrorMessage(err)
			break
		}
		data.Found = &cost
	case q.Get("name") != "":
		data.Query = sanitizeInput(q.Get("name"))
		cost, err := s.api.ProductCostByName(r.Context(), data.Query)
		if err != nil {
			data.Error = recordbook.ErrorMessage(err)
			break
		}
		data.Found = &cost
	default:
		data.Error = "Enter a product code or name to search."
	}

	s.render(w, r, "cost_search.html", data)
}

func costFromForm(r *stdhttp.Request) (core.ProductCost, string) {
	if err := r.ParseForm(); err != nil {
		return core.ProductCost{}, "Could not read the form"
	}

	cost := core.ProductCost{
		ProductName: sanitizeInput(r.FormValue("productName")),
		ProductCode: sanitizeInput(r.FormValue("productCode")),
	}
	amount, err := formDecimal(r, "cost")
	if err != nil {
		return cost, "Cost must be a number"
	}
	cost.Cost = amount

	if err := cost.Validate(); err != nil {
		return cost, err.Error()
	}
	return cost, ""
}

func (s *Server) handleAddProductCost(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	cost, errMsg := costFromForm(r)
	if errMsg != "" {
		BadRequestError(errMsg).Write(w)
		return
	}

	if err := s.api.AddProductCost(r.Context(), cost); err != nil {
		BackendError(recordbook.ErrorMessage(err)).Write(w)
		return
	}

	s.log.InfoContext(r.Context(), "product cost added", log.FieldProductCode, cost.ProductCode)
	NewHTMXResponse().
		TriggerCostsChanged().
		TriggerFormReset().
		TriggerSuccessNotification("Product cost added").
		Write(w)
}

func (s *Server) handleUpdateProductCost(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	id, err := pathID(chi.URLParam(r, "id"))
	if err != nil {
		BadRequestError("Invalid cost id").Write(w)
		return
	}

	cost, errMsg := costFromForm(r)
	if errMsg != "" {
		BadRequestError(errMsg).Write(w)
		return
	}
	cost.PID = id

	if err := s.api.UpdateProductCost(r.Context(), id, cost); err != nil {
		BackendError(recordbook.ErrorMessage(err)).Write(w)
		return
	}

	NewHTMXResponse().
		TriggerCostsChanged().
		TriggerSuccessNotification("Product cost updated").
		Write(w)
}

func (s *Server) handleDeleteProductCost(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	id, err := pathID(chi.URLParam(r, "id"))
	if err != nil {
		BadRequestError("Invalid cost id").Write(w)
		return
	}

	if err := s.api.DeleteProductCost(r.Context(), id); err != nil {
		BackendError(recordbook.ErrorMessage(err)).Write(w)
		return
	}

	NewHTMXResponse().
		TriggerCostsChanged().
		TriggerSuccessNotification("Product cost deleted").
		Write(w)
}
