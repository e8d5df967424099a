package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"recordbook-web/internal/core"
	"recordbook-web/internal/log"
	"recordbook-web/internal/recordbook"
)

func (s *Server) handleAbout(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	s.render(w, r, "about.html", nil)
}

type dashboardData struct {
	Records  []core.SalesRecord
	Variants []string
	Sizes    []string
	Filter   core.SalesFilter
	SortKey  string
	SortDir  string
	Error    string
}

func (s *Server) handleDashboard(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	data, err := s.dashboardData(r)
	if err != nil {
		data.Error = recordbook.ErrorMessage(err)
	}
	s.render(w, r, "dashboard.html", data)
}

// handleSalesTable serves the table partial so filtering and sorting swap
// only the rows.
func (s *Server) handleSalesTable(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	data, err := s.dashboardData(r)
	if err != nil {
		BackendError(recordbook.ErrorMessage(err)).Write(w)
		return
	}
	s.render(w, r, "sales_table.html", data)
}

func (s *Server) dashboardData(r *stdhttp.Request) (dashboardData, error) {
	q := r.URL.Query()
	data := dashboardData{
		Filter: core.SalesFilter{
			Variant: sanitizeInput(q.Get("variant")),
			Size:    sanitizeInput(q.Get("size")),
		},
		SortKey: q.Get("sort"),
		SortDir: q.Get("order"),
	}

	records, err := s.api.ListSales(r.Context())
	if err != nil {
		return data, err
	}

	data.Variants = core.Variants(records)
	data.Sizes = core.Sizes(records)

	records = core.FilterSales(records, data.Filter)
	if data.SortKey != "" {
		records = core.SortSales(records, data.SortKey, data.SortDir)
	}
	data.Records = records
	return data, nil
}

// handleEditSaleRow swaps a table row for its inline edit form.
func (s *Server) handleEditSaleRow(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	id, err := pathID(chi.URLParam(r, "id"))
	if err != nil {
		BadRequestError("Invalid record id").Write(w)
		return
	}

	record, err := s.api.GetSale(r.Context(), id)
	if err != nil {
		BackendError(recordbook.ErrorMessage(err)).Write(w)
		return
	}
	s.render(w, r, "sales_row_edit.html", record)
}

func (s *Server) handleCreateSale(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	record, errMsg := saleFromForm(r)
	if errMsg != "" {
		BadRequestError(errMsg).Write(w)
		return
	}

	if err := s.api.CreateSale(r.Context(), record); err != nil {
		BackendError(recordbook.ErrorMessage(err)).Write(w)
		return
	}

	NewHTMXResponse().
		TriggerRecordsChanged().
		TriggerFormReset().
		TriggerSuccessNotification("Sales record added").
		Write(w)
}

func (s *Server) handleUpdateSale(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	id, err := pathID(chi.URLParam(r, "id"))
	if err != nil {
		BadRequestError("Invalid record id").Write(w)
		return
	}

	record, errMsg := saleFromForm(r)
	if errMsg != "" {
		BadRequestError(errMsg).Write(w)
		return
	}
	record.ID = id

	if err := s.api.UpdateSale(r.Context(), id, record); err != nil {
		BackendError(recordbook.ErrorMessage(err)).Write(w)
		return
	}

	NewHTMXResponse().
		TriggerRecordsChanged().
		TriggerSuccessNotification("Sales record updated").
		Write(w)
}

func (s *Server) handleDeleteSale(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	id, err := pathID(chi.URLParam(r, "id"))
	if err != nil {
		BadRequestError("Invalid record id").Write(w)
		return
	}

	if err := s.api.DeleteSale(r.Context(), id); err != nil {
		BackendError(recordbook.ErrorMessage(err)).Write(w)
		return
	}

	s.log.InfoContext(r.Context(), "sales record deleted", log.FieldRecordCount, 1)
	NewHTMXResponse().
		TriggerRecordsChanged().
		TriggerSuccessNotification("Sales record deleted").
		Write(w)
}

// saleFromForm builds a record from the dashboard form, returning a
// user-facing message on the first invalid field.
func saleFromForm(r *stdhttp.Request) (core.SalesRecord, string) {
	if err := r.ParseForm(); err != nil {
		return core.SalesRecord{}, "Could not read the form"
	}

	record := core.SalesRecord{
		SaleDate:     sanitizeInput(r.FormValue("saleDate")),
		SalesmanName: sanitizeInput(r.FormValue("salesmanName")),
		CustomerName: sanitizeInput(r.FormValue("customerName")),
		CustomerType: sanitizeInput(r.FormValue("customerType")),
		Village:      sanitizeInput(r.FormValue("village")),
		MobileNumber: sanitizeInput(r.FormValue("mobileNumber")),
		ProductName:  sanitizeInput(r.FormValue("productName")),
		ProductCode:  sanitizeInput(r.FormValue("productCode")),
		Variant:      sanitizeInput(r.FormValue("variant")),
		Size:         sanitizeInput(r.FormValue("size")),
	}

	if record.SaleDate == "" {
		return record, "Sale date is required"
	}
	if record.ProductName == "" {
		return record, "Product name is required"
	}

	var err error
	if record.Quantity, err = formInt(r, "quantity"); err != nil {
		return record, "Quantity must be a whole number"
	}
	if record.Quantity < 1 {
		return record, "Quantity must be at least 1"
	}
	if record.Rate, err = formDecimal(r, "rate"); err != nil {
		return record, "Rate must be a number"
	}
	if record.Revenue, err = formDecimal(r, "revenue"); err != nil {
		return record, "Revenue must be a number"
	}
	if record.TotalRevenue, err = formDecimal(r, "totalRevenue"); err != nil {
		return record, "Total revenue must be a number"
	}
	if record.AgentCommission, err = formDecimal(r, "agentCommission"); err != nil {
		return record, "Commission must be a number"
	}
	return record, ""
}
