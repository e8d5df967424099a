package http

import (
	"encoding/json"
	stdhttp "net/http"
	"strings"

	"recordbook-web/internal/core"
	"recordbook-web/internal/dates"
	"recordbook-web/internal/log"
	"recordbook-web/internal/recordbook"
)

type dailySalesData struct {
	Aliases []string
	Error   string
}

func (s *Server) handleDailySalesDump(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	data := dailySalesData{}
	aliases, err := s.api.SalesmanAliases(r.Context())
	if err != nil {
		data.Error = recordbook.ErrorMessage(err)
	}
	data.Aliases = aliases
	s.render(w, r, "daily_sales.html", data)
}

// handleDailySalesSubmit accepts a pasted JSON array of sales rows plus the
// day's expense entries and forwards them as one submission. Dates go out as
// DD/MM/YYYY, which is what this endpoint expects.
func (s *Server) handleDailySalesSubmit(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	if err := r.ParseForm(); err != nil {
		BadRequestError("Could not read the form").Write(w)
		return
	}

	alias := sanitizeInput(r.FormValue("alias"))
	if alias == "" {
		BadRequestError("Please select a salesman.").Write(w)
		return
	}

	raw := strings.TrimSpace(r.FormValue("sales"))
	if raw == "" {
		BadRequestError("Paste the day's sales rows first.").Write(w)
		return
	}

	var rows []core.DailySalesEntry
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		// a single object is accepted as a one-row day
		var one core.DailySalesEntry
		if err := json.Unmarshal([]byte(raw), &one); err != nil {
			BadRequestError("Invalid JSON. Please paste a valid JSON array.").Write(w)
			return
		}
		rows = []core.DailySalesEntry{one}
	}

	date := sanitizeInput(r.FormValue("date"))
	if date == "" && len(rows) > 0 {
		date = dates.Display(rows[0].SaleDate)
	}
	if !dates.IsValidISO(date) {
		BadRequestError("Expense date must be YYYY-MM-DD.").Write(w)
		return
	}
	slashDate := dates.ToSlashDDMMYYYY(date)

	expenses, errMsg := expensesFromForm(r, slashDate)
	if errMsg != "" {
		BadRequestError(errMsg).Write(w)
		return
	}

	submission := core.SalesExpenseSubmission{
		SalesmanAlias: alias,
		Date:          slashDate,
		Expenses:      expenses,
		DailySales:    rows,
	}

	if err := s.api.SubmitSalesWithExpense(r.Context(), submission); err != nil {
		BackendError(recordbook.ErrorMessage(err)).Write(w)
		return
	}

	s.log.InfoContext(r.Context(), "daily sales submitted",
		log.FieldSalesmanAlias, alias,
		log.FieldSaleDate, date,
		log.FieldRecordCount, len(rows))
	NewHTMXResponse().
		TriggerSuccessNotification("Data saved successfully.").
		Header("HX-Redirect", "/daily-sales/summary").
		Write(w)
}

// expensesFromForm reads the parallel category/amount form arrays, skipping
// blank rows the same way the entry modal does.
func expensesFromForm(r *stdhttp.Request, slashDate string) ([]core.ExpenseItem, string) {
	categories := r.Form["expenseCategory"]
	amounts := r.Form["expenseAmount"]

	var expenses []core.ExpenseItem
	for i, category := range categories {
		category = sanitizeInput(category)
		if category == "" || i >= len(amounts) || strings.TrimSpace(amounts[i]) == "" {
			continue
		}
		amount, err := parseAmount(amounts[i])
		if err != nil {
			return nil, "Expense amounts must be numbers."
		}
		expenses = append(expenses, core.ExpenseItem{
			ExpenseDate: slashDate,
			Category:    category,
			Amount:      amount,
		})
	}
	return expenses, ""
}
