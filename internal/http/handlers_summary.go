package http

import (
	stdhttp "net/http"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"recordbook-web/internal/core"
	"recordbook-web/internal/dates"
	"recordbook-web/internal/log"
	"recordbook-web/internal/recordbook"
)

type dailySummaryData struct {
	Records         []core.SalesRecord
	Aliases         []string
	TotalQuantity   int64
	TotalRevenue    decimal.Decimal
	TotalCommission decimal.Decimal
	Error           string
}

// handleDailySalesSummary renders the full sales table with column totals.
// Row edits and deletes go through the dashboard's record endpoints.
func (s *Server) handleDailySalesSummary(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	data := dailySummaryData{}

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		records, err := s.api.ListSales(ctx)
		if err != nil {
			return err
		}
		data.Records = records
		return nil
	})
	g.Go(func() error {
		aliases, err := s.api.SalesmanAliases(ctx)
		if err != nil {
			return err
		}
		data.Aliases = aliases
		return nil
	})
	if err := g.Wait(); err != nil {
		data.Error = recordbook.ErrorMessage(err)
	}

	for _, rec := range data.Records {
		data.TotalQuantity += rec.Quantity
		data.TotalRevenue = data.TotalRevenue.Add(rec.TotalRevenue)
		data.TotalCommission = data.TotalCommission.Add(rec.AgentCommission)
	}
	s.render(w, r, "daily_summary.html", data)
}

type productSummaryData struct {
	Mode          string
	Date          string
	Year          string
	Month         string
	StartDate     string
	EndDate       string
	Rows          []core.ProductSales
	TotalQuantity int64
	Aliases       []string
	ExpenseAlias  string
	ExpenseDate   string
	Expense       *core.DailyExpenseDetail
	Error         string
}

// productSalesFor fetches the aggregation matching the requested view mode.
func (s *Server) productSalesFor(r *stdhttp.Request, data *productSummaryData) ([]core.ProductSales, error) {
	q := r.URL.Query()
	data.Mode = q.Get("mode")
	if data.Mode == "" {
		data.Mode = "today"
	}
	data.Date = sanitizeInput(q.Get("date"))
	data.Year = sanitizeInput(q.Get("year"))
	data.Month = sanitizeInput(q.Get("month"))
	data.StartDate = sanitizeInput(q.Get("startDate"))
	data.EndDate = sanitizeInput(q.Get("endDate"))

	ctx := r.Context()
	switch data.Mode {
	case "date":
		if data.Date == "" {
			data.Date = dates.Today()
		}
		return s.api.ProductSalesByDate(ctx, data.Date)
	case "month":
		if data.Year == "" || data.Month == "" {
			month := dates.CurrentMonth() // YYYY-MM
			data.Year, data.Month = month[:4], month[5:]
		}
		return s.api.ProductSalesByMonth(ctx, data.Year, data.Month)
	case "range":
		if data.StartDate == "" {
			data.StartDate = dates.DaysAgo(30)
		}
		if data.EndDate == "" {
			data.EndDate = dates.Today()
		}
		return s.api.ProductSalesByRange(ctx, data.StartDate, data.EndDate)
	case "all":
		return s.api.ProductSalesAll(ctx)
	default:
		return s.api.ProductSalesToday(ctx)
	}
}

func (s *Server) handleProductSummary(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	data := productSummaryData{}

	rows, err := s.productSalesFor(r, &data)
	if err != nil {
		data.Error = recordbook.ErrorMessage(err)
	}
	data.Rows = rows
	for _, row := range rows {
		data.TotalQuantity += row.TotalQuantity
	}

	if aliases, err := s.api.SalesmanAliases(r.Context()); err == nil {
		data.Aliases = aliases
	}

	// Optional per-salesman expense lookup. A miss just renders without it.
	data.ExpenseAlias = sanitizeInput(r.URL.Query().Get("expenseAlias"))
	data.ExpenseDate = sanitizeInput(r.URL.Query().Get("expenseDate"))
	if data.ExpenseAlias != "" && dates.IsValidISO(data.ExpenseDate) {
		if detail, err := s.api.DailyExpenses(r.Context(), data.ExpenseAlias, data.ExpenseDate); err == nil {
			data.Expense = &detail
		}
	}

	s.render(w, r, "product_summary.html", data)
}

// handleSummarySubmit reduces the currently viewed product sales plus the
// selected expense sheet into one day-end summary and files it.
func (s *Server) handleSummarySubmit(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	if err := r.ParseForm(); err != nil {
		BadRequestError("Could not read the form").Write(w)
		return
	}

	alias := sanitizeInput(r.FormValue("alias"))
	date := sanitizeInput(r.FormValue("date"))
	if alias == "" {
		BadRequestError("Please select a salesman.").Write(w)
		return
	}
	if !dates.IsValidISO(date) {
		BadRequestError("Sale date must be YYYY-MM-DD.").Write(w)
		return
	}

	rows, err := s.api.ProductSalesByDate(r.Context(), date)
	if err != nil {
		BackendError(recordbook.ErrorMessage(err)).Write(w)
		return
	}

	summary := core.SummaryRecord{
		SalesmanAlias: alias,
		SaleDate:      date,
	}
	for _, row := range rows {
		summary.MaterialCost = summary.MaterialCost.Add(row.TotalCost)
		summary.TotalRevenue = summary.TotalRevenue.Add(row.TotalRevenue)
		summary.TotalAgentCommission = summary.TotalAgentCommission.Add(row.AgentCommission)
	}
	if detail, err := s.api.DailyExpenses(r.Context(), alias, date); err == nil {
		summary.TotalExpense = detail.TotalExpense
	}

	if err := s.api.SubmitSummary(r.Context(), summary); err != nil {
		BackendError(recordbook.ErrorMessage(err)).Write(w)
		return
	}

	s.log.InfoContext(r.Context(), "summary submitted",
		log.FieldSalesmanAlias, alias,
		log.FieldSaleDate, date)
	NewHTMXResponse().
		TriggerSuccessNotification("Summary submitted successfully!").
		Write(w)
}

type summaryReportData struct {
	Aliases   []string
	Alias     string
	Date      string
	StartDate string
	EndDate   string
	Rows      []core.SummaryRecord
	Totals    core.SummaryRecord
	Error     string
}

// handleSummaryReport lists day-end summaries filtered by salesman, single
// date, or date range. A range takes precedence over a single date.
func (s *Server) handleSummaryReport(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	q := r.URL.Query()
	data := summaryReportData{
		Alias:     sanitizeInput(q.Get("alias")),
		Date:      sanitizeInput(q.Get("date")),
		StartDate: sanitizeInput(q.Get("startDate")),
		EndDate:   sanitizeInput(q.Get("endDate")),
	}
	if !dates.IsValidISO(data.Date) {
		data.Date = ""
	}
	if !dates.IsValidISO(data.StartDate) || !dates.IsValidISO(data.EndDate) {
		data.StartDate, data.EndDate = "", ""
	}

	ctx := r.Context()
	var rows []core.SummaryRecord
	var err error
	switch {
	case data.Alias != "" && data.StartDate != "":
		rows, err = s.api.SummariesBySalesmanRange(ctx, data.Alias, data.StartDate, data.EndDate)
	case data.StartDate != "":
		rows, err = s.api.SummariesByRange(ctx, data.StartDate, data.EndDate)
	case data.Alias != "" && data.Date != "":
		rows, err = s.api.SummaryBySalesmanDate(ctx, data.Alias, data.Date)
	case data.Alias != "":
		rows, err = s.api.SummariesBySalesman(ctx, data.Alias)
	case data.Date != "":
		rows, err = s.api.SummariesByDate(ctx, data.Date)
	default:
		rows, err = s.api.Summaries(ctx)
	}
	if err != nil {
		data.Error = recordbook.ErrorMessage(err)
	}
	data.Rows = rows

	for _, row := range rows {
		data.Totals.MaterialCost = data.Totals.MaterialCost.Add(row.MaterialCost)
		data.Totals.TotalExpense = data.Totals.TotalExpense.Add(row.TotalExpense)
		data.Totals.TotalRevenue = data.Totals.TotalRevenue.Add(row.TotalRevenue)
		data.Totals.TotalAgentCommission = data.Totals.TotalAgentCommission.Add(row.TotalAgentCommission)
		data.Totals.NetProfit = data.Totals.NetProfit.Add(row.NetProfit)
	}

	if aliases, err := s.api.SalesmanAliases(ctx); err == nil {
		data.Aliases = aliases
	}

	s.render(w, r, "summary_report.html", data)
}
