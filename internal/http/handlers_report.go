package http

import (
	stdhttp "net/http"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"recordbook-web/internal/core"
	"recordbook-web/internal/dates"
	"recordbook-web/internal/recordbook"
)

type reportData struct {
	StartDate string
	EndDate   string

	Daily   []core.DailyReportRow
	Weekly  []core.WeeklyReportRow
	Product []core.ProductReportRow
	Totals  core.ReportTotals

	MaxDailyRevenue   decimal.Decimal
	MaxWeeklyRevenue  decimal.Decimal
	MaxProductRevenue decimal.Decimal

	Error string
}

// handleReport fetches the sales and expense ranges in parallel and
// aggregates them into the daily, weekly and per-product views.
func (s *Server) handleReport(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	q := r.URL.Query()
	data := reportData{
		StartDate: sanitizeInput(q.Get("startDate")),
		EndDate:   sanitizeInput(q.Get("endDate")),
	}
	if !dates.IsValidISO(data.StartDate) {
		data.StartDate = dates.DaysAgo(30)
	}
	if !dates.IsValidISO(data.EndDate) {
		data.EndDate = dates.Today()
	}

	var (
		sales    []core.SalesRecord
		expenses []core.DailyExpenseDetail
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		sales, err = s.api.SalesReport(ctx, data.StartDate, data.EndDate)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.api.DailyExpensesRange(ctx, data.StartDate, data.EndDate)
		return err
	})
	if err := g.Wait(); err != nil {
		data.Error = recordbook.ErrorMessage(err)
		s.render(w, r, "report.html", data)
		return
	}

	data.Daily = core.BuildDailyReport(sales, expenses)
	data.Weekly = core.BuildWeeklyReport(data.Daily)
	data.Product = core.BuildProductReport(sales)
	data.Totals = core.SumDailyReport(data.Daily)

	for _, d := range data.Daily {
		if d.Revenue.GreaterThan(data.MaxDailyRevenue) {
			data.MaxDailyRevenue = d.Revenue
		}
	}
	for _, wk := range data.Weekly {
		if wk.Revenue.GreaterThan(data.MaxWeeklyRevenue) {
			data.MaxWeeklyRevenue = wk.Revenue
		}
	}
	for _, p := range data.Product {
		if p.Revenue.GreaterThan(data.MaxProductRevenue) {
			data.MaxProductRevenue = p.Revenue
		}
	}

	s.render(w, r, "report.html", data)
}
