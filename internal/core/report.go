package core

import (
	"sort"

	"github.com/shopspring/decimal"

	"recordbook-web/internal/dates"
)

// The report page aggregates the raw range endpoints client-side: sales and
// expenses are grouped per day, rolled into Monday-anchored weeks, and
// grouped per product. Profit is revenue minus commission minus expenses.

type (
	DailyReportRow struct {
		Date       string
		Revenue    decimal.Decimal
		Commission decimal.Decimal
		Expenses   decimal.Decimal
		Profit     decimal.Decimal
		Quantity   int64
	}

	WeeklyReportRow struct {
		WeekStart string
		Revenue   decimal.Decimal
		Profit    decimal.Decimal
	}

	ProductReportRow struct {
		ProductCode string
		Revenue     decimal.Decimal
		Commission  decimal.Decimal
		Profit      decimal.Decimal
		Quantity    int64
	}

	ReportTotals struct {
		Revenue    decimal.Decimal
		Expenses   decimal.Decimal
		Commission decimal.Decimal
		Profit     decimal.Decimal
		Quantity   int64
	}
)

// BuildDailyReport merges sales and expense rows by date, ascending.
func BuildDailyReport(sales []SalesRecord, expenses []DailyExpenseDetail) []DailyReportRow {
	byDate := make(map[string]*DailyReportRow)
	rowFor := func(date string) *DailyReportRow {
		if row, ok := byDate[date]; ok {
			return row
		}
		row := &DailyReportRow{Date: date}
		byDate[date] = row
		return row
	}

	for _, s := range sales {
		row := rowFor(s.SaleDate)
		row.Revenue = row.Revenue.Add(s.Revenue)
		row.Commission = row.Commission.Add(s.AgentCommission)
		row.Quantity += s.Quantity
	}
	for _, e := range expenses {
		row := rowFor(e.ExpenseDate)
		row.Expenses = row.Expenses.Add(e.TotalExpense)
	}

	out := make([]DailyReportRow, 0, len(byDate))
	for _, row := range byDate {
		row.Profit = row.Revenue.Sub(row.Commission).Sub(row.Expenses)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// BuildWeeklyReport buckets daily rows into Monday-anchored weeks.
func BuildWeeklyReport(daily []DailyReportRow) []WeeklyReportRow {
	byWeek := make(map[string]*WeeklyReportRow)
	for _, d := range daily {
		weekStart := dates.MondayOfWeek(d.Date)
		row, ok := byWeek[weekStart]
		if !ok {
			row = &WeeklyReportRow{WeekStart: weekStart}
			byWeek[weekStart] = row
		}
		row.Revenue = row.Revenue.Add(d.Revenue)
		row.Profit = row.Profit.Add(d.Profit)
	}

	out := make([]WeeklyReportRow, 0, len(byWeek))
	for _, row := range byWeek {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart < out[j].WeekStart })
	return out
}

// BuildProductReport groups sales per product code, highest revenue first.
// Rows without a code fall into an "Unknown" bucket.
func BuildProductReport(sales []SalesRecord) []ProductReportRow {
	byCode := make(map[string]*ProductReportRow)
	var order []string
	for _, s := range sales {
		code := s.ProductCode
		if code == "" {
			code = "Unknown"
		}
		row, ok := byCode[code]
		if !ok {
			row = &ProductReportRow{ProductCode: code}
			byCode[code] = row
			order = append(order, code)
		}
		row.Revenue = row.Revenue.Add(s.Revenue)
		row.Commission = row.Commission.Add(s.AgentCommission)
		row.Quantity += s.Quantity
	}

	out := make([]ProductReportRow, 0, len(order))
	for _, code := range order {
		row := byCode[code]
		row.Profit = row.Revenue.Sub(row.Commission)
		out = append(out, *row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[j].Revenue.LessThan(out[i].Revenue) })
	return out
}

// SumDailyReport totals the daily rows for the summary cards.
func SumDailyReport(daily []DailyReportRow) ReportTotals {
	var t ReportTotals
	for _, d := range daily {
		t.Revenue = t.Revenue.Add(d.Revenue)
		t.Expenses = t.Expenses.Add(d.Expenses)
		t.Commission = t.Commission.Add(d.Commission)
		t.Profit = t.Profit.Add(d.Profit)
		t.Quantity += d.Quantity
	}
	return t
}
