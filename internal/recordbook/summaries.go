package recordbook

import (
	"context"
	"net/url"

	"recordbook-web/internal/core"
)

// ProductSalesToday returns per-product sales aggregated for today.
func (c *Client) ProductSalesToday(ctx context.Context) ([]core.ProductSales, error) {
	var rows []core.ProductSales
	if err := c.get(ctx, "/api/sales/summary/product-sales/today", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ProductSalesByDate returns per-product sales for one ISO date.
func (c *Client) ProductSalesByDate(ctx context.Context, date string) ([]core.ProductSales, error) {
	q := url.Values{}
	q.Set("date", date)

	var rows []core.ProductSales
	if err := c.get(ctx, "/api/sales/summary/product-sales/date", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ProductSalesByMonth returns per-product sales for one calendar month.
func (c *Client) ProductSalesByMonth(ctx context.Context, year, month string) ([]core.ProductSales, error) {
	q := url.Values{}
	q.Set("year", year)
	q.Set("month", month)

	var rows []core.ProductSales
	if err := c.get(ctx, "/api/sales/summary/product-sales/month", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ProductSalesByRange returns per-product sales between two ISO dates.
func (c *Client) ProductSalesByRange(ctx context.Context, startDate, endDate string) ([]core.ProductSales, error) {
	q := url.Values{}
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)

	var rows []core.ProductSales
	if err := c.get(ctx, "/api/sales/summary/product-sales/range", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ProductSalesAll returns per-product sales over the full history.
func (c *Client) ProductSalesAll(ctx context.Context) ([]core.ProductSales, error) {
	var rows []core.ProductSales
	if err := c.get(ctx, "/api/sales/summary/product-sales", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SubmitSummary records a day-end summary for a salesman.
func (c *Client) SubmitSummary(ctx context.Context, s core.SummaryRecord) error {
	return c.post(ctx, "/api/summary/submit", s, nil)
}

// Summaries returns every day-end summary.
func (c *Client) Summaries(ctx context.Context) ([]core.SummaryRecord, error) {
	var rows []core.SummaryRecord
	if err := c.get(ctx, "/api/summary/all", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SummariesByDate returns the summaries for one ISO date.
func (c *Client) SummariesByDate(ctx context.Context, date string) ([]core.SummaryRecord, error) {
	q := url.Values{}
	q.Set("date", date)

	var rows []core.SummaryRecord
	if err := c.get(ctx, "/api/summary/date", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SummariesBySalesman returns every summary filed under one alias.
func (c *Client) SummariesBySalesman(ctx context.Context, alias string) ([]core.SummaryRecord, error) {
	q := url.Values{}
	q.Set("alias", alias)

	var rows []core.SummaryRecord
	if err := c.get(ctx, "/api/summary/salesman", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SummaryBySalesmanDate returns one salesman's summary for one ISO date.
func (c *Client) SummaryBySalesmanDate(ctx context.Context, alias, date string) ([]core.SummaryRecord, error) {
	q := url.Values{}
	q.Set("alias", alias)
	q.Set("date", date)

	var rows []core.SummaryRecord
	if err := c.get(ctx, "/api/summary/by-salesman-date", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SummariesByRange returns the summaries between two ISO dates.
func (c *Client) SummariesByRange(ctx context.Context, startDate, endDate string) ([]core.SummaryRecord, error) {
	q := url.Values{}
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)

	var rows []core.SummaryRecord
	if err := c.get(ctx, "/api/summary/range", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SummariesBySalesmanRange returns one salesman's summaries between two ISO
// dates.
func (c *Client) SummariesBySalesmanRange(ctx context.Context, alias, startDate, endDate string) ([]core.SummaryRecord, error) {
	q := url.Values{}
	q.Set("alias", alias)
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)

	var rows []core.SummaryRecord
	if err := c.get(ctx, "/api/summary/salesman-range", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
