package recordbook

import (
	"context"
	"fmt"
	"net/url"

	"recordbook-web/internal/core"
)

// ListSales returns every sales record the backend holds.
func (c *Client) ListSales(ctx context.Context) ([]core.SalesRecord, error) {
	var records []core.SalesRecord
	if err := c.get(ctx, "/api/sales", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetSale fetches one sales record by id.
func (c *Client) GetSale(ctx context.Context, id int64) (core.SalesRecord, error) {
	var record core.SalesRecord
	if err := c.get(ctx, fmt.Sprintf("/api/sales/%d", id), nil, &record); err != nil {
		return core.SalesRecord{}, err
	}
	return record, nil
}

// CreateSale records a plain sale.
func (c *Client) CreateSale(ctx context.Context, record core.SalesRecord) error {
	return c.post(ctx, "/api/sales", record, nil)
}

// CreateAdminSale records one finalized sale line from the sales-entry flow.
func (c *Client) CreateAdminSale(ctx context.Context, p core.AdminSalePayload) error {
	return c.post(ctx, "/api/admin/sales", p, nil)
}

// UpdateSale replaces an existing sales record.
func (c *Client) UpdateSale(ctx context.Context, id int64, record core.SalesRecord) error {
	return c.put(ctx, fmt.Sprintf("/api/sales/%d", id), record, nil)
}

// DeleteSale removes a sales record.
func (c *Client) DeleteSale(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/sales/%d", id))
}

// SalesReport returns sales between two ISO dates, inclusive.
func (c *Client) SalesReport(ctx context.Context, startDate, endDate string) ([]core.SalesRecord, error) {
	q := url.Values{}
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)

	var records []core.SalesRecord
	if err := c.get(ctx, "/api/sales/report", q, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SubmitSalesWithExpense sends a salesman's daily sales together with the
// day's expenses in one call.
func (c *Client) SubmitSalesWithExpense(ctx context.Context, s core.SalesExpenseSubmission) error {
	return c.post(ctx, "/api/sales/sales-expense", s, nil)
}
