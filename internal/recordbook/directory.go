package recordbook

import (
	"context"
	"fmt"
	"net/url"

	"recordbook-web/internal/core"
)

// Salesmen returns every registered salesman.
func (c *Client) Salesmen(ctx context.Context) ([]core.Salesman, error) {
	var salesmen []core.Salesman
	if err := c.get(ctx, "/api/salesmen", nil, &salesmen); err != nil {
		return nil, err
	}
	return salesmen, nil
}

// SalesmanAliases returns the aliases salesmen file their summaries under.
func (c *Client) SalesmanAliases(ctx context.Context) ([]string, error) {
	var aliases []string
	if err := c.get(ctx, "/api/v1/admin/salesmen/aliases", nil, &aliases); err != nil {
		return nil, err
	}
	return aliases, nil
}

// AddSalesman registers a new salesman and returns the stored record.
func (c *Client) AddSalesman(ctx context.Context, s core.Salesman) (core.Salesman, error) {
	var created core.Salesman
	if err := c.post(ctx, "/api/v1/admin/salesmen", s, &created); err != nil {
		return core.Salesman{}, err
	}
	return created, nil
}

// Customers returns every known customer.
func (c *Client) Customers(ctx context.Context) ([]core.Customer, error) {
	var customers []core.Customer
	if err := c.get(ctx, "/api/customers", nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// AddCustomer registers a new customer.
func (c *Client) AddCustomer(ctx context.Context, customer core.Customer) (core.Customer, error) {
	var created core.Customer
	if err := c.post(ctx, "/api/admin/customers", customer, &created); err != nil {
		return core.Customer{}, err
	}
	return created, nil
}

// Routes returns every delivery route.
func (c *Client) Routes(ctx context.Context) ([]core.Route, error) {
	var routes []core.Route
	if err := c.get(ctx, "/api/routes", nil, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

// AddRoute creates a delivery route.
func (c *Client) AddRoute(ctx context.Context, name string) (core.Route, error) {
	var created core.Route
	body := map[string]string{"routeName": name}
	if err := c.post(ctx, "/api/routes", body, &created); err != nil {
		return core.Route{}, err
	}
	return created, nil
}

// Villages returns the villages on one route.
func (c *Client) Villages(ctx context.Context, routeID int64) ([]core.Village, error) {
	var villages []core.Village
	path := fmt.Sprintf("/api/routes/%d/villages", routeID)
	if err := c.get(ctx, path, nil, &villages); err != nil {
		return nil, err
	}
	return villages, nil
}

// AddVillage creates a village on an existing route.
func (c *Client) AddVillage(ctx context.Context, routeID int64, name string) (core.Village, error) {
	var created core.Village
	body := map[string]any{"routeId": routeID, "villageName": name}
	if err := c.post(ctx, "/api/routes/villages", body, &created); err != nil {
		return core.Village{}, err
	}
	return created, nil
}

// Products returns the product catalog.
func (c *Client) Products(ctx context.Context) ([]core.Product, error) {
	var products []core.Product
	if err := c.get(ctx, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// DailyExpenses returns one salesman's expense sheet for one ISO date.
func (c *Client) DailyExpenses(ctx context.Context, alias, date string) (core.DailyExpenseDetail, error) {
	q := url.Values{}
	q.Set("alias", alias)
	q.Set("date", date)

	var detail core.DailyExpenseDetail
	if err := c.get(ctx, "/api/daily-expenses/salesman-date", q, &detail); err != nil {
		return core.DailyExpenseDetail{}, err
	}
	return detail, nil
}

// DailyExpensesRange returns expense sheets between two ISO dates.
func (c *Client) DailyExpensesRange(ctx context.Context, startDate, endDate string) ([]core.DailyExpenseDetail, error) {
	q := url.Values{}
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)

	var expenses []core.DailyExpenseDetail
	if err := c.get(ctx, "/api/daily-expenses/range", q, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}
