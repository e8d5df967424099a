package recordbook

import (
	"context"
	"fmt"

	"recordbook-web/internal/core"
)

// ProductCosts returns every product cost entry.
func (c *Client) ProductCosts(ctx context.Context) ([]core.ProductCost, error) {
	var costs []core.ProductCost
	if err := c.get(ctx, "/api/product-cost/all", nil, &costs); err != nil {
		return nil, err
	}
	return costs, nil
}

// ProductCostExists reports whether a cost entry exists for a product code.
// The raw code goes into the decoded path; escaping happens once when the
// request URL is serialized.
func (c *Client) ProductCostExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	if err := c.get(ctx, "/api/product-cost/exists/"+code, nil, &exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ProductCostByCode looks up a cost entry by product code.
func (c *Client) ProductCostByCode(ctx context.Context, code string) (core.ProductCost, error) {
	var cost core.ProductCost
	if err := c.get(ctx, "/api/product-cost/by-code/"+code, nil, &cost); err != nil {
		return core.ProductCost{}, err
	}
	return cost, nil
}

// ProductCostByName looks up a cost entry by product name.
func (c *Client) ProductCostByName(ctx context.Context, name string) (core.ProductCost, error) {
	var cost core.ProductCost
	if err := c.get(ctx, "/api/product-cost/by-name/"+name, nil, &cost); err != nil {
		return core.ProductCost{}, err
	}
	return cost, nil
}

// AddProductCost creates a cost entry.
func (c *Client) AddProductCost(ctx context.Context, cost core.ProductCost) error {
	return c.post(ctx, "/api/product-cost/add", cost, nil)
}

// UpdateProductCost replaces the cost entry with the given id.
func (c *Client) UpdateProductCost(ctx context.Context, id int64, cost core.ProductCost) error {
	return c.put(ctx, fmt.Sprintf("/api/product-cost/update/%d", id), cost, nil)
}

// DeleteProductCost removes a cost entry.
func (c *Client) DeleteProductCost(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/product-cost/delete/%d", id))
}
