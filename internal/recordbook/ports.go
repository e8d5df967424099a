package recordbook

import (
	"context"

	"recordbook-web/internal/core"
)

// Narrow views over the client so handlers and the sales-entry flow depend
// only on the calls they actually make.

// RouteDirectory lists and creates delivery routes and their villages.
type RouteDirectory interface {
	Routes(ctx context.Context) ([]core.Route, error)
	Villages(ctx context.Context, routeID int64) ([]core.Village, error)
	AddRoute(ctx context.Context, name string) (core.Route, error)
	AddVillage(ctx context.Context, routeID int64, name string) (core.Village, error)
}

// SalesmanDirectory lists and creates salesmen.
type SalesmanDirectory interface {
	Salesmen(ctx context.Context) ([]core.Salesman, error)
	AddSalesman(ctx context.Context, s core.Salesman) (core.Salesman, error)
}

// CustomerDirectory lists known customers for matching against slip names.
type CustomerDirectory interface {
	Customers(ctx context.Context) ([]core.Customer, error)
}

// ProductCatalog lists products for matching slip items.
type ProductCatalog interface {
	Products(ctx context.Context) ([]core.Product, error)
}

// SaleWriter records finalized sales.
type SaleWriter interface {
	CreateAdminSale(ctx context.Context, p core.AdminSalePayload) error
}

// MasterData is everything the sales-entry flow needs loaded up front.
type MasterData interface {
	RouteDirectory
	SalesmanDirectory
	CustomerDirectory
	ProductCatalog
	SaleWriter
}
