package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Customer types accepted by the backend.
const (
	CustomerTypeShopkeeper = "SHOPKEEPER"
	CustomerTypeCustomer   = "CUSTOMER"
)

type (
	// SalesRecord is one product line item as returned by /api/sales and
	// /api/sales/report. The backend owns these; the front-end never stores
	// them beyond the current page render.
	SalesRecord struct {
		ID              int64           `json:"id"`
		SlNo            int64           `json:"slNo,omitempty"`
		SaleDate        string          `json:"saleDate"`
		SalesmanName    string          `json:"salesmanName,omitempty"`
		CustomerName    string          `json:"customerName,omitempty"`
		CustomerType    string          `json:"customerType,omitempty"`
		Village         string          `json:"village,omitempty"`
		MobileNumber    string          `json:"mobileNumber,omitempty"`
		ProductName     string          `json:"productName,omitempty"`
		ProductCode     string          `json:"productCode,omitempty"`
		Variant         string          `json:"variant,omitempty"`
		Size            string          `json:"size,omitempty"`
		Quantity        int64           `json:"quantity"`
		Rate            decimal.Decimal `json:"rate"`
		Revenue         decimal.Decimal `json:"revenue"`
		TotalRevenue    decimal.Decimal `json:"totalRevenue"`
		AgentCommission decimal.Decimal `json:"agentCommission"`
	}

	Customer struct {
		CustomerID   int64    `json:"customerId"`
		ShopName     string   `json:"shopName"`
		CustomerType string   `json:"customerType"`
		Route        *Route   `json:"route,omitempty"`
		Village      *Village `json:"village,omitempty"`
	}

	Route struct {
		RouteID   int64  `json:"routeId"`
		RouteName string `json:"routeName"`
	}

	// Village belongs to exactly one route.
	Village struct {
		VillageID   int64  `json:"villageId"`
		VillageName string `json:"villageName"`
		RouteID     int64  `json:"routeId,omitempty"`
	}

	// Salesman carries an alias used as the human-facing identifier in
	// several endpoints instead of the numeric id.
	Salesman struct {
		SalesmanID    int64  `json:"salesmanId"`
		FirstName     string `json:"firstName"`
		LastName      string `json:"lastName"`
		Alias         string `json:"alias,omitempty"`
		Address       string `json:"address,omitempty"`
		ContactNumber string `json:"contactNumber,omitempty"`
	}

	Product struct {
		ProductID   int64  `json:"productId"`
		ProductName string `json:"productName"`
		ProductCode string `json:"productCode"`
	}

	// ProductCost is an independently managed manufacturing-cost entry.
	ProductCost struct {
		PID         int64           `json:"pid"`
		ProductName string          `json:"productName"`
		ProductCode string          `json:"productCode"`
		Cost        decimal.Decimal `json:"cost"`
		CreatedAt   string          `json:"createdAt,omitempty"`
		UpdatedAt   string          `json:"updatedAt,omitempty"`
	}

	ExpenseItem struct {
		ExpenseDate string          `json:"expenseDate,omitempty"`
		Category    string          `json:"category"`
		Amount      decimal.Decimal `json:"amount"`
	}

	// DailyExpenseDetail groups a salesman's expenses for one date.
	DailyExpenseDetail struct {
		SalesmanAlias string          `json:"salesmanAlias"`
		ExpenseDate   string          `json:"expenseDate"`
		TotalExpense  decimal.Decimal `json:"totalExpense"`
		Expenses      []ExpenseItem   `json:"expenses,omitempty"`
	}

	// ProductSales is one server-aggregated row of the product sales summary.
	ProductSales struct {
		ProductName     string          `json:"productName"`
		ProductCode     string          `json:"productCode"`
		TotalQuantity   int64           `json:"totalQuantity"`
		TotalRevenue    decimal.Decimal `json:"totalRevenue"`
		TotalCost       decimal.Decimal `json:"totalCost"`
		AgentCommission decimal.Decimal `json:"agentCommission"`
	}

	// SummaryRecord is the server-computed daily aggregate of revenue, cost,
	// commission and profit for a salesman.
	SummaryRecord struct {
		SalesmanAlias        string          `json:"salesmanAlias"`
		SaleDate             string          `json:"saleDate"`
		MaterialCost         decimal.Decimal `json:"materialCost"`
		TotalExpense         decimal.Decimal `json:"totalExpense"`
		TotalRevenue         decimal.Decimal `json:"totalRevenue"`
		TotalAgentCommission decimal.Decimal `json:"totalAgentCommission"`
		NetProfit            decimal.Decimal `json:"netProfit"`
	}

	// AdminSalePayload is the create-call body the wizard submits once per
	// line item to POST /api/admin/sales. Pointer ids stay null when no
	// master-data match was found; raw names are always forwarded.
	AdminSalePayload struct {
		OrderDate            string          `json:"orderDate"`
		CustomerID           *int64          `json:"customerId"`
		ShopName             string          `json:"shopName"`
		CustomerType         string          `json:"customerType"`
		MobileNumber         string          `json:"mobileNumber"`
		RouteID              int64           `json:"routeId"`
		VillageID            *int64          `json:"villageId"`
		SalesmanID           int64           `json:"salesmanId"`
		ProductID            *int64          `json:"productId"`
		ProductName          string          `json:"productName"`
		ProductCode          string          `json:"productCode"`
		Quantity             int64           `json:"quantity"`
		ActualRate           decimal.Decimal `json:"actualRate"`
		Revenue              decimal.Decimal `json:"revenue"`
		TotalRevenue         decimal.Decimal `json:"totalRevenue"`
		AmountReceived       decimal.Decimal `json:"amountReceived"`
		BalanceDue           decimal.Decimal `json:"balanceDue"`
		PaymentMode          string          `json:"paymentMode"`
		TransactionReference string          `json:"transactionReference,omitempty"`
	}

	// SalesExpenseSubmission is the body of POST /api/sales/sales-expense:
	// a day of pasted sales rows plus that salesman's expense entries.
	SalesExpenseSubmission struct {
		SalesmanAlias string            `json:"salesmanAlias"`
		Date          string            `json:"date"` // DD/MM/YYYY
		Expenses      []ExpenseItem     `json:"expenses"`
		DailySales    []DailySalesEntry `json:"dailySales"`
	}

	// DailySalesEntry is one row of the daily sales dump, forwarded as-is.
	DailySalesEntry struct {
		SaleDate     string          `json:"saleDate,omitempty"`
		CustomerName string          `json:"customerName,omitempty"`
		CustomerType string          `json:"customerType,omitempty"`
		Village      string          `json:"village,omitempty"`
		MobileNumber string          `json:"mobileNumber,omitempty"`
		ProductCode  string          `json:"productCode,omitempty"`
		Quantity     int64           `json:"quantity,omitempty"`
		Rate         decimal.Decimal `json:"rate,omitempty"`
		Revenue      decimal.Decimal `json:"revenue,omitempty"`
	}
)

var (
	ErrEmptyRouteName   = errors.New("route name is required")
	ErrEmptyVillageName = errors.New("village name is required")
	ErrEmptyName        = errors.New("first and last name are required")
	ErrEmptyShopName    = errors.New("shop name is required")
	ErrEmptyProductName = errors.New("product name is required")
	ErrEmptyProductCode = errors.New("product code is required")
	ErrNegativeCost     = errors.New("cost must not be negative")
)

// DisplayName returns the salesman's full name for dropdowns and summaries.
func (s Salesman) DisplayName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

func (s Salesman) Validate() error {
	if strings.TrimSpace(s.FirstName) == "" || strings.TrimSpace(s.LastName) == "" {
		return ErrEmptyName
	}
	return nil
}

func (c Customer) Validate() error {
	if strings.TrimSpace(c.ShopName) == "" {
		return ErrEmptyShopName
	}
	return nil
}

func (p ProductCost) Validate() error {
	if strings.TrimSpace(p.ProductName) == "" {
		return ErrEmptyProductName
	}
	if strings.TrimSpace(p.ProductCode) == "" {
		return ErrEmptyProductCode
	}
	if p.Cost.IsNegative() {
		return ErrNegativeCost
	}
	return nil
}
