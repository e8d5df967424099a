package wizard

import (
	"errors"

	"recordbook-web/internal/core"
	"recordbook-web/internal/dates"
)

// ErrNoItems rejects a slip with an empty items list before anything is sent
// to the backend.
var ErrNoItems = errors.New("no items found in sales record")

// BuildPayloads turns a parsed slip plus the operator's selections into one
// create payload per line item. Customer and product ids are resolved against
// the loaded master data; when nothing matches the id stays null and the raw
// slip fields are forwarded so the backend can decide what to do with them.
func BuildPayloads(slip SaleSlip, customers []core.Customer, products []core.Product,
	routeID int64, villageID *int64, salesmanID int64) ([]core.AdminSalePayload, error) {

	if len(slip.Items) == 0 {
		return nil, ErrNoItems
	}

	var customerID *int64
	for _, c := range customers {
		if c.ShopName == slip.Customer.Name {
			id := c.CustomerID
			customerID = &id
			break
		}
	}

	customerType := slip.Customer.Type
	if customerType == "" {
		customerType = core.CustomerTypeShopkeeper
	}

	payloads := make([]core.AdminSalePayload, 0, len(slip.Items))
	for _, item := range slip.Items {
		var productID *int64
		for _, p := range products {
			if p.ProductName == item.ProductName || p.ProductCode == item.ProductCode {
				id := p.ProductID
				productID = &id
				break
			}
		}

		payloads = append(payloads, core.AdminSalePayload{
			OrderDate:            dates.FromDDMMYYYY(slip.SaleDate),
			CustomerID:           customerID,
			ShopName:             slip.Customer.Name,
			CustomerType:         customerType,
			MobileNumber:         slip.Customer.MobileNumber,
			RouteID:              routeID,
			VillageID:            villageID,
			SalesmanID:           salesmanID,
			ProductID:            productID,
			ProductName:          item.ProductName,
			ProductCode:          item.ProductCode,
			Quantity:             item.Quantity,
			ActualRate:           item.Rate,
			Revenue:              item.Revenue,
			TotalRevenue:         slip.TotalRevenue,
			AmountReceived:       slip.AmountReceived,
			BalanceDue:           slip.BalanceDue,
			PaymentMode:          slip.PaymentMode,
			TransactionReference: slip.TransactionReference,
		})
	}
	return payloads, nil
}
