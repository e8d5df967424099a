// Package wizard implements the guided sales-entry flow: a salesman's pasted
// sale slip is parsed, associated with route, village and salesman master
// data, and exported as one backend record per line item.
package wizard

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// SaleSlip is the pasted JSON a salesman hands over for one sale. The shape
// is fixed; anything outside it is rejected at parse time rather than
// discovered field by field later.
type SaleSlip struct {
	SaleDate             string          `json:"saleDate"`
	Customer             SlipCustomer    `json:"customer"`
	Items                []SlipItem      `json:"items"`
	TotalRevenue         decimal.Decimal `json:"totalRevenue"`
	AmountReceived       decimal.Decimal `json:"amountReceived"`
	BalanceDue           decimal.Decimal `json:"balanceDue"`
	PaymentMode          string          `json:"paymentMode"`
	TransactionReference string          `json:"transactionReference"`
}

type SlipCustomer struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	MobileNumber string `json:"mobileNumber"`
}

type SlipItem struct {
	ProductCode string          `json:"productCode"`
	ProductName string          `json:"productName"`
	Quantity    int64           `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// ParseError reports why a pasted slip was rejected.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "invalid sale slip: " + e.Reason
}

// ParseSlip decodes pasted text into a SaleSlip. Unknown fields, trailing
// content and malformed JSON all fail with a ParseError; an empty items list
// is accepted here and rejected at export time.
func ParseSlip(raw string) (SaleSlip, error) {
	var slip SaleSlip

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return SaleSlip{}, &ParseError{Reason: "input is empty"}
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&slip); err != nil {
		return SaleSlip{}, &ParseError{Reason: err.Error()}
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return SaleSlip{}, &ParseError{Reason: "trailing content after the sale slip"}
	}

	if slip.SaleDate == "" {
		return SaleSlip{}, &ParseError{Reason: "saleDate is missing"}
	}
	if slip.Customer.Name == "" {
		return SaleSlip{}, &ParseError{Reason: "customer name is missing"}
	}
	for i, item := range slip.Items {
		if item.ProductName == "" && item.ProductCode == "" {
			return SaleSlip{}, &ParseError{Reason: fmt.Sprintf("item %d has neither a product name nor a code", i+1)}
		}
	}
	return slip, nil
}
