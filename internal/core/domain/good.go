package domain

import "github.com/shopspring/decimal"

// Good is identified by (Name, SupplierName). Quantity never goes negative:
// the store enforces it with a CHECK constraint and every decrement is a
// conditional write guarded by the remaining quantity.
type Good struct {
	Name         string
	SupplierName string
	TypeOfGood   string
	Price        decimal.Decimal
	Quantity     int
	ExpiryDate   string // YYYY-MM-DD, empty when the good does not expire
}
