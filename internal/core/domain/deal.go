package domain

import "time"

// Deal is one recorded sale linking a broker, a buyer and a good. The ID is
// generated by the ledger before insert; the good reference is the composite
// (GoodName, SupplierName).
type Deal struct {
	ID            string
	Date          string // YYYY-MM-DD
	GoodName      string
	SupplierName  string
	TypeOfGood    string
	Quantity      int
	BrokerSurname string
	BuyerName     string
	CreatedAt     time.Time
}
