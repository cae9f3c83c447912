package domain

import "github.com/shopspring/decimal"

// Broker is keyed by surname. Brokers are created by admin CRUD, never
// auto-created by the deal ledger.
type Broker struct {
	Surname   string
	Address   string
	BirthYear int
}

// BrokerStat is a derived aggregate over the deal history. Rows are entirely
// rebuilt (delete-all + reinsert) by the recalculator, so a stat can be stale
// between rebuilds but two consecutive rebuilds with no intervening deals are
// identical.
type BrokerStat struct {
	BrokerSurname  string
	TotalSoldUnits int64
	TotalDealSum   decimal.Decimal
	LastUpdated    string
}
