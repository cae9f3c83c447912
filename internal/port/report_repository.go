package port

import "context"

// ReportRepository runs the read-only projections. Each report streams its
// rows into the sink without buffering the full result set.
type ReportRepository interface {
	// SalesSummaryByPeriod: per good, total units and income for deals dated
	// within [start, end].
	SalesSummaryByPeriod(ctx context.Context, start, end string, sink ResultSink) error

	// BuyersByGood: per good and buyer, total units and cost. An empty
	// goodFilter selects all goods.
	BuyersByGood(ctx context.Context, goodFilter string, sink ResultSink) error

	// MostPopularTypeInfo: buyers of the best-selling good type.
	MostPopularTypeInfo(ctx context.Context, sink ResultSink) error

	// TopBrokerInfo: the broker with the most deals and the suppliers they
	// dealt with.
	TopBrokerInfo(ctx context.Context, sink ResultSink) error

	// SupplierBrokerBreakdown: per supplier and broker, units and value. An
	// empty supplierFilter selects all suppliers.
	SupplierBrokerBreakdown(ctx context.Context, supplierFilter string, sink ResultSink) error

	// DealsOnDate: all deals recorded on one date.
	DealsOnDate(ctx context.Context, date string, sink ResultSink) error

	// BrokerDeals: one broker's deals, newest first.
	BrokerDeals(ctx context.Context, surname string, sink ResultSink) error
}
