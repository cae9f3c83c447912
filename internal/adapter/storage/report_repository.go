package storage

import (
	"context"

	"github.com/pmarket/parfume-desk/internal/port"
)

// Reporting queries. All of them are stateless projections streamed through
// the sink; parameters are always bound, never spliced into the SQL.

func (s *Store) SalesSummaryByPeriod(ctx context.Context, start, end string, sink port.ResultSink) error {
	return s.QueryRows(ctx, `
		SELECT d.good_name AS GoodName,
		       SUM(d.sell_quantity) AS TotalSold,
		       SUM(d.sell_quantity * g.price) AS TotalIncome
		FROM deals d
		JOIN goods g ON d.good_name = g.name AND d.supplier_name = g.supplier_name
		WHERE d.deal_date BETWEEN ? AND ?
		GROUP BY d.good_name
		ORDER BY GoodName`,
		[]any{start, end}, sink.WriteRow)
}

func (s *Store) BuyersByGood(ctx context.Context, goodFilter string, sink port.ResultSink) error {
	return s.QueryRows(ctx, `
		SELECT d.good_name AS GoodName,
		       d.buyer_name AS Buyer,
		       SUM(d.sell_quantity) AS TotalUnits,
		       SUM(d.sell_quantity * g.price) AS TotalCost
		FROM deals d
		JOIN goods g ON d.good_name = g.name AND d.supplier_name = g.supplier_name
		WHERE (? = '' OR d.good_name = ?)
		GROUP BY d.good_name, d.buyer_name
		ORDER BY GoodName, Buyer`,
		[]any{goodFilter, goodFilter}, sink.WriteRow)
}

func (s *Store) MostPopularTypeInfo(ctx context.Context, sink port.ResultSink) error {
	return s.QueryRows(ctx, `
		WITH type_sales AS (
			SELECT type_of_good, SUM(sell_quantity) AS total_sold
			FROM deals
			WHERE type_of_good IS NOT NULL
			GROUP BY type_of_good
		), max_type AS (
			SELECT type_of_good FROM type_sales
			ORDER BY total_sold DESC LIMIT 1
		)
		SELECT d.buyer_name AS Buyer,
		       d.type_of_good AS GoodType,
		       SUM(d.sell_quantity) AS TotalUnits,
		       SUM(d.sell_quantity * g.price) AS TotalCost
		FROM deals d
		JOIN goods g ON d.good_name = g.name AND d.supplier_name = g.supplier_name
		WHERE d.type_of_good = (SELECT type_of_good FROM max_type)
		GROUP BY d.buyer_name, d.type_of_good
		ORDER BY Buyer`,
		nil, sink.WriteRow)
}

func (s *Store) TopBrokerInfo(ctx context.Context, sink port.ResultSink) error {
	return s.QueryRows(ctx, `
		WITH broker_deals AS (
			SELECT broker_surname, COUNT(*) AS deal_count
			FROM deals
			GROUP BY broker_surname
		), top_broker AS (
			SELECT broker_surname FROM broker_deals
			ORDER BY deal_count DESC LIMIT 1
		)
		SELECT b.surname AS Surname,
		       b.address AS Address,
		       b.birth_year AS BirthYear,
		       GROUP_CONCAT(DISTINCT d.supplier_name) AS Suppliers
		FROM brokers b
		JOIN deals d ON b.surname = d.broker_surname
		WHERE b.surname = (SELECT broker_surname FROM top_broker)
		GROUP BY b.surname, b.address, b.birth_year`,
		nil, sink.WriteRow)
}

func (s *Store) SupplierBrokerBreakdown(ctx context.Context, supplierFilter string, sink port.ResultSink) error {
	return s.QueryRows(ctx, `
		SELECT d.supplier_name AS Supplier,
		       d.broker_surname AS Broker,
		       SUM(d.sell_quantity) AS TotalSold,
		       SUM(d.sell_quantity * g.price) AS TotalValue
		FROM deals d
		JOIN goods g ON d.good_name = g.name AND d.supplier_name = g.supplier_name
		WHERE (? = '' OR d.supplier_name = ?)
		GROUP BY d.supplier_name, d.broker_surname
		ORDER BY Supplier, Broker`,
		[]any{supplierFilter, supplierFilter}, sink.WriteRow)
}

func (s *Store) DealsOnDate(ctx context.Context, date string, sink port.ResultSink) error {
	return s.QueryRows(ctx, `
		SELECT deal_id, deal_date, good_name, supplier_name, type_of_good, sell_quantity, broker_surname, buyer_name
		FROM deals
		WHERE deal_date = ?
		ORDER BY created_at`,
		[]any{date}, sink.WriteRow)
}

func (s *Store) BrokerDeals(ctx context.Context, surname string, sink port.ResultSink) error {
	return s.QueryRows(ctx, `
		SELECT deal_id, deal_date, good_name, supplier_name, type_of_good, sell_quantity, buyer_name
		FROM deals
		WHERE broker_surname = ?
		ORDER BY deal_date DESC`,
		[]any{surname}, sink.WriteRow)
}
