package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/pmarket/parfume-desk/internal/core/domain"
)

// CreateDeal inserts the deal row and decrements the matching good's quantity
// in one transaction. The decrement is conditional on sufficient remaining
// quantity, so the stock check and the mutation are a single atomic write:
// there is no window between checking stock and taking it.
func (s *Store) CreateDeal(ctx context.Context, deal domain.Deal) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", domain.ErrTransaction, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO deals (deal_id, deal_date, good_name, supplier_name, type_of_good, sell_quantity, broker_surname, buyer_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		deal.ID, deal.Date, deal.GoodName, deal.SupplierName, deal.TypeOfGood,
		deal.Quantity, deal.BrokerSurname, deal.BuyerName, deal.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		err = categorize(err)
		if errors.Is(err, domain.ErrReferenceNotFound) {
			return err
		}
		return fmt.Errorf("%w: insert deal: %v", domain.ErrTransaction, err)
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE goods
		SET quantity = quantity - ?
		WHERE name = ? AND supplier_name = ? AND quantity >= ?`,
		deal.Quantity, deal.GoodName, deal.SupplierName, deal.Quantity,
	)
	if err != nil {
		return fmt.Errorf("%w: decrement stock: %v", domain.ErrTransaction, categorize(err))
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		// Good missing or not enough stock: the rollback also discards the
		// deal row inserted above.
		return domain.ErrInsufficientStock
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", domain.ErrTransaction, categorize(err))
	}
	return nil
}

// DeleteDeal removes a single deal by id.
func (s *Store) DeleteDeal(ctx context.Context, id string) error {
	rows, err := s.ExecStatement(ctx, `DELETE FROM deals WHERE deal_id = ?`, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: deal %s", domain.ErrNotFound, id)
	}
	return nil
}

// RebuildBrokerStats replaces all broker stats with aggregates re-derived
// from the deal history. The delete and the reinsert commit together.
func (s *Store) RebuildBrokerStats(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", domain.ErrTransaction, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM broker_stats`); err != nil {
		return fmt.Errorf("%w: clear stats: %v", domain.ErrTransaction, categorize(err))
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO broker_stats (broker_surname, total_sold_units, total_deal_sum, last_updated)
		SELECT
			d.broker_surname,
			SUM(d.sell_quantity),
			SUM(d.sell_quantity * g.price),
			datetime('now', 'localtime')
		FROM deals d
		JOIN goods g ON d.good_name = g.name AND d.supplier_name = g.supplier_name
		GROUP BY d.broker_surname`)
	if err != nil {
		return fmt.Errorf("%w: rebuild stats: %v", domain.ErrTransaction, categorize(err))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", domain.ErrTransaction, categorize(err))
	}
	return nil
}

// ListBrokerStats returns the current stats, one row per broker.
func (s *Store) ListBrokerStats(ctx context.Context) ([]domain.BrokerStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT broker_surname, total_sold_units, total_deal_sum, last_updated
		FROM broker_stats
		ORDER BY broker_surname`)
	if err != nil {
		return nil, categorize(err)
	}
	defer rows.Close()

	var stats []domain.BrokerStat
	for rows.Next() {
		var st domain.BrokerStat
		if err := rows.Scan(&st.BrokerSurname, &st.TotalSoldUnits, &st.TotalDealSum, &st.LastUpdated); err != nil {
			return nil, categorize(err)
		}
		stats = append(stats, st)
	}
	return stats, categorize(rows.Err())
}

// ArchiveDealsUpTo folds every deal dated <= cutoff into its good's quantity
// and purges those deals, as one atomic unit. Goods with no matching deals
// are untouched. A decrement that would drive a quantity negative trips the
// CHECK constraint and aborts the whole operation.
func (s *Store) ArchiveDealsUpTo(ctx context.Context, cutoff string) (goodsUpdated, dealsPurged int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: begin: %v", domain.ErrTransaction, err)
	}
	defer tx.Rollback()

	updateRes, err := tx.ExecContext(ctx, `
		UPDATE goods
		SET quantity = quantity - IFNULL((
			SELECT SUM(d.sell_quantity) FROM deals d
			WHERE d.good_name = goods.name
			  AND d.supplier_name = goods.supplier_name
			  AND d.deal_date <= ?
		), 0)
		WHERE EXISTS (
			SELECT 1 FROM deals d
			WHERE d.good_name = goods.name
			  AND d.supplier_name = goods.supplier_name
			  AND d.deal_date <= ?
		)`, cutoff, cutoff)
	if err != nil {
		err = categorize(err)
		if errors.Is(err, domain.ErrConstraint) {
			return 0, 0, err
		}
		return 0, 0, fmt.Errorf("%w: fold deals into goods: %v", domain.ErrTransaction, err)
	}
	goodsUpdated, _ = updateRes.RowsAffected()

	deleteRes, err := tx.ExecContext(ctx, `DELETE FROM deals WHERE deal_date <= ?`, cutoff)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: purge deals: %v", domain.ErrTransaction, categorize(err))
	}
	dealsPurged, _ = deleteRes.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("%w: commit: %v", domain.ErrTransaction, categorize(err))
	}
	return goodsUpdated, dealsPurged, nil
}
