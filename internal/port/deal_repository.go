package port

import (
	"context"

	"github.com/pmarket/parfume-desk/internal/core/domain"
)

type DealRepository interface {
	// CreateDeal inserts the deal and conditionally decrements the matching
	// good's quantity in one transaction. Zero rows affected by the decrement
	// rolls back everything and reports domain.ErrInsufficientStock.
	CreateDeal(ctx context.Context, deal domain.Deal) error

	// DeleteDeal removes one deal by id, domain.ErrNotFound if absent.
	DeleteDeal(ctx context.Context, id string) error

	// RebuildBrokerStats deletes all broker stats and re-derives them from
	// the deal history in one transaction.
	RebuildBrokerStats(ctx context.Context) error

	// ListBrokerStats returns current stats joined with broker details.
	ListBrokerStats(ctx context.Context) ([]domain.BrokerStat, error)

	// ArchiveDealsUpTo folds deals dated <= cutoff into goods quantities and
	// purges them, atomically. Returns goods updated and deals purged.
	ArchiveDealsUpTo(ctx context.Context, cutoff string) (goodsUpdated, dealsPurged int64, err error)
}
