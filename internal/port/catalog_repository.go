package port

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pmarket/parfume-desk/internal/core/domain"
)

type CatalogRepository interface {
	AddBroker(ctx context.Context, broker domain.Broker) error
	AddSupplier(ctx context.Context, name string) error
	AddBuyer(ctx context.Context, name string) error
	AddGood(ctx context.Context, good domain.Good) error

	// GetGood retrieves a good by its composite key, nil when absent.
	GetGood(ctx context.Context, name, supplier string) (*domain.Good, error)

	// UpdateGoodPrice sets a new unit price, domain.ErrNotFound when no such
	// good exists.
	UpdateGoodPrice(ctx context.Context, name, supplier string, price decimal.Decimal) error
}
