package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/pmarket/parfume-desk/internal/core/domain"
	"github.com/pmarket/parfume-desk/internal/port"
)

// CatalogService covers admin data management: brokers, suppliers, buyers
// and goods. User accounts are managed by AuthService.
type CatalogService struct {
	repo port.CatalogRepository
	log  zerolog.Logger
}

func NewCatalogService(repo port.CatalogRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{
		repo: repo,
		log:  log.With().Str("component", "catalog").Logger(),
	}
}

func (s *CatalogService) AddBroker(ctx context.Context, broker domain.Broker) error {
	if broker.Surname == "" {
		return fmt.Errorf("%w: broker surname is required", domain.ErrInvalidInput)
	}
	if err := s.repo.AddBroker(ctx, broker); err != nil {
		return err
	}
	s.log.Info().Str("surname", broker.Surname).Msg("broker added")
	return nil
}

func (s *CatalogService) AddSupplier(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("%w: supplier name is required", domain.ErrInvalidInput)
	}
	return s.repo.AddSupplier(ctx, name)
}

func (s *CatalogService) AddBuyer(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("%w: buyer name is required", domain.ErrInvalidInput)
	}
	return s.repo.AddBuyer(ctx, name)
}

func (s *CatalogService) AddGood(ctx context.Context, good domain.Good) error {
	if good.Name == "" || good.SupplierName == "" {
		return fmt.Errorf("%w: good name and supplier are required", domain.ErrInvalidInput)
	}
	if !good.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive", domain.ErrInvalidInput)
	}
	if good.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", domain.ErrInvalidInput)
	}
	if good.ExpiryDate != "" {
		if _, err := time.Parse("2006-01-02", good.ExpiryDate); err != nil {
			return fmt.Errorf("%w: expiry date must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}
	if err := s.repo.AddGood(ctx, good); err != nil {
		return err
	}
	s.log.Info().Str("name", good.Name).Str("supplier", good.SupplierName).Msg("good added")
	return nil
}

func (s *CatalogService) GetGood(ctx context.Context, name, supplier string) (*domain.Good, error) {
	return s.repo.GetGood(ctx, name, supplier)
}

func (s *CatalogService) UpdateGoodPrice(ctx context.Context, name, supplier string, price decimal.Decimal) error {
	if !price.IsPositive() {
		return fmt.Errorf("%w: price must be positive", domain.ErrInvalidInput)
	}
	if err := s.repo.UpdateGoodPrice(ctx, name, supplier, price); err != nil {
		return err
	}
	s.log.Info().Str("name", name).Str("supplier", supplier).Str("price", price.String()).Msg("price updated")
	return nil
}
