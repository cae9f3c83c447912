package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pmarket/parfume-desk/internal/core/domain"
	"github.com/pmarket/parfume-desk/internal/port"
)

// DealService is the deal ledger: it validates a sale, records it atomically
// and refreshes broker stats afterwards.
type DealService struct {
	repo port.DealRepository
	log  zerolog.Logger
}

func NewDealService(repo port.DealRepository, log zerolog.Logger) *DealService {
	return &DealService{
		repo: repo,
		log:  log.With().Str("component", "deal_ledger").Logger(),
	}
}

type RecordDealInput struct {
	Date          string
	GoodName      string
	SupplierName  string
	TypeOfGood    string
	Quantity      int
	BrokerSurname string
	BuyerName     string
}

func (in RecordDealInput) validate() error {
	if in.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	if in.GoodName == "" || in.SupplierName == "" || in.BrokerSurname == "" || in.BuyerName == "" {
		return fmt.Errorf("%w: good, supplier, broker and buyer are required", domain.ErrInvalidInput)
	}
	return nil
}

// RecordDeal records one sale. The insert and the stock decrement commit
// together or not at all; stats are rebuilt from the deal table after the
// commit so aggregates never diverge from recorded history. If the rebuild
// fails the committed deal stands and the error is surfaced.
func (s *DealService) RecordDeal(ctx context.Context, in RecordDealInput) (domain.Deal, error) {
	if err := in.validate(); err != nil {
		return domain.Deal{}, err
	}

	deal := domain.Deal{
		ID:            uuid.NewString(),
		Date:          in.Date,
		GoodName:      in.GoodName,
		SupplierName:  in.SupplierName,
		TypeOfGood:    in.TypeOfGood,
		Quantity:      in.Quantity,
		BrokerSurname: in.BrokerSurname,
		BuyerName:     in.BuyerName,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.CreateDeal(ctx, deal); err != nil {
		return domain.Deal{}, err
	}

	s.log.Info().
		Str("deal_id", deal.ID).
		Str("good", deal.GoodName).
		Str("supplier", deal.SupplierName).
		Int("quantity", deal.Quantity).
		Str("broker", deal.BrokerSurname).
		Msg("deal recorded")

	if err := s.repo.RebuildBrokerStats(ctx); err != nil {
		s.log.Error().Err(err).Msg("stats rebuild failed after committed deal")
		return deal, fmt.Errorf("deal %s committed but stats rebuild failed: %w", deal.ID, err)
	}
	return deal, nil
}

// DeleteDeal removes a recorded deal and rebuilds the stats it contributed to.
func (s *DealService) DeleteDeal(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: deal id is required", domain.ErrInvalidInput)
	}
	if err := s.repo.DeleteDeal(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("deal_id", id).Msg("deal deleted")
	return s.repo.RebuildBrokerStats(ctx)
}
