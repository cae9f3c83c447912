package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pmarket/parfume-desk/internal/core/domain"
	"github.com/pmarket/parfume-desk/internal/port"
)

// StatsService exposes the batch broker-stats rebuild. Stats are always
// re-derived in full from the deal history, never maintained incrementally.
type StatsService struct {
	repo port.DealRepository
	log  zerolog.Logger
}

func NewStatsService(repo port.DealRepository, log zerolog.Logger) *StatsService {
	return &StatsService{
		repo: repo,
		log:  log.With().Str("component", "broker_stats").Logger(),
	}
}

// Recalculate rebuilds all broker stats in one transaction. Idempotent
// between deals: two consecutive runs produce the same aggregates.
func (s *StatsService) Recalculate(ctx context.Context) error {
	if err := s.repo.RebuildBrokerStats(ctx); err != nil {
		return err
	}
	s.log.Info().Msg("broker stats rebuilt")
	return nil
}

// List returns the current stats rows.
func (s *StatsService) List(ctx context.Context) ([]domain.BrokerStat, error) {
	return s.repo.ListBrokerStats(ctx)
}
