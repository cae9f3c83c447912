package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pmarket/parfume-desk/internal/core/domain"
	"github.com/pmarket/parfume-desk/internal/port"
)

// ArchiveService performs period maintenance: deals up to a cutoff date are
// summarized into goods quantities and purged.
type ArchiveService struct {
	repo port.DealRepository
	log  zerolog.Logger
}

func NewArchiveService(repo port.DealRepository, log zerolog.Logger) *ArchiveService {
	return &ArchiveService{
		repo: repo,
		log:  log.With().Str("component", "archive").Logger(),
	}
}

// ArchiveUpTo folds and purges all deals dated <= cutoff atomically. Broker
// stats are left as they are: they describe history that has been archived,
// and the next recalculation replaces them from the remaining deals.
func (s *ArchiveService) ArchiveUpTo(ctx context.Context, cutoff string) (goodsUpdated, dealsPurged int64, err error) {
	if _, err := time.Parse("2006-01-02", cutoff); err != nil {
		return 0, 0, fmt.Errorf("%w: cutoff must be YYYY-MM-DD", domain.ErrInvalidInput)
	}

	goodsUpdated, dealsPurged, err = s.repo.ArchiveDealsUpTo(ctx, cutoff)
	if err != nil {
		return 0, 0, err
	}

	s.log.Info().
		Str("cutoff", cutoff).
		Int64("goods_updated", goodsUpdated).
		Int64("deals_purged", dealsPurged).
		Msg("archive completed")
	return goodsUpdated, dealsPurged, nil
}
