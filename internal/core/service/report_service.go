package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pmarket/parfume-desk/internal/core/domain"
	"github.com/pmarket/parfume-desk/internal/port"
)

// ReportService validates report parameters and streams rows to the caller's
// sink. Reports are stateless projections; all failure complexity lives in
// the storage layer.
type ReportService struct {
	repo port.ReportRepository
}

func NewReportService(repo port.ReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

func validDate(s string) error {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return nil
}

func (s *ReportService) SalesSummaryByPeriod(ctx context.Context, start, end string, sink port.ResultSink) error {
	if err := validDate(start); err != nil {
		return err
	}
	if err := validDate(end); err != nil {
		return err
	}
	return s.repo.SalesSummaryByPeriod(ctx, start, end, sink)
}

func (s *ReportService) BuyersByGood(ctx context.Context, goodFilter string, sink port.ResultSink) error {
	return s.repo.BuyersByGood(ctx, goodFilter, sink)
}

func (s *ReportService) MostPopularTypeInfo(ctx context.Context, sink port.ResultSink) error {
	return s.repo.MostPopularTypeInfo(ctx, sink)
}

func (s *ReportService) TopBrokerInfo(ctx context.Context, sink port.ResultSink) error {
	return s.repo.TopBrokerInfo(ctx, sink)
}

func (s *ReportService) SupplierBrokerBreakdown(ctx context.Context, supplierFilter string, sink port.ResultSink) error {
	return s.repo.SupplierBrokerBreakdown(ctx, supplierFilter, sink)
}

func (s *ReportService) DealsOnDate(ctx context.Context, date string, sink port.ResultSink) error {
	if err := validDate(date); err != nil {
		return err
	}
	return s.repo.DealsOnDate(ctx, date, sink)
}

func (s *ReportService) BrokerDeals(ctx context.Context, surname string, sink port.ResultSink) error {
	if surname == "" {
		return fmt.Errorf("%w: broker surname is required", domain.ErrInvalidInput)
	}
	return s.repo.BrokerDeals(ctx, surname, sink)
}
