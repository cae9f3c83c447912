package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmarket/parfume-desk/internal/core/domain"
	"github.com/pmarket/parfume-desk/internal/port"
)

// Mock ReportRepository recording which reports ran.
type mockReportRepo struct {
	calls []string
}

func (m *mockReportRepo) record(name string) error {
	m.calls = append(m.calls, name)
	return nil
}

func (m *mockReportRepo) SalesSummaryByPeriod(ctx context.Context, start, end string, sink port.ResultSink) error {
	return m.record("sales_summary")
}

func (m *mockReportRepo) BuyersByGood(ctx context.Context, goodFilter string, sink port.ResultSink) error {
	return m.record("buyers_by_good")
}

func (m *mockReportRepo) MostPopularTypeInfo(ctx context.Context, sink port.ResultSink) error {
	return m.record("most_popular_type")
}

func (m *mockReportRepo) TopBrokerInfo(ctx context.Context, sink port.ResultSink) error {
	return m.record("top_broker")
}

func (m *mockReportRepo) SupplierBrokerBreakdown(ctx context.Context, supplierFilter string, sink port.ResultSink) error {
	return m.record("supplier_brokers")
}

func (m *mockReportRepo) DealsOnDate(ctx context.Context, date string, sink port.ResultSink) error {
	return m.record("deals_on_date")
}

func (m *mockReportRepo) BrokerDeals(ctx context.Context, surname string, sink port.ResultSink) error {
	return m.record("broker_deals")
}

func discardSink() port.ResultSink {
	return port.ResultSinkFunc(func(_ []string, _ []string) error { return nil })
}

func TestSalesSummaryByPeriod_ValidatesDates(t *testing.T) {
	repo := &mockReportRepo{}
	svc := NewReportService(repo)
	ctx := context.Background()

	err := svc.SalesSummaryByPeriod(ctx, "not-a-date", "2024-01-31", discardSink())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = svc.SalesSummaryByPeriod(ctx, "2024-01-01", "bad", discardSink())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, repo.calls)

	require.NoError(t, svc.SalesSummaryByPeriod(ctx, "2024-01-01", "2024-01-31", discardSink()))
	assert.Equal(t, []string{"sales_summary"}, repo.calls)
}

func TestDealsOnDate_ValidatesDate(t *testing.T) {
	repo := &mockReportRepo{}
	svc := NewReportService(repo)

	err := svc.DealsOnDate(context.Background(), "01/02/2024", discardSink())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.calls)
}

func TestBrokerDeals_RequiresSurname(t *testing.T) {
	repo := &mockReportRepo{}
	svc := NewReportService(repo)

	err := svc.BrokerDeals(context.Background(), "", discardSink())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, svc.BrokerDeals(context.Background(), "Ivanov", discardSink()))
	assert.Equal(t, []string{"broker_deals"}, repo.calls)
}

func TestFilterReportsAcceptEmptyFilter(t *testing.T) {
	repo := &mockReportRepo{}
	svc := NewReportService(repo)
	ctx := context.Background()

	require.NoError(t, svc.BuyersByGood(ctx, "", discardSink()))
	require.NoError(t, svc.SupplierBrokerBreakdown(ctx, "", discardSink()))
	assert.Equal(t, []string{"buyers_by_good", "supplier_brokers"}, repo.calls)
}
