package storage

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmarket/parfume-desk/internal/core/domain"
	"github.com/pmarket/parfume-desk/internal/port"
)

type rowCollector struct {
	columns []string
	rows    [][]string
}

func (c *rowCollector) WriteRow(columns []string, values []string) error {
	c.columns = columns
	c.rows = append(c.rows, append([]string(nil), values...))
	return nil
}

func seedReportData(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()

	seedCatalog(t, s, 100)
	require.NoError(t, s.AddBuyer(ctx, "Scent Boutique"))
	require.NoError(t, s.AddGood(ctx, domain.Good{
		Name:         "Amber Musk",
		SupplierName: "SupplierX",
		TypeOfGood:   "eau de parfum",
		Price:        decimal.NewFromInt(20),
		Quantity:     40,
	}))

	deals := []struct {
		id, date, good, buyer string
		qty                   int
	}{
		{"d1", "2024-01-10", "Rose Oil", "BuyerCo", 4},
		{"d2", "2024-01-20", "Rose Oil", "Scent Boutique", 6},
		{"d3", "2024-02-05", "Amber Musk", "BuyerCo", 2},
	}
	for _, d := range deals {
		deal := testDeal(d.qty)
		deal.ID = d.id
		deal.Date = d.date
		deal.GoodName = d.good
		deal.BuyerName = d.buyer
		if d.good == "Amber Musk" {
			deal.TypeOfGood = "eau de parfum"
		}
		require.NoError(t, s.CreateDeal(context.Background(), deal))
	}
}

func TestSalesSummaryByPeriod(t *testing.T) {
	s := newTestStore(t)
	seedReportData(t, s)

	var sink rowCollector
	require.NoError(t, s.SalesSummaryByPeriod(context.Background(), "2024-01-01", "2024-01-31", &sink))

	// Only the two January Rose Oil deals fall in the window: 10 units, 50 income.
	require.Len(t, sink.rows, 1)
	assert.Equal(t, []string{"GoodName", "TotalSold", "TotalIncome"}, sink.columns)
	assert.Equal(t, "Rose Oil", sink.rows[0][0])
	assert.Equal(t, "10", sink.rows[0][1])
	assert.Equal(t, "50", sink.rows[0][2])
}

func TestBuyersByGood_Filtered(t *testing.T) {
	s := newTestStore(t)
	seedReportData(t, s)

	var sink rowCollector
	require.NoError(t, s.BuyersByGood(context.Background(), "Rose Oil", &sink))

	require.Len(t, sink.rows, 2)
	assert.Equal(t, "BuyerCo", sink.rows[0][1])
	assert.Equal(t, "Scent Boutique", sink.rows[1][1])
}

func TestBuyersByGood_EmptyFilterSelectsAll(t *testing.T) {
	s := newTestStore(t)
	seedReportData(t, s)

	var sink rowCollector
	require.NoError(t, s.BuyersByGood(context.Background(), "", &sink))
	assert.Len(t, sink.rows, 3)
}

func TestMostPopularTypeInfo(t *testing.T) {
	s := newTestStore(t)
	seedReportData(t, s)

	// essential oil: 10 units sold; eau de parfum: 2. The report covers the
	// winning type only.
	var sink rowCollector
	require.NoError(t, s.MostPopularTypeInfo(context.Background(), &sink))

	require.Len(t, sink.rows, 2)
	for _, row := range sink.rows {
		assert.Equal(t, "essential oil", row[1])
	}
}

func TestTopBrokerInfo(t *testing.T) {
	s := newTestStore(t)
	seedReportData(t, s)

	var sink rowCollector
	require.NoError(t, s.TopBrokerInfo(context.Background(), &sink))

	require.Len(t, sink.rows, 1)
	assert.Equal(t, "Ivanov", sink.rows[0][0])
	assert.Equal(t, "SupplierX", sink.rows[0][3])
}

func TestSupplierBrokerBreakdown(t *testing.T) {
	s := newTestStore(t)
	seedReportData(t, s)

	var sink rowCollector
	require.NoError(t, s.SupplierBrokerBreakdown(context.Background(), "SupplierX", &sink))

	require.Len(t, sink.rows, 1)
	assert.Equal(t, "SupplierX", sink.rows[0][0])
	assert.Equal(t, "Ivanov", sink.rows[0][1])
	assert.Equal(t, "12", sink.rows[0][2])
}

func TestDealsOnDate(t *testing.T) {
	s := newTestStore(t)
	seedReportData(t, s)

	var sink rowCollector
	require.NoError(t, s.DealsOnDate(context.Background(), "2024-01-10", &sink))

	require.Len(t, sink.rows, 1)
	assert.Equal(t, "d1", sink.rows[0][0])
}

func TestBrokerDeals_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	seedReportData(t, s)

	var sink rowCollector
	require.NoError(t, s.BrokerDeals(context.Background(), "Ivanov", &sink))

	require.Len(t, sink.rows, 3)
	assert.Equal(t, "2024-02-05", sink.rows[0][1])
	assert.Equal(t, "2024-01-10", sink.rows[2][1])
}

var _ port.ResultSink = (*rowCollector)(nil)
