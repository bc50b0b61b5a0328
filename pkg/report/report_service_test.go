package report

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/entities"
	"Restaurant-POS-Backend/internal/utils/dbtest"
	"Restaurant-POS-Backend/pkg/logger"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportFixture struct {
	repo     ReportRepository
	downtown *entities.Location
	airport  *entities.Location
	burger   *entities.MenuItem
	salad    *entities.MenuItem
	soup     *entities.MenuItem
}

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 12, 0, 0, 0, time.UTC)
}

func march(from, to int) domain.DateRange {
	f, t := day(from), day(to)
	return domain.DateRange{From: &f, To: &t}
}

// newReportFixture books two completed orders:
//
//	Mar 1, Downtown: 2 x Burger (12.00, cost 4.00) + 1 x Salad (8.00, cost 2.00)
//	Mar 3, Airport:  2 x Soup (6.00, cost 5.00) + 1 x Burger, plus a voided salad line
//
// with 10.00 of labour at Downtown on Mar 1 and 6.00 at Airport on Mar 3.
func newReportFixture(t *testing.T) *reportFixture {
	db := dbtest.New(t)
	f := &reportFixture{repo: NewReportRepository(db)}

	f.downtown = dbtest.Location(t, db, "Downtown")
	f.airport = dbtest.Location(t, db, "Airport")
	mains := dbtest.Category(t, db, "Mains")
	starters := dbtest.Category(t, db, "Starters")
	f.burger = dbtest.MenuItem(t, db, "Burger", "12.00", "4.00", mains)
	f.salad = dbtest.MenuItem(t, db, "Salad", "8.00", "2.00", starters)
	f.soup = dbtest.MenuItem(t, db, "Soup", "6.00", "5.00", nil)

	dbtest.CompletedOrder(t, db, day(1), f.downtown,
		dbtest.Line{Item: f.burger, Qty: 2},
		dbtest.Line{Item: f.salad, Qty: 1},
	)
	dbtest.CompletedOrder(t, db, day(3), f.airport,
		dbtest.Line{Item: f.soup, Qty: 2},
		dbtest.Line{Item: f.burger, Qty: 1},
		dbtest.Line{Item: f.salad, Qty: 3, Voided: true},
	)

	dbtest.ClosedShift(t, db, uuid.New(), f.downtown, day(1), "10.00")
	dbtest.ClosedShift(t, db, uuid.New(), f.airport, day(3), "6.00")
	return f
}

func (f *reportFixture) service(opts Options) ReportService {
	return NewReportService(f.repo, opts, logger.Discard())
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), append([]any{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func TestProfitabilityByItem(t *testing.T) {
	f := newReportFixture(t)
	svc := f.service(DefaultOptions())

	items, err := svc.ProfitabilityByItem(context.Background(), domain.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, []string{"Burger", "Salad", "Soup"}, []string{items[0].Name, items[1].Name, items[2].Name})

	burger := items[0]
	assert.Equal(t, 3, burger.Quantity)
	assertDecimal(t, "36", burger.Revenue)
	assertDecimal(t, "12", burger.Cost)
	assertDecimal(t, "24", burger.Profit)
	assertDecimal(t, "66.67", burger.MarginPercent)
	assert.Equal(t, f.burger.CategoryID.String(), burger.CategoryID)

	salad := items[1]
	assert.Equal(t, 1, salad.Quantity, "voided lines are not sold")
	assertDecimal(t, "75", salad.MarginPercent)

	soup := items[2]
	assert.Empty(t, soup.CategoryID)
	assertDecimal(t, "2", soup.Profit)
}

func TestProfitabilityByCategory(t *testing.T) {
	f := newReportFixture(t)
	svc := f.service(DefaultOptions())

	categories, err := svc.ProfitabilityByCategory(context.Background(), domain.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, categories, 3)

	assert.Equal(t, "Mains", categories[0].Name)
	assertDecimal(t, "36", categories[0].Revenue)
	assert.Equal(t, uncategorizedName, categories[1].Name)
	assert.Empty(t, categories[1].CategoryID)
	assertDecimal(t, "12", categories[1].Revenue)
	assertDecimal(t, "10", categories[1].Cost)
	assert.Equal(t, "Starters", categories[2].Name)
	assertDecimal(t, "8", categories[2].Revenue)
}

func TestProfitabilitySummary(t *testing.T) {
	f := newReportFixture(t)
	svc := f.service(DefaultOptions())
	ctx := context.Background()

	t.Run("recipe", func(t *testing.T) {
		summary, err := svc.ProfitabilitySummary(ctx, domain.ReportFilter{})
		require.NoError(t, err)
		assert.Equal(t, "recipe", summary.CogsStrategy)
		assert.Equal(t, 2, summary.TotalOrders)
		assertDecimal(t, "56", summary.TotalRevenue)
		assertDecimal(t, "24", summary.TotalCost)
		assertDecimal(t, "32", summary.GrossProfit)
		assertDecimal(t, "57.14", summary.ProfitMarginPercent)
	})

	t.Run("flat", func(t *testing.T) {
		summary, err := svc.ProfitabilitySummary(ctx, domain.ReportFilter{Cogs: domain.CogsFlat})
		require.NoError(t, err)
		assert.Equal(t, "flat", summary.CogsStrategy)
		assertDecimal(t, "16.80", summary.TotalCost)
		assertDecimal(t, "39.20", summary.GrossProfit)
		assertDecimal(t, "70", summary.ProfitMarginPercent)
	})

	t.Run("location scoped", func(t *testing.T) {
		summary, err := svc.ProfitabilitySummary(ctx, domain.ReportFilter{LocationID: f.downtown.ID.String()})
		require.NoError(t, err)
		assert.Equal(t, 1, summary.TotalOrders)
		assertDecimal(t, "32", summary.TotalRevenue)
	})

	t.Run("empty range", func(t *testing.T) {
		from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
		summary, err := svc.ProfitabilitySummary(ctx, domain.ReportFilter{Range: domain.DateRange{From: &from, To: &from}})
		require.NoError(t, err)
		assert.Equal(t, 0, summary.TotalOrders)
		assert.True(t, summary.TotalRevenue.IsZero())
		assert.True(t, summary.ProfitMarginPercent.IsZero())
	})
}

func TestPrimeCostStatus(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	// food 24.00 + labour 16.00 over revenue 56.00
	tests := []struct {
		name   string
		target int64
		band   int64
		want   string
	}{
		{"healthy", 75, 5, domain.PrimeCostHealthy},
		{"warning", 70, 5, domain.PrimeCostWarning},
		{"critical", 60, 5, domain.PrimeCostCritical},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.PrimeCostTarget = decimal.NewFromInt(tc.target)
			opts.PrimeCostWarningBand = decimal.NewFromInt(tc.band)

			pc, err := f.service(opts).PrimeCost(ctx, domain.ReportFilter{})
			require.NoError(t, err)
			assertDecimal(t, "24", pc.FoodCost)
			assertDecimal(t, "16", pc.LabourCost)
			assertDecimal(t, "40", pc.PrimeCostAmount)
			assertDecimal(t, "71.43", pc.PrimeCostPercentage)
			assertDecimal(t, decimal.NewFromInt(tc.target).String(), pc.TargetPercentage)
			assert.Equal(t, tc.want, pc.Status)
		})
	}
}

func TestDailyProfitTrend(t *testing.T) {
	f := newReportFixture(t)
	svc := f.service(DefaultOptions())
	ctx := context.Background()

	t.Run("bounded range is zero filled", func(t *testing.T) {
		trend, err := svc.DailyProfitTrend(ctx, domain.ReportFilter{Range: march(1, 4)})
		require.NoError(t, err)
		require.Len(t, trend, 4)

		assert.Equal(t, "2026-03-01", trend[0].Date)
		assertDecimal(t, "32", trend[0].Revenue)
		assertDecimal(t, "10", trend[0].Cost)
		assertDecimal(t, "22", trend[0].Profit)
		assert.Equal(t, 1, trend[0].Orders)

		assert.Equal(t, "2026-03-02", trend[1].Date)
		assert.Equal(t, 0, trend[1].Orders)
		assert.True(t, trend[1].Revenue.IsZero())
		assert.True(t, trend[1].ProfitMarginPercent.IsZero())

		assertDecimal(t, "24", trend[2].Revenue)
		assertDecimal(t, "14", trend[2].Cost)
		assert.Equal(t, "2026-03-04", trend[3].Date)
	})

	t.Run("open range lists days with sales", func(t *testing.T) {
		trend, err := svc.DailyProfitTrend(ctx, domain.ReportFilter{})
		require.NoError(t, err)
		require.Len(t, trend, 2)
		assert.Equal(t, "2026-03-01", trend[0].Date)
		assert.Equal(t, "2026-03-03", trend[1].Date)
	})

	t.Run("range span is capped", func(t *testing.T) {
		from := time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2999, time.December, 31, 0, 0, 0, 0, time.UTC)
		_, err := svc.DailyProfitTrend(ctx, domain.ReportFilter{Range: domain.DateRange{From: &from, To: &to}})
		assert.ErrorIs(t, err, domain.ErrInvalid)
		assert.Equal(t, domain.KindInvalid, domain.KindOf(err))

		_, err = svc.PrimeCostTrend(ctx, domain.ReportFilter{Range: march(4, 1)})
		assert.ErrorIs(t, err, domain.ErrInvalid)

		yearStart := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
		yearEnd := time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)
		trend, err := svc.DailyProfitTrend(ctx, domain.ReportFilter{Range: domain.DateRange{From: &yearStart, To: &yearEnd}})
		require.NoError(t, err)
		assert.Len(t, trend, 365)
	})
}

func TestPrimeCostTrend(t *testing.T) {
	f := newReportFixture(t)
	svc := f.service(DefaultOptions())

	trend, err := svc.PrimeCostTrend(context.Background(), domain.ReportFilter{Range: march(1, 3)})
	require.NoError(t, err)
	require.Len(t, trend, 3)

	// 20.00 over 32.00
	assertDecimal(t, "62.5", trend[0].PrimeCostPercentage)
	assert.Equal(t, domain.PrimeCostWarning, trend[0].Status)
	assert.Equal(t, domain.PrimeCostHealthy, trend[1].Status)
	// 20.00 over 24.00
	assertDecimal(t, "83.33", trend[2].PrimeCostPercentage)
	assert.Equal(t, domain.PrimeCostCritical, trend[2].Status)
}

func TestTopAndBottomItems(t *testing.T) {
	f := newReportFixture(t)
	svc := f.service(DefaultOptions())
	ctx := context.Background()

	names := func(items []*domain.ItemProfitability) []string {
		out := make([]string, 0, len(items))
		for _, item := range items {
			out = append(out, item.Name)
		}
		return out
	}

	top, err := svc.TopProfitableItems(ctx, domain.ReportFilter{}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Burger", "Salad", "Soup"}, names(top))

	bottom, err := svc.BottomProfitableItems(ctx, domain.ReportFilter{}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Soup", "Salad", "Burger"}, names(bottom))

	top1, err := svc.TopProfitableItems(ctx, domain.ReportFilter{}, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Burger"}, names(top1))

	bottom2, err := svc.BottomProfitableItems(ctx, domain.ReportFilter{}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Soup", "Salad"}, names(bottom2))
}

func TestRankingTieBreak(t *testing.T) {
	a := &domain.ItemProfitability{MenuItemID: "b", Name: "Fries", Profit: decimal.NewFromInt(5)}
	b := &domain.ItemProfitability{MenuItemID: "a", Name: "Fries", Profit: decimal.NewFromInt(5)}
	c := &domain.ItemProfitability{MenuItemID: "c", Name: "Cola", Profit: decimal.NewFromInt(5)}

	ranked := rankByProfit([]*domain.ItemProfitability{a, b, c})
	assert.Equal(t, []string{"c", "a", "b"}, []string{ranked[0].MenuItemID, ranked[1].MenuItemID, ranked[2].MenuItemID})
}

func TestConsolidatedReport(t *testing.T) {
	f := newReportFixture(t)
	svc := f.service(DefaultOptions())
	ctx := context.Background()

	report, err := svc.ConsolidatedReport(ctx, domain.ReportFilter{}, []string{f.downtown.ID.String(), f.airport.ID.String(), f.downtown.ID.String()})
	require.NoError(t, err)
	require.Len(t, report.Locations, 2)

	airport, downtown := report.Locations[0], report.Locations[1]
	assert.Equal(t, "Airport", airport.LocationName)
	assertDecimal(t, "24", airport.Revenue)
	assertDecimal(t, "14", airport.FoodCost)
	assertDecimal(t, "6", airport.LabourCost)
	assertDecimal(t, "10", airport.GrossProfit)
	assertDecimal(t, "4", airport.NetProfit)

	assert.Equal(t, "Downtown", downtown.LocationName)
	assert.Equal(t, f.downtown.ID.String(), downtown.LocationID)
	assertDecimal(t, "12", downtown.NetProfit)

	assert.Equal(t, "All locations", report.Totals.LocationName)
	assert.Equal(t, 2, report.Totals.TotalOrders)
	assertDecimal(t, "56", report.Totals.Revenue)
	assertDecimal(t, "16", report.Totals.LabourCost)
	assertDecimal(t, "16", report.Totals.NetProfit)
	assertDecimal(t, "28.57", report.Totals.ProfitMarginPercent)

	t.Run("all locations when none given", func(t *testing.T) {
		all, err := svc.ConsolidatedReport(ctx, domain.ReportFilter{}, nil)
		require.NoError(t, err)
		assert.Len(t, all.Locations, 2)
	})

	t.Run("unknown location", func(t *testing.T) {
		_, err := svc.ConsolidatedReport(ctx, domain.ReportFilter{}, []string{f.downtown.ID.String(), uuid.NewString()})
		assert.ErrorIs(t, err, domain.ErrLocationNotFound)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("malformed location id", func(t *testing.T) {
		_, err := svc.ConsolidatedReport(ctx, domain.ReportFilter{}, []string{f.downtown.ID.String(), "abc"})
		assert.ErrorIs(t, err, domain.ErrParseUUID)
		assert.Equal(t, domain.KindInvalid, domain.KindOf(err))
	})
}
