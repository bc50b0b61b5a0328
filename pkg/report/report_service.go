package report

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/entities"
	"Restaurant-POS-Backend/pkg/logger"
	"context"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"sort"
)

const (
	DefaultRankLimit  = 10
	uncategorizedName = "Uncategorized"
	dayLayout         = "2006-01-02"
	consolidateLimit  = 4
)

type (
	Options struct {
		DefaultCogs          domain.CogsStrategy
		FlatCogsRate         decimal.Decimal
		PrimeCostTarget      decimal.Decimal
		PrimeCostWarningBand decimal.Decimal
	}

	ReportService interface {
		ProfitabilityByItem(ctx context.Context, filter domain.ReportFilter) ([]*domain.ItemProfitability, error)
		ProfitabilityByCategory(ctx context.Context, filter domain.ReportFilter) ([]*domain.CategoryProfitability, error)
		ProfitabilitySummary(ctx context.Context, filter domain.ReportFilter) (*domain.ProfitabilitySummary, error)
		PrimeCost(ctx context.Context, filter domain.ReportFilter) (*domain.PrimeCost, error)
		DailyProfitTrend(ctx context.Context, filter domain.ReportFilter) ([]*domain.DailyProfit, error)
		PrimeCostTrend(ctx context.Context, filter domain.ReportFilter) ([]*domain.DailyPrimeCost, error)
		TopProfitableItems(ctx context.Context, filter domain.ReportFilter, limit int) ([]*domain.ItemProfitability, error)
		BottomProfitableItems(ctx context.Context, filter domain.ReportFilter, limit int) ([]*domain.ItemProfitability, error)
		ConsolidatedReport(ctx context.Context, filter domain.ReportFilter, locationIDs []string) (*domain.ConsolidatedReport, error)
	}

	reportService struct {
		reportRepository ReportRepository
		options          Options
		log              *logger.Logger
	}
)

func DefaultOptions() Options {
	return Options{
		DefaultCogs:          domain.CogsRecipe,
		FlatCogsRate:         decimal.RequireFromString("0.30"),
		PrimeCostTarget:      decimal.NewFromInt(60),
		PrimeCostWarningBand: decimal.NewFromInt(5),
	}
}

func NewReportService(reportRepository ReportRepository, options Options, log *logger.Logger) ReportService {
	if options.DefaultCogs == "" {
		options.DefaultCogs = domain.CogsRecipe
	}
	return &reportService{
		reportRepository: reportRepository,
		options:          options,
		log:              log.WithComponent("report"),
	}
}

func (s *reportService) ProfitabilityByItem(ctx context.Context, filter domain.ReportFilter) ([]*domain.ItemProfitability, error) {
	orders, err := s.reportRepository.GetCompletedOrders(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := aggregateItems(orders)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
	return items, nil
}

func (s *reportService) ProfitabilityByCategory(ctx context.Context, filter domain.ReportFilter) ([]*domain.CategoryProfitability, error) {
	orders, err := s.reportRepository.GetCompletedOrders(ctx, filter)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.CategoryProfitability)
	for _, o := range orders {
		for _, item := range o.Items {
			id, name := "", uncategorizedName
			if item.MenuItem != nil && item.MenuItem.Category != nil {
				id = item.MenuItem.Category.ID.String()
				name = item.MenuItem.Category.Name
			}
			row, ok := byID[id]
			if !ok {
				row = &domain.CategoryProfitability{CategoryID: id, Name: name}
				byID[id] = row
			}
			row.Quantity += item.Quantity
			row.Revenue = row.Revenue.Add(item.TotalPrice)
			row.Cost = row.Cost.Add(itemCost(item))
		}
	}

	categories := make([]*domain.CategoryProfitability, 0, len(byID))
	for _, row := range byID {
		row.Revenue = domain.RoundMoney(row.Revenue)
		row.Cost = domain.RoundMoney(row.Cost)
		row.Profit = row.Revenue.Sub(row.Cost)
		row.MarginPercent = domain.Percent(row.Profit, row.Revenue)
		categories = append(categories, row)
	}
	sort.Slice(categories, func(i, j int) bool {
		if !categories[i].Revenue.Equal(categories[j].Revenue) {
			return categories[i].Revenue.GreaterThan(categories[j].Revenue)
		}
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func (s *reportService) ProfitabilitySummary(ctx context.Context, filter domain.ReportFilter) (*domain.ProfitabilitySummary, error) {
	orders, err := s.reportRepository.GetCompletedOrders(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.summarize(orders, filter.Cogs), nil
}

func (s *reportService) PrimeCost(ctx context.Context, filter domain.ReportFilter) (*domain.PrimeCost, error) {
	orders, err := s.reportRepository.GetCompletedOrders(ctx, filter)
	if err != nil {
		return nil, err
	}
	shifts, err := s.reportRepository.GetClosedShifts(ctx, filter)
	if err != nil {
		return nil, err
	}

	revenue := orderRevenue(orders)
	foodCost := s.cogs(filter.Cogs)(orders)
	return s.primeCost(revenue, foodCost, labourCost(shifts)), nil
}

func (s *reportService) DailyProfitTrend(ctx context.Context, filter domain.ReportFilter) ([]*domain.DailyProfit, error) {
	if err := filter.Range.Check(domain.MaxReportDays); err != nil {
		return nil, err
	}
	orders, err := s.reportRepository.GetCompletedOrders(ctx, filter)
	if err != nil {
		return nil, err
	}

	cogs := s.cogs(filter.Cogs)
	buckets := ordersByDay(orders)
	days := dayKeys(filter.Range, buckets)

	trend := make([]*domain.DailyProfit, 0, len(days))
	for _, day := range days {
		dayOrders := buckets[day]
		revenue := domain.RoundMoney(orderRevenue(dayOrders))
		cost := domain.RoundMoney(cogs(dayOrders))
		profit := revenue.Sub(cost)
		trend = append(trend, &domain.DailyProfit{
			Date:                day,
			Revenue:             revenue,
			Cost:                cost,
			Profit:              profit,
			ProfitMarginPercent: domain.Percent(profit, revenue),
			Orders:              len(dayOrders),
		})
	}
	return trend, nil
}

func (s *reportService) PrimeCostTrend(ctx context.Context, filter domain.ReportFilter) ([]*domain.DailyPrimeCost, error) {
	if err := filter.Range.Check(domain.MaxReportDays); err != nil {
		return nil, err
	}
	orders, err := s.reportRepository.GetCompletedOrders(ctx, filter)
	if err != nil {
		return nil, err
	}
	shifts, err := s.reportRepository.GetClosedShifts(ctx, filter)
	if err != nil {
		return nil, err
	}

	cogs := s.cogs(filter.Cogs)
	buckets := ordersByDay(orders)
	shiftBuckets := make(map[string][]*entities.Shift)
	for _, shift := range shifts {
		day := shift.ClockInAt.UTC().Format(dayLayout)
		shiftBuckets[day] = append(shiftBuckets[day], shift)
	}
	for day := range shiftBuckets {
		if _, ok := buckets[day]; !ok {
			buckets[day] = nil
		}
	}
	days := dayKeys(filter.Range, buckets)

	trend := make([]*domain.DailyPrimeCost, 0, len(days))
	for _, day := range days {
		dayOrders := buckets[day]
		pc := s.primeCost(orderRevenue(dayOrders), cogs(dayOrders), labourCost(shiftBuckets[day]))
		trend = append(trend, &domain.DailyPrimeCost{Date: day, PrimeCost: *pc})
	}
	return trend, nil
}

func (s *reportService) TopProfitableItems(ctx context.Context, filter domain.ReportFilter, limit int) ([]*domain.ItemProfitability, error) {
	items, err := s.rankedItems(ctx, filter)
	if err != nil {
		return nil, err
	}
	return truncate(items, limit), nil
}

// BottomProfitableItems is the exact reverse of the top ranking, so with every
// item in range the two lists mirror each other.
func (s *reportService) BottomProfitableItems(ctx context.Context, filter domain.ReportFilter, limit int) ([]*domain.ItemProfitability, error) {
	items, err := s.rankedItems(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return truncate(items, limit), nil
}

func (s *reportService) ConsolidatedReport(ctx context.Context, filter domain.ReportFilter, locationIDs []string) (*domain.ConsolidatedReport, error) {
	ids := make([]string, 0, len(locationIDs))
	for _, v := range locationIDs {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		ids = append(ids, id.String())
	}
	ids = uniqueStrings(ids)
	locations, err := s.reportRepository.GetLocations(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 && len(locations) != len(ids) {
		return nil, domain.ErrLocationNotFound
	}

	reports := make([]*domain.LocationReport, len(locations))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(consolidateLimit)
	for i, location := range locations {
		i, location := i, location
		g.Go(func() error {
			scoped := filter
			scoped.LocationID = location.ID.String()
			report, err := s.locationReport(gctx, scoped)
			if err != nil {
				return err
			}
			report.LocationID = location.ID.String()
			report.LocationName = location.Name
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error("consolidated report failed", "error", err)
		return nil, err
	}

	totals := domain.LocationReport{LocationName: "All locations"}
	for _, r := range reports {
		totals.Revenue = totals.Revenue.Add(r.Revenue)
		totals.FoodCost = totals.FoodCost.Add(r.FoodCost)
		totals.LabourCost = totals.LabourCost.Add(r.LabourCost)
		totals.TotalOrders += r.TotalOrders
	}
	totals.GrossProfit = totals.Revenue.Sub(totals.FoodCost)
	totals.NetProfit = totals.GrossProfit.Sub(totals.LabourCost)
	totals.ProfitMarginPercent = domain.Percent(totals.NetProfit, totals.Revenue)

	from, to := filter.Range.Bounds()
	return &domain.ConsolidatedReport{
		Locations: reports,
		Totals:    totals,
		From:      from,
		To:        to,
	}, nil
}

func (s *reportService) locationReport(ctx context.Context, filter domain.ReportFilter) (*domain.LocationReport, error) {
	orders, err := s.reportRepository.GetCompletedOrders(ctx, filter)
	if err != nil {
		return nil, err
	}
	shifts, err := s.reportRepository.GetClosedShifts(ctx, filter)
	if err != nil {
		return nil, err
	}

	revenue := domain.RoundMoney(orderRevenue(orders))
	foodCost := domain.RoundMoney(s.cogs(filter.Cogs)(orders))
	labour := domain.RoundMoney(labourCost(shifts))
	gross := revenue.Sub(foodCost)
	net := gross.Sub(labour)
	return &domain.LocationReport{
		Revenue:             revenue,
		FoodCost:            foodCost,
		LabourCost:          labour,
		GrossProfit:         gross,
		NetProfit:           net,
		ProfitMarginPercent: domain.Percent(net, revenue),
		TotalOrders:         len(orders),
	}, nil
}

func (s *reportService) rankedItems(ctx context.Context, filter domain.ReportFilter) ([]*domain.ItemProfitability, error) {
	orders, err := s.reportRepository.GetCompletedOrders(ctx, filter)
	if err != nil {
		return nil, err
	}
	return rankByProfit(aggregateItems(orders)), nil
}

// rankByProfit orders by profit descending, then name, then id, so ties are
// stable across calls.
func rankByProfit(items []*domain.ItemProfitability) []*domain.ItemProfitability {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Profit.Equal(items[j].Profit) {
			return items[i].Profit.GreaterThan(items[j].Profit)
		}
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].MenuItemID < items[j].MenuItemID
	})
	return items
}

func (s *reportService) summarize(orders []*entities.Order, strategy domain.CogsStrategy) *domain.ProfitabilitySummary {
	if strategy == "" {
		strategy = s.options.DefaultCogs
	}
	revenue := domain.RoundMoney(orderRevenue(orders))
	cost := domain.RoundMoney(s.cogs(strategy)(orders))
	profit := revenue.Sub(cost)
	return &domain.ProfitabilitySummary{
		CogsStrategy:        string(strategy),
		TotalRevenue:        revenue,
		TotalCost:           cost,
		GrossProfit:         profit,
		ProfitMarginPercent: domain.Percent(profit, revenue),
		TotalOrders:         len(orders),
	}
}

func (s *reportService) primeCost(revenue, foodCost, labour decimal.Decimal) *domain.PrimeCost {
	revenue = domain.RoundMoney(revenue)
	foodCost = domain.RoundMoney(foodCost)
	labour = domain.RoundMoney(labour)
	amount := foodCost.Add(labour)
	pct := domain.Percent(amount, revenue)
	return &domain.PrimeCost{
		Revenue:             revenue,
		FoodCost:            foodCost,
		LabourCost:          labour,
		PrimeCostAmount:     amount,
		PrimeCostPercentage: pct,
		TargetPercentage:    s.options.PrimeCostTarget,
		Status:              s.primeCostStatus(pct),
	}
}

func (s *reportService) primeCostStatus(pct decimal.Decimal) string {
	switch {
	case pct.LessThanOrEqual(s.options.PrimeCostTarget):
		return domain.PrimeCostHealthy
	case pct.LessThanOrEqual(s.options.PrimeCostTarget.Add(s.options.PrimeCostWarningBand)):
		return domain.PrimeCostWarning
	default:
		return domain.PrimeCostCritical
	}
}

// aggregateItems groups sold lines by menu item. Name comes from the live menu
// item when it still resolves and falls back to the order-time snapshot.
func aggregateItems(orders []*entities.Order) []*domain.ItemProfitability {
	byID := make(map[string]*domain.ItemProfitability)
	for _, o := range orders {
		for _, item := range o.Items {
			id := item.MenuItemID.String()
			row, ok := byID[id]
			if !ok {
				row = &domain.ItemProfitability{MenuItemID: id, Name: item.Name}
				if item.MenuItem != nil {
					row.Name = item.MenuItem.Name
					if item.MenuItem.CategoryID != nil {
						row.CategoryID = item.MenuItem.CategoryID.String()
					}
				}
				byID[id] = row
			}
			row.Quantity += item.Quantity
			row.Revenue = row.Revenue.Add(item.TotalPrice)
			row.Cost = row.Cost.Add(itemCost(item))
		}
	}

	items := make([]*domain.ItemProfitability, 0, len(byID))
	for _, row := range byID {
		row.Revenue = domain.RoundMoney(row.Revenue)
		row.Cost = domain.RoundMoney(row.Cost)
		row.Profit = row.Revenue.Sub(row.Cost)
		row.MarginPercent = domain.Percent(row.Profit, row.Revenue)
		items = append(items, row)
	}
	return items
}

func orderRevenue(orders []*entities.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Subtotal)
	}
	return total
}

func labourCost(shifts []*entities.Shift) decimal.Decimal {
	total := decimal.Zero
	for _, shift := range shifts {
		total = total.Add(shift.LabourCost)
	}
	return total
}

func ordersByDay(orders []*entities.Order) map[string][]*entities.Order {
	buckets := make(map[string][]*entities.Order)
	for _, o := range orders {
		day := o.CreatedAt.UTC().Format(dayLayout)
		buckets[day] = append(buckets[day], o)
	}
	return buckets
}

// dayKeys lists every day of a fully bounded range, or just the days that have
// data when either bound is open.
func dayKeys[T any](r domain.DateRange, buckets map[string]T) []string {
	from, to := r.Bounds()
	if from != nil && to != nil {
		var days []string
		for d := from.UTC(); !d.After(to.UTC()); d = d.AddDate(0, 0, 1) {
			days = append(days, d.Format(dayLayout))
		}
		return days
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}

func truncate(items []*domain.ItemProfitability, limit int) []*domain.ItemProfitability {
	if limit <= 0 {
		limit = DefaultRankLimit
	}
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok || v == "" {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
