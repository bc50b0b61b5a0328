package zreport

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/entities"
	"Restaurant-POS-Backend/internal/utils/storage"
	"Restaurant-POS-Backend/pkg/logger"
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"sort"
	"time"
)

const (
	dateLayout        = "2006-01-02"
	unrecordedPayment = "unrecorded"
)

type (
	ZReportService interface {
		GenerateZReport(ctx context.Context, principal domain.Principal, req domain.GenerateZReportRequest) (*domain.ZReport, error)
		ListZReports(ctx context.Context, r domain.DateRange, locationID string) ([]*domain.ZReport, error)
		DeleteZReport(ctx context.Context, principal domain.Principal, reportID string) error
	}

	zReportService struct {
		zReportRepository ZReportRepository
		s3                storage.AwsS3
		log               *logger.Logger
	}
)

func NewZReportService(zReportRepository ZReportRepository, s3 storage.AwsS3, log *logger.Logger) ZReportService {
	return &zReportService{
		zReportRepository: zReportRepository,
		s3:                s3,
		log:               log.WithComponent("zreport"),
	}
}

// GenerateZReport replaces any existing report for the same date and location.
// A concurrent generation for the same pair loses on the unique index.
func (s *zReportService) GenerateZReport(ctx context.Context, principal domain.Principal, req domain.GenerateZReportRequest) (*domain.ZReport, error) {
	if !principal.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	businessDate, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
	if err != nil {
		return nil, domain.Errorf(domain.ErrInvalid, "date must be YYYY-MM-DD")
	}
	var (
		locationID *uuid.UUID
		scope      string
	)
	if req.LocationID != "" {
		id, err := uuid.Parse(req.LocationID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		locationID = &id
		scope = id.String()
	}

	var report *entities.ZReport
	err = s.zReportRepository.Transaction(ctx, func(repo ZReportRepository) error {
		orders, err := repo.GetOrdersForDay(ctx, domain.StartOfDay(businessDate), domain.EndOfDay(businessDate), scope)
		if err != nil {
			return err
		}
		if err := repo.DeleteForDate(ctx, businessDate, scope); err != nil {
			return err
		}

		report = Summarize(orders)
		report.BusinessDate = businessDate
		report.LocationID = locationID
		report.ScopeKey = ScopeKey(scope)
		report.GeneratedBy = principal.UserID
		return repo.CreateZReport(ctx, report)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrZReportConflict
		}
		return nil, err
	}

	s.archive(ctx, report)
	return ToZReport(report), nil
}

func (s *zReportService) ListZReports(ctx context.Context, r domain.DateRange, locationID string) ([]*domain.ZReport, error) {
	reports, err := s.zReportRepository.GetZReports(ctx, r, locationID)
	if err != nil {
		return nil, err
	}

	res := make([]*domain.ZReport, 0, len(reports))
	for _, report := range reports {
		res = append(res, ToZReport(report))
	}
	return res, nil
}

func (s *zReportService) DeleteZReport(ctx context.Context, principal domain.Principal, reportID string) error {
	if !principal.IsAdmin() {
		return domain.ErrForbidden
	}

	report, err := s.zReportRepository.GetZReportByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrZReportNotFound
		}
		return err
	}
	if err := s.zReportRepository.DeleteZReport(ctx, reportID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrZReportNotFound
		}
		return err
	}

	if report.ArchiveKey != "" && s.s3 != nil && s.s3.Enabled() {
		if err := s.s3.DeleteFile(ctx, report.ArchiveKey); err != nil {
			s.log.Warn("failed to delete z-report archive", "report_id", reportID, "key", report.ArchiveKey, "error", err)
		}
	}
	return nil
}

// archive failures are logged and never undo the stored report.
func (s *zReportService) archive(ctx context.Context, report *entities.ZReport) {
	if s.s3 == nil || !s.s3.Enabled() {
		return
	}

	key := archiveKey(report)
	if _, err := s.s3.UploadJSON(ctx, key, ToZReport(report)); err != nil {
		s.log.Error("failed to archive z-report", "report_id", report.ID.String(), "error", err)
		return
	}
	if err := s.zReportRepository.UpdateArchiveKey(ctx, report.ID.String(), key); err != nil {
		s.log.Error("failed to record z-report archive key", "report_id", report.ID.String(), "error", err)
		return
	}
	report.ArchiveKey = key
}

func archiveKey(report *entities.ZReport) string {
	location := "all"
	if report.LocationID != nil {
		location = report.LocationID.String()
	}
	return fmt.Sprintf("z-reports/%s/%s-%s.json", location, report.BusinessDate.Format(dateLayout), report.ID.String())
}

// Summarize totals completed orders and counts voided ones. Payments are
// grouped by method over completed orders only.
func Summarize(orders []*entities.Order) *entities.ZReport {
	report := &entities.ZReport{}
	payments := make(map[string]*entities.ZReportPayment)

	for _, o := range orders {
		if o.Status == string(domain.OrderVoided) {
			report.VoidedCount++
			continue
		}
		report.OrderCount++
		report.GrossSales = report.GrossSales.Add(o.Total)
		report.NetSales = report.NetSales.Add(o.Subtotal)
		report.TaxTotal = report.TaxTotal.Add(o.TaxAmount)
		report.TipTotal = report.TipTotal.Add(o.TipAmount)
		report.DiscountTotal = report.DiscountTotal.Add(o.DiscountAmount)

		method := o.PaymentMethod
		if method == "" {
			method = unrecordedPayment
		}
		p, ok := payments[method]
		if !ok {
			p = &entities.ZReportPayment{Method: method, Amount: decimal.Zero}
			payments[method] = p
		}
		p.Orders++
		p.Amount = p.Amount.Add(o.Total)
	}

	breakdown := make([]entities.ZReportPayment, 0, len(payments))
	for _, p := range payments {
		p.Amount = domain.RoundMoney(p.Amount)
		breakdown = append(breakdown, *p)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].Method < breakdown[j].Method
	})
	report.Payments = datatypes.NewJSONType(breakdown)

	report.GrossSales = domain.RoundMoney(report.GrossSales)
	report.NetSales = domain.RoundMoney(report.NetSales)
	report.TaxTotal = domain.RoundMoney(report.TaxTotal)
	report.TipTotal = domain.RoundMoney(report.TipTotal)
	report.DiscountTotal = domain.RoundMoney(report.DiscountTotal)
	return report
}

func ToZReport(report *entities.ZReport) *domain.ZReport {
	res := &domain.ZReport{
		ID:            report.ID.String(),
		BusinessDate:  report.BusinessDate.Format(dateLayout),
		OrderCount:    report.OrderCount,
		VoidedCount:   report.VoidedCount,
		GrossSales:    report.GrossSales,
		NetSales:      report.NetSales,
		TaxTotal:      report.TaxTotal,
		TipTotal:      report.TipTotal,
		DiscountTotal: report.DiscountTotal,
		Payments:      []*domain.PaymentBreakdown{},
		ArchiveKey:    report.ArchiveKey,
		GeneratedBy:   report.GeneratedBy,
		CreatedAt:     report.CreatedAt,
	}
	if report.LocationID != nil {
		id := report.LocationID.String()
		res.LocationID = &id
	}
	for _, p := range report.Payments.Data() {
		res.Payments = append(res.Payments, &domain.PaymentBreakdown{
			Method: p.Method,
			Orders: p.Orders,
			Amount: p.Amount,
		})
	}
	return res
}
