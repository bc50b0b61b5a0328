package zreport

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/entities"
	"context"
	"gorm.io/gorm"
	"time"
)

type (
	ZReportRepository interface {
		Transaction(ctx context.Context, fn func(repo ZReportRepository) error) error
		GetOrdersForDay(ctx context.Context, from, to time.Time, locationID string) ([]*entities.Order, error)
		DeleteForDate(ctx context.Context, businessDate time.Time, locationID string) error
		CreateZReport(ctx context.Context, report *entities.ZReport) error
		UpdateArchiveKey(ctx context.Context, reportID string, key string) error
		GetZReportByID(ctx context.Context, reportID string) (*entities.ZReport, error)
		GetZReports(ctx context.Context, r domain.DateRange, locationID string) ([]*entities.ZReport, error)
		DeleteZReport(ctx context.Context, reportID string) error
	}

	zReportRepository struct {
		db *gorm.DB
	}
)

func NewZReportRepository(db *gorm.DB) ZReportRepository {
	return &zReportRepository{db: db}
}

func (r *zReportRepository) Transaction(ctx context.Context, fn func(repo ZReportRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&zReportRepository{db: tx})
	})
}

// GetOrdersForDay returns the completed and voided orders created in [from, to].
func (r *zReportRepository) GetOrdersForDay(ctx context.Context, from, to time.Time, locationID string) ([]*entities.Order, error) {
	var orders []*entities.Order
	query := r.db.WithContext(ctx).
		Model(&entities.Order{}).
		Where("status IN ?", []string{string(domain.OrderCompleted), string(domain.OrderVoided)}).
		Where("created_at >= ? AND created_at <= ?", from, to)
	query = scopeLocation(query, locationID)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *zReportRepository) DeleteForDate(ctx context.Context, businessDate time.Time, locationID string) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("business_date = ? AND scope_key = ?", businessDate, ScopeKey(locationID)).
		Delete(&entities.ZReport{}).Error
}

func (r *zReportRepository) CreateZReport(ctx context.Context, report *entities.ZReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *zReportRepository) UpdateArchiveKey(ctx context.Context, reportID string, key string) error {
	return r.db.WithContext(ctx).
		Model(&entities.ZReport{}).
		Where("id = ?", reportID).
		Update("archive_key", key).Error
}

func (r *zReportRepository) GetZReportByID(ctx context.Context, reportID string) (*entities.ZReport, error) {
	var report entities.ZReport
	if err := r.db.WithContext(ctx).Where("id = ?", reportID).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *zReportRepository) GetZReports(ctx context.Context, dr domain.DateRange, locationID string) ([]*entities.ZReport, error) {
	var reports []*entities.ZReport
	query := r.db.WithContext(ctx).Model(&entities.ZReport{})
	from, to := dr.Bounds()
	if from != nil {
		query = query.Where("business_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("business_date <= ?", *to)
	}
	if locationID != "" {
		query = query.Where("location_id = ?", locationID)
	}
	if err := query.Order("business_date DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *zReportRepository) DeleteZReport(ctx context.Context, reportID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", reportID).Delete(&entities.ZReport{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ScopeKey is the value stored in entities.ZReport.ScopeKey for a location filter.
func ScopeKey(locationID string) string {
	if locationID == "" {
		return entities.ZReportAllLocations
	}
	return locationID
}

func scopeLocation(query *gorm.DB, locationID string) *gorm.DB {
	if locationID == "" {
		return query
	}
	return query.Where("location_id = ?", locationID)
}
