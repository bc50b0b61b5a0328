package report

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/entities"
	"context"
	"gorm.io/gorm"
)

type (
	// ReportRepository is read-only.
	ReportRepository interface {
		GetCompletedOrders(ctx context.Context, filter domain.ReportFilter) ([]*entities.Order, error)
		GetClosedShifts(ctx context.Context, filter domain.ReportFilter) ([]*entities.Shift, error)
		GetLocations(ctx context.Context, ids []string) ([]*entities.Location, error)
	}

	reportRepository struct {
		db *gorm.DB
	}
)

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// GetCompletedOrders loads completed orders with their non-voided items and
// each item's current menu item (deleted ones included) and category.
func (r *reportRepository) GetCompletedOrders(ctx context.Context, filter domain.ReportFilter) ([]*entities.Order, error) {
	var orders []*entities.Order

	query := r.db.WithContext(ctx).
		Model(&entities.Order{}).
		Where("status = ?", string(domain.OrderCompleted))
	if filter.StaffID != "" {
		query = query.Where("staff_id = ?", filter.StaffID)
	}
	if filter.LocationID != "" {
		query = query.Where("location_id = ?", filter.LocationID)
	}
	from, to := filter.Range.Bounds()
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at <= ?", *to)
	}

	if err := query.
		Preload("Items", "status <> ?", string(domain.ItemVoided)).
		Preload("Items.MenuItem", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		}).
		Preload("Items.MenuItem.Category", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		}).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *reportRepository) GetClosedShifts(ctx context.Context, filter domain.ReportFilter) ([]*entities.Shift, error) {
	var shifts []*entities.Shift

	query := r.db.WithContext(ctx).
		Model(&entities.Shift{}).
		Where("clock_out_at IS NOT NULL")
	if filter.StaffID != "" {
		query = query.Where("staff_id = ?", filter.StaffID)
	}
	if filter.LocationID != "" {
		query = query.Where("location_id = ?", filter.LocationID)
	}
	from, to := filter.Range.Bounds()
	if from != nil {
		query = query.Where("clock_in_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("clock_in_at <= ?", *to)
	}

	if err := query.Order("clock_in_at ASC").Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

// GetLocations returns every location when ids is empty.
func (r *reportRepository) GetLocations(ctx context.Context, ids []string) ([]*entities.Location, error) {
	var locations []*entities.Location
	query := r.db.WithContext(ctx).Model(&entities.Location{})
	if len(ids) > 0 {
		query = query.Where("id IN ?", ids)
	}
	if err := query.Order("name ASC").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}
