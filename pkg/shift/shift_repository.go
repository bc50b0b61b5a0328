package shift

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/entities"
	"context"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"time"
)

type (
	ShiftRepository interface {
		Transaction(ctx context.Context, fn func(repo ShiftRepository) error) error
		GetStaffByID(ctx context.Context, staffID string) (*entities.Staff, error)
		LockStaff(ctx context.Context, staffID string) (*entities.Staff, error)
		GetOpenShift(ctx context.Context, staffID string) (*entities.Shift, error)
		CreateShift(ctx context.Context, shift *entities.Shift) error
		CloseShift(ctx context.Context, shiftID string, clockOutAt time.Time, hours, labourCost decimal.Decimal) error
		GetShiftByID(ctx context.Context, shiftID string) (*entities.Shift, error)
		GetShifts(ctx context.Context, filter domain.ShiftFilter) ([]*entities.Shift, error)
	}

	shiftRepository struct {
		db *gorm.DB
	}
)

func NewShiftRepository(db *gorm.DB) ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) Transaction(ctx context.Context, fn func(repo ShiftRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&shiftRepository{db: tx})
	})
}

func (r *shiftRepository) GetStaffByID(ctx context.Context, staffID string) (*entities.Staff, error) {
	var staff entities.Staff
	if err := r.db.WithContext(ctx).Where("id = ?", staffID).First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

// LockStaff serialises clock-in/clock-out for one staff member.
func (r *shiftRepository) LockStaff(ctx context.Context, staffID string) (*entities.Staff, error) {
	var staff entities.Staff
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", staffID).
		First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *shiftRepository) GetOpenShift(ctx context.Context, staffID string) (*entities.Shift, error) {
	var shift entities.Shift
	if err := r.db.WithContext(ctx).
		Where("staff_id = ? AND clock_out_at IS NULL", staffID).
		Order("clock_in_at DESC").
		First(&shift).Error; err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) CreateShift(ctx context.Context, shift *entities.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *shiftRepository) CloseShift(ctx context.Context, shiftID string, clockOutAt time.Time, hours, labourCost decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Shift{}).
		Where("id = ? AND clock_out_at IS NULL", shiftID).
		Updates(map[string]any{
			"clock_out_at": clockOutAt,
			"hours":        hours,
			"labour_cost":  labourCost,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *shiftRepository) GetShiftByID(ctx context.Context, shiftID string) (*entities.Shift, error) {
	var shift entities.Shift
	if err := r.db.WithContext(ctx).
		Preload("Staff").
		Where("id = ?", shiftID).
		First(&shift).Error; err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) GetShifts(ctx context.Context, filter domain.ShiftFilter) ([]*entities.Shift, error) {
	var shifts []*entities.Shift

	query := r.db.WithContext(ctx).Model(&entities.Shift{}).Preload("Staff")
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

	if err := query.Order("clock_in_at DESC").Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}
