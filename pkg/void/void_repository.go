package void

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/entities"
	"context"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	VoidRepository interface {
		Transaction(ctx context.Context, fn func(repo VoidRepository) error) error

		GetOrderByID(ctx context.Context, id string) (*entities.Order, error)
		LockOrder(ctx context.Context, id string) (*entities.Order, error)
		UpdateVoidGuard(ctx context.Context, id uuid.UUID, fromVoidStatus string, updates map[string]any) (bool, error)
		GetPendingVoids(ctx context.Context) ([]*entities.Order, error)

		// Audit log, append-only
		CreateAuditLog(ctx context.Context, entry *entities.VoidAuditLog) error
		GetAuditLogs(ctx context.Context, orderID string) ([]*entities.VoidAuditLog, error)
	}

	voidRepository struct {
		db *gorm.DB
	}
)

func NewVoidRepository(db *gorm.DB) VoidRepository {
	return &voidRepository{db: db}
}

func (r *voidRepository) Transaction(ctx context.Context, fn func(repo VoidRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&voidRepository{db: tx})
	})
}

func (r *voidRepository) GetOrderByID(ctx context.Context, id string) (*entities.Order, error) {
	var order entities.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *voidRepository) LockOrder(ctx context.Context, id string) (*entities.Order, error) {
	var order entities.Order
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateVoidGuard applies updates only while void_status still equals fromVoidStatus.
func (r *voidRepository) UpdateVoidGuard(ctx context.Context, id uuid.UUID, fromVoidStatus string, updates map[string]any) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Order{}).
		Where("id = ? AND void_status = ?", id, fromVoidStatus).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *voidRepository) GetPendingVoids(ctx context.Context) ([]*entities.Order, error) {
	var orders []*entities.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("void_status = ?", string(domain.VoidRequested)).
		Order("void_requested_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *voidRepository) CreateAuditLog(ctx context.Context, entry *entities.VoidAuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *voidRepository) GetAuditLogs(ctx context.Context, orderID string) ([]*entities.VoidAuditLog, error) {
	var entries []*entities.VoidAuditLog
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
