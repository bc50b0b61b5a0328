package order

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/entities"
	"context"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"time"
)

type (
	OrderRepository interface {
		Transaction(ctx context.Context, fn func(tx *gorm.DB, repo OrderRepository) error) error

		CountOrderNumbersWithPrefix(ctx context.Context, prefix string) (int64, error)
		CreateOrder(ctx context.Context, order *entities.Order) error
		GetOrderByID(ctx context.Context, id string) (*entities.Order, error)
		LockOrder(ctx context.Context, id string) (*entities.Order, error)
		GetOrders(ctx context.Context, filter domain.OrderFilter) ([]*entities.Order, int64, error)
		UpdateStatusGuard(ctx context.Context, id uuid.UUID, from, to string, completedAt *time.Time) (bool, error)
		UpdateOrderAmounts(ctx context.Context, order *entities.Order) error
		UpdatePayment(ctx context.Context, id uuid.UUID, method, status string) error

		GetMenuItemByID(ctx context.Context, id string) (*entities.MenuItem, error)
		CreateOrderItem(ctx context.Context, item *entities.OrderItem) error
		GetOrderItemByID(ctx context.Context, id string) (*entities.OrderItem, error)
		UpdateOrderItemStatusGuard(ctx context.Context, item *entities.OrderItem, from string) (bool, error)
		GetOrderItemsWithMenu(ctx context.Context, orderID uuid.UUID) ([]*entities.OrderItem, error)
	}

	orderRepository struct {
		db *gorm.DB
	}
)

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB, repo OrderRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx, &orderRepository{db: tx})
	})
}

func (r *orderRepository) CountOrderNumbersWithPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Unscoped().
		Model(&entities.Order{}).
		Where("order_number LIKE ?", prefix+"%").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *entities.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id string) (*entities.Order, error) {
	var order entities.Order
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) LockOrder(ctx context.Context, id string) (*entities.Order, error) {
	var order entities.Order
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&order).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", order.ID).
		Order("created_at ASC").
		Find(&order.Items).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetOrders(ctx context.Context, filter domain.OrderFilter) ([]*entities.Order, int64, error) {
	var orders []*entities.Order
	var count int64
	offset := (filter.Page - 1) * filter.Limit

	query := r.db.WithContext(ctx).Model(&entities.Order{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.LocationID != "" {
		query = query.Where("location_id = ?", filter.LocationID)
	}
	if filter.StaffID != "" {
		query = query.Where("staff_id = ?", filter.StaffID)
	}
	from, to := filter.Range.Bounds()
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at <= ?", *to)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Items").
		Order("created_at DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, count, nil
}

// UpdateStatusGuard writes the new status only if the row still holds from.
// completedAt is written only when non-nil.
func (r *orderRepository) UpdateStatusGuard(ctx context.Context, id uuid.UUID, from, to string, completedAt *time.Time) (bool, error) {
	updates := map[string]any{"status": to}
	if completedAt != nil {
		updates["completed_at"] = *completedAt
	}

	result := r.db.WithContext(ctx).
		Model(&entities.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *orderRepository) UpdateOrderAmounts(ctx context.Context, order *entities.Order) error {
	return r.db.WithContext(ctx).
		Model(order).
		Select("subtotal", "tax_amount", "discount_amount", "service_charge", "tip_amount", "total").
		Updates(order).Error
}

func (r *orderRepository) UpdatePayment(ctx context.Context, id uuid.UUID, method, status string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Order{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"payment_method": method,
			"payment_status": status,
		}).Error
}

func (r *orderRepository) GetMenuItemByID(ctx context.Context, id string) (*entities.MenuItem, error) {
	var item entities.MenuItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *orderRepository) CreateOrderItem(ctx context.Context, item *entities.OrderItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *orderRepository) GetOrderItemByID(ctx context.Context, id string) (*entities.OrderItem, error) {
	var item entities.OrderItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *orderRepository) UpdateOrderItemStatusGuard(ctx context.Context, item *entities.OrderItem, from string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.OrderItem{}).
		Where("id = ? AND status = ?", item.ID, from).
		Updates(map[string]any{
			"status":             item.Status,
			"sent_to_kitchen_at": item.SentToKitchenAt,
			"ready_at":           item.ReadyAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// GetOrderItemsWithMenu includes soft-deleted menu items so tax still resolves.
func (r *orderRepository) GetOrderItemsWithMenu(ctx context.Context, orderID uuid.UUID) ([]*entities.OrderItem, error) {
	var items []*entities.OrderItem
	if err := r.db.WithContext(ctx).
		Preload("MenuItem", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		}).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
