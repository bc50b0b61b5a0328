package void

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/entities"
	"Restaurant-POS-Backend/pkg/events"
	"Restaurant-POS-Backend/pkg/logger"
	"Restaurant-POS-Backend/pkg/order"
	"context"
	"errors"
	"gorm.io/gorm"
	"time"
)

type (
	VoidService interface {
		RequestVoid(ctx context.Context, orderID string, req domain.RequestVoidRequest, actor domain.Principal) (*domain.VoidResult, error)
		ApproveVoid(ctx context.Context, orderID string, req domain.ApproveVoidRequest, actor domain.Principal) (*domain.VoidResult, error)
		RejectVoid(ctx context.Context, orderID string, req domain.RejectVoidRequest, actor domain.Principal) (*domain.VoidResult, error)
		GetVoidAudit(ctx context.Context, orderID string) ([]*domain.VoidAuditEntry, error)
		GetPendingVoids(ctx context.Context, actor domain.Principal) ([]*domain.Order, error)
	}

	voidService struct {
		voidRepository VoidRepository
		publisher      events.Publisher
		log            *logger.Logger
		now            func() time.Time
	}
)

func NewVoidService(voidRepository VoidRepository, publisher events.Publisher, log *logger.Logger) VoidService {
	return &voidService{
		voidRepository: voidRepository,
		publisher:      publisher,
		log:            log.WithComponent("void"),
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// RequestVoid is open to any authenticated staff member. A rejected request
// may be raised again.
func (s *voidService) RequestVoid(ctx context.Context, orderID string, req domain.RequestVoidRequest, actor domain.Principal) (*domain.VoidResult, error) {
	return s.transition(ctx, orderID, actor, events.OrderVoidRequested, func(o *entities.Order, now time.Time) (map[string]any, *entities.VoidAuditLog, error) {
		switch domain.OrderStatus(o.Status) {
		case domain.OrderVoided, domain.OrderCancelled:
			return nil, nil, domain.Errorf(domain.ErrOrderNotVoidable, "order is %s", o.Status)
		}
		switch domain.VoidStatus(o.VoidStatus) {
		case domain.VoidRequested:
			return nil, nil, domain.ErrVoidAlreadyRequested
		case domain.VoidApproved:
			return nil, nil, domain.Errorf(domain.ErrOrderNotVoidable, "void already approved")
		}

		updates := map[string]any{
			"void_status":       string(domain.VoidRequested),
			"void_reason":       req.Reason,
			"void_notes":        req.Notes,
			"void_requested_at": now,
			"void_requested_by": actor.UserID,
			"void_rejected_at":  nil,
			"void_rejected_by":  "",
		}
		entry := &entities.VoidAuditLog{
			Action:   domain.VoidActionRequest,
			ToStatus: string(domain.VoidRequested),
			Reason:   req.Reason,
			Notes:    req.Notes,
		}
		return updates, entry, nil
	})
}

// ApproveVoid voids the order and records how it is refunded. Stock already
// deducted at completion is not restored.
func (s *voidService) ApproveVoid(ctx context.Context, orderID string, req domain.ApproveVoidRequest, actor domain.Principal) (*domain.VoidResult, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	return s.transition(ctx, orderID, actor, events.OrderVoidApproved, func(o *entities.Order, now time.Time) (map[string]any, *entities.VoidAuditLog, error) {
		switch domain.OrderStatus(o.Status) {
		case domain.OrderVoided, domain.OrderCancelled:
			return nil, nil, domain.Errorf(domain.ErrOrderNotVoidable, "order is %s", o.Status)
		}
		if domain.VoidStatus(o.VoidStatus) != domain.VoidRequested {
			return nil, nil, domain.ErrVoidNotRequested
		}

		updates := map[string]any{
			"status":           string(domain.OrderVoided),
			"void_status":      string(domain.VoidApproved),
			"void_approved_at": now,
			"void_approved_by": actor.UserID,
			"refund_method":    req.RefundMethod,
		}
		if o.PaymentStatus == string(domain.PaymentPaid) {
			updates["payment_status"] = string(domain.PaymentRefunded)
		}
		entry := &entities.VoidAuditLog{
			Action:       domain.VoidActionApprove,
			ToStatus:     string(domain.VoidApproved),
			Reason:       o.VoidReason,
			RefundMethod: req.RefundMethod,
			Notes:        req.Notes,
		}
		return updates, entry, nil
	})
}

func (s *voidService) RejectVoid(ctx context.Context, orderID string, req domain.RejectVoidRequest, actor domain.Principal) (*domain.VoidResult, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	return s.transition(ctx, orderID, actor, events.OrderVoidRejected, func(o *entities.Order, now time.Time) (map[string]any, *entities.VoidAuditLog, error) {
		if domain.VoidStatus(o.VoidStatus) != domain.VoidRequested {
			return nil, nil, domain.ErrVoidNotRequested
		}

		updates := map[string]any{
			"void_status":      string(domain.VoidRejected),
			"void_rejected_at": now,
			"void_rejected_by": actor.UserID,
		}
		entry := &entities.VoidAuditLog{
			Action:   domain.VoidActionReject,
			ToStatus: string(domain.VoidRejected),
			Reason:   o.VoidReason,
			Notes:    req.Notes,
		}
		return updates, entry, nil
	})
}

func (s *voidService) GetVoidAudit(ctx context.Context, orderID string) ([]*domain.VoidAuditEntry, error) {
	if _, err := s.voidRepository.GetOrderByID(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	entries, err := s.voidRepository.GetAuditLogs(ctx, orderID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.VoidAuditEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, ToVoidAuditEntry(entry))
	}
	return result, nil
}

func (s *voidService) GetPendingVoids(ctx context.Context, actor domain.Principal) ([]*domain.Order, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	orders, err := s.voidRepository.GetPendingVoids(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, order.ToOrder(o))
	}
	return result, nil
}

type transitionFunc func(o *entities.Order, now time.Time) (map[string]any, *entities.VoidAuditLog, error)

// transition applies one void state change and its audit row in a single
// transaction, guarded on the void status read under lock.
func (s *voidService) transition(ctx context.Context, orderID string, actor domain.Principal, routingKey string, fn transitionFunc) (*domain.VoidResult, error) {
	var entry *entities.VoidAuditLog
	err := s.voidRepository.Transaction(ctx, func(repo VoidRepository) error {
		o, err := repo.LockOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return err
		}

		now := s.now()
		updates, audit, err := fn(o, now)
		if err != nil {
			return err
		}

		ok, err := repo.UpdateVoidGuard(ctx, o.ID, o.VoidStatus, updates)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrVoidConflict
		}

		audit.OrderID = o.ID
		audit.FromStatus = o.VoidStatus
		audit.Actor = actor.UserID
		audit.CreatedAt = now
		if err := repo.CreateAuditLog(ctx, audit); err != nil {
			return err
		}
		entry = audit
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.voidRepository.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	event := domain.OrderEvent{
		OrderID:     updated.ID.String(),
		OrderNumber: updated.OrderNumber,
		Status:      updated.Status,
		VoidStatus:  updated.VoidStatus,
		Actor:       actor.UserID,
		Total:       updated.Total.StringFixed(2),
		OccurredAt:  entry.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		s.log.Error("event publish failed", "routing_key", routingKey, "order_id", event.OrderID, "error", err)
	}

	return &domain.VoidResult{
		Order: order.ToOrder(updated),
		Audit: ToVoidAuditEntry(entry),
	}, nil
}

func ToVoidAuditEntry(entry *entities.VoidAuditLog) *domain.VoidAuditEntry {
	return &domain.VoidAuditEntry{
		ID:           entry.ID.String(),
		OrderID:      entry.OrderID.String(),
		Action:       entry.Action,
		FromStatus:   entry.FromStatus,
		ToStatus:     entry.ToStatus,
		Actor:        entry.Actor,
		Reason:       entry.Reason,
		RefundMethod: entry.RefundMethod,
		Notes:        entry.Notes,
		CreatedAt:    entry.CreatedAt,
	}
}
