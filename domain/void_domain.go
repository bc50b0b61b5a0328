package domain

import "time"

type VoidStatus string

const (
	VoidNone      VoidStatus = "none"
	VoidRequested VoidStatus = "requested"
	VoidApproved  VoidStatus = "approved"
	VoidRejected  VoidStatus = "rejected"

	RefundOriginalPayment = "original_payment"
	RefundStoreCredit     = "store_credit"
	RefundCash            = "cash"

	VoidActionRequest = "request"
	VoidActionApprove = "approve"
	VoidActionReject  = "reject"
)

var (
	MessageSuccessRequestVoid     = "void requested successfully"
	MessageSuccessApproveVoid     = "void approved successfully"
	MessageSuccessRejectVoid      = "void rejected successfully"
	MessageSuccessGetVoidAudit    = "void audit log retrieved successfully"
	MessageSuccessGetPendingVoids = "pending voids retrieved successfully"

	MessageFailedRequestVoid     = "failed to request void"
	MessageFailedApproveVoid     = "failed to approve void"
	MessageFailedRejectVoid      = "failed to reject void"
	MessageFailedGetVoidAudit    = "failed to retrieve void audit log"
	MessageFailedGetPendingVoids = "failed to retrieve pending voids"

	ErrVoidNotRequested     = NewError(KindInvalidState, "void was never requested for this order")
	ErrVoidAlreadyRequested = NewError(KindInvalidState, "void already requested for this order")
	ErrOrderNotVoidable     = NewError(KindInvalidState, "order cannot be voided in its current state")
	ErrVoidConflict         = NewError(KindInvalidState, "void state changed concurrently")
	ErrVoidPending          = NewError(KindInvalidState, "order has a pending void request")
)

type (
	RequestVoidRequest struct {
		Reason string `json:"reason" validate:"required,max=255"`
		Notes  string `json:"notes" validate:"omitempty,max=1000"`
	}

	ApproveVoidRequest struct {
		RefundMethod string `json:"refund_method" validate:"required,oneof=original_payment store_credit cash"`
		Notes        string `json:"notes" validate:"omitempty,max=1000"`
	}

	RejectVoidRequest struct {
		Notes string `json:"notes" validate:"omitempty,max=1000"`
	}

	VoidInfo struct {
		Status       string     `json:"status"`
		Reason       string     `json:"reason,omitempty"`
		Notes        string     `json:"notes,omitempty"`
		RequestedAt  *time.Time `json:"requested_at,omitempty"`
		RequestedBy  string     `json:"requested_by,omitempty"`
		ApprovedAt   *time.Time `json:"approved_at,omitempty"`
		ApprovedBy   string     `json:"approved_by,omitempty"`
		RejectedAt   *time.Time `json:"rejected_at,omitempty"`
		RejectedBy   string     `json:"rejected_by,omitempty"`
		RefundMethod string     `json:"refund_method,omitempty"`
	}

	VoidAuditEntry struct {
		ID           string    `json:"id"`
		OrderID      string    `json:"order_id"`
		Action       string    `json:"action"`
		FromStatus   string    `json:"from_status"`
		ToStatus     string    `json:"to_status"`
		Actor        string    `json:"actor"`
		Reason       string    `json:"reason,omitempty"`
		RefundMethod string    `json:"refund_method,omitempty"`
		Notes        string    `json:"notes,omitempty"`
		CreatedAt    time.Time `json:"created_at"`
	}

	VoidResult struct {
		Order *Order          `json:"order"`
		Audit *VoidAuditEntry `json:"audit"`
	}
)
