package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessClockIn   = "clocked in successfully"
	MessageSuccessClockOut  = "clocked out successfully"
	MessageSuccessGetShifts = "shifts retrieved successfully"

	MessageFailedClockIn   = "failed to clock in"
	MessageFailedClockOut  = "failed to clock out"
	MessageFailedGetShifts = "failed to retrieve shifts"

	ErrStaffNotFound    = NewError(KindNotFound, "staff not found")
	ErrInvalidPin       = NewError(KindForbidden, "invalid pin")
	ErrShiftAlreadyOpen = NewError(KindInvalidState, "staff already has an open shift")
	ErrNoOpenShift      = NewError(KindInvalidState, "staff has no open shift")
)

type (
	ClockInRequest struct {
		StaffID    string `json:"staff_id" validate:"required,uuid"`
		Pin        string `json:"pin" validate:"required,min=4,max=12"`
		LocationID string `json:"location_id" validate:"omitempty,uuid"`
	}

	ClockOutRequest struct {
		StaffID string `json:"staff_id" validate:"required,uuid"`
		Pin     string `json:"pin" validate:"required,min=4,max=12"`
	}

	ShiftFilter struct {
		Range      DateRange
		StaffID    string
		LocationID string
	}

	Shift struct {
		ID         string          `json:"id"`
		StaffID    string          `json:"staff_id"`
		StaffName  string          `json:"staff_name,omitempty"`
		LocationID *string         `json:"location_id,omitempty"`
		ClockInAt  time.Time       `json:"clock_in_at"`
		ClockOutAt *time.Time      `json:"clock_out_at,omitempty"`
		HourlyRate decimal.Decimal `json:"hourly_rate"`
		Hours      decimal.Decimal `json:"hours"`
		LabourCost decimal.Decimal `json:"labour_cost"`
	}
)
