package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	MesaageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	ErrParseUUID      = NewError(KindInvalid, "failed to parse UUID")
	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
)

type (
	// Principal is the authenticated caller as asserted by the identity provider.
	Principal struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
	}

	// DateRange is inclusive on both ends; To covers the whole of its day.
	DateRange struct {
		From *time.Time `json:"date_from,omitempty"`
		To   *time.Time `json:"date_to,omitempty"`
	}

	Pagination struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
	}
)

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Bounds returns the effective [from, to] instants, with To moved to 23:59:59.999 of its day.
func (r DateRange) Bounds() (from, to *time.Time) {
	if r.From != nil {
		f := StartOfDay(*r.From)
		from = &f
	}
	if r.To != nil {
		t := EndOfDay(*r.To)
		to = &t
	}
	return from, to
}

// MaxReportDays caps the span of a report range so day-by-day trends stay bounded.
const MaxReportDays = 366

// Check rejects a range whose From is after To, and a closed range longer than
// maxDays when maxDays is positive.
func (r DateRange) Check(maxDays int) error {
	if r.From == nil || r.To == nil {
		return nil
	}
	from, to := StartOfDay(*r.From), StartOfDay(*r.To)
	if from.After(to) {
		return Errorf(ErrInvalid, "date_from must not be after date_to")
	}
	if days := int(to.Sub(from).Hours()/24) + 1; maxDays > 0 && days > maxDays {
		return Errorf(ErrInvalid, "date range spans %d days, at most %d allowed", days, maxDays)
	}
	return nil
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Millisecond)
}
