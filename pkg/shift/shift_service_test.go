package shift

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/entities"
	"Restaurant-POS-Backend/internal/utils/dbtest"
	"Restaurant-POS-Backend/pkg/logger"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newStaff(t *testing.T, db *gorm.DB, name, pin, rate string) *entities.Staff {
	t.Helper()
	hash, err := HashPin(pin)
	require.NoError(t, err)
	staff := &entities.Staff{
		Name:       name,
		Email:      name + "@example.com",
		Role:       domain.RoleUser,
		PinHash:    hash,
		HourlyRate: dbtest.Dec(t, rate),
		IsActive:   true,
	}
	require.NoError(t, db.Create(staff).Error)
	return staff
}

func newService(t *testing.T) (*gorm.DB, *shiftService, *clock) {
	db := dbtest.New(t)
	c := &clock{t: time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)}
	svc := NewShiftService(NewShiftRepository(db), logger.Discard()).(*shiftService)
	svc.now = c.now
	return db, svc, c
}

func TestClockInClockOut(t *testing.T) {
	db, svc, c := newService(t)
	ctx := context.Background()
	staff := newStaff(t, db, "maria", "2468", "18.50")
	location := dbtest.Location(t, db, "Downtown")

	in, err := svc.ClockIn(ctx, domain.ClockInRequest{StaffID: staff.ID.String(), Pin: "2468", LocationID: location.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, "maria", in.StaffName)
	assert.Nil(t, in.ClockOutAt)
	require.NotNil(t, in.LocationID)
	assert.Equal(t, location.ID.String(), *in.LocationID)
	assert.True(t, in.HourlyRate.Equal(decimal.RequireFromString("18.50")))

	_, err = svc.ClockIn(ctx, domain.ClockInRequest{StaffID: staff.ID.String(), Pin: "2468"})
	assert.ErrorIs(t, err, domain.ErrShiftAlreadyOpen)

	c.t = c.t.Add(7*time.Hour + 30*time.Minute)
	out, err := svc.ClockOut(ctx, domain.ClockOutRequest{StaffID: staff.ID.String(), Pin: "2468"})
	require.NoError(t, err)
	assert.Equal(t, in.ID, out.ID)
	require.NotNil(t, out.ClockOutAt)
	assert.Equal(t, "7.50", out.Hours.StringFixed(2))
	assert.Equal(t, "138.75", out.LabourCost.StringFixed(2))

	_, err = svc.ClockOut(ctx, domain.ClockOutRequest{StaffID: staff.ID.String(), Pin: "2468"})
	assert.ErrorIs(t, err, domain.ErrNoOpenShift)

	// a closed shift frees the staff member to clock in again
	_, err = svc.ClockIn(ctx, domain.ClockInRequest{StaffID: staff.ID.String(), Pin: "2468"})
	assert.NoError(t, err)
}

func TestClockInRejectsBadCredentials(t *testing.T) {
	db, svc, _ := newService(t)
	ctx := context.Background()
	staff := newStaff(t, db, "sam", "1357", "15")

	t.Run("wrong pin", func(t *testing.T) {
		_, err := svc.ClockIn(ctx, domain.ClockInRequest{StaffID: staff.ID.String(), Pin: "0000"})
		assert.ErrorIs(t, err, domain.ErrInvalidPin)
	})

	t.Run("unknown staff", func(t *testing.T) {
		_, err := svc.ClockIn(ctx, domain.ClockInRequest{StaffID: uuid.NewString(), Pin: "1357"})
		assert.ErrorIs(t, err, domain.ErrStaffNotFound)
	})

	t.Run("inactive staff", func(t *testing.T) {
		require.NoError(t, db.Model(&entities.Staff{}).Where("id = ?", staff.ID).Update("is_active", false).Error)
		_, err := svc.ClockIn(ctx, domain.ClockInRequest{StaffID: staff.ID.String(), Pin: "1357"})
		assert.ErrorIs(t, err, domain.ErrStaffNotFound)
	})

	var count int64
	require.NoError(t, db.Model(&entities.Shift{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListShifts(t *testing.T) {
	db, svc, c := newService(t)
	ctx := context.Background()
	ana := newStaff(t, db, "ana", "1111", "20")
	ben := newStaff(t, db, "ben", "2222", "20")

	_, err := svc.ClockIn(ctx, domain.ClockInRequest{StaffID: ana.ID.String(), Pin: "1111"})
	require.NoError(t, err)
	c.t = c.t.Add(time.Hour)
	_, err = svc.ClockIn(ctx, domain.ClockInRequest{StaffID: ben.ID.String(), Pin: "2222"})
	require.NoError(t, err)

	_, err = svc.ListShifts(ctx, domain.Principal{UserID: "u", Role: domain.RoleUser}, domain.ShiftFilter{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	admin := domain.Principal{UserID: "a", Role: domain.RoleAdmin}
	all, err := svc.ListShifts(ctx, admin, domain.ShiftFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "ben", all[0].StaffName, "newest first")

	mine, err := svc.ListShifts(ctx, admin, domain.ShiftFilter{StaffID: ana.ID.String()})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "ana", mine[0].StaffName)
}

func TestLabourFor(t *testing.T) {
	in := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	hours, cost := LabourFor(in, in.Add(90*time.Minute), decimal.NewFromInt(12))
	assert.Equal(t, "1.50", hours.StringFixed(2))
	assert.Equal(t, "18.00", cost.StringFixed(2))

	hours, cost = LabourFor(in, in.Add(-time.Hour), decimal.NewFromInt(12))
	assert.True(t, hours.IsZero())
	assert.True(t, cost.IsZero())
}
