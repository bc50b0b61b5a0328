package shift

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/entities"
	"Restaurant-POS-Backend/pkg/logger"
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"time"
)

type (
	ShiftService interface {
		ClockIn(ctx context.Context, req domain.ClockInRequest) (*domain.Shift, error)
		ClockOut(ctx context.Context, req domain.ClockOutRequest) (*domain.Shift, error)
		ListShifts(ctx context.Context, principal domain.Principal, filter domain.ShiftFilter) ([]*domain.Shift, error)
	}

	shiftService struct {
		shiftRepository ShiftRepository
		log             *logger.Logger
		now             func() time.Time
	}
)

func NewShiftService(shiftRepository ShiftRepository, log *logger.Logger) ShiftService {
	return &shiftService{
		shiftRepository: shiftRepository,
		log:             log.WithComponent("shift"),
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// HashPin is used when staff records are provisioned.
func HashPin(pin string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *shiftService) ClockIn(ctx context.Context, req domain.ClockInRequest) (*domain.Shift, error) {
	var shiftID string
	err := s.shiftRepository.Transaction(ctx, func(repo ShiftRepository) error {
		staff, err := s.authenticate(ctx, repo, req.StaffID, req.Pin)
		if err != nil {
			return err
		}

		if _, err := repo.GetOpenShift(ctx, req.StaffID); err == nil {
			return domain.ErrShiftAlreadyOpen
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		shift := &entities.Shift{
			StaffID:    staff.ID,
			LocationID: staff.LocationID,
			ClockInAt:  s.now(),
			HourlyRate: staff.HourlyRate,
		}
		if req.LocationID != "" {
			locationID, err := uuid.Parse(req.LocationID)
			if err != nil {
				return domain.ErrParseUUID
			}
			shift.LocationID = &locationID
		}
		if err := repo.CreateShift(ctx, shift); err != nil {
			return err
		}
		shiftID = shift.ID.String()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.getShift(ctx, shiftID)
}

func (s *shiftService) ClockOut(ctx context.Context, req domain.ClockOutRequest) (*domain.Shift, error) {
	var shiftID string
	err := s.shiftRepository.Transaction(ctx, func(repo ShiftRepository) error {
		if _, err := s.authenticate(ctx, repo, req.StaffID, req.Pin); err != nil {
			return err
		}

		open, err := repo.GetOpenShift(ctx, req.StaffID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNoOpenShift
			}
			return err
		}

		clockOut := s.now()
		hours, cost := LabourFor(open.ClockInAt, clockOut, open.HourlyRate)
		if err := repo.CloseShift(ctx, open.ID.String(), clockOut, hours, cost); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNoOpenShift
			}
			return err
		}
		shiftID = open.ID.String()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.getShift(ctx, shiftID)
}

func (s *shiftService) ListShifts(ctx context.Context, principal domain.Principal, filter domain.ShiftFilter) ([]*domain.Shift, error) {
	if !principal.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	shifts, err := s.shiftRepository.GetShifts(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := make([]*domain.Shift, 0, len(shifts))
	for _, shift := range shifts {
		res = append(res, ToShift(shift))
	}
	return res, nil
}

// LabourFor returns worked hours and their cost, both rounded to 2dp.
func LabourFor(clockIn, clockOut time.Time, hourlyRate decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	worked := clockOut.Sub(clockIn)
	if worked < 0 {
		worked = 0
	}
	hours := decimal.NewFromFloat(worked.Hours()).Round(2)
	return hours, domain.RoundMoney(hours.Mul(hourlyRate))
}

func (s *shiftService) authenticate(ctx context.Context, repo ShiftRepository, staffID, pin string) (*entities.Staff, error) {
	staff, err := repo.LockStaff(ctx, staffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStaffNotFound
		}
		return nil, err
	}
	if !staff.IsActive {
		return nil, domain.ErrStaffNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.PinHash), []byte(pin)); err != nil {
		s.log.Warn("pin rejected", "staff_id", staffID)
		return nil, domain.ErrInvalidPin
	}
	return staff, nil
}

func (s *shiftService) getShift(ctx context.Context, shiftID string) (*domain.Shift, error) {
	shift, err := s.shiftRepository.GetShiftByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	return ToShift(shift), nil
}

func ToShift(shift *entities.Shift) *domain.Shift {
	res := &domain.Shift{
		ID:         shift.ID.String(),
		StaffID:    shift.StaffID.String(),
		ClockInAt:  shift.ClockInAt,
		ClockOutAt: shift.ClockOutAt,
		HourlyRate: shift.HourlyRate,
		Hours:      shift.Hours,
		LabourCost: shift.LabourCost,
	}
	if shift.LocationID != nil {
		id := shift.LocationID.String()
		res.LocationID = &id
	}
	if shift.Staff != nil {
		res.StaffName = shift.Staff.Name
	}
	return res
}
