package zreport

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/entities"
	"Restaurant-POS-Backend/internal/utils/dbtest"
	"Restaurant-POS-Backend/internal/utils/storage"
	"Restaurant-POS-Backend/pkg/logger"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	admin   = domain.Principal{UserID: "manager-1", Role: domain.RoleAdmin}
	cashier = domain.Principal{UserID: "cashier-1", Role: domain.RoleUser}
)

// memoryStore is an in-memory object store.
type memoryStore struct {
	objects map[string]any
	failPut bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: make(map[string]any)}
}

func (m *memoryStore) Enabled() bool { return true }

func (m *memoryStore) UploadJSON(_ context.Context, key string, v any) (string, error) {
	if m.failPut {
		return "", errors.New("bucket unavailable")
	}
	m.objects[key] = v
	return "https://bucket.example.com/" + key, nil
}

func (m *memoryStore) DeleteFile(_ context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memoryStore) GetPublicLinkKey(key string) string { return "https://bucket.example.com/" + key }

func (m *memoryStore) GetObjectKeyFromLink(link string) string {
	return strings.TrimPrefix(link, "https://bucket.example.com/")
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func order(status, method, subtotal, tax, tip, discount, total string, at time.Time) *entities.Order {
	return &entities.Order{
		Status:         status,
		PaymentMethod:  method,
		Subtotal:       dec(subtotal),
		TaxAmount:      dec(tax),
		TipAmount:      dec(tip),
		DiscountAmount: dec(discount),
		Total:          dec(total),
		Timestamp:      entities.Timestamp{CreatedAt: at},
	}
}

func TestSummarize(t *testing.T) {
	at := time.Date(2026, time.March, 2, 13, 0, 0, 0, time.UTC)
	orders := []*entities.Order{
		order("completed", "card", "20.00", "2.00", "3.00", "0", "25.00", at),
		order("completed", "cash", "10.00", "1.00", "0", "1.00", "10.00", at),
		order("completed", "card", "5.00", "0.50", "0", "0", "5.50", at),
		order("completed", "", "4.00", "0", "0", "0", "4.00", at),
		order("voided", "card", "99.00", "0", "0", "0", "99.00", at),
	}

	report := Summarize(orders)
	assert.Equal(t, 4, report.OrderCount)
	assert.Equal(t, 1, report.VoidedCount)
	assert.Equal(t, "44.50", report.GrossSales.StringFixed(2))
	assert.Equal(t, "39.00", report.NetSales.StringFixed(2))
	assert.Equal(t, "3.50", report.TaxTotal.StringFixed(2))
	assert.Equal(t, "3.00", report.TipTotal.StringFixed(2))
	assert.Equal(t, "1.00", report.DiscountTotal.StringFixed(2))

	payments := report.Payments.Data()
	require.Len(t, payments, 3)
	assert.Equal(t, "card", payments[0].Method)
	assert.Equal(t, 2, payments[0].Orders)
	assert.Equal(t, "30.50", payments[0].Amount.StringFixed(2))
	assert.Equal(t, "cash", payments[1].Method)
	assert.Equal(t, unrecordedPayment, payments[2].Method)

	empty := Summarize(nil)
	assert.Zero(t, empty.OrderCount)
	assert.True(t, empty.GrossSales.IsZero())
	assert.Empty(t, empty.Payments.Data())
}

func seedDay(t *testing.T, db *gorm.DB, location *entities.Location) {
	t.Helper()
	item := dbtest.MenuItem(t, db, "Burger", "12.00", "4.00", nil)
	at := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
	dbtest.CompletedOrder(t, db, at, location, dbtest.Line{Item: item, Qty: 2})
	dbtest.CompletedOrder(t, db, at.Add(time.Hour), location, dbtest.Line{Item: item, Qty: 1})
	// outside the business day
	dbtest.CompletedOrder(t, db, at.AddDate(0, 0, 1), location, dbtest.Line{Item: item, Qty: 5})
}

func TestGenerateZReport(t *testing.T) {
	db := dbtest.New(t)
	location := dbtest.Location(t, db, "Downtown")
	seedDay(t, db, location)

	store := newMemoryStore()
	svc := NewZReportService(NewZReportRepository(db), store, logger.Discard())
	ctx := context.Background()
	req := domain.GenerateZReportRequest{Date: "2026-03-02", LocationID: location.ID.String()}

	_, err := svc.GenerateZReport(ctx, cashier, req)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.GenerateZReport(ctx, admin, domain.GenerateZReportRequest{Date: "02/03/2026"})
	assert.Equal(t, domain.KindInvalid, domain.KindOf(err))

	first, err := svc.GenerateZReport(ctx, admin, req)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", first.BusinessDate)
	assert.Equal(t, 2, first.OrderCount)
	assert.Equal(t, "36.00", first.GrossSales.StringFixed(2))
	assert.Equal(t, "manager-1", first.GeneratedBy)
	require.NotNil(t, first.LocationID)
	assert.Equal(t, location.ID.String(), *first.LocationID)

	wantKey := "z-reports/" + location.ID.String() + "/2026-03-02-" + first.ID + ".json"
	assert.Equal(t, wantKey, first.ArchiveKey)
	assert.Contains(t, store.objects, wantKey)

	// regenerating replaces the stored report
	second, err := svc.GenerateZReport(ctx, admin, req)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Unscoped().Model(&entities.ZReport{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	from := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)
	reports, err := svc.ListZReports(ctx, domain.DateRange{From: &from, To: &to}, location.ID.String())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, second.ID, reports[0].ID)
}

func TestGenerateZReportArchiveFailureKeepsReport(t *testing.T) {
	db := dbtest.New(t)
	seedDay(t, db, nil)

	store := newMemoryStore()
	store.failPut = true
	svc := NewZReportService(NewZReportRepository(db), store, logger.Discard())

	report, err := svc.GenerateZReport(context.Background(), admin, domain.GenerateZReportRequest{Date: "2026-03-02"})
	require.NoError(t, err)
	assert.Empty(t, report.ArchiveKey)
	assert.Nil(t, report.LocationID)
	assert.Equal(t, 2, report.OrderCount)
}

func TestGenerateZReportWithoutStorage(t *testing.T) {
	db := dbtest.New(t)
	seedDay(t, db, nil)

	// no bucket configured
	svc := NewZReportService(NewZReportRepository(db), storage.NewAwsS3(), logger.Discard())
	report, err := svc.GenerateZReport(context.Background(), admin, domain.GenerateZReportRequest{Date: "2026-03-02"})
	require.NoError(t, err)
	assert.Empty(t, report.ArchiveKey)
}

func TestDeleteZReport(t *testing.T) {
	db := dbtest.New(t)
	seedDay(t, db, nil)

	store := newMemoryStore()
	svc := NewZReportService(NewZReportRepository(db), store, logger.Discard())
	ctx := context.Background()

	report, err := svc.GenerateZReport(ctx, admin, domain.GenerateZReportRequest{Date: "2026-03-02"})
	require.NoError(t, err)
	require.Len(t, store.objects, 1)

	assert.ErrorIs(t, svc.DeleteZReport(ctx, cashier, report.ID), domain.ErrForbidden)

	require.NoError(t, svc.DeleteZReport(ctx, admin, report.ID))
	assert.Empty(t, store.objects)

	assert.ErrorIs(t, svc.DeleteZReport(ctx, admin, report.ID), domain.ErrZReportNotFound)

	reports, err := svc.ListZReports(ctx, domain.DateRange{}, "")
	require.NoError(t, err)
	assert.Empty(t, reports)
}

// staleRepository skips the delete, as a generation racing another one would
// see no existing row.
type staleRepository struct {
	ZReportRepository
}

func (r staleRepository) Transaction(ctx context.Context, fn func(repo ZReportRepository) error) error {
	return r.ZReportRepository.Transaction(ctx, func(repo ZReportRepository) error {
		return fn(staleRepository{repo})
	})
}

func (staleRepository) DeleteForDate(context.Context, time.Time, string) error { return nil }

func TestGenerateZReportUniquePerDayAndLocation(t *testing.T) {
	db := dbtest.New(t)
	location := dbtest.Location(t, db, "Downtown")
	seedDay(t, db, location)
	ctx := context.Background()
	repo := NewZReportRepository(db)

	all, err := NewZReportService(repo, newMemoryStore(), logger.Discard()).
		GenerateZReport(ctx, admin, domain.GenerateZReportRequest{Date: "2026-03-02"})
	require.NoError(t, err)

	racing := NewZReportService(staleRepository{repo}, newMemoryStore(), logger.Discard())

	_, err = racing.GenerateZReport(ctx, admin, domain.GenerateZReportRequest{Date: "2026-03-02"})
	assert.ErrorIs(t, err, domain.ErrZReportConflict)
	assert.Equal(t, domain.KindInvalidState, domain.KindOf(err))

	// a location report for the same day is a different key
	scoped, err := racing.GenerateZReport(ctx, admin, domain.GenerateZReportRequest{Date: "2026-03-02", LocationID: location.ID.String()})
	require.NoError(t, err)
	_, err = racing.GenerateZReport(ctx, admin, domain.GenerateZReportRequest{Date: "2026-03-02", LocationID: strings.ToUpper(location.ID.String())})
	assert.ErrorIs(t, err, domain.ErrZReportConflict)

	var ids []string
	require.NoError(t, db.Unscoped().Model(&entities.ZReport{}).Order("scope_key").Pluck("id", &ids).Error)
	assert.ElementsMatch(t, []string{all.ID, scoped.ID}, ids)
}
