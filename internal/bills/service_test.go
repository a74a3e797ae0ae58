package bills

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tiffinworks/pos-backend/pkg/db/models"
	"github.com/tiffinworks/pos-backend/pkg/enums"
	pkgerrors "github.com/tiffinworks/pos-backend/pkg/errors"
	"github.com/tiffinworks/pos-backend/pkg/pagination"
)

func setupBillsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	billsDDL := `
CREATE TABLE IF NOT EXISTS bills (
  id TEXT PRIMARY KEY,
  biller_id TEXT NOT NULL,
  subtotal NUMERIC NOT NULL,
  tax NUMERIC NOT NULL DEFAULT 0,
  discount NUMERIC NOT NULL DEFAULT 0,
  total NUMERIC NOT NULL,
  discount_code TEXT,
  status TEXT NOT NULL DEFAULT 'completed',
  whatsapp_number TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	itemsDDL := `
CREATE TABLE IF NOT EXISTS bill_items (
  id TEXT PRIMARY KEY,
  bill_id TEXT NOT NULL,
  menu_item_id TEXT NOT NULL,
  item_name TEXT NOT NULL,
  price NUMERIC NOT NULL,
  quantity INTEGER NOT NULL,
  taxable INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME
);`
	for _, ddl := range []string{billsDDL, itemsDDL} {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

type gormTxRunner struct {
	db *gorm.DB
}

func (r *gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db := setupBillsTestDB(t)
	svc, err := NewService(NewRepository(db), &gormTxRunner{db: db})
	require.NoError(t, err)
	return svc, db
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	coded := pkgerrors.As(err)
	require.NotNil(t, coded, "expected coded error, got %v", err)
	assert.Equal(t, code, coded.Code())
}

func sampleBill(billerID uuid.UUID) *models.Bill {
	return &models.Bill{
		BillerID: billerID,
		Subtotal: decimal.RequireFromString("10.00"),
		Tax:      decimal.Zero,
		Discount: decimal.RequireFromString("2.00"),
		Total:    decimal.RequireFromString("8.00"),
		Status:   enums.BillStatusCompleted,
		Items: []models.BillItem{
			{MenuItemID: uuid.New(), ItemName: "Chai", Price: decimal.RequireFromString("2.50"), Quantity: 4, Taxable: true},
		},
	}
}

func TestRecordWritesHeaderAndItems(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	recorded, err := svc.Record(ctx, sampleBill(uuid.New()))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, recorded.ID)

	loaded, err := svc.GetByID(ctx, recorded.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "Chai", loaded.Items[0].ItemName)
	assert.Equal(t, recorded.ID, loaded.Items[0].BillID)
	assert.Equal(t, "8", loaded.Total.String())
}

func TestRecordValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	t.Run("no items", func(t *testing.T) {
		bill := sampleBill(uuid.New())
		bill.Items = nil
		_, err := svc.Record(ctx, bill)
		requireCode(t, err, pkgerrors.CodeValidation)
	})

	t.Run("missing biller", func(t *testing.T) {
		_, err := svc.Record(ctx, sampleBill(uuid.Nil))
		requireCode(t, err, pkgerrors.CodeValidation)
	})

	t.Run("negative total", func(t *testing.T) {
		bill := sampleBill(uuid.New())
		bill.Total = decimal.RequireFromString("-1.00")
		_, err := svc.Record(ctx, bill)
		requireCode(t, err, pkgerrors.CodeValidation)
	})
}

func TestRecordRollsBackHeaderOnItemFailure(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	// remove the items table so the bulk insert fails mid-transaction
	require.NoError(t, db.Exec(`DROP TABLE bill_items`).Error)

	_, err := svc.Record(ctx, sampleBill(uuid.New()))
	requireCode(t, err, pkgerrors.CodeDependency)

	var headerCount int64
	require.NoError(t, db.Model(&models.Bill{}).Count(&headerCount).Error)
	assert.Zero(t, headerCount, "header must not survive a failed item insert")
}

func TestListPagination(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	billerID := uuid.New()

	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		bill := sampleBill(billerID)
		recorded, err := svc.Record(ctx, bill)
		require.NoError(t, err)
		// push created_at apart so the keyset ordering is deterministic
		require.NoError(t, db.Model(&models.Bill{}).
			Where("id = ?", recorded.ID).
			Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	first, err := svc.List(ctx, ListFilter{BillerID: &billerID}, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Bills, 2)
	require.NotEmpty(t, first.NextCursor)
	assert.True(t, first.Bills[0].CreatedAt.After(first.Bills[1].CreatedAt))

	second, err := svc.List(ctx, ListFilter{BillerID: &billerID}, pagination.Params{Limit: 2, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Bills, 2)
	assert.True(t, first.Bills[1].CreatedAt.After(second.Bills[0].CreatedAt))

	third, err := svc.List(ctx, ListFilter{BillerID: &billerID}, pagination.Params{Limit: 2, Cursor: second.NextCursor})
	require.NoError(t, err)
	require.Len(t, third.Bills, 1)
	assert.Empty(t, third.NextCursor)

	t.Run("invalid cursor", func(t *testing.T) {
		_, err := svc.List(ctx, ListFilter{}, pagination.Params{Cursor: "not-base64!!"})
		requireCode(t, err, pkgerrors.CodeValidation)
	})

	t.Run("date range filter", func(t *testing.T) {
		from := base.Add(3 * time.Minute)
		page, err := svc.List(ctx, ListFilter{BillerID: &billerID, From: &from}, pagination.Params{})
		require.NoError(t, err)
		assert.Len(t, page.Bills, 2)
	})
}

func TestDailyStats(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	within := day.Add(10 * time.Hour)

	for i := 0; i < 3; i++ {
		recorded, err := svc.Record(ctx, sampleBill(uuid.New()))
		require.NoError(t, err)
		require.NoError(t, db.Model(&models.Bill{}).
			Where("id = ?", recorded.ID).
			Update("created_at", within).Error)
	}

	// a bill outside the window must not count
	outside, err := svc.Record(ctx, sampleBill(uuid.New()))
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Bill{}).
		Where("id = ?", outside.ID).
		Update("created_at", day.AddDate(0, 0, 2)).Error)

	stats, err := svc.DailyStats(ctx, within)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.BillCount)
	assert.Equal(t, "24.00", stats.Gross.StringFixed(2))
	assert.Equal(t, "6.00", stats.Discount.StringFixed(2))
	assert.Equal(t, int64(12), stats.ItemCount)
}
