package customers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/tiffinworks/pos-backend/pkg/errors"
)

func setupCustomersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS customers (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  phone TEXT NOT NULL UNIQUE,
  whatsapp_opt_in INTEGER NOT NULL DEFAULT 0,
  birthday DATE,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(setupCustomersTestDB(t)))
	require.NoError(t, err)
	return svc
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	coded := pkgerrors.As(err)
	require.NotNil(t, coded, "expected coded error, got %v", err)
	assert.Equal(t, code, coded.Code())
}

func date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestCustomerLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	optIn := true
	created, err := svc.Create(ctx, CustomerInput{
		Name:          " Priya Sharma ",
		Phone:         "+15551234567",
		WhatsappOptIn: &optIn,
		Birthday:      date(1990, time.June, 12),
	})
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", created.Name)
	assert.True(t, created.WhatsappOptIn)

	t.Run("duplicate phone rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, CustomerInput{Name: "Other", Phone: "+15551234567"})
		requireCode(t, err, pkgerrors.CodeConflict)
	})

	updated, err := svc.Update(ctx, created.ID, CustomerInput{
		Name:  "Priya S",
		Phone: "+15557654321",
	})
	require.NoError(t, err)
	assert.Equal(t, "Priya S", updated.Name)
	assert.Nil(t, updated.Birthday)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CustomerInput{Name: "  ", Phone: "+15551234567"})
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Create(ctx, CustomerInput{Name: "No Phone", Phone: " "})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestUpcomingBirthdays(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	now := time.Date(2026, time.December, 28, 15, 0, 0, 0, time.UTC)

	mustCreate := func(name, phone string, birthday *time.Time) {
		t.Helper()
		_, err := svc.Create(ctx, CustomerInput{Name: name, Phone: phone, Birthday: birthday})
		require.NoError(t, err)
	}

	mustCreate("Tomorrow", "+10000000001", date(1985, time.December, 29))
	mustCreate("Year Wrap", "+10000000002", date(1992, time.January, 3))
	mustCreate("Too Far", "+10000000003", date(1990, time.February, 20))
	mustCreate("No Birthday", "+10000000004", nil)
	mustCreate("Today", "+10000000005", date(2000, time.December, 28))

	entries, err := svc.UpcomingBirthdays(ctx, now, 7)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Today", entries[0].Customer.Name)
	assert.Equal(t, "Tomorrow", entries[1].Customer.Name)
	// the January birthday wraps across the year boundary
	assert.Equal(t, "Year Wrap", entries[2].Customer.Name)
	assert.Equal(t, 2027, entries[2].Next.Year())

	t.Run("zero window is birthdays today only", func(t *testing.T) {
		entries, err := svc.UpcomingBirthdays(ctx, now, 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Today", entries[0].Customer.Name)
	})

	t.Run("negative window rejected", func(t *testing.T) {
		_, err := svc.UpcomingBirthdays(ctx, now, -1)
		requireCode(t, err, pkgerrors.CodeValidation)
	})
}
