package billers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tiffinworks/pos-backend/pkg/auth"
	"github.com/tiffinworks/pos-backend/pkg/config"
	"github.com/tiffinworks/pos-backend/pkg/enums"
	pkgerrors "github.com/tiffinworks/pos-backend/pkg/errors"
)

func setupBillersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS billers (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  display_name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'staff',
  active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret-please-rotate",
		Issuer:            "tiffin-pos-test",
		ExpirationMinutes: 60,
	}
}

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(setupBillersTestDB(t)), testJWTConfig(), config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	require.NoError(t, err)
	return svc
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	coded := pkgerrors.As(err)
	require.NotNil(t, coded, "expected coded error, got %v", err)
	assert.Equal(t, code, coded.Code())
}

func TestCreateAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		Username: " Asha ",
		Password: "open-sesame",
		Role:     enums.BillerRoleManager,
	})
	require.NoError(t, err)
	assert.Equal(t, "asha", created.Username)
	assert.Equal(t, "asha", created.DisplayName)
	assert.NotEqual(t, "open-sesame", created.PasswordHash)

	result, err := svc.Login(ctx, "ASHA", "open-sesame")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.Equal(t, created.ID, result.Biller.ID)

	claims, err := auth.ParseAccessToken(testJWTConfig(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.BillerID)
	assert.Equal(t, enums.BillerRoleManager, claims.Role)
}

func TestLoginFailures(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Username: "asha", Password: "open-sesame"})
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "asha", "wrong")
		requireCode(t, err, pkgerrors.CodeUnauthorized)
	})

	t.Run("unknown username looks identical", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody", "open-sesame")
		requireCode(t, err, pkgerrors.CodeUnauthorized)
	})

	t.Run("disabled account", func(t *testing.T) {
		_, err := svc.SetActive(ctx, created.ID, false)
		require.NoError(t, err)
		_, err = svc.Login(ctx, "asha", "open-sesame")
		requireCode(t, err, pkgerrors.CodeForbidden)
	})

	t.Run("blank credentials", func(t *testing.T) {
		_, err := svc.Login(ctx, "", "")
		requireCode(t, err, pkgerrors.CodeValidation)
	})
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Username: "asha", Password: "short"})
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Create(ctx, CreateInput{Username: "asha", Password: "long-enough", Role: enums.BillerRole("owner")})
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Create(ctx, CreateInput{Username: "asha", Password: "long-enough"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Username: "Asha", Password: "long-enough"})
	requireCode(t, err, pkgerrors.CodeConflict)
}

func TestSetActiveUnknownID(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.SetActive(context.Background(), uuid.New(), true)
	requireCode(t, err, pkgerrors.CodeNotFound)
}
