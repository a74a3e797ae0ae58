package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/tiffinworks/pos-backend/pkg/auth"
	"github.com/tiffinworks/pos-backend/pkg/config"
	"github.com/tiffinworks/pos-backend/pkg/db/models"
	"github.com/tiffinworks/pos-backend/pkg/enums"
)

type stubBillerChecker struct {
	biller *models.Biller
	err    error
}

func (s stubBillerChecker) GetByID(ctx context.Context, id uuid.UUID) (*models.Biller, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.biller, nil
}

func testJWT() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}
}

func activeChecker(id uuid.UUID, role enums.BillerRole) stubBillerChecker {
	return stubBillerChecker{biller: &models.Biller{ID: id, Role: role, Active: true}}
}

func mintTestToken(t *testing.T, cfg config.JWTConfig, billerID uuid.UUID, role enums.BillerRole) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg, time.Now(), pkgauth.AccessTokenPayload{BillerID: billerID, Role: role})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthRejectsMissingToken(t *testing.T) {
	handler := Auth(testJWT(), activeChecker(uuid.New(), enums.BillerRoleStaff), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	handler := Auth(testJWT(), activeChecker(uuid.New(), enums.BillerRoleStaff), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthSeedsBillerContext(t *testing.T) {
	cfg := testJWT()
	billerID := uuid.New()

	var captured struct {
		biller uuid.UUID
		role   string
	}
	handler := Auth(cfg, activeChecker(billerID, enums.BillerRoleManager), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.biller = BillerIDFromContext(r.Context())
		captured.role = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, cfg, billerID, enums.BillerRoleManager))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured.biller != billerID {
		t.Fatalf("expected biller %s got %s", billerID, captured.biller)
	}
	if captured.role != enums.BillerRoleManager.String() {
		t.Fatalf("expected manager role got %s", captured.role)
	}
}

func TestAuthRejectsDisabledBiller(t *testing.T) {
	cfg := testJWT()
	billerID := uuid.New()
	checker := stubBillerChecker{biller: &models.Biller{ID: billerID, Role: enums.BillerRoleStaff, Active: false}}

	handler := Auth(cfg, checker, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, cfg, billerID, enums.BillerRoleStaff))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestAuthRejectsUnknownBiller(t *testing.T) {
	cfg := testJWT()
	billerID := uuid.New()
	checker := stubBillerChecker{err: fmt.Errorf("no such biller")}

	handler := Auth(cfg, checker, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, cfg, billerID, enums.BillerRoleStaff))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRequireRoleBlocksOtherRoles(t *testing.T) {
	handler := RequireRole(enums.BillerRoleManager.String(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithBiller(req.Context(), uuid.New(), enums.BillerRoleStaff.String()))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithBiller(req.Context(), uuid.New(), enums.BillerRoleManager.String()))
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
