package billers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tiffinworks/pos-backend/pkg/auth"
	"github.com/tiffinworks/pos-backend/pkg/config"
	"github.com/tiffinworks/pos-backend/pkg/db"
	"github.com/tiffinworks/pos-backend/pkg/db/models"
	"github.com/tiffinworks/pos-backend/pkg/enums"
	pkgerrors "github.com/tiffinworks/pos-backend/pkg/errors"
	"github.com/tiffinworks/pos-backend/pkg/security"
)

// LoginResult carries the session token and the authenticated account.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Biller    *models.Biller
}

// CreateInput carries the fields for a new operator account.
type CreateInput struct {
	Username    string
	DisplayName string
	Password    string
	Role        enums.BillerRole
}

// Service authenticates operators and manages their accounts.
type Service interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Biller, error)
	List(ctx context.Context) ([]models.Biller, error)
	Create(ctx context.Context, input CreateInput) (*models.Biller, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.Biller, error)
}

type service struct {
	repo   BillerRepository
	jwtCfg config.JWTConfig
	pwCfg  config.PasswordConfig
	now    func() time.Time
}

// NewService builds the biller service.
func NewService(repo BillerRepository, jwtCfg config.JWTConfig, pwCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("biller repository required")
	}
	if jwtCfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	return &service{
		repo:   repo,
		jwtCfg: jwtCfg,
		pwCfg:  pwCfg,
		now:    time.Now,
	}, nil
}

// Login verifies credentials and mints a session token. Unknown usernames and
// wrong passwords return the same error so the response does not leak which
// accounts exist.
func (s *service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username and password are required")
	}

	biller, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load biller")
	}
	ok, err := security.VerifyPassword(password, biller.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	if !biller.Active {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account is disabled")
	}

	now := s.now()
	token, err := auth.MintAccessToken(s.jwtCfg, now, auth.AccessTokenPayload{
		BillerID: biller.ID,
		Role:     biller.Role,
		JTI:      uuid.NewString(),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to mint access token")
	}
	return &LoginResult{
		Token:     token,
		ExpiresAt: now.Add(time.Duration(s.jwtCfg.ExpirationMinutes) * time.Minute),
		Biller:    biller,
	}, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Biller, error) {
	biller, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "biller not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load biller")
	}
	return biller, nil
}

func (s *service) List(ctx context.Context) ([]models.Biller, error) {
	return s.repo.List(ctx)
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Biller, error) {
	username := strings.TrimSpace(strings.ToLower(input.Username))
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if len(input.Password) < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}
	role := input.Role
	if role == "" {
		role = enums.BillerRoleStaff
	}
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}
	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		displayName = username
	}

	hash, err := security.HashPassword(input.Password, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to hash password")
	}
	created, err := s.repo.Create(ctx, &models.Biller{
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to create biller")
	}
	return created, nil
}

// SetActive disables or re-enables an account. Disabling does not revoke
// already-issued tokens; the auth middleware rechecks Active on each request.
func (s *service) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.Biller, error) {
	biller, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	biller.Active = active
	updated, err := s.repo.Update(ctx, biller)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to update biller")
	}
	return updated, nil
}
