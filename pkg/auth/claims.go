package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tiffinworks/pos-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	BillerID uuid.UUID
	Role     enums.BillerRole
	JTI      string
}

// AccessTokenClaims represents the typed JWT issued to biller sessions.
type AccessTokenClaims struct {
	BillerID uuid.UUID        `json:"biller_id"`
	Role     enums.BillerRole `json:"role"`
	jwt.RegisteredClaims
}
