package validators

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	pkgerrors "github.com/tiffinworks/pos-backend/pkg/errors"
)

// ParseUUIDField parses a required uuid carried in a JSON body field.
func ParseUUIDField(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "field must be a uuid").WithDetails(map[string]any{"field": field})
	}
	return id, nil
}

// ParseDateField parses a YYYY-MM-DD value carried in a JSON body field.
func ParseDateField(raw, field string) (*time.Time, error) {
	value, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "field must be a date (YYYY-MM-DD)").WithDetails(map[string]any{"field": field})
	}
	return &value, nil
}

// ParseDecimalField parses a money amount carried as a JSON string, keeping
// exact decimal semantics instead of float64.
func ParseDecimalField(raw, field string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, pkgerrors.New(pkgerrors.CodeValidation, "field must be a decimal amount").WithDetails(map[string]any{"field": field})
	}
	return value, nil
}
