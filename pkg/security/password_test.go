package security

import (
	"testing"

	"github.com/tiffinworks/pos-backend/pkg/config"
)

func fastParams() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	encoded, err := HashPassword("counter-pin-1234", fastParams())
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	ok, err := VerifyPassword("counter-pin-1234", encoded)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !ok {
		t.Fatal("expected matching password to verify")
	}

	ok, err = VerifyPassword("wrong", encoded)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if ok {
		t.Fatal("expected mismatched password to fail")
	}
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("anything", "$bcrypt$not-argon"); err == nil {
		t.Fatal("expected malformed hash to error")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword("", fastParams()); err == nil {
		t.Fatal("expected empty password to error")
	}
}
