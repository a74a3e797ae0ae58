package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	meta := MetadataFor(CodeNotFound)
	if meta.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected 404 for not-found, got %d", meta.HTTPStatus)
	}

	meta = MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unknown codes should map to 500, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Wrap(CodeDependency, cause, "saving bill")

	if err.Unwrap() != cause {
		t.Fatalf("expected cause to be preserved")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("expected dependency code, got %s", err.Code())
	}

	typed := As(fmt.Errorf("outer: %w", err))
	if typed == nil || typed.Code() != CodeDependency {
		t.Fatalf("expected As to find wrapped typed error")
	}
}

func TestDumpBuildsChain(t *testing.T) {
	err := Wrap(CodeInternal, fmt.Errorf("inner"), "outer")
	dump := Dump(err)

	if dump.Code != CodeInternal {
		t.Fatalf("expected internal code, got %s", dump.Code)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected at least two chain entries, got %d", len(dump.Chain))
	}
}
