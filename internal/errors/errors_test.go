package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestDomainError_Message(t *testing.T) {
	t.Parallel()

	err := New(CodeConflict, "duplicate declaration")
	if !strings.Contains(err.Error(), "[CONFLICT]") {
		t.Errorf("missing code in message: %v", err)
	}

	wrapped := Wrap(fmt.Errorf("disk gone"), CodeIOFailure, "open file")
	if !strings.Contains(wrapped.Error(), "disk gone") {
		t.Errorf("missing cause in message: %v", wrapped)
	}
}

func TestIsCode(t *testing.T) {
	t.Parallel()

	err := New(CodeConflict, "dup")
	if !IsCode(err, CodeConflict) {
		t.Error("IsCode should match")
	}
	if IsCode(err, CodeIOFailure) {
		t.Error("IsCode matched wrong code")
	}
	if IsCode(stderrors.New("plain"), CodeConflict) {
		t.Error("IsCode matched non-domain error")
	}

	// Matching through wrapping layers.
	outer := fmt.Errorf("context: %w", err)
	if !IsCode(outer, CodeConflict) {
		t.Error("IsCode should unwrap")
	}
}

func TestAddContext(t *testing.T) {
	t.Parallel()

	err := AddContext(New(CodeConflict, "dup"), CtxSymbol, "@main::x")
	var de *DomainError
	if !stderrors.As(err, &de) {
		t.Fatal("not a DomainError")
	}
	if de.Context[CtxSymbol] != "@main::x" {
		t.Errorf("context = %v", de.Context)
	}

	// Plain errors get wrapped as internal.
	err = AddContext(stderrors.New("plain"), CtxFile, "a.pl")
	if !IsCode(err, CodeInternal) {
		t.Errorf("plain error should wrap as internal: %v", err)
	}
}

func TestUnwrap(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("cause")
	err := Wrap(cause, CodeIOFailure, "read")
	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
}
