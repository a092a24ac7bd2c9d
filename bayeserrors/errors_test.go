package bayeserrors

import (
	"fmt"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{InvalidParameters, "InvalidParameters"},
		{InvalidData, "InvalidData"},
		{NotEnoughData, "NotEnoughData"},
		{ModelMismatch, "ModelMismatch"},
		{NonConvergence, "NonConvergence"},
		{WAICUnavailable, "WAICUnavailable"},
		{Cancelled, "Cancelled"},
		{Kind(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestConstructorsSetKind(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want Kind
	}{
		{"InvalidParams", InvalidParams("bad alpha %v", -1.0), InvalidParameters},
		{"InvalidDataf", InvalidDataf("bad shape"), InvalidData},
		{"NotEnoughDataf", NotEnoughDataf("n=%d", 1), NotEnoughData},
		{"ModelMismatchf", ModelMismatchf("mismatch"), ModelMismatch},
		{"NonConvergencef", NonConvergencef("no convergence"), NonConvergence},
		{"Cancelledf", Cancelledf("cancelled"), Cancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind() != tt.want {
				t.Errorf("Kind() = %v, want %v", tt.err.Kind(), tt.want)
			}
			if tt.err.Error() == "" {
				t.Error("Error() is empty")
			}
		})
	}
}

func TestWAICUnavailablefWrapsCause(t *testing.T) {
	cause := fmt.Errorf("matrix all-NaN")
	err := WAICUnavailablef(cause, "waic unavailable: %v", cause)
	if err.Kind() != WAICUnavailable {
		t.Errorf("Kind() = %v, want WAICUnavailable", err.Kind())
	}
	if err.Unwrap() == nil {
		t.Error("Unwrap() = nil, want the wrapped cause")
	}
}

func TestWAICUnavailablefNilCause(t *testing.T) {
	err := WAICUnavailablef(nil, "no draws available")
	if err.Kind() != WAICUnavailable {
		t.Errorf("Kind() = %v, want WAICUnavailable", err.Kind())
	}
}

func TestIsMatchesWrappedKind(t *testing.T) {
	err := InvalidDataf("bad input")
	wrapped := fmt.Errorf("context: %w", err)
	if !Is(wrapped, InvalidData) {
		t.Error("Is(wrapped, InvalidData) = false, want true")
	}
	if Is(wrapped, ModelMismatch) {
		t.Error("Is(wrapped, ModelMismatch) = true, want false")
	}
}

func TestIsFalseForPlainError(t *testing.T) {
	if Is(fmt.Errorf("plain"), InvalidData) {
		t.Error("Is(plain error, InvalidData) = true, want false")
	}
}
