package validation

import (
	"errors"
	"testing"

	bferrors "github.com/vnykmshr/bodyflow/pkg/common/errors"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		module  string
		field   string
		value   int
		wantErr bool
	}{
		{"positive value", "payload", "capacity", 32768, false},
		{"one", "payload", "capacity", 1, false},
		{"zero", "payload", "capacity", 0, true},
		{"negative", "feeder", "read_size", -4096, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive(tt.module, tt.field, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePositive() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, bferrors.ErrInvalidConfiguration) {
				t.Error("error should wrap ErrInvalidConfiguration")
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"positive", 128.5, false},
		{"zero", 0, false},
		{"negative", -0.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNonNegative("feeder", "rate", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNonNegative() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateNotNil(t *testing.T) {
	if err := ValidateNotNil("feeder", "source", nil); err == nil {
		t.Error("expected error for nil value")
	}
	if err := ValidateNotNil("feeder", "source", struct{}{}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateNotEmpty(t *testing.T) {
	if err := ValidateNotEmpty("metrics", "name", ""); err == nil {
		t.Error("expected error for empty string")
	}
	if err := ValidateNotEmpty("metrics", "name", "upload"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidatePositive("payload", "capacity", 0)
	want := "payload: invalid capacity=0 (must be positive) - value must be greater than 0"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}
