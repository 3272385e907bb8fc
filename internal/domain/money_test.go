package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewMoneyRejectsNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := NewMoney(v); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("value %v: expected ErrInvalidAmount, got %v", v, err)
		}
	}
}

func TestNewMoneyKeepsDecimalValue(t *testing.T) {
	m, err := NewMoney(29.99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.Equal(decimal.RequireFromString("29.99")) {
		t.Fatalf("expected 29.99, got %s", m)
	}
}

func TestValidateAmount(t *testing.T) {
	cases := []struct {
		amount string
		valid  bool
	}{
		{"0.01", true},
		{"29.99", true},
		{"100", true},
		{"0", false},
		{"-5", false},
		{"10.005", false},
	}

	for _, tc := range cases {
		err := ValidateAmount(decimal.RequireFromString(tc.amount))
		if tc.valid && err != nil {
			t.Fatalf("amount %s: unexpected error %v", tc.amount, err)
		}
		if !tc.valid && !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount %s: expected ErrInvalidAmount, got %v", tc.amount, err)
		}
	}
}
