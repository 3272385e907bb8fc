package domain

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// Money is a fixed-point currency amount. All balances, prices and transfer
// amounts use two decimal places (the currency minor unit).
type Money = decimal.Decimal

var (
	// ErrInvalidAmount marks amounts that are non-positive, non-finite or
	// carry more precision than the currency minor unit.
	ErrInvalidAmount = errors.New("invalid amount")
)

// NewMoney converts a float received on an external boundary into Money.
// Non-finite values are rejected here so decimal never sees them.
func NewMoney(value float64) (Money, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return decimal.Zero, ErrInvalidAmount
	}
	return decimal.NewFromFloat(value), nil
}

// ValidateAmount checks that a settlement amount is strictly positive and has
// at most two decimal places. Sub-cent precision is rejected, never rounded.
func ValidateAmount(amount Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(2)) {
		return ErrInvalidAmount
	}
	return nil
}
