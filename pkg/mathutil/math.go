package mathutil

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	// ErrNullAmount ...
	ErrNullAmount = errors.New("amount must not be null")
	// ErrInvalidAmount ...
	ErrInvalidAmount = errors.New("amount must be a valid number")
	// ErrNonPositiveAmount ...
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	// ErrFractionalAmount is returned when an amount has more decimal digits
	// than the asset denomination allows.
	ErrFractionalAmount = errors.New("amount exceeds asset denomination precision")
	// ErrAmountOverflow ...
	ErrAmountOverflow = errors.New("amount overflows 64 bits")
	// ErrInvalidDenomination ...
	ErrInvalidDenomination = errors.New("denomination must be in range [0, 32]")

	maxUint64 = decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)
)

const maxDenomination = 32

// ToBaseUnits converts a human readable quantity, like "1.5", into integer
// base units by multiplying it by 10^denomination. The quantity must be
// positive and representable without rounding.
func ToBaseUnits(amount string, denomination uint8) (uint64, error) {
	if len(amount) <= 0 {
		return 0, ErrNullAmount
	}
	if denomination > maxDenomination {
		return 0, ErrInvalidDenomination
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}
	if !value.IsPositive() {
		return 0, ErrNonPositiveAmount
	}

	shifted := value.Shift(int32(denomination))
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, fmt.Errorf(
			"%w: %s has more than %d decimals", ErrFractionalAmount, amount, denomination,
		)
	}
	if shifted.GreaterThan(maxUint64) {
		return 0, ErrAmountOverflow
	}

	return shifted.BigInt().Uint64(), nil
}

// FromBaseUnits converts integer base units into a decimal quantity.
func FromBaseUnits(amount uint64, denomination uint8) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -int32(denomination))
}

// FormatBaseUnits returns the human readable quantity with exactly
// denomination decimal digits.
func FormatBaseUnits(amount uint64, denomination uint8) string {
	return FromBaseUnits(amount, denomination).StringFixed(int32(denomination))
}

// SafeAdd sums x and y, failing on overflow.
func SafeAdd(x, y uint64) (uint64, error) {
	z := x + y
	if z < x {
		return 0, ErrAmountOverflow
	}
	return z, nil
}

// SafeSub returns x - y and false if y > x.
func SafeSub(x, y uint64) (uint64, bool) {
	if y > x {
		return 0, false
	}
	return x - y, true
}
