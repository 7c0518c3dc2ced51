// Package amount converts between the display unit (BTC) and the smallest
// integer unit (satoshis).
//
// All arithmetic inside this module happens on btcutil.Amount. Floating point
// BTC values only appear at the public boundary and in node responses, and
// every value sent to a node is rendered with exactly MaxDecimals digits.
package amount

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
)

const (
	// SatoshiPerBTC is the number of satoshis in one BTC.
	SatoshiPerBTC = btcutil.SatoshiPerBitcoin

	// MaxDecimals is the precision of the display unit.
	MaxDecimals = 8

	// MaxBTC is the total supply cap.
	MaxBTC = btcutil.MaxSatoshi
)

// ToSatoshis converts a BTC value to satoshis. The product is rounded to the
// nearest integer with ties going away from zero, so 0.001953125 BTC
// (195312.5 sat) becomes 195313 sat and its negation -195313 sat.
func ToSatoshis(btc float64) (btcutil.Amount, error) {
	sat, err := btcutil.NewAmount(btc)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, btc)
	}
	return sat, nil
}

// MustSatoshis is ToSatoshis for constants. It panics on NaN or Inf.
func MustSatoshis(btc float64) btcutil.Amount {
	sat, err := ToSatoshis(btc)
	if err != nil {
		panic(err)
	}
	return sat
}

// ToBTC converts satoshis to a BTC value carrying at most 8 decimals.
//
// float64(sat) is exact below 2^53 and the single division by 1e8 is
// correctly rounded, so the result is the float nearest to the 8-decimal
// value and ToBTC(ToSatoshis(x)) == x for every x with <= 8 decimals.
func ToBTC(sat btcutil.Amount) float64 {
	return sat.ToBTC()
}

// FormatBTC renders satoshis as a BTC decimal string with exactly 8 decimals.
// The rendering is integer based and never goes through float formatting.
func FormatBTC(sat btcutil.Amount) string {
	sign := ""
	v := uint64(sat)
	if sat < 0 {
		sign = "-"
		v = uint64(-(sat + 1)) + 1
	}
	return fmt.Sprintf("%s%d.%08d", sign, v/SatoshiPerBTC, v%SatoshiPerBTC)
}

// ParseBTC parses a decimal BTC string such as "1.5" or "0.00000001"
// exactly, without going through float64. More than 8 decimals is an error.
func ParseBTC(s string) (btcutil.Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("%w: %q has no digits", ErrInvalidAmount, s)
	}
	if len(frac) > MaxDecimals {
		return 0, fmt.Errorf("%w: %q has more than %d decimals", ErrTooPrecise, s, MaxDecimals)
	}
	if whole == "" {
		whole = "0"
	}
	frac += strings.Repeat("0", MaxDecimals-len(frac))

	w, err := strconv.ParseUint(whole, 10, 63)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, s, err)
	}
	f, err := strconv.ParseUint(frac, 10, 63)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, s, err)
	}
	if w > uint64(MaxBTC)/SatoshiPerBTC {
		return 0, fmt.Errorf("%w: %q exceeds supply", ErrInvalidAmount, s)
	}

	sat := btcutil.Amount(w*SatoshiPerBTC + f)
	if neg {
		sat = -sat
	}
	return sat, nil
}

// Sum adds amounts in satoshis.
func Sum(amounts ...btcutil.Amount) btcutil.Amount {
	var total btcutil.Amount
	for _, a := range amounts {
		total += a
	}
	return total
}
