package amount

import "errors"

var (
	// ErrInvalidAmount indicates a value that cannot be represented in satoshis.
	ErrInvalidAmount = errors.New("amount: invalid amount")

	// ErrTooPrecise indicates a decimal string with more than 8 decimals.
	ErrTooPrecise = errors.New("amount: more than 8 decimal places")
)
