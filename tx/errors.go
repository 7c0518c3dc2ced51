package tx

import "errors"

var (
	// ErrInsufficientFunds indicates the address's unspent outputs cannot cover the target.
	ErrInsufficientFunds = errors.New("tx: insufficient funds")

	// ErrFeeShortfall indicates the change cannot cover the configured fee.
	ErrFeeShortfall = errors.New("tx: change below fee")

	// ErrInvalidOutput indicates a recipient with a bad address or non-positive amount.
	ErrInvalidOutput = errors.New("tx: invalid output")

	// ErrInvalidPayload indicates a data embed over BuildOptions.MaxDataPayload.
	ErrInvalidPayload = errors.New("tx: invalid payload")

	// ErrInvalidAddress indicates an address that does not decode for the network.
	ErrInvalidAddress = errors.New("tx: invalid address")

	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("tx: required parameter is nil")

	// ErrScriptBuild indicates script construction failed.
	ErrScriptBuild = errors.New("tx: script build failed")
)
