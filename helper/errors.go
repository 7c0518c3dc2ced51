package helper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bitfsorg/libbtctx-go/network"
)

var (
	// ErrTransferFailed is matched by every error returned from TransferBTC.
	ErrTransferFailed = errors.New("helper: transfer failed")

	// ErrSigningFailed indicates the node could not sign every input.
	ErrSigningFailed = errors.New("helper: signing incomplete")

	// ErrInvalidRecipient indicates an output with an empty address or a
	// non-positive amount.
	ErrInvalidRecipient = errors.New("helper: invalid recipient")

	// ErrNilSender indicates TransferBTC was called without an identity.
	ErrNilSender = errors.New("helper: sender is nil")
)

// Stage names a step of the transfer pipeline.
type Stage string

const (
	StageValidate  Stage = "validate"
	StageSelect    Stage = "select"
	StageBuild     Stage = "build"
	StageSign      Stage = "sign"
	StageBroadcast Stage = "broadcast"
)

// TransferError records which stage of a transfer failed and why.
// It matches ErrTransferFailed and unwraps to the cause.
type TransferError struct {
	Stage Stage
	Err   error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("helper: transfer failed at %s: %v", e.Stage, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

func (e *TransferError) Is(target error) bool { return target == ErrTransferFailed }

// SigningError carries the per-input errors the node reported for a
// signature set it could not complete.
type SigningError struct {
	Errors []network.SignInputError
}

func (e *SigningError) Error() string {
	if len(e.Errors) == 0 {
		return ErrSigningFailed.Error()
	}
	msgs := make([]string, len(e.Errors))
	for i, ie := range e.Errors {
		msgs[i] = fmt.Sprintf("%s:%d: %s", ie.TxID, ie.Vout, ie.Error)
	}
	return fmt.Sprintf("%s: %s", ErrSigningFailed, strings.Join(msgs, "; "))
}

func (e *SigningError) Is(target error) bool { return target == ErrSigningFailed }
