package network

import (
	"errors"
	"fmt"
)

var (
	// ErrNodeUnavailable indicates the node could not be reached or answered
	// with a non-JSON-RPC HTTP failure.
	ErrNodeUnavailable = errors.New("network: node unavailable")

	// ErrAuthFailed indicates the RPC credentials were rejected.
	ErrAuthFailed = errors.New("network: authentication failed")

	// ErrBroadcastRejected indicates the node refused a raw transaction.
	ErrBroadcastRejected = errors.New("network: broadcast rejected")

	// ErrInvalidResponse indicates the node returned a malformed or unexpected response.
	ErrInvalidResponse = errors.New("network: invalid response")

	// ErrRPC matches every error reported by the node itself.
	ErrRPC = errors.New("network: rpc error")
)

// RPCError is an error object returned by the node in a JSON-RPC response.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("network: rpc error %d: %s", e.Code, e.Message)
}

// Is reports whether target is ErrRPC.
func (e *RPCError) Is(target error) bool {
	return target == ErrRPC
}
