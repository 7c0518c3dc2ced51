// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import "errors"

var (
	// ErrInvalidNetwork indicates the network name is not recognized.
	ErrInvalidNetwork = errors.New("config: invalid network (must be \"mainnet\", \"testnet\", \"regtest\", \"signet\", or \"simnet\")")

	// ErrInvalidRPCAddr indicates the node host or port is malformed.
	ErrInvalidRPCAddr = errors.New("config: invalid RPC host or port")

	// ErrInvalidTimeout indicates a non-positive RPC timeout.
	ErrInvalidTimeout = errors.New("config: RPC timeout must be positive")

	// ErrInvalidTxFee indicates a negative transaction fee.
	ErrInvalidTxFee = errors.New("config: transaction fee must not be negative")

	// ErrInvalidFeePolicy indicates the fee policy is not recognized.
	ErrInvalidFeePolicy = errors.New("config: invalid fee policy (must be \"passthrough\" or \"strict\")")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"trace\", \"debug\", \"info\", \"warn\", \"error\", \"critical\", or \"off\")")

	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigLine indicates a line in the config file is malformed.
	ErrInvalidConfigLine = errors.New("config: invalid configuration line")

	// ErrInvalidConfigValue indicates a value that does not parse for its key.
	ErrInvalidConfigValue = errors.New("config: invalid configuration value")
)
