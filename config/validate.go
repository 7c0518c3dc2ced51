// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"fmt"
	"strings"

	"github.com/bitfsorg/libbtctx-go/tx"
	"github.com/bitfsorg/libbtctx-go/wallet"
	"github.com/btcsuite/btclog"
)

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if _, err := wallet.GetNetwork(cfg.Network); err != nil {
		return ErrInvalidNetwork
	}

	if strings.TrimSpace(cfg.Host) == "" {
		return fmt.Errorf("%w: empty host", ErrInvalidRPCAddr)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("%w: port %d", ErrInvalidRPCAddr, cfg.Port)
	}

	if cfg.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if cfg.TxFee < 0 {
		return ErrInvalidTxFee
	}

	if _, err := tx.ParseFeePolicy(cfg.FeePolicy); err != nil {
		return ErrInvalidFeePolicy
	}

	if _, ok := btclog.LevelFromString(strings.ToLower(cfg.LogLevel)); !ok {
		return ErrInvalidLogLevel
	}

	return nil
}
