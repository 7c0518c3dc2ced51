// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

// Package config loads and saves the btctx configuration file.
//
// The file is a plain key = value list. Blank lines and lines starting with
// '#' are ignored, unknown keys are skipped, and keys not present keep their
// DefaultConfig values.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bitfsorg/libbtctx-go/amount"
	"github.com/bitfsorg/libbtctx-go/network"
	"github.com/btcsuite/btcd/btcutil"
)

// Config is the complete runtime configuration. It is fixed for the lifetime
// of a helper instance.
type Config struct {
	DataDir string

	// Node JSON-RPC endpoint.
	Host     string
	Port     int
	User     string
	Password string
	Timeout  time.Duration

	Network string

	// TxFee is the fixed fee per transfer.
	TxFee     btcutil.Amount
	FeePolicy string

	LogLevel string
	LogFile  string
}

// DefaultTxFee is 0.001 BTC.
const DefaultTxFee = btcutil.Amount(100_000)

// DefaultConfig returns a configuration pointing at a local regtest node.
func DefaultConfig() Config {
	return Config{
		DataDir:   DefaultDataDir(),
		Host:      "localhost",
		Port:      18332,
		Timeout:   network.DefaultTimeout,
		Network:   "regtest",
		TxFee:     DefaultTxFee,
		FeePolicy: "passthrough",
		LogLevel:  "info",
	}
}

// DefaultDataDir returns ~/.btctx, or .btctx when the home directory is unknown.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".btctx"
	}
	return filepath.Join(home, ".btctx")
}

// ConfigPath returns the path of the config file inside dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config")
}

// IdentityDBPath returns the path of the identity store inside dataDir.
func IdentityDBPath(dataDir string) string {
	return filepath.Join(dataDir, "identities.db")
}

// RPCConfig returns the node connection settings.
func (c Config) RPCConfig() network.RPCConfig {
	return network.RPCConfig{
		URL:      network.URLFromHostPort(c.Host, c.Port),
		User:     c.User,
		Password: c.Password,
		Network:  c.Network,
		Timeout:  c.Timeout,
	}
}

// LoadConfig reads the file at path on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, err := parseKeyValue(line)
		if err != nil {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNo, line)
		}
		if err := cfg.set(key, value); err != nil {
			return cfg, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	return cfg, nil
}

// parseKeyValue splits a line on the first '='.
func parseKeyValue(line string) (string, string, error) {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", ErrInvalidConfigLine
	}
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return "", "", ErrInvalidConfigLine
	}
	return key, strings.TrimSpace(value), nil
}

func (c *Config) set(key, value string) error {
	switch key {
	case "datadir":
		c.DataDir = value
	case "rpchost":
		c.Host = value
	case "rpcport":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: rpcport %q", ErrInvalidConfigValue, value)
		}
		c.Port = port
	case "rpcuser":
		c.User = value
	case "rpcpassword":
		c.Password = value
	case "timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: timeout %q", ErrInvalidConfigValue, value)
		}
		c.Timeout = d
	case "network":
		c.Network = value
	case "txfee":
		fee, err := amount.ParseBTC(value)
		if err != nil {
			return fmt.Errorf("%w: txfee: %w", ErrInvalidConfigValue, err)
		}
		c.TxFee = fee
	case "feepolicy":
		c.FeePolicy = value
	case "loglevel":
		c.LogLevel = value
	case "logfile":
		c.LogFile = value
	}
	return nil
}

// SaveConfig writes cfg to path, creating the parent directory. The file is
// written 0600 since it may hold the RPC password.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# btctx configuration\n\n")
	fmt.Fprintf(&b, "datadir = %s\n", cfg.DataDir)
	fmt.Fprintf(&b, "network = %s\n\n", cfg.Network)
	b.WriteString("# Node JSON-RPC\n")
	fmt.Fprintf(&b, "rpchost = %s\n", cfg.Host)
	fmt.Fprintf(&b, "rpcport = %d\n", cfg.Port)
	fmt.Fprintf(&b, "rpcuser = %s\n", cfg.User)
	fmt.Fprintf(&b, "rpcpassword = %s\n", cfg.Password)
	fmt.Fprintf(&b, "timeout = %s\n\n", cfg.Timeout)
	b.WriteString("# Fees\n")
	fmt.Fprintf(&b, "txfee = %s\n", amount.FormatBTC(cfg.TxFee))
	fmt.Fprintf(&b, "feepolicy = %s\n\n", cfg.FeePolicy)
	b.WriteString("# Logging\n")
	fmt.Fprintf(&b, "loglevel = %s\n", cfg.LogLevel)
	fmt.Fprintf(&b, "logfile = %s\n", cfg.LogFile)

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
