package network

import (
	"fmt"
	"time"
)

// DefaultTimeout bounds every RPC round trip when RPCConfig.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// RPCConfig holds the connection parameters for a node's JSON-RPC interface.
type RPCConfig struct {
	URL      string        `json:"url"`
	User     string        `json:"user"`
	Password string        `json:"password"`
	Network  string        `json:"network"`
	Timeout  time.Duration `json:"timeout"`
}

// NetworkPresets contains default RPC configurations for known networks.
// Mainnet is intentionally omitted to require explicit configuration.
var NetworkPresets = map[string]RPCConfig{
	"regtest": {URL: "http://localhost:18332", User: "btctx", Password: "btctx"},
	"testnet": {URL: "http://localhost:18332", User: "btctx", Password: "btctx"},
	"signet":  {URL: "http://localhost:38332", User: "btctx", Password: "btctx"},
}

// Environment variables consulted by ResolveConfig.
const (
	EnvRPCURL  = "BTCTX_RPC_URL"
	EnvRPCUser = "BTCTX_RPC_USER"
	EnvRPCPass = "BTCTX_RPC_PASS"
)

// URLFromHostPort renders the node endpoint for a host and port pair.
func URLFromHostPort(host string, port int) string {
	return fmt.Sprintf("http://%s:%d", host, port)
}

// ResolveConfig merges RPC configuration from three sources with decreasing priority:
//  1. CLI flags (highest priority)
//  2. Environment variables (BTCTX_RPC_URL, BTCTX_RPC_USER, BTCTX_RPC_PASS)
//  3. Network presets (lowest priority, regtest/testnet/signet only)
//
// For mainnet, explicit configuration is required -- there is no preset.
func ResolveConfig(flags *RPCConfig, env map[string]string, network string) (*RPCConfig, error) {
	result := RPCConfig{Network: network}

	if preset, ok := NetworkPresets[network]; ok {
		result = preset
		result.Network = network
	}

	if env != nil {
		if v, ok := env[EnvRPCURL]; ok && v != "" {
			result.URL = v
		}
		if v, ok := env[EnvRPCUser]; ok && v != "" {
			result.User = v
		}
		if v, ok := env[EnvRPCPass]; ok && v != "" {
			result.Password = v
		}
	}

	if flags != nil {
		if flags.URL != "" {
			result.URL = flags.URL
		}
		if flags.User != "" {
			result.User = flags.User
		}
		if flags.Password != "" {
			result.Password = flags.Password
		}
		if flags.Timeout > 0 {
			result.Timeout = flags.Timeout
		}
	}

	if result.URL == "" {
		return nil, fmt.Errorf("network: %s requires explicit RPC configuration (set --rpc-url, %s, or config file)", network, EnvRPCURL)
	}
	if result.Timeout <= 0 {
		result.Timeout = DefaultTimeout
	}

	return &result, nil
}
