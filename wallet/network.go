package wallet

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
)

// predefined maps network names to their chain parameters.
var predefined = map[string]*chaincfg.Params{
	"mainnet": &chaincfg.MainNetParams,
	"testnet": &chaincfg.TestNet3Params,
	"regtest": &chaincfg.RegressionNetParams,
	"signet":  &chaincfg.SigNetParams,
	"simnet":  &chaincfg.SimNetParams,
}

// GetNetwork returns the chain parameters of a predefined network by name.
// If the name is not predefined, it returns ErrInvalidNetwork.
func GetNetwork(name string) (*chaincfg.Params, error) {
	if params, ok := predefined[name]; ok {
		return params, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidNetwork, name)
}

// NetworkNames lists the names GetNetwork accepts.
func NetworkNames() []string {
	return []string{"mainnet", "testnet", "regtest", "signet", "simnet"}
}
