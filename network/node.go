package network

import (
	"context"

	"github.com/btcsuite/btcd/btcutil"
)

// Node is the set of node RPCs this module relies on. Every RPC the helper
// issues has an explicit method here; there is no generic call escape hatch.
type Node interface {
	// GetNewAddress creates a fresh address in the node wallet.
	GetNewAddress(ctx context.Context, addrType AddressType) (string, error)

	// DumpPrivKey returns the WIF private key of a node wallet address.
	DumpPrivKey(ctx context.Context, address string) (string, error)

	// AddMultisigAddress combines member addresses into an n-of-m multisig
	// address, preserving member order.
	AddMultisigAddress(ctx context.Context, required int, addresses []string, addrType AddressType) (*MultisigResult, error)

	// ListUnspent returns every unspent output of address, including
	// unconfirmed ones, in node order.
	ListUnspent(ctx context.Context, address string) ([]*UTXO, error)

	// GetRawTransaction returns the serialized transaction.
	GetRawTransaction(ctx context.Context, txid string) ([]byte, error)

	// SignRawTransactionWithKey signs rawTxHex with the given WIF keys.
	SignRawTransactionWithKey(ctx context.Context, rawTxHex string, prevTxs []PrevTx, keys []string) (*SignResult, error)

	// SendRawTransaction broadcasts a signed transaction and returns its txid.
	SendRawTransaction(ctx context.Context, rawTxHex string) (string, error)

	// GenerateBlocks mines n blocks to a fresh node address.
	GenerateBlocks(ctx context.Context, n int) ([]string, error)

	// ImportAddress adds a watch-only address to the node wallet and rescans.
	ImportAddress(ctx context.Context, address, label string) error

	// SendToAddress pays amount from the node wallet to address.
	SendToAddress(ctx context.Context, address string, amount btcutil.Amount) (string, error)

	// GetTxStatus returns the confirmation status of a transaction.
	GetTxStatus(ctx context.Context, txid string) (*TxStatus, error)

	// GetBlockCount returns the height of the current chain tip.
	GetBlockCount(ctx context.Context) (int64, error)
}

// AddressType selects the script family of node-generated addresses.
type AddressType string

const (
	AddressLegacy     AddressType = "legacy"
	AddressP2SHSegwit AddressType = "p2sh-segwit"
	AddressBech32     AddressType = "bech32"
)

// Valid reports whether t is one of the address types the node accepts.
func (t AddressType) Valid() bool {
	switch t {
	case AddressLegacy, AddressP2SHSegwit, AddressBech32:
		return true
	}
	return false
}

// UTXO represents an unspent transaction output.
type UTXO struct {
	TxID          string         `json:"txid"`
	Vout          uint32         `json:"vout"`
	Amount        btcutil.Amount `json:"amount"`
	ScriptPubKey  string         `json:"script_pubkey"`
	Address       string         `json:"address"`
	Confirmations int64          `json:"confirmations"`
}

// PrevTx describes a previous output being spent, as the signer needs it for
// script-hash redemption.
type PrevTx struct {
	TxID         string
	Vout         uint32
	ScriptPubKey string
	RedeemScript string
	Amount       btcutil.Amount
}

// SignResult is the outcome of SignRawTransactionWithKey.
type SignResult struct {
	Hex      string           `json:"hex"`
	Complete bool             `json:"complete"`
	Errors   []SignInputError `json:"errors,omitempty"`
}

// SignInputError is one per-input failure reported by the signer.
type SignInputError struct {
	TxID      string `json:"txid"`
	Vout      uint32 `json:"vout"`
	ScriptSig string `json:"scriptSig"`
	Sequence  uint32 `json:"sequence"`
	Error     string `json:"error"`
}

// MultisigResult is the address and redeem script created by AddMultisigAddress.
type MultisigResult struct {
	Address      string `json:"address"`
	RedeemScript string `json:"redeemScript"`
}

// TxStatus represents the confirmation status of a transaction.
type TxStatus struct {
	Confirmed     bool   `json:"confirmed"`
	Confirmations int64  `json:"confirmations"`
	BlockHash     string `json:"block_hash"`
	BlockTime     int64  `json:"block_time"`
}
