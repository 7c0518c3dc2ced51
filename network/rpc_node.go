package network

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bitfsorg/libbtctx-go/amount"
	"github.com/btcsuite/btcd/btcutil"
)

// btcNumber renders sat as an exactly-8-decimal JSON number.
func btcNumber(sat btcutil.Amount) json.Number {
	return json.Number(amount.FormatBTC(sat))
}

// GetNewAddress calls `getnewaddress "" type`.
func (c *RPCClient) GetNewAddress(ctx context.Context, addrType AddressType) (string, error) {
	if addrType == "" {
		addrType = AddressLegacy
	}
	var addr string
	if err := c.call(ctx, "getnewaddress", []interface{}{"", string(addrType)}, &addr); err != nil {
		return "", err
	}
	return addr, nil
}

// DumpPrivKey calls `dumpprivkey "address"`.
func (c *RPCClient) DumpPrivKey(ctx context.Context, address string) (string, error) {
	var wif string
	if err := c.call(ctx, "dumpprivkey", []interface{}{address}, &wif); err != nil {
		return "", err
	}
	return wif, nil
}

// AddMultisigAddress calls `addmultisigaddress n ["addr",...] "" type`.
func (c *RPCClient) AddMultisigAddress(ctx context.Context, required int, addresses []string, addrType AddressType) (*MultisigResult, error) {
	if addrType == "" {
		addrType = AddressLegacy
	}
	params := []interface{}{required, addresses, "", string(addrType)}
	var result MultisigResult
	if err := c.call(ctx, "addmultisigaddress", params, &result); err != nil {
		return nil, err
	}
	if result.Address == "" || result.RedeemScript == "" {
		return nil, fmt.Errorf("%w: addmultisigaddress returned no address or redeem script", ErrInvalidResponse)
	}
	return &result, nil
}

// listUnspentResult maps the JSON fields returned by the listunspent call.
type listUnspentResult struct {
	TxID          string  `json:"txid"`
	Vout          uint32  `json:"vout"`
	Amount        float64 `json:"amount"`
	ScriptPubKey  string  `json:"scriptPubKey"`
	Address       string  `json:"address"`
	Confirmations int64   `json:"confirmations"`
}

// ListUnspent calls `listunspent 0 9999999 ["address"]` and converts BTC
// amounts to satoshis. Unconfirmed outputs are included.
func (c *RPCClient) ListUnspent(ctx context.Context, address string) ([]*UTXO, error) {
	params := []interface{}{0, 9999999, []string{address}}
	var results []listUnspentResult
	if err := c.call(ctx, "listunspent", params, &results); err != nil {
		return nil, err
	}

	utxos := make([]*UTXO, len(results))
	for i, r := range results {
		sat, err := amount.ToSatoshis(r.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: utxo %s:%d: %v", ErrInvalidResponse, r.TxID, r.Vout, err)
		}
		utxos[i] = &UTXO{
			TxID:          r.TxID,
			Vout:          r.Vout,
			Amount:        sat,
			ScriptPubKey:  r.ScriptPubKey,
			Address:       r.Address,
			Confirmations: r.Confirmations,
		}
	}
	log.Debugf("listunspent %s: %d outputs", address, len(utxos))
	return utxos, nil
}

// GetRawTransaction calls `getrawtransaction "txid" false` and decodes the hex.
func (c *RPCClient) GetRawTransaction(ctx context.Context, txid string) ([]byte, error) {
	var rawHex string
	if err := c.call(ctx, "getrawtransaction", []interface{}{txid, false}, &rawHex); err != nil {
		return nil, err
	}
	data, err := hex.DecodeString(rawHex)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid tx hex: %v", ErrInvalidResponse, err)
	}
	return data, nil
}

// prevTxParam is the node's JSON shape of a previous output.
type prevTxParam struct {
	TxID         string      `json:"txid"`
	Vout         uint32      `json:"vout"`
	ScriptPubKey string      `json:"scriptPubKey"`
	RedeemScript string      `json:"redeemScript,omitempty"`
	Amount       json.Number `json:"amount"`
}

// SignRawTransactionWithKey calls
// `signrawtransactionwithkey "hex" ["key",...] [prevtx,...]`.
// An incomplete result is returned as-is; judging it is the caller's job.
func (c *RPCClient) SignRawTransactionWithKey(ctx context.Context, rawTxHex string, prevTxs []PrevTx, keys []string) (*SignResult, error) {
	params := []interface{}{rawTxHex, keys}
	if len(prevTxs) > 0 {
		ps := make([]prevTxParam, len(prevTxs))
		for i, p := range prevTxs {
			ps[i] = prevTxParam{
				TxID:         p.TxID,
				Vout:         p.Vout,
				ScriptPubKey: p.ScriptPubKey,
				RedeemScript: p.RedeemScript,
				Amount:       btcNumber(p.Amount),
			}
		}
		params = append(params, ps)
	}

	var result SignResult
	if err := c.call(ctx, "signrawtransactionwithkey", params, &result); err != nil {
		return nil, err
	}
	if result.Hex == "" {
		return nil, fmt.Errorf("%w: signrawtransactionwithkey returned no hex", ErrInvalidResponse)
	}
	return &result, nil
}

// SendRawTransaction calls `sendrawtransaction "hex"`. Errors reported by the
// node are wrapped with ErrBroadcastRejected while keeping the *RPCError in
// the chain; transport and decoding failures are returned unchanged.
func (c *RPCClient) SendRawTransaction(ctx context.Context, rawTxHex string) (string, error) {
	var txid string
	if err := c.call(ctx, "sendrawtransaction", []interface{}{rawTxHex}, &txid); err != nil {
		var rpcErr *RPCError
		if errors.As(err, &rpcErr) {
			return "", fmt.Errorf("%w: %w", ErrBroadcastRejected, err)
		}
		return "", err
	}
	log.Debugf("broadcast %s", txid)
	return txid, nil
}

// GenerateBlocks calls `getnewaddress` then `generatetoaddress n "address"`.
func (c *RPCClient) GenerateBlocks(ctx context.Context, n int) ([]string, error) {
	addr, err := c.GetNewAddress(ctx, AddressLegacy)
	if err != nil {
		return nil, err
	}
	var hashes []string
	if err := c.call(ctx, "generatetoaddress", []interface{}{n, addr}, &hashes); err != nil {
		return nil, err
	}
	return hashes, nil
}

// ImportAddress calls `importaddress "address" "label" true`, rescanning
// the chain so existing outputs become visible to ListUnspent.
func (c *RPCClient) ImportAddress(ctx context.Context, address, label string) error {
	return c.call(ctx, "importaddress", []interface{}{address, label, true}, nil)
}

// SendToAddress calls `sendtoaddress "address" amount`.
func (c *RPCClient) SendToAddress(ctx context.Context, address string, amt btcutil.Amount) (string, error) {
	var txid string
	if err := c.call(ctx, "sendtoaddress", []interface{}{address, btcNumber(amt)}, &txid); err != nil {
		return "", err
	}
	return txid, nil
}

// verboseTxResult maps the JSON fields from getrawtransaction with verbose=true.
type verboseTxResult struct {
	Confirmations int64  `json:"confirmations"`
	BlockHash     string `json:"blockhash"`
	BlockTime     int64  `json:"blocktime"`
}

// GetTxStatus calls `getrawtransaction "txid" true` for confirmation info.
func (c *RPCClient) GetTxStatus(ctx context.Context, txid string) (*TxStatus, error) {
	var result verboseTxResult
	if err := c.call(ctx, "getrawtransaction", []interface{}{txid, true}, &result); err != nil {
		return nil, err
	}
	return &TxStatus{
		Confirmed:     result.Confirmations > 0,
		Confirmations: result.Confirmations,
		BlockHash:     result.BlockHash,
		BlockTime:     result.BlockTime,
	}, nil
}

// GetBlockCount calls `getblockcount`.
func (c *RPCClient) GetBlockCount(ctx context.Context) (int64, error) {
	var height int64
	if err := c.call(ctx, "getblockcount", nil, &height); err != nil {
		return 0, err
	}
	return height, nil
}
