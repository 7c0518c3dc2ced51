package tx

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/bitfsorg/libbtctx-go/amount"
	"github.com/bitfsorg/libbtctx-go/network"
	"github.com/bitfsorg/libbtctx-go/wallet"
	"github.com/bsv-blockchain/go-sdk/chainhash"
	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/bsv-blockchain/go-sdk/transaction"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// FeePolicy decides what Build does when the change cannot cover the fee.
type FeePolicy int

const (
	// FeePolicyPassthrough omits the change output and leaves the
	// underpaying transaction for the node's relay policy to judge.
	FeePolicyPassthrough FeePolicy = iota

	// FeePolicyStrict fails with ErrFeeShortfall before anything is signed.
	FeePolicyStrict
)

func (p FeePolicy) String() string {
	switch p {
	case FeePolicyPassthrough:
		return "passthrough"
	case FeePolicyStrict:
		return "strict"
	}
	return fmt.Sprintf("FeePolicy(%d)", int(p))
}

// ParseFeePolicy parses "passthrough" or "strict".
func ParseFeePolicy(s string) (FeePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "passthrough", "":
		return FeePolicyPassthrough, nil
	case "strict":
		return FeePolicyStrict, nil
	}
	return 0, fmt.Errorf("tx: unknown fee policy %q", s)
}

// Recipient is one payment output.
type Recipient struct {
	Address string
	Amount  btcutil.Amount
}

// BuildOptions configures Build.
type BuildOptions struct {
	// TxFee is the fixed fee taken from the change.
	TxFee btcutil.Amount

	FeePolicy FeePolicy

	// Params selects the network addresses are decoded for. Nil means regtest.
	Params *chaincfg.Params

	// MaxDataPayload caps each data embed in bytes. Zero means no limit.
	MaxDataPayload int
}

// UnsignedBundle is everything the signer needs for one transaction.
type UnsignedBundle struct {
	Hex  string
	TxID string

	// PrevTxs is set for multisig senders only, one entry per input.
	PrevTxs     []network.PrevTx
	PrivateKeys []string

	// ChangeVout is the index of the change output, or -1 when there is none.
	ChangeVout int
	Change     btcutil.Amount

	// Fee is the implicit fee: inputs minus outputs.
	Fee btcutil.Amount

	// Shortfall is how far the change fell below TxFee under
	// FeePolicyPassthrough. Zero otherwise.
	Shortfall btcutil.Amount
}

// Build assembles the unsigned transaction spending sel.
//
// Output layout: one output per recipient in order, then the change output to
// the sender when the change exceeds the fee, then one zero-value data embed
// per payload.
func Build(sel *Selection, outputs []Recipient, sender wallet.Sender, payloads [][]byte, opts BuildOptions) (*UnsignedBundle, error) {
	if sel == nil {
		return nil, fmt.Errorf("%w: selection", ErrNilParam)
	}
	if sender == nil {
		return nil, fmt.Errorf("%w: sender", ErrNilParam)
	}
	if len(sel.UTXOs) == 0 {
		return nil, fmt.Errorf("%w: selection has no inputs", ErrNilParam)
	}
	if len(outputs) == 0 {
		return nil, fmt.Errorf("%w: no recipients", ErrInvalidOutput)
	}
	params := opts.Params
	if params == nil {
		params = &chaincfg.RegressionNetParams
	}

	sdkTx := transaction.NewTransaction()

	for _, u := range sel.UTXOs {
		hash, err := txidHash(u.TxID)
		if err != nil {
			return nil, err
		}
		sdkTx.AddInput(&transaction.TransactionInput{
			SourceTXID:       hash,
			SourceTxOutIndex: u.Vout,
			SequenceNumber:   transaction.DefaultSequenceNumber,
		})
	}

	for i, out := range outputs {
		if out.Amount <= 0 {
			return nil, fmt.Errorf("%w: output %d amount %s", ErrInvalidOutput, i, amount.FormatBTC(out.Amount))
		}
		pkScript, err := AddressToScript(out.Address, params)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		sdkTx.AddOutput(&transaction.TransactionOutput{
			Satoshis:      uint64(out.Amount),
			LockingScript: script.NewFromBytes(pkScript),
		})
	}

	bundle := &UnsignedBundle{ChangeVout: -1}
	actualChange := sel.Change - opts.TxFee
	switch {
	case actualChange > 0:
		pkScript, err := AddressToScript(sender.SpendAddress(), params)
		if err != nil {
			return nil, fmt.Errorf("change: %w", err)
		}
		bundle.ChangeVout = len(sdkTx.Outputs)
		bundle.Change = actualChange
		bundle.Fee = opts.TxFee
		sdkTx.AddOutput(&transaction.TransactionOutput{
			Satoshis:      uint64(actualChange),
			LockingScript: script.NewFromBytes(pkScript),
		})
	case actualChange == 0:
		bundle.Fee = opts.TxFee
	default:
		if opts.FeePolicy == FeePolicyStrict {
			return nil, fmt.Errorf("%w: change %s, fee %s", ErrFeeShortfall,
				amount.FormatBTC(sel.Change), amount.FormatBTC(opts.TxFee))
		}
		bundle.Fee = sel.Change
		bundle.Shortfall = -actualChange
	}

	for i, payload := range payloads {
		if opts.MaxDataPayload > 0 && len(payload) > opts.MaxDataPayload {
			return nil, fmt.Errorf("%w: payload %d is %d bytes, limit %d", ErrInvalidPayload,
				i, len(payload), opts.MaxDataPayload)
		}
		s, err := DataScript(payload)
		if err != nil {
			return nil, fmt.Errorf("payload %d: %w", i, err)
		}
		sdkTx.AddOutput(&transaction.TransactionOutput{
			Satoshis:      0,
			LockingScript: s,
		})
	}

	switch s := sender.(type) {
	case *wallet.AddressInfo:
		bundle.PrivateKeys = s.SigningKeys()
	case *wallet.MultisigAddressInfo:
		bundle.PrivateKeys = s.SigningKeys()
		bundle.PrevTxs = make([]network.PrevTx, len(sel.UTXOs))
		for i, u := range sel.UTXOs {
			bundle.PrevTxs[i] = network.PrevTx{
				TxID:         u.TxID,
				Vout:         u.Vout,
				ScriptPubKey: u.ScriptPubKey,
				RedeemScript: s.Info.RedeemScript,
				Amount:       u.Amount,
			}
		}
	default:
		return nil, fmt.Errorf("%w: unsupported sender %T", ErrNilParam, sender)
	}

	bundle.Hex = sdkTx.Hex()
	bundle.TxID = sdkTx.TxID().String()
	return bundle, nil
}

// txidHash converts a display-order txid to the internal byte order.
func txidHash(txid string) (*chainhash.Hash, error) {
	b, err := hex.DecodeString(txid)
	if err != nil || len(b) != 32 {
		return nil, fmt.Errorf("%w: invalid UTXO TxID %q", ErrScriptBuild, txid)
	}
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return chainhash.NewHash(b)
}
