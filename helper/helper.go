// Package helper moves funds between node-held identities on a
// Bitcoin-compatible chain.
//
// A Helper selects the sender's unspent outputs, assembles an unsigned
// transaction, has the node sign it with the sender's keys and broadcasts the
// result. Signing and broadcast are delegated to the node; the Helper holds
// no keys of its own and caches nothing between calls.
package helper

import (
	"bytes"
	"context"
	"fmt"

	"github.com/bitfsorg/libbtctx-go/amount"
	"github.com/bitfsorg/libbtctx-go/config"
	"github.com/bitfsorg/libbtctx-go/network"
	"github.com/bitfsorg/libbtctx-go/tx"
	"github.com/bitfsorg/libbtctx-go/wallet"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
)

// Options are the per-instance transfer settings.
type Options struct {
	// TxFee is the fixed fee deducted from the change of every transfer.
	TxFee     btcutil.Amount
	FeePolicy tx.FeePolicy

	// Params selects the network addresses belong to. Nil means regtest.
	Params *chaincfg.Params

	// MaxDataPayload caps each data embed in bytes. Zero means no limit.
	MaxDataPayload int
}

// RecipientOutput is one payment of a transfer, in BTC.
type RecipientOutput struct {
	RecipientAddress string
	AmountBTC        float64
}

// Helper is safe for concurrent use. Concurrent transfers from the same
// address may pick the same outputs; the node rejects all but the first.
type Helper struct {
	node network.Node
	prov *wallet.Provisioner
	opts Options
}

// New validates cfg and returns a Helper talking JSON-RPC to the node it
// describes.
func New(cfg config.Config) (*Helper, error) {
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	params, err := wallet.GetNetwork(cfg.Network)
	if err != nil {
		return nil, err
	}
	policy, err := tx.ParseFeePolicy(cfg.FeePolicy)
	if err != nil {
		return nil, err
	}
	node := network.NewRPCClient(cfg.RPCConfig())
	return NewWithNode(node, Options{
		TxFee:     cfg.TxFee,
		FeePolicy: policy,
		Params:    params,
	}), nil
}

// NewWithNode returns a Helper backed by an existing node client.
func NewWithNode(node network.Node, opts Options) *Helper {
	if opts.Params == nil {
		opts.Params = &chaincfg.RegressionNetParams
	}
	return &Helper{
		node: node,
		prov: wallet.NewProvisioner(node),
		opts: opts,
	}
}

// Node returns the underlying node client.
func (h *Helper) Node() network.Node { return h.node }

// Params returns the chain parameters addresses are checked against.
func (h *Helper) Params() *chaincfg.Params { return h.opts.Params }

// GetFee returns the configured fee in BTC.
func (h *Helper) GetFee() float64 { return amount.ToBTC(h.opts.TxFee) }

// TransferBTC pays every output from sender's address, appends one data
// embed per payload, and returns the broadcast txid.
//
// Nothing is broadcast unless the node signed every input. Every failure is
// a *TransferError naming the stage that failed.
func (h *Helper) TransferBTC(ctx context.Context, sender wallet.Sender, outputs []RecipientOutput, data ...[]byte) (string, error) {
	recipients, total, err := h.validate(sender, outputs)
	if err != nil {
		return "", &TransferError{Stage: StageValidate, Err: err}
	}

	sel, err := tx.SelectSpendable(ctx, h.node, sender.SpendAddress(), total)
	if err != nil {
		return "", &TransferError{Stage: StageSelect, Err: err}
	}
	log.Debugf("Selected %d outputs of %s for %s, change %s",
		len(sel.UTXOs), sender.SpendAddress(), amount.FormatBTC(total), amount.FormatBTC(sel.Change))

	bundle, err := tx.Build(sel, recipients, sender, data, tx.BuildOptions{
		TxFee:          h.opts.TxFee,
		FeePolicy:      h.opts.FeePolicy,
		Params:         h.opts.Params,
		MaxDataPayload: h.opts.MaxDataPayload,
	})
	if err != nil {
		return "", &TransferError{Stage: StageBuild, Err: err}
	}
	if bundle.Shortfall > 0 {
		log.Warnf("Change of %s is %s short of the %s fee; sending without change",
			amount.FormatBTC(sel.Change), amount.FormatBTC(bundle.Shortfall),
			amount.FormatBTC(h.opts.TxFee))
	}

	signed, err := h.node.SignRawTransactionWithKey(ctx, bundle.Hex, bundle.PrevTxs, bundle.PrivateKeys)
	if err != nil {
		return "", &TransferError{Stage: StageSign, Err: err}
	}
	if !signed.Complete {
		return "", &TransferError{Stage: StageSign, Err: &SigningError{Errors: signed.Errors}}
	}

	txid, err := h.node.SendRawTransaction(ctx, signed.Hex)
	if err != nil {
		return "", &TransferError{Stage: StageBroadcast, Err: err}
	}

	log.Infof("Transferred %s from %s in %s (%d outputs, fee %s)",
		amount.FormatBTC(total), sender.SpendAddress(), txid, len(recipients), amount.FormatBTC(bundle.Fee))
	return txid, nil
}

// validate converts outputs to satoshis and returns them with their sum.
func (h *Helper) validate(sender wallet.Sender, outputs []RecipientOutput) ([]tx.Recipient, btcutil.Amount, error) {
	if sender == nil {
		return nil, 0, ErrNilSender
	}
	if err := sender.Validate(); err != nil {
		return nil, 0, err
	}
	if len(outputs) == 0 {
		return nil, 0, fmt.Errorf("%w: no outputs", ErrInvalidRecipient)
	}

	recipients := make([]tx.Recipient, len(outputs))
	var total btcutil.Amount
	for i, out := range outputs {
		if out.RecipientAddress == "" {
			return nil, 0, fmt.Errorf("%w: output %d has no address", ErrInvalidRecipient, i)
		}
		sat, err := amount.ToSatoshis(out.AmountBTC)
		if err != nil {
			return nil, 0, fmt.Errorf("output %d: %w", i, err)
		}
		if sat <= 0 || sat > btcutil.MaxSatoshi {
			return nil, 0, fmt.Errorf("%w: output %d amount %v", ErrInvalidRecipient, i, out.AmountBTC)
		}
		// Both terms are at most MaxSatoshi, so the sum cannot overflow.
		total += sat
		if total > btcutil.MaxSatoshi {
			return nil, 0, fmt.Errorf("%w: outputs total more than %s BTC", ErrInvalidRecipient,
				amount.FormatBTC(btcutil.MaxSatoshi))
		}
		recipients[i] = tx.Recipient{Address: out.RecipientAddress, Amount: sat}
	}
	return recipients, total, nil
}

// GenerateAddress creates a single-key identity in the node wallet.
func (h *Helper) GenerateAddress(ctx context.Context, addrType network.AddressType) (*wallet.AddressInfo, error) {
	info, err := h.prov.GenerateAddress(ctx, addrType)
	if err != nil {
		return nil, err
	}
	log.Debugf("Generated %s address %s", addrTypeOrDefault(addrType), info.Address)
	return info, nil
}

// GenerateMultisigAddress creates an n-of-m identity. Zero values select
// DefaultSignerSize and DefaultRequiredSigners.
func (h *Helper) GenerateMultisigAddress(ctx context.Context, signerSize, requiredSigners int, addrType network.AddressType) (*wallet.MultisigAddressInfo, error) {
	info, err := h.prov.GenerateMultisigAddress(ctx, signerSize, requiredSigners, addrType)
	if err != nil {
		return nil, err
	}
	log.Debugf("Generated %d-of-%d %s multisig %s", info.Info.RequiredSigners,
		len(info.Info.Members), addrTypeOrDefault(addrType), info.Address)
	return info, nil
}

func addrTypeOrDefault(t network.AddressType) network.AddressType {
	if t == "" {
		return network.AddressLegacy
	}
	return t
}

// SelectSpendable picks outputs of address covering amountBTC.
func (h *Helper) SelectSpendable(ctx context.Context, address string, amountBTC float64) (*tx.Selection, error) {
	target, err := amount.ToSatoshis(amountBTC)
	if err != nil {
		return nil, err
	}
	return tx.SelectSpendable(ctx, h.node, address, target)
}

// GetUtxos returns every unspent output of address, unconfirmed included.
func (h *Helper) GetUtxos(ctx context.Context, address string) ([]*network.UTXO, error) {
	return h.node.ListUnspent(ctx, address)
}

// GetAddressBalance sums the unspent outputs of address, in BTC.
func (h *Helper) GetAddressBalance(ctx context.Context, address string) (float64, error) {
	sat, err := h.balance(ctx, address)
	if err != nil {
		return 0, err
	}
	return amount.ToBTC(sat), nil
}

func (h *Helper) balance(ctx context.Context, address string) (btcutil.Amount, error) {
	utxos, err := h.node.ListUnspent(ctx, address)
	if err != nil {
		return 0, err
	}
	amounts := make([]btcutil.Amount, len(utxos))
	for i, u := range utxos {
		amounts[i] = u.Amount
	}
	return amount.Sum(amounts...), nil
}

// ImportAddress adds address to the node wallet as watch-only and rescans,
// so its outputs show up in GetUtxos.
func (h *Helper) ImportAddress(ctx context.Context, address, label string) error {
	if err := h.node.ImportAddress(ctx, address, label); err != nil {
		return err
	}
	log.Debugf("Imported %s", address)
	return nil
}

// FundAddress sends amountBTC from the node wallet to address and, if mine
// is set, mines one block to confirm it.
func (h *Helper) FundAddress(ctx context.Context, address string, amountBTC float64, mine bool) (string, error) {
	sat, err := amount.ToSatoshis(amountBTC)
	if err != nil {
		return "", err
	}
	if sat <= 0 {
		return "", fmt.Errorf("%w: fund amount %v", ErrInvalidRecipient, amountBTC)
	}
	txid, err := h.node.SendToAddress(ctx, address, sat)
	if err != nil {
		return "", err
	}
	log.Infof("Funded %s with %s in %s", address, amount.FormatBTC(sat), txid)
	if mine {
		if _, err := h.Mine(ctx, 1); err != nil {
			return txid, err
		}
	}
	return txid, nil
}

// Mine generates blocks to a fresh node address. Values below one mine a
// single block.
func (h *Helper) Mine(ctx context.Context, blocks int) ([]string, error) {
	if blocks < 1 {
		blocks = 1
	}
	hashes, err := h.node.GenerateBlocks(ctx, blocks)
	if err != nil {
		return nil, err
	}
	log.Debugf("Mined %d blocks", len(hashes))
	return hashes, nil
}

// GetTransaction fetches and decodes a transaction. Both the witness and
// the legacy serialization are accepted.
func (h *Helper) GetTransaction(ctx context.Context, txid string) (*wire.MsgTx, error) {
	raw, err := h.node.GetRawTransaction(ctx, txid)
	if err != nil {
		return nil, err
	}
	var msg wire.MsgTx
	if err := msg.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", network.ErrInvalidResponse, txid, err)
	}
	return &msg, nil
}

// GetOutputAddress returns the address an output script pays to. It
// reports false for data embeds and non-standard scripts.
func (h *Helper) GetOutputAddress(pkScript []byte) (string, bool) {
	return tx.ScriptToAddress(pkScript, h.opts.Params)
}

// DecodeBase58Address returns the hex hash160 carried by a base58 address.
func (h *Helper) DecodeBase58Address(address string) (string, error) {
	return tx.DecodeBase58Address(address)
}

// GetTxStatus reports whether txid is confirmed.
func (h *Helper) GetTxStatus(ctx context.Context, txid string) (*network.TxStatus, error) {
	return h.node.GetTxStatus(ctx, txid)
}
