package tx

import (
	"context"
	"fmt"

	"github.com/bitfsorg/libbtctx-go/amount"
	"github.com/bitfsorg/libbtctx-go/network"
	"github.com/btcsuite/btcd/btcutil"
)

// UnspentLister returns the unspent outputs of an address in node order.
type UnspentLister interface {
	ListUnspent(ctx context.Context, address string) ([]*network.UTXO, error)
}

// Selection is a set of outputs chosen to cover a target amount.
type Selection struct {
	// UTXOs in the order they were accumulated.
	UTXOs []*network.UTXO

	// Change is the accumulated value minus the target, before any fee.
	Change btcutil.Amount
}

// Total is the accumulated value of the selected outputs.
func (s *Selection) Total() btcutil.Amount {
	var total btcutil.Amount
	for _, u := range s.UTXOs {
		total += u.Amount
	}
	return total
}

// ChangeBTC is Change in the display unit.
func (s *Selection) ChangeBTC() float64 {
	return amount.ToBTC(s.Change)
}

// SelectUTXOs accumulates utxos greedily in the given order until their sum
// reaches target. No reordering is attempted, so the result is the shortest
// prefix of utxos whose sum is at least target.
func SelectUTXOs(utxos []*network.UTXO, target btcutil.Amount) (*Selection, error) {
	sel, acc := accumulate(utxos, target)
	if sel == nil {
		return nil, fmt.Errorf("%w: have %s, need %s", ErrInsufficientFunds,
			amount.FormatBTC(acc), amount.FormatBTC(target))
	}
	return sel, nil
}

// SelectSpendable fetches the full unspent set of address and selects from it.
// Unconfirmed outputs are eligible.
func SelectSpendable(ctx context.Context, lister UnspentLister, address string, target btcutil.Amount) (*Selection, error) {
	utxos, err := lister.ListUnspent(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("tx: list unspent of %s: %w", address, err)
	}
	sel, acc := accumulate(utxos, target)
	if sel == nil {
		return nil, fmt.Errorf("%w: address %s has %s, need %s", ErrInsufficientFunds,
			address, amount.FormatBTC(acc), amount.FormatBTC(target))
	}
	return sel, nil
}

// accumulate returns nil and the full sum when utxos cannot cover target.
func accumulate(utxos []*network.UTXO, target btcutil.Amount) (*Selection, btcutil.Amount) {
	var (
		acc      btcutil.Amount
		selected []*network.UTXO
	)
	for _, u := range utxos {
		if acc >= target {
			break
		}
		selected = append(selected, u)
		acc += u.Amount
	}
	if acc < target {
		return nil, acc
	}
	return &Selection{UTXOs: selected, Change: acc - target}, acc
}
