package tx

import (
	"context"
	"errors"
	"testing"

	"github.com/bitfsorg/libbtctx-go/network"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeUTXOs() []*network.UTXO {
	return []*network.UTXO{
		testUTXO(0x01, 0, 1000),
		testUTXO(0x02, 1, 2000),
		testUTXO(0x03, 0, 3000),
	}
}

func TestSelectUTXOs(t *testing.T) {
	tests := []struct {
		name       string
		target     btcutil.Amount
		wantCount  int
		wantChange btcutil.Amount
	}{
		{"two outputs with change", 2000, 2, 1000},
		{"first output exact", 1000, 1, 0},
		{"all outputs exact", 6000, 3, 0},
		{"just over first", 1001, 2, 1999},
		{"all outputs with change", 3001, 3, 2999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			utxos := threeUTXOs()
			sel, err := SelectUTXOs(utxos, tt.target)
			require.NoError(t, err)
			require.Len(t, sel.UTXOs, tt.wantCount)
			assert.Equal(t, tt.wantChange, sel.Change)
			assert.Equal(t, utxos[:tt.wantCount], sel.UTXOs, "selection keeps node order")
			assert.Equal(t, tt.target+tt.wantChange, sel.Total())
		})
	}
}

func TestSelectUTXOsInsufficient(t *testing.T) {
	_, err := SelectUTXOs(threeUTXOs(), 8000)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Contains(t, err.Error(), "0.00006000")
	assert.Contains(t, err.Error(), "0.00008000")

	_, err = SelectUTXOs(nil, 1)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestSelectUTXOsLowerBound(t *testing.T) {
	utxos := []*network.UTXO{
		testUTXO(0x01, 0, 700),
		testUTXO(0x02, 0, 1),
		testUTXO(0x03, 0, 50_000),
		testUTXO(0x04, 0, 300),
		testUTXO(0x05, 0, 12_345),
	}
	for target := btcutil.Amount(1); target <= 63_346; target += 97 {
		sel, err := SelectUTXOs(utxos, target)
		require.NoError(t, err, "target %d", target)

		total := sel.Total()
		assert.GreaterOrEqual(t, int64(total), int64(target))
		last := sel.UTXOs[len(sel.UTXOs)-1].Amount
		assert.Less(t, int64(total-last), int64(target), "dropping the last output must fall short")
		assert.Equal(t, total-target, sel.Change)
	}
}

func TestSelectionChangeBTC(t *testing.T) {
	sel, err := SelectUTXOs([]*network.UTXO{testUTXO(0x01, 0, 300_000_000)}, 100_000_000)
	require.NoError(t, err)
	assert.Equal(t, 2.0, sel.ChangeBTC())
}

func TestSelectSpendable(t *testing.T) {
	addr := p2pkhAddr(t, 0x10)
	lister := &network.MockNode{
		ListUnspentFn: func(ctx context.Context, address string) ([]*network.UTXO, error) {
			assert.Equal(t, addr, address)
			return threeUTXOs(), nil
		},
	}

	sel, err := SelectSpendable(context.Background(), lister, addr, 2000)
	require.NoError(t, err)
	assert.Len(t, sel.UTXOs, 2)
	assert.Equal(t, btcutil.Amount(1000), sel.Change)

	_, err = SelectSpendable(context.Background(), lister, addr, 8000)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Contains(t, err.Error(), addr)
}

func TestSelectSpendableListError(t *testing.T) {
	lister := &network.MockNode{
		ListUnspentFn: func(ctx context.Context, address string) ([]*network.UTXO, error) {
			return nil, network.ErrNodeUnavailable
		},
	}
	_, err := SelectSpendable(context.Background(), lister, "addr", 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, network.ErrNodeUnavailable))
	assert.False(t, errors.Is(err, ErrInsufficientFunds))
}
