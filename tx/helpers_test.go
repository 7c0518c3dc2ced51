package tx

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/bitfsorg/libbtctx-go/network"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
)

var regtest = &chaincfg.RegressionNetParams

func p2pkhAddr(t *testing.T, seed byte) string {
	t.Helper()
	a, err := btcutil.NewAddressPubKeyHash(bytes.Repeat([]byte{seed}, 20), regtest)
	require.NoError(t, err)
	return a.EncodeAddress()
}

func p2shAddr(t *testing.T, seed byte) string {
	t.Helper()
	a, err := btcutil.NewAddressScriptHashFromHash(bytes.Repeat([]byte{seed}, 20), regtest)
	require.NoError(t, err)
	return a.EncodeAddress()
}

func p2wpkhAddr(t *testing.T, seed byte) string {
	t.Helper()
	a, err := btcutil.NewAddressWitnessPubKeyHash(bytes.Repeat([]byte{seed}, 20), regtest)
	require.NoError(t, err)
	return a.EncodeAddress()
}

// testUTXO returns an output whose txid is 32 copies of seed.
func testUTXO(seed byte, vout uint32, sat btcutil.Amount) *network.UTXO {
	return &network.UTXO{
		TxID:         hex.EncodeToString(bytes.Repeat([]byte{seed}, 32)),
		Vout:         vout,
		Amount:       sat,
		ScriptPubKey: fmt.Sprintf("a914%s87", hex.EncodeToString(bytes.Repeat([]byte{seed}, 20))),
	}
}

func decodeTx(t *testing.T, rawHex string) *wire.MsgTx {
	t.Helper()
	raw, err := hex.DecodeString(rawHex)
	require.NoError(t, err)
	var msg wire.MsgTx
	require.NoError(t, msg.Deserialize(bytes.NewReader(raw)))
	return &msg
}
