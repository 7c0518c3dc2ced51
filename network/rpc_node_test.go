package network

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcHandler func(params []interface{}) (interface{}, *RPCError)

// rpcTestServer creates a mock JSON-RPC server for testing RPCClient methods.
// handlers maps RPC method names to handler functions that receive the request params
// and return either a result or an RPCError.
func rpcTestServer(t *testing.T, handlers map[string]rpcHandler) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		handler, ok := handlers[req.Method]
		if !ok {
			t.Errorf("unexpected RPC method: %s", req.Method)
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(rpcResponse{ID: req.ID, Error: &RPCError{Code: -32601, Message: "Method not found"}})
			return
		}
		result, rpcErr := handler(req.Params)
		resp := rpcResponse{ID: req.ID}
		if rpcErr != nil {
			resp.Error = rpcErr
			w.WriteHeader(http.StatusInternalServerError)
		} else {
			resp.Result, _ = json.Marshal(result)
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

const testAddr = "mxd5o5xQc6Qvo956mHGkVX9ZvAfoNNh9Ec"

func TestGetNewAddress(t *testing.T) {
	var gotType string
	server := rpcTestServer(t, map[string]rpcHandler{
		"getnewaddress": func(params []interface{}) (interface{}, *RPCError) {
			require.Len(t, params, 2)
			assert.Equal(t, "", params[0])
			gotType = params[1].(string)
			return testAddr, nil
		},
	})
	defer server.Close()

	client := NewRPCClient(RPCConfig{URL: server.URL})
	addr, err := client.GetNewAddress(context.Background(), AddressBech32)
	require.NoError(t, err)
	assert.Equal(t, testAddr, addr)
	assert.Equal(t, "bech32", gotType)

	_, err = client.GetNewAddress(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "legacy", gotType)
}

func TestDumpPrivKey(t *testing.T) {
	server := rpcTestServer(t, map[string]rpcHandler{
		"dumpprivkey": func(params []interface{}) (interface{}, *RPCError) {
			assert.Equal(t, []interface{}{testAddr}, params)
			return "cRDAG3moz46jcmTb4AP1jnGCzYy8kkfexQVzTMBQcswr8DKEzCz4", nil
		},
	})
	defer server.Close()

	client := NewRPCClient(RPCConfig{URL: server.URL})
	wif, err := client.DumpPrivKey(context.Background(), testAddr)
	require.NoError(t, err)
	assert.Equal(t, "cRDAG3moz46jcmTb4AP1jnGCzYy8kkfexQVzTMBQcswr8DKEzCz4", wif)
}

func TestAddMultisigAddress(t *testing.T) {
	members := []string{"mt3rLTFHEW9YwSoUFcQFK8FzvEZhtyxSpx", "mpvR1XSmGW11WBwNYDmGZVbWFMEVRoCkAb"}
	server := rpcTestServer(t, map[string]rpcHandler{
		"addmultisigaddress": func(params []interface{}) (interface{}, *RPCError) {
			require.Len(t, params, 4)
			assert.Equal(t, float64(2), params[0])
			assert.Equal(t, []interface{}{members[0], members[1]}, params[1])
			assert.Equal(t, "", params[2])
			assert.Equal(t, "legacy", params[3])
			return map[string]string{
				"address":      "2N7pXoMCZjvbCJmo51t9WDrR7gR6k9VjZod",
				"redeemScript": "5221aa52ae",
			}, nil
		},
	})
	defer server.Close()

	client := NewRPCClient(RPCConfig{URL: server.URL})
	res, err := client.AddMultisigAddress(context.Background(), 2, members, AddressLegacy)
	require.NoError(t, err)
	assert.Equal(t, "2N7pXoMCZjvbCJmo51t9WDrR7gR6k9VjZod", res.Address)
	assert.Equal(t, "5221aa52ae", res.RedeemScript)
}

func TestAddMultisigAddressMissingFields(t *testing.T) {
	server := rpcTestServer(t, map[string]rpcHandler{
		"addmultisigaddress": func(params []interface{}) (interface{}, *RPCError) {
			return map[string]string{"address": "2N7pXoMCZjvbCJmo51t9WDrR7gR6k9VjZod"}, nil
		},
	})
	defer server.Close()

	client := NewRPCClient(RPCConfig{URL: server.URL})
	_, err := client.AddMultisigAddress(context.Background(), 1, []string{testAddr}, AddressLegacy)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestListUnspent(t *testing.T) {
	server := rpcTestServer(t, map[string]rpcHandler{
		"listunspent": func(params []interface{}) (interface{}, *RPCError) {
			// minconf=0, maxconf=9999999, ["address"]
			require.Len(t, params, 3)
			assert.Equal(t, float64(0), params[0])
			assert.Equal(t, float64(9999999), params[1])
			addrs, ok := params[2].([]interface{})
			require.True(t, ok)
			assert.Equal(t, testAddr, addrs[0])

			return []map[string]interface{}{
				{
					"txid":          "abc123def456",
					"vout":          0,
					"amount":        0.001,
					"scriptPubKey":  "76a914deadbeef88ac",
					"address":       testAddr,
					"confirmations": 6,
				},
				{
					"txid":          "fff000aaa111",
					"vout":          1,
					"amount":        0.29,
					"scriptPubKey":  "76a914cafebabe88ac",
					"address":       testAddr,
					"confirmations": 0,
				},
			}, nil
		},
	})
	defer server.Close()

	client := NewRPCClient(RPCConfig{URL: server.URL})
	utxos, err := client.ListUnspent(context.Background(), testAddr)
	require.NoError(t, err)
	require.Len(t, utxos, 2)

	assert.Equal(t, "abc123def456", utxos[0].TxID)
	assert.Equal(t, uint32(0), utxos[0].Vout)
	assert.Equal(t, btcutil.Amount(100_000), utxos[0].Amount)
	assert.Equal(t, int64(6), utxos[0].Confirmations)

	// 0.29 * 1e8 is 28999999.999999996 in float64; rounding recovers the integer.
	assert.Equal(t, btcutil.Amount(29_000_000), utxos[1].Amount)
	assert.Equal(t, int64(0), utxos[1].Confirmations)
}

func TestListUnspentEmpty(t *testing.T) {
	server := rpcTestServer(t, map[string]rpcHandler{
		"listunspent": func(params []interface{}) (interface{}, *RPCError) {
			return []interface{}{}, nil
		},
	})
	defer server.Close()

	client := NewRPCClient(RPCConfig{URL: server.URL})
	utxos, err := client.ListUnspent(context.Background(), testAddr)
	require.NoError(t, err)
	assert.Empty(t, utxos)
}

func TestGetRawTransaction(t *testing.T) {
	server := rpcTestServer(t, map[string]rpcHandler{
		"getrawtransaction": func(params []interface{}) (interface{}, *RPCError) {
			assert.Equal(t, []interface{}{"txid1", false}, params)
			return "0100abcd", nil
		},
	})
	defer server.Close()

	client := NewRPCClient(RPCConfig{URL: server.URL})
	raw, err := client.GetRawTransaction(context.Background(), "txid1")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x00, 0xab, 0xcd}, raw)
}

func TestGetRawTransactionBadHex(t *testing.T) {
	server := rpcTestServer(t, map[string]rpcHandler{
		"getrawtransaction": func(params []interface{}) (interface{}, *RPCError) {
			return "zz", nil
		},
	})
	defer server.Close()

	client := NewRPCClient(RPCConfig{URL: server.URL})
	_, err := client.GetRawTransaction(context.Background(), "txid1")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestSignRawTransactionWithKeyPrevTxs(t *testing.T) {
	var body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		var req rpcRequest
		require.NoError(t, json.Unmarshal(raw, &req))
		json.NewEncoder(w).Encode(rpcResponse{
			ID:     req.ID,
			Result: json.RawMessage(`{"hex":"0200signed","complete":true}`),
		})
	}))
	defer server.Close()

	client := NewRPCClient(RPCConfig{URL: server.URL})
	res, err := client.SignRawTransactionWithKey(context.Background(), "0200",
		[]PrevTx{{TxID: "aa", Vout: 1, ScriptPubKey: "a914bb87", RedeemScript: "5221cc52ae", Amount: 100_000_000}},
		[]string{"k1", "k2"})
	require.NoError(t, err)
	assert.True(t, res.Complete)
	assert.Equal(t, "0200signed", res.Hex)

	assert.Contains(t, body, `"method":"signrawtransactionwithkey"`)
	assert.Contains(t, body, `["0200",["k1","k2"],[{"txid":"aa","vout":1,"scriptPubKey":"a914bb87","redeemScript":"5221cc52ae","amount":1.00000000}]]`)
}

func TestSignRawTransactionWithKeyNoPrevTxs(t *testing.T) {
	server := rpcTestServer(t, map[string]rpcHandler{
		"signrawtransactionwithkey": func(params []interface{}) (interface{}, *RPCError) {
			require.Len(t, params, 2)
			return map[string]interface{}{
				"hex":      "0200partial",
				"complete": false,
				"errors": []map[string]interface{}{
					{"txid": "aa", "vout": 0, "scriptSig": "", "sequence": 4294967295, "error": "Unable to sign input"},
				},
			}, nil
		},
	})
	defer server.Close()

	client := NewRPCClient(RPCConfig{URL: server.URL})
	res, err := client.SignRawTransactionWithKey(context.Background(), "0200", nil, []string{"k1"})
	require.NoError(t, err)
	assert.False(t, res.Complete)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Unable to sign input", res.Errors[0].Error)
	assert.Equal(t, uint32(4294967295), res.Errors[0].Sequence)
}

func TestSendRawTransaction(t *testing.T) {
	server := rpcTestServer(t, map[string]rpcHandler{
		"sendrawtransaction": func(params []interface{}) (interface{}, *RPCError) {
			assert.Equal(t, []interface{}{"0200signed"}, params)
			return "txid42", nil
		},
	})
	defer server.Close()

	client := NewRPCClient(RPCConfig{URL: server.URL})
	txid, err := client.SendRawTransaction(context.Background(), "0200signed")
	require.NoError(t, err)
	assert.Equal(t, "txid42", txid)
}

func TestSendRawTransactionRejected(t *testing.T) {
	server := rpcTestServer(t, map[string]rpcHandler{
		"sendrawtransaction": func(params []interface{}) (interface{}, *RPCError) {
			return nil, &RPCError{Code: -26, Message: "min relay fee not met"}
		},
	})
	defer server.Close()

	client := NewRPCClient(RPCConfig{URL: server.URL})
	_, err := client.SendRawTransaction(context.Background(), "0200signed")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBroadcastRejected)
	assert.ErrorIs(t, err, ErrRPC)
	assert.Contains(t, err.Error(), "min relay fee not met")
}

func TestSendRawTransactionNodeDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewRPCClient(RPCConfig{URL: server.URL})
	_, err := client.SendRawTransaction(context.Background(), "0200signed")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNodeUnavailable)
	assert.NotErrorIs(t, err, ErrBroadcastRejected)
	assert.NotErrorIs(t, err, ErrRPC)

	server.Close()
	_, err = client.SendRawTransaction(context.Background(), "0200signed")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNodeUnavailable)
	assert.NotErrorIs(t, err, ErrBroadcastRejected)
}

func TestGenerateBlocks(t *testing.T) {
	server := rpcTestServer(t, map[string]rpcHandler{
		"getnewaddress": func(params []interface{}) (interface{}, *RPCError) {
			return testAddr, nil
		},
		"generatetoaddress": func(params []interface{}) (interface{}, *RPCError) {
			assert.Equal(t, []interface{}{float64(2), testAddr}, params)
			return []string{"h1", "h2"}, nil
		},
	})
	defer server.Close()

	client := NewRPCClient(RPCConfig{URL: server.URL})
	hashes, err := client.GenerateBlocks(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"h1", "h2"}, hashes)
}

func TestImportAddress(t *testing.T) {
	server := rpcTestServer(t, map[string]rpcHandler{
		"importaddress": func(params []interface{}) (interface{}, *RPCError) {
			assert.Equal(t, []interface{}{testAddr, "watch", true}, params)
			return nil, nil
		},
	})
	defer server.Close()

	client := NewRPCClient(RPCConfig{URL: server.URL})
	require.NoError(t, client.ImportAddress(context.Background(), testAddr, "watch"))
}

func TestSendToAddressEightDecimals(t *testing.T) {
	var body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		var req rpcRequest
		require.NoError(t, json.Unmarshal(raw, &req))
		json.NewEncoder(w).Encode(rpcResponse{ID: req.ID, Result: json.RawMessage(`"fundtx"`)})
	}))
	defer server.Close()

	client := NewRPCClient(RPCConfig{URL: server.URL})
	txid, err := client.SendToAddress(context.Background(), testAddr, 300_000_000)
	require.NoError(t, err)
	assert.Equal(t, "fundtx", txid)
	assert.Contains(t, body, `"params":["`+testAddr+`",3.00000000]`)
}

func TestGetTxStatus(t *testing.T) {
	server := rpcTestServer(t, map[string]rpcHandler{
		"getrawtransaction": func(params []interface{}) (interface{}, *RPCError) {
			assert.Equal(t, []interface{}{"txid1", true}, params)
			return map[string]interface{}{
				"txid":          "txid1",
				"confirmations": 3,
				"blockhash":     "00ff",
				"blocktime":     1700000000,
			}, nil
		},
	})
	defer server.Close()

	client := NewRPCClient(RPCConfig{URL: server.URL})
	status, err := client.GetTxStatus(context.Background(), "txid1")
	require.NoError(t, err)
	assert.True(t, status.Confirmed)
	assert.Equal(t, int64(3), status.Confirmations)
	assert.Equal(t, "00ff", status.BlockHash)
	assert.Equal(t, int64(1700000000), status.BlockTime)
}

func TestGetTxStatusMempool(t *testing.T) {
	server := rpcTestServer(t, map[string]rpcHandler{
		"getrawtransaction": func(params []interface{}) (interface{}, *RPCError) {
			return map[string]interface{}{"txid": "txid1"}, nil
		},
	})
	defer server.Close()

	client := NewRPCClient(RPCConfig{URL: server.URL})
	status, err := client.GetTxStatus(context.Background(), "txid1")
	require.NoError(t, err)
	assert.False(t, status.Confirmed)
	assert.Empty(t, status.BlockHash)
}

func TestGetBlockCount(t *testing.T) {
	server := rpcTestServer(t, map[string]rpcHandler{
		"getblockcount": func(params []interface{}) (interface{}, *RPCError) {
			return 101, nil
		},
	})
	defer server.Close()

	client := NewRPCClient(RPCConfig{URL: server.URL})
	height, err := client.GetBlockCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(101), height)
}
