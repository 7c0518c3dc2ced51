package network

import (
	"context"

	"github.com/btcsuite/btcd/btcutil"
)

// MockNode is a test double for Node.
// All function fields must be set before the corresponding method is called.
type MockNode struct {
	GetNewAddressFn             func(ctx context.Context, addrType AddressType) (string, error)
	DumpPrivKeyFn               func(ctx context.Context, address string) (string, error)
	AddMultisigAddressFn        func(ctx context.Context, required int, addresses []string, addrType AddressType) (*MultisigResult, error)
	ListUnspentFn               func(ctx context.Context, address string) ([]*UTXO, error)
	GetRawTransactionFn         func(ctx context.Context, txid string) ([]byte, error)
	SignRawTransactionWithKeyFn func(ctx context.Context, rawTxHex string, prevTxs []PrevTx, keys []string) (*SignResult, error)
	SendRawTransactionFn        func(ctx context.Context, rawTxHex string) (string, error)
	GenerateBlocksFn            func(ctx context.Context, n int) ([]string, error)
	ImportAddressFn             func(ctx context.Context, address, label string) error
	SendToAddressFn             func(ctx context.Context, address string, amount btcutil.Amount) (string, error)
	GetTxStatusFn               func(ctx context.Context, txid string) (*TxStatus, error)
	GetBlockCountFn             func(ctx context.Context) (int64, error)
}

var _ Node = (*MockNode)(nil)

func (m *MockNode) GetNewAddress(ctx context.Context, addrType AddressType) (string, error) {
	return m.GetNewAddressFn(ctx, addrType)
}
func (m *MockNode) DumpPrivKey(ctx context.Context, address string) (string, error) {
	return m.DumpPrivKeyFn(ctx, address)
}
func (m *MockNode) AddMultisigAddress(ctx context.Context, required int, addresses []string, addrType AddressType) (*MultisigResult, error) {
	return m.AddMultisigAddressFn(ctx, required, addresses, addrType)
}
func (m *MockNode) ListUnspent(ctx context.Context, address string) ([]*UTXO, error) {
	return m.ListUnspentFn(ctx, address)
}
func (m *MockNode) GetRawTransaction(ctx context.Context, txid string) ([]byte, error) {
	return m.GetRawTransactionFn(ctx, txid)
}
func (m *MockNode) SignRawTransactionWithKey(ctx context.Context, rawTxHex string, prevTxs []PrevTx, keys []string) (*SignResult, error) {
	return m.SignRawTransactionWithKeyFn(ctx, rawTxHex, prevTxs, keys)
}
func (m *MockNode) SendRawTransaction(ctx context.Context, rawTxHex string) (string, error) {
	return m.SendRawTransactionFn(ctx, rawTxHex)
}
func (m *MockNode) GenerateBlocks(ctx context.Context, n int) ([]string, error) {
	return m.GenerateBlocksFn(ctx, n)
}
func (m *MockNode) ImportAddress(ctx context.Context, address, label string) error {
	return m.ImportAddressFn(ctx, address, label)
}
func (m *MockNode) SendToAddress(ctx context.Context, address string, amount btcutil.Amount) (string, error) {
	return m.SendToAddressFn(ctx, address, amount)
}
func (m *MockNode) GetTxStatus(ctx context.Context, txid string) (*TxStatus, error) {
	return m.GetTxStatusFn(ctx, txid)
}
func (m *MockNode) GetBlockCount(ctx context.Context) (int64, error) {
	return m.GetBlockCountFn(ctx)
}
