package tx

import (
	"encoding/hex"
	"fmt"

	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// StandardDataPayload is the largest data embed older nodes relay as
// standard. Set BuildOptions.MaxDataPayload to it to enforce that locally.
const StandardDataPayload = txscript.MaxDataCarrierSize

// AddressToScript returns the locking script paying to addr on params.
// P2PKH, P2SH, P2WPKH, P2WSH and P2TR addresses are supported.
func AddressToScript(addr string, params *chaincfg.Params) ([]byte, error) {
	a, err := btcutil.DecodeAddress(addr, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidAddress, addr, err)
	}
	if !a.IsForNet(params) {
		return nil, fmt.Errorf("%w: %q is not a %s address", ErrInvalidAddress, addr, params.Name)
	}
	pkScript, err := txscript.PayToAddrScript(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrScriptBuild, addr, err)
	}
	return pkScript, nil
}

// ScriptToAddress returns the address a locking script pays to. The boolean
// is false for data embeds, bare multisig and other scripts without a
// single address.
func ScriptToAddress(pkScript []byte, params *chaincfg.Params) (string, bool) {
	class, addrs, _, err := txscript.ExtractPkScriptAddrs(pkScript, params)
	if err != nil || len(addrs) != 1 {
		return "", false
	}
	switch class {
	case txscript.PubKeyHashTy, txscript.ScriptHashTy,
		txscript.WitnessV0PubKeyHashTy, txscript.WitnessV0ScriptHashTy,
		txscript.WitnessV1TaprootTy:
		return addrs[0].EncodeAddress(), true
	}
	return "", false
}

// DecodeBase58Address decodes a base58check address and returns the hex of
// its 20-byte hash. The version byte is not checked against any network.
func DecodeBase58Address(addr string) (string, error) {
	hash, _, err := base58.CheckDecode(addr)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidAddress, addr, err)
	}
	if len(hash) != 20 {
		return "", fmt.Errorf("%w: %q decodes to %d bytes", ErrInvalidAddress, addr, len(hash))
	}
	return hex.EncodeToString(hash), nil
}

// DataScript builds the zero-value data embed script OP_RETURN <payload>.
// Any length is accepted; an empty payload is pushed as OP_0. Whether the
// node relays the result is left to its policy at broadcast.
//
// No OP_FALSE prefix is emitted; OP_0 OP_RETURN is non-standard for relay.
func DataScript(payload []byte) (*script.Script, error) {
	s := &script.Script{}
	*s = append(*s, script.OpRETURN)
	if len(payload) == 0 {
		*s = append(*s, script.Op0)
		return s, nil
	}
	if err := s.AppendPushData(payload); err != nil {
		return nil, fmt.Errorf("%w: OP_RETURN push data: %w", ErrScriptBuild, err)
	}
	return s, nil
}

// EmbeddedData returns the payload of a data embed script: OP_RETURN
// followed by exactly one push. OP_0 yields an empty payload and the small
// integer opcodes yield their one-byte value.
func EmbeddedData(pkScript []byte) ([]byte, bool) {
	if len(pkScript) < 2 || pkScript[0] != txscript.OP_RETURN {
		return nil, false
	}

	tokenizer := txscript.MakeScriptTokenizer(0, pkScript[1:])
	if !tokenizer.Next() {
		return nil, false
	}
	op, data := tokenizer.Opcode(), tokenizer.Data()
	if tokenizer.Next() || tokenizer.Err() != nil {
		return nil, false
	}

	switch {
	case data != nil:
		return data, true
	case op == txscript.OP_0:
		return []byte{}, true
	case op >= txscript.OP_1 && op <= txscript.OP_16:
		return []byte{op - txscript.OP_1 + 1}, true
	case op == txscript.OP_1NEGATE:
		return []byte{0x81}, true
	}
	return nil, false
}
