package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMultisig() *MultisigAddressInfo {
	return &MultisigAddressInfo{
		Address: "2N7pXoMCZjvbCJmo51t9WDrR7gR6k9VjZod",
		Info: MultisigInfo{
			Members: []AddressInfo{
				{Address: "mt3rLTFHEW9YwSoUFcQFK8FzvEZhtyxSpx", PrivateKey: "cPXuhqdZVBpCfsvFM55hEpqTkmUi3K6GpPKREboHjhfh5MGRMmqp"},
				{Address: "mpvR1XSmGW11WBwNYDmGZVbWFMEVRoCkAb", PrivateKey: "cTVq2Kg2PYEBTEb9ppVSwJ1P8xd8Uo5mancEX3FG9o4i727dthKu"},
			},
			RequiredSigners: 2,
			RedeemScript:    "522103ebff0e5dc444e25c72d199e3f2ba22bfef8124bb7a00ba813d691300be2d6c4521031e35f8641a77b5388e3deb31ae6321059231c3bda238405e0d3667668ff8cb8d52ae",
		},
	}
}

func TestAddressInfoSender(t *testing.T) {
	a := &AddressInfo{Address: "mxd5o5xQc6Qvo956mHGkVX9ZvAfoNNh9Ec", PrivateKey: "cRDAG3moz46jcmTb4AP1jnGCzYy8kkfexQVzTMBQcswr8DKEzCz4"}
	assert.Equal(t, a.Address, a.SpendAddress())
	assert.Equal(t, []string{a.PrivateKey}, a.SigningKeys())
	assert.NoError(t, a.Validate())
}

func TestMultisigSigningKeysInMemberOrder(t *testing.T) {
	m := testMultisig()
	assert.Equal(t, m.Address, m.SpendAddress())
	assert.Equal(t, []string{
		"cPXuhqdZVBpCfsvFM55hEpqTkmUi3K6GpPKREboHjhfh5MGRMmqp",
		"cTVq2Kg2PYEBTEb9ppVSwJ1P8xd8Uo5mancEX3FG9o4i727dthKu",
	}, m.SigningKeys())
	assert.NoError(t, m.Validate())
}

func TestSenderTypeSwitch(t *testing.T) {
	var senders = []Sender{&AddressInfo{Address: "a", PrivateKey: "k"}, testMultisig()}
	kinds := make([]string, 0, len(senders))
	for _, s := range senders {
		switch s.(type) {
		case *AddressInfo:
			kinds = append(kinds, "single")
		case *MultisigAddressInfo:
			kinds = append(kinds, "multisig")
		}
	}
	assert.Equal(t, []string{"single", "multisig"}, kinds)
}

func TestValidateIdentity(t *testing.T) {
	tests := []struct {
		name   string
		sender Sender
	}{
		{"no address", &AddressInfo{PrivateKey: "k"}},
		{"no key", &AddressInfo{Address: "a"}},
		{"multisig no redeem script", func() Sender {
			m := testMultisig()
			m.Info.RedeemScript = ""
			return m
		}()},
		{"multisig no members", func() Sender {
			m := testMultisig()
			m.Info.Members = nil
			return m
		}()},
		{"multisig too many required", func() Sender {
			m := testMultisig()
			m.Info.RequiredSigners = 3
			return m
		}()},
		{"multisig member without key", func() Sender {
			m := testMultisig()
			m.Info.Members[1].PrivateKey = ""
			return m
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sender.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidIdentity)
		})
	}
}
