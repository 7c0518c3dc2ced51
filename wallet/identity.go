// Package wallet holds the identities that fund transfers and provisions new
// ones through the node wallet.
//
// An identity is either a single-key address or a multisig address; both
// implement Sender. Identities are plain values and can be sealed with a
// password and kept in an IdentityStore.
package wallet

import "fmt"

// AddressInfo is a single-key identity: an address and its WIF private key.
type AddressInfo struct {
	Address    string `json:"address"`
	PrivateKey string `json:"private_key"`
}

// MultisigInfo describes the members of an n-of-m multisig address.
// Members are kept in the order they were combined by the node.
type MultisigInfo struct {
	Members         []AddressInfo `json:"members"`
	RequiredSigners int           `json:"required_signers"`
	RedeemScript    string        `json:"redeem_script"`
}

// MultisigAddressInfo is a multisig identity.
type MultisigAddressInfo struct {
	Address string       `json:"address"`
	Info    MultisigInfo `json:"info"`
}

// Sender is an identity that can fund a transfer. It is implemented only by
// *AddressInfo and *MultisigAddressInfo; callers branch with a type switch.
type Sender interface {
	// SpendAddress is the address whose outputs are spent and which
	// receives change.
	SpendAddress() string

	// SigningKeys returns every private key handed to the signer, in order.
	SigningKeys() []string

	// Validate checks that the identity carries the material to sign.
	Validate() error

	sender()
}

var (
	_ Sender = (*AddressInfo)(nil)
	_ Sender = (*MultisigAddressInfo)(nil)
)

func (a *AddressInfo) SpendAddress() string { return a.Address }

func (a *AddressInfo) SigningKeys() []string { return []string{a.PrivateKey} }

func (a *AddressInfo) Validate() error {
	if a.Address == "" {
		return fmt.Errorf("%w: empty address", ErrInvalidIdentity)
	}
	if a.PrivateKey == "" {
		return fmt.Errorf("%w: %s has no private key", ErrInvalidIdentity, a.Address)
	}
	return nil
}

func (*AddressInfo) sender() {}

func (m *MultisigAddressInfo) SpendAddress() string { return m.Address }

// SigningKeys returns the key of every member, not only RequiredSigners of
// them. The node signs with whichever subset it can use.
func (m *MultisigAddressInfo) SigningKeys() []string {
	keys := make([]string, len(m.Info.Members))
	for i, member := range m.Info.Members {
		keys[i] = member.PrivateKey
	}
	return keys
}

func (m *MultisigAddressInfo) Validate() error {
	if m.Address == "" {
		return fmt.Errorf("%w: empty multisig address", ErrInvalidIdentity)
	}
	if m.Info.RedeemScript == "" {
		return fmt.Errorf("%w: %s has no redeem script", ErrInvalidIdentity, m.Address)
	}
	if len(m.Info.Members) == 0 {
		return fmt.Errorf("%w: %s has no members", ErrInvalidIdentity, m.Address)
	}
	if m.Info.RequiredSigners > len(m.Info.Members) {
		return fmt.Errorf("%w: %s requires %d of %d signers", ErrInvalidIdentity,
			m.Address, m.Info.RequiredSigners, len(m.Info.Members))
	}
	for i := range m.Info.Members {
		if err := m.Info.Members[i].Validate(); err != nil {
			return fmt.Errorf("member %d: %w", i, err)
		}
	}
	return nil
}

func (*MultisigAddressInfo) sender() {}
