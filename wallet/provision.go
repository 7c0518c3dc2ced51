package wallet

import (
	"context"
	"fmt"

	"github.com/bitfsorg/libbtctx-go/network"
)

const (
	// DefaultSignerSize is the number of members of a new multisig address.
	DefaultSignerSize = 3

	// DefaultRequiredSigners is the number of signatures it requires.
	DefaultRequiredSigners = 2

	// MaxSigners is the largest member count the node combines into a
	// script-hash multisig.
	MaxSigners = 16
)

// KeyNode is the subset of node RPCs needed to provision identities.
type KeyNode interface {
	GetNewAddress(ctx context.Context, addrType network.AddressType) (string, error)
	DumpPrivKey(ctx context.Context, address string) (string, error)
	AddMultisigAddress(ctx context.Context, required int, addresses []string, addrType network.AddressType) (*network.MultisigResult, error)
}

// Provisioner creates identities whose keys live in the node wallet.
type Provisioner struct {
	node KeyNode
}

// NewProvisioner returns a Provisioner backed by node.
func NewProvisioner(node KeyNode) *Provisioner {
	return &Provisioner{node: node}
}

// GenerateAddress creates a fresh node address and exports its private key.
// An empty addrType means legacy.
func (p *Provisioner) GenerateAddress(ctx context.Context, addrType network.AddressType) (*AddressInfo, error) {
	if addrType == "" {
		addrType = network.AddressLegacy
	}
	if !addrType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddressType, addrType)
	}

	addr, err := p.node.GetNewAddress(ctx, addrType)
	if err != nil {
		return nil, fmt.Errorf("wallet: generate address: %w", err)
	}
	key, err := p.node.DumpPrivKey(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("wallet: export key of %s: %w", addr, err)
	}
	return &AddressInfo{Address: addr, PrivateKey: key}, nil
}

// GenerateMultisigAddress creates signerSize member addresses one after the
// other and combines them into a requiredSigners-of-signerSize multisig
// address. Zero values select DefaultSignerSize, DefaultRequiredSigners and
// legacy. Invalid counts fail with ErrInvalidMultisigParameters before any
// RPC is issued.
func (p *Provisioner) GenerateMultisigAddress(ctx context.Context, signerSize, requiredSigners int, addrType network.AddressType) (*MultisigAddressInfo, error) {
	if signerSize == 0 {
		signerSize = DefaultSignerSize
	}
	if requiredSigners == 0 {
		requiredSigners = DefaultRequiredSigners
	}
	if addrType == "" {
		addrType = network.AddressLegacy
	}
	if err := ValidateMultisigParameters(signerSize, requiredSigners); err != nil {
		return nil, err
	}
	if !addrType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddressType, addrType)
	}

	members := make([]AddressInfo, 0, signerSize)
	addrs := make([]string, 0, signerSize)
	for i := 0; i < signerSize; i++ {
		member, err := p.GenerateAddress(ctx, addrType)
		if err != nil {
			return nil, fmt.Errorf("wallet: multisig member %d: %w", i, err)
		}
		members = append(members, *member)
		addrs = append(addrs, member.Address)
	}

	res, err := p.node.AddMultisigAddress(ctx, requiredSigners, addrs, addrType)
	if err != nil {
		return nil, fmt.Errorf("wallet: combine multisig: %w", err)
	}

	return &MultisigAddressInfo{
		Address: res.Address,
		Info: MultisigInfo{
			Members:         members,
			RequiredSigners: requiredSigners,
			RedeemScript:    res.RedeemScript,
		},
	}, nil
}

// ValidateMultisigParameters checks 1 <= requiredSigners <= signerSize <= MaxSigners.
func ValidateMultisigParameters(signerSize, requiredSigners int) error {
	switch {
	case requiredSigners < 1:
		return fmt.Errorf("%w: required signers %d must be at least 1", ErrInvalidMultisigParameters, requiredSigners)
	case signerSize < requiredSigners:
		return fmt.Errorf("%w: signer size %d is below required signers %d", ErrInvalidMultisigParameters, signerSize, requiredSigners)
	case signerSize > MaxSigners:
		return fmt.Errorf("%w: signer size %d exceeds %d", ErrInvalidMultisigParameters, signerSize, MaxSigners)
	}
	return nil
}
