package wallet

import "errors"

var (
	// ErrInvalidMultisigParameters indicates a signer count below the required
	// signatures, or either count out of range.
	ErrInvalidMultisigParameters = errors.New("wallet: invalid multisig parameters")

	// ErrInvalidAddressType indicates an address type the node does not know.
	ErrInvalidAddressType = errors.New("wallet: invalid address type")

	// ErrInvalidIdentity indicates an identity with missing address or key material.
	ErrInvalidIdentity = errors.New("wallet: invalid identity")

	// ErrDecryptionFailed indicates wrong password or corrupted key file data.
	ErrDecryptionFailed = errors.New("wallet: identity decryption failed (wrong password or corrupted data)")

	// ErrChecksumMismatch indicates checksum verification failed after decryption.
	ErrChecksumMismatch = errors.New("wallet: identity checksum mismatch")

	// ErrInvalidNetwork indicates an unknown network name.
	ErrInvalidNetwork = errors.New("wallet: invalid network name")

	// ErrIdentityNotFound indicates the named identity is not in the store.
	ErrIdentityNotFound = errors.New("wallet: identity not found")

	// ErrIdentityExists indicates the identity name is already taken.
	ErrIdentityExists = errors.New("wallet: identity already exists")
)
