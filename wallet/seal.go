package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	// Argon2id parameters for identity encryption.
	Argon2Time        = 3
	Argon2Memory      = 64 * 1024 // 64 MB
	Argon2Parallelism = 4
	Argon2KeyLen      = 32

	// Encryption format sizes.
	SaltLen     = 16
	NonceLen    = 12
	ChecksumLen = 4
)

const (
	kindAddress  = "address"
	kindMultisig = "multisig"
)

// identityRecord is the plaintext form of a sealed identity.
type identityRecord struct {
	Kind     string               `json:"kind"`
	Address  *AddressInfo         `json:"address,omitempty"`
	Multisig *MultisigAddressInfo `json:"multisig,omitempty"`
}

// SealIdentity serializes an identity and encrypts it with password.
//
// Output format: salt(16B) || nonce(12B) || AES-GCM(argon2id(password,salt), nonce, record||checksum)
//
// The checksum is SHA256(record)[:4] for verifying correct decryption.
func SealIdentity(s Sender, password string) ([]byte, error) {
	var rec identityRecord
	switch id := s.(type) {
	case *AddressInfo:
		if id == nil {
			return nil, fmt.Errorf("%w: nil address identity", ErrInvalidIdentity)
		}
		rec = identityRecord{Kind: kindAddress, Address: id}
	case *MultisigAddressInfo:
		if id == nil {
			return nil, fmt.Errorf("%w: nil multisig identity", ErrInvalidIdentity)
		}
		rec = identityRecord{Kind: kindMultisig, Multisig: id}
	case nil:
		return nil, fmt.Errorf("%w: nil identity", ErrInvalidIdentity)
	default:
		return nil, fmt.Errorf("%w: unsupported identity type %T", ErrInvalidIdentity, s)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	plain, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("wallet: encode identity: %w", err)
	}
	return encrypt(plain, password)
}

// OpenIdentity decrypts and decodes a sealed identity. The concrete type is
// *AddressInfo or *MultisigAddressInfo.
func OpenIdentity(sealed []byte, password string) (Sender, error) {
	plain, err := decrypt(sealed, password)
	if err != nil {
		return nil, err
	}

	var rec identityRecord
	if err := json.Unmarshal(plain, &rec); err != nil {
		return nil, fmt.Errorf("%w: decode identity: %v", ErrInvalidIdentity, err)
	}

	var s Sender
	switch {
	case rec.Kind == kindAddress && rec.Address != nil:
		s = rec.Address
	case rec.Kind == kindMultisig && rec.Multisig != nil:
		s = rec.Multisig
	default:
		return nil, fmt.Errorf("%w: unknown identity kind %q", ErrInvalidIdentity, rec.Kind)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func deriveKey(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, Argon2Time, Argon2Memory, Argon2Parallelism, Argon2KeyLen)
}

func encrypt(data []byte, password string) ([]byte, error) {
	salt := make([]byte, SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("wallet: failed to generate salt: %w", err)
	}

	sum := sha256.Sum256(data)
	plaintext := make([]byte, len(data)+ChecksumLen)
	copy(plaintext, data)
	copy(plaintext[len(data):], sum[:ChecksumLen])

	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return nil, fmt.Errorf("wallet: AES cipher creation failed: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("wallet: GCM creation failed: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("wallet: failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	result := make([]byte, 0, SaltLen+NonceLen+len(ciphertext))
	result = append(result, salt...)
	result = append(result, nonce...)
	result = append(result, ciphertext...)
	return result, nil
}

func decrypt(sealed []byte, password string) ([]byte, error) {
	if len(sealed) < SaltLen+NonceLen+ChecksumLen {
		return nil, ErrDecryptionFailed
	}

	salt := sealed[:SaltLen]
	nonce := sealed[SaltLen : SaltLen+NonceLen]
	ciphertext := sealed[SaltLen+NonceLen:]

	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	if len(plaintext) < ChecksumLen {
		return nil, ErrDecryptionFailed
	}

	data := plaintext[:len(plaintext)-ChecksumLen]
	stored := plaintext[len(plaintext)-ChecksumLen:]
	sum := sha256.Sum256(data)
	if subtle.ConstantTimeCompare(stored, sum[:ChecksumLen]) != 1 {
		return nil, ErrChecksumMismatch
	}
	return data, nil
}
