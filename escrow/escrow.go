// Package escrow defines the container engine's trust boundary: a small
// capability interface any third-party key authority must implement, plus a
// selector-keyed registry and a built-in in-process implementation backed
// by a memory-only keystore.
package escrow

import (
	"errors"

	"github.com/akram-max/witness-angel-cryptolib/primitives"
	"github.com/google/uuid"
)

// ErrEscrowNotAvailable is returned when a recipe references a selector no
// escrow is registered for.
var ErrEscrowNotAvailable = errors.New("escrow: not available")

// ErrKeyDoesNotExist is returned when an escrow is asked to decrypt with,
// or otherwise operate on, a (keychain_uid, key_type) pair it never issued.
var ErrKeyDoesNotExist = errors.New("escrow: key does not exist")

// LocalEscrowPlaceholder is the sentinel selector value that resolves to
// the built-in, in-process Escrow (see NewLocalEscrow). It mirrors the
// source specification's LOCAL_ESCROW_PLACEHOLDER constant.
const LocalEscrowPlaceholder = "LOCAL_ESCROW_PLACEHOLDER"

// Escrow is any authority holding asymmetric key material, addressable by
// a (keychain_uid, key_type) pair. GetPublicKey and GetMessageSignature are
// idempotent with respect to key provisioning: the first call for a given
// pair creates the keypair, subsequent calls reuse it. DecryptWithPrivateKey
// never creates one.
type Escrow interface {
	// GetPublicKey returns the PEM-encoded public key for
	// (keychainUID, keyType), generating the keypair on first use.
	GetPublicKey(keychainUID uuid.UUID, keyType primitives.KeyType) ([]byte, error)

	// DecryptWithPrivateKey unwraps cipherdict using the private key for
	// (keychainUID, keyType). It fails with ErrKeyDoesNotExist if that
	// pair was never issued.
	DecryptWithPrivateKey(
		keychainUID uuid.UUID,
		keyType primitives.KeyType,
		encryptionAlgo primitives.AsymmetricEncryptionAlgo,
		cipherdict primitives.Cipherdict,
	) ([]byte, error)

	// GetMessageSignature signs message with the signing keypair for
	// (keychainUID, keyType), generating it on first use.
	GetMessageSignature(
		keychainUID uuid.UUID,
		message []byte,
		keyType primitives.KeyType,
		signatureAlgo primitives.SignatureAlgo,
	) (primitives.Signature, error)
}
