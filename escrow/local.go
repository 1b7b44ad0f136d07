package escrow

import (
	"sync"
	"time"

	"github.com/akram-max/witness-angel-cryptolib/primitives"
	"github.com/google/uuid"
)

// keystoreKey identifies one provisioned keypair in a LocalEscrow.
type keystoreKey struct {
	KeychainUID uuid.UUID
	KeyType     primitives.KeyType
}

// LocalEscrow is the built-in, in-process Escrow implementation. It holds
// its keypairs in memory only, PEM-encoded, exactly as a remote escrow
// would persist them to disk: nothing survives process restart. Keypair
// provisioning is idempotent and safe for concurrent use -- a short
// critical section under mu guarantees at most one keypair is ever
// generated per (keychain_uid, key_type) pair, even when many goroutines
// race to request it for the first time.
type LocalEscrow struct {
	mu   sync.RWMutex
	keys map[keystoreKey][]byte

	// now is overridable in tests so signature timestamps are
	// deterministic; it defaults to time.Now.
	now func() time.Time
}

// NewLocalEscrow returns a LocalEscrow with an empty keystore.
func NewLocalEscrow() *LocalEscrow {
	return &LocalEscrow{
		keys: make(map[keystoreKey][]byte),
		now:  time.Now,
	}
}

// keyPair provisions, if necessary, and returns the keypair for
// (keychainUID, keyType). Every call after the one that provisions the
// keypair reloads it from its PEM-encoded keystore entry, so the stored
// encoding is the thing actually used; the provisioning call returns the
// freshly generated keypair directly.
func (e *LocalEscrow) keyPair(keychainUID uuid.UUID, keyType primitives.KeyType) (primitives.KeyPair, error) {
	key := keystoreKey{KeychainUID: keychainUID, KeyType: keyType}

	e.mu.RLock()
	pemBytes, ok := e.keys[key]
	e.mu.RUnlock()
	if ok {
		return primitives.DecodePrivateKeyPEM(pemBytes, keyType)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if pemBytes, ok := e.keys[key]; ok {
		return primitives.DecodePrivateKeyPEM(pemBytes, keyType)
	}
	kp, err := primitives.GenerateKeyPair(keyType)
	if err != nil {
		return primitives.KeyPair{}, err
	}
	pemBytes, err = primitives.EncodePrivateKeyPEM(keyType, kp)
	if err != nil {
		return primitives.KeyPair{}, err
	}
	e.keys[key] = pemBytes
	return kp, nil
}

// GetPublicKey implements Escrow.
func (e *LocalEscrow) GetPublicKey(keychainUID uuid.UUID, keyType primitives.KeyType) ([]byte, error) {
	kp, err := e.keyPair(keychainUID, keyType)
	if err != nil {
		return nil, err
	}
	return primitives.EncodePublicKeyPEM(keyType, kp)
}

// DecryptWithPrivateKey implements Escrow. It fails with ErrKeyDoesNotExist
// if the (keychainUID, keyType) pair was never issued -- decrypting must
// never silently mint a fresh keypair, unlike GetPublicKey and
// GetMessageSignature which provision lazily by design.
func (e *LocalEscrow) DecryptWithPrivateKey(
	keychainUID uuid.UUID,
	keyType primitives.KeyType,
	encryptionAlgo primitives.AsymmetricEncryptionAlgo,
	cipherdict primitives.Cipherdict,
) ([]byte, error) {
	key := keystoreKey{KeychainUID: keychainUID, KeyType: keyType}

	e.mu.RLock()
	pemBytes, ok := e.keys[key]
	e.mu.RUnlock()
	if !ok {
		return nil, ErrKeyDoesNotExist
	}
	kp, err := primitives.DecodePrivateKeyPEM(pemBytes, keyType)
	if err != nil {
		return nil, err
	}
	return primitives.AsymmetricDecrypt(cipherdict, encryptionAlgo, kp)
}

// GetMessageSignature implements Escrow.
func (e *LocalEscrow) GetMessageSignature(
	keychainUID uuid.UUID,
	message []byte,
	keyType primitives.KeyType,
	signatureAlgo primitives.SignatureAlgo,
) (primitives.Signature, error) {
	kp, err := e.keyPair(keychainUID, keyType)
	if err != nil {
		return primitives.Signature{}, err
	}
	return primitives.Sign(kp, message, signatureAlgo, e.now().UTC().Unix())
}
