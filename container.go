package cryptolib

import (
	"errors"
	"fmt"

	"github.com/akram-max/witness-angel-cryptolib/escrow"
	"github.com/akram-max/witness-angel-cryptolib/primitives"
	"github.com/akram-max/witness-angel-cryptolib/wireformat"
	"github.com/google/uuid"
)

// Container is the self-describing encrypted envelope Encrypt produces and
// Decrypt consumes. Its tree is immutable once produced.
type Container struct {
	ContainerFormat      string                  `msgpack:"container_format"`
	ContainerUID         uuid.UUID               `msgpack:"container_uid"`
	KeychainUID          uuid.UUID               `msgpack:"keychain_uid"`
	DataCiphertext       []byte                  `msgpack:"data_ciphertext"`
	DataEncryptionStrata []DataEncryptionStratum `msgpack:"data_encryption_strata"`
}

// DataEncryptionStratum is the output record for one data-encryption
// stratum: the recipe's key-wrap layers are carried through unmodified,
// but key_ciphertext is the layer's actual wrapped-key output and
// data_signatures carries each signature's produced value.
type DataEncryptionStratum struct {
	DataEncryptionAlgo  primitives.SymmetricAlgo     `msgpack:"data_encryption_algo"`
	KeyCiphertext       []byte                       `msgpack:"key_ciphertext"`
	KeyEncryptionStrata []KeyEncryptionStratumConfig `msgpack:"key_encryption_strata"`
	DataSignatures      []SignatureRecord            `msgpack:"data_signatures"`
}

// SignatureRecord is a recipe SignatureConfig augmented with the value an
// escrow produced for it.
type SignatureRecord struct {
	SignatureEscrow  string                   `msgpack:"signature_escrow"`
	SignatureKeyType primitives.KeyType       `msgpack:"signature_key_type"`
	SignatureAlgo    primitives.SignatureAlgo `msgpack:"signature_algo"`
	SignatureValue   primitives.Signature     `msgpack:"signature_value"`
}

// Encrypt turns data into a Container under recipe, using registry to
// resolve every escrow selector the recipe references. If keychainUID is
// the zero value, a fresh one is generated; callers that want to reuse a
// keychain across many containers pass a non-zero one.
//
// recipe is deep-copied before use. On any error, Encrypt has produced no
// container: there is no partial-write state to clean up.
func Encrypt(data []byte, recipe Recipe, registry *escrow.Registry, keychainUID uuid.UUID) (*Container, error) {
	if data == nil {
		data = []byte{}
	}
	recipe = recipe.Clone()

	if keychainUID == uuid.Nil {
		keychainUID = uuid.New()
	}

	if err := validateRecipeEscrows(recipe, registry); err != nil {
		return nil, err
	}

	current := data
	strata := make([]DataEncryptionStratum, 0, len(recipe.DataEncryptionStrata))

	for i, stratumConf := range recipe.DataEncryptionStrata {
		dek, err := primitives.GenerateSymmetricKey(stratumConf.DataEncryptionAlgo)
		if err != nil {
			return nil, wrapAlgorithmError(err, i)
		}

		cipherdict, err := primitives.EncryptBytestring(current, stratumConf.DataEncryptionAlgo, dek)
		if err != nil {
			return nil, wrapAlgorithmError(err, i)
		}
		current, err = wireformat.Marshal(cipherdict)
		if err != nil {
			return nil, fmt.Errorf("%w: encoding stratum %d ciphertext: %v", ErrInvalidArgument, i, err)
		}

		wrapped := dek
		for _, keyStratum := range stratumConf.KeyEncryptionStrata {
			esc, err := registry.Resolve(keyStratum.KeyEscrow)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrEscrowNotAvailable, err)
			}
			pubPEM, err := esc.GetPublicKey(keychainUID, keyStratum.EscrowKeyType)
			if err != nil {
				return nil, fmt.Errorf("stratum %d: %w", i, err)
			}
			pub, err := primitives.LoadAsymmetricKeyFromPEM(pubPEM, keyStratum.EscrowKeyType)
			if err != nil {
				return nil, wrapAlgorithmError(err, i)
			}
			keyCipherdict, err := primitives.AsymmetricEncrypt(wrapped, keyStratum.KeyEncryptionAlgo, pub)
			if err != nil {
				return nil, wrapAlgorithmError(err, i)
			}
			wrapped, err = wireformat.Marshal(keyCipherdict)
			if err != nil {
				return nil, fmt.Errorf("%w: encoding stratum %d key ciphertext: %v", ErrInvalidArgument, i, err)
			}
		}

		signatures := make([]SignatureRecord, 0, len(stratumConf.DataSignatures))
		for _, sigConf := range stratumConf.DataSignatures {
			esc, err := registry.Resolve(sigConf.SignatureEscrow)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrEscrowNotAvailable, err)
			}
			sigValue, err := esc.GetMessageSignature(keychainUID, current, sigConf.SignatureKeyType, sigConf.SignatureAlgo)
			if err != nil {
				return nil, fmt.Errorf("stratum %d: %w", i, err)
			}
			signatures = append(signatures, SignatureRecord{
				SignatureEscrow:  sigConf.SignatureEscrow,
				SignatureKeyType: sigConf.SignatureKeyType,
				SignatureAlgo:    sigConf.SignatureAlgo,
				SignatureValue:   sigValue,
			})
		}

		strata = append(strata, DataEncryptionStratum{
			DataEncryptionAlgo:  stratumConf.DataEncryptionAlgo,
			KeyCiphertext:       wrapped,
			KeyEncryptionStrata: stratumConf.KeyEncryptionStrata,
			DataSignatures:      signatures,
		})
	}

	return &Container{
		ContainerFormat:      FormatTag,
		ContainerUID:         uuid.New(),
		KeychainUID:          keychainUID,
		DataCiphertext:       current,
		DataEncryptionStrata: strata,
	}, nil
}

// Decrypt recovers the original plaintext from container, using registry
// to resolve every escrow selector it references. Strata are traversed in
// reverse: for each, every signature is verified (fetching only the
// signing public keys from their escrows) before any escrow is asked to
// decrypt with a private key, so a tampered ciphertext is rejected before
// any key is unwrapped.
func Decrypt(container *Container, registry *escrow.Registry) ([]byte, error) {
	if container.ContainerFormat != FormatTag {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, container.ContainerFormat)
	}

	current := container.DataCiphertext

	for i := len(container.DataEncryptionStrata) - 1; i >= 0; i-- {
		stratum := container.DataEncryptionStrata[i]

		for _, sigRec := range stratum.DataSignatures {
			esc, err := registry.Resolve(sigRec.SignatureEscrow)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrEscrowNotAvailable, err)
			}
			pubPEM, err := esc.GetPublicKey(container.KeychainUID, sigRec.SignatureKeyType)
			if err != nil {
				return nil, fmt.Errorf("stratum %d: %w", i, err)
			}
			pub, err := primitives.LoadAsymmetricKeyFromPEM(pubPEM, sigRec.SignatureKeyType)
			if err != nil {
				return nil, wrapAlgorithmError(err, i)
			}
			if err := primitives.Verify(pub, current, sigRec.SignatureValue, sigRec.SignatureAlgo); err != nil {
				return nil, fmt.Errorf("%w: stratum %d", ErrSignatureVerification, i)
			}
		}

		wrapped := stratum.KeyCiphertext
		for _, keyStratum := range stratum.KeyEncryptionStrata {
			var cipherdict primitives.Cipherdict
			if err := wireformat.Unmarshal(wrapped, &cipherdict); err != nil {
				return nil, fmt.Errorf("%w: decoding stratum %d key ciphertext: %v", ErrInvalidArgument, i, err)
			}
			esc, err := registry.Resolve(keyStratum.KeyEscrow)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrEscrowNotAvailable, err)
			}
			wrapped, err = esc.DecryptWithPrivateKey(container.KeychainUID, keyStratum.EscrowKeyType, keyStratum.KeyEncryptionAlgo, cipherdict)
			if err != nil {
				if errors.Is(err, escrow.ErrKeyDoesNotExist) {
					return nil, fmt.Errorf("%w: stratum %d", ErrKeyDoesNotExist, i)
				}
				if errors.Is(err, primitives.ErrDecryption) {
					return nil, fmt.Errorf("%w: stratum %d", ErrDecryption, i)
				}
				return nil, wrapAlgorithmError(err, i)
			}
		}
		dek := wrapped

		var cipherdict primitives.Cipherdict
		if err := wireformat.Unmarshal(current, &cipherdict); err != nil {
			return nil, fmt.Errorf("%w: decoding stratum %d ciphertext: %v", ErrInvalidArgument, i, err)
		}
		plaintext, err := primitives.DecryptBytestring(cipherdict, stratum.DataEncryptionAlgo, dek)
		if err != nil {
			if errors.Is(err, primitives.ErrDecryption) {
				return nil, fmt.Errorf("%w: stratum %d", ErrDecryption, i)
			}
			return nil, wrapAlgorithmError(err, i)
		}
		current = plaintext
	}

	return current, nil
}

// validateRecipeEscrows resolves every escrow selector recipe references
// before any encryption work begins, so an unregistered selector in a
// later stratum fails fast instead of after earlier strata have already
// done real cryptographic work.
func validateRecipeEscrows(recipe Recipe, registry *escrow.Registry) error {
	for _, stratumConf := range recipe.DataEncryptionStrata {
		for _, keyStratum := range stratumConf.KeyEncryptionStrata {
			if _, err := registry.Resolve(keyStratum.KeyEscrow); err != nil {
				return fmt.Errorf("%w: %w", ErrEscrowNotAvailable, err)
			}
		}
		for _, sigConf := range stratumConf.DataSignatures {
			if _, err := registry.Resolve(sigConf.SignatureEscrow); err != nil {
				return fmt.Errorf("%w: %w", ErrEscrowNotAvailable, err)
			}
		}
	}
	return nil
}

func wrapAlgorithmError(err error, stratumIndex int) error {
	if errors.Is(err, primitives.ErrAlgorithmNotSupported) {
		return fmt.Errorf("%w: stratum %d: %v", ErrAlgorithmNotSupported, stratumIndex, err)
	}
	return fmt.Errorf("stratum %d: %w", stratumIndex, err)
}
