package primitives

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"
)

// AsymmetricEncrypt wraps plaintext (in practice, a DEK or an
// already-wrapped DEK from an inner key stratum) under pub using algo.
func AsymmetricEncrypt(plaintext []byte, algo AsymmetricEncryptionAlgo, pub KeyPair) (Cipherdict, error) {
	switch algo {
	case RSAOAEP:
		if pub.RSAPublic == nil {
			return Cipherdict{}, fmt.Errorf("%w: RSA_OAEP requires an RSA public key", ErrAlgorithmNotSupported)
		}
		ciphertext, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub.RSAPublic, plaintext, nil)
		if err != nil {
			return Cipherdict{}, err
		}
		return Cipherdict{Ciphertext: ciphertext}, nil
	default:
		return Cipherdict{}, fmt.Errorf("%w: %q", ErrAlgorithmNotSupported, algo)
	}
}

// AsymmetricDecrypt reverses AsymmetricEncrypt using the matching private
// key. It fails with ErrDecryption on any OAEP padding check failure.
func AsymmetricDecrypt(cd Cipherdict, algo AsymmetricEncryptionAlgo, priv KeyPair) ([]byte, error) {
	switch algo {
	case RSAOAEP:
		if priv.RSAPrivate == nil {
			return nil, fmt.Errorf("%w: RSA_OAEP requires an RSA private key", ErrAlgorithmNotSupported)
		}
		plaintext, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, priv.RSAPrivate, cd.Ciphertext, nil)
		if err != nil {
			return nil, ErrDecryption
		}
		return plaintext, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrAlgorithmNotSupported, algo)
	}
}
