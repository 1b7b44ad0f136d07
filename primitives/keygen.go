package primitives

import (
	"crypto/dsa"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
)

// rsaKeyBits is the modulus size used for freshly generated RSA keypairs.
const rsaKeyBits = 2048

// KeyPair holds exactly one of the three asymmetric key kinds this package
// supports. Type names which field is populated.
type KeyPair struct {
	Type KeyType

	RSAPublic  *rsa.PublicKey
	RSAPrivate *rsa.PrivateKey

	DSAPublic  *dsa.PublicKey
	DSAPrivate *dsa.PrivateKey

	ECCPublic  *ecdsa.PublicKey
	ECCPrivate *ecdsa.PrivateKey
}

// GenerateKeyPair produces a fresh asymmetric keypair of the requested
// type. Escrows call this lazily, on first request for a given
// (keychain_uid, key_type) pair.
func GenerateKeyPair(keyType KeyType) (KeyPair, error) {
	switch keyType {
	case KeyTypeRSA:
		priv, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
		if err != nil {
			return KeyPair{}, fmt.Errorf("primitives: generating RSA key: %w", err)
		}
		return KeyPair{Type: KeyTypeRSA, RSAPublic: &priv.PublicKey, RSAPrivate: priv}, nil

	case KeyTypeDSA:
		var params dsa.Parameters
		if err := dsa.GenerateParameters(&params, rand.Reader, dsa.L2048N256); err != nil {
			return KeyPair{}, fmt.Errorf("primitives: generating DSA parameters: %w", err)
		}
		priv := new(dsa.PrivateKey)
		priv.Parameters = params
		if err := dsa.GenerateKey(priv, rand.Reader); err != nil {
			return KeyPair{}, fmt.Errorf("primitives: generating DSA key: %w", err)
		}
		return KeyPair{Type: KeyTypeDSA, DSAPublic: &priv.PublicKey, DSAPrivate: priv}, nil

	case KeyTypeECC:
		priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		if err != nil {
			return KeyPair{}, fmt.Errorf("primitives: generating ECC key: %w", err)
		}
		return KeyPair{Type: KeyTypeECC, ECCPublic: &priv.PublicKey, ECCPrivate: priv}, nil

	default:
		return KeyPair{}, fmt.Errorf("%w: key type %q", ErrAlgorithmNotSupported, keyType)
	}
}
