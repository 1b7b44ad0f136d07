package primitives

import (
	"crypto/dsa"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/asn1"
	"encoding/pem"
	"fmt"
	"math/big"
)

// dsaPublicKeyASN1 and dsaPrivateKeyASN1 give crypto/dsa keys a PEM-able
// encoding of our own: x509 can parse legacy DSA SubjectPublicKeyInfo
// blocks but cannot marshal them, and has no DSA private-key support at
// all, so the container engine's own keystore round-trips them through a
// plain ASN.1 sequence instead.
type dsaPublicKeyASN1 struct {
	P, Q, G, Y *big.Int
}

type dsaPrivateKeyASN1 struct {
	P, Q, G, Y, X *big.Int
}

// EncodePublicKeyPEM renders the public half of kp as a PEM block
// appropriate for keyType.
func EncodePublicKeyPEM(keyType KeyType, kp KeyPair) ([]byte, error) {
	switch keyType {
	case KeyTypeRSA:
		der, err := x509.MarshalPKIXPublicKey(kp.RSAPublic)
		if err != nil {
			return nil, err
		}
		return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil

	case KeyTypeECC:
		der, err := x509.MarshalPKIXPublicKey(kp.ECCPublic)
		if err != nil {
			return nil, err
		}
		return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil

	case KeyTypeDSA:
		der, err := asn1.Marshal(dsaPublicKeyASN1{
			P: kp.DSAPublic.P, Q: kp.DSAPublic.Q, G: kp.DSAPublic.G, Y: kp.DSAPublic.Y,
		})
		if err != nil {
			return nil, err
		}
		return pem.EncodeToMemory(&pem.Block{Type: "DSA PUBLIC KEY", Bytes: der}), nil

	default:
		return nil, fmt.Errorf("%w: key type %q", ErrAlgorithmNotSupported, keyType)
	}
}

// EncodePrivateKeyPEM renders the private half of kp as a PEM block
// appropriate for keyType. Only the local, in-process escrow keystore
// calls this -- private keys never leave an escrow.
func EncodePrivateKeyPEM(keyType KeyType, kp KeyPair) ([]byte, error) {
	switch keyType {
	case KeyTypeRSA:
		der, err := x509.MarshalPKCS8PrivateKey(kp.RSAPrivate)
		if err != nil {
			return nil, err
		}
		return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil

	case KeyTypeECC:
		der, err := x509.MarshalPKCS8PrivateKey(kp.ECCPrivate)
		if err != nil {
			return nil, err
		}
		return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil

	case KeyTypeDSA:
		der, err := asn1.Marshal(dsaPrivateKeyASN1{
			P: kp.DSAPrivate.P, Q: kp.DSAPrivate.Q, G: kp.DSAPrivate.G,
			Y: kp.DSAPrivate.Y, X: kp.DSAPrivate.X,
		})
		if err != nil {
			return nil, err
		}
		return pem.EncodeToMemory(&pem.Block{Type: "DSA PRIVATE KEY", Bytes: der}), nil

	default:
		return nil, fmt.Errorf("%w: key type %q", ErrAlgorithmNotSupported, keyType)
	}
}

// LoadAsymmetricKeyFromPEM parses a PEM-encoded public key of the given
// type, as produced by EncodePublicKeyPEM.
func LoadAsymmetricKeyFromPEM(pemBytes []byte, keyType KeyType) (KeyPair, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return KeyPair{}, fmt.Errorf("%w: not a PEM block", ErrAlgorithmNotSupported)
	}

	switch keyType {
	case KeyTypeRSA:
		pub, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return KeyPair{}, err
		}
		rsaPub, ok := pub.(*rsa.PublicKey)
		if !ok {
			return KeyPair{}, fmt.Errorf("%w: PEM block is not an RSA public key", ErrAlgorithmNotSupported)
		}
		return KeyPair{Type: KeyTypeRSA, RSAPublic: rsaPub}, nil

	case KeyTypeECC:
		pub, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return KeyPair{}, err
		}
		eccPub, ok := pub.(*ecdsa.PublicKey)
		if !ok {
			return KeyPair{}, fmt.Errorf("%w: PEM block is not an ECC public key", ErrAlgorithmNotSupported)
		}
		return KeyPair{Type: KeyTypeECC, ECCPublic: eccPub}, nil

	case KeyTypeDSA:
		var parsed dsaPublicKeyASN1
		if _, err := asn1.Unmarshal(block.Bytes, &parsed); err != nil {
			return KeyPair{}, err
		}
		return KeyPair{
			Type: KeyTypeDSA,
			DSAPublic: &dsa.PublicKey{
				Parameters: dsa.Parameters{P: parsed.P, Q: parsed.Q, G: parsed.G},
				Y:          parsed.Y,
			},
		}, nil

	default:
		return KeyPair{}, fmt.Errorf("%w: key type %q", ErrAlgorithmNotSupported, keyType)
	}
}

// DecodePrivateKeyPEM is the mirror of EncodePrivateKeyPEM, used only by the
// local escrow keystore to recover a private key it previously stored.
func DecodePrivateKeyPEM(pemBytes []byte, keyType KeyType) (KeyPair, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return KeyPair{}, fmt.Errorf("%w: not a PEM block", ErrAlgorithmNotSupported)
	}

	switch keyType {
	case KeyTypeRSA:
		priv, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return KeyPair{}, err
		}
		rsaPriv, ok := priv.(*rsa.PrivateKey)
		if !ok {
			return KeyPair{}, fmt.Errorf("%w: PEM block is not an RSA private key", ErrAlgorithmNotSupported)
		}
		return KeyPair{Type: KeyTypeRSA, RSAPrivate: rsaPriv, RSAPublic: &rsaPriv.PublicKey}, nil

	case KeyTypeECC:
		priv, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return KeyPair{}, err
		}
		eccPriv, ok := priv.(*ecdsa.PrivateKey)
		if !ok {
			return KeyPair{}, fmt.Errorf("%w: PEM block is not an ECC private key", ErrAlgorithmNotSupported)
		}
		return KeyPair{Type: KeyTypeECC, ECCPrivate: eccPriv, ECCPublic: &eccPriv.PublicKey}, nil

	case KeyTypeDSA:
		var parsed dsaPrivateKeyASN1
		if _, err := asn1.Unmarshal(block.Bytes, &parsed); err != nil {
			return KeyPair{}, err
		}
		priv := &dsa.PrivateKey{
			PublicKey: dsa.PublicKey{
				Parameters: dsa.Parameters{P: parsed.P, Q: parsed.Q, G: parsed.G},
				Y:          parsed.Y,
			},
			X: parsed.X,
		}
		return KeyPair{Type: KeyTypeDSA, DSAPrivate: priv, DSAPublic: &priv.PublicKey}, nil

	default:
		return KeyPair{}, fmt.Errorf("%w: key type %q", ErrAlgorithmNotSupported, keyType)
	}
}
