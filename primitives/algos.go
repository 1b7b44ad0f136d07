// Package primitives wraps the concrete cryptographic operations the
// container engine composes: symmetric encryption, asymmetric key wrap,
// signing, key generation, and PEM encoding. It is the only package in this
// module that imports a cryptography implementation directly; the engine
// itself never reaches past this layer into crypto/* or golang.org/x/crypto.
package primitives

import "errors"

// ErrAlgorithmNotSupported is returned when an algorithm tag falls outside
// the closed set this package implements.
var ErrAlgorithmNotSupported = errors.New("primitives: algorithm not supported")

// ErrDecryption is returned when an authentication tag or padding check
// fails during a symmetric or asymmetric decrypt operation.
var ErrDecryption = errors.New("primitives: decryption failed")

// SymmetricAlgo identifies a data-encryption algorithm tag.
type SymmetricAlgo string

// The closed set of symmetric algorithm tags this package supports.
const (
	AESCBC           SymmetricAlgo = "AES_CBC"
	AESEAX           SymmetricAlgo = "AES_EAX"
	ChaCha20Poly1305 SymmetricAlgo = "CHACHA20_POLY1305"
)

// AsymmetricEncryptionAlgo identifies a key-wrap algorithm tag.
type AsymmetricEncryptionAlgo string

// The closed set of asymmetric encryption algorithm tags this package
// supports.
const (
	RSAOAEP AsymmetricEncryptionAlgo = "RSA_OAEP"
)

// SignatureAlgo identifies a signature algorithm tag.
type SignatureAlgo string

// The closed set of signature algorithm tags this package supports. DSS
// covers both DSA and ECC keys, distinguished by the KeyType passed
// alongside it.
const (
	PSS SignatureAlgo = "PSS"
	DSS SignatureAlgo = "DSS"
)

// KeyType identifies the asymmetric key kind held by an escrow.
type KeyType string

// The closed set of key type tags this package supports.
const (
	KeyTypeRSA KeyType = "RSA"
	KeyTypeDSA KeyType = "DSA"
	KeyTypeECC KeyType = "ECC"
)
