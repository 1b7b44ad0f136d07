package primitives

import (
	"crypto"
	"crypto/dsa"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/asn1"
	"encoding/binary"
	"fmt"
	"math/big"
)

// Signature is the record an escrow returns from a sign operation and a
// reader presents for verification. Its Digest field carries the raw
// cryptographic signature bytes (the name follows the source
// specification); Type records the algorithm tag and TimestampUTC the
// whole-second UTC time the signature was produced. TimestampUTC is part of
// the signed material, so tampering with either Digest or TimestampUTC
// breaks verification.
type Signature struct {
	Digest       []byte `msgpack:"digest"`
	Type         string `msgpack:"type"`
	TimestampUTC int64  `msgpack:"timestamp_utc"`
}

// signedDigest hashes the bytes that are actually signed: the plaintext
// concatenated with the big-endian encoding of the timestamp. Binding the
// timestamp into the hash is what makes tampering with TimestampUTC alone
// invalidate the signature.
func signedDigest(plaintext []byte, timestampUTC int64) []byte {
	var tsBytes [8]byte
	binary.BigEndian.PutUint64(tsBytes[:], uint64(timestampUTC))
	h := sha256.Sum256(append(append([]byte{}, plaintext...), tsBytes[:]...))
	return h[:]
}

type dsaSignatureASN1 struct {
	R, S *big.Int
}

// Sign produces a Signature over plaintext using kp, stamping it with
// timestampUTC (whole seconds since the Unix epoch, UTC).
func Sign(kp KeyPair, plaintext []byte, algo SignatureAlgo, timestampUTC int64) (Signature, error) {
	digest := signedDigest(plaintext, timestampUTC)

	switch algo {
	case PSS:
		if kp.RSAPrivate == nil {
			return Signature{}, fmt.Errorf("%w: PSS requires an RSA private key", ErrAlgorithmNotSupported)
		}
		sig, err := rsa.SignPSS(rand.Reader, kp.RSAPrivate, crypto.SHA256, digest, nil)
		if err != nil {
			return Signature{}, err
		}
		return Signature{Digest: sig, Type: string(PSS), TimestampUTC: timestampUTC}, nil

	case DSS:
		switch kp.Type {
		case KeyTypeDSA:
			if kp.DSAPrivate == nil {
				return Signature{}, fmt.Errorf("%w: DSS requires a DSA private key", ErrAlgorithmNotSupported)
			}
			r, s, err := dsa.Sign(rand.Reader, kp.DSAPrivate, digest)
			if err != nil {
				return Signature{}, err
			}
			der, err := asn1.Marshal(dsaSignatureASN1{R: r, S: s})
			if err != nil {
				return Signature{}, err
			}
			return Signature{Digest: der, Type: string(DSS), TimestampUTC: timestampUTC}, nil

		case KeyTypeECC:
			if kp.ECCPrivate == nil {
				return Signature{}, fmt.Errorf("%w: DSS requires an ECC private key", ErrAlgorithmNotSupported)
			}
			der, err := ecdsa.SignASN1(rand.Reader, kp.ECCPrivate, digest)
			if err != nil {
				return Signature{}, err
			}
			return Signature{Digest: der, Type: string(DSS), TimestampUTC: timestampUTC}, nil

		default:
			return Signature{}, fmt.Errorf("%w: DSS requires a DSA or ECC key", ErrAlgorithmNotSupported)
		}

	default:
		return Signature{}, fmt.Errorf("%w: %q", ErrAlgorithmNotSupported, algo)
	}
}

// Verify checks sig against plaintext under pub. Any mismatch -- a
// tampered Digest, a tampered TimestampUTC, or a tampered plaintext --
// surfaces as ErrDecryption; container.go maps that to
// ErrSignatureVerification at the engine boundary.
func Verify(pub KeyPair, plaintext []byte, sig Signature, algo SignatureAlgo) error {
	digest := signedDigest(plaintext, sig.TimestampUTC)

	switch algo {
	case PSS:
		if pub.RSAPublic == nil {
			return fmt.Errorf("%w: PSS requires an RSA public key", ErrAlgorithmNotSupported)
		}
		if err := rsa.VerifyPSS(pub.RSAPublic, crypto.SHA256, digest, sig.Digest, nil); err != nil {
			return ErrDecryption
		}
		return nil

	case DSS:
		switch pub.Type {
		case KeyTypeDSA:
			if pub.DSAPublic == nil {
				return fmt.Errorf("%w: DSS requires a DSA public key", ErrAlgorithmNotSupported)
			}
			var parsed dsaSignatureASN1
			if _, err := asn1.Unmarshal(sig.Digest, &parsed); err != nil {
				return ErrDecryption
			}
			if !dsa.Verify(pub.DSAPublic, digest, parsed.R, parsed.S) {
				return ErrDecryption
			}
			return nil

		case KeyTypeECC:
			if pub.ECCPublic == nil {
				return fmt.Errorf("%w: DSS requires an ECC public key", ErrAlgorithmNotSupported)
			}
			if !ecdsa.VerifyASN1(pub.ECCPublic, digest, sig.Digest) {
				return ErrDecryption
			}
			return nil

		default:
			return fmt.Errorf("%w: DSS requires a DSA or ECC key", ErrAlgorithmNotSupported)
		}

	default:
		return fmt.Errorf("%w: %q", ErrAlgorithmNotSupported, algo)
	}
}
