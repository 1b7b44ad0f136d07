package primitives

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// symmetricKeySize returns the key length, in bytes, required by algo.
func symmetricKeySize(algo SymmetricAlgo) (int, error) {
	switch algo {
	case AESCBC, AESEAX:
		return 32, nil
	case ChaCha20Poly1305:
		return chacha20poly1305.KeySize, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrAlgorithmNotSupported, algo)
	}
}

// GenerateSymmetricKey returns a fresh random key of the length algo
// requires. Callers must discard it once it has been wrapped through its
// key-encryption strata; this package never retains a copy.
func GenerateSymmetricKey(algo SymmetricAlgo) ([]byte, error) {
	size, err := symmetricKeySize(algo)
	if err != nil {
		return nil, err
	}
	key := make([]byte, size)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("primitives: generating symmetric key: %w", err)
	}
	return key, nil
}

// EncryptBytestring encrypts plaintext under algo and key, generating any
// IV or nonce the algorithm requires internally. The returned Cipherdict
// holds everything a matching DecryptBytestring call needs except the key.
func EncryptBytestring(plaintext []byte, algo SymmetricAlgo, key []byte) (Cipherdict, error) {
	switch algo {
	case AESCBC:
		return encryptAESCBC(plaintext, key)
	case AESEAX:
		return encryptAESEAX(plaintext, key)
	case ChaCha20Poly1305:
		return encryptChaCha20Poly1305(plaintext, key)
	default:
		return Cipherdict{}, fmt.Errorf("%w: %q", ErrAlgorithmNotSupported, algo)
	}
}

// DecryptBytestring reverses EncryptBytestring. It fails with ErrDecryption
// when the authentication tag (AEAD modes) or padding (AES_CBC) does not
// check out.
func DecryptBytestring(cd Cipherdict, algo SymmetricAlgo, key []byte) ([]byte, error) {
	switch algo {
	case AESCBC:
		return decryptAESCBC(cd, key)
	case AESEAX:
		return decryptAESEAX(cd, key)
	case ChaCha20Poly1305:
		return decryptChaCha20Poly1305(cd, key)
	default:
		return nil, fmt.Errorf("%w: %q", ErrAlgorithmNotSupported, algo)
	}
}

func encryptAESCBC(plaintext, key []byte) (Cipherdict, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return Cipherdict{}, err
	}
	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return Cipherdict{}, err
	}
	padded := pkcs7Pad(plaintext, aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)
	return Cipherdict{Ciphertext: out, IV: iv}, nil
}

func decryptAESCBC(cd Cipherdict, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	if len(cd.IV) != aes.BlockSize || len(cd.Ciphertext) == 0 || len(cd.Ciphertext)%aes.BlockSize != 0 {
		return nil, ErrDecryption
	}
	out := make([]byte, len(cd.Ciphertext))
	cipher.NewCBCDecrypter(block, cd.IV).CryptBlocks(out, cd.Ciphertext)
	unpadded, err := pkcs7Unpad(out, aes.BlockSize)
	if err != nil {
		return nil, ErrDecryption
	}
	return unpadded, nil
}

func encryptAESEAX(plaintext, key []byte) (Cipherdict, error) {
	nonce := make([]byte, aes.BlockSize)
	if _, err := rand.Read(nonce); err != nil {
		return Cipherdict{}, err
	}
	ciphertext, tag, err := eaxEncrypt(key, nonce, plaintext)
	if err != nil {
		return Cipherdict{}, err
	}
	return Cipherdict{Ciphertext: ciphertext, Nonce: nonce, Tag: tag}, nil
}

func decryptAESEAX(cd Cipherdict, key []byte) ([]byte, error) {
	plaintext, err := eaxDecrypt(key, cd.Nonce, cd.Ciphertext, cd.Tag)
	if err != nil {
		return nil, ErrDecryption
	}
	return plaintext, nil
}

func encryptChaCha20Poly1305(plaintext, key []byte) (Cipherdict, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return Cipherdict{}, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return Cipherdict{}, err
	}
	sealed := aead.Seal(nil, nonce, plaintext, nil)
	tagSize := aead.Overhead()
	ciphertext := sealed[:len(sealed)-tagSize]
	tag := sealed[len(sealed)-tagSize:]
	return Cipherdict{Ciphertext: ciphertext, Nonce: nonce, Tag: tag}, nil
}

func decryptChaCha20Poly1305(cd Cipherdict, key []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	sealed := append(append([]byte{}, cd.Ciphertext...), cd.Tag...)
	plaintext, err := aead.Open(nil, cd.Nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecryption
	}
	return plaintext, nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padding := bytes.Repeat([]byte{byte(padLen)}, padLen)
	return append(append([]byte{}, data...), padding...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrDecryption
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(data) {
		return nil, ErrDecryption
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, ErrDecryption
		}
	}
	return data[:len(data)-padLen], nil
}
