package primitives

import (
	"bytes"
	"crypto/aes"
	"testing"
)

func TestEncryptDecryptBytestring_RoundTrip(t *testing.T) {
	algos := []SymmetricAlgo{AESCBC, AESEAX, ChaCha20Poly1305}
	plaintext := []byte("the quick brown fox jumps over the lazy dog")

	for _, algo := range algos {
		t.Run(string(algo), func(t *testing.T) {
			key, err := GenerateSymmetricKey(algo)
			if err != nil {
				t.Fatalf("GenerateSymmetricKey(%s): %v", algo, err)
			}
			cd, err := EncryptBytestring(plaintext, algo, key)
			if err != nil {
				t.Fatalf("EncryptBytestring: %v", err)
			}
			got, err := DecryptBytestring(cd, algo, key)
			if err != nil {
				t.Fatalf("DecryptBytestring: %v", err)
			}
			if !bytes.Equal(got, plaintext) {
				t.Errorf("round trip mismatch: got %q, want %q", got, plaintext)
			}
		})
	}
}

func TestEncryptBytestring_EmptyPlaintext(t *testing.T) {
	for _, algo := range []SymmetricAlgo{AESCBC, AESEAX, ChaCha20Poly1305} {
		key, err := GenerateSymmetricKey(algo)
		if err != nil {
			t.Fatalf("GenerateSymmetricKey(%s): %v", algo, err)
		}
		cd, err := EncryptBytestring(nil, algo, key)
		if err != nil {
			t.Fatalf("EncryptBytestring(%s) on empty input: %v", algo, err)
		}
		got, err := DecryptBytestring(cd, algo, key)
		if err != nil {
			t.Fatalf("DecryptBytestring(%s) on empty input: %v", algo, err)
		}
		if len(got) != 0 {
			t.Errorf("%s: expected empty plaintext, got %q", algo, got)
		}
	}
}

func TestDecryptBytestring_TamperedCiphertextFails(t *testing.T) {
	for _, algo := range []SymmetricAlgo{AESCBC, AESEAX, ChaCha20Poly1305} {
		key, err := GenerateSymmetricKey(algo)
		if err != nil {
			t.Fatalf("GenerateSymmetricKey(%s): %v", algo, err)
		}
		cd, err := EncryptBytestring([]byte("some plaintext data"), algo, key)
		if err != nil {
			t.Fatalf("EncryptBytestring(%s): %v", algo, err)
		}
		// AES_CBC has no authentication tag, so only a change that breaks the
		// PKCS#7 padding is detected: flip the byte of the second-to-last
		// block that lands on the final padding byte. The AEAD modes reject
		// a change to any byte.
		idx := 0
		if algo == AESCBC {
			idx = len(cd.Ciphertext) - aes.BlockSize - 1
		}
		tampered := append([]byte{}, cd.Ciphertext...)
		tampered[idx] ^= 0xff
		cd.Ciphertext = tampered

		if _, err := DecryptBytestring(cd, algo, key); err == nil {
			t.Errorf("%s: expected decryption to fail on tampered ciphertext", algo)
		}
	}
}

func TestEncryptBytestring_UnsupportedAlgo(t *testing.T) {
	if _, err := GenerateSymmetricKey("NOT_AN_ALGO"); err == nil {
		t.Error("expected error for unsupported algorithm")
	}
	if _, err := EncryptBytestring([]byte("x"), "NOT_AN_ALGO", []byte("key")); err == nil {
		t.Error("expected error for unsupported algorithm")
	}
}

func TestPkcs7PadUnpad_RoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		[]byte("a"),
		bytes.Repeat([]byte("x"), 16),
		bytes.Repeat([]byte("y"), 31),
	}
	for _, c := range cases {
		padded := pkcs7Pad(c, 16)
		if len(padded)%16 != 0 {
			t.Fatalf("padded length %d not a multiple of block size", len(padded))
		}
		unpadded, err := pkcs7Unpad(padded, 16)
		if err != nil {
			t.Fatalf("pkcs7Unpad: %v", err)
		}
		if !bytes.Equal(unpadded, c) {
			t.Errorf("got %q, want %q", unpadded, c)
		}
	}
}
