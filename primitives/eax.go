package primitives

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
)

// eaxTagSize is the length, in bytes, of the authentication tag produced by
// eaxEncrypt. It matches the AES block size, the usual default for EAX mode.
const eaxTagSize = aes.BlockSize

// eaxEncrypt implements EAX mode (Bellare, Rogaway, Wagner) over AES: CTR
// mode confidentiality plus a three-way OMAC authentication tag that binds
// the nonce, an (empty, here) header, and the ciphertext together. There is
// no associated-data argument because the engine never has header bytes to
// authenticate alongside a stratum's ciphertext.
func eaxEncrypt(key, nonce, plaintext []byte) (ciphertext, tag []byte, err error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}

	nonceMac, err := omac(block, 0, nonce)
	if err != nil {
		return nil, nil, err
	}
	headerMac, err := omac(block, 1, nil)
	if err != nil {
		return nil, nil, err
	}

	ciphertext = make([]byte, len(plaintext))
	stream := cipher.NewCTR(block, nonceMac)
	stream.XORKeyStream(ciphertext, plaintext)

	cipherMac, err := omac(block, 2, ciphertext)
	if err != nil {
		return nil, nil, err
	}

	tag = make([]byte, eaxTagSize)
	for i := range tag {
		tag[i] = nonceMac[i] ^ headerMac[i] ^ cipherMac[i]
	}
	return ciphertext, tag, nil
}

// eaxDecrypt verifies the EAX tag in constant time before decrypting, so a
// forged ciphertext never reaches the CTR keystream.
func eaxDecrypt(key, nonce, ciphertext, tag []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	nonceMac, err := omac(block, 0, nonce)
	if err != nil {
		return nil, err
	}
	headerMac, err := omac(block, 1, nil)
	if err != nil {
		return nil, err
	}
	cipherMac, err := omac(block, 2, ciphertext)
	if err != nil {
		return nil, err
	}

	wantTag := make([]byte, eaxTagSize)
	for i := range wantTag {
		wantTag[i] = nonceMac[i] ^ headerMac[i] ^ cipherMac[i]
	}
	if len(tag) != eaxTagSize || subtle.ConstantTimeCompare(tag, wantTag) != 1 {
		return nil, ErrDecryption
	}

	plaintext := make([]byte, len(ciphertext))
	stream := cipher.NewCTR(block, nonceMac)
	stream.XORKeyStream(plaintext, ciphertext)
	return plaintext, nil
}

// omac computes OMAC^t(msg) = CMAC_K([t]_n || msg) as defined by the EAX
// construction, where t selects one of the three domain-separated MACs
// (nonce, header, ciphertext) and [t]_n is a full block of zero bytes with
// its last byte set to t.
func omac(block cipher.Block, t byte, msg []byte) ([]byte, error) {
	prefix := make([]byte, aes.BlockSize)
	prefix[aes.BlockSize-1] = t
	return cmac(block, append(prefix, msg...))
}

// cmac implements AES-CMAC (NIST SP 800-38B / RFC 4493).
func cmac(block cipher.Block, msg []byte) ([]byte, error) {
	zero := make([]byte, aes.BlockSize)
	l := make([]byte, aes.BlockSize)
	block.Encrypt(l, zero)
	k1 := gfDouble(l)
	k2 := gfDouble(k1)

	n := len(msg) / aes.BlockSize
	rem := len(msg) % aes.BlockSize

	var lastBlock []byte
	var leading []byte
	if n == 0 || rem != 0 {
		padded := make([]byte, aes.BlockSize)
		copy(padded, msg[n*aes.BlockSize:])
		padded[len(msg)-n*aes.BlockSize] = 0x80
		lastBlock = xorBlocks(padded, k2)
		leading = msg[:n*aes.BlockSize]
	} else {
		lastBlock = xorBlocks(msg[len(msg)-aes.BlockSize:], k1)
		leading = msg[:len(msg)-aes.BlockSize]
	}

	x := make([]byte, aes.BlockSize)
	buf := make([]byte, aes.BlockSize)
	for i := 0; i < len(leading); i += aes.BlockSize {
		block.Encrypt(buf, xorBlocks(x, leading[i:i+aes.BlockSize]))
		copy(x, buf)
	}
	block.Encrypt(buf, xorBlocks(x, lastBlock))
	out := make([]byte, aes.BlockSize)
	copy(out, buf)
	return out, nil
}

// gfDouble multiplies a 128-bit block by x in GF(2^128) using the
// irreducible polynomial x^128 + x^7 + x^2 + x + 1 (reduction byte 0x87),
// as required by the CMAC subkey derivation.
func gfDouble(b []byte) []byte {
	out := make([]byte, len(b))
	var carry byte
	for i := len(b) - 1; i >= 0; i-- {
		cur := b[i]
		out[i] = (cur << 1) | carry
		carry = cur >> 7
	}
	if carry != 0 {
		out[len(out)-1] ^= 0x87
	}
	return out
}

func xorBlocks(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return out
}
