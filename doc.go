// Package cryptolib implements the container encryption engine: a layered
// symmetric-encryption-plus-asymmetric-key-wrap-plus-signature pipeline that
// packages arbitrary binary payloads into self-describing containers whose
// decryption requires the cooperation of one or more escrow authorities.
//
// A Recipe describes, for a payload, an ordered sequence of data-encryption
// strata. Each stratum wraps a freshly generated symmetric key through zero
// or more key-encryption strata (asymmetric wraps performed by escrows) and
// collects zero or more signatures over its ciphertext. Encrypt applies a
// Recipe to a plaintext and produces a Container; Decrypt reverses the
// process, verifying every signature before any escrow is asked to
// decrypt with a private key.
//
// The concrete cryptographic primitives live in the primitives
// subpackage, the escrow abstraction in the escrow subpackage, and the
// canonical on-disk encoding in the wireformat subpackage.
package cryptolib

// FormatTag is the literal container_format value produced by this engine.
// Readers reject any container whose tag does not match exactly.
const FormatTag = "WA_0.1a"
