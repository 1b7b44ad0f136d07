package cryptolib

import "errors"

// Sentinel errors identifying the fatal error kinds the engine can raise.
// Callers should use errors.Is against these to branch on failure category;
// the wrapped error text carries the offending algorithm tag, escrow
// selector, or stratum index where applicable.
var (
	// ErrUnknownFormat is returned when a container's container_format
	// field does not match FormatTag.
	ErrUnknownFormat = errors.New("cryptolib: unknown container format")

	// ErrAlgorithmNotSupported is returned when a recipe or container
	// references an algorithm tag outside the closed, enumerated set.
	ErrAlgorithmNotSupported = errors.New("cryptolib: algorithm not supported")

	// ErrEscrowNotAvailable is returned when a recipe references an
	// escrow selector that is not registered.
	ErrEscrowNotAvailable = errors.New("cryptolib: escrow not available")

	// ErrKeyDoesNotExist is returned by Decrypt when an escrow reports
	// that no keypair was ever issued for the requested
	// (keychain_uid, key_type) pair.
	ErrKeyDoesNotExist = errors.New("cryptolib: key does not exist")

	// ErrDecryption is returned when a symmetric or asymmetric primitive
	// fails its authentication or padding check.
	ErrDecryption = errors.New("cryptolib: decryption failed")

	// ErrSignatureVerification is returned when a signature fails to
	// verify, whether due to a tampered digest, timestamp, or ciphertext.
	ErrSignatureVerification = errors.New("cryptolib: signature verification failed")

	// ErrInvalidArgument is returned for malformed recipes or payloads
	// that do not satisfy the shapes this package requires.
	ErrInvalidArgument = errors.New("cryptolib: invalid argument")
)
