package cryptolib

import "github.com/akram-max/witness-angel-cryptolib/primitives"

// Recipe is the input configuration describing how a payload should be
// protected: an ordered sequence of data-encryption strata, each
// specifying its own key-wrap layers and signature policy.
type Recipe struct {
	DataEncryptionStrata []DataEncryptionStratumConfig `msgpack:"data_encryption_strata"`
}

// DataEncryptionStratumConfig describes one symmetric-encryption layer of
// a Recipe.
type DataEncryptionStratumConfig struct {
	DataEncryptionAlgo  primitives.SymmetricAlgo     `msgpack:"data_encryption_algo"`
	KeyEncryptionStrata []KeyEncryptionStratumConfig `msgpack:"key_encryption_strata"`
	DataSignatures      []SignatureConfig            `msgpack:"data_signatures"`
}

// KeyEncryptionStratumConfig describes one asymmetric key-wrap layer
// applied to a stratum's symmetric key.
type KeyEncryptionStratumConfig struct {
	KeyEscrow         string                              `msgpack:"key_escrow"`
	EscrowKeyType     primitives.KeyType                  `msgpack:"escrow_key_type"`
	KeyEncryptionAlgo primitives.AsymmetricEncryptionAlgo `msgpack:"key_encryption_algo"`
}

// SignatureConfig describes one signature policy applied to a stratum's
// ciphertext.
type SignatureConfig struct {
	SignatureEscrow  string                   `msgpack:"signature_escrow"`
	SignatureKeyType primitives.KeyType       `msgpack:"signature_key_type"`
	SignatureAlgo    primitives.SignatureAlgo `msgpack:"signature_algo"`
}

// Clone returns a deep copy of r, so Encrypt can mutate its working copy
// without affecting the caller's recipe (and vice versa, for callers that
// reuse a Recipe value across many Encrypt calls).
func (r Recipe) Clone() Recipe {
	out := Recipe{DataEncryptionStrata: make([]DataEncryptionStratumConfig, len(r.DataEncryptionStrata))}
	for i, stratum := range r.DataEncryptionStrata {
		keyStrata := make([]KeyEncryptionStratumConfig, len(stratum.KeyEncryptionStrata))
		copy(keyStrata, stratum.KeyEncryptionStrata)

		sigs := make([]SignatureConfig, len(stratum.DataSignatures))
		copy(sigs, stratum.DataSignatures)

		out.DataEncryptionStrata[i] = DataEncryptionStratumConfig{
			DataEncryptionAlgo:  stratum.DataEncryptionAlgo,
			KeyEncryptionStrata: keyStrata,
			DataSignatures:      sigs,
		}
	}
	return out
}
