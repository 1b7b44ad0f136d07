// Package wireformat provides the canonical, self-describing binary
// encoding the container engine uses for its on-disk container tree and
// for the cipherdicts it embeds inline inside outer strata. MessagePack
// (github.com/vmihailenco/msgpack) gives byte sequences, integers,
// strings, UUIDs, and nested maps/sequences explicit type tags and a
// single, deterministic encoding for a given Go value, which is exactly
// what signatures computed over encoded cipherdicts need: the same
// cipherdict must always serialise to the same bytes.
package wireformat

import "github.com/vmihailenco/msgpack/v5"

// Marshal encodes v using the canonical encoding. Struct field order (not
// map key order) determines byte layout, so every type this package
// encodes is a struct with a fixed field order rather than a map.
func Marshal(v interface{}) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal decodes data, previously produced by Marshal, into v.
func Unmarshal(data []byte, v interface{}) error {
	return msgpack.Unmarshal(data, v)
}
