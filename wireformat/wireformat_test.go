package wireformat

import (
	"bytes"
	"testing"
)

type sample struct {
	Ciphertext []byte `msgpack:"ciphertext"`
	Nonce      []byte `msgpack:"nonce,omitempty"`
}

func TestMarshalUnmarshal_RoundTrip(t *testing.T) {
	in := sample{Ciphertext: []byte("hello"), Nonce: []byte("n")}
	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out sample
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !bytes.Equal(out.Ciphertext, in.Ciphertext) || !bytes.Equal(out.Nonce, in.Nonce) {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

func TestMarshal_Deterministic(t *testing.T) {
	in := sample{Ciphertext: []byte("hello"), Nonce: []byte("n")}
	a, err := Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("expected two encodes of the same value to produce identical bytes")
	}
}
