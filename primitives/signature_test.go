package primitives

import "testing"

func TestSignVerify_RoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		keyType KeyType
		algo    SignatureAlgo
	}{
		{"RSA/PSS", KeyTypeRSA, PSS},
		{"DSA/DSS", KeyTypeDSA, DSS},
		{"ECC/DSS", KeyTypeECC, DSS},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kp, err := GenerateKeyPair(tc.keyType)
			if err != nil {
				t.Fatalf("GenerateKeyPair: %v", err)
			}
			plaintext := []byte("message to be signed")
			sig, err := Sign(kp, plaintext, tc.algo, 1700000000)
			if err != nil {
				t.Fatalf("Sign: %v", err)
			}
			if err := Verify(kp, plaintext, sig, tc.algo); err != nil {
				t.Fatalf("Verify: %v", err)
			}
		})
	}
}

func TestVerify_TamperedDigestFails(t *testing.T) {
	kp, err := GenerateKeyPair(KeyTypeRSA)
	if err != nil {
		t.Fatal(err)
	}
	plaintext := []byte("message to be signed")
	sig, err := Sign(kp, plaintext, PSS, 1700000000)
	if err != nil {
		t.Fatal(err)
	}
	sig.Digest[0] ^= 0xff
	if err := Verify(kp, plaintext, sig, PSS); err == nil {
		t.Error("expected tampered digest to fail verification")
	}
}

func TestVerify_TamperedTimestampFails(t *testing.T) {
	kp, err := GenerateKeyPair(KeyTypeRSA)
	if err != nil {
		t.Fatal(err)
	}
	plaintext := []byte("message to be signed")
	sig, err := Sign(kp, plaintext, PSS, 1700000000)
	if err != nil {
		t.Fatal(err)
	}
	sig.TimestampUTC++
	if err := Verify(kp, plaintext, sig, PSS); err == nil {
		t.Error("expected tampered timestamp to fail verification")
	}
}

func TestVerify_TamperedPlaintextFails(t *testing.T) {
	kp, err := GenerateKeyPair(KeyTypeRSA)
	if err != nil {
		t.Fatal(err)
	}
	plaintext := []byte("message to be signed")
	sig, err := Sign(kp, plaintext, PSS, 1700000000)
	if err != nil {
		t.Fatal(err)
	}
	if err := Verify(kp, []byte("different message"), sig, PSS); err == nil {
		t.Error("expected tampered plaintext to fail verification")
	}
}
