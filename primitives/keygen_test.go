package primitives

import "testing"

func TestGenerateKeyPair_PopulatesExpectedFields(t *testing.T) {
	cases := []struct {
		keyType KeyType
		check   func(KeyPair) bool
	}{
		{KeyTypeRSA, func(kp KeyPair) bool { return kp.RSAPublic != nil && kp.RSAPrivate != nil }},
		{KeyTypeDSA, func(kp KeyPair) bool { return kp.DSAPublic != nil && kp.DSAPrivate != nil }},
		{KeyTypeECC, func(kp KeyPair) bool { return kp.ECCPublic != nil && kp.ECCPrivate != nil }},
	}
	for _, tc := range cases {
		t.Run(string(tc.keyType), func(t *testing.T) {
			kp, err := GenerateKeyPair(tc.keyType)
			if err != nil {
				t.Fatalf("GenerateKeyPair(%s): %v", tc.keyType, err)
			}
			if kp.Type != tc.keyType {
				t.Errorf("got type %v, want %v", kp.Type, tc.keyType)
			}
			if !tc.check(kp) {
				t.Errorf("%s keypair missing expected key material", tc.keyType)
			}
		})
	}
}

func TestGenerateKeyPair_UnsupportedType(t *testing.T) {
	if _, err := GenerateKeyPair("NOT_A_KEY_TYPE"); err == nil {
		t.Error("expected error for unsupported key type")
	}
}
