package keys

import (
	"bytes"
	"testing"

	"xdao.co/deid"
)

func TestEd25519SignVerify(t *testing.T) {
	sk, err := GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	msg := []byte("sign me")
	sig, err := sk.Sign(msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	pk := sk.PublicKey()
	if !pk.Verify(msg, sig) {
		t.Fatalf("Verify(valid) = false")
	}
	if pk.Verify([]byte("other"), sig) {
		t.Fatalf("Verify(wrong message) = true")
	}
	sig[0] ^= 0x01
	if pk.Verify(msg, sig) {
		t.Fatalf("Verify(corrupted signature) = true")
	}
}

func TestEd25519FromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{0x42}, 32)
	a, err := NewEd25519SignKey(seed)
	if err != nil {
		t.Fatalf("NewEd25519SignKey(seed): %v", err)
	}
	if !bytes.Equal(a.Seed(), seed) {
		t.Fatalf("Seed() differs from input")
	}
	b, err := NewEd25519SignKey(seed)
	if err != nil {
		t.Fatalf("NewEd25519SignKey(seed, again): %v", err)
	}
	if !Equal(a.PublicKey(), b.PublicKey()) {
		t.Fatalf("same seed must yield the same key")
	}

	_, err = NewEd25519SignKey(seed[:16])
	if !deid.IsKind(err, deid.KindFormat) {
		t.Fatalf("short seed: got err=%v want KindFormat", err)
	}
}

func TestRSASignVerifyDeterministic(t *testing.T) {
	sk, err := GenerateRSA(DefaultRSABits)
	if err != nil {
		t.Fatalf("GenerateRSA: %v", err)
	}
	msg := []byte("hulk")
	sig1, err := sk.Sign(msg)
	if err != nil {
		t.Fatalf("Sign(1): %v", err)
	}
	sig2, err := sk.Sign(msg)
	if err != nil {
		t.Fatalf("Sign(2): %v", err)
	}
	if !bytes.Equal(sig1, sig2) {
		t.Fatalf("PKCS#1 v1.5 signing must be deterministic")
	}
	if !sk.PublicKey().Verify(msg, sig1) {
		t.Fatalf("Verify(valid) = false")
	}
	if sk.PublicKey().Verify([]byte("loki"), sig1) {
		t.Fatalf("Verify(wrong message) = true")
	}
}

func TestRSAPEMRoundTrip(t *testing.T) {
	sk, err := GenerateRSA(DefaultRSABits)
	if err != nil {
		t.Fatalf("GenerateRSA: %v", err)
	}

	parsedSK, err := ParseRSASignKey(sk.PrivatePEM())
	if err != nil {
		t.Fatalf("ParseRSASignKey: %v", err)
	}
	if !Equal(parsedSK.PublicKey(), sk.PublicKey()) {
		t.Fatalf("private PEM round trip changed the key")
	}

	d := Describe(sk.PublicKey())
	parsedPK, err := ParseRSAVerifyKey(d.Data)
	if err != nil {
		t.Fatalf("ParseRSAVerifyKey: %v", err)
	}
	if !Equal(parsedPK, sk.PublicKey()) {
		t.Fatalf("public PEM round trip changed the key")
	}
}

func TestRSAPEMSingleLineArmor(t *testing.T) {
	// Descriptors transported inside JSON strings often collapse the armor
	// onto one line with no newlines at all.
	singleLine := "-----BEGIN PUBLIC KEY-----" +
		"MIGJAoGBALB+vbUK48UU9rjlgnohQowME+3JtTb2hLPqtatVOW364/EKFq0/PSdn" +
		"ZVE9V2Zq+pbX7dj3nCS4pWnYf40ELH8wuDm0Tc4jQ70v4LgAcdy3JGTnWUGiCsY+" +
		"0Z8kNzRkm3FJid592FL7ryzfvIzB9bjg8U2JqlyCVAyUYEnKv4lDAgMBAAE=" +
		"-----END PUBLIC KEY-----"
	pk, err := ParseRSAVerifyKey(singleLine)
	if err != nil {
		t.Fatalf("ParseRSAVerifyKey(single line): %v", err)
	}
	if len(pk.Bytes()) == 0 {
		t.Fatalf("empty canonical bytes")
	}

	_, err = ParseRSAVerifyKey("no armor at all")
	if !deid.IsKind(err, deid.KindFormat) {
		t.Fatalf("missing armor: got err=%v want KindFormat", err)
	}
}

func TestDilithium3SignVerify(t *testing.T) {
	sk, err := GenerateDilithium3()
	if err != nil {
		t.Fatalf("GenerateDilithium3: %v", err)
	}
	msg := []byte("post quantum")
	sig, err := sk.Sign(msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	pk := sk.PublicKey()
	if !pk.Verify(msg, sig) {
		t.Fatalf("Verify(valid) = false")
	}
	if pk.Verify([]byte("other"), sig) {
		t.Fatalf("Verify(wrong message) = true")
	}

	// Canonical bytes survive re-wrapping.
	rewrapped, err := NewDilithium3VerifyKey(pk.Bytes())
	if err != nil {
		t.Fatalf("NewDilithium3VerifyKey: %v", err)
	}
	if !Equal(rewrapped, pk) {
		t.Fatalf("re-wrapped key differs")
	}
}

func TestDescriptorRoundTrip(t *testing.T) {
	edKey, err := GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	rsaKey, err := GenerateRSA(DefaultRSABits)
	if err != nil {
		t.Fatalf("GenerateRSA: %v", err)
	}

	for _, pk := range []VerifyKey{edKey.PublicKey(), rsaKey.PublicKey()} {
		d := Describe(pk)
		parsed, err := ParseVerifyKey(d)
		if err != nil {
			t.Fatalf("ParseVerifyKey(%s): %v", pk.Algorithm(), err)
		}
		if !Equal(parsed, pk) {
			t.Fatalf("descriptor round trip changed the %s key", pk.Algorithm())
		}
	}

	_, err = ParseVerifyKey(Descriptor{Algorithm: "ECC", Data: ""})
	if !deid.IsKind(err, deid.KindFormat) {
		t.Fatalf("unknown algorithm: got err=%v want KindFormat", err)
	}
}

func TestDescriptorRSAAliases(t *testing.T) {
	rsaKey, err := GenerateRSA(DefaultRSABits)
	if err != nil {
		t.Fatalf("GenerateRSA: %v", err)
	}
	pem := Describe(rsaKey.PublicKey()).Data

	for _, alg := range []string{"RSA", "SHA256withRSA", "RSA/ECB/PKCS1Padding"} {
		pk, err := ParseVerifyKey(Descriptor{Algorithm: alg, Data: pem})
		if err != nil {
			t.Fatalf("ParseVerifyKey(%q): %v", alg, err)
		}
		if !Equal(pk, rsaKey.PublicKey()) {
			t.Fatalf("alias %q parsed to a different key", alg)
		}
	}
}

func TestKeyEqual(t *testing.T) {
	a, err := GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	b, err := GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	if !Equal(a.PublicKey(), a.PublicKey()) {
		t.Fatalf("key must equal itself")
	}
	if Equal(a.PublicKey(), b.PublicKey()) {
		t.Fatalf("distinct keys must not be equal")
	}
	if Equal(a.PublicKey(), nil) {
		t.Fatalf("nil never equals a key")
	}
}
