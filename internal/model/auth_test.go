package model

import "testing"

func TestJwtAlgorithmNextWrapsAfterLast(t *testing.T) {
	if got := JwtEdDSA.Next(); got != JwtHS256 {
		t.Fatalf("got %v", got)
	}
}

func TestJwtAlgorithmPreviousWrapsBeforeFirst(t *testing.T) {
	if got := JwtHS256.Previous(); got != JwtEdDSA {
		t.Fatalf("got %v", got)
	}
}

func TestJwtAlgorithmIsAsymmetric(t *testing.T) {
	for _, a := range []JwtAlgorithm{JwtHS256, JwtHS384, JwtHS512} {
		if a.IsAsymmetric() {
			t.Fatalf("%v should not be asymmetric", a)
		}
	}
	for _, a := range []JwtAlgorithm{JwtES256, JwtRS256, JwtPS256, JwtEdDSA} {
		if !a.IsAsymmetric() {
			t.Fatalf("%v should be asymmetric", a)
		}
	}
}

func TestJwtAlgorithmDefaultSecretType(t *testing.T) {
	if got := JwtHS256.DefaultSecretType(); got != SecretText {
		t.Fatalf("got %v", got)
	}
	if got := JwtRS256.DefaultSecretType(); got != SecretPEM {
		t.Fatalf("got %v", got)
	}
}

func TestDigestAlgorithmSess(t *testing.T) {
	if !DigestMD5Sess.Sess() {
		t.Fatalf("expected MD5-sess to report Sess() true")
	}
	if DigestMD5.Sess() {
		t.Fatalf("expected MD5 to report Sess() false")
	}
}

func TestDigestAlgorithmCyclicStepper(t *testing.T) {
	if got := DigestSHA512_256Sess.Next(); got != DigestMD5 {
		t.Fatalf("expected wraparound, got %v", got)
	}
	if got := DigestMD5.Previous(); got != DigestSHA512_256Sess {
		t.Fatalf("expected wraparound, got %v", got)
	}
}

func TestDigestQopCyclicStepper(t *testing.T) {
	if got := QopNone.Next(); got != QopAuth {
		t.Fatalf("got %v", got)
	}
	if got := QopAuthInt.Next(); got != QopNone {
		t.Fatalf("expected wraparound, got %v", got)
	}
}

func TestDigestCharsetToggle(t *testing.T) {
	if got := CharsetASCII.Toggle(); got != CharsetUTF8 {
		t.Fatalf("got %v", got)
	}
	if got := CharsetUTF8.Toggle(); got != CharsetASCII {
		t.Fatalf("got %v", got)
	}
}
