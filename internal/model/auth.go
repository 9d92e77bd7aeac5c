package model

// AuthKind discriminates the Auth tagged union (§3, §4.3).
type AuthKind string

const (
	AuthNone   AuthKind = "none"
	AuthBasic  AuthKind = "basic"
	AuthBearer AuthKind = "bearer"
	AuthJWT    AuthKind = "jwt"
	AuthDigest AuthKind = "digest"
)

// Auth is the closed tagged union of authentication specifications. Only
// the fields matching Kind are meaningful.
type Auth struct {
	Kind AuthKind `json:"kind" yaml:"kind"`

	// Basic
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`

	// Bearer
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// JWT
	JWT JwtSpec `json:"jwt,omitempty" yaml:"jwt,omitempty"`

	// Digest
	Digest DigestState `json:"digest,omitempty" yaml:"digest,omitempty"`
}

// JwtAlgorithm enumerates the 12 algorithms named in §4.3, mirroring
// original_source/src/models/auth/jwt.rs's JwtAlgorithm enum.
type JwtAlgorithm string

const (
	JwtHS256 JwtAlgorithm = "HS256"
	JwtHS384 JwtAlgorithm = "HS384"
	JwtHS512 JwtAlgorithm = "HS512"
	JwtES256 JwtAlgorithm = "ES256"
	JwtES384 JwtAlgorithm = "ES384"
	JwtRS256 JwtAlgorithm = "RS256"
	JwtRS384 JwtAlgorithm = "RS384"
	JwtRS512 JwtAlgorithm = "RS512"
	JwtPS256 JwtAlgorithm = "PS256"
	JwtPS384 JwtAlgorithm = "PS384"
	JwtPS512 JwtAlgorithm = "PS512"
	JwtEdDSA JwtAlgorithm = "EdDSA"
)

// jwtAlgorithmOrder is the cyclic order used by Next/Previous, matching the
// Rust source's enum declaration order.
var jwtAlgorithmOrder = []JwtAlgorithm{
	JwtHS256, JwtHS384, JwtHS512,
	JwtES256, JwtES384,
	JwtRS256, JwtRS384, JwtRS512,
	JwtPS256, JwtPS384, JwtPS512,
	JwtEdDSA,
}

// Next returns the next algorithm in cyclic order, wrapping after EdDSA.
func (a JwtAlgorithm) Next() JwtAlgorithm { return cycle(jwtAlgorithmOrder, a, 1) }

// Previous returns the previous algorithm in cyclic order, wrapping before HS256.
func (a JwtAlgorithm) Previous() JwtAlgorithm { return cycle(jwtAlgorithmOrder, a, -1) }

func cycle[T comparable](order []T, cur T, delta int) T {
	idx := 0
	for i, v := range order {
		if v == cur {
			idx = i
			break
		}
	}
	n := len(order)
	idx = ((idx+delta)%n + n) % n
	return order[idx]
}

// IsAsymmetric reports whether the algorithm uses a public/private key pair
// rather than a shared secret.
func (a JwtAlgorithm) IsAsymmetric() bool {
	switch a {
	case JwtHS256, JwtHS384, JwtHS512:
		return false
	default:
		return true
	}
}

// DefaultSecretType mirrors default_secret_type in jwt.rs: HMAC algorithms
// default to a text secret, every asymmetric family defaults to PEM.
func (a JwtAlgorithm) DefaultSecretType() JwtSecretType {
	if a.IsAsymmetric() {
		return SecretPEM
	}
	return SecretText
}

// Helper mirrors get_helper in jwt.rs: short UI hint text for the secret
// field's expected shape.
func (a JwtAlgorithm) Helper() string {
	switch {
	case !a.IsAsymmetric():
		return "HMAC"
	case a == JwtES256 || a == JwtES384:
		return "EC key file path"
	case a == JwtRS256 || a == JwtRS384 || a == JwtRS512 || a == JwtPS256 || a == JwtPS384 || a == JwtPS512:
		return "RSA key file path"
	case a == JwtEdDSA:
		return "ED key file path"
	default:
		return ""
	}
}

// JwtSecretType discriminates how JwtSpec.Secret should be interpreted.
type JwtSecretType string

const (
	SecretText         JwtSecretType = "text"
	SecretBase64       JwtSecretType = "base64"
	SecretURLSafeBase64 JwtSecretType = "urlsafe_base64"
	SecretPEM          JwtSecretType = "pem"
	SecretDER          JwtSecretType = "der"
)

// JwtSpec carries everything needed to mint a token: algorithm, how to
// interpret Secret (inline text or a path to read for PEM/DER), and the
// claims payload as a raw JSON object string.
type JwtSpec struct {
	Algorithm  JwtAlgorithm  `json:"algorithm" yaml:"algorithm"`
	SecretType JwtSecretType `json:"secret_type" yaml:"secret_type"`
	Secret     string        `json:"secret" yaml:"secret"`
	Payload    string        `json:"payload" yaml:"payload"`
}

// DigestAlgorithm enumerates the RFC 7616 algorithm variants named in §4.3.
type DigestAlgorithm string

const (
	DigestMD5           DigestAlgorithm = "MD5"
	DigestMD5Sess       DigestAlgorithm = "MD5-sess"
	DigestSHA256        DigestAlgorithm = "SHA-256"
	DigestSHA256Sess    DigestAlgorithm = "SHA-256-sess"
	DigestSHA512_256     DigestAlgorithm = "SHA-512-256"
	DigestSHA512_256Sess DigestAlgorithm = "SHA-512-256-sess"
)

var digestAlgorithmOrder = []DigestAlgorithm{
	DigestMD5, DigestMD5Sess,
	DigestSHA256, DigestSHA256Sess,
	DigestSHA512_256, DigestSHA512_256Sess,
}

func (a DigestAlgorithm) Next() DigestAlgorithm     { return cycle(digestAlgorithmOrder, a, 1) }
func (a DigestAlgorithm) Previous() DigestAlgorithm { return cycle(digestAlgorithmOrder, a, -1) }

// Sess reports whether the algorithm is a "-sess" variant (key derived
// additionally from nonce and cnonce, per RFC 7616 §3.4.2).
func (a DigestAlgorithm) Sess() bool {
	switch a {
	case DigestMD5Sess, DigestSHA256Sess, DigestSHA512_256Sess:
		return true
	default:
		return false
	}
}

// DigestQop enumerates the quality-of-protection choices.
type DigestQop string

const (
	QopNone    DigestQop = ""
	QopAuth    DigestQop = "auth"
	QopAuthInt DigestQop = "auth-int"
)

var digestQopOrder = []DigestQop{QopNone, QopAuth, QopAuthInt}

func (q DigestQop) Next() DigestQop     { return cycle(digestQopOrder, q, 1) }
func (q DigestQop) Previous() DigestQop { return cycle(digestQopOrder, q, -1) }

// DigestCharset controls the optional RFC 7616 `charset` challenge parameter.
type DigestCharset string

const (
	CharsetASCII DigestCharset = "ASCII"
	CharsetUTF8  DigestCharset = "UTF-8"
)

// Toggle flips ASCII<->UTF-8, mirroring toggle_digest_charset in digest.rs.
func (c DigestCharset) Toggle() DigestCharset {
	if c == CharsetUTF8 {
		return CharsetASCII
	}
	return CharsetUTF8
}

// DigestState carries the user-supplied credentials plus everything parsed
// from the most recent WWW-Authenticate challenge, and the per-request nc
// counter (monotonically non-decreasing per §3 invariant, reset per-nonce
// per the §9 REDESIGN).
type DigestState struct {
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`

	Realm     string          `json:"realm,omitempty" yaml:"realm,omitempty"`
	Nonce     string          `json:"nonce,omitempty" yaml:"nonce,omitempty"`
	Opaque    string          `json:"opaque,omitempty" yaml:"opaque,omitempty"`
	Stale     bool            `json:"stale,omitempty" yaml:"stale,omitempty"`
	Algorithm DigestAlgorithm `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`
	Qop       []DigestQop     `json:"qop,omitempty" yaml:"qop,omitempty"`
	Userhash  bool            `json:"userhash,omitempty" yaml:"userhash,omitempty"`
	Charset   DigestCharset   `json:"charset,omitempty" yaml:"charset,omitempty"`
	Domains   []string        `json:"domains,omitempty" yaml:"domains,omitempty"`

	NC uint32 `json:"nc" yaml:"nc"`
}
