package auth

import (
	"crypto/md5"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"strconv"
	"strings"
	"sync/atomic"

	"atac/internal/atacx/errs"
	"atac/internal/model"
)

// ParseChallenge parses a WWW-Authenticate: Digest ... header value into a
// DigestState's challenge fields, using a quoted/plain-value state machine
// per §4.3 ("reference grammar in §8" — RFC 7616 §3.3's auth-param list).
// Existing Username/Password on dst are preserved; NC is reset to 0.
func ParseChallenge(dst *model.DigestState, header string) error {
	header = strings.TrimSpace(header)
	const prefix = "Digest "
	if !strings.HasPrefix(header, prefix) {
		return errs.New(errs.KindAuth, "digest", "parse_challenge", fmt.Errorf("missing Digest scheme prefix"))
	}
	params, err := parseAuthParams(header[len(prefix):])
	if err != nil {
		return errs.New(errs.KindAuth, "digest", "parse_challenge", err)
	}

	dst.Realm = params["realm"]
	dst.Nonce = params["nonce"]
	dst.Opaque = params["opaque"]
	dst.Stale = strings.EqualFold(params["stale"], "true")
	dst.Userhash = strings.EqualFold(params["userhash"], "true")

	if alg, ok := params["algorithm"]; ok && alg != "" {
		dst.Algorithm = model.DigestAlgorithm(alg)
	} else {
		dst.Algorithm = model.DigestMD5
	}

	dst.Qop = nil
	if qop, ok := params["qop"]; ok {
		for _, q := range strings.Split(qop, ",") {
			q = strings.TrimSpace(q)
			if q != "" {
				dst.Qop = append(dst.Qop, model.DigestQop(q))
			}
		}
	}

	if cs, ok := params["charset"]; ok && strings.EqualFold(cs, "UTF-8") {
		dst.Charset = model.CharsetUTF8
	} else {
		dst.Charset = model.CharsetASCII
	}

	if domain, ok := params["domain"]; ok {
		dst.Domains = strings.Fields(domain)
	}

	// Fresh challenge (or a changed nonce): reset nc to 0 per-nonce, the
	// REDESIGN specified in §9 (the source increments globally across
	// nonces; RFC 7616 calls for a reset whenever the server issues a new
	// nonce).
	dst.NC = 0
	return nil
}

// parseAuthParams tokenizes a comma-separated auth-param list where values
// may be quoted-strings (with backslash escapes) or unquoted tokens.
func parseAuthParams(s string) (map[string]string, error) {
	out := map[string]string{}
	i, n := 0, len(s)
	for i < n {
		for i < n && (s[i] == ' ' || s[i] == ',' || s[i] == '\t') {
			i++
		}
		if i >= n {
			break
		}
		keyStart := i
		for i < n && s[i] != '=' {
			i++
		}
		if i >= n {
			break
		}
		key := strings.TrimSpace(s[keyStart:i])
		i++ // skip '='
		var val strings.Builder
		if i < n && s[i] == '"' {
			i++
			for i < n {
				if s[i] == '\\' && i+1 < n {
					val.WriteByte(s[i+1])
					i += 2
					continue
				}
				if s[i] == '"' {
					i++
					break
				}
				val.WriteByte(s[i])
				i++
			}
		} else {
			for i < n && s[i] != ',' {
				val.WriteByte(s[i])
				i++
			}
		}
		out[strings.ToLower(key)] = strings.TrimSpace(val.String())
	}
	return out, nil
}

// Serialize renders a DigestState's challenge fields back into a
// WWW-Authenticate value, the inverse of ParseChallenge.
func Serialize(s model.DigestState) string {
	var b strings.Builder
	b.WriteString("Digest ")
	fmt.Fprintf(&b, `realm="%s", nonce="%s"`, s.Realm, s.Nonce)
	if s.Opaque != "" {
		fmt.Fprintf(&b, `, opaque="%s"`, s.Opaque)
	}
	if s.Stale {
		b.WriteString(`, stale=true`)
	}
	if s.Algorithm != "" {
		fmt.Fprintf(&b, `, algorithm=%s`, s.Algorithm)
	}
	if len(s.Qop) > 0 {
		parts := make([]string, len(s.Qop))
		for i, q := range s.Qop {
			parts[i] = string(q)
		}
		fmt.Fprintf(&b, `, qop="%s"`, strings.Join(parts, ","))
	}
	if s.Userhash {
		b.WriteString(`, userhash=true`)
	}
	if s.Charset == model.CharsetUTF8 {
		b.WriteString(`, charset=UTF-8`)
	}
	if len(s.Domains) > 0 {
		fmt.Fprintf(&b, `, domain="%s"`, strings.Join(s.Domains, " "))
	}
	return b.String()
}

func hashFor(alg model.DigestAlgorithm) func() hash.Hash {
	switch alg {
	case model.DigestSHA256, model.DigestSHA256Sess:
		return sha256.New
	case model.DigestSHA512_256, model.DigestSHA512_256Sess:
		return sha512.New512_256
	default:
		return md5.New
	}
}

func digestHex(hf func() hash.Hash, parts ...string) string {
	h := hf()
	h.Write([]byte(strings.Join(parts, ":")))
	return hex.EncodeToString(h.Sum(nil))
}

// chooseQop prefers auth-int when the challenge advertises it and a body is
// present, else auth, else no qop (§4.3).
func chooseQop(offered []model.DigestQop, hasBody bool) model.DigestQop {
	hasAuthInt, hasAuth := false, false
	for _, q := range offered {
		switch q {
		case model.QopAuthInt:
			hasAuthInt = true
		case model.QopAuth:
			hasAuth = true
		}
	}
	if hasAuthInt && hasBody {
		return model.QopAuthInt
	}
	if hasAuth {
		return model.QopAuth
	}
	return model.QopNone
}

func newCnonce() string {
	buf := make([]byte, 16)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}

// BuildAuthorization constructs the Authorization: Digest header for the
// given method/URI/body against s's most recently parsed challenge,
// incrementing s.NC (monotonically non-decreasing per the §3 invariant,
// wrapping per §8's boundary behavior rather than overflowing silently).
func BuildAuthorization(s *model.DigestState, method, uri string, body []byte) (string, error) {
	if s.Nonce == "" {
		return "", errs.New(errs.KindAuth, "digest", "build_authorization", fmt.Errorf("no challenge parsed yet"))
	}
	qop := chooseQop(s.Qop, len(body) > 0)
	cnonce := newCnonce()

	nextNC := atomic.AddUint32(&s.NC, 1)
	ncStr := fmt.Sprintf("%08x", nextNC)

	hf := hashFor(s.Algorithm)

	username := s.Username
	if s.Userhash {
		username = digestHex(hf, s.Username, s.Realm)
	}

	ha1 := digestHex(hf, s.Username, s.Realm, s.Password)
	if s.Algorithm.Sess() {
		ha1 = digestHex(hf, ha1, s.Nonce, cnonce)
	}

	var ha2 string
	switch qop {
	case model.QopAuthInt:
		bodyHash := digestHex(hf, string(body))
		ha2 = digestHex(hf, method, uri, bodyHash)
	default:
		ha2 = digestHex(hf, method, uri)
	}

	var response string
	switch qop {
	case model.QopAuth, model.QopAuthInt:
		response = digestHex(hf, ha1, s.Nonce, ncStr, cnonce, string(qop), ha2)
	default:
		response = digestHex(hf, ha1, s.Nonce, ha2)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `Digest username="%s", realm="%s", nonce="%s", uri="%s", response="%s"`,
		username, s.Realm, s.Nonce, uri, response)
	if s.Algorithm != "" {
		fmt.Fprintf(&b, `, algorithm=%s`, s.Algorithm)
	}
	if s.Opaque != "" {
		fmt.Fprintf(&b, `, opaque="%s"`, s.Opaque)
	}
	if qop != model.QopNone {
		fmt.Fprintf(&b, `, qop=%s, nc=%s, cnonce="%s"`, qop, ncStr, cnonce)
	}
	if s.Userhash {
		b.WriteString(`, userhash=true`)
	}
	return b.String(), nil
}

// ParseNC parses an 8-hex-digit nc value back into a uint32.
func ParseNC(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 16, 32)
	return uint32(v), err
}
