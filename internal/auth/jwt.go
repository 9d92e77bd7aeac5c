package auth

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"atac/internal/atacx/errs"
	"atac/internal/model"
)

// JWT error reasons, named exactly as in §4.3's error list so CLI output
// and tests can match on them.
const (
	ErrInvalidJSONPayload   = "InvalidJsonPayload"
	ErrBase64Decode         = "Base64DecodeError"
	ErrCouldNotOpenSecretFile = "CouldNotOpenSecretFile"
	ErrInvalidKeyFormat     = "InvalidKeyFormat"
	ErrEncodingFailed       = "EncodingFailed"
)

func jwtErr(reason string, err error) error {
	return errs.New(errs.KindAuth, "jwt", reason, err)
}

// EncodeJWT signs spec.Payload (a JSON object) with the configured
// algorithm/secret, returning the compact token string. Header is always
// {alg, typ:"JWT"} (golang-jwt sets this).
func EncodeJWT(spec model.JwtSpec) (string, error) {
	var claims jwtlib.MapClaims
	payload := spec.Payload
	if payload == "" {
		claims = jwtlib.MapClaims{}
	} else {
		if err := json.Unmarshal([]byte(payload), &claims); err != nil {
			return "", jwtErr(ErrInvalidJSONPayload, err)
		}
	}

	method, err := signingMethod(spec.Algorithm)
	if err != nil {
		return "", err
	}

	raw, err := secretBytes(spec)
	if err != nil {
		return "", err
	}

	key, err := signingKey(spec.Algorithm, spec.SecretType, raw)
	if err != nil {
		return "", err
	}

	token := jwtlib.NewWithClaims(method, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", jwtErr(ErrEncodingFailed, err)
	}
	return signed, nil
}

func signingMethod(alg model.JwtAlgorithm) (jwtlib.SigningMethod, error) {
	switch alg {
	case model.JwtHS256:
		return jwtlib.SigningMethodHS256, nil
	case model.JwtHS384:
		return jwtlib.SigningMethodHS384, nil
	case model.JwtHS512:
		return jwtlib.SigningMethodHS512, nil
	case model.JwtES256:
		return jwtlib.SigningMethodES256, nil
	case model.JwtES384:
		return jwtlib.SigningMethodES384, nil
	case model.JwtRS256:
		return jwtlib.SigningMethodRS256, nil
	case model.JwtRS384:
		return jwtlib.SigningMethodRS384, nil
	case model.JwtRS512:
		return jwtlib.SigningMethodRS512, nil
	case model.JwtPS256:
		return jwtlib.SigningMethodPS256, nil
	case model.JwtPS384:
		return jwtlib.SigningMethodPS384, nil
	case model.JwtPS512:
		return jwtlib.SigningMethodPS512, nil
	case model.JwtEdDSA:
		return jwtlib.SigningMethodEdDSA, nil
	default:
		return nil, jwtErr(ErrInvalidKeyFormat, fmt.Errorf("unknown algorithm %q", alg))
	}
}

// secretBytes resolves spec.Secret according to SecretType into raw bytes:
// inline text/base64 decode, or a file read for PEM/DER.
func secretBytes(spec model.JwtSpec) ([]byte, error) {
	switch spec.SecretType {
	case model.SecretText, "":
		return []byte(spec.Secret), nil
	case model.SecretBase64:
		b, err := base64.StdEncoding.DecodeString(spec.Secret)
		if err != nil {
			return nil, jwtErr(ErrBase64Decode, err)
		}
		return b, nil
	case model.SecretURLSafeBase64:
		b, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(spec.Secret)
		if err != nil {
			return nil, jwtErr(ErrBase64Decode, err)
		}
		return b, nil
	case model.SecretPEM, model.SecretDER:
		b, err := os.ReadFile(spec.Secret)
		if err != nil {
			return nil, jwtErr(ErrCouldNotOpenSecretFile, err)
		}
		return b, nil
	default:
		return nil, jwtErr(ErrInvalidKeyFormat, fmt.Errorf("unknown secret type %q", spec.SecretType))
	}
}

// signingKey turns raw secret bytes into the key type golang-jwt expects
// for the given algorithm family.
func signingKey(alg model.JwtAlgorithm, secretType model.JwtSecretType, raw []byte) (any, error) {
	if !alg.IsAsymmetric() {
		return raw, nil
	}

	isDER := secretType == model.SecretDER

	switch alg {
	case model.JwtES256, model.JwtES384:
		if isDER {
			key, err := x509.ParseECPrivateKey(raw)
			if err != nil {
				return nil, jwtErr(ErrInvalidKeyFormat, err)
			}
			return key, nil
		}
		key, err := jwtlib.ParseECPrivateKeyFromPEM(raw)
		if err != nil {
			return nil, jwtErr(ErrInvalidKeyFormat, err)
		}
		return key, nil

	case model.JwtRS256, model.JwtRS384, model.JwtRS512,
		model.JwtPS256, model.JwtPS384, model.JwtPS512:
		if isDER {
			if key, err := x509.ParsePKCS1PrivateKey(raw); err == nil {
				return key, nil
			}
			k, err := x509.ParsePKCS8PrivateKey(raw)
			if err != nil {
				return nil, jwtErr(ErrInvalidKeyFormat, err)
			}
			return k, nil
		}
		key, err := jwtlib.ParseRSAPrivateKeyFromPEM(raw)
		if err != nil {
			return nil, jwtErr(ErrInvalidKeyFormat, err)
		}
		return key, nil

	case model.JwtEdDSA:
		if isDER {
			k, err := x509.ParsePKCS8PrivateKey(raw)
			if err != nil {
				return nil, jwtErr(ErrInvalidKeyFormat, err)
			}
			priv, ok := k.(ed25519.PrivateKey)
			if !ok {
				return nil, jwtErr(ErrInvalidKeyFormat, fmt.Errorf("key is not an Ed25519 private key"))
			}
			return priv, nil
		}
		key, err := jwtlib.ParseEdPrivateKeyFromPEM(raw)
		if err != nil {
			return nil, jwtErr(ErrInvalidKeyFormat, err)
		}
		return key, nil

	default:
		return nil, jwtErr(ErrInvalidKeyFormat, fmt.Errorf("unhandled algorithm %q", alg))
	}
}
