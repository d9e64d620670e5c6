package csrf

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"
)

const rawTokenBytes = 32

// Issuer creates and verifies HMAC-signed CSRF tokens.
//
// Tokens have the form "raw.signature" where raw is a random value and
// signature is HMAC-SHA256(secret, raw), both base64 raw-URL encoded.
// Validity is purely computational: any token the issuer could have signed
// verifies, with no server-side state.
type Issuer struct {
	secret []byte
}

// NewIssuer returns an Issuer keyed with the given secret.
// An empty secret is a configuration error: token forgery would be trivial,
// so construction fails instead of degrading silently.
func NewIssuer(secret string) (*Issuer, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	return &Issuer{secret: []byte(secret)}, nil
}

// Issue generates a fresh signed token.
func (i *Issuer) Issue() (string, error) {
	raw := make([]byte, rawTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}

	rawEnc := base64.RawURLEncoding.EncodeToString(raw)
	return rawEnc + "." + i.sign(rawEnc), nil
}

// Verify reports whether token carries a valid signature. Malformed tokens
// (wrong field count, undecodable parts) are plain verification failures,
// indistinguishable from a signature mismatch.
func (i *Issuer) Verify(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return false
	}

	raw, sig := parts[0], parts[1]
	if _, err := base64.RawURLEncoding.DecodeString(raw); err != nil {
		return false
	}

	expected := i.sign(raw)
	return subtle.ConstantTimeCompare([]byte(sig), []byte(expected)) == 1
}

func (i *Issuer) sign(raw string) string {
	mac := hmac.New(sha256.New, i.secret)
	mac.Write([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
