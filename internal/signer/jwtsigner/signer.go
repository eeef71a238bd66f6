// Package jwtsigner is the reference proof collaborator: it issues compact
// JWS proofs over the canonical serialization of a credential's unsigned
// fields. The wallet treats the result as an opaque blob; verification is a
// separate concern for relying parties.
package jwtsigner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "eduraksha/pkg/domain-errors"
)

// ProofClaims carries the payload digest inside the proof JWS. Binding the
// digest rather than the payload keeps proofs small and claim-agnostic.
type ProofClaims struct {
	PayloadDigest string `json:"payload_digest"`
	jwt.RegisteredClaims
}

// Signer issues HMAC-signed proofs for credential payloads.
type Signer struct {
	signingKey []byte
	issuer     string
	now        func() time.Time
}

// Option configures the Signer.
type Option func(*Signer)

// WithClock injects the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a proof signer with the given key and issuer identity.
func New(signingKey, issuer string, opts ...Option) *Signer {
	s := &Signer{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sign returns a compact JWS binding the SHA-256 digest of payload.
func (s *Signer) Sign(ctx context.Context, payload []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "signing cancelled")
	}
	if len(payload) == 0 {
		return "", dErrors.New(dErrors.CodeBadRequest, "payload must not be empty")
	}

	digest := sha256.Sum256(payload)
	claims := ProofClaims{
		PayloadDigest: hex.EncodeToString(digest[:]),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   s.issuer,
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign proof")
	}
	return signed, nil
}

// Verify checks that proof is a valid JWS from this signer binding payload.
// The wallet never calls this; it exists for relying-party tooling and tests.
func (s *Signer) Verify(proof string, payload []byte) error {
	claims := &ProofClaims{}
	token, err := jwt.ParseWithClaims(proof, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, dErrors.New(dErrors.CodeValidation, "unexpected proof signing method")
		}
		return s.signingKey, nil
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "invalid proof")
	}
	if !token.Valid {
		return dErrors.New(dErrors.CodeValidation, "invalid proof")
	}

	digest := sha256.Sum256(payload)
	if claims.PayloadDigest != hex.EncodeToString(digest[:]) {
		return dErrors.New(dErrors.CodeValidation, "proof does not match payload")
	}
	return nil
}
