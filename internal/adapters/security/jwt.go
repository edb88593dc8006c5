package security

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/viralforge/campaign-marketplace/internal/domain"
	"github.com/viralforge/campaign-marketplace/internal/ports"
)

// JWTVerifier validates identity-provider tokens. Either an HS256 shared
// secret or an RS256 public key is configured, never both.
type JWTVerifier struct {
	secret    []byte
	publicKey *rsa.PublicKey
	issuer    string
	audience  string
}

type VerifierConfig struct {
	Secret       string
	PublicKeyPEM string
	Issuer       string
	Audience     string
}

func NewJWTVerifier(cfg VerifierConfig) (*JWTVerifier, error) {
	v := &JWTVerifier{issuer: cfg.Issuer, audience: cfg.Audience}
	switch {
	case cfg.PublicKeyPEM != "" && cfg.Secret != "":
		return nil, errors.New("configure either a jwt secret or a public key, not both")
	case cfg.PublicKeyPEM != "":
		pub, err := parseRSAPublic(cfg.PublicKeyPEM)
		if err != nil {
			return nil, fmt.Errorf("parse public key: %w", err)
		}
		v.publicKey = pub
	case cfg.Secret != "":
		v.secret = []byte(cfg.Secret)
	default:
		return nil, errors.New("jwt secret or public key is required")
	}
	return v, nil
}

type tokenMetadata struct {
	Role string `json:"role"`
}

type identityClaims struct {
	Email          string        `json:"email"`
	PublicMetadata tokenMetadata `json:"public_metadata"`
	jwt.RegisteredClaims
}

func (v *JWTVerifier) method() jwt.SigningMethod {
	if v.publicKey != nil {
		return jwt.SigningMethodRS256
	}
	return jwt.SigningMethodHS256
}

func (v *JWTVerifier) Verify(_ context.Context, raw string) (ports.AuthClaims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ports.AuthClaims{}, domain.ErrUnauthorized
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{v.method().Alg()}),
		jwt.WithLeeway(30 * time.Second),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}
	parsed, err := jwt.ParseWithClaims(raw, &identityClaims{}, func(token *jwt.Token) (any, error) {
		if v.publicKey != nil {
			return v.publicKey, nil
		}
		return v.secret, nil
	}, opts...)
	if err != nil {
		return ports.AuthClaims{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	claims, ok := parsed.Claims.(*identityClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return ports.AuthClaims{}, fmt.Errorf("%w: invalid token claims", domain.ErrUnauthorized)
	}
	return ports.AuthClaims{
		TokenIdentifier: TokenIdentifier(claims.Issuer, claims.Subject),
		Subject:         claims.Subject,
		Email:           domain.NormalizeEmail(claims.Email),
		Role:            strings.TrimSpace(claims.PublicMetadata.Role),
	}, nil
}

// TokenIdentifier is the stable per-identity key: issuer and subject joined
// by "|", or the bare subject when the token has no issuer.
func TokenIdentifier(issuer, subject string) string {
	if issuer == "" {
		return subject
	}
	return issuer + "|" + subject
}

func parseRSAPublic(raw string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(raw))
	if block == nil {
		return nil, errors.New("invalid public PEM")
	}
	if key, err := x509.ParsePKCS1PublicKey(block.Bytes); err == nil {
		return key, nil
	}
	keyAny, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := keyAny.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not RSA")
	}
	return key, nil
}

var _ ports.IdentityVerifier = (*JWTVerifier)(nil)
