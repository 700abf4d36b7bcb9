package jwttoken

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ParsePublicKey reads a PEM encoded P-256 public key. Literal "\n" sequences
// are accepted so keys can be passed through single-line environment values.
func ParsePublicKey(pemText string) (*ecdsa.PublicKey, error) {
	key, err := jwt.ParseECPublicKeyFromPEM([]byte(unescapePEM(pemText)))
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	if key.Curve != elliptic.P256() {
		return nil, fmt.Errorf("parse public key: curve %s is not P-256", key.Curve.Params().Name)
	}
	return key, nil
}

// ParsePrivateKey reads a PEM encoded P-256 private key (SEC1 or PKCS8).
func ParsePrivateKey(pemText string) (*ecdsa.PrivateKey, error) {
	key, err := jwt.ParseECPrivateKeyFromPEM([]byte(unescapePEM(pemText)))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	if key.Curve != elliptic.P256() {
		return nil, fmt.Errorf("parse private key: curve %s is not P-256", key.Curve.Params().Name)
	}
	return key, nil
}

func unescapePEM(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), `\n`, "\n")
}
