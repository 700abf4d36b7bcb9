package jwttoken

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	dErrors "respass/pkg/domain-errors"
)

var (
	ErrMissingCredential = dErrors.New(dErrors.CodeUnauthorized, "No JWT supplied as Bearer token")
	ErrInvalidSignature  = dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	ErrTokenExpired      = dErrors.New(dErrors.CodeUnauthorized, "token has expired")
)

// Verifier checks ES256 signatures and the required claim set. It has no side
// effects and is safe for concurrent use.
type Verifier struct {
	publicKey *ecdsa.PublicKey
	parser    *jwt.Parser
}

func NewVerifier(publicKey *ecdsa.PublicKey) *Verifier {
	return &Verifier{
		publicKey: publicKey,
		parser:    jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodES256.Alg()})),
	}
}

// Verify accepts a correctly signed token carrying the staff or resident role.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrMissingCredential
	}
	if v.publicKey == nil {
		return nil, ErrInvalidSignature
	}

	claims := &Claims{}
	parsed, err := v.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.publicKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidSignature
	}
	if !parsed.Valid {
		return nil, ErrInvalidSignature
	}

	if missing := claims.Missing(); len(missing) > 0 {
		return nil, MissingClaimsError(missing)
	}
	if !claims.HasKnownRole() {
		return nil, UnknownRoleError(claims.Role)
	}
	return claims, nil
}

// VerifyStaff additionally requires the staff role.
func (v *Verifier) VerifyStaff(tokenString string) (*Claims, error) {
	claims, err := v.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if !claims.IsStaff() {
		return nil, InsufficientRoleError(claims.Role)
	}
	return claims, nil
}

func MissingClaimsError(missing []string) error {
	return dErrors.New(dErrors.CodeUnauthorized, "missing required claims: "+strings.Join(missing, ", "))
}

func UnknownRoleError(role string) error {
	return dErrors.New(dErrors.CodeUnauthorized, fmt.Sprintf("unknown role %q", role))
}

func InsufficientRoleError(actual string) error {
	return dErrors.New(dErrors.CodeUnauthorized, fmt.Sprintf("A %q token is required, this token has %q", RoleStaff, actual))
}
