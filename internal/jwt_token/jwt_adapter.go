package jwttoken

import (
	authmw "respass/pkg/platform/middleware/auth"
)

func ToMiddlewareClaims(claims *Claims) *authmw.StaffClaims {
	return &authmw.StaffClaims{
		Subject: claims.Subject,
		Name:    claims.Name,
		Role:    claims.Role,
	}
}

// StaffValidatorAdapter exposes the verifier to the auth middleware.
type StaffValidatorAdapter struct {
	verifier *Verifier
}

func NewStaffValidatorAdapter(verifier *Verifier) *StaffValidatorAdapter {
	return &StaffValidatorAdapter{verifier: verifier}
}

func (a *StaffValidatorAdapter) ValidateStaffToken(tokenString string) (*authmw.StaffClaims, error) {
	claims, err := a.verifier.VerifyStaff(tokenString)
	if err != nil {
		return nil, err
	}
	return ToMiddlewareClaims(claims), nil
}
