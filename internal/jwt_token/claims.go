package jwttoken

import (
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleStaff    = "staff"
	RoleResident = "res"
)

// Claims is the credential claim set. Subject (sub) and Issuer (iss) come from
// the embedded registered claims.
type Claims struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	IssueCode int64  `json:"ic"`
	Building  string `json:"bld,omitempty"`
	Unit      string `json:"unit,omitempty"`
	jwt.RegisteredClaims
}

// Missing lists the required claims that are absent or empty, in a stable order.
func (c *Claims) Missing() []string {
	var missing []string
	if c.Subject == "" {
		missing = append(missing, "sub")
	}
	if c.Name == "" {
		missing = append(missing, "name")
	}
	if c.Role == "" {
		missing = append(missing, "role")
	}
	if c.IssueCode < 1 {
		missing = append(missing, "ic")
	}
	if c.Issuer == "" {
		missing = append(missing, "iss")
	}
	return missing
}

// HasKnownRole reports whether role is one of RoleStaff or RoleResident.
func (c *Claims) HasKnownRole() bool {
	return c.Role == RoleStaff || c.Role == RoleResident
}

func (c *Claims) IsStaff() bool {
	return c.Role == RoleStaff
}
