// Package domain holds identifier primitives shared across modules. IDs are
// parsed once at the trust boundary and carried as distinct types afterwards.
package domain

import (
	"strconv"
	"strings"

	dErrors "respass/pkg/domain-errors"
)

// ResidentID is the system-assigned identifier of a resident identity row.
type ResidentID int64

func (id ResidentID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseResidentID parses a positive decimal resident id.
func ParseResidentID(s string) (ResidentID, error) {
	n, err := parsePositive(s)
	if err != nil {
		return 0, err
	}
	return ResidentID(n), nil
}

func parsePositive(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "Invalid ID")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "Invalid ID")
	}
	return n, nil
}
