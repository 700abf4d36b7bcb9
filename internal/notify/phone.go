package notify

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	dErrors "respass/pkg/domain-errors"
)

// DefaultRegion is assumed for numbers written without a "+" country prefix.
const DefaultRegion = "US"

// NormalizePhone returns the E.164 form of a phone number. An empty input
// stays empty; anything libphonenumber does not consider a valid, assigned
// number is a validation error.
func NormalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	num, err := phonenumbers.Parse(raw, DefaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", dErrors.New(dErrors.CodeValidation, "invalid phone number: "+raw)
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
