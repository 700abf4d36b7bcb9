package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "respass/pkg/domain-errors"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"(212) 555-0123", "+12125550123"},
		{"1 212 555 0123", "+12125550123"},
		{"+44 20 7946 0958", "+442079460958"},
		{"+44 (0)20 7946 0958", "+442079460958"},
		{"", ""},
	}
	for _, tt := range tests {
		got, err := NormalizePhone(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNormalizePhoneRejects(t *testing.T) {
	for _, in := range []string{"12345", "call me", "+0123456789", "+999 1234567", "(555) 123-4567"} {
		_, err := NormalizePhone(in)
		require.Error(t, err, in)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation), in)
	}
}
