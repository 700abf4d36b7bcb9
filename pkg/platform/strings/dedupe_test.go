package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   []string
	}{
		{name: "nil", values: nil, want: []string{}},
		{name: "blanks dropped", values: []string{" ", "", "\t"}, want: []string{}},
		{name: "first occurrence wins", values: []string{" Jane Doe", "John Smith", "Jane Doe "}, want: []string{"Jane Doe", "John Smith"}},
		{name: "case is significant", values: []string{"jane", "Jane"}, want: []string{"jane", "Jane"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DedupeAndTrim(tt.values))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, SplitList("k1:9092, k2:9092,,k1:9092"))
	assert.Empty(t, SplitList(""))
}
