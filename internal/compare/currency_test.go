package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"$1,234.56", "1234.56"},
		{"1.234,56", "1234.56"},
		{"1234", "1234"},
		{"$900", "900"},
		{"€1.234.567,89", "1234567.89"},
		{"US $49.99", "49.99"},
		{"1,5", "1.5"},
	}
	for _, tc := range cases {
		got, err := ParsePrice(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got.String(), tc.in)
	}
}

func TestParsePrice_NoNumericContent(t *testing.T) {
	_, err := ParsePrice("free shipping")
	assert.Error(t, err)
}
