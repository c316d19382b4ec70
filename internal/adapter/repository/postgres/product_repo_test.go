package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{name: "integer", value: 100, want: "100"},
		{name: "cents", value: 19.99, want: "19.99"},
		{name: "shortest round-trip form", value: 1.0 / 3.0, want: "0.3333333333333333"},
		{name: "zero", value: 0, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := numericString(tt.value)
			assert.Equal(t, tt.want, s)

			back, err := parseNumeric(s, "price")
			require.NoError(t, err)
			assert.Equal(t, tt.value, back)
		})
	}
}

func TestParseNumeric_Invalid(t *testing.T) {
	_, err := parseNumeric("abc", "vat")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse vat")
}

func TestAttributesCodec(t *testing.T) {
	data, err := encodeAttributes(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	decoded, err := decodeAttributes(data)
	require.NoError(t, err)
	assert.Nil(t, decoded)

	data, err = encodeAttributes(map[string]any{"futureVat": 7.5, "color": "red"})
	require.NoError(t, err)

	decoded, err = decodeAttributes(data)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"futureVat": 7.5, "color": "red"}, decoded)

	_, err = decodeAttributes([]byte("not json"))
	assert.Error(t, err)
}
