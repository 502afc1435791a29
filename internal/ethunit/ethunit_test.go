package ethunit

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePOL(t *testing.T) {
	wei, err := ParsePOL("0.25")
	require.NoError(t, err)
	assert.Equal(t, "250000000000000000", wei.String())

	wei, err = ParsePOL("1")
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", wei.String())

	wei, err = ParsePOL("0")
	require.NoError(t, err)
	assert.Zero(t, wei.Sign())
}

func TestParsePOLRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2.3", "0x10"} {
		_, err := ParsePOL(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestParsePOLRejectsSubWeiPrecision(t *testing.T) {
	_, err := ParsePOL("0.0000000000000000001") // 19 decimal places
	assert.Error(t, err)
}

func TestFormatPOL(t *testing.T) {
	assert.Equal(t, "0.25", FormatPOL(big.NewInt(250000000000000000)))
	assert.Equal(t, "1", FormatPOL(big.NewInt(1000000000000000000)))
	assert.Equal(t, "0", FormatPOL(big.NewInt(0)))
	assert.Equal(t, "0", FormatPOL(nil))
}

func TestFormatGwei(t *testing.T) {
	assert.Equal(t, "25", FormatGwei(big.NewInt(25000000000)))
	assert.Equal(t, "1.5", FormatGwei(big.NewInt(1500000000)))
}

func TestRoundTrip(t *testing.T) {
	wei, err := ParsePOL("123.456789")
	require.NoError(t, err)
	assert.Equal(t, "123.456789", FormatPOL(wei))
}
