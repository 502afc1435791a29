package wallet

import (
	"strings"
	"testing"

	bip39 "github.com/cosmos/go-bip39"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDerivesAddressFromKey(t *testing.T) {
	rec, err := Generate(1)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rec.Address, "0x"))
	assert.True(t, strings.HasPrefix(rec.PrivateKey, "0x"))
	assert.Len(t, rec.PrivateKey, 66)
	assert.NotEmpty(t, rec.CreatedAt)

	derived, err := DeriveAddress(rec.PrivateKey)
	require.NoError(t, err)
	assert.Equal(t, rec.Address, derived)
}

func TestGenerateMnemonicIsValid(t *testing.T) {
	rec, err := Generate(1)
	require.NoError(t, err)

	assert.Len(t, strings.Fields(rec.Mnemonic), 12)
	assert.True(t, bip39.IsMnemonicValid(rec.Mnemonic))
}

func TestGenerateBatch(t *testing.T) {
	records, err := GenerateBatch(5)
	require.NoError(t, err)
	require.Len(t, records, 5)

	keys := make(map[string]bool)
	for i, rec := range records {
		assert.Equal(t, i+1, rec.WalletNumber)
		assert.False(t, keys[rec.PrivateKey], "duplicate private key")
		keys[rec.PrivateKey] = true
	}
}

func TestGenerateBatchRejectsInvalidCount(t *testing.T) {
	for _, count := range []int{0, -1} {
		_, err := GenerateBatch(count)
		assert.ErrorIs(t, err, ErrInvalidCount, "count %d", count)
	}
}

func TestSample(t *testing.T) {
	rec := Sample()
	assert.Equal(t, 1, rec.WalletNumber)
	// the sample key must not actually derive the sample address
	derived, err := DeriveAddress(rec.PrivateKey)
	require.NoError(t, err)
	assert.NotEqual(t, rec.Address, derived)
}
