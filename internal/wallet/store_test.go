package wallet

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistWritesAllFiles(t *testing.T) {
	dir := t.TempDir()
	records, err := GenerateBatch(3)
	require.NoError(t, err)

	store := &Store{Dir: dir, WriteQR: true}
	res, err := store.Persist(records)
	require.NoError(t, err)

	require.Len(t, res.WalletFiles, 3)
	require.Len(t, res.QRFiles, 3)
	for _, f := range append(append([]string{res.CombinedFile, res.AddressesFile}, res.WalletFiles...), res.QRFiles...) {
		info, err := os.Stat(f)
		require.NoError(t, err, "missing %s", f)
		assert.Positive(t, info.Size())
	}

	// combined file parses back into the same records
	var loaded []*Record
	data, err := os.ReadFile(res.CombinedFile)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &loaded))
	require.Len(t, loaded, 3)
	assert.Equal(t, records[0].Address, loaded[0].Address)

	// address index shape matches the distribution input format
	var index addressIndex
	data, err = os.ReadFile(res.AddressesFile)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &index))
	assert.Equal(t, 3, index.Count)
	assert.Equal(t, records[2].Address, index.Addresses[2])
}

func TestPersistWithoutQR(t *testing.T) {
	dir := t.TempDir()
	records, err := GenerateBatch(1)
	require.NoError(t, err)

	res, err := (&Store{Dir: dir}).Persist(records)
	require.NoError(t, err)
	assert.Empty(t, res.QRFiles)
}

func TestPersistSurfacesWriteFailure(t *testing.T) {
	records, err := GenerateBatch(1)
	require.NoError(t, err)

	_, err = (&Store{Dir: filepath.Join(t.TempDir(), "missing")}).Persist(records)
	assert.Error(t, err)
}

func TestLatestWalletsFile(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "all_wallets_20240101_000000.json")
	recent := filepath.Join(dir, "all_wallets_20240601_000000.json")
	require.NoError(t, os.WriteFile(old, []byte("[]"), 0600))
	require.NoError(t, os.WriteFile(recent, []byte("[]"), 0600))

	// selection is by modification time, not by name
	now := time.Now()
	require.NoError(t, os.Chtimes(old, now, now.Add(-time.Hour)))
	require.NoError(t, os.Chtimes(recent, now, now))

	latest, err := LatestWalletsFile(dir)
	require.NoError(t, err)
	assert.Equal(t, recent, latest)
}

func TestLatestWalletsFileEmptyDir(t *testing.T) {
	_, err := LatestWalletsFile(t.TempDir())
	assert.Error(t, err)
}

func TestLoadAddresses(t *testing.T) {
	dir := t.TempDir()
	records, err := GenerateBatch(2)
	require.NoError(t, err)
	res, err := (&Store{Dir: dir}).Persist(records)
	require.NoError(t, err)

	addresses, err := LoadAddresses(res.CombinedFile)
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	assert.Equal(t, records[0].Address, addresses[0])
	assert.Equal(t, records[1].Address, addresses[1])
}

func TestLoadAddressesBadFile(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "all_wallets_bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0600))

	_, err := LoadAddresses(bad)
	assert.Error(t, err)

	_, err = LoadAddresses(filepath.Join(dir, "nope.json"))
	assert.Error(t, err)
}
