package wallet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	fileStampFormat   = "20060102_150405"
	walletFilePattern = "all_wallets_*.json"
)

// Store persists generated wallet records under a single directory. All
// files of one Persist call share a single timestamp so a batch is easy to
// pick out and never overwrites an earlier one.
type Store struct {
	Dir     string
	WriteQR bool
}

// PersistResult lists the files a Persist call wrote. On error it still
// holds whatever was written before the failure; nothing is rolled back.
type PersistResult struct {
	WalletFiles   []string
	QRFiles       []string
	CombinedFile  string
	AddressesFile string
}

type addressIndex struct {
	Addresses []string `json:"addresses"`
	Count     int      `json:"count"`
	CreatedAt string   `json:"created_at"`
}

// Persist writes one JSON file per record, a combined file with all records,
// and an address index for later distribution input. With WriteQR set it
// also renders each private key as a QR code PNG for wallet-import scanners.
func (s *Store) Persist(records []*Record) (*PersistResult, error) {
	stamp := time.Now().Format(fileStampFormat)
	res := &PersistResult{}
	addresses := make([]string, 0, len(records))

	for _, rec := range records {
		name := filepath.Join(s.Dir, fmt.Sprintf("wallet_%s_%d.json", stamp, rec.WalletNumber))
		if err := writeJSON(name, rec); err != nil {
			return res, err
		}
		res.WalletFiles = append(res.WalletFiles, name)
		addresses = append(addresses, rec.Address)

		if s.WriteQR {
			qrName := filepath.Join(s.Dir, fmt.Sprintf("wallet_qr_%s_%d.png", stamp, rec.WalletNumber))
			// bare key without 0x prefix for MetaMask import compatibility
			if err := qrcode.WriteFile(strings.TrimPrefix(rec.PrivateKey, "0x"), qrcode.Medium, 256, qrName); err != nil {
				return res, fmt.Errorf("write qr code %s: %w", qrName, err)
			}
			res.QRFiles = append(res.QRFiles, qrName)
		}
	}

	combined := filepath.Join(s.Dir, fmt.Sprintf("all_wallets_%s.json", stamp))
	if err := writeJSON(combined, records); err != nil {
		return res, err
	}
	res.CombinedFile = combined

	index := addressIndex{
		Addresses: addresses,
		Count:     len(addresses),
		CreatedAt: time.Now().Format(timeFormat),
	}
	addrFile := filepath.Join(s.Dir, fmt.Sprintf("public_addresses_%s.json", stamp))
	if err := writeJSON(addrFile, index); err != nil {
		return res, err
	}
	res.AddressesFile = addrFile

	return res, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LatestWalletsFile returns the most recently modified all_wallets_*.json
// in dir, the default recipient source for a distribution run.
func LatestWalletsFile(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, walletFilePattern))
	if err != nil {
		return "", fmt.Errorf("glob wallet files: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no %s files found in %s", walletFilePattern, dir)
	}

	var latest string
	var latestMod time.Time
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestMod) {
			latest = m
			latestMod = info.ModTime()
		}
	}
	return latest, nil
}

// LoadAddresses reads the recipient addresses out of a combined wallet file.
func LoadAddresses(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wallet file: %w", err)
	}
	var records []*Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse wallet file %s: %w", path, err)
	}
	addresses := make([]string, 0, len(records))
	for _, rec := range records {
		addresses = append(addresses, rec.Address)
	}
	return addresses, nil
}
