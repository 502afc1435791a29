// Package wallet generates Polygon wallets with mnemonic backup phrases and
// persists them for later token distribution.
package wallet

import (
	"errors"
	"fmt"
	"strings"
	"time"

	bip39 "github.com/cosmos/go-bip39"
	"github.com/ethereum/go-ethereum/crypto"
)

// mnemonicEntropyBits yields a 12-word mnemonic.
const mnemonicEntropyBits = 128

const timeFormat = "2006-01-02 15:04:05"

// ErrInvalidCount is returned when the requested wallet count is not positive.
var ErrInvalidCount = errors.New("wallet count must be at least 1")

// Record holds one generated wallet. The private key deterministically
// derives the address; records are immutable once created.
type Record struct {
	WalletNumber int    `json:"wallet_number"`
	Address      string `json:"public_key"`
	PrivateKey   string `json:"private_key"`
	Mnemonic     string `json:"mnemonic"`
	CreatedAt    string `json:"created_at"`
}

// Generate creates a new wallet: 128-bit entropy becomes a 12-word mnemonic,
// the first 32 bytes of the BIP-39 seed become the secp256k1 private key.
func Generate(number int) (*Record, error) {
	entropy, err := bip39.NewEntropy(mnemonicEntropyBits)
	if err != nil {
		return nil, fmt.Errorf("generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("generate mnemonic: %w", err)
	}
	seed := bip39.NewSeed(mnemonic, "")
	key, err := crypto.ToECDSA(seed[:32])
	if err != nil {
		return nil, fmt.Errorf("derive key from seed: %w", err)
	}

	return &Record{
		WalletNumber: number,
		Address:      crypto.PubkeyToAddress(key.PublicKey).Hex(),
		PrivateKey:   fmt.Sprintf("0x%x", crypto.FromECDSA(key)),
		Mnemonic:     mnemonic,
		CreatedAt:    time.Now().Format(timeFormat),
	}, nil
}

// GenerateBatch creates count independent wallets, numbered from 1.
func GenerateBatch(count int) ([]*Record, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}
	records := make([]*Record, 0, count)
	for i := 1; i <= count; i++ {
		rec, err := Generate(i)
		if err != nil {
			return nil, fmt.Errorf("wallet %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// DeriveAddress recomputes the address for a stored private key hex string.
func DeriveAddress(privateKeyHex string) (string, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return "", fmt.Errorf("parse private key: %w", err)
	}
	return crypto.PubkeyToAddress(key.PublicKey).Hex(), nil
}

// Sample returns a fixed, obviously fake record for previewing the output
// format. It must never be persisted as a real wallet.
func Sample() *Record {
	return &Record{
		WalletNumber: 1,
		Address:      "0x1234567890abcdef1234567890AbCdEF12345678",
		PrivateKey:   "0xabcdef1234567890abcdef1234567890abcdef1234567890abcdef1234567890",
		Mnemonic:     "abandon ability able about above absent absorb abstract absurd abuse access accident",
		CreatedAt:    time.Now().Format(timeFormat),
	}
}
