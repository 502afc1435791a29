// Package keys loads the funding wallet credential from a local file. The
// key is read once at startup, held only in process memory, and never
// logged or persisted elsewhere.
package keys

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrMissingCredential covers an absent or malformed private key file.
var ErrMissingCredential = errors.New("missing funding credential")

// Credential holds the funding wallet key for the duration of a run.
type Credential struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// Load reads and validates the private key file. All whitespace is stripped
// and an optional 0x prefix accepted; the remainder must be 64 hex chars.
func Load(path string) (*Credential, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrMissingCredential, path, err)
	}
	defer zero(data)

	hexKey := strings.Join(strings.Fields(string(data)), "")
	hexKey = strings.TrimPrefix(hexKey, "0x")
	if len(hexKey) != 64 {
		return nil, fmt.Errorf("%w: %s holds %d hex chars, want 64", ErrMissingCredential, path, len(hexKey))
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: parse key from %s: %v", ErrMissingCredential, path, err)
	}

	return &Credential{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Key returns the signing key. Nil after Zero.
func (c *Credential) Key() *ecdsa.PrivateKey { return c.key }

// Address returns the funding wallet address derived from the key.
func (c *Credential) Address() common.Address { return c.address }

// Zero wipes the key material. The credential is unusable afterwards.
func (c *Credential) Zero() {
	if c.key != nil {
		c.key.D.SetInt64(0)
		c.key = nil
	}
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
