// Package config holds runtime settings for the distribution tool, read
// from the environment with an optional .env file on top.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config covers everything outside the CLI flags: where the node is, which
// files to read and write, and how long to wait for confirmations.
type Config struct {
	RPCURL         string        `envconfig:"POLYGON_RPC_URL" default:"https://polygon-rpc.com"`
	GasLimit       uint64        `envconfig:"GAS_LIMIT" default:"21000"`
	PrivateKeyFile string        `envconfig:"PRIVATE_KEY_FILE" default:"privatekey.txt"`
	WalletDir      string        `envconfig:"WALLET_DIR" default:"."`
	LogDir         string        `envconfig:"LOG_DIR" default:"."`
	WaitForReceipt bool          `envconfig:"WAIT_FOR_RECEIPT" default:"true"`
	ReceiptTimeout time.Duration `envconfig:"RECEIPT_TIMEOUT" default:"2m"`
}

// Load reads a .env file when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process config: %w", err)
	}
	return cfg, nil
}
