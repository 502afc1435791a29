package distribute

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"time"
)

// Status of one attempted transfer.
type Status string

const (
	StatusSimulated Status = "simulated"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
	// StatusPending covers a submitted transaction whose receipt was not
	// seen before the wait timed out (or was not waited for at all).
	StatusPending Status = "pending"
)

// Entry is the append-only log record for one attempted transfer.
type Entry struct {
	Wallet    int       `json:"wallet"`
	Recipient string    `json:"recipient"`
	AmountWei *big.Int  `json:"amount_wei"`
	GasPrice  *big.Int  `json:"gas_price_wei"`
	GasLimit  uint64    `json:"gas_limit"`
	Nonce     uint64    `json:"nonce"`
	TxHash    string    `json:"tx_hash,omitempty"`
	Error     string    `json:"error,omitempty"`
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Report aggregates a whole batch run: the funding math computed up front
// plus one ordered Entry per recipient.
type Report struct {
	Sender        string    `json:"sender"`
	SenderBalance *big.Int  `json:"sender_balance_wei"`
	AmountWei     *big.Int  `json:"amount_per_wallet_wei"`
	GasPrice      *big.Int  `json:"gas_price_wei"`
	GasLimit      uint64    `json:"gas_limit"`
	PerTransfer   *big.Int  `json:"total_per_transfer_wei"`
	TotalNeeded   *big.Int  `json:"total_needed_wei"`
	TestMode      bool      `json:"test_mode"`
	StartedAt     time.Time `json:"started_at"`
	Entries       []Entry   `json:"transfers"`
}

// FailedCount returns the number of transfers that ended failed.
func (r *Report) FailedCount() int {
	n := 0
	for _, e := range r.Entries {
		if e.Status == StatusFailed {
			n++
		}
	}
	return n
}

// Failed reports whether any transfer in the batch ended failed. Pending
// entries do not count: those transactions may still confirm later.
func (r *Report) Failed() bool { return r.FailedCount() > 0 }

// WriteFile persists the report as a timestamped JSON log in dir and
// returns the path written.
func (r *Report) WriteFile(dir string) (string, error) {
	name := filepath.Join(dir, fmt.Sprintf("pol_distribution_log_%s.json", r.StartedAt.Format("20060102_150405")))
	data, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(name, data, 0600); err != nil {
		return "", fmt.Errorf("write report %s: %w", name, err)
	}
	return name, nil
}
