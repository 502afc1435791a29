// Package distribute implements the sequential POL batch transfer over a
// chain.Client. One funding wallet pays a fixed amount to each recipient;
// individual RPC failures are logged and the batch continues.
package distribute

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sirupsen/logrus"

	"poltools/internal/chain"
	"poltools/internal/ethunit"
	"poltools/internal/keys"
)

// DefaultGasLimit covers a plain native-token transfer.
const DefaultGasLimit = uint64(21000)

// Request describes one batch run.
type Request struct {
	Credential *keys.Credential
	Recipients []string
	AmountWei  *big.Int
	TestMode   bool
}

// Engine runs distribution batches. Transfers are strictly sequential;
// there is no retry of failed recipients, an operator re-runs them with a
// filtered recipient list.
type Engine struct {
	Client chain.Client
	Log    *logrus.Logger

	GasLimit       uint64 // 0 means DefaultGasLimit
	WaitForReceipt bool
	ReceiptTimeout time.Duration
}

// Run validates the request, checks funding up front and then transfers to
// each recipient in order with nonces start, start+1, ... start+N-1. The
// returned report always has one entry per attempted recipient; it is
// non-nil alongside a ctx error when the run was interrupted mid-batch.
func (e *Engine) Run(ctx context.Context, req Request) (*Report, error) {
	if req.AmountWei == nil || req.AmountWei.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	for i, r := range req.Recipients {
		if !common.IsHexAddress(r) {
			return nil, &InvalidAddressError{Index: i, Address: r}
		}
	}
	log := e.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	report := &Report{
		Sender:    req.Credential.Address().Hex(),
		AmountWei: req.AmountWei,
		TestMode:  req.TestMode,
		StartedAt: time.Now(),
	}
	// zero recipients is a no-op, not an error; callers that consider an
	// empty source a configuration problem check before calling Run
	if len(req.Recipients) == 0 {
		return report, nil
	}

	gasLimit := e.GasLimit
	if gasLimit == 0 {
		gasLimit = DefaultGasLimit
	}
	sender := req.Credential.Address()

	gasPrice, err := e.Client.GasPrice(ctx)
	if err != nil {
		return nil, err
	}
	startNonce, err := e.Client.PendingNonce(ctx, sender)
	if err != nil {
		return nil, err
	}
	balance, err := e.Client.Balance(ctx, sender)
	if err != nil {
		return nil, err
	}

	gasCost := new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(gasLimit))
	perTransfer := new(big.Int).Add(req.AmountWei, gasCost)
	totalNeeded := new(big.Int).Mul(perTransfer, big.NewInt(int64(len(req.Recipients))))

	report.SenderBalance = balance
	report.GasPrice = gasPrice
	report.GasLimit = gasLimit
	report.PerTransfer = perTransfer
	report.TotalNeeded = totalNeeded

	if balance.Cmp(totalNeeded) < 0 {
		return nil, &InsufficientBalanceError{Need: totalNeeded, Have: balance}
	}

	log.WithFields(logrus.Fields{
		"sender":           sender.Hex(),
		"balance_pol":      ethunit.FormatPOL(balance),
		"amount_pol":       ethunit.FormatPOL(req.AmountWei),
		"gas_price_gwei":   ethunit.FormatGwei(gasPrice),
		"gas_limit":        gasLimit,
		"recipients":       len(req.Recipients),
		"total_needed_pol": ethunit.FormatPOL(totalNeeded),
		"test_mode":        req.TestMode,
	}).Info("starting distribution")

	signer := types.LatestSignerForChainID(e.Client.ChainID())
	nonces := chain.NewNonceCounter(startNonce)

	for i, recipient := range req.Recipients {
		select {
		case <-ctx.Done():
			log.Warnf("interrupted after %d of %d transfers", i, len(req.Recipients))
			return report, ctx.Err()
		default:
		}

		entry := e.transfer(ctx, log, signer, nonces, req, i, recipient, gasPrice, gasLimit)
		report.Entries = append(report.Entries, entry)
	}

	log.WithFields(logrus.Fields{
		"transfers": len(report.Entries),
		"failed":    report.FailedCount(),
	}).Info("distribution finished")

	return report, nil
}

func (e *Engine) transfer(ctx context.Context, log *logrus.Logger, signer types.Signer,
	nonces *chain.NonceCounter, req Request, index int, recipient string,
	gasPrice *big.Int, gasLimit uint64) Entry {

	entry := Entry{
		Wallet:    index + 1,
		Recipient: recipient,
		AmountWei: req.AmountWei,
		GasPrice:  gasPrice,
		GasLimit:  gasLimit,
		Nonce:     nonces.Next(),
		Timestamp: time.Now(),
	}
	fields := logrus.Fields{
		"wallet":    entry.Wallet,
		"recipient": recipient,
		"nonce":     entry.Nonce,
	}

	tx := types.NewTransaction(entry.Nonce, common.HexToAddress(recipient), req.AmountWei, gasLimit, gasPrice, nil)

	if req.TestMode {
		entry.Status = StatusSimulated
		log.WithFields(fields).Infof("would send %s POL", ethunit.FormatPOL(req.AmountWei))
		return entry
	}

	signed, err := types.SignTx(tx, signer, req.Credential.Key())
	if err != nil {
		entry.Status = StatusFailed
		entry.Error = err.Error()
		log.WithFields(fields).WithError(err).Error("failed to sign transaction")
		return entry
	}
	if err := e.Client.SendTransaction(ctx, signed); err != nil {
		entry.Status = StatusFailed
		entry.Error = err.Error()
		log.WithFields(fields).WithError(err).Error("failed to send POL")
		return entry
	}
	entry.TxHash = signed.Hash().Hex()
	entry.Status = StatusPending

	if e.WaitForReceipt {
		status, err := e.Client.WaitForReceipt(ctx, signed.Hash(), e.ReceiptTimeout)
		if err != nil {
			entry.Error = err.Error()
		}
		switch status {
		case chain.ReceiptConfirmed:
			entry.Status = StatusConfirmed
		case chain.ReceiptFailed:
			entry.Status = StatusFailed
			if entry.Error == "" {
				entry.Error = "transaction reverted"
			}
		case chain.ReceiptPending:
			entry.Status = StatusPending
		}
	}

	fields["tx_hash"] = entry.TxHash
	fields["status"] = entry.Status
	if entry.Status == StatusFailed {
		log.WithFields(fields).Error("transfer failed on chain")
	} else {
		log.WithFields(fields).Infof("sent %s POL", ethunit.FormatPOL(req.AmountWei))
	}
	return entry
}
