package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"poltools/internal/chain"
	"poltools/internal/config"
	"poltools/internal/distribute"
	"poltools/internal/ethunit"
	"poltools/internal/keys"
	"poltools/internal/wallet"
)

func main() {
	var (
		amountStr   string
		testMode    bool
		walletsFile string
		keyFile     string
	)

	cmd := &cobra.Command{
		Use:   "distribute",
		Short: "Distribute POL from a funding wallet to generated wallets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(amountStr, testMode, walletsFile, keyFile)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVar(&amountStr, "amount", "", "amount of POL to send to each wallet (required)")
	cmd.Flags().BoolVar(&testMode, "test", false, "simulate transactions without sending")
	cmd.Flags().StringVar(&walletsFile, "wallets", "", "combined wallet file (default: newest all_wallets_*.json)")
	cmd.Flags().StringVar(&keyFile, "key", "", "funding wallet private key file (default: privatekey.txt)")
	cmd.MarkFlagRequired("amount")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "\nUsage example:")
		fmt.Fprintln(os.Stderr, "  distribute --amount 0.25 [--test]")
		os.Exit(1)
	}
}

func run(amountStr string, testMode bool, walletsFile, keyFile string) error {
	log := logrus.New()

	// fail fast on bad input before touching credentials or the network
	amountWei, err := ethunit.ParsePOL(amountStr)
	if err != nil {
		return err
	}
	if amountWei.Sign() <= 0 {
		return distribute.ErrInvalidAmount
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if keyFile == "" {
		keyFile = cfg.PrivateKeyFile
	}

	cred, err := keys.Load(keyFile)
	if err != nil {
		return err
	}
	defer cred.Zero()

	if walletsFile == "" {
		walletsFile, err = wallet.LatestWalletsFile(cfg.WalletDir)
		if err != nil {
			return err
		}
	}
	log.Infof("using wallet file: %s", walletsFile)

	recipients, err := wallet.LoadAddresses(walletsFile)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		return fmt.Errorf("%w in %s", distribute.ErrNoRecipients, walletsFile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := chain.Dial(ctx, cfg.RPCURL)
	if err != nil {
		return err
	}
	defer client.Close()

	engine := &distribute.Engine{
		Client:         client,
		Log:            log,
		GasLimit:       cfg.GasLimit,
		WaitForReceipt: cfg.WaitForReceipt,
		ReceiptTimeout: cfg.ReceiptTimeout,
	}
	report, runErr := engine.Run(ctx, distribute.Request{
		Credential: cred,
		Recipients: recipients,
		AmountWei:  amountWei,
		TestMode:   testMode,
	})
	if report != nil && len(report.Entries) > 0 {
		logPath, werr := report.WriteFile(cfg.LogDir)
		if werr != nil {
			return werr
		}
		word := "Distribution"
		if testMode {
			word = "Simulation"
		}
		log.Infof("%s complete! Check %s for detailed logs.", word, logPath)
	}
	if runErr != nil {
		return runErr
	}

	// any failed transfer yields a non-zero exit; pending and simulated do not
	if report.Failed() {
		return fmt.Errorf("%d of %d transfers failed", report.FailedCount(), len(report.Entries))
	}
	return nil
}
