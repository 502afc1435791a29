package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"poltools/internal/wallet"
)

func main() {
	var (
		count  int
		sample bool
		outDir string
		noQR   bool
	)

	cmd := &cobra.Command{
		Use:   "createwallet",
		Short: "Generate Polygon wallets with mnemonic backup phrases",
		RunE: func(cmd *cobra.Command, args []string) error {
			if sample {
				printRecord(wallet.Sample())
				fmt.Println("\nThis is a sample record; no real keys were generated or persisted.")
				return nil
			}
			return run(count, outDir, !noQR)
		},
		SilenceUsage: true,
	}
	cmd.Flags().IntVar(&count, "count", 1, "number of wallets to generate")
	cmd.Flags().BoolVar(&sample, "sample", false, "print an example record without generating real keys")
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory for wallet files")
	cmd.Flags().BoolVar(&noQR, "no-qr", false, "skip the private key QR code PNGs")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(count int, outDir string, writeQR bool) error {
	records, err := wallet.GenerateBatch(count)
	if err != nil {
		return err
	}

	store := &wallet.Store{Dir: outDir, WriteQR: writeQR}
	res, err := store.Persist(records)
	if err != nil {
		return err
	}

	for i, rec := range records {
		printRecord(rec)
		fmt.Printf("Saved to: %s\n", res.WalletFiles[i])
		fmt.Println(strings.Repeat("-", 80))
	}

	fmt.Printf("\nAll wallet information saved to: %s\n", res.CombinedFile)
	fmt.Printf("Public addresses for token distribution saved to: %s\n", res.AddressesFile)
	fmt.Println("\nIMPORTANT: keep this information secure and never share your private keys or mnemonic phrases!")
	fmt.Println("The mnemonic phrase can be used to recover a wallet - keep it safe!")
	return nil
}

func printRecord(rec *wallet.Record) {
	fmt.Printf("\nWallet #%d\n", rec.WalletNumber)
	fmt.Printf("Public Key: %s\n", rec.Address)
	fmt.Printf("Private Key: %s\n", rec.PrivateKey)
	fmt.Printf("Mnemonic Phrase: %s\n", rec.Mnemonic)
}
