// Package ethunit converts between decimal POL amounts and wei.
package ethunit

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
)

// ParsePOL converts a decimal POL string such as "0.25" to wei. The value
// must be exactly representable in wei (at most 18 fractional digits).
func ParsePOL(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	r.Mul(r, new(big.Rat).SetInt64(params.Ether))
	if !r.IsInt() {
		return nil, fmt.Errorf("amount %q has more than 18 decimal places", s)
	}
	return new(big.Int).Set(r.Num()), nil
}

// FormatPOL renders a wei amount as a decimal POL string.
func FormatPOL(wei *big.Int) string {
	return formatUnit(wei, params.Ether)
}

// FormatGwei renders a wei amount as a decimal gwei string.
func FormatGwei(wei *big.Int) string {
	return formatUnit(wei, params.GWei)
}

func formatUnit(wei *big.Int, unit int64) string {
	if wei == nil {
		return "0"
	}
	r := new(big.Rat).SetFrac(wei, big.NewInt(unit))
	out := strings.TrimRight(r.FloatString(18), "0")
	return strings.TrimSuffix(out, ".")
}
