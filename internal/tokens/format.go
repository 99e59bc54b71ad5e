package tokens

import (
	"context"
	"fmt"
	"math/big"
	"strings"
)

// DisplayPrecision is the default number of significant fractional
// digits kept when rendering token amounts. The display.precision
// config field overrides it.
const DisplayPrecision = 6

// ReadablePrecision scales amount by 10^-decimals and renders it with at
// most precision fractional digits, trailing zeros trimmed. At least one
// fractional digit is always kept, so 1000000 with 6 decimals is "1.0".
func ReadablePrecision(amount *big.Int, decimals uint8, precision int) string {
	if amount == nil {
		amount = new(big.Int)
	}
	if precision < 1 {
		precision = 1
	}
	base := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole := new(big.Int)
	frac := new(big.Int)
	whole.QuoRem(amount, base, frac)

	fracStr := ""
	if decimals > 0 {
		fracStr = fmt.Sprintf("%0*s", int(decimals), frac.String())
		if len(fracStr) > precision {
			fracStr = fracStr[:precision]
		}
		fracStr = strings.TrimRight(fracStr, "0")
	}
	if fracStr == "" {
		fracStr = "0"
	}
	return whole.String() + "." + fracStr
}

// FormatTokenAmount renders an amount with its resolved symbol.
// A precision below 1 means the default.
func FormatTokenAmount(amount *big.Int, decimals uint8, symbol string, precision int) string {
	if precision < 1 {
		precision = DisplayPrecision
	}
	return ReadablePrecision(amount, decimals, precision) + " " + symbol
}

// IsNumeral reports whether s is a plain base-10 numeral.
func IsNumeral(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatTokenValue resolves raw through the metadata resolver and
// renders it human-readable. Non-numeral raw values pass through
// unchanged; lookup failure returns raw unchanged. Metadata
// unavailability never blocks rendering.
func FormatTokenValue(ctx context.Context, r Resolver, network, tokenAddress, raw string, precision int) string {
	if !IsNumeral(raw) {
		return raw
	}
	info, err := r.TokenInfo(ctx, network, tokenAddress)
	if err != nil {
		return raw
	}
	amount, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return raw
	}
	return FormatTokenAmount(amount, info.Decimals, info.Symbol, precision)
}

// TruncateHash shortens a hash or address for display, keeping the 0x
// prefix and both ends.
func TruncateHash(hash string, keep int) string {
	if len(hash) <= keep*2+2 {
		return hash
	}
	return hash[:keep+2] + "..." + hash[len(hash)-keep:]
}
