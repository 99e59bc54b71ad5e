package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"railterm/internal/tokens"
)

// RunBalances prints the public ERC-20 balances of the configured wallet
// address for the given token contracts. Failures degrade per token.
func (a *App) RunBalances(ctx context.Context, tokenAddresses []string) error {
	if a.cfg.Wallet.PublicAddress == "" {
		return fmt.Errorf("no wallet public address configured")
	}
	if len(tokenAddresses) == 0 {
		return fmt.Errorf("no token addresses given")
	}
	owner := common.HexToAddress(a.cfg.Wallet.PublicAddress)

	a.printf("\n  Public Balances  —  %s\n", a.network.Name)
	a.printf("  %s\n", tokens.TruncateHash(a.cfg.Wallet.PublicAddress, 6))
	a.printf("  %s\n", strings.Repeat("─", 46))

	for _, addr := range tokenAddresses {
		balance, err := a.resolver.PublicBalance(ctx, common.HexToAddress(addr), owner)
		if err != nil {
			a.logger.Warn("balance query failed", "token", addr, "error", err)
			a.printf("  %-24s  unavailable\n", tokens.TruncateHash(addr, 6))
			continue
		}
		label := tokens.TruncateHash(addr, 6)
		formatted := balance.String()
		if info, err := a.resolver.TokenInfo(ctx, a.network.Name, addr); err == nil {
			label = info.Name
			formatted = tokens.FormatTokenAmount(balance, info.Decimals, info.Symbol, a.cfg.Display.Precision)
		}
		a.printf("  %-24s  %s\n", label, formatted)
	}
	return nil
}
