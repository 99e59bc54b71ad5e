package history

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/sync/errgroup"

	"railterm/internal/tokens"
	"railterm/internal/wallet"
)

// TokenSummary is a display-ready view of one raw (token, amount) pair.
// When metadata is unavailable the symbol falls back to the truncated
// token address and decimals to 18.
type TokenSummary struct {
	Symbol   string
	Amount   *big.Int
	Decimals uint8
}

// TokenAmount is the minimal input to a summary lookup.
type TokenAmount struct {
	TokenAddress string
	Amount       *big.Int
}

// Inferencer derives human-readable action lists from history items and
// from decoded chain data. Resolver failures degrade to fallbacks and
// never abort an inference.
type Inferencer struct {
	Resolver tokens.Resolver
	Network  string
	// Gather bounds the concurrent metadata lookups of one summary
	// build. Zero means 4.
	Gather int
	// Precision is the fractional-digit count for rendered amounts.
	// Zero means the tokens package default.
	Precision int
}

func NewInferencer(resolver tokens.Resolver, network string, gather, precision int) *Inferencer {
	return &Inferencer{Resolver: resolver, Network: network, Gather: gather, Precision: precision}
}

// TokenSummaries resolves several token amounts concurrently, preserving
// input order. Each entry degrades independently on lookup failure.
func (f *Inferencer) TokenSummaries(ctx context.Context, entries []TokenAmount) []TokenSummary {
	summaries := make([]TokenSummary, len(entries))
	limit := f.Gather
	if limit < 1 {
		limit = 4
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			info, err := f.Resolver.TokenInfo(gctx, f.Network, entry.TokenAddress)
			if err != nil {
				summaries[i] = TokenSummary{
					Symbol:   tokens.TruncateHash(entry.TokenAddress, 4),
					Amount:   entry.Amount,
					Decimals: 18,
				}
				return nil
			}
			summaries[i] = TokenSummary{Symbol: info.Symbol, Amount: entry.Amount, Decimals: info.Decimals}
			return nil
		})
	}
	_ = g.Wait()
	return summaries
}

// SummaryAmountString joins summaries into a single display string.
func SummaryAmountString(summaries []TokenSummary, precision int) string {
	if len(summaries) == 0 {
		return ""
	}
	parts := make([]string, 0, len(summaries))
	for _, s := range summaries {
		parts = append(parts, tokens.FormatTokenAmount(s.Amount, s.Decimals, s.Symbol, precision))
	}
	return strings.Join(parts, ", ")
}

func erc20TokenAmounts(amounts []wallet.ERC20Amount) []TokenAmount {
	out := make([]TokenAmount, 0, len(amounts))
	for _, a := range amounts {
		out = append(out, TokenAmount{TokenAddress: a.TokenAddress, Amount: a.Amount.Big()})
	}
	return out
}

// FormatNFTSummary renders every NFT entry as address#subID xAmount.
func FormatNFTSummary(nfts []wallet.NFTAmount) string {
	if len(nfts) == 0 {
		return ""
	}
	parts := make([]string, 0, len(nfts))
	for _, nft := range nfts {
		parts = append(parts, fmt.Sprintf("%s#%s x%s",
			tokens.TruncateHash(nft.NFTAddress, 6), nft.TokenSubID, nft.Amount.Big().String()))
	}
	return strings.Join(parts, ", ")
}

// FormatNFTListSummary is the compact list-view form: a single NFT in
// full, anything more as a count.
func FormatNFTListSummary(nfts []wallet.NFTAmount) string {
	if len(nfts) == 0 {
		return ""
	}
	if len(nfts) == 1 {
		nft := nfts[0]
		return fmt.Sprintf("%s#%s x%s",
			tokens.TruncateHash(nft.NFTAddress, 4), nft.TokenSubID, nft.Amount.Big().String())
	}
	return fmt.Sprintf("%d NFTs", len(nfts))
}
