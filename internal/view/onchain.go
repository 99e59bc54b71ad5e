package view

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"railterm/internal/chain"
	"railterm/internal/decoder"
	"railterm/internal/history"
	"railterm/internal/wallet"
)

// OnChainSection renders the on-chain lookup block of the detail view:
// transaction facts, the merged action list from both inference paths,
// and the decoded event dump. Every degraded path still renders a line.
func (r *Renderer) OnChainSection(ctx context.Context, item wallet.HistoryItem, lookup *chain.Result, dec *decoder.Decoder, showEvents bool) []string {
	if item.TxID == "" {
		return []string{"    " + yellow("Transaction hash unavailable — cannot query on-chain.")}
	}
	if lookup == nil || lookup.Receipt == nil || lookup.Tx == nil {
		return []string{"    " + yellow("Could not fetch transaction receipt.")}
	}
	receipt := lookup.Receipt
	tx := lookup.Tx

	book := history.NewAddressBook(r.WalletAddress)
	if lookup.HasFrom {
		book.Add(lookup.From.Hex())
	}

	var call *decoder.DecodedCall
	if tx.To() != nil {
		call = dec.DecodeCall(*tx.To(), tx.Data())
	}

	lines := []string{"  " + bold(cyan("On-Chain Lookup")) + ":"}
	lines = append(lines, fmt.Sprintf("    %s: %s", grey("TX Hash"), item.TxID))
	if lookup.HasFrom {
		lines = append(lines, fmt.Sprintf("    %s: %s", grey("From"), lookup.From.Hex()))
	}
	if tx.To() != nil {
		lines = append(lines, fmt.Sprintf("    %s: %s", grey("To"), tx.To().Hex()))
	}
	status := red("Failed")
	if receipt.Status == 1 {
		status = green("Success")
	}
	lines = append(lines, fmt.Sprintf("    %s: #%d  %s: %s", grey("Block"), receipt.BlockNumber, grey("Status"), status))
	lines = append(lines, fmt.Sprintf("    %s: %d  %s: %d", grey("Gas Used"), receipt.GasUsed, grey("Logs"), len(receipt.Logs)))
	if call != nil {
		lines = append(lines, fmt.Sprintf("    %s: %s", grey("Function"), cyan(call.Method+"()")))
	}
	lines = append(lines, "")

	historyActions := r.Inferencer.HistoryActions(ctx, item)

	decoded := dec.DecodeAll(receipt.Logs)
	concrete := make([]*decoder.DecodedEvent, 0, len(decoded))
	for _, evt := range decoded {
		if !evt.Unknown {
			concrete = append(concrete, evt)
		}
	}
	inferred := r.Inferencer.ChainActions(ctx, concrete, call, book)
	merged := history.Merge(historyActions, inferred)

	lines = append(lines, fmt.Sprintf("  %s (%d):", bold("Detected Wallet Actions"), len(merged)))
	if len(merged) == 0 {
		lines = append(lines, "    "+dim("No wallet-specific actions inferred from decoded data."))
	} else {
		for i, action := range merged {
			lines = append(lines, fmt.Sprintf("    [%d] %s", i, green(action)))
		}
	}
	lines = append(lines, "")

	if showEvents {
		lines = append(lines, fmt.Sprintf("  %s (%d):", bold("Decoded Events"), len(decoded)), "")
		for i, evt := range decoded {
			lines = append(lines, r.RenderDecodedEvent(ctx, evt, i)...)
		}
	} else {
		lines = append(lines, fmt.Sprintf("  %s: %s (%d available)", bold("Decoded Events"), dim("Hidden"), len(decoded)))
	}
	return lines
}

// TxHash parses the item's txid, reporting whether one is present.
func TxHash(item wallet.HistoryItem) (common.Hash, bool) {
	if item.TxID == "" {
		return common.Hash{}, false
	}
	return common.HexToHash(item.TxID), true
}
