package history

import (
	"context"

	"railterm/internal/tokens"
	"railterm/internal/wallet"
)

func withAssetType(asset AssetType, text string) string {
	return "[" + string(asset) + "] " + text
}

func pushUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}

// HistoryActions derives human-readable actions from the structured
// history record. The engine's category is a hint only; the classifier
// decides whether an ERC-20 receive was a shield.
func (f *Inferencer) HistoryActions(ctx context.Context, item wallet.HistoryItem) []string {
	var actions []string
	classified := Classify(item)

	if len(item.ReceiveERC20Amounts) > 0 {
		summaries := f.TokenSummaries(ctx, erc20TokenAmounts(item.ReceiveERC20Amounts))
		amounts := SummaryAmountString(summaries, f.Precision)
		if HasAction(classified, ActionShield) {
			actions = pushUnique(actions, withAssetType(AssetERC20, "Shielded "+amounts+" into private balance"))
		} else {
			actions = pushUnique(actions, withAssetType(AssetERC20, "Received privately "+amounts))
		}
	}

	if len(item.TransferERC20Amounts) > 0 {
		summaries := f.TokenSummaries(ctx, erc20TokenAmounts(item.TransferERC20Amounts))
		actions = pushUnique(actions, withAssetType(AssetERC20, "Sent privately "+SummaryAmountString(summaries, f.Precision)))
	}

	if len(item.UnshieldERC20Amounts) > 0 {
		summaries := f.TokenSummaries(ctx, erc20TokenAmounts(item.UnshieldERC20Amounts))
		amounts := SummaryAmountString(summaries, f.Precision)
		if recipient := item.UnshieldERC20Amounts[0].RecipientAddress; recipient != "" {
			actions = pushUnique(actions, withAssetType(AssetERC20,
				"Unshielded "+amounts+" to "+tokens.TruncateHash(recipient, 6)))
		} else {
			actions = pushUnique(actions, withAssetType(AssetERC20, "Unshielded "+amounts))
		}
	}

	if len(item.ReceiveNFTAmounts) > 0 {
		actions = pushUnique(actions, withAssetType(AssetNFT, "Received privately "+FormatNFTSummary(item.ReceiveNFTAmounts)))
	}

	if len(item.TransferNFTAmounts) > 0 {
		actions = pushUnique(actions, withAssetType(AssetNFT, "Sent privately "+FormatNFTSummary(item.TransferNFTAmounts)))
	}

	if len(item.UnshieldNFTAmounts) > 0 {
		nfts := FormatNFTSummary(item.UnshieldNFTAmounts)
		if recipient := item.UnshieldNFTAmounts[0].RecipientAddress; recipient != "" {
			actions = pushUnique(actions, withAssetType(AssetNFT,
				"Unshielded "+nfts+" to "+tokens.TruncateHash(recipient, 6)))
		} else {
			actions = pushUnique(actions, withAssetType(AssetNFT, "Unshielded "+nfts))
		}
	}

	if fee := item.BroadcasterFeeERC20Amount; fee != nil {
		feeAmount := tokens.FormatTokenValue(ctx, f.Resolver, f.Network, fee.TokenAddress, fee.Amount.Big().String(), f.Precision)
		actions = pushUnique(actions, "Paid broadcaster fee "+feeAmount)
	}

	return actions
}
