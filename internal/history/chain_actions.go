package history

import (
	"context"
	"encoding/json"
	"fmt"

	"railterm/internal/decoder"
	"railterm/internal/tokens"
)

// ChainActions derives a second, independent action list from decoded
// receipt events and the decoded transaction call. It exists because the
// history record omits signal only visible on chain; an approval, for
// example, has no history-record representation at all.
func (f *Inferencer) ChainActions(ctx context.Context, events []*decoder.DecodedEvent, call *decoder.DecodedCall, book AddressBook) []string {
	var actions []string

	if call != nil {
		switch call.Method {
		case "approve":
			spender := argOr(call.Arg("spender"), "unknown")
			amount := tokens.FormatTokenValue(ctx, f.Resolver, f.Network, call.To.Hex(), argOr(call.Arg("value"), "0"), f.Precision)
			actions = pushUnique(actions, withAssetType(AssetERC20,
				fmt.Sprintf("Approved %s to spend %s", tokens.TruncateHash(spender, 6), amount)))
		case "transfer":
			amount := tokens.FormatTokenValue(ctx, f.Resolver, f.Network, call.To.Hex(), argOr(call.Arg("value"), "0"), f.Precision)
			recipient := argOr(call.Arg("to"), "unknown")
			actions = pushUnique(actions, withAssetType(AssetERC20,
				fmt.Sprintf("Called transfer: %s to %s", amount, tokens.TruncateHash(recipient, 6))))
		case "swapExactTokensForTokens", "swapExactTokensForETH", "swapExactETHForTokens":
			actions = pushUnique(actions, "Executed swap via "+tokens.TruncateHash(call.To.Hex(), 6))
		case "deposit":
			actions = pushUnique(actions, "Wrapped native token via "+tokens.TruncateHash(call.To.Hex(), 6))
		case "withdraw":
			actions = pushUnique(actions, "Unwrapped native token via "+tokens.TruncateHash(call.To.Hex(), 6))
		}
	}

	for _, evt := range events {
		if evt.Unknown {
			continue
		}
		switch evt.Event {
		case "Transfer":
			actions = f.transferEventActions(ctx, evt, book, actions)
		case "Approval":
			if !book.Contains(evt.Arg("owner")) {
				continue
			}
			amount := tokens.FormatTokenValue(ctx, f.Resolver, f.Network, evt.Address.Hex(), argOr(evt.Arg("value"), "0"), f.Precision)
			actions = pushUnique(actions, withAssetType(AssetERC20,
				fmt.Sprintf("Approved %s for %s", tokens.TruncateHash(argOr(evt.Arg("spender"), "unknown"), 6), amount)))
		case "Unshield":
			actions = f.unshieldEventActions(ctx, evt, actions)
		case "Shield":
			actions = pushUnique(actions, "Shielded assets into private balance")
		case "Transact":
			actions = pushUnique(actions, "Executed private transaction")
		}
	}

	return actions
}

func (f *Inferencer) transferEventActions(ctx context.Context, evt *decoder.DecodedEvent, book AddressBook, actions []string) []string {
	fromWallet := book.Contains(evt.Arg("from"))
	toWallet := book.Contains(evt.Arg("to"))
	if !fromWallet && !toWallet {
		return actions
	}

	// Metadata-lookup success is the discriminant here: an NFT contract
	// has no fungible-token interface. Accepted approximation, an ERC-20
	// without standard metadata would misclassify as NFT.
	asset := AssetERC20
	if _, err := f.Resolver.TokenInfo(ctx, f.Network, evt.Address.Hex()); err != nil {
		asset = AssetNFT
	}

	value := argOr(evt.Arg("value"), "0")
	var amount string
	if asset == AssetERC20 {
		amount = tokens.FormatTokenValue(ctx, f.Resolver, f.Network, evt.Address.Hex(), value, f.Precision)
	} else {
		amount = tokens.TruncateHash(evt.Address.Hex(), 6) + "#" + value
	}

	switch {
	case fromWallet && toWallet:
		return pushUnique(actions, withAssetType(asset, "Moved "+amount+" between your addresses"))
	case fromWallet:
		return pushUnique(actions, withAssetType(asset,
			fmt.Sprintf("Sent %s to %s", amount, tokens.TruncateHash(argOr(evt.Arg("to"), "unknown"), 6))))
	default:
		return pushUnique(actions, withAssetType(asset,
			fmt.Sprintf("Received %s from %s", amount, tokens.TruncateHash(argOr(evt.Arg("from"), "unknown"), 6))))
	}
}

func (f *Inferencer) unshieldEventActions(ctx context.Context, evt *decoder.DecodedEvent, actions []string) []string {
	tokenAddress := evt.Address.Hex()
	asset := AssetERC20
	tokenSubID := "?"
	if token := parseTokenTuple(evt.Arg("token")); token != nil {
		if addr := token["tokenAddress"]; addr != "" {
			tokenAddress = addr
		}
		if token["tokenType"] == "1" {
			asset = AssetNFT
			if sub := token["tokenSubID"]; sub != "" {
				tokenSubID = sub
			}
		}
	}

	to := tokens.TruncateHash(argOr(evt.Arg("to"), "unknown"), 6)
	if asset == AssetNFT {
		nft := fmt.Sprintf("%s#%s x%s", tokens.TruncateHash(tokenAddress, 6), tokenSubID, argOr(evt.Arg("amount"), "1"))
		return pushUnique(actions, withAssetType(AssetNFT, fmt.Sprintf("Unshielded %s to %s", nft, to)))
	}
	amount := tokens.FormatTokenValue(ctx, f.Resolver, f.Network, tokenAddress, argOr(evt.Arg("amount"), "0"), f.Precision)
	return pushUnique(actions, withAssetType(AssetERC20, fmt.Sprintf("Unshielded %s to %s", amount, to)))
}

// parseTokenTuple decodes the embedded TokenData object of a protocol
// event. Values arrive stringified but numeric forms are tolerated.
func parseTokenTuple(raw string) map[string]string {
	if raw == "" {
		return nil
	}
	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil
	}
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		switch t := v.(type) {
		case string:
			out[k] = t
		case float64:
			out[k] = fmt.Sprintf("%.0f", t)
		default:
			out[k] = fmt.Sprintf("%v", t)
		}
	}
	return out
}

func argOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
