package history

import (
	"math/big"

	"railterm/internal/wallet"
)

// Classify derives the semantic actions of a history item. Rules fire in
// a fixed order and are not mutually exclusive; the result is
// deduplicated by (action, asset) pair. A shield is never also reported
// as a plain ERC-20 receive. An empty result means the item is UNKNOWN.
func Classify(item wallet.HistoryItem) []EvaluatedAction {
	var actions []EvaluatedAction
	add := func(action Action, asset AssetType) {
		for _, a := range actions {
			if a.Action == action && a.Asset == asset {
				return
			}
		}
		actions = append(actions, EvaluatedAction{Action: action, Asset: asset})
	}

	hasShieldFee := false
	for _, rcv := range item.ReceiveERC20Amounts {
		if hasPositiveAmount(rcv.ShieldFee) {
			hasShieldFee = true
			break
		}
	}

	if hasShieldFee {
		add(ActionShield, AssetERC20)
	}
	if len(item.UnshieldERC20Amounts) > 0 {
		add(ActionUnshield, AssetERC20)
	}
	if len(item.UnshieldNFTAmounts) > 0 {
		add(ActionUnshield, AssetNFT)
	}
	if len(item.TransferERC20Amounts) > 0 {
		add(ActionSend, AssetERC20)
	}
	if len(item.TransferNFTAmounts) > 0 {
		add(ActionSend, AssetNFT)
	}
	if len(item.ReceiveERC20Amounts) > 0 && !hasShieldFee {
		add(ActionReceive, AssetERC20)
	}
	if len(item.ReceiveNFTAmounts) > 0 {
		add(ActionReceive, AssetNFT)
	}

	return actions
}

// Actions reduces evaluated actions to the distinct action kinds in
// evaluation order.
func Actions(evaluated []EvaluatedAction) []Action {
	var out []Action
	for _, e := range evaluated {
		seen := false
		for _, a := range out {
			if a == e.Action {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, e.Action)
		}
	}
	return out
}

// Primary is the first action that fired, used for compact badges.
func Primary(evaluated []EvaluatedAction) (EvaluatedAction, bool) {
	if len(evaluated) == 0 {
		return EvaluatedAction{}, false
	}
	return evaluated[0], true
}

func HasAction(evaluated []EvaluatedAction, action Action) bool {
	for _, e := range evaluated {
		if e.Action == action {
			return true
		}
	}
	return false
}

// hasPositiveAmount reports whether s is a base-10 numeral greater than
// zero. Fee fields are string-encoded and may be empty.
func hasPositiveAmount(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	v, ok := new(big.Int).SetString(s, 10)
	return ok && v.Sign() > 0
}
