package view

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"regexp"

	"railterm/internal/decoder"
	"railterm/internal/tokens"
)

var amountishKey = regexp.MustCompile(`(?i)amount|value|wad|fee|reserve`)

// RenderDecodedEvent formats one decoded (or unknown) log entry. The
// protocol events get shaped renderings; everything else falls back to a
// generic key/value dump in declared parameter order.
func (r *Renderer) RenderDecodedEvent(ctx context.Context, evt *decoder.DecodedEvent, idx int) []string {
	lines := []string{fmt.Sprintf("    [%d] %s  %s %s  %s",
		idx, bold(cyan(evt.Event)), grey("on"),
		dim(tokens.TruncateHash(evt.Address.Hex(), 6)),
		dim(fmt.Sprintf("(log #%d)", evt.LogIndex)))}

	switch {
	case evt.Event == "Shield" && evt.Arg("commitments") != "":
		return r.renderShield(ctx, evt, lines)
	case evt.Event == "Unshield" && evt.Arg("token") != "":
		return r.renderUnshield(ctx, evt, lines)
	case evt.Event == "Transact":
		return renderTransact(evt, lines)
	case evt.Event == "Nullified":
		return renderNullified(evt, lines)
	}

	for _, key := range evt.ArgOrder {
		display := evt.Args[key]
		if evt.Event == "Transfer" && amountishKey.MatchString(key) &&
			tokens.IsNumeral(display) && len(display) > 6 {
			if formatted := tokens.FormatTokenValue(ctx, r.Resolver, r.Network, evt.Address.Hex(), display, r.precision()); formatted != display {
				display = formatted
			}
		}
		lines = append(lines, fmt.Sprintf("        %s: %s", grey(key), display))
	}
	return lines
}

func (r *Renderer) renderShield(ctx context.Context, evt *decoder.DecodedEvent, lines []string) []string {
	var commitments []map[string]interface{}
	if err := json.Unmarshal([]byte(evt.Arg("commitments")), &commitments); err != nil {
		lines = append(lines, fmt.Sprintf("        %s: %s", grey("commitments"), evt.Arg("commitments")))
	} else {
		for ci, c := range commitments {
			tokenAddr := "unknown"
			if tokenRaw, ok := c["token"].(string); ok {
				if fields := parseJSONObject(tokenRaw); fields["tokenAddress"] != "" {
					tokenAddr = fields["tokenAddress"]
				}
			}
			rawValue := "0"
			if v, ok := c["value"].(string); ok {
				rawValue = v
			}
			if info, err := r.Resolver.TokenInfo(ctx, r.Network, tokenAddr); err == nil {
				amount, _ := new(big.Int).SetString(rawValue, 10)
				lines = append(lines, fmt.Sprintf("        %s [%d]: %s",
					grey("Commitment"), ci, tokens.FormatTokenAmount(amount, info.Decimals, info.Symbol, r.precision())))
			} else {
				lines = append(lines, fmt.Sprintf("        %s [%d]: %s (%s)",
					grey("Commitment"), ci, rawValue, tokens.TruncateHash(tokenAddr, 8)))
			}
		}
	}
	lines = append(lines, fmt.Sprintf("        %s: %s", grey("treeNumber"), argOrQ(evt, "treeNumber")))
	lines = append(lines, fmt.Sprintf("        %s: %s", grey("startPosition"), argOrQ(evt, "startPosition")))
	return lines
}

func (r *Renderer) renderUnshield(ctx context.Context, evt *decoder.DecodedEvent, lines []string) []string {
	tokenAddr := evt.Address.Hex()
	if fields := parseJSONObject(evt.Arg("token")); fields["tokenAddress"] != "" {
		tokenAddr = fields["tokenAddress"]
	}
	lines = append(lines, fmt.Sprintf("        %s: %s", grey("to"), argOrQ(evt, "to")))
	if info, err := r.Resolver.TokenInfo(ctx, r.Network, tokenAddr); err == nil {
		amount, _ := new(big.Int).SetString(argOr0(evt, "amount"), 10)
		fee, _ := new(big.Int).SetString(argOr0(evt, "fee"), 10)
		lines = append(lines, fmt.Sprintf("        %s: %s", grey("amount"), tokens.FormatTokenAmount(amount, info.Decimals, info.Symbol, r.precision())))
		lines = append(lines, fmt.Sprintf("        %s: %s", grey("fee"), tokens.FormatTokenAmount(fee, info.Decimals, info.Symbol, r.precision())))
	} else {
		lines = append(lines, fmt.Sprintf("        %s: %s", grey("amount"), argOrQ(evt, "amount")))
		lines = append(lines, fmt.Sprintf("        %s: %s", grey("fee"), argOrQ(evt, "fee")))
		lines = append(lines, fmt.Sprintf("        %s: %s", grey("token"), tokenAddr))
	}
	return lines
}

func renderTransact(evt *decoder.DecodedEvent, lines []string) []string {
	lines = append(lines, fmt.Sprintf("        %s: %s", grey("treeNumber"), argOrQ(evt, "treeNumber")))
	lines = append(lines, fmt.Sprintf("        %s: %s", grey("startPosition"), argOrQ(evt, "startPosition")))
	var hashes []string
	if err := json.Unmarshal([]byte(evt.Arg("hash")), &hashes); err == nil {
		lines = append(lines, fmt.Sprintf("        %s: %d", grey("commitments"), len(hashes)))
	} else {
		lines = append(lines, fmt.Sprintf("        %s: %s", grey("hash"), argOrQ(evt, "hash")))
	}
	return lines
}

func renderNullified(evt *decoder.DecodedEvent, lines []string) []string {
	lines = append(lines, fmt.Sprintf("        %s: %s", grey("treeNumber"), argOrQ(evt, "treeNumber")))
	var nullifiers []string
	if err := json.Unmarshal([]byte(evt.Arg("nullifier")), &nullifiers); err == nil {
		lines = append(lines, fmt.Sprintf("        %s: %d", grey("nullifiers"), len(nullifiers)))
	} else {
		lines = append(lines, fmt.Sprintf("        %s: %s", grey("nullifier"), argOrQ(evt, "nullifier")))
	}
	return lines
}

func parseJSONObject(raw string) map[string]string {
	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return map[string]string{}
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

func argOrQ(evt *decoder.DecodedEvent, name string) string {
	if v := evt.Arg(name); v != "" {
		return v
	}
	return "?"
}

func argOr0(evt *decoder.DecodedEvent, name string) string {
	if v := evt.Arg(name); v != "" {
		return v
	}
	return "0"
}
