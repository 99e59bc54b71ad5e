package wallet

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// Amount carries a non-negative integer in the token's base unit. The
// engine serializes amounts as decimal strings; some fields arrive as
// JSON numbers, both are accepted.
type Amount struct {
	big.Int
}

func NewAmount(v int64) *Amount {
	a := &Amount{}
	a.SetInt64(v)
	return a
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		a.SetInt64(0)
		return nil
	}
	if _, ok := a.SetString(s, 10); !ok {
		return fmt.Errorf("invalid amount %q", s)
	}
	return nil
}

func (a *Amount) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte(`"0"`), nil
	}
	return json.Marshal(a.String())
}

func (a *Amount) Big() *big.Int {
	if a == nil {
		return new(big.Int)
	}
	return &a.Int
}

// ERC20Amount is one fungible entry in a history item bucket. Fee fields
// are string-encoded integers and empty when absent.
type ERC20Amount struct {
	TokenAddress     string  `json:"tokenAddress"`
	Amount           *Amount `json:"amount"`
	SenderAddress    string  `json:"senderAddress,omitempty"`
	RecipientAddress string  `json:"recipientAddress,omitempty"`
	MemoText         string  `json:"memoText,omitempty"`
	ShieldFee        string  `json:"shieldFee,omitempty"`
	UnshieldFee      string  `json:"unshieldFee,omitempty"`
	HasValidPOI      bool    `json:"hasValidPOIForActiveLists"`
	BalanceBucket    string  `json:"balanceBucket,omitempty"`
}

type NFTAmount struct {
	NFTAddress       string  `json:"nftAddress"`
	TokenSubID       string  `json:"tokenSubID"`
	Amount           *Amount `json:"amount"`
	SenderAddress    string  `json:"senderAddress,omitempty"`
	RecipientAddress string  `json:"recipientAddress,omitempty"`
	UnshieldFee      string  `json:"unshieldFee,omitempty"`
	HasValidPOI      bool    `json:"hasValidPOIForActiveLists"`
}

// HistoryItem is one logical wallet transaction, received verbatim from
// the wallet engine. TxID is the on-chain transaction hash and may be
// empty for pending items. A zero Timestamp means unknown.
type HistoryItem struct {
	TxID        string `json:"txid"`
	TxidVersion string `json:"txidVersion,omitempty"`
	Version     int    `json:"version,omitempty"`
	BlockNumber uint64 `json:"blockNumber,omitempty"`
	Timestamp   int64  `json:"timestamp,omitempty"`

	ReceiveERC20Amounts  []ERC20Amount `json:"receiveERC20Amounts"`
	TransferERC20Amounts []ERC20Amount `json:"transferERC20Amounts"`
	UnshieldERC20Amounts []ERC20Amount `json:"unshieldERC20Amounts"`
	ChangeERC20Amounts   []ERC20Amount `json:"changeERC20Amounts"`

	ReceiveNFTAmounts  []NFTAmount `json:"receiveNFTAmounts"`
	TransferNFTAmounts []NFTAmount `json:"transferNFTAmounts"`
	UnshieldNFTAmounts []NFTAmount `json:"unshieldNFTAmounts"`

	BroadcasterFeeERC20Amount *ERC20Amount `json:"broadcasterFeeERC20Amount,omitempty"`
}
