package history

import "strings"

type Action string

const (
	ActionShield   Action = "SHIELD"
	ActionUnshield Action = "UNSHIELD"
	ActionSend     Action = "SEND"
	ActionReceive  Action = "RECEIVE"
)

type AssetType string

const (
	AssetERC20 AssetType = "ERC20"
	AssetNFT   AssetType = "NFT"
)

// EvaluatedAction is one semantic action a history item classifies as.
type EvaluatedAction struct {
	Action Action
	Asset  AssetType
}

// AddressBook is the set of addresses considered "ours" for one lookup:
// the wallet public address plus the transaction sender. Entries are
// normalized to lowercase.
type AddressBook map[string]struct{}

func NewAddressBook(addresses ...string) AddressBook {
	book := AddressBook{}
	for _, addr := range addresses {
		book.Add(addr)
	}
	return book
}

func (b AddressBook) Add(address string) {
	if address == "" {
		return
	}
	b[strings.ToLower(address)] = struct{}{}
}

func (b AddressBook) Contains(address string) bool {
	if address == "" {
		return false
	}
	_, ok := b[strings.ToLower(address)]
	return ok
}
