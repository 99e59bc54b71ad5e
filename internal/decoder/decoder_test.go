package decoder

import (
	"encoding/json"
	"math/big"
	"reflect"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	tokenAddr = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	fromAddr  = common.HexToAddress("0x1111111111111111111111111111111111111111")
	toAddr    = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func newDecoder(t *testing.T) *Decoder {
	t.Helper()
	d, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func addressTopic(a common.Address) common.Hash {
	return common.BytesToHash(a.Bytes())
}

func TestDecodeTransferLog(t *testing.T) {
	d := newDecoder(t)
	transferID := d.eventTables[1].Events["Transfer"].ID

	lg := &types.Log{
		Address: tokenAddr,
		Topics:  []common.Hash{transferID, addressTopic(fromAddr), addressTopic(toAddr)},
		Data:    common.BigToHash(big.NewInt(5000000)).Bytes(),
		Index:   3,
	}

	dec := d.DecodeLog(lg)
	if dec == nil {
		t.Fatal("Transfer log did not decode")
	}
	if dec.Event != "Transfer" || dec.Unknown {
		t.Fatalf("unexpected decode: %+v", dec)
	}
	if dec.Address != tokenAddr || dec.LogIndex != 3 {
		t.Fatalf("log metadata lost: %+v", dec)
	}
	if got := dec.Arg("from"); got != fromAddr.Hex() {
		t.Fatalf("from = %q, want %q", got, fromAddr.Hex())
	}
	if got := dec.Arg("to"); got != toAddr.Hex() {
		t.Fatalf("to = %q, want %q", got, toAddr.Hex())
	}
	if got := dec.Arg("value"); got != "5000000" {
		t.Fatalf("value = %q, want 5000000", got)
	}
	if !reflect.DeepEqual(dec.ArgOrder, []string{"from", "to", "value"}) {
		t.Fatalf("arg order %v", dec.ArgOrder)
	}
}

func TestDecodeLogTopicCountMismatch(t *testing.T) {
	d := newDecoder(t)
	transferID := d.eventTables[1].Events["Transfer"].ID

	// ERC-721 Transfer: same signature hash, three indexed topics, no data.
	lg := &types.Log{
		Address: tokenAddr,
		Topics: []common.Hash{transferID, addressTopic(fromAddr), addressTopic(toAddr),
			common.BigToHash(big.NewInt(42))},
	}
	if dec := d.DecodeLog(lg); dec != nil {
		t.Fatalf("indexed-arity mismatch must not decode, got %+v", dec)
	}
}

func TestDecodeLogUnknownTopic(t *testing.T) {
	d := newDecoder(t)
	lg := &types.Log{
		Address: tokenAddr,
		Topics:  []common.Hash{common.HexToHash("0xdeadbeef00000000000000000000000000000000000000000000000000000000")},
		Index:   1,
	}
	if dec := d.DecodeLog(lg); dec != nil {
		t.Fatalf("unknown topic must not decode, got %+v", dec)
	}

	placeholder := Unknown(lg)
	if !placeholder.Unknown {
		t.Fatal("placeholder must be marked unknown")
	}
	if placeholder.Event != "Unknown(0xdeadbeef…)" {
		t.Fatalf("placeholder name = %q", placeholder.Event)
	}
	if placeholder.Arg("topic0") != lg.Topics[0].Hex() {
		t.Fatalf("topic0 = %q", placeholder.Arg("topic0"))
	}
}

func TestDecodeAllKeepsOrder(t *testing.T) {
	d := newDecoder(t)
	transferID := d.eventTables[1].Events["Transfer"].ID

	known := &types.Log{
		Address: tokenAddr,
		Topics:  []common.Hash{transferID, addressTopic(fromAddr), addressTopic(toAddr)},
		Data:    common.BigToHash(big.NewInt(1)).Bytes(),
		Index:   0,
	}
	foreign := &types.Log{
		Address: tokenAddr,
		Topics:  []common.Hash{common.HexToHash("0x12345678aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")},
		Index:   1,
	}

	decoded := d.DecodeAll([]*types.Log{known, foreign})
	if len(decoded) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(decoded))
	}
	if decoded[0].Event != "Transfer" || decoded[0].Unknown {
		t.Fatalf("first entry wrong: %+v", decoded[0])
	}
	if !decoded[1].Unknown || decoded[1].Event != "Unknown(0x12345678…)" {
		t.Fatalf("second entry wrong: %+v", decoded[1])
	}
}

func TestDecodeUnshieldEvent(t *testing.T) {
	d := newDecoder(t)
	unshield := d.eventTables[0].Events["Unshield"]

	type tokenData struct {
		TokenType    uint8
		TokenAddress common.Address
		TokenSubID   *big.Int
	}
	data, err := unshield.Inputs.Pack(
		toAddr,
		tokenData{TokenType: 0, TokenAddress: tokenAddr, TokenSubID: big.NewInt(0)},
		big.NewInt(5000000),
		big.NewInt(12500),
	)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}

	dec := d.DecodeLog(&types.Log{
		Address: common.HexToAddress("0x5555555555555555555555555555555555555555"),
		Topics:  []common.Hash{unshield.ID},
		Data:    data,
	})
	if dec == nil {
		t.Fatal("Unshield log did not decode")
	}
	if dec.Event != "Unshield" || dec.Arg("amount") != "5000000" || dec.Arg("fee") != "12500" {
		t.Fatalf("unexpected decode: %+v", dec)
	}

	var token map[string]string
	if err := json.Unmarshal([]byte(dec.Arg("token")), &token); err != nil {
		t.Fatalf("token arg is not a JSON object: %q", dec.Arg("token"))
	}
	if token["tokenAddress"] != tokenAddr.Hex() || token["tokenType"] != "0" {
		t.Fatalf("token tuple wrong: %v", token)
	}
}

func TestDecodeCallApprove(t *testing.T) {
	d := newDecoder(t)
	approve := d.functions.Methods["approve"]

	args, err := approve.Inputs.Pack(toAddr, big.NewInt(5000000))
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	data := append(append([]byte{}, approve.ID...), args...)

	call := d.DecodeCall(tokenAddr, data)
	if call == nil {
		t.Fatal("approve call did not decode")
	}
	if call.Method != "approve" || call.To != tokenAddr {
		t.Fatalf("unexpected call: %+v", call)
	}
	if call.Arg("spender") != toAddr.Hex() || call.Arg("value") != "5000000" {
		t.Fatalf("args wrong: %v", call.Args)
	}
	if !reflect.DeepEqual(call.ArgOrder, []string{"spender", "value"}) {
		t.Fatalf("arg order %v", call.ArgOrder)
	}
}

func TestDecodeCallRejectsUnknown(t *testing.T) {
	d := newDecoder(t)
	if call := d.DecodeCall(tokenAddr, nil); call != nil {
		t.Fatalf("empty payload must not decode, got %+v", call)
	}
	if call := d.DecodeCall(tokenAddr, []byte{0xde, 0xad}); call != nil {
		t.Fatalf("short payload must not decode, got %+v", call)
	}
	if call := d.DecodeCall(tokenAddr, []byte{0xde, 0xad, 0xbe, 0xef, 0x00}); call != nil {
		t.Fatalf("unknown selector must not decode, got %+v", call)
	}
}
