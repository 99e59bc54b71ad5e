package decoder

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// DecodedEvent is one log decoded against a known interface. Args is a
// name -> stringified value mapping; ArgOrder preserves the declared
// parameter order. Undecodable logs are represented by Unknown entries,
// never dropped.
type DecodedEvent struct {
	Event    string
	Address  common.Address
	Args     map[string]string
	ArgOrder []string
	LogIndex uint
	Unknown  bool
}

// Arg returns the stringified value for name, or "" when absent.
func (e *DecodedEvent) Arg(name string) string {
	return e.Args[name]
}

// DecodedCall is a transaction input decoded against the fixed
// ERC-20/DEX function whitelist.
type DecodedCall struct {
	Method   string
	To       common.Address
	Args     map[string]string
	ArgOrder []string
}

func (c *DecodedCall) Arg(name string) string {
	return c.Args[name]
}

type Decoder struct {
	eventTables []abi.ABI // tried in order, most specific first
	functions   abi.ABI
}

func New() (*Decoder, error) {
	railgun, err := abi.JSON(strings.NewReader(railgunEventsABI))
	if err != nil {
		return nil, fmt.Errorf("railgun events abi: %w", err)
	}
	standard, err := abi.JSON(strings.NewReader(standardEventsABI))
	if err != nil {
		return nil, fmt.Errorf("standard events abi: %w", err)
	}
	functions, err := abi.JSON(strings.NewReader(standardFunctionsABI))
	if err != nil {
		return nil, fmt.Errorf("standard functions abi: %w", err)
	}
	return &Decoder{
		eventTables: []abi.ABI{railgun, standard},
		functions:   functions,
	}, nil
}

// DecodeLog tries each interface table in priority order and returns the
// first match, or nil when no table matches. Malformed payloads and
// signature mismatches are normal for foreign contracts and yield nil.
func (d *Decoder) DecodeLog(lg *types.Log) *DecodedEvent {
	if lg == nil || len(lg.Topics) == 0 {
		return nil
	}
	for _, table := range d.eventTables {
		event, err := table.EventByID(lg.Topics[0])
		if err != nil {
			continue
		}
		if dec := decodeEvent(event, lg); dec != nil {
			return dec
		}
	}
	return nil
}

// Unknown builds the placeholder entry for a log no table decodes,
// carrying the raw first topic.
func Unknown(lg *types.Log) *DecodedEvent {
	topic0 := "no-topic"
	name := "Unknown(no-topic)"
	if len(lg.Topics) > 0 {
		topic0 = lg.Topics[0].Hex()
		name = fmt.Sprintf("Unknown(%s…)", topic0[:10])
	}
	return &DecodedEvent{
		Event:    name,
		Address:  lg.Address,
		Args:     map[string]string{"topic0": topic0},
		ArgOrder: []string{"topic0"},
		LogIndex: lg.Index,
		Unknown:  true,
	}
}

// DecodeAll decodes every log of a receipt in emission order, inserting
// Unknown placeholders for logs no table matches.
func (d *Decoder) DecodeAll(logs []*types.Log) []*DecodedEvent {
	decoded := make([]*DecodedEvent, 0, len(logs))
	for _, lg := range logs {
		if dec := d.DecodeLog(lg); dec != nil {
			decoded = append(decoded, dec)
			continue
		}
		decoded = append(decoded, Unknown(lg))
	}
	return decoded
}

// DecodeCall matches transaction input data against the standard
// function whitelist. Empty payloads and unknown selectors yield nil.
func (d *Decoder) DecodeCall(to common.Address, data []byte) *DecodedCall {
	if len(data) < 4 {
		return nil
	}
	method, err := d.functions.MethodById(data[:4])
	if err != nil {
		return nil
	}
	values := map[string]interface{}{}
	if err := method.Inputs.UnpackIntoMap(values, data[4:]); err != nil {
		return nil
	}
	call := &DecodedCall{
		Method: method.Name,
		To:     to,
		Args:   make(map[string]string, len(method.Inputs)),
	}
	for _, input := range method.Inputs {
		v, ok := values[input.Name]
		if !ok {
			return nil
		}
		call.ArgOrder = append(call.ArgOrder, input.Name)
		call.Args[input.Name] = stringifyValue(input.Type, v)
	}
	return call
}

func decodeEvent(event *abi.Event, lg *types.Log) *DecodedEvent {
	indexed := make(abi.Arguments, 0, len(event.Inputs))
	for _, input := range event.Inputs {
		if input.Indexed {
			indexed = append(indexed, input)
		}
	}
	if len(lg.Topics)-1 != len(indexed) {
		return nil
	}
	values := map[string]interface{}{}
	if err := event.Inputs.NonIndexed().UnpackIntoMap(values, lg.Data); err != nil {
		return nil
	}
	if len(indexed) > 0 {
		if err := abi.ParseTopicsIntoMap(values, indexed, lg.Topics[1:]); err != nil {
			return nil
		}
	}
	dec := &DecodedEvent{
		Event:    event.Name,
		Address:  lg.Address,
		Args:     make(map[string]string, len(event.Inputs)),
		LogIndex: lg.Index,
	}
	for _, input := range event.Inputs {
		v, ok := values[input.Name]
		if !ok {
			return nil
		}
		dec.ArgOrder = append(dec.ArgOrder, input.Name)
		dec.Args[input.Name] = stringifyValue(input.Type, v)
	}
	return dec
}
