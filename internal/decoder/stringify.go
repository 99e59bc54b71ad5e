package decoder

import (
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// stringifyValue flattens a decoded ABI value into a stable string form.
// Tuples with named members become a JSON-object literal in declared
// order; unnamed composites become a bracketed comma-joined list.
func stringifyValue(t abi.Type, v interface{}) string {
	switch t.T {
	case abi.TupleTy:
		return stringifyTuple(t, v)
	case abi.SliceTy, abi.ArrayTy:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return fmt.Sprintf("%v", v)
		}
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts = append(parts, stringifyValue(*t.Elem, rv.Index(i).Interface()))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case abi.AddressTy:
		if a, ok := v.(common.Address); ok {
			return a.Hex()
		}
	case abi.FixedBytesTy:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Array {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return hexutil.Encode(b)
		}
	case abi.BytesTy:
		if b, ok := v.([]byte); ok {
			return hexutil.Encode(b)
		}
	case abi.HashTy:
		if h, ok := v.(common.Hash); ok {
			return h.Hex()
		}
	}
	switch n := v.(type) {
	case *big.Int:
		if n == nil {
			return "0"
		}
		return n.String()
	case common.Hash:
		return n.Hex()
	case common.Address:
		return n.Hex()
	}
	return fmt.Sprintf("%v", v)
}

func stringifyTuple(t abi.Type, v interface{}) string {
	rv := reflect.Indirect(reflect.ValueOf(v))
	named := false
	for _, name := range t.TupleRawNames {
		if name != "" {
			named = true
			break
		}
	}
	if !named || rv.Kind() != reflect.Struct || rv.NumField() != len(t.TupleElems) {
		if rv.Kind() != reflect.Struct {
			return fmt.Sprintf("%v", v)
		}
		parts := make([]string, 0, rv.NumField())
		for i := 0; i < rv.NumField() && i < len(t.TupleElems); i++ {
			parts = append(parts, stringifyValue(*t.TupleElems[i], rv.Field(i).Interface()))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}

	// Nested tuples end up as JSON strings inside the parent object; the
	// known-shape handlers re-parse them.
	var sb strings.Builder
	sb.WriteByte('{')
	for i, name := range t.TupleRawNames {
		if i > 0 {
			sb.WriteByte(',')
		}
		key, _ := json.Marshal(name)
		sb.Write(key)
		sb.WriteByte(':')
		val, _ := json.Marshal(stringifyValue(*t.TupleElems[i], rv.Field(i).Interface()))
		sb.Write(val)
	}
	sb.WriteByte('}')
	return sb.String()
}
