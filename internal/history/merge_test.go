package history

import (
	"reflect"
	"testing"
)

func TestMergeOrderAndDedup(t *testing.T) {
	historyActions := []string{
		"[ERC20] Unshielded 5.0 USDC to 0x111111...111111",
		"Paid broadcaster fee 0.25 USDC",
	}
	chainActions := []string{
		"[ERC20] Unshielded 5.0 USDC to 0x111111...111111",
		"Executed private transaction",
	}

	got := Merge(historyActions, chainActions)
	want := []string{
		"[ERC20] Unshielded 5.0 USDC to 0x111111...111111",
		"Paid broadcaster fee 0.25 USDC",
		"Executed private transaction",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("merge = %v, want %v", got, want)
	}
}

func TestMergeIdempotent(t *testing.T) {
	a := []string{"one", "two"}
	b := []string{"two", "three"}
	once := Merge(a, b)
	twice := Merge(once, b)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("merging the same source twice changed the result: %v vs %v", once, twice)
	}
}

func TestMergeEmptySides(t *testing.T) {
	if got := Merge(nil, []string{"x"}); len(got) != 1 || got[0] != "x" {
		t.Fatalf("nil history side: %v", got)
	}
	if got := Merge([]string{"x"}, nil); len(got) != 1 || got[0] != "x" {
		t.Fatalf("nil chain side: %v", got)
	}
	if got := Merge(nil, nil); len(got) != 0 {
		t.Fatalf("both nil should be empty, got %v", got)
	}
}
