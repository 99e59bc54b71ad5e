package wallet

import "sort"

// SortNewestFirst orders items by descending timestamp. Items without a
// timestamp carry 0 and sort last.
func SortNewestFirst(items []HistoryItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp > items[j].Timestamp
	})
}
