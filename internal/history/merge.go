package history

// Merge combines history-derived and chain-derived action lists:
// historyActions first, then each chain action not already present by
// exact string match, first-seen order preserved. Dedup is by string
// identity, not semantic identity, so near-duplicate phrasing from the
// two sources can survive side by side.
func Merge(historyActions, chainActions []string) []string {
	merged := make([]string, 0, len(historyActions)+len(chainActions))
	merged = append(merged, historyActions...)
	for _, action := range chainActions {
		merged = pushUnique(merged, action)
	}
	return merged
}
