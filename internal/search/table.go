package search

// table memoizes finished subtrees. A verdict depends on the position, the
// side to move and the perspective, so all three go into the key.
type table struct {
	entries map[uint64]Verdict
}

func newTable() *table {
	return &table{entries: make(map[uint64]Verdict)}
}

func tableKey(stateKey uint64, perspectiveIsA bool) uint64 {
	key := stateKey << 1
	if perspectiveIsA {
		key |= 1
	}

	return key
}

func (that *table) probe(key uint64) (Verdict, bool) {
	verdict, ok := that.entries[key]
	return verdict, ok
}

func (that *table) store(key uint64, verdict Verdict) {
	that.entries[key] = verdict
}

func (that *table) size() int {
	return len(that.entries)
}

func (that *table) reset() {
	clear(that.entries)
}
