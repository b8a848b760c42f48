package sat

// ResetSet represents a set of integers from 0 to N-1 where N is the capacity
// of the set. It is meant to be cleared often: Clear runs in constant time.
type ResetSet struct {
	addedAt        []uint16
	addedTimestamp uint16
}

// NewResetSet returns an empty set of capacity n.
func NewResetSet(n int) *ResetSet {
	return &ResetSet{
		addedAt:        make([]uint16, n),
		addedTimestamp: 1,
	}
}

// Contains returns true if v is in the set.
func (rs *ResetSet) Contains(v int) bool {
	return rs.addedAt[v] == rs.addedTimestamp
}

// Add adds v to the set.
func (rs *ResetSet) Add(v int) {
	rs.addedAt[v] = rs.addedTimestamp
}

// Clear removes all the elements in the set.
func (rs *ResetSet) Clear() {
	rs.addedTimestamp++
	if rs.addedTimestamp == 0 { // overflow
		rs.addedTimestamp = 1
		clear(rs.addedAt)
	}
}

// Expand increases the capacity of the set by one.
func (rs *ResetSet) Expand() {
	rs.addedAt = append(rs.addedAt, 0)
}
