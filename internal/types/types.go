// internal/types/types.go
package types

// NodeID identifies a node in the simulation. IDs are assigned from a
// monotonically increasing counter, so comparing two IDs also compares
// their insertion order.
type NodeID uint64
