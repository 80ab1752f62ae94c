// internal/component/position.go
package component

// Position is a node's fixed location in world space.
type Position struct {
	X, Y float64
}
