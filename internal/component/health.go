// internal/component/health.go
package component

// Health tracks a node's hit points. Current stays within [0, Max].
type Health struct {
	Current float64
	Max     float64
}

// Ratio returns Current/Max, or 0 for a zero Max.
func (h Health) Ratio() float64 {
	if h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}
