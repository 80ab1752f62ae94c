// internal/component/construction.go
package component

import "gridkeep/internal/power"

// Construction is attached to a node while a build or upgrade is in
// flight. NoticeCooldown rate-limits the energy-shortage event.
type Construction struct {
	Meter          *power.Meter
	NoticeCooldown float64
}
