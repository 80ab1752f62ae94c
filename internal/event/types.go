// internal/event/types.go
package event

const (
	NodePlaced            EventType = "NodePlaced"            // A placement command succeeded
	NodeRemoved           EventType = "NodeRemoved"           // A node was recycled or cleaned up
	NodeDestroyed         EventType = "NodeDestroyed"         // Health reached zero while operational
	ConstructionCompleted EventType = "ConstructionCompleted" // A build finished and the node went operational
	UpgradeCompleted      EventType = "UpgradeCompleted"      // An upgrade finished and its bonuses applied
	EnergyShortage        EventType = "EnergyShortage"        // A construction site could not draw energy
	NetworkRecomputed     EventType = "NetworkRecomputed"     // Segments were rebuilt
)
