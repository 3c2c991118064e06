package domain

// Status is the lifecycle state of a show.
type Status string

const (
	StatusUninitialized Status = "uninitialized" // Constructed, Run not called yet
	StatusRotating      Status = "rotating"      // Timer armed, advancing on every tick
	StatusStopped       Status = "stopped"       // Stopped or closed; terminal
)

// Snapshot is a point-in-time view of a show, used by status endpoints and tools.
type Snapshot struct {
	Name         string `json:"name,omitempty"`
	Status       Status `json:"status"`
	CurrentIndex int    `json:"current_index"` // -1 until Run
	Advances     uint64 `json:"advances"`
	Slots        []Slot `json:"slots"`
	Config       Config `json:"config"`
}
