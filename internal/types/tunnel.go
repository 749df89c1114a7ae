package types

// State is the activation state of a tunnel configuration as reported by NetworkManager
type State string

const (
	Active   State = "active"
	Inactive State = "inactive"
)

// StateOf maps an "is active" query result to a State
func StateOf(active bool) State {
	if active {
		return Active
	}
	return Inactive
}

// Flip returns the opposite state
func (s State) Flip() State {
	if s == Active {
		return Inactive
	}
	return Active
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// Direction is the way a rotation moves through the tunnel list
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Tunnel represents a tunnel configuration with its runtime state, as shown in the picker
type Tunnel struct {
	Name string

	// Runtime state
	State    State
	Selected bool // current selection persisted between invocations
}
