package agc

// State is the gain controller state.
type State int

const (
	// StateTracking holds the gain at the demanded gain.
	StateTracking State = iota
	// StateAttack lowers the gain by one attack step per sample.
	StateAttack
	// StateHang freezes the gain after an attack.
	StateHang
	// StateDecay raises the gain by one decay step per sample.
	StateDecay
	// StateManual applies the fixed manual gain.
	StateManual
)

func (s State) String() string {
	switch s {
	case StateTracking:
		return "tracking"
	case StateAttack:
		return "attack"
	case StateHang:
		return "hang"
	case StateDecay:
		return "decay"
	case StateManual:
		return "manual"
	default:
		return "unknown"
	}
}
