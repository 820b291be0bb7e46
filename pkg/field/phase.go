package field

// Phase is the lifecycle stage of a [Controller].
type Phase int

const (
	// PhaseUninitialized means nothing has been measured yet.
	PhaseUninitialized Phase = iota
	// PhaseMeasuring means the first layout pass is recording chrome sizes.
	PhaseMeasuring
	// PhaseReady is the steady state. Taps are only handled here.
	PhaseReady
	// PhaseDisposed means the controller has been torn down.
	PhaseDisposed
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseMeasuring:
		return "measuring"
	case PhaseReady:
		return "ready"
	case PhaseDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}
