package constant

// AlarmState describes where an alarm id sits in its scheduling lifecycle.
type AlarmState int

const (
	// StateUnscheduled is the initial state, the state of any alarm whose
	// day set is empty, and the state a cancelled id reads as once its
	// tracking entry is dropped.
	StateUnscheduled AlarmState = iota
	// StateArmed means an exact wake-up is registered with the timer.
	StateArmed
	// StateBestEffort means a wake-up is registered, but exact delivery was
	// not permitted and the registration was degraded.
	StateBestEffort
	// StateFired means the timer invoked the alert handler for this id.
	StateFired
)

func (s AlarmState) String() string {
	switch s {
	case StateUnscheduled:
		return "unscheduled"
	case StateArmed:
		return "armed"
	case StateBestEffort:
		return "best-effort"
	case StateFired:
		return "fired"
	default:
		return "unknown"
	}
}
