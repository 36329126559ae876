package ril

// RadioState is the abstract radio power state tracked by the command
// dispatcher.
type RadioState int

const (
	RadioOff RadioState = iota
	RadioUnavailable
	RadioOn
)

func (s RadioState) String() string {
	switch s {
	case RadioOff:
		return "off"
	case RadioUnavailable:
		return "unavailable"
	case RadioOn:
		return "on"
	default:
		return "invalid"
	}
}

// IsOn reports whether the radio is powered.
func (s RadioState) IsOn() bool {
	return s == RadioOn
}

// IsAvailable reports whether the baseband answers requests at all.
func (s RadioState) IsAvailable() bool {
	return s != RadioUnavailable
}
