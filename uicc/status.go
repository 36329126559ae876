package uicc

// CardStatus is one decoded GET_SIM_STATUS record.
type CardStatus struct {
	CardState         CardState
	UniversalPinState PinState

	// Subscription application indices into Applications as reported by
	// the modem. Negative means "none" and values may point past the end
	// of Applications; consumers must bounds-check before indexing.
	GsmUmtsSubscriptionAppIndex int
	CdmaSubscriptionAppIndex    int
	ImsSubscriptionAppIndex     int

	Applications []ApplicationStatus
}

// ApplicationStatus describes one application on the card.
type ApplicationStatus struct {
	Type          AppType
	State         AppState
	PersoSubstate PersoSubstate
	// AID and Label are empty when absent on the wire.
	AID          string
	Label        string
	Pin1Replaced bool
	Pin1         PinState
	Pin2         PinState
}

// Application returns the application at index i, or false when i does
// not address one.
func (s *CardStatus) Application(i int) (ApplicationStatus, bool) {
	if i < 0 || i >= len(s.Applications) {
		return ApplicationStatus{}, false
	}
	return s.Applications[i], true
}

// Subscription is the active application selected from the most recent
// card status. Its AID is injected into every AID-scoped request.
type Subscription struct {
	AID      string
	Resolved bool
	IsUSIM   bool
	// PreferredNetworkType is the preferred type that was configured when
	// the application was resolved.
	PreferredNetworkType int
}
