// Package bringup runs the SIM bring-up sequence for one radio power
// cycle: once the radio is on it queries the card status, and again on
// every SIM status change, until an application usable for registration
// is found, at which point the radio is declared on.
package bringup

import (
	"github.com/google/uuid"
	"i4.energy/across/rilbridge/ril"
	"i4.energy/across/rilbridge/uicc"
)

//go:generate go tool mockgen -source=bringup.go -destination=mock_bringup.go -package=bringup

// Commands is the slice of the command dispatcher a Session drives.
type Commands interface {
	// RequestCardStatus issues GET_SIM_STATUS. done is called exactly once,
	// from any goroutine, with the interpreted status or the failure.
	RequestCardStatus(done func(*uicc.CardStatus, error))
	// RegisterForSimStatusChanged adds h to the SIM status changed
	// registrants.
	RegisterForSimStatusChanged(h func()) (unregister func())
	SetRadioState(state ril.RadioState)
	RadioState() ril.RadioState
}

// State names of the bring-up machine.
const (
	StateIdle                 = "idle"
	StateRadioOnPendingStatus = "radio_on_pending_status"
	StateAwaitingCardStatus   = "awaiting_card_status"
	StateResolved             = "resolved"
	StatePending              = "pending"
)

// Event names of the bring-up machine.
const (
	EventRadioOn  = "radio_on"
	EventQuery    = "query"
	EventResolve  = "resolve"
	EventPark     = "park"
	EventRadioOff = "radio_off"
)

// Config configures a Session.
type Config struct {
	PhoneType ril.PhoneType
	// QueueSize is the capacity of the session event queue.
	QueueSize int
}

const defaultQueueSize = 16

type eventKind int

const (
	evRadioOn eventKind = iota
	evSimStatusChanged
	evCardStatusDone
	evRadioOffOrUnavailable
)

func (k eventKind) String() string {
	switch k {
	case evRadioOn:
		return "radio_on"
	case evSimStatusChanged:
		return "sim_status_changed"
	case evCardStatusDone:
		return "card_status_done"
	case evRadioOffOrUnavailable:
		return "radio_off_or_unavailable"
	}
	return "unknown"
}

type event struct {
	kind eventKind
	// session identifies the session a completion belongs to.
	session uuid.UUID
	seq     uint64
	epoch   uint64
	status  *uicc.CardStatus
	err     error
}
