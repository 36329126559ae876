package uicc

import "fmt"

// MaxApplications is the largest number of applications a card status
// record may carry. Extra entries announced by the modem are ignored.
const MaxApplications = 8

// CardState is the physical state of the card slot.
type CardState int

const (
	CardAbsent CardState = iota
	CardPresent
	CardError
	CardRestricted
)

// cardStateFromRIL folds the vendor REMOVED (3) and SIM_DETECT_INSERTED (4)
// codes onto ABSENT and PRESENT so hot-swap checks upstream fire.
func cardStateFromRIL(raw int32) (CardState, error) {
	v := raw
	if v > 2 {
		v -= 3
	}
	if v < int32(CardAbsent) || v > int32(CardRestricted) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidCardState, raw)
	}
	return CardState(v), nil
}

func (s CardState) String() string {
	switch s {
	case CardAbsent:
		return "absent"
	case CardPresent:
		return "present"
	case CardError:
		return "error"
	case CardRestricted:
		return "restricted"
	}
	return fmt.Sprintf("CardState(%d)", int(s))
}

// AppType is the type of a card application.
type AppType int

const (
	AppTypeUnknown AppType = iota
	AppTypeSIM
	AppTypeUSIM
	AppTypeRUIM
	AppTypeCSIM
	AppTypeISIM
)

var appTypeNames = [...]string{"unknown", "sim", "usim", "ruim", "csim", "isim"}

func appTypeFromRIL(raw int32) AppType {
	if raw < 0 || int(raw) >= len(appTypeNames) {
		return AppTypeUnknown
	}
	return AppType(raw)
}

func (t AppType) String() string {
	if t < 0 || int(t) >= len(appTypeNames) {
		return appTypeNames[0]
	}
	return appTypeNames[t]
}

// AppState is the lifecycle state of a card application.
type AppState int

const (
	AppStateUnknown AppState = iota
	AppStateDetected
	AppStatePIN
	AppStatePUK
	AppStateSubscriptionPerso
	AppStateReady
)

var appStateNames = [...]string{"unknown", "detected", "pin", "puk", "subscription_perso", "ready"}

func appStateFromRIL(raw int32) AppState {
	if raw < 0 || int(raw) >= len(appStateNames) {
		return AppStateUnknown
	}
	return AppState(raw)
}

func (s AppState) String() string {
	if s < 0 || int(s) >= len(appStateNames) {
		return appStateNames[0]
	}
	return appStateNames[s]
}

// PinState is the verification state of PIN1, PIN2 or the universal PIN.
type PinState int

const (
	PinUnknown PinState = iota
	PinEnabledNotVerified
	PinEnabledVerified
	PinDisabled
	PinEnabledBlocked
	PinEnabledPermBlocked
)

var pinStateNames = [...]string{
	"unknown",
	"enabled_not_verified",
	"enabled_verified",
	"disabled",
	"enabled_blocked",
	"enabled_perm_blocked",
}

func pinStateFromRIL(raw int32) PinState {
	if raw < 0 || int(raw) >= len(pinStateNames) {
		return PinUnknown
	}
	return PinState(raw)
}

func (s PinState) String() string {
	if s < 0 || int(s) >= len(pinStateNames) {
		return pinStateNames[0]
	}
	return pinStateNames[s]
}

// PersoSubstate is the personalisation (network/SIM lock) sub-state of an
// application in AppStateSubscriptionPerso.
type PersoSubstate int

const (
	PersoUnknown PersoSubstate = iota
	PersoInProgress
	PersoReady
	PersoSimNetwork
	PersoSimNetworkSubset
	PersoSimCorporate
	PersoSimServiceProvider
	PersoSimSim
	PersoSimNetworkPuk
	PersoSimNetworkSubsetPuk
	PersoSimCorporatePuk
	PersoSimServiceProviderPuk
	PersoSimSimPuk
	PersoRuimNetwork1
	PersoRuimNetwork2
	PersoRuimHrpd
	PersoRuimCorporate
	PersoRuimServiceProvider
	PersoRuimRuim
	PersoRuimNetwork1Puk
	PersoRuimNetwork2Puk
	PersoRuimHrpdPuk
	PersoRuimCorporatePuk
	PersoRuimServiceProviderPuk
	PersoRuimRuimPuk
)

func persoSubstateFromRIL(raw int32) PersoSubstate {
	if raw < 0 || raw > int32(PersoRuimRuimPuk) {
		return PersoUnknown
	}
	return PersoSubstate(raw)
}

// IsPUK reports whether the substate asks for a depersonalisation PUK.
func (s PersoSubstate) IsPUK() bool {
	switch s {
	case PersoSimNetworkPuk, PersoSimNetworkSubsetPuk, PersoSimCorporatePuk,
		PersoSimServiceProviderPuk, PersoSimSimPuk, PersoRuimNetwork1Puk,
		PersoRuimNetwork2Puk, PersoRuimHrpdPuk, PersoRuimCorporatePuk,
		PersoRuimServiceProviderPuk, PersoRuimRuimPuk:
		return true
	}
	return false
}
