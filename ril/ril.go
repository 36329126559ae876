// Package ril holds the rild wire constants and the small value types
// shared by every layer above the parcel codec.
package ril

import "fmt"

// Response types, the first integer of every frame coming from rild.
const (
	ResponseSolicited   int32 = 0
	ResponseUnsolicited int32 = 1
)

// Request codes.
const (
	RequestGetSimStatus              int32 = 1
	RequestEnterSimPin               int32 = 2
	RequestEnterSimPuk               int32 = 3
	RequestEnterSimPin2              int32 = 4
	RequestEnterSimPuk2              int32 = 5
	RequestChangeSimPin              int32 = 6
	RequestChangeSimPin2             int32 = 7
	RequestGetIMSI                   int32 = 11
	RequestRadioPower                int32 = 23
	RequestSimIO                     int32 = 28
	RequestQueryFacilityLock         int32 = 42
	RequestSetFacilityLock           int32 = 43
	RequestSetNetworkSelectionManual int32 = 47
	RequestSetPreferredNetworkType   int32 = 73
	RequestCdmaSetSubscriptionSource int32 = 77
	RequestGetCellInfoList           int32 = 109
	RequestSetUnsolCellInfoListRate  int32 = 110
	RequestSetInitialAttachApn       int32 = 111
	RequestGetUiccSubscription       int32 = 10120 // deprecated vendor request
	RequestGetDataSubscription       int32 = 10121 // deprecated vendor request
	RequestSetSubscriptionMode       int32 = 10122
)

// Unsolicited response codes.
const (
	UnsolRadioStateChanged             int32 = 1000
	UnsolCallStateChanged              int32 = 1001
	UnsolVoiceNetworkStateChanged      int32 = 1002
	UnsolSignalStrength                int32 = 1009
	UnsolDataCallListChanged           int32 = 1010
	UnsolSimStatusChanged              int32 = 1019
	UnsolEnterEmergencyCallbackMode    int32 = 1024
	UnsolCdmaSubscriptionSourceChanged int32 = 1031
	UnsolCdmaPrlChanged                int32 = 1032
	UnsolExitEmergencyCallbackMode     int32 = 1033
	UnsolRilConnected                  int32 = 1034
	UnsolVoiceRadioTechChanged         int32 = 1035
)

var requestNames = map[int32]string{
	RequestGetSimStatus:              "GET_SIM_STATUS",
	RequestEnterSimPin:               "ENTER_SIM_PIN",
	RequestEnterSimPuk:               "ENTER_SIM_PUK",
	RequestEnterSimPin2:              "ENTER_SIM_PIN2",
	RequestEnterSimPuk2:              "ENTER_SIM_PUK2",
	RequestChangeSimPin:              "CHANGE_SIM_PIN",
	RequestChangeSimPin2:             "CHANGE_SIM_PIN2",
	RequestGetIMSI:                   "GET_IMSI",
	RequestRadioPower:                "RADIO_POWER",
	RequestSimIO:                     "SIM_IO",
	RequestQueryFacilityLock:         "QUERY_FACILITY_LOCK",
	RequestSetFacilityLock:           "SET_FACILITY_LOCK",
	RequestSetNetworkSelectionManual: "SET_NETWORK_SELECTION_MANUAL",
	RequestSetPreferredNetworkType:   "SET_PREFERRED_NETWORK_TYPE",
	RequestCdmaSetSubscriptionSource: "CDMA_SET_SUBSCRIPTION_SOURCE",
	RequestGetCellInfoList:           "GET_CELL_INFO_LIST",
	RequestSetUnsolCellInfoListRate:  "SET_UNSOL_CELL_INFO_LIST_RATE",
	RequestSetInitialAttachApn:       "SET_INITIAL_ATTACH_APN",
	RequestGetUiccSubscription:       "GET_UICC_SUBSCRIPTION",
	RequestGetDataSubscription:       "GET_DATA_SUBSCRIPTION",
	RequestSetSubscriptionMode:       "SET_SUBSCRIPTION_MODE",
}

var unsolNames = map[int32]string{
	UnsolRadioStateChanged:             "UNSOL_RESPONSE_RADIO_STATE_CHANGED",
	UnsolCallStateChanged:              "UNSOL_RESPONSE_CALL_STATE_CHANGED",
	UnsolVoiceNetworkStateChanged:      "UNSOL_RESPONSE_VOICE_NETWORK_STATE_CHANGED",
	UnsolSignalStrength:                "UNSOL_SIGNAL_STRENGTH",
	UnsolDataCallListChanged:           "UNSOL_DATA_CALL_LIST_CHANGED",
	UnsolSimStatusChanged:              "UNSOL_RESPONSE_SIM_STATUS_CHANGED",
	UnsolEnterEmergencyCallbackMode:    "UNSOL_ENTER_EMERGENCY_CALLBACK_MODE",
	UnsolCdmaSubscriptionSourceChanged: "UNSOL_CDMA_SUBSCRIPTION_SOURCE_CHANGED",
	UnsolCdmaPrlChanged:                "UNSOL_CDMA_PRL_CHANGED",
	UnsolExitEmergencyCallbackMode:     "UNSOL_EXIT_EMERGENCY_CALLBACK_MODE",
	UnsolRilConnected:                  "UNSOL_RIL_CONNECTED",
	UnsolVoiceRadioTechChanged:         "UNSOL_VOICE_RADIO_TECH_CHANGED",
}

// RequestName returns the rild name of a request code.
func RequestName(code int32) string {
	if name, ok := requestNames[code]; ok {
		return name
	}
	return fmt.Sprintf("<unknown request %d>", code)
}

// UnsolName returns the rild name of an unsolicited response code.
func UnsolName(code int32) string {
	if name, ok := unsolNames[code]; ok {
		return name
	}
	return fmt.Sprintf("<unknown unsol %d>", code)
}

// PhoneType is the technology family of the phone object driving the RIL.
type PhoneType int

const (
	PhoneNone PhoneType = 0
	PhoneGSM  PhoneType = 1
	PhoneCDMA PhoneType = 2
)

func (t PhoneType) String() string {
	switch t {
	case PhoneGSM:
		return "gsm"
	case PhoneCDMA:
		return "cdma"
	default:
		return "none"
	}
}

// ParsePhoneType maps a config string onto a PhoneType.
func ParsePhoneType(s string) (PhoneType, error) {
	switch s {
	case "gsm", "GSM":
		return PhoneGSM, nil
	case "cdma", "CDMA":
		return PhoneCDMA, nil
	case "", "none":
		return PhoneNone, nil
	}
	return PhoneNone, fmt.Errorf("unknown phone type %q", s)
}
