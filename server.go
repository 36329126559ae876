package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"i4.energy/across/rilbridge/modem"
	"i4.energy/across/rilbridge/ril"
	"i4.energy/across/rilbridge/uicc"
)

// RIL is what the server reads from the running extension
type RIL interface {
	RadioState() ril.RadioState
	SessionState() string
	Version() int32
	Subscription() uicc.Subscription
	GetIccCardStatus(ctx context.Context) (*uicc.CardStatus, error)
	GetIMSI(ctx context.Context) (string, error)
}

// Server exposes the RIL state over HTTP
type Server struct {
	Logger logrus.FieldLogger
	RIL    RIL
}

type statusResponse struct {
	RadioState   string               `json:"radio_state"`
	SessionState string               `json:"session_state"`
	RildVersion  int32                `json:"rild_version"`
	Subscription subscriptionResponse `json:"subscription"`
}

type subscriptionResponse struct {
	Resolved             bool   `json:"resolved"`
	AID                  string `json:"aid"`
	USIM                 bool   `json:"usim"`
	PreferredNetworkType int    `json:"preferred_network_type"`
}

type applicationResponse struct {
	Type  string `json:"type"`
	State string `json:"state"`
	AID   string `json:"aid"`
	Label string `json:"label"`
	Pin1  string `json:"pin1"`
	Pin2  string `json:"pin2"`
}

type cardStatusResponse struct {
	CardState         string                `json:"card_state"`
	UniversalPinState string                `json:"universal_pin_state"`
	GsmUmtsIndex      int                   `json:"gsm_umts_index"`
	CdmaIndex         int                   `json:"cdma_index"`
	ImsIndex          int                   `json:"ims_index"`
	Applications      []applicationResponse `json:"applications"`
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/status", s.handleStatus)
	router.GET("/sim/status", s.handleCardStatus)
	router.GET("/sim/imsi", s.handleIMSI)
	return router
}

func (s *Server) sendError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var errno ril.Errno
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	case errors.Is(err, modem.ErrAlreadyClosed):
		status = http.StatusServiceUnavailable
	case errors.As(err, &errno):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"message": err.Error()})
}

func (s *Server) handleStatus(c *gin.Context) {
	sub := s.RIL.Subscription()
	c.JSON(http.StatusOK, statusResponse{
		RadioState:   s.RIL.RadioState().String(),
		SessionState: s.RIL.SessionState(),
		RildVersion:  s.RIL.Version(),
		Subscription: subscriptionResponse{
			Resolved:             sub.Resolved,
			AID:                  sub.AID,
			USIM:                 sub.IsUSIM,
			PreferredNetworkType: sub.PreferredNetworkType,
		},
	})
}

func (s *Server) handleCardStatus(c *gin.Context) {
	status, err := s.RIL.GetIccCardStatus(c.Request.Context())
	if err != nil {
		s.Logger.WithError(err).Error("Failed to query card status")
		s.sendError(c, err)
		return
	}

	resp := cardStatusResponse{
		CardState:         status.CardState.String(),
		UniversalPinState: status.UniversalPinState.String(),
		GsmUmtsIndex:      status.GsmUmtsSubscriptionAppIndex,
		CdmaIndex:         status.CdmaSubscriptionAppIndex,
		ImsIndex:          status.ImsSubscriptionAppIndex,
		Applications:      make([]applicationResponse, 0, len(status.Applications)),
	}
	for _, app := range status.Applications {
		resp.Applications = append(resp.Applications, applicationResponse{
			Type:  app.Type.String(),
			State: app.State.String(),
			AID:   app.AID,
			Label: app.Label,
			Pin1:  app.Pin1.String(),
			Pin2:  app.Pin2.String(),
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleIMSI(c *gin.Context) {
	imsi, err := s.RIL.GetIMSI(c.Request.Context())
	if err != nil {
		s.Logger.WithError(err).Error("Failed to read IMSI")
		s.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imsi": imsi})
}
