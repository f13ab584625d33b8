package service

import (
	"scout-exchange/internal/gateway"
	"scout-exchange/internal/service/session"
)

type Services struct {
	Gateway  gateway.Gateway
	Sessions *session.Manager
}

func NewServices(gw gateway.Gateway) *Services {
	return &Services{
		Gateway:  gw,
		Sessions: session.NewManager(gw),
	}
}

func (s *Services) Close() {
	s.Sessions.Close()
	_ = s.Gateway.Close()
}
