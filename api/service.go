package api

import (
	"ggAnalyze/internal/serviceiface"
	"ggAnalyze/internal/session"
)

// GatewayService runs the public HTTP entry point.
type GatewayService struct {
	config   map[string]interface{}
	sessions *session.Manager
}

func NewGatewayService(cfg map[string]interface{}, sessions *session.Manager) serviceiface.Service {
	return &GatewayService{config: cfg, sessions: sessions}
}

func (s *GatewayService) Name() string {
	return "gateway"
}

func (s *GatewayService) Start() error {
	go StartGateway(s.config, s.sessions)
	return nil
}

func (s *GatewayService) Stop() error {
	return nil
}
