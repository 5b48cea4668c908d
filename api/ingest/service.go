package ingest

import (
	"context"
	"net/http"
	"time"

	"ggAnalyze/internal/serviceiface"
	"ggAnalyze/internal/session"
)

// IngestService hosts the spreadsheet ingestion API on its own port.
type IngestService struct {
	config   map[string]interface{}
	sessions *session.Manager
	server   *http.Server
	hub      *RefreshHub
}

func NewIngestService(cfg map[string]interface{}, sessions *session.Manager) serviceiface.Service {
	return &IngestService{
		config:   cfg,
		sessions: sessions,
		hub:      NewRefreshHub(),
	}
}

func (s *IngestService) Name() string {
	return "ingest"
}

func (s *IngestService) Start() error {
	go StartIngestService(s)
	return nil
}

func (s *IngestService) Stop() error {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}
