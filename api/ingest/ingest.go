// Package ingest exposes the normalization and merge core over HTTP:
// session creation, spreadsheet upload, per-file and session-wide canonical
// dataset retrieval, and a websocket channel announcing data refreshes.
package ingest

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"ggAnalyze/internal/config"
)

// Router wires the ingest endpoints.
func (s *IngestService) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/ingest/sessions", s.CreateSessionHandler).Methods("POST")
	r.HandleFunc("/ingest/upload", s.UploadHandler).Methods("POST")
	r.HandleFunc("/ingest/files", s.ListFilesHandler).Methods("GET")
	r.HandleFunc("/ingest/files/{name}", s.DeleteFileHandler).Methods("DELETE")
	r.HandleFunc("/ingest/files/{name}/datasets", s.FileDatasetsHandler).Methods("GET")
	r.HandleFunc("/ingest/datasets", s.SessionDatasetsHandler).Methods("GET")
	r.HandleFunc("/ingest/datasets/{name}", s.SessionDatasetHandler).Methods("GET")
	r.HandleFunc("/ingest/ws", s.hub.HandleConnections)
	return r
}

// StartIngestService builds the router and serves until shutdown.
func StartIngestService(s *IngestService) {
	port := config.DefaultIngestPort
	if s.config != nil {
		switch v := s.config["port"].(type) {
		case int:
			port = v
		case float64:
			port = int(v)
		}
	}

	go s.hub.Run()

	addr := fmt.Sprintf(":%d", port)
	s.server = &http.Server{Addr: addr, Handler: s.Router()}
	log.Println("Ingest Service started on", addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Ingest Service failed: %v", err)
	}
}
