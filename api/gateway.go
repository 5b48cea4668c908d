package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"ggAnalyze/internal/config"
	"ggAnalyze/internal/logger"
	"ggAnalyze/internal/session"
)

// StartGateway serves the public entry point: health, session listing, and a
// reverse proxy in front of the ingest service.
func StartGateway(cfg map[string]interface{}, sessions *session.Manager) {
	port := config.DefaultGatewayPort
	ingestPort := config.DefaultIngestPort
	if cfg != nil {
		if v, ok := cfg["port"].(int); ok {
			port = v
		} else if f, ok := cfg["port"].(float64); ok {
			port = int(f)
		}
		if v, ok := cfg["ingest_port"].(int); ok {
			ingestPort = v
		} else if f, ok := cfg["ingest_port"].(float64); ok {
			ingestPort = int(f)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/sessions", func(w http.ResponseWriter, r *http.Request) {
		type view struct {
			ID        string    `json:"id"`
			CreatedAt time.Time `json:"created_at"`
			ExpiresAt time.Time `json:"expires_at"`
			Files     int       `json:"files"`
		}
		active := sessions.Active()
		out := make([]view, 0, len(active))
		for _, s := range active {
			out = append(out, view{
				ID:        s.ID,
				CreatedAt: s.CreatedAt,
				ExpiresAt: s.ExpiresAt,
				Files:     len(s.Registry.Files()),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)
	})
	mux.HandleFunc("/ingest/", createReverseProxy(fmt.Sprintf("http://localhost:%d", ingestPort)))

	addr := fmt.Sprintf(":%d", port)
	log.Println("Gateway started on", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Gateway failed: %v", err)
	}
}

// createReverseProxy forwards a request to the target service, logging the
// client IP for the audit trail.
func createReverseProxy(target string) http.HandlerFunc {
	u, err := url.Parse(target)
	if err != nil {
		log.Fatalf("invalid proxy target %s: %v", target, err)
	}
	proxy := httputil.NewSingleHostReverseProxy(u)
	return func(w http.ResponseWriter, r *http.Request) {
		clientIP := r.RemoteAddr
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			clientIP = xff
		}
		if logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf("proxy %s %s from %s", r.Method, r.URL.Path, clientIP))
		}
		proxy.ServeHTTP(w, r)
	}
}
