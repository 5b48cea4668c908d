package appmanager

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"ggAnalyze/api"
	"ggAnalyze/api/ingest"
	"ggAnalyze/internal/config"
	"ggAnalyze/internal/jobs"
	"ggAnalyze/internal/logger"
	"ggAnalyze/internal/serviceiface"
	"ggAnalyze/internal/session"
)

// sessions is shared by every service that needs the per-session upload
// registries (ingest, jobs, gateway).
var sessions *session.Manager

// Sessions exposes the shared manager, initializing it with defaults when
// services.yaml never configured one.
func Sessions() *session.Manager {
	if sessions == nil {
		sessions = session.NewManager(config.DefaultUploadDir, config.DefaultSessionTTLMinutes*time.Minute)
	}
	return sessions
}

func configureSessions(cfg map[string]interface{}) {
	dir := config.DefaultUploadDir
	ttl := time.Duration(config.DefaultSessionTTLMinutes) * time.Minute
	if cfg != nil {
		if v, ok := cfg["upload_dir"].(string); ok && v != "" {
			dir = v
		}
		switch v := cfg["session_ttl_minutes"].(type) {
		case int:
			ttl = time.Duration(v) * time.Minute
		case float64:
			ttl = time.Duration(int(v)) * time.Minute
		}
	}
	sessions = session.NewManager(dir, ttl)
}

var serviceConstructors = map[string]func(map[string]interface{}) serviceiface.Service{
	"logger": func(cfg map[string]interface{}) serviceiface.Service {
		return logger.NewLoggerService(cfg)
	},
	"ingest": func(cfg map[string]interface{}) serviceiface.Service {
		configureSessions(cfg)
		return ingest.NewIngestService(cfg, Sessions())
	},
	"jobs": func(cfg map[string]interface{}) serviceiface.Service {
		return jobs.NewCronService(cfg, Sessions())
	},
	"gateway": func(cfg map[string]interface{}) serviceiface.Service {
		return api.NewGatewayService(cfg, Sessions())
	},
}

// ------------------- MANAGER -------------------

type AppManager struct {
	services []serviceiface.Service
	mu       sync.Mutex
}

func NewAppManager() *AppManager {
	return &AppManager{
		services: make([]serviceiface.Service, 0),
	}
}

func (am *AppManager) RegisterService(s serviceiface.Service) {
	am.mu.Lock()
	defer am.mu.Unlock()
	am.services = append(am.services, s)
}

func (am *AppManager) StartAll() error {
	am.mu.Lock()
	defer am.mu.Unlock()
	for _, service := range am.services {
		fmt.Println("Starting service:", service.Name())
		if err := service.Start(); err != nil {
			return fmt.Errorf("failed to start service %s: %w", service.Name(), err)
		}
	}
	return nil
}

func (am *AppManager) StopAll() error {
	am.mu.Lock()
	defer am.mu.Unlock()
	for i := len(am.services) - 1; i >= 0; i-- {
		svc := am.services[i]
		if err := svc.Stop(); err != nil {
			return fmt.Errorf("failed to stop service %s: %w", svc.Name(), err)
		}
	}
	return nil
}

func (am *AppManager) GetServiceByName(name string) serviceiface.Service {
	for _, svc := range am.services {
		if svc.Name() == name {
			return svc
		}
	}
	return nil
}

// ------------------- YAML CONFIG -------------------

type ServiceSequencer struct {
	Services []ServiceConfig `yaml:"services"`
}

type ServiceConfig struct {
	Name       string                 `yaml:"name"`
	StartOrder int                    `yaml:"start_order"`
	Config     map[string]interface{} `yaml:"config"`
}

func LoadServiceSequence(path string) ([]ServiceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var seq ServiceSequencer
	if err := yaml.Unmarshal(data, &seq); err != nil {
		return nil, err
	}
	sort.Slice(seq.Services, func(i, j int) bool {
		return seq.Services[i].StartOrder < seq.Services[j].StartOrder
	})
	return seq.Services, nil
}

func (am *AppManager) AutoRegisterServices(configs []ServiceConfig) {
	for _, svc := range configs {
		if constructor, ok := serviceConstructors[svc.Name]; ok {
			am.RegisterService(constructor(svc.Config))
		}
	}
	for _, svc := range am.services {
		if l, ok := svc.(*logger.LoggerService); ok {
			logger.SetGlobalLogger(l)
			break
		}
	}
}
