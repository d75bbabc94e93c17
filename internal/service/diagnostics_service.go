package service

import (
	"context"
	"time"

	"studentportal/internal/cache"
	"studentportal/internal/config"
	"studentportal/internal/db"
)

const diagnosticsTimeout = 3 * time.Second

// Report is the store diagnostics payload. Probing never fails; problems are
// described in the fields.
type Report struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
	Cache            string   `json:"cache"`
}

// DiagnosticsService reports store and cache status.
type DiagnosticsService interface {
	Report(ctx context.Context) Report
}

type diagnosticsService struct {
	store *db.Mongo
	cache *cache.Client
	cfg   *config.Config
}

// NewDiagnosticsService creates a diagnostics service. store may be nil when
// the database could not be initialized at startup.
func NewDiagnosticsService(store *db.Mongo, cache *cache.Client, cfg *config.Config) DiagnosticsService {
	return &diagnosticsService{store: store, cache: cache, cfg: cfg}
}

func (s *diagnosticsService) Report(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, diagnosticsTimeout)
	defer cancel()

	r := Report{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		DatabaseURL:      setFlag(s.cfg.DatabaseURLSet),
		DatabaseName:     setFlag(s.cfg.DatabaseNameSet),
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}

	st := s.store.Status(ctx)
	switch {
	case !st.Initialized:
		r.Database = "⚠️  Available but not initialized"
	case !st.Connected:
		r.Database = "⚠️  Connected but Error: " + st.Error
	default:
		r.Database = "✅ Connected & Working"
		r.ConnectionStatus = "Connected"
		r.Collections = st.Collections
	}

	if err := s.cache.Ping(ctx); err != nil {
		r.Cache = "⚠️  " + err.Error()
	} else {
		r.Cache = "✅ Connected"
	}
	return r
}

func setFlag(set bool) string {
	if set {
		return "✅ Set"
	}
	return "❌ Not Set"
}
