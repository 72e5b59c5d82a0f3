package datamanager

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/semquery/errors"
	"github.com/c360/semquery/pkg/cache"
	"github.com/c360/semquery/pkg/retry"
	"github.com/c360/semquery/rdf"
)

// Deps holds the dependencies for creating a Manager.
type Deps struct {
	Config Config

	// Logger receives structured execution logs. Optional.
	Logger *slog.Logger

	// Registry receives query metrics. Optional.
	Registry *prometheus.Registry

	// Client issues endpoint requests. Optional; defaults to a client
	// bounded by Config.EndpointTimeout.
	Client *http.Client
}

// Manager implements Loader over local graphs and remote endpoints.
type Manager struct {
	cfg     Config
	logger  *slog.Logger
	metrics *Metrics
	client  *http.Client
	retry   retry.Config

	// results caches remote responses; nil when CacheTTL is zero.
	results cache.Cache[*rdf.Graph]
}

var _ Loader = (*Manager)(nil)

// NewManager creates a query execution manager from its dependencies.
func NewManager(deps Deps) (*Manager, error) {
	cfg := deps.Config
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var metrics *Metrics
	if deps.Registry != nil {
		var err error
		metrics, err = newMetrics(deps.Registry)
		if err != nil {
			return nil, errors.WrapFatal(err, "Manager", "NewManager", "metrics registration")
		}
	}

	client := deps.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.EndpointTimeout}
	}

	m := &Manager{
		cfg:     cfg,
		logger:  logger.With("component", "datamanager"),
		metrics: metrics,
		client:  client,
		retry: retry.Config{
			MaxAttempts:  cfg.MaxRetries,
			InitialDelay: cfg.RetryInitialDelay,
			MaxDelay:     cfg.EndpointTimeout,
			Multiplier:   2.0,
			AddJitter:    true,
		},
	}
	if cfg.CacheTTL > 0 {
		m.results = cache.NewTTL[*rdf.Graph](cfg.CacheTTL)
	}
	return m, nil
}

func (m *Manager) observe(source, form string, start time.Time, err error) {
	m.metrics.observeQuery(source, form, start, err)
	if err != nil {
		m.logger.Warn("query failed",
			"source", source,
			"form", form,
			"duration", time.Since(start),
			"error", err)
	} else {
		m.logger.Debug("query executed",
			"source", source,
			"form", form,
			"duration", time.Since(start))
	}
}
