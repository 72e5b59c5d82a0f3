package datamanager

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semquery/errors"
)

func TestConfigSetDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()

	assert.Equal(t, 30*time.Second, cfg.EndpointTimeout)
	assert.Equal(t, "application/n-triples", cfg.Accept)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Zero(t, cfg.CacheTTL)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults valid", Config{}, false},
		{"negative timeout", Config{EndpointTimeout: -time.Second}, true},
		{"negative retries", Config{MaxRetries: -1}, true},
		{"negative cache ttl", Config{CacheTTL: -time.Minute}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsInvalid(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewManagerRejectsInvalidConfig(t *testing.T) {
	_, err := NewManager(Deps{Config: Config{MaxRetries: -1}})
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestNewManagerRegistersMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewManager(Deps{Registry: reg})
	require.NoError(t, err)

	// Registering the same collectors twice on one registry fails.
	_, err = NewManager(Deps{Registry: reg})
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
}
