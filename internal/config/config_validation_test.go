// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *StructuredConfig {
	cfg := &StructuredConfig{}
	cfg.applyDefaults()
	return cfg
}

func TestApplyDefaults_AppendsSlashToProblemTypeBase(t *testing.T) {
	cfg := &StructuredConfig{App: App{ProblemTypeBase: "https://errors.example.com/problems"}}
	cfg.applyDefaults()
	assert.Equal(t, "https://errors.example.com/problems/", cfg.App.ProblemTypeBase)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &StructuredConfig{
		Server: Server{HTTPAddress: "0.0.0.0:9999", RequestTimeout: 5 * time.Second},
		Audit:  Audit{BatchSize: 7},
	}
	cfg.applyDefaults()
	assert.Equal(t, "0.0.0.0:9999", cfg.Server.HTTPAddress)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 7, cfg.Audit.BatchSize)
}

func TestApplyDefaults_RateLimit(t *testing.T) {
	cfg := &StructuredConfig{Server: Server{RateLimit: RateLimit{Create: -1, Read: 5}}}
	cfg.applyDefaults()

	assert.Equal(t, DefaultRateLimitHealth, cfg.Server.RateLimit.Health)
	assert.Equal(t, -1, cfg.Server.RateLimit.Create)
	assert.Equal(t, 5, cfg.Server.RateLimit.Read)
	assert.Equal(t, time.Minute, cfg.Server.RateLimit.Window)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *StructuredConfig) {},
		},
		{
			name:    "negative rate limit window",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.RateLimit.Window = -time.Second },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "unknown log level",
			mutate:  func(cfg *StructuredConfig) { cfg.App.LogLevel = "chatty" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "relative problem type base",
			mutate:  func(cfg *StructuredConfig) { cfg.App.ProblemTypeBase = "/errors/" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "unknown driver",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.Driver = "mysql" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "postgres without dsn",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.Driver = DriverPostgres },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "sqlite with dsn",
			mutate: func(cfg *StructuredConfig) {
				cfg.Storage.DB.Driver = DriverSQLite
				cfg.Storage.DB.DSN = "file:tracker.db"
			},
		},
		{
			name:    "http sink without endpoint",
			mutate:  func(cfg *StructuredConfig) { cfg.Audit.Sink = AuditSinkHTTP },
			wantErr: ErrInvalidAuditConfigs,
		},
		{
			name: "http sink with endpoint",
			mutate: func(cfg *StructuredConfig) {
				cfg.Audit.Sink = AuditSinkHTTP
				cfg.Audit.Endpoint = "https://audit.example.com/entries"
			},
		},
		{
			name:    "unknown sink",
			mutate:  func(cfg *StructuredConfig) { cfg.Audit.Sink = "kafka" },
			wantErr: ErrInvalidAuditConfigs,
		},
		{
			name:    "retention below minimum",
			mutate:  func(cfg *StructuredConfig) { cfg.Audit.Retention = 30 * 24 * time.Hour },
			wantErr: ErrInvalidAuditConfigs,
		},
		{
			name:    "batch larger than buffer",
			mutate:  func(cfg *StructuredConfig) { cfg.Audit.BatchSize = cfg.Audit.BufferSize + 1 },
			wantErr: ErrInvalidAuditConfigs,
		},
		{
			name:    "negative request timeout",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.RequestTimeout = -time.Second },
			wantErr: ErrInvalidServerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
