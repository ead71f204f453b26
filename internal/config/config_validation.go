// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Defaults applied to fields left empty by every configuration source.
const (
	DefaultHTTPAddress     = "localhost:8080"
	DefaultRequestTimeout  = 30 * time.Second
	DefaultProblemTypeBase = "https://api.secdev.example.com/errors/"
	DefaultLogLevel        = "info"
	DefaultVersion         = "0.1.0"
	DefaultTokenIssuer     = "task-tracker"
	DefaultAuditBufferSize = 1024
	DefaultAuditBatchSize  = 100
	DefaultAuditFlush      = time.Second
	DefaultUploadDir       = "uploads"

	DefaultRateLimitHealth = 100
	DefaultRateLimitCreate = 200
	DefaultRateLimitRead   = 300
	DefaultRateLimitWindow = time.Minute
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.RateLimit.Health == 0 {
		cfg.Server.RateLimit.Health = DefaultRateLimitHealth
	}
	if cfg.Server.RateLimit.Create == 0 {
		cfg.Server.RateLimit.Create = DefaultRateLimitCreate
	}
	if cfg.Server.RateLimit.Read == 0 {
		cfg.Server.RateLimit.Read = DefaultRateLimitRead
	}
	if cfg.Server.RateLimit.Window == 0 {
		cfg.Server.RateLimit.Window = DefaultRateLimitWindow
	}
	if cfg.App.ProblemTypeBase == "" {
		cfg.App.ProblemTypeBase = DefaultProblemTypeBase
	}
	if !strings.HasSuffix(cfg.App.ProblemTypeBase, "/") {
		cfg.App.ProblemTypeBase += "/"
	}
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = DefaultLogLevel
	}
	if cfg.App.Version == "" {
		cfg.App.Version = DefaultVersion
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = DriverMemory
	}
	if cfg.Storage.UploadDir == "" {
		cfg.Storage.UploadDir = DefaultUploadDir
	}
	if cfg.Audit.Sink == "" {
		cfg.Audit.Sink = AuditSinkLog
	}
	if cfg.Audit.BufferSize == 0 {
		cfg.Audit.BufferSize = DefaultAuditBufferSize
	}
	if cfg.Audit.BatchSize == 0 {
		cfg.Audit.BatchSize = DefaultAuditBatchSize
	}
	if cfg.Audit.FlushInterval == 0 {
		cfg.Audit.FlushInterval = DefaultAuditFlush
	}
	if cfg.Audit.Retention == 0 {
		cfg.Audit.Retention = MinAuditRetention
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of
// the ErrInvalid*Configs sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout < 0 {
		return ErrInvalidServerConfigs
	}
	if cfg.Server.RateLimit.Window <= 0 {
		return fmt.Errorf("%w: rate limit window must be positive", ErrInvalidServerConfigs)
	}

	if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidAppConfigs, cfg.App.LogLevel)
	}
	if u, err := url.Parse(cfg.App.ProblemTypeBase); err != nil || !u.IsAbs() {
		return fmt.Errorf("%w: problem type base must be an absolute URI", ErrInvalidAppConfigs)
	}

	switch cfg.Storage.DB.Driver {
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if cfg.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: driver %s requires a DSN", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
		}
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	switch cfg.Audit.Sink {
	case AuditSinkLog, AuditSinkDB:
	case AuditSinkHTTP:
		if u, err := url.Parse(cfg.Audit.Endpoint); cfg.Audit.Endpoint == "" || err != nil || !u.IsAbs() {
			return fmt.Errorf("%w: http sink requires an absolute endpoint URL", ErrInvalidAuditConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown sink %q", ErrInvalidAuditConfigs, cfg.Audit.Sink)
	}

	if cfg.Audit.Retention < MinAuditRetention {
		return fmt.Errorf("%w: retention %s is below the %s minimum", ErrInvalidAuditConfigs, cfg.Audit.Retention, MinAuditRetention)
	}
	if cfg.Audit.BufferSize < 1 || cfg.Audit.BatchSize < 1 || cfg.Audit.BatchSize > cfg.Audit.BufferSize {
		return fmt.Errorf("%w: batch size must be between 1 and the buffer size", ErrInvalidAuditConfigs)
	}
	if cfg.Audit.FlushInterval < 0 {
		return fmt.Errorf("%w: negative flush interval", ErrInvalidAuditConfigs)
	}

	return nil
}
