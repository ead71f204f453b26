package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags. Durations
// are accepted as strings ("30s") or as nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey    string `json:"token_sign_key"`
		TokenIssuer     string `json:"token_issuer"`
		ProblemTypeBase string `json:"problem_type_base"`
		LogLevel        string `json:"log_level"`
		Version         string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
		UploadDir string `json:"upload_dir"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
		RateLimit      struct {
			Health int      `json:"health"`
			Create int      `json:"create"`
			Read   int      `json:"read"`
			Window Duration `json:"window"`
		} `json:"rate_limit,omitempty"`
	} `json:"server,omitempty"`

	Audit struct {
		Sink          string   `json:"sink"`
		Endpoint      string   `json:"endpoint"`
		BufferSize    int      `json:"buffer_size"`
		BatchSize     int      `json:"batch_size"`
		FlushInterval Duration `json:"flush_interval"`
		Retention     Duration `json:"retention"`
	} `json:"audit,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:    jsonCfg.App.TokenSignKey,
			TokenIssuer:     jsonCfg.App.TokenIssuer,
			ProblemTypeBase: jsonCfg.App.ProblemTypeBase,
			LogLevel:        jsonCfg.App.LogLevel,
			Version:         jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
			UploadDir: jsonCfg.Storage.UploadDir,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			RateLimit: RateLimit{
				Health: jsonCfg.Server.RateLimit.Health,
				Create: jsonCfg.Server.RateLimit.Create,
				Read:   jsonCfg.Server.RateLimit.Read,
				Window: time.Duration(jsonCfg.Server.RateLimit.Window),
			},
		},
		Audit: Audit{
			Sink:          jsonCfg.Audit.Sink,
			Endpoint:      jsonCfg.Audit.Endpoint,
			BufferSize:    jsonCfg.Audit.BufferSize,
			BatchSize:     jsonCfg.Audit.BatchSize,
			FlushInterval: time.Duration(jsonCfg.Audit.FlushInterval),
			Retention:     time.Duration(jsonCfg.Audit.Retention),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
