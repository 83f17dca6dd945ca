package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and the
// string-friendly [Duration] wrapper, so a config file can spell durations
// as "30s" or "24h".
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		BaseURL       string   `json:"base_url"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		Remote struct {
			DSN           string `json:"dsn"`
			RedisAddr     string `json:"redis_addr"`
			RedisPassword string `json:"redis_password"`
			RedisDB       int    `json:"redis_db"`
			MediaEndpoint string `json:"media_endpoint"`
			MediaToken    string `json:"media_token"`
		} `json:"remote,omitempty"`

		Local struct {
			Path         string   `json:"path"`
			PollInterval Duration `json:"poll_interval"`
		} `json:"local,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		RelayEndpoint      string   `json:"relay_endpoint"`
		RelayRecipient     string   `json:"relay_recipient"`
		ClassifierEndpoint string   `json:"classifier_endpoint"`
		RequestTimeout     Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`
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
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			BaseURL:       jsonCfg.App.BaseURL,
			Version:       jsonCfg.App.Version,
		},
		Storage: Storage{
			Remote: Remote{
				DSN:           jsonCfg.Storage.Remote.DSN,
				RedisAddr:     jsonCfg.Storage.Remote.RedisAddr,
				RedisPassword: jsonCfg.Storage.Remote.RedisPassword,
				RedisDB:       jsonCfg.Storage.Remote.RedisDB,
				MediaEndpoint: jsonCfg.Storage.Remote.MediaEndpoint,
				MediaToken:    jsonCfg.Storage.Remote.MediaToken,
			},
			Local: Local{
				Path:         jsonCfg.Storage.Local.Path,
				PollInterval: time.Duration(jsonCfg.Storage.Local.PollInterval),
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			RelayEndpoint:      jsonCfg.Adapter.RelayEndpoint,
			RelayRecipient:     jsonCfg.Adapter.RelayRecipient,
			ClassifierEndpoint: jsonCfg.Adapter.ClassifierEndpoint,
			RequestTimeout:     time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as plain nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		*d = Duration(parsed)
		return nil
	default:
		return fmt.Errorf("invalid duration value: %v", v)
	}
}
