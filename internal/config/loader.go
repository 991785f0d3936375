package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by Defaults.
type Config struct {
	Addr          string `json:"addr" yaml:"addr" toml:"addr"`
	ModelsDir     string `json:"models_dir" yaml:"models_dir" toml:"models_dir"`
	MaxQueueDepth int    `json:"max_queue_depth" yaml:"max_queue_depth" toml:"max_queue_depth"`
	MaxConcurrent int    `json:"max_concurrent" yaml:"max_concurrent" toml:"max_concurrent"`
	MaxWaitMS     int    `json:"max_wait_ms" yaml:"max_wait_ms" toml:"max_wait_ms"`
	MaxLoaded     int    `json:"max_loaded" yaml:"max_loaded" toml:"max_loaded"`
	MaxBodyBytes  int64  `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	// Seconds; 0 disables the per-request timeout.
	PredictTimeout int64    `json:"predict_timeout_seconds" yaml:"predict_timeout_seconds" toml:"predict_timeout_seconds"`
	LogLevel       string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat      string   `json:"log_format" yaml:"log_format" toml:"log_format"`
	CORSEnabled    bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins    []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	// Bindings maps disease id to model id, overriding artifact defaults.
	Bindings map[string]string `json:"bindings" yaml:"bindings" toml:"bindings"`
}

// Defaults returns the configuration used when nothing is specified.
func Defaults() Config {
	return Config{
		Addr:          ":8080",
		ModelsDir:     "./models",
		MaxQueueDepth: 32,
		MaxConcurrent: 4,
		MaxWaitMS:     5000,
		MaxBodyBytes:  1 << 20,
		LogLevel:      "info",
		LogFormat:     "console",
	}
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Merge overlays the non-zero fields of over onto base.
func Merge(base, over Config) Config {
	if over.Addr != "" {
		base.Addr = over.Addr
	}
	if over.ModelsDir != "" {
		base.ModelsDir = over.ModelsDir
	}
	if over.MaxQueueDepth > 0 {
		base.MaxQueueDepth = over.MaxQueueDepth
	}
	if over.MaxConcurrent > 0 {
		base.MaxConcurrent = over.MaxConcurrent
	}
	if over.MaxWaitMS > 0 {
		base.MaxWaitMS = over.MaxWaitMS
	}
	if over.MaxLoaded > 0 {
		base.MaxLoaded = over.MaxLoaded
	}
	if over.MaxBodyBytes > 0 {
		base.MaxBodyBytes = over.MaxBodyBytes
	}
	if over.PredictTimeout > 0 {
		base.PredictTimeout = over.PredictTimeout
	}
	if over.LogLevel != "" {
		base.LogLevel = over.LogLevel
	}
	if over.LogFormat != "" {
		base.LogFormat = over.LogFormat
	}
	if over.CORSEnabled {
		base.CORSEnabled = true
	}
	if len(over.CORSOrigins) > 0 {
		base.CORSOrigins = append([]string(nil), over.CORSOrigins...)
	}
	if len(over.Bindings) > 0 {
		if base.Bindings == nil {
			base.Bindings = make(map[string]string, len(over.Bindings))
		}
		for k, v := range over.Bindings {
			base.Bindings[k] = v
		}
	}
	return base
}

// FromEnv reads MEDPREDICT_* variables through lookup (os.LookupEnv in production).
// Unparseable numbers are reported rather than ignored.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	var cfg Config
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	var errs []string
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, key)
				return
			}
			*dst = n
		}
	}
	str("MEDPREDICT_ADDR", &cfg.Addr)
	str("MEDPREDICT_MODELS_DIR", &cfg.ModelsDir)
	str("MEDPREDICT_LOG_LEVEL", &cfg.LogLevel)
	str("MEDPREDICT_LOG_FORMAT", &cfg.LogFormat)
	num("MEDPREDICT_MAX_QUEUE_DEPTH", &cfg.MaxQueueDepth)
	num("MEDPREDICT_MAX_CONCURRENT", &cfg.MaxConcurrent)
	num("MEDPREDICT_MAX_WAIT_MS", &cfg.MaxWaitMS)
	num("MEDPREDICT_MAX_LOADED", &cfg.MaxLoaded)
	var timeout int
	num("MEDPREDICT_PREDICT_TIMEOUT_SECONDS", &timeout)
	cfg.PredictTimeout = int64(timeout)
	if v, ok := lookup("MEDPREDICT_CORS_ORIGINS"); ok {
		cfg.CORSOrigins = SplitCSV(v)
		cfg.CORSEnabled = len(cfg.CORSOrigins) > 0
	}
	if len(errs) > 0 {
		return cfg, fmt.Errorf("invalid integer in %s", strings.Join(errs, ", "))
	}
	return cfg, nil
}

// MaxWait returns the admission timeout as a duration.
func (c Config) MaxWait() time.Duration { return time.Duration(c.MaxWaitMS) * time.Millisecond }

// SplitCSV splits a comma separated list, dropping blanks.
func SplitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
