// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for collaborators that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "curriculum-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// TextGenConfig holds settings for the chat-completions text generator.
type TextGenConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Endpoint is the chat-completions URL.
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`

	// Model is the model identifier sent with each request and recorded in
	// path metadata.
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey authenticates against the endpoint. Usually loaded from .secrets/.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// MaxRetries is the number of retry attempts for rate-limited calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// CatalogConfig holds settings for the SQLite catalog store.
type CatalogConfig struct {
	// DataDir contains catalog/ (ingest YAML files) and index/ (the database).
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`

	// MaxResults is the default number of courses returned by a catalog query (default 200).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// CacheConfig selects the quality-score cache.
type CacheConfig struct {
	// Backend is "none", "memory" or "redis".
	Backend string `json:"backend" yaml:"backend" mapstructure:"backend"`

	// RedisAddr is host:port of the redis server.
	RedisAddr string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty" mapstructure:"redis_addr"`

	// RedisPassword is usually loaded from .secrets/.
	RedisPassword string `json:"-" yaml:"-" mapstructure:"redis_password"`

	// TTL bounds how long a cached score is reused.
	TTL time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`
}

// PathConfig holds defaults for path generation.
type PathConfig struct {
	// Currency is the ISO code used in cost analyses (default "USD").
	Currency string `json:"currency" yaml:"currency" mapstructure:"currency"`

	// MaxCoursesPerStep caps the courses selected per step (default 3).
	MaxCoursesPerStep int `json:"max_courses_per_step" yaml:"max_courses_per_step" mapstructure:"max_courses_per_step"`

	// Workers bounds concurrent scoring (default 4).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// LexiconFile optionally replaces the built-in sentiment lexicon.
	LexiconFile string `json:"lexicon_file,omitempty" yaml:"lexicon_file,omitempty" mapstructure:"lexicon_file"`

	// StageRulesFile optionally replaces the built-in stage rules.
	StageRulesFile string `json:"stage_rules_file,omitempty" yaml:"stage_rules_file,omitempty" mapstructure:"stage_rules_file"`
}

// Config groups all settings of the curriculum engine.
type Config struct {
	LogMode string        `json:"log_mode" yaml:"log_mode" mapstructure:"log_mode"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
	TextGen TextGenConfig `json:"textgen" yaml:"textgen" mapstructure:"textgen"`
	Cache   CacheConfig   `json:"cache" yaml:"cache" mapstructure:"cache"`
	Path    PathConfig    `json:"path" yaml:"path" mapstructure:"path"`
}
