package model

import "time"

// Config is the complete greenlie configuration
type Config struct {
	Store       StoreConfig       `yaml:"store" mapstructure:"store"`
	Facts       FactsConfig       `yaml:"facts" mapstructure:"facts"`
	Relevance   RelevanceConfig   `yaml:"relevance" mapstructure:"relevance"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// StoreConfig selects the persistence backend
type StoreConfig struct {
	Engine string `yaml:"engine" mapstructure:"engine"` // json or sqlite
	Path   string `yaml:"path" mapstructure:"path"`     // directory for json, database file for sqlite
}

// FactsConfig points at the reference statement catalog
type FactsConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // empty uses the embedded catalog
}

// RelevanceConfig drives the keyword heuristic of the dynamic evaluation path
type RelevanceConfig struct {
	// Patterns maps a criterion identifier to regex fragments; any match makes
	// the criterion relevant to the statement
	Patterns map[string][]string `yaml:"patterns" mapstructure:"patterns"`

	// AlwaysRelevant criteria skip the keyword gate
	AlwaysRelevant []string `yaml:"always_relevant" mapstructure:"always_relevant"`

	// EnforcementSourceTypes make enforcement_power relevant
	EnforcementSourceTypes []string `yaml:"enforcement_source_types" mapstructure:"enforcement_source_types"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr              string        `yaml:"addr" mapstructure:"addr"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `yaml:"burst" mapstructure:"burst"`
	CacheTTL          time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`

	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxy bool `yaml:"trust_proxy" mapstructure:"trust_proxy"`

	// ClientRates overrides the limit for individual client addresses. A list
	// because viper splits map keys on dots.
	ClientRates []ClientRate `yaml:"client_rates" mapstructure:"client_rates"`
}

// ClientRate is a per-client rate limit override
type ClientRate struct {
	Client            string  `yaml:"client" mapstructure:"client"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// ConcurrencyConfig sizes the batch worker pool
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls CLI rendering
type OutputConfig struct {
	Format  string `yaml:"format" mapstructure:"format"` // text or json
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultRelevanceConfig returns the stock keyword sets
func DefaultRelevanceConfig() RelevanceConfig {
	return RelevanceConfig{
		Patterns: map[string][]string{
			InfrastructureAvailability.String(): {"reusable", "recycle", "bike", "public transport", "refill", "solar", "compost"},
			Affordability.String():              {"buy", "purchase", "switch", "invest", "afford"},
			DecisionAuthority.String():          {"should", "must", "need to", "have to", "reduce", "stop", "avoid"},
		},
		AlwaysRelevant:         []string{AccessToAlternatives.String()},
		EnforcementSourceTypes: []string{"Government Policy"},
	}
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Engine: "json",
			Path:   "",
		},
		Relevance: DefaultRelevanceConfig(),
		Server: ServerConfig{
			Addr:              "127.0.0.1:8080",
			RequestsPerSecond: 10,
			Burst:             20,
			CacheTTL:          10 * time.Minute,
			ClientRates:       []ClientRate{},
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}
