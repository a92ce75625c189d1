package app

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	apiKeyEnvVar = "REPSCAN_API_KEY"

	defaultReputationBaseURL    = "https://www.virustotal.com/api/v3"
	defaultGeolocationBaseURL   = "http://ip-api.com"
	defaultAnalysisDelaySeconds = 15
	defaultRateLimit            = 1.0
)

type Config struct {
	APIKey               string   `yaml:"api_key"`
	ReputationBaseURL    string   `yaml:"reputation_base_url"`
	GeolocationBaseURL   string   `yaml:"geolocation_base_url"`
	Headers              HeaderKV `yaml:"headers"`
	AnalysisDelaySeconds int      `yaml:"analysis_delay_seconds"`
	RateLimit            float64  `yaml:"rate_limit"`
}

// AnalysisDelay is the wait between submitting a URL and fetching its report.
func (c *Config) AnalysisDelay() time.Duration {
	return time.Duration(c.AnalysisDelaySeconds) * time.Second
}

// LoadConfig loads the YAML config from path. When the file does not exist, a
// commented default config is generated and the user is asked to fill in the
// API key.
// Returns config, shouldExit, error.
func LoadConfig(path string) (*Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, true, fmt.Errorf("could not read config file %s: %w", path, err)
		}

		if err := writeDefaultConfig(path); err != nil {
			return nil, true, fmt.Errorf("could not generate default config: %w", err)
		}

		fmt.Printf("Config file %s did not exist and has been generated.\n", path)
		fmt.Printf("Edit it and set api_key (or export %s), then run again.\n", apiKeyEnvVar)

		return nil, true, nil
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, true, fmt.Errorf("could not parse config file %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if key := os.Getenv(apiKeyEnvVar); key != "" {
		cfg.APIKey = key
	}

	if cfg.APIKey == "" {
		fmt.Printf("No API key configured in %s.\n", path)
		fmt.Printf("Set api_key or export %s, then run again.\n", apiKeyEnvVar)

		return nil, true, nil
	}

	return &cfg, false, nil
}

func applyDefaults(cfg *Config) {
	if cfg.ReputationBaseURL == "" {
		cfg.ReputationBaseURL = defaultReputationBaseURL
	}
	if cfg.GeolocationBaseURL == "" {
		cfg.GeolocationBaseURL = defaultGeolocationBaseURL
	}
	if cfg.Headers == nil {
		cfg.Headers = HeaderKV{}
	}
	if cfg.AnalysisDelaySeconds <= 0 {
		cfg.AnalysisDelaySeconds = defaultAnalysisDelaySeconds
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = defaultRateLimit
	}
}

func writeDefaultConfig(path string) error {
	defaultConfigContent := `# repscan configuration

# Reputation service API key (required). Can also be provided via the
# REPSCAN_API_KEY environment variable, which takes precedence.
api_key: ""

# Service endpoints.
reputation_base_url: "https://www.virustotal.com/api/v3"
geolocation_base_url: "http://ip-api.com"

# Extra headers sent with every reputation request.
headers: {}

# Seconds to wait after submitting a URL before fetching its analysis report.
analysis_delay_seconds: 15

# Outgoing requests per second.
rate_limit: 1
`

	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("could not write default config file: %w", err)
	}

	return nil
}
