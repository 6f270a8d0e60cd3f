package config

import "os"

// RuleAPIConfig holds the settings for the external rule-management API. It
// is injected into the client rather than read as ambient globals.
type RuleAPIConfig struct {
	APIKey    string `json:"-"` // Never serialize
	BaseURL   string `json:"baseUrl"`
	TimeoutMS int    `json:"timeoutMs"`
}

// DefaultRuleAPIConfig reads the rule API settings from the environment.
func DefaultRuleAPIConfig() *RuleAPIConfig {
	return &RuleAPIConfig{
		APIKey:    os.Getenv("RULE_API_KEY"),
		BaseURL:   os.Getenv("RULE_API_BASE_URL"),
		TimeoutMS: getEnvInt("RULE_API_TIMEOUT_MS", 8000),
	}
}

// IsEnabled returns true if the external rule API is configured
func (c *RuleAPIConfig) IsEnabled() bool {
	return c.BaseURL != ""
}
