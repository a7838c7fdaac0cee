package agent

import (
	"slices"
	"time"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/failsight/internal/model"
	"github.com/maxbolgarin/lang"
)

const (
	defaultTemperature = 0.1
	defaultMaxTokens   = 1500
	defaultTimeout     = 2 * time.Minute
	defaultUserAgent   = "failsight/0.1.0 (https://github.com/maxbolgarin/failsight)"
)

// AgentType represents the type of AI agent
type AgentType string

// SupportedAgentTypes defines the supported AI agent types
const (
	OpenAI AgentType = "openai"
	Claude AgentType = "claude"
	Gemini AgentType = "gemini"
)

var supportedAgentTypes = []AgentType{OpenAI, Claude, Gemini}

// Config represents AI agent configuration
type Config struct {
	Type        AgentType `yaml:"type" env:"AGENT_TYPE"` // openai, claude, gemini
	APIKey      string    `yaml:"api_key" env:"AGENT_API_KEY"`
	Model       string    `yaml:"model" env:"AGENT_MODEL"`
	Temperature float32   `yaml:"temperature" env:"AGENT_TEMPERATURE"`
	MaxTokens   int       `yaml:"max_tokens" env:"AGENT_MAX_TOKENS"`

	BaseURL    string `yaml:"base_url" env:"AGENT_BASE_URL"`       // custom API endpoint (Azure OpenAI, local models, etc.)
	APIVersion string `yaml:"api_version" env:"AGENT_API_VERSION"` // Azure OpenAI api-version query parameter
	Deployment string `yaml:"deployment" env:"AGENT_DEPLOYMENT"`   // Azure OpenAI deployment name

	ProxyURL  string        `yaml:"proxy_url" env:"AGENT_PROXY_URL"`
	Timeout   time.Duration `yaml:"timeout" env:"AGENT_TIMEOUT"`
	UserAgent string        `yaml:"user_agent" env:"AGENT_USER_AGENT"`
	IsTest    bool          `yaml:"is_test" env:"AGENT_IS_TEST"`
}

func (c *Config) PrepareAndValidate() error {
	if c.APIKey == "" {
		return errm.Wrap(model.ErrConfigurationMissing, "agent api key is required")
	}
	if c.Type == "" || !slices.Contains(supportedAgentTypes, c.Type) {
		return errm.Wrap(model.ErrConfigurationMissing, "invalid agent type: "+string(c.Type))
	}

	c.Temperature = lang.Check(c.Temperature, defaultTemperature)
	c.MaxTokens = lang.Check(c.MaxTokens, defaultMaxTokens)
	c.Timeout = lang.Check(c.Timeout, defaultTimeout)
	c.UserAgent = lang.Check(c.UserAgent, defaultUserAgent)

	return nil
}
