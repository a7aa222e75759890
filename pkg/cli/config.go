package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

const (
	// DefaultBaseDir is the base configuration directory name.
	DefaultBaseDir = ".telephone"
	// DefaultConfigFile is the default configuration filename.
	DefaultConfigFile = "config.yaml"
)

// Known provider names.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config is the on-disk configuration: a set of named provider contexts and
// the currently selected one.
type Config struct {
	// CurrentContext is the name of the currently active context.
	CurrentContext string `yaml:"current_context,omitempty"`

	// Contexts is a map of context name to context configuration.
	Contexts map[string]*Context `yaml:"contexts,omitempty"`

	// configPath is the path to the config file.
	configPath string
}

// Context is one named provider configuration.
type Context struct {
	// Name is the context name.
	Name string `yaml:"name"`

	// Provider selects the capability backend: "openai" (default) or
	// "gemini".
	Provider string `yaml:"provider,omitempty"`

	// APIKey is the provider credential. When empty, the provider's
	// conventional environment variable is consulted instead.
	APIKey string `yaml:"api_key,omitempty"`

	// BaseURL overrides the provider endpoint (optional).
	BaseURL string `yaml:"base_url,omitempty"`

	// ImageModel overrides the generation model (optional).
	ImageModel string `yaml:"image_model,omitempty"`

	// VisionModel overrides the analysis model (optional).
	VisionModel string `yaml:"vision_model,omitempty"`

	// Timeout is the per-capability-call timeout in seconds (optional).
	Timeout int `yaml:"timeout,omitempty"`
}

// ResolvedProvider returns the context's provider, defaulting to OpenAI.
func (ctx *Context) ResolvedProvider() string {
	if ctx.Provider == "" {
		return ProviderOpenAI
	}
	return ctx.Provider
}

// ResolveAPIKey returns the context credential, falling back to the
// provider's conventional environment variable.
func (ctx *Context) ResolveAPIKey() string {
	if ctx.APIKey != "" {
		return ctx.APIKey
	}
	switch ctx.ResolvedProvider() {
	case ProviderGemini:
		return os.Getenv("GEMINI_API_KEY")
	default:
		return os.Getenv("OPENAI_API_KEY")
	}
}

// LoadConfig loads or creates the configuration at the default path.
func LoadConfig() (*Config, error) {
	return LoadConfigWithPath("")
}

// LoadConfigWithPath loads configuration from a custom path. An empty path
// uses ~/.telephone/config.yaml.
func LoadConfigWithPath(customPath string) (*Config, error) {
	configPath := customPath
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(home, DefaultBaseDir, DefaultConfigFile)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := &Config{
		Contexts:   make(map[string]*Context),
		configPath: configPath,
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create empty config file
			return cfg, cfg.Save()
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Contexts == nil {
		cfg.Contexts = make(map[string]*Context)
	}
	cfg.configPath = configPath

	return cfg, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Path returns the config file path.
func (c *Config) Path() string {
	return c.configPath
}

// AddContext adds a new context.
func (c *Config) AddContext(name string, ctx *Context) error {
	ctx.Name = name
	c.Contexts[name] = ctx
	return c.Save()
}

// DeleteContext removes a context.
func (c *Config) DeleteContext(name string) error {
	if _, ok := c.Contexts[name]; !ok {
		return fmt.Errorf("context %q not found", name)
	}
	delete(c.Contexts, name)
	if c.CurrentContext == name {
		c.CurrentContext = ""
	}
	return c.Save()
}

// UseContext sets the current context.
func (c *Config) UseContext(name string) error {
	if _, ok := c.Contexts[name]; !ok {
		return fmt.Errorf("context %q not found", name)
	}
	c.CurrentContext = name
	return c.Save()
}

// GetContext returns a specific context.
func (c *Config) GetContext(name string) (*Context, error) {
	ctx, ok := c.Contexts[name]
	if !ok {
		return nil, fmt.Errorf("context %q not found", name)
	}
	return ctx, nil
}

// GetCurrentContext returns the current context.
func (c *Config) GetCurrentContext() (*Context, error) {
	if c.CurrentContext == "" {
		return nil, fmt.Errorf("no current context set")
	}
	return c.GetContext(c.CurrentContext)
}

// ResolveContext returns the context by name, or the current context if name
// is empty. When no context exists at all, an anonymous default context is
// returned so credentials can still come from the environment.
func (c *Config) ResolveContext(name string) (*Context, error) {
	if name != "" {
		return c.GetContext(name)
	}
	if c.CurrentContext != "" {
		return c.GetCurrentContext()
	}
	if len(c.Contexts) == 0 {
		return &Context{Name: "default"}, nil
	}
	return nil, fmt.Errorf("no current context set, use -c or 'telephone config use-context'")
}

// ListContexts returns all context names.
func (c *Config) ListContexts() []string {
	names := make([]string, 0, len(c.Contexts))
	for name := range c.Contexts {
		names = append(names, name)
	}
	return names
}

// MaskAPIKey masks the API key for display.
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
