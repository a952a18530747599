package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kbukum/twistkit/logger"
	"github.com/kbukum/twistkit/observability"
	"github.com/kbukum/twistkit/transport"
	"github.com/kbukum/twistkit/version"
)

// DefaultBaseURL is the public Twist API root.
const DefaultBaseURL = "https://api.twist.com/api"

// Client holds everything needed to build an API client.
type Client struct {
	// Token is the bearer token sent with every call.
	Token string `yaml:"token" mapstructure:"token"`
	// BaseURL is the API root, without a version segment.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Timeout bounds each physical HTTP exchange.
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent string        `yaml:"user_agent" mapstructure:"user_agent"`
	// BatchMaxItems limits the size of one batch. Zero uses the default.
	BatchMaxItems int `yaml:"batch_max_items" mapstructure:"batch_max_items"`

	TLS           *transport.TLSConfig `yaml:"tls" mapstructure:"tls"`
	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills unset fields.
func (c *Client) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent()
	}
	c.Logging.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks the configuration.
func (c *Client) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("twist.token is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("twist.base_url must be an absolute URL (got: %q)", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("twist.timeout must be positive (got: %s)", c.Timeout)
	}
	if c.BatchMaxItems < 0 {
		return fmt.Errorf("twist.batch_max_items must not be negative (got: %d)", c.BatchMaxItems)
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return fmt.Errorf("twist.tls: %w", err)
		}
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("twist.logging: %w", err)
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("twist.observability: %w", err)
	}
	return nil
}

// Transport returns the HTTP transport settings.
func (c *Client) Transport() transport.Config {
	return transport.Config{Timeout: c.Timeout, TLS: c.TLS}
}

// File is the layout of a config file.
type File struct {
	Twist Client `yaml:"twist" mapstructure:"twist"`
}

// LoadClient loads, defaults and validates the client settings.
func LoadClient(name string, opts ...LoaderOption) (Client, error) {
	var f File
	if err := Load(name, &f, opts...); err != nil {
		return Client{}, err
	}
	f.Twist.ApplyDefaults()
	if err := f.Twist.Validate(); err != nil {
		return Client{}, err
	}
	return f.Twist, nil
}
