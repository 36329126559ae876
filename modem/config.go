package modem

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Config configures a RIL. Use NewConfigBuilder to create one.
type Config struct {
	dialer         Dialer
	requestTimeout time.Duration
	logger         logrus.FieldLogger
}

func (c *Config) validate() error {
	if c.dialer == nil {
		return ErrNoDialer
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.requestTimeout == 0 {
		c.requestTimeout = 10 * time.Second
	}
	if c.logger == nil {
		c.logger = logrus.StandardLogger()
	}
}

// ConfigBuilder builds a Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder returns an empty builder.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

// WithDialer sets the Dialer used by New. It is required.
func (b *ConfigBuilder) WithDialer(d Dialer) *ConfigBuilder {
	b.config.dialer = d
	return b
}

// WithRequestTimeout sets the default timeout of Send for contexts without
// a deadline.
func (b *ConfigBuilder) WithRequestTimeout(d time.Duration) *ConfigBuilder {
	b.config.requestTimeout = d
	return b
}

// WithLogger sets the logger. The standard logrus logger is used otherwise.
func (b *ConfigBuilder) WithLogger(l logrus.FieldLogger) *ConfigBuilder {
	b.config.logger = l
	return b
}

// Build validates the configuration and fills in defaults.
func (b *ConfigBuilder) Build() (Config, error) {
	c := b.config
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	c.setDefaults()
	return c, nil
}
