package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"i4.energy/across/rilbridge/logging"
	"i4.energy/across/rilbridge/qcril"
	"i4.energy/across/rilbridge/ril"
)

// Config holds the application configuration
type Config struct {
	// BindAddress is the address the status server listens on (e.g. "127.0.0.1:8080")
	BindAddress string `mapstructure:"bindAddress"`
	// Transport selects how rild is reached: "socket" or "serial"
	Transport string `mapstructure:"transport"`
	// SocketNetwork and SocketAddress locate the rild socket (e.g. "unix", "/dev/socket/rild")
	SocketNetwork string `mapstructure:"socketNetwork"`
	SocketAddress string `mapstructure:"socketAddress"`
	// SerialPort is the path to the modem's serial port (e.g. "/dev/ttyHS0")
	SerialPort string `mapstructure:"serialPort"`
	// BaudRate is the baud rate for serial communication (e.g. 115200)
	BaudRate int `mapstructure:"baudRate"`
	// RequestTimeout bounds requests issued without a deadline
	RequestTimeout time.Duration `mapstructure:"requestTimeout"`

	// Instance names this RIL instance, used for the Redis key
	Instance string `mapstructure:"instance"`
	// PhoneType is "gsm" or "cdma"
	PhoneType              string `mapstructure:"phoneType"`
	PreferredNetworkType   int    `mapstructure:"preferredNetworkType"`
	CdmaSubscriptionSource int    `mapstructure:"cdmaSubscriptionSource"`

	// Baseband quirks
	SkipCdmaSubscription    bool `mapstructure:"skipCdmaSubscription"`
	SkipPinPukRetryCounters bool `mapstructure:"skipPinPukRetryCounters"`
	LegacyDataCallCompat    bool `mapstructure:"legacyDataCallCompat"`

	// RedisAddress enables the state mirror when set (e.g. "127.0.0.1:6379")
	RedisAddress  string `mapstructure:"redisAddress"`
	RedisPassword string `mapstructure:"redisPassword"`
	RedisDB       int    `mapstructure:"redisDB"`

	// LogLevel sets the logging level (e.g. "debug", "info", "warn", "error")
	LogLevel     string `mapstructure:"logLevel"`
	LogFormat    string `mapstructure:"logFormat"`
	LogFile      string `mapstructure:"logFile"`
	LogMaxSizeMB int    `mapstructure:"logMaxSizeMB"`
	LogBackups   int    `mapstructure:"logBackups"`
}

// ConfigOption is a function that modifies a Config
type ConfigOption func(*Config) error

// LoadConfig creates a new config by applying the given options in order
// and validates the result
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	config := &Config{}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// WithDefaults applies default configuration values
func WithDefaults() ConfigOption {
	return func(c *Config) error {
		c.BindAddress = "127.0.0.1:8080"
		c.Transport = "socket"
		c.SocketNetwork = "unix"
		c.SocketAddress = "/dev/socket/rild"
		c.SerialPort = "/dev/ttyHS0"
		c.BaudRate = 115200
		c.RequestTimeout = 10 * time.Second
		c.Instance = "0"
		c.PhoneType = "gsm"
		c.PreferredNetworkType = 0
		c.CdmaSubscriptionSource = 1
		c.LogLevel = "info"
		c.LogFormat = "text"
		c.LogMaxSizeMB = 10
		c.LogBackups = 3
		return nil
	}
}

// WithFile loads configuration from a YAML file. An empty path is ignored.
// Keys missing from the file keep their current value.
func WithFile(path string) ConfigOption {
	return func(c *Config) error {
		if path == "" {
			return nil
		}

		v := viper.New()
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if err := v.Unmarshal(c); err != nil {
			return fmt.Errorf("failed to unmarshal config: %w", err)
		}
		return nil
	}
}

// WithEnv loads configuration from environment variables
func WithEnv() ConfigOption {
	return func(c *Config) error {
		if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
			c.BindAddress = addr
		}

		if socket := os.Getenv("RILD_SOCKET"); socket != "" {
			c.Transport = "socket"
			c.SocketAddress = socket
		}

		if serial := os.Getenv("SERIAL_PORT"); serial != "" {
			c.Transport = "serial"
			c.SerialPort = serial
		}

		if baud := os.Getenv("BAUD_RATE"); baud != "" {
			if b, err := strconv.Atoi(baud); err == nil {
				c.BaudRate = b
			}
		}

		if phone := os.Getenv("PHONE_TYPE"); phone != "" {
			c.PhoneType = phone
		}

		if redis := os.Getenv("REDIS_ADDRESS"); redis != "" {
			c.RedisAddress = redis
		}

		if level := os.Getenv("LOG_LEVEL"); level != "" {
			c.LogLevel = level
		}

		return nil
	}
}

// WithFlags loads configuration from the command-line flags that were set
func WithFlags(fSet *pflag.FlagSet) ConfigOption {
	return func(c *Config) error {
		var err error
		fSet.Visit(func(f *pflag.Flag) {
			value := f.Value.String()
			switch f.Name {
			case "bind-address":
				c.BindAddress = value
			case "transport":
				c.Transport = value
			case "socket":
				c.SocketAddress = value
			case "serial-port":
				c.SerialPort = value
			case "baud-rate":
				if b, convErr := strconv.Atoi(value); convErr == nil {
					c.BaudRate = b
				}
			case "phone-type":
				c.PhoneType = value
			case "instance":
				c.Instance = value
			case "redis-address":
				c.RedisAddress = value
			case "log-level":
				c.LogLevel = value
			case "log-format":
				c.LogFormat = value
			case "log-file":
				c.LogFile = value
			case "legacy-data-call":
				c.LegacyDataCallCompat, err = strconv.ParseBool(value)
			}
		})
		return err
	}
}

func (c *Config) validate() error {
	switch c.Transport {
	case "socket":
		if c.SocketAddress == "" {
			return fmt.Errorf("socket transport requires a socket address")
		}
	case "serial":
		if c.SerialPort == "" {
			return fmt.Errorf("serial transport requires a serial port")
		}
	default:
		return fmt.Errorf("unknown transport %q (supported: socket, serial)", c.Transport)
	}

	if _, err := ril.ParsePhoneType(c.PhoneType); err != nil {
		return err
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// qcrilConfig returns the extension configuration. It must only be called
// on a validated Config.
func (c *Config) qcrilConfig() qcril.Config {
	phoneType, _ := ril.ParsePhoneType(c.PhoneType)
	return qcril.Config{
		Quirks: qcril.Quirks{
			SkipCdmaSubscription:    c.SkipCdmaSubscription,
			SkipPinPukRetryCounters: c.SkipPinPukRetryCounters,
			LegacyDataCallCompat:    c.LegacyDataCallCompat,
		},
		PhoneType:              phoneType,
		PreferredNetworkType:   c.PreferredNetworkType,
		CdmaSubscriptionSource: c.CdmaSubscriptionSource,
	}
}

func (c *Config) loggingConfig() logging.Config {
	return logging.Config{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		Console:    c.LogFile == "",
		File:       c.LogFile,
		MaxSizeMB:  c.LogMaxSizeMB,
		MaxBackups: c.LogBackups,
	}
}

// redisKey is the state hash of this instance.
func (c *Config) redisKey() string {
	return "ril:" + c.Instance
}
