// internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"feeder-service/internal/model"
)

// Config represents the application configuration. It is loaded once at
// startup and never mutated afterwards; the validator and builder receive it
// by reference.
type Config struct {
	Connection  ConnectionConfig      `mapstructure:"connection"`
	Transport   TransportConfig       `mapstructure:"transport"`
	Constraints map[string]Constraint `mapstructure:"parameter_constraints"`
	Logging     LoggingConfig         `mapstructure:"logging"`
}

// ConnectionConfig identifies the device endpoint
type ConnectionConfig struct {
	IP      string `mapstructure:"ip"`
	Port    int    `mapstructure:"port"`
	Channel string `mapstructure:"channel"`
}

// TransportConfig represents transport tuning and the optional serial fallback
type TransportConfig struct {
	Type           string        `mapstructure:"type"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	KeepAlive      bool          `mapstructure:"keep_alive"`
	Serial         SerialConfig  `mapstructure:"serial"`
}

// SerialConfig represents serial port settings for RS-232 equipped units
type SerialConfig struct {
	Port     string        `mapstructure:"port"`
	BaudRate int           `mapstructure:"baud_rate"`
	DataBits int           `mapstructure:"data_bits"`
	StopBits int           `mapstructure:"stop_bits"`
	Parity   string        `mapstructure:"parity"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Constraint is an inclusive [min, max] bound for one vibration parameter
type Constraint struct {
	Min int `mapstructure:"min"`
	Max int `mapstructure:"max"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// Load loads configuration from the given file and environment variables.
// It fails with *model.ConfigError when the file is missing, malformed, or
// lacks a required key. Required keys never receive silent defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable support
	v.SetEnvPrefix("FEEDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, &model.ConfigError{Path: path, Err: err}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, &model.ConfigError{Path: path, Err: fmt.Errorf("unable to decode config: %w", err)}
	}

	if err := validate(&config); err != nil {
		return nil, &model.ConfigError{Path: path, Err: err}
	}

	return &config, nil
}

// setDefaults sets default configuration values. connection.ip and
// connection.port deliberately have none: a command must never go to a
// guessed endpoint.
func setDefaults(v *viper.Viper) {
	// Connection defaults
	v.SetDefault("connection.channel", "B")

	// Transport defaults
	v.SetDefault("transport.type", "tcp")
	v.SetDefault("transport.connect_timeout", "10s")
	v.SetDefault("transport.read_timeout", "5s")
	v.SetDefault("transport.write_timeout", "5s")
	v.SetDefault("transport.keep_alive", true)

	v.SetDefault("transport.serial.baud_rate", 115200)
	v.SetDefault("transport.serial.data_bits", 8)
	v.SetDefault("transport.serial.stop_bits", 1)
	v.SetDefault("transport.serial.parity", "none")
	v.SetDefault("transport.serial.timeout", "5s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.max_size", 100)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 28)
	v.SetDefault("logging.compress", true)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Connection.IP == "" {
		return fmt.Errorf("connection.ip is required")
	}
	if config.Connection.Port == 0 {
		return fmt.Errorf("connection.port is required")
	}
	if len(config.Connection.Channel) != 1 || config.Connection.Channel[0] < 'A' || config.Connection.Channel[0] > 'Z' {
		return fmt.Errorf("connection.channel must be a single letter A-Z, got %q", config.Connection.Channel)
	}

	switch config.Transport.Type {
	case "tcp":
	case "serial":
		if config.Transport.Serial.Port == "" {
			return fmt.Errorf("transport.serial.port is required when transport.type is serial")
		}
	default:
		return fmt.Errorf("transport.type must be one of: tcp, serial")
	}

	for name, c := range config.Constraints {
		if c.Min > c.Max {
			return fmt.Errorf("parameter_constraints.%s: min %d exceeds max %d", name, c.Min, c.Max)
		}
	}

	validLevels := []string{"debug", "info", "warn", "error", "fatal"}
	isValidLevel := false
	for _, level := range validLevels {
		if config.Logging.Level == level {
			isValidLevel = true
			break
		}
	}
	if !isValidLevel {
		return fmt.Errorf("logging.level must be one of: %v", validLevels)
	}

	return nil
}

// ConstraintFor returns the configured bound for a parameter name. The second
// return is false when the parameter has no configured constraint, in which
// case any integer is accepted. That permissive fallback is deliberate:
// constraint entries are optional per parameter.
func (c *Config) ConstraintFor(name string) (Constraint, bool) {
	bound, ok := c.Constraints[name]
	return bound, ok
}

// DeviceAddr returns the device endpoint address
func (c *Config) DeviceAddr() string {
	return fmt.Sprintf("%s:%d", c.Connection.IP, c.Connection.Port)
}
