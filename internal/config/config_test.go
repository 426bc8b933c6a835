// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feeder-service/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `
connection:
  ip: 192.168.127.254
  port: 4001
parameter_constraints:
  amplitude:
    min: 0
    max: 100
  frequency:
    min: 1
    max: 250
  duration:
    min: 100
    max: 5000
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "192.168.127.254", cfg.Connection.IP)
	assert.Equal(t, 4001, cfg.Connection.Port)
	assert.Equal(t, "192.168.127.254:4001", cfg.DeviceAddr())

	bound, ok := cfg.ConstraintFor("amplitude")
	require.True(t, ok)
	assert.Equal(t, 0, bound.Min)
	assert.Equal(t, 100, bound.Max)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
connection:
  ip: 10.0.0.5
  port: 4001
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	// channel and transport receive defaults, the endpoint never does
	assert.Equal(t, "B", cfg.Connection.Channel)
	assert.Equal(t, "tcp", cfg.Transport.Type)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	var configErr *model.ConfigError
	assert.ErrorAs(t, err, &configErr)
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfig(t, "connection: [not a mapping")

	_, err := Load(path)
	require.Error(t, err)

	var configErr *model.ConfigError
	assert.ErrorAs(t, err, &configErr)
}

func TestLoadMissingIP(t *testing.T) {
	path := writeConfig(t, `
connection:
  port: 4001
`)

	_, err := Load(path)
	require.Error(t, err)

	var configErr *model.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Contains(t, configErr.Error(), "connection.ip")
}

func TestLoadMissingPort(t *testing.T) {
	path := writeConfig(t, `
connection:
  ip: 10.0.0.5
`)

	_, err := Load(path)
	require.Error(t, err)

	var configErr *model.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Contains(t, configErr.Error(), "connection.port")
}

func TestLoadInvalidChannel(t *testing.T) {
	path := writeConfig(t, `
connection:
  ip: 10.0.0.5
  port: 4001
  channel: bb
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadInvertedConstraint(t *testing.T) {
	path := writeConfig(t, `
connection:
  ip: 10.0.0.5
  port: 4001
parameter_constraints:
  amplitude:
    min: 100
    max: 0
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestConstraintForAbsentParameter(t *testing.T) {
	path := writeConfig(t, `
connection:
  ip: 10.0.0.5
  port: 4001
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	_, ok := cfg.ConstraintFor("amplitude")
	assert.False(t, ok)
}

func TestLoadSerialTransportRequiresPort(t *testing.T) {
	path := writeConfig(t, `
connection:
  ip: 10.0.0.5
  port: 4001
transport:
  type: serial
`)

	_, err := Load(path)
	require.Error(t, err)

	var configErr *model.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Contains(t, configErr.Error(), "transport.serial.port")
}
