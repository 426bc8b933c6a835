// internal/protocol/factory.go
package protocol

import (
	"fmt"

	"go.uber.org/zap"

	"feeder-service/internal/config"
)

// NewProtocol creates the device protocol selected by the transport
// configuration.
func NewProtocol(cfg *config.Config, logger *zap.Logger) (DeviceProtocol, error) {
	switch cfg.Transport.Type {
	case "tcp":
		return NewTCPConnection(&TCPConfig{
			Host:         cfg.Connection.IP,
			Port:         cfg.Connection.Port,
			KeepAlive:    cfg.Transport.KeepAlive,
			Timeout:      cfg.Transport.ConnectTimeout,
			ReadTimeout:  cfg.Transport.ReadTimeout,
			WriteTimeout: cfg.Transport.WriteTimeout,
		}, logger), nil
	case "serial":
		return NewSerialConnection(&SerialConfig{
			Port:     cfg.Transport.Serial.Port,
			BaudRate: cfg.Transport.Serial.BaudRate,
			DataBits: cfg.Transport.Serial.DataBits,
			StopBits: cfg.Transport.Serial.StopBits,
			Parity:   cfg.Transport.Serial.Parity,
			Timeout:  cfg.Transport.Serial.Timeout,
		}, logger), nil
	default:
		return nil, fmt.Errorf("unsupported protocol type: %s", cfg.Transport.Type)
	}
}
