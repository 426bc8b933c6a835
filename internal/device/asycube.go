// internal/device/asycube.go
package device

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"feeder-service/internal/command"
	"feeder-service/internal/config"
	"feeder-service/internal/model"
	"feeder-service/internal/protocol"
	"feeder-service/internal/utils"
)

// ackBufferSize bounds a single acknowledgement read. Asycube replies are
// short ASCII frames; 1024 matches the firmware's maximum response size.
const ackBufferSize = 1024

// Controller commands a single Asycube vibratory feeder over one
// connection. It is not safe for concurrent use; callers must serialize
// commands.
type Controller struct {
	cfg    *config.Config
	proto  protocol.DeviceProtocol
	logger *utils.FeederLogger
	mutex  sync.Mutex
}

// NewController creates a controller for the configured device endpoint.
func NewController(cfg *config.Config, logger *zap.Logger) (*Controller, error) {
	proto, err := protocol.NewProtocol(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create protocol: %w", err)
	}

	return &Controller{
		cfg:    cfg,
		proto:  proto,
		logger: utils.NewFeederLogger(logger, cfg.DeviceAddr(), cfg.Connection.Channel),
	}, nil
}

// Connect establishes the connection to the feeder.
func (c *Controller) Connect(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	err := c.proto.Open(ctx)
	c.logger.LogConnection("connect", err)
	return err
}

// Disconnect releases the connection unconditionally. Calling it on an
// already closed controller is a no-op.
func (c *Controller) Disconnect() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	err := c.proto.Close()
	c.logger.LogConnection("disconnect", err)
	return err
}

// IsConnected reports whether the device connection is open.
func (c *Controller) IsConnected() bool {
	return c.proto.IsOpen()
}

// VibrateFromCommand validates the caller-supplied nested description,
// programs the stored vibration set, and triggers it. It returns the
// device's acknowledgement of the execute command. If any field fails
// validation no bytes reach the device.
func (c *Controller) VibrateFromCommand(ctx context.Context, description map[string]any) (string, error) {
	wire, err := command.Build(description, c.cfg)
	if err != nil {
		return "", err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	channel := c.cfg.Connection.Channel

	if _, err := c.roundTrip(ctx, EncodeSet(channel, wire)); err != nil {
		return "", err
	}

	return c.roundTrip(ctx, EncodeExecute(channel))
}

// roundTrip sends one frame and reads the device's acknowledgement.
func (c *Controller) roundTrip(ctx context.Context, frame []byte) (string, error) {
	operationID := uuid.New().String()
	start := time.Now()

	ack, err := c.exchange(ctx, frame)
	c.logger.LogCommand(operationID, strings.TrimSpace(string(frame)), time.Since(start), err)
	return ack, err
}

func (c *Controller) exchange(ctx context.Context, frame []byte) (string, error) {
	if err := c.proto.Write(ctx, frame); err != nil {
		return "", err
	}

	data, err := c.proto.Read(ctx, ackBufferSize)
	if err != nil {
		return "", err
	}

	ack := strings.TrimSpace(string(data))
	if ack == "" {
		return "", &model.TransportError{Op: "read", Err: fmt.Errorf("empty acknowledgement")}
	}

	return ack, nil
}
