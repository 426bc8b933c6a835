// cmd/feederctl/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"feeder-service/internal/config"
	"feeder-service/internal/device"
	"feeder-service/internal/utils"
)

func main() {
	configPath := pflag.String("config", "config.yaml", "path to the configuration file")
	commandPath := pflag.String("command", "", "path to a JSON file with the vibration command description")
	repeat := pflag.Int("repeat", 1, "number of times to send the command")
	interval := pflag.Duration("interval", 3*time.Second, "pause between repeated commands")
	pflag.Parse()

	if err := run(*configPath, *commandPath, *repeat, *interval); err != nil {
		fmt.Fprintf(os.Stderr, "feederctl: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, commandPath string, repeat int, interval time.Duration) error {
	if commandPath == "" {
		return fmt.Errorf("--command is required")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := utils.NewLogger(&cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Sync()

	description, err := readCommand(commandPath)
	if err != nil {
		return err
	}

	controller, err := device.NewController(cfg, logger)
	if err != nil {
		return err
	}

	ctx := context.Background()

	if err := controller.Connect(ctx); err != nil {
		return err
	}
	defer controller.Disconnect()

	for i := 0; i < repeat; i++ {
		if i > 0 {
			time.Sleep(interval)
		}

		ack, err := controller.VibrateFromCommand(ctx, description)
		if err != nil {
			return err
		}
		logger.Info("Device acknowledged command", zap.String("ack", ack), zap.Int("iteration", i+1))
	}

	return nil
}

// readCommand decodes the nested command description. Numbers are kept as
// json.Number so the validator can reject non-integer values like 50.0.
func readCommand(path string) (map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open command file: %w", err)
	}
	defer f.Close()

	decoder := json.NewDecoder(f)
	decoder.UseNumber()

	var description map[string]any
	if err := decoder.Decode(&description); err != nil {
		return nil, fmt.Errorf("failed to decode command file: %w", err)
	}

	return description, nil
}
