// internal/command/builder.go
package command

import (
	"errors"
	"fmt"
	"strconv"

	"feeder-service/internal/config"
	"feeder-service/internal/model"
)

// Build validates a caller-supplied nested description against the configured
// bounds and flattens it into the wire sequence. Validation is fail-fast: the
// first invalid field aborts the build and nothing reaches the transport.
func Build(description map[string]any, cfg *config.Config) (model.WireCommand, error) {
	cmd, err := Compile(description, cfg)
	if err != nil {
		return nil, err
	}
	return cmd.Flatten(), nil
}

// Compile converts the loosely typed description into the typed command
// model, validating every field. Keys must be the actuator ids "1".."4" or
// "duration"; actuators absent from the description stay nil so the firmware
// default applies to them.
func Compile(description map[string]any, cfg *config.Config) (*model.VibrationCommand, error) {
	for key := range description {
		if !knownKey(key) {
			return nil, fmt.Errorf("unknown command key %q, want actuator ids \"1\"..\"%d\" or %q",
				key, model.ActuatorCount, model.FieldDuration)
		}
	}

	var cmd model.VibrationCommand
	for id := 1; id <= model.ActuatorCount; id++ {
		raw, present := description[strconv.Itoa(id)]
		if !present {
			continue
		}

		params, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("actuator %d: entry must be a parameter mapping, got %T", id, raw)
		}

		setting, err := compileActuator(id, params, cfg)
		if err != nil {
			return nil, err
		}
		cmd.Actuators[id-1] = setting
	}

	raw, present := description[model.FieldDuration]
	if !present {
		return nil, &model.MissingFieldError{Field: model.FieldDuration}
	}
	duration, err := Validate(model.FieldDuration, raw, cfg)
	if err != nil {
		return nil, err
	}
	cmd.Duration = duration

	return &cmd, nil
}

// compileActuator validates one actuator entry in the fixed field order:
// amplitude, frequency, phase, waveform.
func compileActuator(id int, params map[string]any, cfg *config.Config) (*model.ActuatorSetting, error) {
	values := make([]int, 0, len(model.ActuatorFields))
	for _, field := range model.ActuatorFields {
		raw, present := params[field]
		if !present {
			return nil, &model.MissingFieldError{Actuator: id, Field: field}
		}

		v, err := Validate(field, raw, cfg)
		if err != nil {
			return nil, tagActuator(err, id)
		}
		values = append(values, v)
	}

	return &model.ActuatorSetting{
		Amplitude: values[0],
		Frequency: values[1],
		Phase:     values[2],
		Waveform:  values[3],
	}, nil
}

// tagActuator attaches the actuator id to a validator error for diagnostics.
func tagActuator(err error, id int) error {
	var typeErr *model.ValueTypeError
	if errors.As(err, &typeErr) {
		typeErr.Actuator = id
		return err
	}
	var rangeErr *model.RangeError
	if errors.As(err, &rangeErr) {
		rangeErr.Actuator = id
	}
	return err
}

func knownKey(key string) bool {
	if key == model.FieldDuration {
		return true
	}
	id, err := strconv.Atoi(key)
	return err == nil && id >= 1 && id <= model.ActuatorCount && key == strconv.Itoa(id)
}
