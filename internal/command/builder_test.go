// internal/command/builder_test.go
package command

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feeder-service/internal/model"
)

func actuator(amplitude, frequency, phase, waveform int) map[string]any {
	return map[string]any{
		model.FieldAmplitude: amplitude,
		model.FieldFrequency: frequency,
		model.FieldPhase:     phase,
		model.FieldWaveform:  waveform,
	}
}

func TestBuildSingleActuator(t *testing.T) {
	cfg := testConfig()

	wire, err := Build(map[string]any{
		"1":                 actuator(50, 100, 0, 1),
		model.FieldDuration: 1000,
	}, cfg)
	require.NoError(t, err)

	assert.Equal(t, model.WireCommand{50, 100, 0, 1, 1000}, wire)
}

func TestBuildAscendingActuatorOrder(t *testing.T) {
	cfg := testConfig()

	// actuators 1 and 3 present, 2 and 4 omitted
	wire, err := Build(map[string]any{
		"3":                 actuator(75, 150, 90, 2),
		"1":                 actuator(50, 100, 0, 1),
		model.FieldDuration: 1200,
	}, cfg)
	require.NoError(t, err)

	require.Len(t, wire, 2*4+1)
	assert.Equal(t, model.WireCommand{50, 100, 0, 1, 75, 150, 90, 2, 1200}, wire)
}

func TestBuildMissingWaveform(t *testing.T) {
	cfg := testConfig()

	desc := map[string]any{
		"1": map[string]any{
			model.FieldAmplitude: 50,
			model.FieldFrequency: 100,
			model.FieldPhase:     0,
		},
		model.FieldDuration: 1000,
	}

	_, err := Build(desc, cfg)
	require.Error(t, err)

	var missingErr *model.MissingFieldError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, 1, missingErr.Actuator)
	assert.Equal(t, model.FieldWaveform, missingErr.Field)
}

func TestBuildAmplitudeOutOfRange(t *testing.T) {
	cfg := testConfig()

	_, err := Build(map[string]any{
		"1":                 actuator(150, 100, 0, 1),
		model.FieldDuration: 1000,
	}, cfg)
	require.Error(t, err)

	var rangeErr *model.RangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, model.FieldAmplitude, rangeErr.Field)
	assert.Equal(t, 1, rangeErr.Actuator)
	assert.Equal(t, 150, rangeErr.Value)
	assert.Equal(t, 0, rangeErr.Min)
	assert.Equal(t, 100, rangeErr.Max)
}

func TestBuildMissingDuration(t *testing.T) {
	cfg := testConfig()

	_, err := Build(map[string]any{
		"1": actuator(50, 100, 0, 1),
	}, cfg)
	require.Error(t, err)

	var missingErr *model.MissingFieldError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, 0, missingErr.Actuator)
	assert.Equal(t, model.FieldDuration, missingErr.Field)
}

func TestBuildUnknownKey(t *testing.T) {
	cfg := testConfig()

	for _, key := range []string{"5", "0", "01", "actuator", ""} {
		desc := map[string]any{model.FieldDuration: 1000}
		desc[key] = actuator(50, 100, 0, 1)

		_, err := Build(desc, cfg)
		require.Error(t, err, "key %q must be rejected", key)
	}
}

func TestBuildActuatorEntryNotAMapping(t *testing.T) {
	cfg := testConfig()

	_, err := Build(map[string]any{
		"1":                 42,
		model.FieldDuration: 1000,
	}, cfg)
	require.Error(t, err)
}

func TestBuildRejectsFloatFromJSON(t *testing.T) {
	cfg := testConfig()

	// 50.0 is numerically in range but is not an integer
	raw := `{"1": {"amplitude": 50.0, "frequency": 100, "phase": 0, "waveform": 1}, "duration": 1000}`

	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()

	var desc map[string]any
	require.NoError(t, decoder.Decode(&desc))

	_, err := Build(desc, cfg)
	require.Error(t, err)

	var typeErr *model.ValueTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, model.FieldAmplitude, typeErr.Field)
	assert.Equal(t, 1, typeErr.Actuator)
}

func TestBuildFromDecodedJSON(t *testing.T) {
	cfg := testConfig()

	raw := `{"1": {"amplitude": 50, "frequency": 100, "phase": 0, "waveform": 1}, "duration": 1000}`

	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()

	var desc map[string]any
	require.NoError(t, decoder.Decode(&desc))

	wire, err := Build(desc, cfg)
	require.NoError(t, err)
	assert.Equal(t, model.WireCommand{50, 100, 0, 1, 1000}, wire)
}

func TestCompileOmittedActuatorStaysNil(t *testing.T) {
	cfg := testConfig()

	cmd, err := Compile(map[string]any{
		"2":                 actuator(50, 100, 0, 1),
		model.FieldDuration: 1000,
	}, cfg)
	require.NoError(t, err)

	assert.Nil(t, cmd.Actuators[0])
	require.NotNil(t, cmd.Actuators[1])
	assert.Nil(t, cmd.Actuators[2])
	assert.Nil(t, cmd.Actuators[3])
	assert.Equal(t, 1000, cmd.Duration)

	// omitted actuators contribute no values, they are not zero-filled
	assert.Equal(t, model.WireCommand{50, 100, 0, 1, 1000}, cmd.Flatten())
}
