// internal/model/command.go
package model

// ActuatorCount is the number of actuator slots on the feeder platform.
const ActuatorCount = 4

// Parameter names as they appear in the configuration and in caller-supplied
// command descriptions.
const (
	FieldAmplitude = "amplitude"
	FieldFrequency = "frequency"
	FieldPhase     = "phase"
	FieldWaveform  = "waveform"
	FieldDuration  = "duration"
)

// ActuatorFields is the fixed wire order of the per-actuator parameters.
var ActuatorFields = [4]string{FieldAmplitude, FieldFrequency, FieldPhase, FieldWaveform}

// ActuatorSetting holds the validated vibration parameters for one actuator.
type ActuatorSetting struct {
	Amplitude int
	Frequency int
	Phase     int
	Waveform  int
}

// VibrationCommand is the typed form of a caller-supplied command
// description. A nil slot means the actuator was omitted and the firmware
// default applies; that is distinct from a present-but-zeroed setting, which
// would command the actuator to zero.
type VibrationCommand struct {
	Actuators [ActuatorCount]*ActuatorSetting
	Duration  int
}

// WireCommand is the flat, ordered integer sequence sent to the device: the
// four parameters of each present actuator in ascending actuator order,
// followed by the shared duration.
type WireCommand []int

// Flatten serializes the command into its wire order. Omitted actuators
// contribute no values.
func (c *VibrationCommand) Flatten() WireCommand {
	wire := make(WireCommand, 0, ActuatorCount*len(ActuatorFields)+1)
	for _, a := range c.Actuators {
		if a == nil {
			continue
		}
		wire = append(wire, a.Amplitude, a.Frequency, a.Phase, a.Waveform)
	}
	return append(wire, c.Duration)
}
