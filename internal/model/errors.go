// internal/model/errors.go
package model

import "fmt"

// ConfigError reports a missing, unreadable, or structurally invalid
// configuration file.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ValueTypeError reports a parameter value that is not an integer. Floats,
// strings, booleans and nulls are all rejected without coercion: a silently
// truncated amplitude or frequency can damage the actuator.
type ValueTypeError struct {
	Field    string
	Actuator int // 0 when the field is not scoped to an actuator
	Value    any
}

func (e *ValueTypeError) Error() string {
	if e.Actuator > 0 {
		return fmt.Sprintf("actuator %d: parameter %q must be an integer, got %T (%v)",
			e.Actuator, e.Field, e.Value, e.Value)
	}
	return fmt.Sprintf("parameter %q must be an integer, got %T (%v)", e.Field, e.Value, e.Value)
}

// RangeError reports an integer outside the configured bound for its
// parameter.
type RangeError struct {
	Field    string
	Actuator int
	Value    int
	Min      int
	Max      int
}

func (e *RangeError) Error() string {
	if e.Actuator > 0 {
		return fmt.Sprintf("actuator %d: parameter %q value %d outside configured bound [%d, %d]",
			e.Actuator, e.Field, e.Value, e.Min, e.Max)
	}
	return fmt.Sprintf("parameter %q value %d outside configured bound [%d, %d]",
		e.Field, e.Value, e.Min, e.Max)
}

// MissingFieldError reports an actuator entry that omits one of its required
// parameters, or a command description without a duration.
type MissingFieldError struct {
	Actuator int
	Field    string
}

func (e *MissingFieldError) Error() string {
	if e.Actuator > 0 {
		return fmt.Sprintf("actuator %d: required parameter %q is missing", e.Actuator, e.Field)
	}
	return fmt.Sprintf("required parameter %q is missing", e.Field)
}

// ConnectionError reports that the device connection could not be
// established.
type ConnectionError struct {
	Address string
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect %s: %v", e.Address, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// TransportError reports a failed write, a failed read, or a malformed
// acknowledgement on an established connection.
type TransportError struct {
	Op  string // "write" or "read"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
