// internal/command/validator.go
package command

import (
	"encoding/json"

	"feeder-service/internal/config"
	"feeder-service/internal/model"
)

// Validate checks that value is an integer within the configured bound for
// the named parameter and returns it unchanged. No clamping, no rounding.
// Parameters without a configured constraint accept any integer.
func Validate(name string, value any, cfg *config.Config) (int, error) {
	n, ok := asInt(value)
	if !ok {
		return 0, &model.ValueTypeError{Field: name, Value: value}
	}

	if bound, constrained := cfg.ConstraintFor(name); constrained {
		if n < bound.Min || n > bound.Max {
			return 0, &model.RangeError{Field: name, Value: n, Min: bound.Min, Max: bound.Max}
		}
	}

	return n, nil
}

// asInt accepts only integral inputs. Descriptions decoded from JSON carry
// json.Number values, which keep "50" and "50.0" distinct; the latter is
// rejected even though it is numerically in range. Floats, strings, booleans
// and nil never pass.
func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
