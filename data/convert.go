package data

import "fmt"

// toInt coerces a decoded JSON/map-style numeric value to int, accepting the
// concrete types a caller building a map[string]any by hand is likely to use.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case float32:
		return int(n), nil
	default:
		return 0, fmt.Errorf("unsupported numeric type %T", v)
	}
}

// toFloat coerces a decoded JSON/map-style numeric value to float64.
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("unsupported numeric type %T", v)
	}
}
