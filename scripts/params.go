package scripts

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// paramFloat coerces a scenario param to float32. Decoded JSON hands numbers
// over as float64; YAML hands over int or float64 depending on the literal.
func paramFloat(value any) (float32, error) {
	switch v := value.(type) {
	case float64:
		return float32(v), nil
	case float32:
		return v, nil
	case int:
		return float32(v), nil
	case int64:
		return float32(v), nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", value)
	}
}

// paramInt coerces a scenario param to int64 without the float32 round-trip,
// so large seeds survive intact.
func paramInt(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", value)
	}
}

// paramVec3 coerces a scenario param holding a 3-element number list.
func paramVec3(value any) (mgl32.Vec3, error) {
	list, ok := value.([]any)
	if !ok {
		return mgl32.Vec3{}, fmt.Errorf("expected a 3-element list, got %T", value)
	}
	if len(list) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("expected 3 elements, got %d", len(list))
	}
	var out mgl32.Vec3
	for i, entry := range list {
		f, err := paramFloat(entry)
		if err != nil {
			return mgl32.Vec3{}, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}
