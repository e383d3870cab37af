package kayatypes

import (
	"fmt"

	"github.com/spf13/cast"
)

// Stringify converts an arbitrary field value to a string. Scalars go through
// cast; anything cast cannot handle falls back to its fmt representation.
func Stringify(v any) string {
	if v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

// IsEmptyValue reports whether a field value counts as "not provided":
// nil, empty strings, false, numeric zero, and empty lists or maps.
func IsEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case []string:
		return len(t) == 0
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return cast.ToFloat64(t) == 0
	default:
		return false
	}
}
