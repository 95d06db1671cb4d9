package xstrconv

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// NormalizeID renders ids coming as numbers, strings or json.Number the same way, so "7", 7 and 7.0 compare equal.
func NormalizeID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return trimID(id)
	case json.Number:
		return trimID(id.String())
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case fmt.Stringer:
		return trimID(id.String())
	default:
		return trimID(fmt.Sprint(id))
	}
}

func trimID(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, ".0") {
		if _, err := strconv.ParseInt(strings.TrimSuffix(s, ".0"), 10, 64); err == nil {
			return strings.TrimSuffix(s, ".0")
		}
	}
	return s
}
