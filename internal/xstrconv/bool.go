package xstrconv

import (
	"strconv"
	"strings"
)

// ParseBool extends strconv.ParseBool with the words the backend uses in status fields.
func ParseBool(str string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "on", "yes", "oui", "success", "ok", "done":
		return true, nil
	case "off", "no", "non", "error", "fail", "failed", "failure":
		return false, nil
	default:
		return strconv.ParseBool(strings.TrimSpace(str))
	}
}
