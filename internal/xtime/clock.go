package xtime

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeClock turns "9", "9:5" or "09:05:00" into "09:05:00". Missing components are zero filled.
func NormalizeClock(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("empty time")
	}

	parts := strings.Split(value, ":")
	if len(parts) > 3 {
		return "", fmt.Errorf("invalid time %q", value)
	}

	limits := [3]int{23, 59, 59}
	var clock [3]int
	for i, part := range parts {
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > limits[i] {
			return "", fmt.Errorf("invalid time %q", value)
		}
		clock[i] = n
	}

	return fmt.Sprintf("%02d:%02d:%02d", clock[0], clock[1], clock[2]), nil
}
