package xquery

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/topi314/academy-dashboard/internal/xstrconv"
)

func ParseBool(query url.Values, name string, defaultValue bool) bool {
	value := query.Get(name)
	if value == "" {
		return defaultValue
	}

	parsed, err := xstrconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func ParseInt(query url.Values, name string, defaultValue int) int {
	value := query.Get(name)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return parsed
}

// ParsePage reads a 1-based page number, falling back to 1 for anything below.
func ParsePage(query url.Values, name string) int {
	page := ParseInt(query, name, 1)
	if page < 1 {
		return 1
	}
	return page
}

func ParseString(query url.Values, name string, defaultValue string) string {
	value := strings.TrimSpace(query.Get(name))
	if value == "" {
		return defaultValue
	}
	return value
}
