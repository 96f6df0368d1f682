package project

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseParameters parses a comma-separated list of key=value pairs.
// Values become bool, int64, float64 or string in that order of preference.
// Entries without "=" are ignored.
func ParseParameters(s string) map[string]any {
	params := make(map[string]any)
	if strings.TrimSpace(s) == "" {
		return params
	}

	for _, pair := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		params[key] = coerce(strings.TrimSpace(value))
	}
	return params
}

func coerce(v string) any {
	switch strings.ToLower(v) {
	case "true":
		return true
	case "false":
		return false
	}
	if isDigits(v) {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	if whole, frac, ok := strings.Cut(v, "."); ok && isDigits(whole+frac) {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return v
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatValue renders a parameter value the way templates see it.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
