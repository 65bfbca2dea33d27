package common

import (
	"fmt"
	"strings"
	"time"
)

// StringArg returns the string argument key, or "" when it is absent or not a string.
func StringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

// RequiredString returns the string argument key or an error if it is empty.
func RequiredString(args map[string]interface{}, key string) (string, error) {
	v := StringArg(args, key)
	if v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

// BoolArg returns the boolean argument key, or false when absent.
func BoolArg(args map[string]interface{}, key string) bool {
	v, _ := args[key].(bool)
	return v
}

// OptionalBool returns a pointer to the boolean argument key, or nil when absent.
func OptionalBool(args map[string]interface{}, key string) *bool {
	v, ok := args[key].(bool)
	if !ok {
		return nil
	}
	return &v
}

// IntArg returns the numeric argument key, or def when absent.
// JSON numbers arrive as float64.
func IntArg(args map[string]interface{}, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}
	return def
}

// StringListArg accepts either a comma-separated string or an array of
// strings. Blank entries are dropped.
func StringListArg(args map[string]interface{}, key string) ([]string, error) {
	var raw []string
	switch v := args[key].(type) {
	case nil:
		return nil, nil
	case string:
		raw = strings.Split(v, ",")
	case []interface{}:
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d] must be a string", key, i)
			}
			raw = append(raw, s)
		}
	case []string:
		raw = v
	default:
		return nil, fmt.Errorf("%s must be a string or array of strings", key)
	}

	var out []string
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// TimeArg parses the RFC3339 argument key. A missing argument yields the zero
// time. Dates without a time (2006-01-02) are accepted as midnight UTC.
func TimeArg(args map[string]interface{}, key string) (time.Time, error) {
	s := StringArg(args, key)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s format, expected RFC3339: %q", key, s)
	}
	return t, nil
}
