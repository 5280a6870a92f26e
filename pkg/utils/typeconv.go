package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ConvertToInt handles values coming from env vars, flags and decoded
// documents.
func ConvertToInt(val interface{}) (int, error) {
	n, err := ConvertToInt64(val)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// ConvertToInt64 normalises the numeric types the Mongo driver may hand
// back for a counter field.
func ConvertToInt64(val interface{}) (int64, error) {
	switch v := val.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	case []byte:
		return strconv.ParseInt(strings.TrimSpace(string(v)), 10, 64)
	default:
		return 0, fmt.Errorf("cannot convert %T to int", val)
	}
}

// ParseDelimiter accepts either a literal delimiter or one of the names
// "comma", "tab", "semicolon", "pipe" and the escape "\t".
func ParseDelimiter(s string) (string, error) {
	switch strings.ToLower(s) {
	case "":
		return "", fmt.Errorf("delimiter must not be empty")
	case "comma":
		return ",", nil
	case "tab", `\t`:
		return "\t", nil
	case "semicolon":
		return ";", nil
	case "pipe":
		return "|", nil
	default:
		return s, nil
	}
}
