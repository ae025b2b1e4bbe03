package properties

import (
	"strings"

	"github.com/pkg/errors"
)

// Bool parses a boolean-like value case-insensitively. It accepts "true",
// "yes", and "enabled" as true, and "false", "no", and "disabled" as false.
func Bool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "enabled":
		return true, nil
	case "false", "no", "disabled":
		return false, nil
	}
	return false, errors.Errorf("properties: cannot convert %q to bool", s)
}
