// Defines the validation interface and shared parameter parsing.

package dto

import "strconv"

// Validatable is implemented by request types that can validate their
// fields. The Wrap function in the server package uses this interface as a
// type constraint so every request type provides validation.
type Validatable interface {
	Validate() error
}

// Bounds shared by all count parameters.
const (
	MinCount = 1
	MaxCount = 50

	// DefaultMaxResults is the default result cap for search operations.
	DefaultMaxResults = 10
	// DefaultPageLimit is the default per-database row limit.
	DefaultPageLimit = 10
)

// parseCount parses an optional 1-50 count parameter. Empty means def.
func parseCount(name, raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, InvalidParam(name, "must be an integer")
	}
	if n < MinCount || n > MaxCount {
		return 0, InvalidParam(name, "must be between 1 and 50")
	}
	return n, nil
}

// parseBool parses an optional boolean parameter. Empty means def.
func parseBool(name, raw string, def bool) (bool, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, InvalidParam(name, "must be true or false")
	}
	return v, nil
}

// parseEnum checks an optional enum parameter. Empty means def.
func parseEnum(name, raw, def string, allowed ...string) (string, error) {
	if raw == "" {
		return def, nil
	}
	for _, a := range allowed {
		if raw == a {
			return raw, nil
		}
	}
	return "", InvalidParam(name, "unrecognized value "+strconv.Quote(raw))
}
