package step

import (
	"strconv"
	"strings"
)

// PositiveInt parses s as an integer greater than zero. name is the flag the
// value came from, and is only used in error messages.
func PositiveInt(name, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, newError(InvalidValue, "%s: %q is not a positive integer", name, s)
	}
	return n, nil
}

// Int parses s as a base 10 integer of any sign.
func Int(name, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, newError(InvalidValue, "%s: %q is not an integer", name, s)
	}
	return n, nil
}

// BoolOrString maps "true" and "false" (in any case) to booleans, and returns
// any other string unchanged.
func BoolOrString(s string) any {
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

// IntOrWildcard parses an exit status, which is either an integer or the
// wildcard "*".
func IntOrWildcard(name, s string) (ExitStatus, error) {
	if s == "*" {
		return AnyExitStatus, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return ExitStatus{}, newError(InvalidValue, "%s: %q is neither an integer nor \"*\"", name, s)
	}
	return ExitStatusCode(n), nil
}

// KeyValueOrBareToken splits s on the first "=". If s contains no "=", the
// whole token is returned as the key and ok is false.
func KeyValueOrBareToken(s string) (kv KeyValue, ok bool) {
	k, v, ok := strings.Cut(s, "=")
	return KeyValue{Key: k, Value: v}, ok
}

// ParseBool parses "true" or "false" in any case. The empty string is false.
func ParseBool(name, s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, nil
	case "false", "":
		return false, nil
	}
	return false, newError(InvalidValue, "%s: %q is not true or false", name, s)
}
