package step

import (
	"strconv"

	"github.com/buildkite/bkyml/internal/ordered"
)

// MaxRetryLimit is the highest automatic retry limit Buildkite accepts.
// Larger limits are capped to it.
const MaxRetryLimit = 10

// Retry modes accepted by the --retry flag.
const (
	RetryAutomatic = "automatic"
	RetryManual    = "manual"
)

// Retry is the retry policy of a command step. It is one of AutomaticRetry,
// AutomaticRetryRules or ManualRetry. A nil Retry emits no retry attribute.
type Retry interface {
	retryValue() (mode string, value any)
}

var (
	_ Retry = AutomaticRetry{}
	_ Retry = AutomaticRetryRules{}
	_ Retry = ManualRetry{}
)

// ExitStatus is the exit status an automatic retry applies to: either a
// specific code, or any status at all.
type ExitStatus struct {
	wildcard bool
	code     int
}

// AnyExitStatus matches every exit status ("*").
var AnyExitStatus = ExitStatus{wildcard: true}

// ExitStatusCode matches a single exit status.
func ExitStatusCode(code int) ExitStatus {
	return ExitStatus{code: code}
}

func (s ExitStatus) String() string {
	if s.wildcard {
		return "*"
	}
	return strconv.Itoa(s.code)
}

func (s ExitStatus) value() any {
	if s.wildcard {
		return "*"
	}
	return s.code
}

// AutomaticRetry is the single-rule form of automatic retry. Both fields are
// optional; with neither set the step emits `automatic: true`.
type AutomaticRetry struct {
	ExitStatus *ExitStatus
	Limit      *int
}

func (r AutomaticRetry) retryValue() (string, any) {
	m := ordered.NewMap[string, any](2)
	if r.ExitStatus != nil {
		m.Set("exit_status", r.ExitStatus.value())
	}
	if r.Limit != nil {
		m.Set("limit", clampLimit(*r.Limit))
	}
	if m.Len() == 0 {
		return RetryAutomatic, true
	}
	return RetryAutomatic, m
}

// AutomaticRule is one exit status and limit pair.
type AutomaticRule struct {
	ExitStatus ExitStatus
	Limit      int
}

// AutomaticRetryRules is the list form of automatic retry. An empty list
// emits `automatic: true`.
type AutomaticRetryRules []AutomaticRule

func (rs AutomaticRetryRules) retryValue() (string, any) {
	if len(rs) == 0 {
		return RetryAutomatic, true
	}
	rules := make([]any, 0, len(rs))
	for _, r := range rs {
		rules = append(rules, ordered.MapFromItems(
			ordered.TupleSA{Key: "exit_status", Value: r.ExitStatus.value()},
			ordered.TupleSA{Key: "limit", Value: clampLimit(r.Limit)},
		))
	}
	return RetryAutomatic, rules
}

// ManualRetry configures the retry button of a step. Buildkite allows manual
// retries by default, so construct it with Allowed: true unless retries are
// to be disabled. With every field at its default the step emits
// `manual: true`.
type ManualRetry struct {
	Allowed        bool
	Reason         string
	PermitOnPassed bool
}

func (r ManualRetry) retryValue() (string, any) {
	m := ordered.NewMap[string, any](3)
	if !r.Allowed {
		m.Set("allowed", false)
	}
	if r.Reason != "" {
		m.Set("reason", r.Reason)
	}
	if r.PermitOnPassed {
		m.Set("permit_on_passed", true)
	}
	if m.Len() == 0 {
		return RetryManual, true
	}
	return RetryManual, m
}

func clampLimit(n int) int {
	return min(MaxRetryLimit, n)
}

// retryMap returns the value of the retry attribute for r.
func retryMap(r Retry) *ordered.MapSA {
	mode, value := r.retryValue()
	return ordered.MapFromItems(ordered.TupleSA{Key: mode, Value: value})
}

// RetryFlags are the retry options of the command subcommand as given on the
// command line. Nil pointers are flags that were not given. A non-nil but
// empty AutomaticTuples means the tuple flag was given with no entries.
type RetryFlags struct {
	Mode string

	AutomaticExitStatus *string
	AutomaticLimit      *string
	AutomaticTuples     [][]string

	ManualAllowed        *string
	ManualReason         *string
	ManualPermitOnPassed *string
}

// NewRetry validates the retry flags against each other and returns the
// policy they describe, or nil if Mode is empty and no other retry flag was
// given.
func NewRetry(f RetryFlags) (Retry, error) {
	switch f.Mode {
	case "", RetryAutomatic, RetryManual:
	default:
		return nil, newError(InvalidRetryValue, "--retry: invalid choice %q (choose from %q, %q)", f.Mode, RetryAutomatic, RetryManual)
	}

	// Flags belonging to the automatic mode.
	automatic := []struct {
		name string
		set  bool
	}{
		{"--retry-automatic-exit-status", f.AutomaticExitStatus != nil},
		{"--retry-automatic-limit", f.AutomaticLimit != nil},
		{"--retry-automatic-tuple", f.AutomaticTuples != nil},
	}
	if f.Mode != RetryAutomatic {
		for _, a := range automatic {
			if a.set {
				return nil, newError(ValidationError, "%s requires --retry %s", a.name, RetryAutomatic)
			}
		}
	}

	allowed := true
	if f.ManualAllowed != nil {
		b, err := ParseBool("--retry-manual-allowed", *f.ManualAllowed)
		if err != nil {
			return nil, err
		}
		allowed = b
	}
	permitOnPassed := false
	if f.ManualPermitOnPassed != nil {
		b, err := ParseBool("--retry-manual-permit-on-passed", *f.ManualPermitOnPassed)
		if err != nil {
			return nil, err
		}
		permitOnPassed = b
	}

	// The two manual booleans have defaults, and repeating a default is not
	// an error when manual retry is off.
	manual := []struct {
		name string
		set  bool
	}{
		{"--retry-manual-allowed", !allowed},
		{"--retry-manual-reason", f.ManualReason != nil},
		{"--retry-manual-permit-on-passed", permitOnPassed},
	}
	if f.Mode != RetryManual {
		for _, m := range manual {
			if m.set {
				return nil, newError(ValidationError, "%s requires --retry %s", m.name, RetryManual)
			}
		}
	}

	switch f.Mode {
	case RetryAutomatic:
		return newAutomaticRetry(f)

	case RetryManual:
		r := ManualRetry{Allowed: allowed, PermitOnPassed: permitOnPassed}
		if f.ManualReason != nil {
			r.Reason = *f.ManualReason
		}
		return r, nil
	}
	return nil, nil
}

func newAutomaticRetry(f RetryFlags) (Retry, error) {
	if f.AutomaticTuples != nil {
		if f.AutomaticExitStatus != nil || f.AutomaticLimit != nil {
			return nil, newError(ValidationError, "--retry-automatic-tuple cannot be combined with --retry-automatic-exit-status or --retry-automatic-limit")
		}

		rules := make(AutomaticRetryRules, 0, len(f.AutomaticTuples))
		for _, t := range f.AutomaticTuples {
			if len(t) != 2 {
				return nil, newError(InvalidValue, "--retry-automatic-tuple: expected an exit status and a limit, got %d values", len(t))
			}
			status, err := IntOrWildcard("--retry-automatic-tuple", t[0])
			if err != nil {
				return nil, err
			}
			limit, err := PositiveInt("--retry-automatic-tuple", t[1])
			if err != nil {
				return nil, err
			}
			rules = append(rules, AutomaticRule{ExitStatus: status, Limit: limit})
		}
		return rules, nil
	}

	var r AutomaticRetry
	if f.AutomaticExitStatus != nil {
		status, err := IntOrWildcard("--retry-automatic-exit-status", *f.AutomaticExitStatus)
		if err != nil {
			return nil, err
		}
		r.ExitStatus = &status
	}
	if f.AutomaticLimit != nil {
		limit, err := PositiveInt("--retry-automatic-limit", *f.AutomaticLimit)
		if err != nil {
			return nil, err
		}
		r.Limit = &limit
	}
	return r, nil
}
