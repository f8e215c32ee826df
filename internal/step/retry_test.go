package step

import (
	"errors"
	"testing"

	"github.com/buildkite/bkyml/internal/ordered"
	"github.com/buildkite/bkyml/internal/ptr"
	"github.com/google/go-cmp/cmp"
)

func TestNewRetry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc    string
		flags   RetryFlags
		want    *ordered.MapSA // nil means no retry attribute
		wantErr error
	}{
		{
			desc:  "no retry",
			flags: RetryFlags{},
			want:  nil,
		},
		{
			desc:  "defaulted manual flags are ignored without --retry",
			flags: RetryFlags{ManualAllowed: ptr.To("true"), ManualPermitOnPassed: ptr.To("false")},
			want:  nil,
		},
		{
			desc:  "automatic with nothing else",
			flags: RetryFlags{Mode: RetryAutomatic},
			want:  sa(ordered.TupleSA{Key: "automatic", Value: true}),
		},
		{
			desc:  "automatic exit status and limit",
			flags: RetryFlags{Mode: RetryAutomatic, AutomaticExitStatus: ptr.To("*"), AutomaticLimit: ptr.To("2")},
			want: sa(ordered.TupleSA{Key: "automatic", Value: sa(
				ordered.TupleSA{Key: "exit_status", Value: "*"},
				ordered.TupleSA{Key: "limit", Value: 2},
			)}),
		},
		{
			desc:  "automatic limit is capped",
			flags: RetryFlags{Mode: RetryAutomatic, AutomaticLimit: ptr.To("11")},
			want: sa(ordered.TupleSA{Key: "automatic", Value: sa(
				ordered.TupleSA{Key: "limit", Value: 10},
			)}),
		},
		{
			desc:  "automatic numeric exit status",
			flags: RetryFlags{Mode: RetryAutomatic, AutomaticExitStatus: ptr.To("-1")},
			want: sa(ordered.TupleSA{Key: "automatic", Value: sa(
				ordered.TupleSA{Key: "exit_status", Value: -1},
			)}),
		},
		{
			desc: "automatic tuples",
			flags: RetryFlags{Mode: RetryAutomatic, AutomaticTuples: [][]string{
				{"*", "2"},
				{"255", "12"},
			}},
			want: sa(ordered.TupleSA{Key: "automatic", Value: []any{
				sa(
					ordered.TupleSA{Key: "exit_status", Value: "*"},
					ordered.TupleSA{Key: "limit", Value: 2},
				),
				sa(
					ordered.TupleSA{Key: "exit_status", Value: 255},
					ordered.TupleSA{Key: "limit", Value: 10},
				),
			}}),
		},
		{
			desc:  "empty tuple list",
			flags: RetryFlags{Mode: RetryAutomatic, AutomaticTuples: [][]string{}},
			want:  sa(ordered.TupleSA{Key: "automatic", Value: true}),
		},
		{
			desc:  "manual with defaults",
			flags: RetryFlags{Mode: RetryManual, ManualAllowed: ptr.To("true")},
			want:  sa(ordered.TupleSA{Key: "manual", Value: true}),
		},
		{
			desc: "manual with everything",
			flags: RetryFlags{
				Mode:                 RetryManual,
				ManualAllowed:        ptr.To("false"),
				ManualReason:         ptr.To("deploys are not idempotent"),
				ManualPermitOnPassed: ptr.To("TRUE"),
			},
			want: sa(ordered.TupleSA{Key: "manual", Value: sa(
				ordered.TupleSA{Key: "allowed", Value: false},
				ordered.TupleSA{Key: "reason", Value: "deploys are not idempotent"},
				ordered.TupleSA{Key: "permit_on_passed", Value: true},
			)}),
		},
		{
			desc:    "unknown mode",
			flags:   RetryFlags{Mode: "sometimes"},
			wantErr: ErrInvalidRetryValue,
		},
		{
			desc:    "automatic flag without --retry",
			flags:   RetryFlags{AutomaticLimit: ptr.To("2")},
			wantErr: ErrValidation,
		},
		{
			desc:    "automatic flag with manual retry",
			flags:   RetryFlags{Mode: RetryManual, AutomaticExitStatus: ptr.To("1")},
			wantErr: ErrValidation,
		},
		{
			desc:    "tuple flag without --retry",
			flags:   RetryFlags{AutomaticTuples: [][]string{{"1", "1"}}},
			wantErr: ErrValidation,
		},
		{
			desc:    "manual reason without --retry",
			flags:   RetryFlags{ManualReason: ptr.To("nope")},
			wantErr: ErrValidation,
		},
		{
			desc:    "manual allowed false with automatic retry",
			flags:   RetryFlags{Mode: RetryAutomatic, ManualAllowed: ptr.To("false")},
			wantErr: ErrValidation,
		},
		{
			desc:    "manual permit on passed without --retry",
			flags:   RetryFlags{ManualPermitOnPassed: ptr.To("true")},
			wantErr: ErrValidation,
		},
		{
			desc: "tuples and exit status together",
			flags: RetryFlags{
				Mode:                RetryAutomatic,
				AutomaticTuples:     [][]string{{"1", "1"}},
				AutomaticExitStatus: ptr.To("1"),
			},
			wantErr: ErrValidation,
		},
		{
			desc: "tuples and limit together",
			flags: RetryFlags{
				Mode:            RetryAutomatic,
				AutomaticTuples: [][]string{{"1", "1"}},
				AutomaticLimit:  ptr.To("1"),
			},
			wantErr: ErrValidation,
		},
		{
			desc:    "bad exit status",
			flags:   RetryFlags{Mode: RetryAutomatic, AutomaticExitStatus: ptr.To("one")},
			wantErr: ErrInvalidValue,
		},
		{
			desc:    "zero limit",
			flags:   RetryFlags{Mode: RetryAutomatic, AutomaticLimit: ptr.To("0")},
			wantErr: ErrInvalidValue,
		},
		{
			desc:    "short tuple",
			flags:   RetryFlags{Mode: RetryAutomatic, AutomaticTuples: [][]string{{"1"}}},
			wantErr: ErrInvalidValue,
		},
		{
			desc:    "manual allowed is not a boolean",
			flags:   RetryFlags{Mode: RetryManual, ManualAllowed: ptr.To("maybe")},
			wantErr: ErrInvalidValue,
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			r, err := NewRetry(test.flags)
			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("NewRetry(%+v) error = %v, want %v", test.flags, err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewRetry(%+v) error = %v", test.flags, err)
			}
			if test.want == nil {
				if r != nil {
					t.Fatalf("NewRetry(%+v) = %#v, want nil", test.flags, r)
				}
				return
			}
			if r == nil {
				t.Fatalf("NewRetry(%+v) = nil, want %v", test.flags, test.want)
			}
			if diff := cmp.Diff(retryMap(r), test.want, cmpMaps); diff != "" {
				t.Errorf("retryMap(NewRetry(%+v)) diff (-got +want):\n%s", test.flags, diff)
			}
		})
	}
}

func TestExitStatusString(t *testing.T) {
	t.Parallel()

	if got, want := AnyExitStatus.String(), "*"; got != want {
		t.Errorf("AnyExitStatus.String() = %q, want %q", got, want)
	}
	if got, want := ExitStatusCode(255).String(), "255"; got != want {
		t.Errorf("ExitStatusCode(255).String() = %q, want %q", got, want)
	}
}
