package step

import (
	"errors"
	"testing"

	"github.com/buildkite/bkyml/internal/ordered"
	"github.com/google/go-cmp/cmp"
)

// cmpMaps compares ordered maps by content and order.
var cmpMaps = cmp.Options{
	cmp.Comparer(ordered.EqualSA),
	cmp.Comparer(ordered.EqualSS),
}

// stepDoc wraps items into the Document of a step.
func stepDoc(items ...ordered.TupleSA) *Document {
	return &Document{Kind: KindStep, Value: ordered.MapFromItems(items...)}
}

func ss(items ...ordered.TupleSS) *ordered.MapSS {
	return ordered.MapFromItems(items...)
}

func sa(items ...ordered.TupleSA) *ordered.MapSA {
	return ordered.MapFromItems(items...)
}

// checkBuild runs b.Build and compares the result with want, or checks the
// error kind when wantErr is set.
func checkBuild(t *testing.T, b Builder, want *Document, wantErr error) {
	t.Helper()

	got, err := b.Build()
	if wantErr != nil {
		if !errors.Is(err, wantErr) {
			t.Fatalf("%T.Build() error = %v, want %v", b, err, wantErr)
		}
		return
	}
	if err != nil {
		t.Fatalf("%T.Build() error = %v", b, err)
	}
	if diff := cmp.Diff(got, want, cmpMaps); diff != "" {
		t.Errorf("%T.Build() diff (-got +want):\n%s", b, diff)
	}
}
