package foundationtest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ExpectationAsserter is implemented by doubles that can report expectations
// which were never satisfied.
type ExpectationAsserter interface {
	AssertExpectedCalls(t testing.TB) bool
}

// AssertExpectedCalls fails t for every double with expectations that were
// registered but not called.  Doubles without expectations are skipped.
func AssertExpectedCalls(t testing.TB, doubles ...Double) {
	t.Helper()

	for _, d := range doubles {
		if d == nil {
			continue
		}
		if asserter, ok := d.(ExpectationAsserter); ok {
			asserter.AssertExpectedCalls(t)
		}
	}
}

// AssertExpectedCalls fails t once for every method with queued expectations
// that were not all consumed.
func (s *Spy) AssertExpectedCalls(t testing.TB) bool {
	t.Helper()

	ok := true
	for _, name := range s.Methods() {
		delegate := delegateByName(s, name)
		delegate.Lock()
		count, want := delegate.callCount, delegate.Len()
		delegate.Unlock()
		if int(count) >= want {
			continue
		}
		ok = false
		if count == 0 {
			t.Errorf("failed to make call to %s.%s", s.name, name)
		} else if count == 1 {
			t.Errorf("failed to make call to %s.%s: only got one call", s.name, name)
		} else {
			t.Errorf("failed to make call to %s.%s: only got %d calls", s.name, name, count)
		}
	}
	return ok
}

// AssertCalled asserts that name was called on d.  When args are given, at
// least one call must have had exactly those arguments.
func AssertCalled(t testing.TB, d Double, name string, args ...any) bool {
	t.Helper()

	calls := d.Calls(name)
	if len(args) == 0 {
		return assert.NotEmpty(t, calls, "expected %s.%s to be called", d.Name(), name)
	}
	for _, call := range calls {
		if assert.ObjectsAreEqual(args, call) {
			return true
		}
	}
	return assert.Fail(t, fmt.Sprintf("expected %s.%s to be called with %v", d.Name(), name, args),
		"actual calls: %v", calls)
}

// AssertNotCalled asserts that name was never called on d.
func AssertNotCalled(t testing.TB, d Double, name string) bool {
	t.Helper()
	return assert.Empty(t, d.Calls(name), "expected %s.%s not to be called", d.Name(), name)
}

func Call0(d Double, name string, in ...any) {
	d.TB().Helper()
	d.Call(name, in...)
}

func Call1[T1 any](d Double, name string, in ...any) (v T1) {
	d.TB().Helper()
	doCall(d, name, in, toValues(&v))
	return
}

func Call2[T1, T2 any](d Double, name string, in ...any) (v1 T1, v2 T2) {
	d.TB().Helper()
	doCall(d, name, in, toValues(&v1, &v2))
	return
}

func Call3[T1, T2, T3 any](d Double, name string, in ...any) (v1 T1, v2 T2, v3 T3) {
	d.TB().Helper()
	doCall(d, name, in, toValues(&v1, &v2, &v3))
	return
}

func Call4[T1, T2, T3, T4 any](d Double, name string, in ...any) (v1 T1, v2 T2, v3 T3, v4 T4) {
	d.TB().Helper()
	doCall(d, name, in, toValues(&v1, &v2, &v3, &v4))
	return
}
