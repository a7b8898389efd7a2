// Package foundationtest provides test doubles for components that are split
// into a foundation, which holds the behaviour, and an adapter, which the
// foundation uses to reach the platform.
package foundationtest

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
	"testing"
)

// Delegates maps method names to their Delegate implementations.
type Delegates = map[string]*Delegate

// Option defines a function that configures a value of type T.
type Option[T any] func(*T)

func Options[T any](opts ...Option[T]) Option[T] {
	return func(v *T) {
		for _, opt := range opts {
			if opt != nil {
				opt(v)
			}
		}
	}
}

// Spy is the native Double.  Every method it knows about has a Delegate that
// records calls and decides what the call returns.
type Spy struct {
	t    testing.TB
	name string

	mu sync.Mutex
	Delegates
	ordered
}

var _ Double = (*Spy)(nil)

// NewSpy creates a Spy reporting to t and applies the given options.
func NewSpy(t testing.TB, name string, opts ...Option[Spy]) *Spy {
	spy := &Spy{
		t:         t,
		name:      name,
		Delegates: Delegates{},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(spy)
	}
	spy.ordinal = 0
	return spy
}

func (s *Spy) Name() string { return s.name }

func (s *Spy) TB() testing.TB { return s.t }

// Stub makes name callable.  Calls that reach the stub return values.
func (s *Spy) Stub(name string, values ...any) {
	delegateByName(s, name).setReturns(values)
}

// Fake makes calls to name that satisfy args invoke fn.  With no matchers
// every call is faked.  The most recent matching fake wins.
// Panics if fn is not a function.
func (s *Spy) Fake(name string, fn any, args ...Matcher) {
	fnValue := reflect.ValueOf(fn)
	if fnValue.Kind() != reflect.Func {
		panic(fmt.Sprintf("foundationtest.Fake: expected function, got %T", fn))
	}
	delegateByName(s, name).addFake(fake{
		matchers: args,
		Value:    Value{Value: fnValue},
	})
}

// Calls returns the arguments of every call made to name, oldest first.
func (s *Spy) Calls(name string) [][]any {
	s.mu.Lock()
	delegate, ok := s.Delegates[name]
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return delegate.recorded()
}

// Methods returns the sorted names of the methods the spy knows about.
func (s *Spy) Methods() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.Delegates))
	for name := range s.Delegates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Expect registers a function to be called exactly once when the method with
// the given name is invoked on the spy.
// The function signature of fn must match the arguments the method is called
// with, except that the first argument may optionally be a testing.TB or
// *testing.T.
// Panics if fn is not a function.
func Expect(name string, fn any) Option[Spy] {
	funcType := reflect.TypeOf(fn)
	if funcType == nil || funcType.Kind() != reflect.Func {
		panic(fmt.Sprintf("foundationtest.Expect: expected function, got %T", fn))
	}
	return func(spy *Spy) {
		spy.t.Helper()
		delegate := delegateByName(spy, name)
		if spy.inOrder {
			spy.ordinal++
		}
		delegate.Append(Value{
			Value:   reflect.ValueOf(fn),
			ordered: spy.ordered,
		})
	}
}

// ExpectMany registers a function to be called at least once for the method
// with the given name.
// Like Expect, the arguments of fn must match the call and may optionally be
// preceded by a testing.TB or *testing.T.
// In addition, the first argument of fn may optionally be of type CallCount,
// in such cases fn will be passed the total number of times the method has
// been called (starting at 0).
// Panics if fn is not a function.
func ExpectMany(name string, fn any) Option[Spy] {
	funcType := reflect.TypeOf(fn)
	if funcType == nil || funcType.Kind() != reflect.Func {
		panic(fmt.Sprintf("foundationtest.ExpectMany: expected function, got %T", fn))
	}
	return func(spy *Spy) {
		spy.t.Helper()
		if spy.inOrder {
			spy.ordinal++
		}
		delegateByName(spy, name).Append(multi{
			Value:   reflect.ValueOf(fn),
			ordered: spy.ordered,
		})
	}
}

// Stubbed makes each of names callable with no canned return values.
func Stubbed(names ...string) Option[Spy] {
	return func(spy *Spy) {
		for _, name := range names {
			spy.Stub(name)
		}
	}
}
