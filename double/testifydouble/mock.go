// Package testifydouble implements foundationtest.Double on top of
// github.com/stretchr/testify/mock, for suites that already assert through
// testify expectations.
package testifydouble

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"

	foundationtest "github.com/Versent/go-foundationtest"
)

// Mock is a foundationtest.Double backed by a testify mock.Mock.  Stubs and
// fakes without matchers are registered lazily per arity as optional
// expectations, so Testify().AssertExpectations only checks the expectations
// a test adds itself.
type Mock struct {
	t    testing.TB
	name string
	tm   mock.Mock

	mu      sync.Mutex
	known   map[string]bool
	returns map[string][]any
	fakes   map[string]reflect.Value
	arities map[string]map[int]bool
}

var (
	_ foundationtest.Double              = (*Mock)(nil)
	_ foundationtest.ExpectationAsserter = (*Mock)(nil)
)

// New returns a Mock reporting to t.
func New(t testing.TB, name string) *Mock {
	m := &Mock{
		t:       t,
		name:    name,
		known:   make(map[string]bool),
		returns: make(map[string][]any),
		fakes:   make(map[string]reflect.Value),
		arities: make(map[string]map[int]bool),
	}
	m.tm.Test(t)
	return m
}

// Factory is a foundationtest.DoubleFactory creating Mocks.
func Factory(t testing.TB, name string) foundationtest.Double {
	return New(t, name)
}

// Testify returns the underlying testify mock.
func (m *Mock) Testify() *mock.Mock { return &m.tm }

func (m *Mock) Name() string { return m.name }

func (m *Mock) TB() testing.TB { return m.t }

func (m *Mock) Stub(name string, values ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.known[name] = true
	m.returns[name] = append([]any(nil), values...)
}

func (m *Mock) Fake(name string, fn any, args ...foundationtest.Matcher) {
	fnValue := reflect.ValueOf(fn)
	if fnValue.Kind() != reflect.Func {
		panic(fmt.Sprintf("testifydouble.Fake: expected function, got %T", fn))
	}
	m.mu.Lock()
	m.known[name] = true
	if len(args) == 0 {
		m.fakes[name] = fnValue
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	arguments := make([]any, len(args))
	for i, matcher := range args {
		arguments[i] = mock.MatchedBy(matcher.Match)
	}
	var call *mock.Call
	call = m.tm.On(name, arguments...).Maybe().Run(func(in mock.Arguments) {
		call.ReturnArguments = invoke(fnValue, in)
	})
	m.promote(call)
}

// promote moves call to the front of the expected calls so that it shadows
// the calls registered before it.
func (m *Mock) promote(call *mock.Call) {
	calls := m.tm.ExpectedCalls
	for i, c := range calls {
		if c == call {
			copy(calls[1:i+1], calls[:i])
			calls[0] = call
			return
		}
	}
}

func (m *Mock) Call(name string, args ...any) []any {
	m.t.Helper()
	m.mu.Lock()
	known := m.known[name]
	m.mu.Unlock()
	if !known {
		m.t.Errorf("unexpected call to %s.%s", m.name, name)
		return nil
	}
	m.ensure(name, len(args))
	return m.tm.MethodCalled(name, args...)
}

// ensure registers the catch-all expectation for calls to name with n
// arguments.
func (m *Mock) ensure(name string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.arities[name][n] {
		return
	}
	if m.arities[name] == nil {
		m.arities[name] = make(map[int]bool)
	}
	m.arities[name][n] = true

	anything := make([]any, n)
	for i := range anything {
		anything[i] = mock.Anything
	}
	var call *mock.Call
	call = m.tm.On(name, anything...).Maybe().Run(func(in mock.Arguments) {
		m.mu.Lock()
		fn, faked := m.fakes[name]
		returns := append([]any(nil), m.returns[name]...)
		m.mu.Unlock()
		if faked {
			returns = invoke(fn, in)
		}
		call.ReturnArguments = returns
	})
}

func (m *Mock) Calls(name string) [][]any {
	var calls [][]any
	for _, call := range m.tm.Calls {
		if call.Method == name {
			calls = append(calls, append([]any(nil), call.Arguments...))
		}
	}
	return calls
}

func (m *Mock) Methods() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.known))
	for name := range m.known {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AssertExpectedCalls asserts the expectations added through Testify.
func (m *Mock) AssertExpectedCalls(t testing.TB) bool {
	t.Helper()
	return m.tm.AssertExpectations(t)
}

func invoke(fn reflect.Value, args mock.Arguments) []any {
	funcType := fn.Type()
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil && i < funcType.NumIn() {
			in[i] = reflect.Zero(funcType.In(i))
			continue
		}
		in[i] = reflect.ValueOf(arg)
	}
	var out []reflect.Value
	if funcType.IsVariadic() {
		out = fn.CallSlice(in)
	} else {
		out = fn.Call(in)
	}
	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}
	return results
}
