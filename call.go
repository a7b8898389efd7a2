package foundationtest

import (
	"fmt"
	"reflect"
	"testing"
)

// Callable defines an interface for delegates to call test functions.
type Callable interface {
	Call(testing.TB, CallCount, []reflect.Value) []reflect.Value
}

// MultiCallable defines an interface for Callable objects that can be called
// multiple times.
type MultiCallable interface {
	MultiCallable() bool
}

// Callables is a slice of Callable objects.
type Callables []Callable

// Len returns the number of Callables in the slice.
func (c Callables) Len() int {
	return len(c)
}

// Append adds one or more Callables to the slice.
func (c Callables) Append(callable ...Callable) Callables {
	return append(c, callable...)
}

// Call invokes the Callable at the given index with the given arguments.
// Panics if the index is out of range and the last Callable is not a
// MultiCallable.
func (c Callables) Call(t testing.TB, index CallCount, in []reflect.Value) []reflect.Value {
	if int(index) < len(c) {
		return c[index].Call(t, index, in)
	}
	if c.MultiCallable() {
		return c[len(c)-1].Call(t, index, in)
	}
	panic(fmt.Sprintf("Callables.Call: index out of range [%d] with length %d", index, len(c)))
}

// MultiCallable returns true if the last Callable in the slice is a
// MultiCallable.
func (c Callables) MultiCallable() bool {
	if len(c) == 0 {
		return false
	}
	if m, ok := c[len(c)-1].(MultiCallable); ok {
		return m.MultiCallable()
	}
	return false
}

// Value is a Callable that wraps a reflect.Value.
type Value struct {
	reflect.Value
	ordered
}

// Call invokes the Callable with the given arguments.  If the Callable is
// variadic, the last argument must be passed as a slice, otherwise this method
// panics.  Invalid arguments, which come from untyped nils, are replaced by
// the zero value of the matching parameter.
func (v Value) Call(t testing.TB, i CallCount, in []reflect.Value) []reflect.Value {
	fn := v.Value
	if fn.Kind() != reflect.Func {
		panic(fmt.Sprintf("Value.Call: expected func, got %T", v))
	}
	funcType := fn.Type()
	if funcType.NumIn() == len(in)+1 && reflect.TypeOf(t).AssignableTo(funcType.In(0)) {
		in = append([]reflect.Value{reflect.ValueOf(t)}, in...)
	}
	for i := range in {
		if !in[i].IsValid() && i < funcType.NumIn() {
			in[i] = reflect.Zero(funcType.In(i))
		}
	}
	if funcType.IsVariadic() {
		return fn.CallSlice(in)
	}
	return fn.Call(in)
}

// multi is a Callable that wraps a reflect.Value and implements MultiCallable.
type multi Value

// MultiCallable returns true.
func (v multi) MultiCallable() bool { return true }

// Call invokes the Callable with the given arguments.
func (v multi) Call(t testing.TB, i CallCount, in []reflect.Value) []reflect.Value {
	funcType := v.Value.Type()
	if funcType.NumIn() > 0 && funcType.In(0) == reflect.TypeOf(i) ||
		funcType.NumIn() > 1 && funcType.In(1) == reflect.TypeOf(i) {
		in = append([]reflect.Value{reflect.ValueOf(i)}, in...)
	}
	return Value(v).Call(t, i, in)
}

// Call invokes the method with the given name and records the call.
// Queued expectations are used first, then the most recent matching fake,
// then the stubbed return values.  A call that none of those can serve marks
// the test as failed and returns nil.
func (s *Spy) Call(name string, args ...any) []any {
	t := s.t
	t.Helper()

	delegate := delegateByName(s, name)
	if out, ok := s.callExpectation(delegate, name, args); ok {
		return out
	}

	delegate.Lock()
	f, faked := delegate.fakeFor(args)
	stubbed, returns := delegate.stubbed, append([]any(nil), delegate.returns...)
	delegate.Unlock()

	if faked {
		t.Logf("call to %s.%s: fake", s.name, name)
		return fromValues(f.Call(t, 0, toValues(args...)))
	}
	if !stubbed {
		t.Errorf("unexpected call to %s.%s", s.name, name)
		return nil
	}
	t.Logf("call to %s.%s: stub", s.name, name)
	return returns
}

// callExpectation records the call on delegate and calls the next queued
// expectation, if there is one.  The delegate stays locked while the
// expectation runs.
func (s *Spy) callExpectation(delegate *Delegate, name string, args []any) ([]any, bool) {
	t := s.t
	t.Helper()

	delegate.Lock()
	defer delegate.Unlock()
	delegate.calls = append(delegate.calls, append([]any(nil), args...))
	if int(delegate.callCount) >= delegate.Len() && !delegate.MultiCallable() {
		return nil, false
	}

	var (
		fn Value
		ok bool
	)
	if int(delegate.callCount) < delegate.Len() {
		fn, ok = delegate.Callables[delegate.callCount].(Value)
	} else {
		var m multi
		m, ok = delegate.Callables[delegate.Len()-1].(multi)
		fn = Value(m)
	}
	if ok && fn.inOrder {
		s.mu.Lock()
		s.ordinal++
		current := s.ordinal
		s.mu.Unlock()
		if fn.ordinal != current {
			t.Errorf("out of order call to %s: expected %d, got %d", name, fn.ordinal, current)
		}
	}

	t.Logf("call to %s.%s: %d", s.name, name, delegate.callCount)
	defer func() { delegate.callCount++ }()
	return fromValues(delegate.Call(t, delegate.callCount, toValues(args...))), true
}

// toValues converts the given values to reflect.Values.
func toValues(in ...any) (out []reflect.Value) {
	out = make([]reflect.Value, len(in))
	for i, v := range in {
		out[i] = reflect.ValueOf(v)
	}
	return
}

func fromValues(in []reflect.Value) (out []any) {
	out = make([]any, len(in))
	for i, v := range in {
		out[i] = v.Interface()
	}
	return
}

// doCall calls the method with the given name on d and sets the given out
// values to the returned values.  No returned values leaves the zero values in
// place.  If the types of the returned values do not match the types of the
// out values, or if the number of returned values does not match the number
// of out values, then the test is marked as failed and the last out value
// will be set to an error if it is assignable to an error type, otherwise
// this function will panic.
func doCall(d Double, name string, in []any, out []reflect.Value) {
	t := d.TB()
	t.Helper()
	results := d.Call(name, in...)
	if len(results) == 0 {
		return
	}
	var err error
	if len(results) != len(out) {
		err = fmt.Errorf("unexpected number of results: expected %d, got %d", len(out), len(results))
	}
	for i := range out {
		if err != nil {
			break
		}
		if results[i] == nil {
			continue
		}
		result := reflect.ValueOf(results[i])
		outType := out[i].Type().Elem()
		if result.Type().AssignableTo(outType) {
			out[i].Elem().Set(result)
		} else {
			err = fmt.Errorf("unexpected type %T for result parameter %s", results[i], outType)
		}
	}
	if err != nil {
		t.Error(err)
		if len(out) == 0 {
			panic(err)
		}
		last := out[len(out)-1]
		if reflect.TypeOf(err).AssignableTo(last.Type().Elem()) {
			last.Elem().Set(reflect.ValueOf(err))
		} else {
			panic(err)
		}
	}
}
