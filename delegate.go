package foundationtest

import "sync"

type CallCount int

// Delegate represents a method of a Spy.  Queued expectations are consumed
// first, then fakes, then the stubbed return values.
type Delegate struct {
	sync.Mutex
	Callables
	callCount CallCount

	fakes   []fake
	stubbed bool
	returns []any
	calls   [][]any
}

// fake is a side effect that only applies to calls satisfying its matchers.
type fake struct {
	matchers []Matcher
	Value
}

func (f fake) matches(args []any) bool {
	if len(f.matchers) == 0 {
		return true
	}
	if len(f.matchers) != len(args) {
		return false
	}
	for i, m := range f.matchers {
		if !m.Match(args[i]) {
			return false
		}
	}
	return true
}

// Append adds one or more callables to the delegate.
func (d *Delegate) Append(callable ...Callable) Callables {
	d.Lock()
	defer d.Unlock()
	d.Callables = d.Callables.Append(callable...)
	return d.Callables
}

func (d *Delegate) setReturns(values []any) {
	d.Lock()
	defer d.Unlock()
	d.stubbed = true
	d.returns = append([]any(nil), values...)
}

func (d *Delegate) addFake(f fake) {
	d.Lock()
	defer d.Unlock()
	d.fakes = append(d.fakes, f)
}

// fakeFor returns the most recently added fake that matches args.
// The caller must hold the lock.
func (d *Delegate) fakeFor(args []any) (fake, bool) {
	for i := len(d.fakes) - 1; i >= 0; i-- {
		if d.fakes[i].matches(args) {
			return d.fakes[i], true
		}
	}
	return fake{}, false
}

func (d *Delegate) recorded() [][]any {
	d.Lock()
	defer d.Unlock()
	calls := make([][]any, len(d.calls))
	for i, args := range d.calls {
		calls[i] = append([]any(nil), args...)
	}
	return calls
}

// delegateByName retrieves or creates a Delegate for a given method name.  It
// is safe to call from multiple goroutines.
func delegateByName(spy *Spy, name string) *Delegate {
	spy.mu.Lock()
	defer spy.mu.Unlock()
	delegate, ok := spy.Delegates[name]
	if !ok {
		delegate = new(Delegate)
		spy.Delegates[name] = delegate
	}
	return delegate
}
