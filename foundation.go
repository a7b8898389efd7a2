package foundationtest

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Builder configures CreateMockFoundation and CreateMockAdapter.
type Builder struct {
	newDouble DoubleFactory
	spyOpts   []Option[Spy]
}

// WithDouble makes the builders create their doubles with factory instead of
// NewSpy.
func WithDouble(factory DoubleFactory) Option[Builder] {
	return func(b *Builder) {
		b.newDouble = factory
	}
}

// WithSpyOptions applies opts to every Spy the builders create.  It has no
// effect together with WithDouble.
func WithSpyOptions(opts ...Option[Spy]) Option[Builder] {
	return func(b *Builder) {
		b.spyOpts = append(b.spyOpts, opts...)
	}
}

func newBuilder(opts []Option[Builder]) *Builder {
	b := &Builder{}
	Options(opts...)(b)
	if b.newDouble == nil {
		b.newDouble = func(t testing.TB, name string) Double {
			return NewSpy(t, name, b.spyOpts...)
		}
	}
	return b
}

// CreateMockFoundation returns a double with a stub for every method of class,
// inherited ones included.  The stubs return nothing until configured.
func CreateMockFoundation(t testing.TB, class *Class, opts ...Option[Builder]) Double {
	t.Helper()
	if class == nil {
		t.Fatalf("foundationtest.CreateMockFoundation: nil class")
		return nil
	}
	d := newBuilder(opts).newDouble(t, class.Name)
	for _, name := range class.MethodNames() {
		d.Stub(name)
	}
	return d
}

// CreateMockAdapter returns a double with a stub for every method of the
// default adapter of class.  Each stub returns what the default produces;
// default functions are called once, here.
func CreateMockAdapter(t testing.TB, class *Class, opts ...Option[Builder]) Double {
	t.Helper()
	if class == nil {
		t.Fatalf("foundationtest.CreateMockAdapter: nil class")
		return nil
	}
	d := newBuilder(opts).newDouble(t, class.Name)
	for _, name := range class.DefaultAdapter.Keys() {
		d.Stub(name, class.DefaultAdapter[name].results()...)
	}
	return d
}

// VerifyDefaultAdapter checks that every default adapter method of class is a
// function, that the methods are exactly expectedMethodNames in any order, and
// that calling each default does not panic.  Every foundation test suite
// should include this verification.
func VerifyDefaultAdapter(t testing.TB, class *Class, expectedMethodNames []string) {
	t.Helper()
	if class == nil {
		t.Fatalf("foundationtest.VerifyDefaultAdapter: nil class")
		return
	}
	defaults := class.DefaultAdapter
	adapterKeys := defaults.Keys()
	actualMethodNames := make([]string, 0, len(adapterKeys))
	for _, key := range adapterKeys {
		if defaults[key].IsFunc() {
			actualMethodNames = append(actualMethodNames, key)
		}
	}

	assert.Equal(t, len(adapterKeys), len(actualMethodNames), "Every adapter key must be a function")

	actual := append([]string{}, actualMethodNames...)
	expected := append([]string{}, expectedMethodNames...)
	sort.Strings(actual)
	sort.Strings(expected)
	assert.Equal(t, expected, actual, unequalMessage(actual, expected))

	for _, name := range actualMethodNames {
		def := defaults[name]
		assert.NotPanics(t, func() { def.results() }, "default adapter method %s", name)
	}
}
