package foundationtest

import (
	"fmt"
	"reflect"
	"testing"
)

// Double is a stand-in object whose methods are addressed by name.  Typed
// doubles embed a Double and forward each method to Call, see Call0 and
// friends.
type Double interface {
	// Name identifies the double in failure messages.
	Name() string
	// TB returns the test the double reports to.
	TB() testing.TB
	// Stub makes name callable; calls return values unless a fake applies.
	Stub(name string, values ...any)
	// Fake makes calls to name whose arguments satisfy args invoke fn, which
	// must be a function.  Without matchers every call to name is faked.
	Fake(name string, fn any, args ...Matcher)
	// Call invokes name, recording the call.
	Call(name string, args ...any) []any
	// Calls returns the recorded arguments of each call to name.
	Calls(name string) [][]any
	// Methods returns the sorted names the double knows about.
	Methods() []string
}

// DoubleFactory creates a Double reporting to t.
type DoubleFactory func(t testing.TB, name string) Double

// Matcher decides whether a single call argument is acceptable.
type Matcher struct {
	desc  string
	match func(any) bool
}

// MatchedBy returns a Matcher that accepts arguments for which fn is true.
func MatchedBy(desc string, fn func(any) bool) Matcher {
	return Matcher{desc: desc, match: fn}
}

func (m Matcher) Match(arg any) bool {
	if m.match == nil {
		return false
	}
	return m.match(arg)
}

func (m Matcher) String() string { return m.desc }

// Anything accepts any argument, nil included.
func Anything() Matcher {
	return MatchedBy("anything", func(any) bool { return true })
}

// AnyString accepts any value whose kind is string.
func AnyString() Matcher {
	return MatchedBy("any string", func(arg any) bool {
		return arg != nil && reflect.TypeOf(arg).Kind() == reflect.String
	})
}

// AnyFunc accepts any non-nil function.
func AnyFunc() Matcher {
	return MatchedBy("any function", func(arg any) bool {
		v := reflect.ValueOf(arg)
		return v.Kind() == reflect.Func && !v.IsNil()
	})
}

// Eq accepts arguments deeply equal to want.
func Eq(want any) Matcher {
	return MatchedBy(fmt.Sprintf("%#v", want), func(arg any) bool {
		return reflect.DeepEqual(arg, want)
	})
}
