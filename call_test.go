package foundationtest

import (
	"errors"
	"reflect"
	"testing"
)

func TestDoCall(t *testing.T) {
	tests := []struct {
		name        string
		delegate    *Delegate
		in          []any
		out         []reflect.Value
		results     []reflect.Value
		expectFail  bool
		expectPanic bool
	}{
		{
			name: "Matching types and values",
			delegate: &Delegate{Callables: Callables{Value{Value: reflect.ValueOf(func(t testing.TB, in string) string {
				if in != "input" {
					t.Errorf("unexpected input: expected %q, got %q", "input", in)
				}
				return "result"
			})}}},
			in:      []any{"input"},
			out:     toValues(new(string)),
			results: toValues("result"),
		},
		{
			name: "Matching types and values, multi",
			delegate: &Delegate{Callables: Callables{multi{Value: reflect.ValueOf(func(t testing.TB, count CallCount, in string) string {
				if count != 0 {
					t.Errorf("unexpected count: expected %d, got %d", 0, count)
				}
				if in != "input" {
					t.Errorf("unexpected input: expected %q, got %q", "input", in)
				}
				return "result"
			})}}},
			in:      []any{"input"},
			out:     toValues(new(string)),
			results: toValues("result"),
		},
		{
			name: "Matching types and values, variadic",
			delegate: &Delegate{Callables: Callables{Value{Value: reflect.ValueOf(func(t testing.TB, in ...string) string {
				if in[0] != "input" {
					t.Errorf("unexpected input: expected %q, got %q", "input", in)
				}
				return "result"
			})}}},
			in:      []any{[]string{"input"}},
			out:     toValues(new(string)),
			results: toValues("result"),
		},
		{
			name:     "Stubbed values",
			delegate: &Delegate{stubbed: true, returns: []any{"stub", 2}},
			out:      toValues(new(string), new(int)),
			results:  toValues("stub", 2),
		},
		{
			name:     "Stubbed without values",
			delegate: &Delegate{stubbed: true},
			out:      toValues(new(string), new(error)),
			results:  []reflect.Value{reflect.ValueOf(""), reflect.Zero(reflect.TypeOf((*error)(nil)).Elem())},
		},
		{
			name: "Fake",
			delegate: &Delegate{fakes: []fake{{Value: Value{Value: reflect.ValueOf(func(in string) string {
				return in + "!"
			})}}}},
			in:      []any{"input"},
			out:     toValues(new(string)),
			results: toValues("input!"),
		},
		{
			name: "Type mismatch",
			delegate: &Delegate{Callables: Callables{Value{Value: reflect.ValueOf(func() string {
				return "result"
			})}}},
			out:         toValues(new(int)),
			results:     toValues(0),
			expectFail:  true,
			expectPanic: true,
		},
		{
			name: "Unexpected number of results, panic",
			delegate: &Delegate{Callables: Callables{Value{Value: reflect.ValueOf(func() (string, string) {
				return "a", "b"
			})}}},
			out:         toValues(new(string)),
			results:     toValues(""),
			expectFail:  true,
			expectPanic: true,
		},
		{
			name: "Unexpected number of results, error",
			delegate: &Delegate{Callables: Callables{Value{Value: reflect.ValueOf(func() (string, string) {
				return "a", "b"
			})}}},
			out:        toValues(new(error)),
			results:    toValues(errors.New("unexpected number of results: expected 1, got 2")),
			expectFail: true,
		},
		{
			name:       "Unexpected call",
			delegate:   &Delegate{},
			out:        toValues(new(error)),
			results:    []reflect.Value{reflect.Zero(reflect.TypeOf((*error)(nil)).Elem())},
			expectFail: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockT := new(testing.T)
			defer func() {
				if tt.expectFail && !mockT.Failed() {
					t.Errorf("expected a failure, got none")
				} else if !tt.expectFail && mockT.Failed() {
					t.Errorf("expected no failure, got fail")
				}
				if len(tt.out) != len(tt.results) {
					t.Fatalf("expected %d results, got %d", len(tt.results), len(tt.out))
				}
				for i := range tt.results {
					if !reflect.DeepEqual(tt.out[i].Elem().Interface(), tt.results[i].Interface()) {
						t.Errorf("out[%d]: expected %v, got %v", i, tt.results[i].Interface(), tt.out[i].Elem().Interface())
					}
				}
			}()
			if tt.expectPanic {
				defer func() {
					if recover() == nil {
						t.Errorf("Expected a panic, got none")
					}
				}()
			}
			spy := &Spy{
				t:         mockT,
				name:      "spy",
				Delegates: Delegates{"testMethod": tt.delegate},
			}

			doCall(spy, "testMethod", tt.in, tt.out)
		})
	}
}

func TestCallables_Call(t *testing.T) {
	once := Value{Value: reflect.ValueOf(func() int { return 1 })}
	many := multi{Value: reflect.ValueOf(func(n CallCount) int { return int(n) })}

	c := Callables{once, many}
	if !c.MultiCallable() {
		t.Fatal("expected trailing multi to make the callables reusable")
	}
	for i, want := range []int{1, 1, 2, 3} {
		got := c.Call(t, CallCount(i), nil)
		if got[0].Interface() != want {
			t.Errorf("call %d: expected %d, got %v", i, want, got[0].Interface())
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("expected a panic past the last single callable")
		}
	}()
	Callables{once}.Call(t, 1, nil)
}
