package foundationtest

import (
	"fmt"
	"reflect"
	"sort"
)

// Default is the default implementation of one adapter method: either a plain
// value or a function producing the value.
type Default struct {
	value any
	fn    reflect.Value
}

// DefaultValue returns a Default holding v.  A DefaultValue is not a
// function, so VerifyDefaultAdapter rejects it.
func DefaultValue(v any) Default {
	return Default{value: v}
}

// DefaultFunc returns a Default produced by calling fn.  fn may declare
// parameters; it is called with their zero values.
// Panics if fn is not a function.
func DefaultFunc(fn any) Default {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		panic(fmt.Sprintf("foundationtest.DefaultFunc: expected function, got %T", fn))
	}
	return Default{fn: v}
}

func (d Default) IsFunc() bool { return d.fn.IsValid() }

// Resolve returns the default value, calling the function of a DefaultFunc.
// Functions without results resolve to nil.
func (d Default) Resolve() any {
	results := d.results()
	if len(results) == 0 {
		return nil
	}
	return results[0]
}

// results returns every value the default produces.  A nil DefaultValue
// produces nothing.
func (d Default) results() []any {
	if !d.IsFunc() {
		if d.value == nil {
			return nil
		}
		return []any{d.value}
	}
	funcType := d.fn.Type()
	n := funcType.NumIn()
	if funcType.IsVariadic() {
		n--
	}
	in := make([]reflect.Value, n)
	for i := range in {
		in[i] = reflect.Zero(funcType.In(i))
	}
	return fromValues(d.fn.Call(in))
}

// DefaultAdapter maps adapter method names to their defaults.
type DefaultAdapter map[string]Default

// Keys returns the method names in sorted order.
func (a DefaultAdapter) Keys() []string {
	keys := make([]string, 0, len(a))
	for key := range a {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// DefaultsFrom builds a DefaultAdapter from a struct, or a pointer to one,
// whose exported fields are the adapter methods.  Non-nil function fields
// become DefaultFunc, nil function fields become DefaultValue(nil) and every
// other field becomes DefaultValue.
// Panics if adapter is not a struct.
func DefaultsFrom(adapter any) DefaultAdapter {
	v := reflect.ValueOf(adapter)
	for v.Kind() == reflect.Pointer && !v.IsNil() {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		panic(fmt.Sprintf("foundationtest.DefaultsFrom: expected struct, got %T", adapter))
	}
	defaults := make(DefaultAdapter, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		field := v.Type().Field(i)
		if !field.IsExported() {
			continue
		}
		switch value := v.Field(i); {
		case value.Kind() != reflect.Func:
			defaults[field.Name] = DefaultValue(value.Interface())
		case value.IsNil():
			defaults[field.Name] = DefaultValue(nil)
		default:
			defaults[field.Name] = Default{fn: value}
		}
	}
	return defaults
}
