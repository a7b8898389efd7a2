package foundationtest

import (
	"fmt"
	"reflect"
)

// Foundation is the behaviour every component foundation shares.
type Foundation interface {
	Init()
	Destroy()
}

// Class describes a foundation type: the methods it declares, the type it
// builds on and the default adapter it ships with.
type Class struct {
	Name           string
	Methods        []string
	Base           *Class
	DefaultAdapter DefaultAdapter
}

// BaseClass describes Foundation.
var BaseClass = &Class{
	Name:    "Foundation",
	Methods: []string{"Init", "Destroy"},
}

// MethodNames returns the class's own methods followed by those of its base
// types, each name once.
func (c *Class) MethodNames() []string {
	var names []string
	seen := make(map[string]bool)
	visited := make(map[*Class]bool)
	for class := c; class != nil && !visited[class]; class = class.Base {
		visited[class] = true
		for _, name := range class.Methods {
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// ClassOf describes the foundation interface F.  The methods are the exported
// methods of F, the base is BaseClass.
// Panics if F is not an interface type.
func ClassOf[F any](defaults DefaultAdapter) *Class {
	typ := reflect.TypeOf((*F)(nil)).Elem()
	if typ.Kind() != reflect.Interface {
		panic(fmt.Sprintf("foundationtest.ClassOf: expected interface, got %v", typ))
	}
	methods := make([]string, 0, typ.NumMethod())
	for i := 0; i < typ.NumMethod(); i++ {
		if method := typ.Method(i); method.IsExported() {
			methods = append(methods, method.Name)
		}
	}
	return &Class{
		Name:           typ.Name(),
		Methods:        methods,
		Base:           BaseClass,
		DefaultAdapter: defaults,
	}
}
