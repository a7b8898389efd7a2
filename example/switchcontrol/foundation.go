// Package switchcontrol is the foundation of an on/off switch.  It exists to
// show how a foundation, its adapter and its default adapter are laid out so
// that foundationtest can drive them.
package switchcontrol

import "strconv"

const (
	CSSChecked  = "switch--checked"
	CSSDisabled = "switch--disabled"

	AttrAriaChecked = "aria-checked"

	EventChange = "change"
)

// Event is the payload of an interaction event.
type Event map[string]any

type EventHandler func(Event)

// Adapter is what the foundation needs from the rendered switch.
type Adapter interface {
	AddClass(className string)
	RemoveClass(className string)
	SetNativeControlChecked(checked bool)
	SetNativeControlDisabled(disabled bool)
	SetNativeControlAttr(attr, value string)
	IsNativeControlChecked() bool
	RegisterInteractionHandler(eventType string, handler EventHandler)
	DeregisterInteractionHandler(eventType string, handler EventHandler)
}

// Control is the API of the foundation.
type Control interface {
	Init()
	Destroy()
	SetChecked(checked bool)
	SetDisabled(disabled bool)
	Checked() bool
}

// AdapterFuncs is an Adapter built from one function per method.  Nil
// functions do nothing and report false.
type AdapterFuncs struct {
	AddClass                     func(className string)
	RemoveClass                  func(className string)
	SetNativeControlChecked      func(checked bool)
	SetNativeControlDisabled     func(disabled bool)
	SetNativeControlAttr         func(attr, value string)
	IsNativeControlChecked       func() bool
	RegisterInteractionHandler   func(eventType string, handler EventHandler)
	DeregisterInteractionHandler func(eventType string, handler EventHandler)
}

// DefaultAdapter is the adapter used when none is given.  Every method is
// safe to call and does nothing.
var DefaultAdapter = AdapterFuncs{
	AddClass:                     func(string) {},
	RemoveClass:                  func(string) {},
	SetNativeControlChecked:      func(bool) {},
	SetNativeControlDisabled:     func(bool) {},
	SetNativeControlAttr:         func(string, string) {},
	IsNativeControlChecked:       func() bool { return false },
	RegisterInteractionHandler:   func(string, EventHandler) {},
	DeregisterInteractionHandler: func(string, EventHandler) {},
}

// Adapter returns a funcs as an Adapter.
func (a AdapterFuncs) Adapter() Adapter { return funcAdapter{funcs: a} }

type funcAdapter struct {
	funcs AdapterFuncs
}

func (a funcAdapter) AddClass(className string) {
	if a.funcs.AddClass != nil {
		a.funcs.AddClass(className)
	}
}

func (a funcAdapter) RemoveClass(className string) {
	if a.funcs.RemoveClass != nil {
		a.funcs.RemoveClass(className)
	}
}

func (a funcAdapter) SetNativeControlChecked(checked bool) {
	if a.funcs.SetNativeControlChecked != nil {
		a.funcs.SetNativeControlChecked(checked)
	}
}

func (a funcAdapter) SetNativeControlDisabled(disabled bool) {
	if a.funcs.SetNativeControlDisabled != nil {
		a.funcs.SetNativeControlDisabled(disabled)
	}
}

func (a funcAdapter) SetNativeControlAttr(attr, value string) {
	if a.funcs.SetNativeControlAttr != nil {
		a.funcs.SetNativeControlAttr(attr, value)
	}
}

func (a funcAdapter) IsNativeControlChecked() bool {
	return a.funcs.IsNativeControlChecked != nil && a.funcs.IsNativeControlChecked()
}

func (a funcAdapter) RegisterInteractionHandler(eventType string, handler EventHandler) {
	if a.funcs.RegisterInteractionHandler != nil {
		a.funcs.RegisterInteractionHandler(eventType, handler)
	}
}

func (a funcAdapter) DeregisterInteractionHandler(eventType string, handler EventHandler) {
	if a.funcs.DeregisterInteractionHandler != nil {
		a.funcs.DeregisterInteractionHandler(eventType, handler)
	}
}

// Foundation implements Control.
type Foundation struct {
	adapter  Adapter
	checked  bool
	onChange EventHandler
}

var _ Control = (*Foundation)(nil)

// New returns a Foundation driving adapter, or DefaultAdapter when adapter
// is nil.
func New(adapter Adapter) *Foundation {
	if adapter == nil {
		adapter = DefaultAdapter.Adapter()
	}
	return &Foundation{adapter: adapter}
}

// Init syncs the styling with the native control and starts listening for
// changes.
func (f *Foundation) Init() {
	f.onChange = f.handleChange
	f.adapter.RegisterInteractionHandler(EventChange, f.onChange)
	f.updateChecked(f.adapter.IsNativeControlChecked())
}

func (f *Foundation) Destroy() {
	if f.onChange == nil {
		return
	}
	f.adapter.DeregisterInteractionHandler(EventChange, f.onChange)
	f.onChange = nil
}

func (f *Foundation) SetChecked(checked bool) {
	f.adapter.SetNativeControlChecked(checked)
	f.updateChecked(checked)
}

func (f *Foundation) SetDisabled(disabled bool) {
	f.adapter.SetNativeControlDisabled(disabled)
	if disabled {
		f.adapter.AddClass(CSSDisabled)
	} else {
		f.adapter.RemoveClass(CSSDisabled)
	}
}

func (f *Foundation) Checked() bool { return f.checked }

// handleChange follows the native control; events without a "checked" field
// read it back from the adapter.
func (f *Foundation) handleChange(evt Event) {
	checked, ok := evt["checked"].(bool)
	if !ok {
		checked = f.adapter.IsNativeControlChecked()
	}
	f.updateChecked(checked)
}

func (f *Foundation) updateChecked(checked bool) {
	f.checked = checked
	if checked {
		f.adapter.AddClass(CSSChecked)
	} else {
		f.adapter.RemoveClass(CSSChecked)
	}
	f.adapter.SetNativeControlAttr(AttrAriaChecked, strconv.FormatBool(checked))
}
