//go:build !mockstub

// Package switchtest provides doubles for testing code built on
// switchcontrol.
package switchtest

import (
	"testing"

	foundationtest "github.com/Versent/go-foundationtest"
	"github.com/Versent/go-foundationtest/example/switchcontrol"
)

// Class describes the switch foundation and its default adapter.
func Class() *foundationtest.Class {
	class := foundationtest.ClassOf[switchcontrol.Control](foundationtest.DefaultsFrom(switchcontrol.DefaultAdapter))
	class.Name = "Foundation"
	return class
}

// NewAdapter returns an Adapter whose methods behave like the default
// adapter until configured.
func NewAdapter(t testing.TB, opts ...foundationtest.Option[foundationtest.Builder]) *Adapter {
	t.Helper()
	return &Adapter{Double: foundationtest.CreateMockAdapter(t, Class(), opts...)}
}

// Control is a switchcontrol.Control double.
type Control struct {
	foundationtest.Double
}

// NewControl returns a Control with every foundation method stubbed.
func NewControl(t testing.TB, opts ...foundationtest.Option[foundationtest.Builder]) *Control {
	t.Helper()
	return &Control{Double: foundationtest.CreateMockFoundation(t, Class(), opts...)}
}

var _ switchcontrol.Control = (*Control)(nil)

func (c *Control) Init() { foundationtest.Call0(c.Double, "Init") }
func (c *Control) Destroy() { foundationtest.Call0(c.Double, "Destroy") }

func (c *Control) SetChecked(checked bool) {
	foundationtest.Call0(c.Double, "SetChecked", checked)
}

func (c *Control) SetDisabled(disabled bool) {
	foundationtest.Call0(c.Double, "SetDisabled", disabled)
}

func (c *Control) Checked() bool {
	return foundationtest.Call1[bool](c.Double, "Checked")
}
