//go:build mockstub

package switchtest

import "github.com/Versent/go-foundationtest/example/switchcontrol"

// Adapter is a switchcontrol.Adapter double.
type Adapter struct {
	switchcontrol.Adapter
}
