package foundationtest

import (
	"fmt"
	"maps"
	"reflect"
)

// EventInfo is the payload handed to a captured handler.  The "type" key
// always holds the event type the handler was registered for.
type EventInfo map[string]any

// Trigger fires a captured handler.  The fields of info are merged in order,
// then "type" is set.
type Trigger func(info ...EventInfo)

// Handlers maps event types to the trigger of the handler registered last for
// that type.
type Handlers map[string]Trigger

// Fire triggers the handler registered for eventType and reports whether
// there was one.
func (h Handlers) Fire(eventType string, info ...EventInfo) bool {
	trigger, ok := h[eventType]
	if !ok {
		return false
	}
	trigger(info...)
	return true
}

// CaptureHandlers fakes the method of adapter used to register event
// handlers.  The method must take the event type, of any string type, and the
// handler, in that order.  Registrations made after this call show up in the
// returned map, which lets a test fire events without dispatching them.
func CaptureHandlers(adapter Double, method string) Handlers {
	handlers := Handlers{}
	adapter.Fake(method, func(eventType, handler any) {
		name := reflect.ValueOf(eventType).String()
		handlers[name] = trigger(name, handler)
	}, AnyString(), AnyFunc())
	return handlers
}

// trigger adapts handler, which may take no argument or one argument an
// EventInfo converts to.
// Panics if handler has any other shape.
func trigger(eventType string, handler any) Trigger {
	fn := reflect.ValueOf(handler)
	funcType := fn.Type()
	var param reflect.Type
	switch {
	case funcType.NumIn() == 0:
	case funcType.NumIn() == 1 && !funcType.IsVariadic():
		param = funcType.In(0)
		if !reflect.TypeOf(EventInfo(nil)).ConvertibleTo(param) {
			panic(fmt.Sprintf("foundationtest.CaptureHandlers: unsupported handler %s for %q", funcType, eventType))
		}
	default:
		panic(fmt.Sprintf("foundationtest.CaptureHandlers: unsupported handler %s for %q", funcType, eventType))
	}

	return func(info ...EventInfo) {
		evt := EventInfo{}
		for _, fields := range info {
			maps.Copy(evt, fields)
		}
		evt["type"] = eventType
		if param == nil {
			fn.Call(nil)
			return
		}
		fn.Call([]reflect.Value{reflect.ValueOf(evt).Convert(param)})
	}
}
