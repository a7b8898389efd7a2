package foundationtest

type ordered struct {
	inOrder bool
	ordinal uint
}

func orderedOption(inOrder bool, options []Option[Spy]) Option[Spy] {
	return func(spy *Spy) {
		defer func(restore bool) {
			spy.inOrder = restore
		}(spy.inOrder)
		spy.inOrder = inOrder
		for _, option := range options {
			option(spy)
		}
	}
}

// ExpectInOrder requires the expectations registered by options to be called
// in the order they are registered.
func ExpectInOrder(options ...Option[Spy]) Option[Spy] {
	return orderedOption(true, options)
}

func ExpectAnyOrder(options ...Option[Spy]) Option[Spy] {
	return orderedOption(false, options)
}
