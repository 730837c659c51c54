package stream

// GrowthHook populates the slots created by a reallocation.
//
// When it is called, grown[:len(old)] already holds the elements of old at the
// same indices; the hook must populate grown[len(old):]. It must not modify
// old or grown[:len(old)].
type GrowthHook[T any] func(old, grown []T)

// ZeroFill returns a hook that leaves the zero value in new slots.
func ZeroFill[T any]() GrowthHook[T] {
	return func(_, _ []T) {}
}

// Fill returns a hook that populates each new slot with a fresh value from
// factory. A nil factory behaves like ZeroFill.
func Fill[T any](factory func() T) GrowthHook[T] {
	if factory == nil {
		return ZeroFill[T]()
	}

	return func(old, grown []T) {
		for i := len(old); i < len(grown); i++ {
			grown[i] = factory()
		}
	}
}
