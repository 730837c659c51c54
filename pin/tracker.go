package pin

// tracker remembers the state key of the previous frame.
type tracker struct {
	synced  bool
	changed bool
	last    any
}

// observe records key and reports whether it differs from the previous one.
// key must be comparable.
func (t *tracker) observe(key any) bool {
	t.changed = !t.synced || key != t.last
	t.last = key
	t.synced = true

	return t.changed
}
