package settings

// Setting is an optionally-set property value. A profile node only carries
// values that were explicitly written in its configuration source; everything
// else resolves through the node's parent chain. The zero value is "unset".
type Setting[T any] struct {
	value T
	set   bool
}

// Set stores a value and marks the setting as explicitly set.
func (s *Setting[T]) Set(v T) {
	s.value = v
	s.set = true
}

// Clear removes the value, making the setting resolve through inheritance
// again.
func (s *Setting[T]) Clear() {
	var zero T
	s.value = zero
	s.set = false
}

// IsSet reports whether this node itself carries a value.
func (s *Setting[T]) IsSet() bool {
	return s.set
}

// Value returns the stored value. It is only meaningful when IsSet is true.
func (s *Setting[T]) Value() T {
	return s.value
}

// Or returns the stored value, or def when the setting is unset.
func (s *Setting[T]) Or(def T) T {
	if s.set {
		return s.value
	}
	return def
}
