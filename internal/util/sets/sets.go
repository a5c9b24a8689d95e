package sets

// Set is a simple generic hash set for comparable keys.
// Usage: s := sets.New[string]("a","b"); s.Add("c"); if s.Has("b") {...}
type Set[T comparable] map[T]struct{}

// New creates a set pre-populated with the provided values.
func New[T comparable](vals ...T) Set[T] {
	s := make(Set[T], len(vals))
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts value into the set.
func (s Set[T]) Add(v T) { s[v] = struct{}{} }

// Has returns true if v is present.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Ordered is a set that remembers insertion order. The zero value is ready to use.
type Ordered[T comparable] struct {
	seen  Set[T]
	items []T
}

// NewOrdered creates an ordered set from vals, dropping repeats.
func NewOrdered[T comparable](vals ...T) *Ordered[T] {
	o := &Ordered[T]{}
	o.Add(vals...)
	return o
}

// Add appends the values not yet present and reports whether any was new.
func (o *Ordered[T]) Add(vals ...T) bool {
	if o.seen == nil {
		o.seen = make(Set[T])
	}
	added := false
	for _, v := range vals {
		if o.seen.Has(v) {
			continue
		}
		o.seen.Add(v)
		o.items = append(o.items, v)
		added = true
	}
	return added
}

// Has returns true if v is present.
func (o *Ordered[T]) Has(v T) bool { return o.seen.Has(v) }

// Len returns the number of items.
func (o *Ordered[T]) Len() int { return len(o.items) }

// Items returns a copy of the items in insertion order.
func (o *Ordered[T]) Items() []T {
	out := make([]T, len(o.items))
	copy(out, o.items)
	return out
}

// Union returns the items of a followed by the items of b not already in a.
func Union[T comparable](a, b []T) []T {
	o := NewOrdered(a...)
	o.Add(b...)
	return o.Items()
}
