// Package event provides the ordered, synchronous publish/subscribe list used
// by the simulation components in place of multicast delegates.
package event

// Handle identifies a registered listener.
type Handle uint64

// Listeners dispatches values to registered callbacks in registration order.
//
// Dispatch is synchronous and single-threaded. A listener removed while a
// broadcast is running is skipped for the rest of that broadcast; the slot is
// compacted once the outermost Emit returns. Listeners added during a
// broadcast first receive the next one.
type Listeners[T any] struct {
	entries []entry[T]
	next    Handle
	depth   int
	dirty   bool
}

type entry[T any] struct {
	id Handle
	fn func(T)
}

// Add registers fn and returns a handle for Remove. Nil callbacks are ignored
// and yield the zero handle.
func (l *Listeners[T]) Add(fn func(T)) Handle {
	if fn == nil {
		return 0
	}
	l.next++
	l.entries = append(l.entries, entry[T]{id: l.next, fn: fn})
	return l.next
}

// Remove unregisters the listener. Unknown or already removed handles are ignored.
func (l *Listeners[T]) Remove(h Handle) bool {
	if h == 0 {
		return false
	}
	for i := range l.entries {
		if l.entries[i].id != h || l.entries[i].fn == nil {
			continue
		}
		if l.depth > 0 {
			l.entries[i].fn = nil
			l.dirty = true
			return true
		}
		l.entries = append(l.entries[:i], l.entries[i+1:]...)
		return true
	}
	return false
}

// Emit delivers v to every listener registered before the call.
func (l *Listeners[T]) Emit(v T) {
	n := len(l.entries)
	l.depth++
	for i := 0; i < n && i < len(l.entries); i++ {
		if fn := l.entries[i].fn; fn != nil {
			fn(v)
		}
	}
	l.depth--
	if l.depth == 0 && l.dirty {
		l.compact()
	}
}

// Len reports the number of live listeners.
func (l *Listeners[T]) Len() int {
	n := 0
	for _, e := range l.entries {
		if e.fn != nil {
			n++
		}
	}
	return n
}

// Clear drops every listener.
func (l *Listeners[T]) Clear() {
	if l.depth > 0 {
		for i := range l.entries {
			l.entries[i].fn = nil
		}
		l.dirty = true
		return
	}
	l.entries = l.entries[:0]
}

func (l *Listeners[T]) compact() {
	kept := l.entries[:0]
	for _, e := range l.entries {
		if e.fn != nil {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(l.entries); i++ {
		l.entries[i] = entry[T]{}
	}
	l.entries = kept
	l.dirty = false
}

// Subscription cancels one registration. The zero value is inert.
type Subscription struct {
	h      Handle
	remove func(Handle) bool
}

// Subscribe registers fn and wraps the handle in a Subscription.
func (l *Listeners[T]) Subscribe(fn func(T)) Subscription {
	h := l.Add(fn)
	if h == 0 {
		return Subscription{}
	}
	return Subscription{h: h, remove: l.Remove}
}

// Cancel unregisters the listener. Repeated calls are no-ops.
func (s Subscription) Cancel() bool {
	if s.remove == nil {
		return false
	}
	return s.remove(s.h)
}
