package form

// EventType identifies what changed.
type EventType string

const (
	EventValueChanged  EventType = "value"
	EventStatusChanged EventType = "status"
	EventSubmitted     EventType = "submit"
)

// Event is delivered to subscribers after a user-facing operation. Path is
// empty for form-wide changes.
type Event struct {
	Type       EventType
	Path       string
	HasChanges bool
	Valid      bool
}

type listener struct {
	id int
	fn func(Event)
}

// Subscribe registers fn for change notifications and returns a function
// that removes it. Build, Patch and ResetTo do not notify.
//
// Listeners may call back into the form. Events raised while listeners run
// are queued and delivered after the current one, so nested edits converge
// instead of recursing.
func (f *Form) Subscribe(fn func(Event)) (unsubscribe func()) {
	if f == nil || fn == nil {
		return func() {}
	}
	f.nextID++
	id := f.nextID
	f.listeners = append(f.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range f.listeners {
			if l.id == id {
				f.listeners = append(f.listeners[:i:i], f.listeners[i+1:]...)
				return
			}
		}
	}
}

func (f *Form) emit(evt Event) {
	if f == nil || len(f.listeners) == 0 {
		return
	}
	f.queue = append(f.queue, evt)
	if f.dispatching {
		return
	}
	f.dispatching = true
	defer func() { f.dispatching = false }()

	for len(f.queue) > 0 {
		next := f.queue[0]
		f.queue = f.queue[1:]
		next.HasChanges = f.hasChanges
		next.Valid = f.Valid()
		for _, l := range append([]listener(nil), f.listeners...) {
			l.fn(next)
		}
	}
}
