package form

import (
	"reflect"
	"strings"
)

// Value returns the raw nested value tree, disabled controls included. The
// result is a copy.
func (f *Form) Value() map[string]any {
	if f == nil || f.root == nil {
		return nil
	}
	return f.root.value()
}

// Flatten returns the leaf values keyed by dotted path.
func (f *Form) Flatten() map[string]any {
	if f == nil || f.root == nil {
		return nil
	}
	out := make(map[string]any, len(f.index))
	for path, c := range f.index {
		out[path] = normalizeValue(c.value)
	}
	return out
}

// Get returns the value held by the control at path.
func (f *Form) Get(path string) (any, bool) {
	c := f.lookup(path)
	if c == nil {
		return nil, false
	}
	return normalizeValue(c.value), true
}

// Patch applies a new initial value without rebuilding the tree. Controls
// matched by value are overwritten; the others keep their value. A nil value
// clears every control instead. In both cases the form becomes pristine and
// untouched and the baseline is recaptured. No events are emitted.
func (f *Form) Patch(value map[string]any) {
	if f == nil {
		return
	}
	f.initial = normalizeMap(value)
	if f.root == nil {
		return
	}
	if value == nil {
		f.assign(nil, true)
	} else {
		f.assign(f.initial, false)
	}
	f.markPristine()
	f.validateAll()
	f.captureBaseline()
}

// ResetTo replaces every control value with the matching entry of value
// (nil when absent), clears dirty and touched flags and recaptures the
// baseline. Calling it before a tree exists is a no-op.
func (f *Form) ResetTo(value map[string]any) {
	if f == nil || f.root == nil {
		return
	}
	f.assign(normalizeMap(value), true)
	f.markPristine()
	f.validateAll()
	f.captureBaseline()
}

// HasChanges reports whether the current value tree differs from the
// baseline captured at the last build, patch or reset.
func (f *Form) HasChanges() bool {
	if f == nil {
		return false
	}
	return f.hasChanges
}

// Baseline returns a copy of the snapshot HasChanges compares against.
func (f *Form) Baseline() map[string]any {
	if f == nil {
		return nil
	}
	return normalizeMap(f.baseline)
}

// assign writes values into the tree. When clearMissing is set, controls
// without an entry in value are set to nil.
func (f *Form) assign(value map[string]any, clearMissing bool) {
	for _, path := range f.paths {
		c := f.index[path]
		next, ok := lookupPath(value, path)
		switch {
		case ok:
			c.value = normalizeValue(next)
		case clearMissing:
			c.value = nil
		}
	}
}

func (f *Form) markPristine() {
	for _, c := range f.index {
		c.dirty = false
		c.touched = false
	}
	f.submitAttempted = false
}

// captureBaseline replaces the snapshot; the previous one is never mutated.
func (f *Form) captureBaseline() {
	f.baseline = f.root.value()
	f.hasChanges = false
}

func (f *Form) updateHasChanges() {
	f.hasChanges = !deepEqual(f.root.value(), f.baseline)
}

// deepEqual compares normalized value trees. Maps ignore key order, slices
// do not, and anything else is left to reflect.DeepEqual so leaves of any
// type (unexported fields included) compare without panicking.
func deepEqual(a, b any) bool {
	switch x := a.(type) {
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, xv := range x {
			yv, ok := y[k]
			if !ok || !deepEqual(xv, yv) {
				return false
			}
		}
		return true
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !deepEqual(x[i], y[i]) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

func (g *group) value() map[string]any {
	out := make(map[string]any, len(g.order))
	for _, name := range g.order {
		if c, ok := g.controls[name]; ok {
			out[name] = normalizeValue(c.value)
			continue
		}
		if child, ok := g.groups[name]; ok {
			out[name] = child.value()
		}
	}
	return out
}

// lookupPath resolves a dotted path inside a nested value. An exact dotted
// key at the top level is accepted as well, so flat payloads patch too.
func lookupPath(root map[string]any, path string) (any, bool) {
	if root == nil || path == "" {
		return nil, false
	}
	if v, ok := root[path]; ok && strings.Contains(path, ".") {
		return v, true
	}
	var current any = root
	for _, segment := range strings.Split(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		next, ok := node[segment]
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// normalizeValue deep-copies maps and slices so stored values never alias
// caller data. Typed string maps are widened to map[string]any.
func normalizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return normalizeMap(typed)
	case map[string]string:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[k] = v
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = normalizeValue(v)
		}
		return out
	case []string:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = v
		}
		return out
	default:
		return typed
	}
}

func normalizeMap(value map[string]any) map[string]any {
	if value == nil {
		return nil
	}
	out := make(map[string]any, len(value))
	for k, v := range value {
		out[k] = normalizeValue(v)
	}
	return out
}
