package domain

// State is the mutable record threaded through one workflow run.
//
// Fields are optional and added incrementally by steps; no fixed schema is
// enforced beyond the keys a step or router actually reads. Ownership of the
// map transfers from the executor to the current step and back: a step may
// mutate the map it receives or return a replacement, but must not retain a
// reference after returning. One logical State exists per run, so no locking
// is required.
type State map[string]any

// NewState creates an empty state.
func NewState() State {
	return make(State)
}

// Clone returns a shallow copy of the state.
// Nested values are shared; steps that need isolation must copy them.
func (s State) Clone() State {
	if s == nil {
		return nil
	}
	next := make(State, len(s))
	for k, v := range s {
		next[k] = v
	}
	return next
}

// Bool reads a boolean field. Missing or mistyped keys return false.
func (s State) Bool(key string) bool {
	v, ok := s[key].(bool)
	return ok && v
}

// String reads a string field. Missing or mistyped keys return "".
func (s State) String(key string) string {
	v, _ := s[key].(string)
	return v
}

// Map reads a nested map field. Missing or mistyped keys return nil.
func (s State) Map(key string) map[string]any {
	v, _ := s[key].(map[string]any)
	return v
}

// Has reports whether a field is present, regardless of its value.
func (s State) Has(key string) bool {
	_, ok := s[key]
	return ok
}
