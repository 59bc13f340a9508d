package refcount

import "strings"

// Kind categorizes a handle-state violation.
type Kind string

const (
	// KindUnderflow: a counter was decremented past zero. Reachable only by
	// releasing through a by-value copy of an already-released handle.
	KindUnderflow Kind = "count_underflow"
	// KindUseAfterFree: a handle operated on a control block whose
	// references were already gone. Same root cause: a by-value struct copy
	// bypassing the counting protocol.
	KindUseAfterFree Kind = "use_after_free"
)

// StateError reports a broken handle contract. The API has no recoverable
// errors; StateError values appear only as panic payloads, marking bugs in
// the calling code rather than runtime conditions.
type StateError struct {
	Op     string
	Kind   Kind
	Detail string
}

func (e *StateError) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(e.Op)
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	return b.String()
}

// Is reports whether target matches this error by kind.
func (e *StateError) Is(target error) bool {
	if t, ok := target.(*StateError); ok {
		return e.Kind == t.Kind
	}
	return false
}
