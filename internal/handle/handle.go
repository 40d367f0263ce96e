// Package handle provides the opaque identifier the native layer hands out
// for windows, panels and screens.
package handle

import "fmt"

// Kind identifies which family of native resource a handle refers to.
type Kind uint8

const (
	KindNone Kind = iota
	KindWindow
	KindPanel
	KindScreen
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindWindow:
		return "window"
	case KindPanel:
		return "panel"
	case KindScreen:
		return "screen"
	default:
		return "none"
	}
}

// Handle is an opaque token for a native resource.
// Two handles are equal iff they name the same resource. A Handle carries
// no ownership; whoever holds one decides separately whether to free it.
type Handle struct {
	kind Kind
	raw  uintptr
}

// New creates a handle. Only native drivers should call this.
func New(kind Kind, raw uintptr) Handle {
	return Handle{kind: kind, raw: raw}
}

// Raw returns the token to pass back into primitive operations.
func (h Handle) Raw() uintptr {
	return h.raw
}

// Kind returns the resource family.
func (h Handle) Kind() Kind {
	return h.kind
}

// Equal reports identity equality.
func (h Handle) Equal(other Handle) bool {
	return h == other
}

// IsZero reports whether this is the null handle.
func (h Handle) IsZero() bool {
	return h.raw == 0
}

func (h Handle) String() string {
	if h.IsZero() {
		return "nil"
	}
	return fmt.Sprintf("%s#%d", h.kind, h.raw)
}
