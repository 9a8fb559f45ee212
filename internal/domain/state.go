package domain

// ChangeKind identifies what kind of store mutation produced a ChangeEvent
type ChangeKind int

const (
	ChangeCreated ChangeKind = iota
	ChangeRemoved
	ChangeChanged
	ChangeMoved
	ChangeExternal // committed by another process; node unknown
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeCreated:
		return "created"
	case ChangeRemoved:
		return "removed"
	case ChangeChanged:
		return "changed"
	case ChangeMoved:
		return "moved"
	case ChangeExternal:
		return "external"
	default:
		return "unknown"
	}
}

// ChangeEvent is a store change notification. Consumers treat every event as
// "invalidate and reconcile"; the payload is informational.
type ChangeEvent struct {
	Kind ChangeKind
	ID   string
}

// CollapsedSet holds the identities of folders the user collapsed. It is UI
// state and never written to the store.
type CollapsedSet map[string]bool

// Has reports whether the folder is collapsed
func (s CollapsedSet) Has(id string) bool {
	return s[id]
}

// Clone returns an independent copy of the set
func (s CollapsedSet) Clone() CollapsedSet {
	out := make(CollapsedSet, len(s))
	for id := range s {
		out[id] = true
	}
	return out
}

// Prune drops identities that are no longer folders in p
func (s CollapsedSet) Prune(p *Projection) {
	for id := range s {
		if !p.Has(id) {
			delete(s, id)
		}
	}
}
