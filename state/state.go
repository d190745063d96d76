// Package state implements the shape-state machine (spec §4.4) that
// tracks a graph's current shape-inference mode and whether a fresh,
// as-yet-unbound placeholder dimension may legally be coined right now.
package state

// Fixedness distinguishes the Weak/Full sub-modes of the Fixed and
// Required states. In Fixed, Weak means no new placeholder names are
// allowed yet and Full means they are; in Required it is the reverse
// (see [State.IsNewVarAvailable]).
type Fixedness uint8

const (
	Weak Fixedness = iota
	Full
)

// String returns a human-readable name for the fixedness.
func (f Fixedness) String() string {
	if f == Full {
		return "Full"
	}
	return "Weak"
}

// kind discriminates the three state families.
type kind uint8

const (
	kindFixed kind = iota
	kindRequired
	kindTransform
)

// State is the graph's current shape-inference mode: Fixed(Weak),
// Fixed(Full), Required(Weak), Required(Full), or Transform.
//
// The zero State is Fixed(Weak), which is also the initial state of a
// freshly-created graph.
type State struct {
	k kind
	f Fixedness
}

// FixedState builds a Fixed state with the given fixedness.
func FixedState(f Fixedness) State { return State{k: kindFixed, f: f} }

// RequiredState builds a Required state with the given fixedness.
func RequiredState(f Fixedness) State { return State{k: kindRequired, f: f} }

// TransformState builds the Transform state (reshape in progress).
func TransformState() State { return State{k: kindTransform} }

// IsFixed reports whether the state is one of the Fixed family.
func (s State) IsFixed() bool { return s.k == kindFixed }

// IsRequired reports whether the state is one of the Required family.
func (s State) IsRequired() bool { return s.k == kindRequired }

// IsTransform reports whether the state is Transform.
func (s State) IsTransform() bool { return s.k == kindTransform }

// Fixedness returns the Weak/Full sub-mode and whether the state belongs
// to a family that has one (Fixed or Required; Transform does not).
func (s State) Fixedness() (Fixedness, bool) {
	if s.k == kindTransform {
		return Weak, false
	}
	return s.f, true
}

// IsNewVarAvailable reports whether a fresh placeholder dimension may be
// coined in the current state, per spec §4.4's table:
//
//	Fixed(Weak)     -> false
//	Fixed(Full)     -> true
//	Required(Weak)  -> true
//	Required(Full)  -> false
//	Transform       -> true
func (s State) IsNewVarAvailable() bool {
	switch s.k {
	case kindTransform:
		return true
	case kindRequired:
		return s.f == Weak
	default: // kindFixed
		return s.f == Full
	}
}

// AfterAdjust computes the state that follows a successful adjust_shapes
// pass: Fixed(Weak) if a new placeholder was coined during conversion,
// else Fixed(Full).
func AfterAdjust(coinedNewPlaceholder bool) State {
	if coinedNewPlaceholder {
		return FixedState(Weak)
	}
	return FixedState(Full)
}

// String renders the state for diagnostics and debugging.
func (s State) String() string {
	switch s.k {
	case kindFixed:
		return "Fixed(" + s.f.String() + ")"
	case kindRequired:
		return "Required(" + s.f.String() + ")"
	case kindTransform:
		return "Transform"
	default:
		return "<invalid state>"
	}
}

// Equal reports whether two states are the same family and fixedness.
func (s State) Equal(other State) bool {
	return s.k == other.k && s.f == other.f
}
