package builtins

// Effect classifies what evaluating an expression can observe or change.
// The classes form a ladder: each level includes everything below it, and
// combining two effects takes the stronger one.
type Effect int

const (
	// Pure expressions depend only on their arguments. They can be
	// removed, duplicated or reordered freely.
	Pure Effect = iota

	// ReadsState expressions observe memory, storage or the execution
	// environment. They stay put: a write between two reads can change
	// what the second one sees.
	ReadsState

	// HasSideEffect expressions change observable state or are sensitive
	// to evaluation order. They must be kept and kept in order.
	HasSideEffect

	// NeverReturns expressions terminate the surrounding execution.
	// Nothing after them runs.
	NeverReturns
)

// Join combines two effects, keeping the stronger classification.
func (e Effect) Join(other Effect) Effect {
	if other > e {
		return other
	}
	return e
}

// Removable reports whether an unused expression with this effect can be
// dropped without changing program behavior.
func (e Effect) Removable() bool {
	return e == Pure
}

func (e Effect) String() string {
	switch e {
	case Pure:
		return "pure"
	case ReadsState:
		return "reads state"
	case HasSideEffect:
		return "side effects"
	case NeverReturns:
		return "never returns"
	default:
		return "unknown"
	}
}
