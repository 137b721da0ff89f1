package types

// Transform rebuilds t bottom-up: children are transformed first, then f is
// applied to each rebuilt node. f receives each node exactly once.
func Transform(t Type, f func(Type) Type) Type {
	return f(t.transform(func(child Type) Type {
		return Transform(child, f)
	}))
}

// TypeVar returns the type-variable view of t, when t is a variable.
func TypeVar(t Type) (*TypeVariable, bool) {
	tv, ok := t.(*TypeVariable)
	return tv, ok
}

// ContainsVariable reports whether v occurs syntactically inside t,
// including t itself.
func ContainsVariable(t Type, v *TypeVariable) bool {
	if tv, ok := t.(*TypeVariable); ok {
		return tv.ID == v.ID
	}
	for child := range t.Children() {
		if ContainsVariable(child, v) {
			return true
		}
	}
	return false
}

// Variables walks t and collects every distinct variable ID, in first-seen order.
func Variables(t Type) []TypeVarID {
	var found []TypeVarID
	seen := make(map[TypeVarID]struct{})
	remaining := []Type{t}
	for len(remaining) > 0 {
		first := remaining[0]
		remaining = remaining[1:]
		if tv, ok := first.(*TypeVariable); ok {
			if _, dup := seen[tv.ID]; !dup {
				seen[tv.ID] = struct{}{}
				found = append(found, tv.ID)
			}
			continue
		}
		for child := range first.Children() {
			remaining = append(remaining, child)
		}
	}
	return found
}
