package constraint

import (
	"fmt"
	"io"
	"sort"

	"github.com/cottand/sift/frontend/types"
	"github.com/cottand/sift/util"
	"github.com/xtgo/set"
)

// Dump writes a human-readable rendering of the system's state: every
// variable with its binding, the deferred queue, and the recorded failure.
func (sys *System) Dump(w io.Writer) {
	_, _ = fmt.Fprintf(w, "type variables (%d):\n", len(sys.vars))
	for _, v := range sys.vars {
		_, _ = fmt.Fprintf(w, "  %s %s\n", v, sys.describeBinding(v))
	}

	unresolved := sys.unresolvedIDs()
	if len(unresolved) > 0 {
		_, _ = fmt.Fprintf(w, "unresolved:")
		for _, id := range unresolved {
			_, _ = fmt.Fprintf(w, " $T%d", id)
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(sys.deferred) > 0 {
		_, _ = fmt.Fprintf(w, "deferred constraints (%d):\n  %s\n",
			len(sys.deferred), util.JoinString(sys.deferred, "\n  "))
	}

	if sys.failed != nil {
		_, _ = fmt.Fprintf(w, "failed: %s\n", *sys.failed)
	}
}

func (sys *System) describeBinding(v *types.TypeVariable) string {
	switch b := sys.binding(v).(type) {
	case free:
		return "free"
	case fixed:
		return fmt.Sprintf("= %s", b.typ)
	case transfer:
		return fmt.Sprintf("-> %s", b.target)
	default:
		return fmt.Sprintf("%T", b)
	}
}

// unresolvedIDs is the set difference between all allocated IDs and the IDs
// whose class carries a fixed type, ascending.
func (sys *System) unresolvedIDs() []int {
	data := make([]int, 0, 2*len(sys.vars))
	for _, v := range sys.vars {
		data = append(data, int(v.ID))
	}
	pivot := len(data)
	for _, v := range sys.vars {
		if _, ok := sys.FixedType(v); ok {
			data = append(data, int(v.ID))
		}
	}
	n := set.Diff(sort.IntSlice(data), pivot)
	return data[:n]
}
