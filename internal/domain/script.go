package domain

// Op identifies the kind of edit applied to a single line.
type Op int

const (
	OpEqual Op = iota
	OpInsert
	OpDelete
)

// String returns the conventional one-character diff marker for the op.
func (o Op) String() string {
	switch o {
	case OpInsert:
		return "+"
	case OpDelete:
		return "-"
	default:
		return " "
	}
}

// Operation is a single line of an edit script.
//
// Line numbers are 1-based. An Equal operation carries both numbers (the
// same content at possibly different positions), an Insert carries only
// NewLine, and a Delete carries only OldLine; the unused side is 0.
type Operation struct {
	Op      Op
	Text    string // Line content, without a trailing newline.
	OldLine int    // Position in the original document; 0 for inserts.
	NewLine int    // Position in the changed document; 0 for deletes.
}

// Script is an ordered edit script from an original document to a changed
// one. Scripts are produced once per diff and must not be mutated in place.
//
// Invariants:
//   - Joining the Equal+Delete operation texts, in order, reconstructs the
//     original document.
//   - Joining the Equal+Insert operation texts, in order, reconstructs the
//     changed document.
type Script []Operation

// EqualCount returns the number of Equal operations
func (s Script) EqualCount() int { return s.count(OpEqual) }

// InsertCount returns the number of Insert operations
func (s Script) InsertCount() int { return s.count(OpInsert) }

// DeleteCount returns the number of Delete operations
func (s Script) DeleteCount() int { return s.count(OpDelete) }

func (s Script) count(op Op) int {
	n := 0
	for _, o := range s {
		if o.Op == op {
			n++
		}
	}
	return n
}

// HasChanges returns true if the script contains any Insert or Delete
func (s Script) HasChanges() bool {
	for _, o := range s {
		if o.Op != OpEqual {
			return true
		}
	}
	return false
}

// OldText reconstructs the original document from the Equal and Delete
// operations.
func (s Script) OldText() string {
	return JoinLines(s.lines(OpDelete))
}

// NewText reconstructs the changed document from the Equal and Insert
// operations.
func (s Script) NewText() string {
	return JoinLines(s.lines(OpInsert))
}

// lines collects the contents of Equal operations plus operations of the
// given side-specific op, preserving script order.
func (s Script) lines(side Op) []string {
	out := make([]string, 0, len(s))
	for _, o := range s {
		if o.Op == OpEqual || o.Op == side {
			out = append(out, o.Text)
		}
	}
	return out
}
