// Package relevance defines the labels and filter modes of the section classifier.
package relevance

// Mode filters which spans the section classifier emits.
type Mode string

// Filter modes.
const (
	Important   Mode = "important"
	Unimportant Mode = "unimportant"
	All         Mode = "all"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Important || m == Unimportant || m == All
}

// Emits reports whether a line carrying label l is emitted under m.
func (m Mode) Emits(l Label) bool {
	switch m {
	case All:
		return true
	case Important:
		return l == LabelImportant
	case Unimportant:
		return l == LabelUnimportant
	default:
		return false
	}
}

// Label is the relevance state carried from line to line.
// The zero value is LabelUnknown: no heading has been seen yet.
type Label int

// Labels.
const (
	LabelUnknown Label = iota
	LabelImportant
	LabelUnimportant
)

func (l Label) String() string {
	switch l {
	case LabelImportant:
		return "important"
	case LabelUnimportant:
		return "unimportant"
	default:
		return "unknown"
	}
}
