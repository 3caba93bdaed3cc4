package dispatchers

import "fmt"

// StringRange is a half-open [Start, End) interval into an input string.
type StringRange struct {
	Start int
	End   int
}

// At returns the empty range at pos.
func At(pos int) StringRange {
	return StringRange{Start: pos, End: pos}
}

func Between(start, end int) StringRange {
	return StringRange{Start: start, End: end}
}

// Encompassing returns the smallest range covering both a and b.
func Encompassing(a, b StringRange) StringRange {
	return StringRange{Start: min(a.Start, b.Start), End: max(a.End, b.End)}
}

// Get returns the covered part of input.
func (r StringRange) Get(input string) string {
	return input[r.Start:r.End]
}

func (r StringRange) IsEmpty() bool {
	return r.Start == r.End
}

func (r StringRange) Len() int {
	return r.End - r.Start
}

func (r StringRange) String() string {
	return fmt.Sprintf("StringRange{start=%d, end=%d}", r.Start, r.End)
}
