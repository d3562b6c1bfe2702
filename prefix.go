package loaf

import "fmt"

// Prefix selects how many leading elements a view guarantees.
// Implementations are zero-size marker types; Len must return at least 1.
type Prefix interface {
	Len() int
}

type (
	One   struct{}
	Two   struct{}
	Three struct{}
	Four  struct{}
	Five  struct{}
	Six   struct{}
	Seven struct{}
	Eight struct{}
)

func (One) Len() int   { return 1 }
func (Two) Len() int   { return 2 }
func (Three) Len() int { return 3 }
func (Four) Len() int  { return 4 }
func (Five) Len() int  { return 5 }
func (Six) Len() int   { return 6 }
func (Seven) Len() int { return 7 }
func (Eight) Len() int { return 8 }

func prefixLen[N Prefix]() int {
	var n N
	return n.Len()
}

// mustPrefix is prefixLen for constructors: a prefix below one would let
// First read outside the buffer.
func mustPrefix[N Prefix]() int {
	n := prefixLen[N]()
	if n < 1 {
		var p N
		panic(fmt.Sprintf("loaf: prefix %T has length %d, want at least 1", p, n))
	}
	return n
}
