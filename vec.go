package loaf

import (
	"fmt"
	"slices"

	"github.com/rawbytedev/loaf/internal/common"
)

// VecN is a growable slice that never holds fewer than N elements.
// Appending is unrestricted; Pop refuses to remove the last N elements.
//
// Views returned by Loaf and Mut address the current backing array and
// go stale once Push reallocates it. The zero value holds no elements and
// is only useful as a target for UnmarshalJSON or UnmarshalYAML; any other
// use panics with ErrUninitialized.
type VecN[T any, N Prefix] struct {
	inner    []T
	consumed bool
}

// Vec is a growable slice that is never empty.
type Vec[T any] = VecN[T, One]

// NewVec builds a Vec from at least one element.
func NewVec[T any](first T, rest ...T) *Vec[T] {
	inner := make([]T, 0, 1+len(rest))
	inner = append(inner, first)
	inner = append(inner, rest...)
	return &Vec[T]{inner: inner}
}

// FromVec takes ownership of s as a Vec. See FromVecN.
func FromVec[T any](s []T) (*Vec[T], error) {
	return FromVecN[One](s)
}

// FromVecN takes ownership of s without copying. If s holds fewer than N
// elements it returns a *LengthError and s is left untouched.
func FromVecN[N Prefix, T any](s []T) (*VecN[T, N], error) {
	n := mustPrefix[N]()
	if len(s) < n {
		return nil, &LengthError{Op: "FromVec", Have: len(s), Need: n}
	}
	return &VecN[T, N]{inner: s}, nil
}

func (v *VecN[T, N]) live() []T {
	s, err := v.contents()
	if err != nil {
		panic(err)
	}
	return s
}

// contents is live without the panic. A constructed vec always has a
// non-nil inner slice since N >= 1.
func (v *VecN[T, N]) contents() ([]T, error) {
	switch {
	case v.consumed:
		return nil, ErrReleased
	case v.inner == nil:
		return nil, ErrUninitialized
	}
	return v.inner, nil
}

func (v *VecN[T, N]) consume() []T {
	s := v.live()
	v.inner = nil
	v.consumed = true
	return s
}

// IntoSlice returns the underlying slice and consumes v.
func (v *VecN[T, N]) IntoSlice() []T {
	return v.consume()
}

// IntoBoxedLoaf freezes v into a fixed-length OwnedLoafN and consumes v.
func (v *VecN[T, N]) IntoBoxedLoaf() *OwnedLoafN[T, N] {
	s := v.consume()
	o, err := FromBoxN[N](BoxFromSlice(s))
	if err != nil {
		common.Violation("IntoBoxedLoaf", len(s), prefixLen[N]())
	}
	return o
}

// Loaf projects v as a read view.
func (v *VecN[T, N]) Loaf() LoafN[T, N] {
	return FromSliceUnchecked[N](v.live())
}

// Mut projects v as a mutable view.
func (v *VecN[T, N]) Mut() MutLoafN[T, N] {
	return FromMutSliceUnchecked[N](v.live())
}

func (v *VecN[T, N]) Len() int {
	return len(v.live())
}

// Slice returns the underlying slice. Shrinking it does not shrink v.
func (v *VecN[T, N]) Slice() []T {
	return v.live()
}

func (v *VecN[T, N]) First() T {
	return v.Loaf().First()
}

func (v *VecN[T, N]) Last() T {
	return v.Loaf().Last()
}

// Push appends elems.
func (v *VecN[T, N]) Push(elems ...T) {
	v.inner = append(v.live(), elems...)
}

// Pop removes and returns the last element. It reports false and leaves
// v unchanged when v holds exactly N elements.
func (v *VecN[T, N]) Pop() (T, bool) {
	var zero T
	s := v.live()
	if len(s) <= prefixLen[N]() {
		return zero, false
	}
	last := s[len(s)-1]
	s[len(s)-1] = zero
	v.inner = s[:len(s)-1]
	return last, true
}

// Clone returns a copy of v backed by its own array.
func (v *VecN[T, N]) Clone() *VecN[T, N] {
	return &VecN[T, N]{inner: slices.Clone(v.live())}
}

func (v *VecN[T, N]) String() string {
	return fmt.Sprint(v.live())
}
