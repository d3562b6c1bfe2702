package loaf

import (
	"encoding/json"
	"fmt"
	"unsafe"

	"github.com/rawbytedev/loaf/internal/common"
)

// LoafN is a read view over at least N contiguous elements.
//
// It holds the address of element 0 and the length of the suffix that
// follows the N-element head, so the total length is N + rest. The zero
// value is not a valid view; obtain one from FromSliceN or a Vec.
type LoafN[T any, N Prefix] struct {
	base *T
	rest int
}

// Loaf is a view guaranteed to hold at least one element.
type Loaf[T any] = LoafN[T, One]

// FromSlice reinterprets s as a Loaf. It reports false if s is empty.
func FromSlice[T any](s []T) (Loaf[T], bool) {
	return FromSliceN[One](s)
}

// FromSliceN reinterprets s as a LoafN without copying.
// It reports false if s holds fewer than N elements.
func FromSliceN[N Prefix, T any](s []T) (LoafN[T, N], bool) {
	n := mustPrefix[N]()
	if len(s) < n {
		return LoafN[T, N]{}, false
	}
	return LoafN[T, N]{base: unsafe.SliceData(s), rest: len(s) - n}, true
}

// FromSliceUnchecked is FromSliceN for callers that already know
// len(s) >= N. Passing a shorter slice is a contract violation; it is
// only detected in builds with the loafdebug tag.
func FromSliceUnchecked[N Prefix, T any](s []T) LoafN[T, N] {
	n := prefixLen[N]()
	if debug && len(s) < n {
		common.Violation("FromSliceUnchecked", len(s), n)
	}
	return LoafN[T, N]{base: unsafe.SliceData(s), rest: len(s) - n}
}

func (l LoafN[T, N]) all() []T {
	return unsafe.Slice(l.base, prefixLen[N]()+l.rest)
}

// Len returns the total number of elements, head included.
func (l LoafN[T, N]) Len() int {
	return prefixLen[N]() + l.rest
}

func (l LoafN[T, N]) First() T {
	return *l.base
}

func (l LoafN[T, N]) Last() T {
	return l.all()[l.Len()-1]
}

// Head returns the guaranteed prefix. Its capacity is clipped to N.
func (l LoafN[T, N]) Head() []T {
	n := prefixLen[N]()
	return l.all()[:n:n]
}

// Rest returns the elements after the head; it may be empty.
func (l LoafN[T, N]) Rest() []T {
	return l.all()[prefixLen[N]():]
}

// Narrow reinterprets l as a Loaf: the head shrinks to one element and
// the remaining N-1 head elements join the suffix.
func (l LoafN[T, N]) Narrow() LoafN[T, One] {
	return LoafN[T, One]{base: l.base, rest: l.Len() - 1}
}

// SplitFirst returns the first element and everything after it.
func (l LoafN[T, N]) SplitFirst() (T, []T) {
	one := l.Narrow()
	return *one.base, one.Rest()
}

// Slice returns the viewed memory as a plain slice. Length and capacity
// both equal Len, so appending to the result never writes into memory
// outside the view.
func (l LoafN[T, N]) Slice() []T {
	return l.all()
}

func (l LoafN[T, N]) String() string {
	return fmt.Sprint(l.Slice())
}

func (l LoafN[T, N]) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Slice())
}

func (l LoafN[T, N]) MarshalYAML() (interface{}, error) {
	return l.Slice(), nil
}

// MutLoafN is a LoafN through which elements may be modified.
//
// The caller must not read or write the memory through any other alias
// while a MutLoafN over it is in use.
type MutLoafN[T any, N Prefix] struct {
	view LoafN[T, N]
}

// MutLoaf is a mutable view guaranteed to hold at least one element.
type MutLoaf[T any] = MutLoafN[T, One]

// FromMutSlice reinterprets s as a MutLoaf. It reports false if s is empty.
func FromMutSlice[T any](s []T) (MutLoaf[T], bool) {
	return FromMutSliceN[One](s)
}

// FromMutSliceN reinterprets s as a MutLoafN without copying.
// It reports false if s holds fewer than N elements.
func FromMutSliceN[N Prefix, T any](s []T) (MutLoafN[T, N], bool) {
	l, ok := FromSliceN[N](s)
	return MutLoafN[T, N]{view: l}, ok
}

// FromMutSliceUnchecked is FromMutSliceN without the length check.
// See FromSliceUnchecked.
func FromMutSliceUnchecked[N Prefix, T any](s []T) MutLoafN[T, N] {
	n := prefixLen[N]()
	if debug && len(s) < n {
		common.Violation("FromMutSliceUnchecked", len(s), n)
	}
	return MutLoafN[T, N]{view: LoafN[T, N]{base: unsafe.SliceData(s), rest: len(s) - n}}
}

func (m MutLoafN[T, N]) Len() int {
	return m.view.Len()
}

func (m MutLoafN[T, N]) First() *T {
	return m.view.base
}

func (m MutLoafN[T, N]) Last() *T {
	all := m.view.all()
	return &all[len(all)-1]
}

func (m MutLoafN[T, N]) Head() []T {
	return m.view.Head()
}

func (m MutLoafN[T, N]) Rest() []T {
	return m.view.Rest()
}

// Narrow is LoafN.Narrow for mutable views.
func (m MutLoafN[T, N]) Narrow() MutLoafN[T, One] {
	return MutLoafN[T, One]{view: m.view.Narrow()}
}

func (m MutLoafN[T, N]) SplitFirst() (*T, []T) {
	one := m.view.Narrow()
	return one.base, one.Rest()
}

func (m MutLoafN[T, N]) Slice() []T {
	return m.view.all()
}

// Shared returns a read view of the same memory.
func (m MutLoafN[T, N]) Shared() LoafN[T, N] {
	return m.view
}

func (m MutLoafN[T, N]) String() string {
	return m.view.String()
}
