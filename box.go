package loaf

import (
	"slices"
)

type boxState uint8

const (
	boxOwned boxState = iota
	boxMoved
	boxReleased
)

// Box is a singly-owned, fixed-length buffer. Ownership of its memory
// moves to an OwnedLoafN with FromBox and back with OwnedLoafN.IntoBox.
// Using a Box after its memory moved panics with ErrReleased.
type Box[T any] struct {
	buf   []T
	state boxState
}

// NewBox allocates a zeroed Box of n elements.
func NewBox[T any](n int) *Box[T] {
	return &Box[T]{buf: make([]T, n)}
}

// BoxOf copies elems into a new Box.
func BoxOf[T any](elems ...T) *Box[T] {
	buf := make([]T, len(elems))
	copy(buf, elems)
	return &Box[T]{buf: buf}
}

// BoxFromSlice takes ownership of s without copying. The caller must not
// use s afterwards. Spare capacity is cut off.
func BoxFromSlice[T any](s []T) *Box[T] {
	return &Box[T]{buf: slices.Clip(s)}
}

func (b *Box[T]) live() []T {
	if b.state != boxOwned {
		panic(ErrReleased)
	}
	return b.buf
}

// take moves the buffer out, leaving b unusable.
func (b *Box[T]) take() []T {
	buf := b.live()
	b.buf = nil
	b.state = boxMoved
	return buf
}

func (b *Box[T]) Len() int {
	return len(b.live())
}

func (b *Box[T]) Slice() []T {
	return b.live()
}

// Release zeroes and drops the buffer. The memory is reclaimed by the
// garbage collector once no view references it. Releasing twice is a no-op.
func (b *Box[T]) Release() {
	if b.state == boxMoved {
		panic(ErrReleased)
	}
	clear(b.buf)
	b.buf = nil
	b.state = boxReleased
}

// Owned reports whether b still owns its buffer.
func (b *Box[T]) Owned() bool {
	return b.state == boxOwned
}

// OwnedLoafN owns a buffer of at least N elements and exposes it as a
// LoafN. After IntoBox the value is consumed and its methods panic with
// ErrReleased.
type OwnedLoafN[T any, N Prefix] struct {
	view     LoafN[T, N]
	consumed bool
}

// OwnedLoaf owns a buffer of at least one element.
type OwnedLoaf[T any] = OwnedLoafN[T, One]

// FromBox moves b into an OwnedLoaf. See FromBoxN.
func FromBox[T any](b *Box[T]) (*OwnedLoaf[T], error) {
	return FromBoxN[One](b)
}

// FromBoxN moves the allocation of b into an OwnedLoafN; no element is
// copied and the address is unchanged. If b holds fewer than N elements
// it returns a *LengthError and b keeps its buffer.
func FromBoxN[N Prefix, T any](b *Box[T]) (*OwnedLoafN[T, N], error) {
	n := mustPrefix[N]()
	if have := b.Len(); have < n {
		return nil, &LengthError{Op: "FromBox", Have: have, Need: n}
	}
	buf := b.take()
	return &OwnedLoafN[T, N]{view: FromSliceUnchecked[N](buf)}, nil
}

func (o *OwnedLoafN[T, N]) loaf() LoafN[T, N] {
	if o.consumed {
		panic(ErrReleased)
	}
	return o.view
}

// IntoBox hands the allocation back as a Box and consumes o.
func (o *OwnedLoafN[T, N]) IntoBox() *Box[T] {
	buf := o.loaf().Slice()
	o.view = LoafN[T, N]{}
	o.consumed = true
	return &Box[T]{buf: buf}
}

// Loaf returns a read view of the owned memory.
func (o *OwnedLoafN[T, N]) Loaf() LoafN[T, N] {
	return o.loaf()
}

// Mut returns a mutable view of the owned memory.
func (o *OwnedLoafN[T, N]) Mut() MutLoafN[T, N] {
	return MutLoafN[T, N]{view: o.loaf()}
}

func (o *OwnedLoafN[T, N]) Len() int { return o.loaf().Len() }
func (o *OwnedLoafN[T, N]) First() T { return o.loaf().First() }
func (o *OwnedLoafN[T, N]) Last() T { return o.loaf().Last() }
func (o *OwnedLoafN[T, N]) Head() []T { return o.loaf().Head() }
func (o *OwnedLoafN[T, N]) Rest() []T { return o.loaf().Rest() }
func (o *OwnedLoafN[T, N]) SplitFirst() (T, []T) { return o.loaf().SplitFirst() }
func (o *OwnedLoafN[T, N]) Slice() []T { return o.loaf().Slice() }
func (o *OwnedLoafN[T, N]) String() string { return o.loaf().String() }
