//go:build !loafdebug

package loaf

// debug enables precondition checks in the unchecked constructors.
// Build with -tags loafdebug to turn them on.
const debug = false
