// Package loaf provides slice views that are guaranteed to hold at least
// N elements, so reading the first or last element never needs a length
// check at the call site.
//
// A slice header is a pointer, a length and a capacity:
//
//	[ ptr | len = 5 | cap ]
//	   |
//	   +--> | 10 | 42 | 00 | 07 | 91 |
//
// A LoafN keeps the same pointer but records only the length of the part
// that follows the guaranteed prefix:
//
//	[ base | rest = 3 ]            (N = 2)
//	   |
//	   +--> | 10 | 42 | 00 | 07 | 91 |
//	        | head    | rest         |
//
// Constructing a view never copies: the view addresses the very memory of
// the slice, box or vec it was built from. Algorithms over the elements
// (iteration, sorting, searching) are done on the plain slice returned by
// Slice.
//
// Loaf, MutLoaf, OwnedLoaf and Vec are the N = 1 forms. Larger prefixes are
// selected with the marker types One through Eight.
package loaf
