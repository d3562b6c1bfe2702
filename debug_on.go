//go:build loafdebug

package loaf

const debug = true
