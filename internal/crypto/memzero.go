package crypto

import "runtime"

// Wipe zeroes derived keys and opened secrets once they are no longer needed.
// The Go runtime may already have copied the bytes elsewhere, so this only
// shortens how long the buffer itself holds them.
//
//go:noinline
func Wipe(b []byte) {
	clear(b)
	runtime.KeepAlive(b)
}
