//go:build !windows && !cgo

package abi

import "fmt"

// Without cgo there is no POSIX dlopen available to this build; every
// load attempt fails, which per spec.md §4.1 simply reduces the
// reported capability set rather than failing Init.
func loadLibrary(name string) (libraryImpl, error) {
	return nil, fmt.Errorf("native library loading requires cgo on this platform (wanted %q)", name)
}
