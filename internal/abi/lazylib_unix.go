//go:build !windows && cgo

package abi

/*
#cgo LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdlib.h>
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// unixLibrary loads a shared object via dlopen. No pure-Go dlopen
// equivalent appears anywhere in the retrieval pack (see SPEC_FULL.md
// Redesign Flags), so POSIX loading uses cgo's standard dlopen/dlsym/
// dlclose rather than a fabricated dependency.
type unixLibrary struct {
	handle unsafe.Pointer
}

func loadLibrary(name string) (libraryImpl, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	handle := C.dlopen(cname, C.RTLD_NOW|C.RTLD_LOCAL)
	if handle == nil {
		return nil, fmt.Errorf("dlopen %q: %s", name, C.GoString(C.dlerror()))
	}
	return &unixLibrary{handle: handle}, nil
}

func (u *unixLibrary) sym(name string) (uintptr, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	C.dlerror() // clear any pending error
	sym := C.dlsym(u.handle, cname)
	if errStr := C.dlerror(); errStr != nil {
		return 0, fmt.Errorf("dlsym %q: %s", name, C.GoString(errStr))
	}
	return uintptr(sym), nil
}

func (u *unixLibrary) unload() {
	if u.handle != nil {
		C.dlclose(u.handle)
		u.handle = nil
	}
}
