//go:build windows

package abi

import (
	"fmt"
	"syscall"
)

// windowsLibrary loads a DLL via syscall.NewLazyDLL, as the d3dcompile/dxc
// reference drivers do, but forces the load at once with Load() so a
// missing DLL is reported by loadLibrary; procs are then looked up with
// Find() when sym is called.
type windowsLibrary struct {
	dll *syscall.LazyDLL
}

func loadLibrary(name string) (libraryImpl, error) {
	dll := syscall.NewLazyDLL(name)
	if err := dll.Load(); err != nil {
		return nil, fmt.Errorf("LoadLibrary %q: %w", name, err)
	}
	return &windowsLibrary{dll: dll}, nil
}

func (w *windowsLibrary) sym(name string) (uintptr, error) {
	proc := w.dll.NewProc(name)
	if err := proc.Find(); err != nil {
		return 0, err
	}
	return proc.Addr(), nil
}

// unload is a no-op: Windows has no safe LazyDLL-level FreeLibrary call
// exposed by syscall.LazyDLL. Every Unload on Windows, including the
// DXIL-signing probe's immediate unload in loader.Init and the unloads
// at Quit, leaves the DLL mapped and only drops the reference.
func (w *windowsLibrary) unload() {}
