//go:build windows

package abi

import "syscall"

// Call invokes the resolved function pointer with the given arguments
// using the stdcall/x64 Windows calling convention, matching the
// reference drivers' use of syscall.Syscall/syscall.SyscallN.
func (p *Proc) Call(args ...uintptr) uintptr {
	return Invoke(p.addr, args...)
}

// Invoke calls a raw function address directly, for COM vtable slots
// (IDxcCompiler3::Compile, IDxcResult::GetResult, ...) resolved from a
// struct pointer rather than a Library.Proc lookup.
func Invoke(addr uintptr, args ...uintptr) uintptr {
	ret, _, _ := syscall.SyscallN(addr, args...)
	return ret
}
