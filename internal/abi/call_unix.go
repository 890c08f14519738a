//go:build !windows && cgo

package abi

/*
#include <stdint.h>

typedef uintptr_t (*shadercross_fn12)(
	uintptr_t, uintptr_t, uintptr_t, uintptr_t,
	uintptr_t, uintptr_t, uintptr_t, uintptr_t,
	uintptr_t, uintptr_t, uintptr_t, uintptr_t);

static uintptr_t shadercross_call(
	uintptr_t fn,
	uintptr_t a0, uintptr_t a1, uintptr_t a2, uintptr_t a3,
	uintptr_t a4, uintptr_t a5, uintptr_t a6, uintptr_t a7,
	uintptr_t a8, uintptr_t a9, uintptr_t a10, uintptr_t a11) {
	shadercross_fn12 f = (shadercross_fn12)fn;
	return f(a0, a1, a2, a3, a4, a5, a6, a7, a8, a9, a10, a11);
}
*/
import "C"

const maxCallArgs = 12

// Call invokes the resolved function pointer with the given arguments.
// Every native call this repo makes (D3DCompile, DxcCreateInstance,
// spvc_context_* calls) passes pointer- or small-integer-sized
// arguments, so a fixed-arity integer/pointer trampoline is sufficient
// without needing a full libffi binding.
func (p *Proc) Call(args ...uintptr) uintptr {
	return Invoke(p.addr, args...)
}

// Invoke calls a raw function address directly, for COM vtable slots
// (IDxcCompiler3::Compile, IDxcResult::GetResult, ...) resolved from a
// struct pointer rather than a Library.Proc lookup.
func Invoke(addr uintptr, args ...uintptr) uintptr {
	if len(args) > maxCallArgs {
		panic("abi: too many call arguments")
	}
	var a [maxCallArgs]C.uintptr_t
	for i, v := range args {
		a[i] = C.uintptr_t(v)
	}
	ret := C.shadercross_call(C.uintptr_t(addr),
		a[0], a[1], a[2], a[3], a[4], a[5], a[6], a[7], a[8], a[9], a[10], a[11])
	return uintptr(ret)
}
