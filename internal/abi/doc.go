// Package abi provides the native-library-binding idiom shared by every
// backend driver in shadercross: a lazily-loaded shared library, a
// scoped COM-style vtable call, and an owned blob readout.
//
// The three native compilers this repo drives (the DXC HLSL compiler,
// the legacy D3DCompiler, and the SPIRV-Cross C-shared library) are all
// consumed the same way a native-COM Windows library is consumed from
// Go: a shared library loaded through syscall.NewLazyDLL on Windows and
// through cgo's dlopen/dlsym elsewhere (without cgo, loading always
// fails on non-Windows hosts), function pointers or vtable slots called
// through Proc.Call/Invoke, and QueryInterface/AddRef/Release-style
// lifetime management expressed as a Blob with a Release method. Every backend
// driver in this repo is an instance of this idiom rather than an
// independent ad hoc binding.
package abi
