// Package hlslfrontend implements the HLSL Frontend Driver: compiling
// HLSL source to SPIR-V or DXIL through DXC, and to legacy DXBC through
// the classic D3DCompiler, per spec.md §4.2.
package hlslfrontend

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/gogpu/shadercross/internal/abi"
	"github.com/gogpu/shadercross/internal/corelog"
	"github.com/gogpu/shadercross/loader"
	"github.com/gogpu/shadercross/shaderbytes"
	"github.com/gogpu/shadercross/xerrors"
)

// Well-known DXC COM identifiers (dxcapi.h). Declared here rather than
// generated so the GUID layout stays visible at the call site.
var (
	clsidDxcCompiler  = guid{0x8FC3E585, 0xF323, 0x4855, [8]byte{0xB6, 0x20, 0x0E, 0x2C, 0xE1, 0xE0, 0xCA, 0x0F}}
	iidIDxcCompiler3  = guid{0x228B4687, 0x5A6A, 0x4730, [8]byte{0x90, 0x0C, 0x97, 0x02, 0xB2, 0x20, 0x3F, 0x54}}
	iidIDxcUtils      = guid{0x4605C4CB, 0x2019, 0x492A, [8]byte{0xAD, 0xA4, 0x65, 0xF2, 0x0B, 0xB7, 0xD6, 0x7F}}
	iidIDxcBlobUtf8   = guid{0x3DA636C9, 0xBA71, 0x4024, [8]byte{0xA3, 0x01, 0x30, 0xCB, 0xF1, 0x25, 0x30, 0x5B}}
)

type guid struct {
	data1 uint32
	data2 uint16
	data3 uint16
	data4 [8]byte
}

// idxcCompiler3Vtbl mirrors the first slots of IDxcCompiler3's vtable:
// IUnknown followed by Compile. Only the slots this driver calls are
// modeled; the rest of the interface is never touched.
type idxcCompiler3Vtbl struct {
	queryInterface uintptr
	addRef         uintptr
	release        uintptr
	compile        uintptr
}

type idxcCompiler3 struct {
	vtbl *idxcCompiler3Vtbl
}

// idxcResultVtbl mirrors the IDxcResult slots this driver needs: status,
// the compiled output blob, and the error blob.
type idxcResultVtbl struct {
	queryInterface uintptr
	addRef         uintptr
	release        uintptr
	_              [5]uintptr // GetResult's siblings this driver never calls
	getStatus      uintptr
	getResult      uintptr
	getErrorBuffer uintptr
}

type idxcResult struct {
	vtbl *idxcResultVtbl
}

// idxcBlobVtbl mirrors IDxcBlobUtf8 / IDxcBlob: buffer pointer and size.
type idxcBlobVtbl struct {
	queryInterface    uintptr
	addRef            uintptr
	release           uintptr
	getBufferPointer  uintptr
	getBufferSize     uintptr
}

type idxcBlob struct {
	vtbl *idxcBlobVtbl
}

type dxcBuffer struct {
	ptr      uintptr
	size     uint32
	encoding uint32
}

// CompileFromHLSLDXC compiles HLSL source to SPIR-V or DXIL via DXC, per
// spec.md §4.2. The returned Bytes is binary (SPIR-V or DXIL), never text.
func CompileFromHLSLDXC(reg *loader.Registry, source string, opts Options) (shaderbytes.Bytes, error) {
	log := corelog.Logger()

	if reg == nil || reg.DXCCreateInstance() == nil {
		return shaderbytes.Bytes{}, xerrors.New(xerrors.BackendUnavailable, "dxcompiler not loaded")
	}

	args, err := buildDxcArgs(opts)
	if err != nil {
		return shaderbytes.Bytes{}, xerrors.Newf(xerrors.CompilationFailed, "building dxc arguments: %v", err)
	}
	log.Debug("hlslfrontend: dxc compile", "entrypoint", opts.Entrypoint, "stage", opts.Stage, "emit", opts.Emit, "args", args)

	compiler, err := createDxcCompiler(reg)
	if err != nil {
		return shaderbytes.Bytes{}, err
	}
	defer compiler.releaseSelf()

	wideArgs := make([][]uint16, len(args))
	argPtrs := make([]uintptr, len(args))
	for i, a := range args {
		wideArgs[i] = utf16FromString(a)
		argPtrs[i] = uintptr(unsafe.Pointer(&wideArgs[i][0]))
	}

	srcBytes := append([]byte(source), 0)
	buf := dxcBuffer{
		ptr:      uintptr(unsafe.Pointer(&srcBytes[0])),
		size:     uint32(len(source)),
		encoding: 65001, // CP_UTF8
	}

	result, hr := compiler.compileCall(&buf, argPtrs)
	runtime.KeepAlive(wideArgs)
	runtime.KeepAlive(srcBytes)
	if hr < 0 || result == nil {
		return shaderbytes.Bytes{}, xerrors.Newf(xerrors.CompilationFailed, "IDxcCompiler3::Compile returned HRESULT 0x%08X", uint32(hr))
	}
	defer result.releaseSelf()

	if status := result.status(); status != 0 {
		msg := result.errorText()
		return shaderbytes.Bytes{}, xerrors.Newf(xerrors.CompilationFailed, "dxc: %s", msg)
	}

	out, err := result.objectBytes()
	if err != nil {
		return shaderbytes.Bytes{}, xerrors.Newf(xerrors.CompilationFailed, "reading dxc output: %v", err)
	}
	return shaderbytes.Binary(out), nil
}

func createDxcCompiler(reg *loader.Registry) (*idxcCompiler3, error) {
	proc := reg.DXCCreateInstance()
	var out uintptr
	ret := proc.Call(
		uintptr(unsafe.Pointer(&clsidDxcCompiler)),
		uintptr(unsafe.Pointer(&iidIDxcCompiler3)),
		uintptr(unsafe.Pointer(&out)),
	)
	if int32(ret) < 0 || out == 0 {
		return nil, xerrors.Newf(xerrors.CompilationFailed, "DxcCreateInstance returned HRESULT 0x%08X", uint32(ret))
	}
	return (*idxcCompiler3)(unsafe.Pointer(out)), nil
}

func (c *idxcCompiler3) compileCall(buf *dxcBuffer, argPtrs []uintptr) (*idxcResult, int32) {
	var argvPtr uintptr
	if len(argPtrs) > 0 {
		argvPtr = uintptr(unsafe.Pointer(&argPtrs[0]))
	}
	var resultPtr uintptr
	ret := abi.Invoke(c.vtbl.compile,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(buf)),
		argvPtr,
		uintptr(len(argPtrs)),
		0, // pIncludeHandler: this driver never registers a custom #include handler
		uintptr(unsafe.Pointer(&iidIDxcCompiler3)),
		uintptr(unsafe.Pointer(&resultPtr)),
	)
	if resultPtr == 0 {
		return nil, int32(ret)
	}
	return (*idxcResult)(unsafe.Pointer(resultPtr)), int32(ret)
}

func (c *idxcCompiler3) releaseSelf() {
	if c == nil {
		return
	}
	abi.Invoke(c.vtbl.release, uintptr(unsafe.Pointer(c)))
}

func (r *idxcResult) status() int32 {
	var status int32
	abi.Invoke(r.vtbl.getStatus, uintptr(unsafe.Pointer(r)), uintptr(unsafe.Pointer(&status)))
	return status
}

func (r *idxcResult) objectBytes() ([]byte, error) {
	var blobPtr uintptr
	ret := abi.Invoke(r.vtbl.getResult, uintptr(unsafe.Pointer(r)), uintptr(unsafe.Pointer(&blobPtr)))
	if int32(ret) < 0 || blobPtr == 0 {
		return nil, fmt.Errorf("IDxcResult::GetResult returned HRESULT 0x%08X", uint32(ret))
	}
	blob := (*idxcBlob)(unsafe.Pointer(blobPtr))
	defer blob.releaseSelf()
	return blob.bytes(), nil
}

func (r *idxcResult) errorText() string {
	var blobPtr uintptr
	ret := abi.Invoke(r.vtbl.getErrorBuffer, uintptr(unsafe.Pointer(r)), uintptr(unsafe.Pointer(&blobPtr)))
	if int32(ret) < 0 || blobPtr == 0 {
		return "unknown dxc error"
	}
	blob := (*idxcBlob)(unsafe.Pointer(blobPtr))
	defer blob.releaseSelf()
	return string(blob.bytes())
}

func (r *idxcResult) releaseSelf() {
	if r == nil {
		return
	}
	abi.Invoke(r.vtbl.release, uintptr(unsafe.Pointer(r)))
}

func (b *idxcBlob) bytes() []byte {
	if b == nil {
		return nil
	}
	ptr := abi.Invoke(b.vtbl.getBufferPointer, uintptr(unsafe.Pointer(b)))
	size := abi.Invoke(b.vtbl.getBufferSize, uintptr(unsafe.Pointer(b)))
	if ptr == 0 || size == 0 {
		return nil
	}
	// Copy out of the native buffer: callers release the blob right after.
	return append([]byte(nil), unsafe.Slice((*byte)(unsafe.Pointer(ptr)), int(size))...)
}

func (b *idxcBlob) releaseSelf() {
	if b == nil {
		return
	}
	abi.Invoke(b.vtbl.release, uintptr(unsafe.Pointer(b)))
}
