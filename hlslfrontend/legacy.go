package hlslfrontend

import (
	"runtime"
	"unsafe"

	"github.com/gogpu/shadercross/internal/abi"
	"github.com/gogpu/shadercross/internal/corelog"
	"github.com/gogpu/shadercross/loader"
	"github.com/gogpu/shadercross/shader"
	"github.com/gogpu/shadercross/shaderbytes"
	"github.com/gogpu/shadercross/xerrors"
)

// Legacy D3DCompile flags this driver sets (d3dcompiler.h). Only the two
// flags the legacy path needs are named; every other bit stays zero.
const (
	d3dcompileDebug            uint32 = 1 << 2
	d3dcompileSkipOptimization uint32 = 1 << 10
)

// id3dBlobVtbl mirrors ID3DBlob's vtable, same layout the gonutz-dxc and
// gogpu-wgpu D3DCompile bindings use: IUnknown followed by
// GetBufferPointer/GetBufferSize.
type id3dBlobVtbl struct {
	queryInterface   uintptr
	addRef           uintptr
	release          uintptr
	getBufferPointer uintptr
	getBufferSize    uintptr
}

type id3dBlob struct {
	vtbl *id3dBlobVtbl
}

func (b *id3dBlob) bytes() []byte {
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

func (b *id3dBlob) release() {
	if b == nil {
		return
	}
	abi.Invoke(b.vtbl.release, uintptr(unsafe.Pointer(b)))
}

// CompileFromHLSLLegacy compiles HLSL source to DXBC via the classic
// D3DCompiler, per spec.md §4.2. The returned Bytes is always binary.
func CompileFromHLSLLegacy(reg *loader.Registry, source, entrypoint string, stage shader.Stage, model shader.Model, enableDebug bool) (shaderbytes.Bytes, error) {
	log := corelog.Logger()

	if reg == nil || reg.LegacyCompile() == nil {
		return shaderbytes.Bytes{}, xerrors.New(xerrors.BackendUnavailable, "d3dcompiler_47 not loaded")
	}

	profile, err := model.LegacyProfile(stage)
	if err != nil {
		return shaderbytes.Bytes{}, xerrors.Newf(xerrors.CompilationFailed, "resolving legacy profile: %v", err)
	}
	log.Debug("hlslfrontend: legacy compile", "entrypoint", entrypoint, "profile", profile)

	var flags1 uint32
	if enableDebug {
		flags1 |= d3dcompileDebug | d3dcompileSkipOptimization
	}

	srcBytes := []byte(source)
	entryC := append([]byte(entrypoint), 0)
	profileC := append([]byte(profile), 0)

	var codeBlob, errBlob uintptr
	ret := reg.LegacyCompile().Call(
		uintptr(unsafe.Pointer(&srcBytes[0])),
		uintptr(len(srcBytes)),
		0, // pSourceName: unused, diagnostics use the entrypoint instead
		0, // pDefines: legacy path takes no preprocessor defines
		0, // pInclude: no custom #include handler
		uintptr(unsafe.Pointer(&entryC[0])),
		uintptr(unsafe.Pointer(&profileC[0])),
		uintptr(flags1),
		0, // Flags2: effect-compile flags, unused for plain shader objects
		uintptr(unsafe.Pointer(&codeBlob)),
		uintptr(unsafe.Pointer(&errBlob)),
	)
	runtime.KeepAlive(srcBytes)
	runtime.KeepAlive(entryC)
	runtime.KeepAlive(profileC)

	errorBlob := (*id3dBlob)(unsafe.Pointer(errBlob))
	defer errorBlob.release()

	if int32(ret) < 0 || codeBlob == 0 {
		msg := string(errorBlob.bytes())
		if msg == "" {
			msg = "D3DCompile failed with no diagnostic text"
		}
		return shaderbytes.Bytes{}, xerrors.Newf(xerrors.CompilationFailed, "%s", msg)
	}

	out := (*id3dBlob)(unsafe.Pointer(codeBlob))
	defer out.release()
	return shaderbytes.Binary(out.bytes()), nil
}

