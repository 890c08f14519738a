// Package loader implements the Backend Loader: discovering and binding
// the native compiler libraries at initialization, and publishing a
// capability set to callers. Per spec.md §4.1/§9, there is no process-
// wide mutable singleton — Init returns an explicit *Registry that every
// other component takes as a parameter.
package loader

import (
	"github.com/gogpu/shadercross/internal/abi"
	"github.com/gogpu/shadercross/internal/corelog"
)

// Registry holds the native libraries discovered by Init. The zero value
// is not usable; construct with Init.
//
// Per spec.md §5, Init and Quit must be called from a single thread and
// never concurrently with any other Registry operation. Once Init
// returns, the Registry is read-only and safe to share across
// concurrently-running translations.
type Registry struct {
	dxc        *abi.Library
	legacy     *abi.Library
	spirvCross *abi.Library

	dxcCreateInstance *abi.Proc
	legacyCompile     *abi.Proc

	caps Capabilities
}

// DXC returns the loaded DXC library, or nil if unavailable.
func (r *Registry) DXC() *abi.Library { return r.dxc }

// DXCCreateInstance returns the resolved DxcCreateInstance entry point,
// or nil if DXC did not load.
func (r *Registry) DXCCreateInstance() *abi.Proc { return r.dxcCreateInstance }

// Legacy returns the loaded legacy D3DCompiler library, or nil.
func (r *Registry) Legacy() *abi.Library { return r.legacy }

// LegacyCompile returns the resolved D3DCompile entry point, or nil.
func (r *Registry) LegacyCompile() *abi.Proc { return r.legacyCompile }

// SpirvCross returns the loaded SPIRV-Cross library, or nil.
func (r *Registry) SpirvCross() *abi.Library { return r.spirvCross }

// Init discovers and loads the native compiler libraries. It never
// returns an error for a missing backend — a missing library simply
// narrows the reported capability set. The returned error is non-nil
// only if Init is called in a way that cannot be recovered from (there
// is currently no such case, matching spec.md §4.1: "Init returns
// success iff it completes without error").
func Init() (*Registry, error) {
	names := platformLibraryNames()
	log := corelog.Logger()

	r := &Registry{}

	if lib, err := abi.LoadFirst(names.dxcompiler...); err == nil {
		r.dxc = lib
		if proc, err := lib.Proc("DxcCreateInstance"); err == nil {
			r.dxcCreateInstance = proc
			r.caps |= CapHLSL | CapDXIL
			log.Info("loader: DXC loaded", "names", names.dxcompiler)
		} else {
			log.Warn("loader: DXC loaded but DxcCreateInstance missing", "err", err)
			r.dxc = nil
		}
	} else {
		log.Info("loader: DXC not available", "names", names.dxcompiler, "err", err)
	}

	// The DXIL-signing library is only probed for presence, then
	// unloaded immediately: its absence flips the DXIL capability off
	// even if dxcompiler itself loaded, per spec.md §4.1.
	if r.caps.Contains(FormatDXIL) {
		if signLib, err := abi.LoadFirst(names.dxilSigning...); err == nil {
			signLib.Unload()
			log.Info("loader: dxil signing library present", "names", names.dxilSigning)
		} else {
			r.caps &^= CapDXIL
			log.Warn("loader: dxil signing library missing, disabling DXIL", "err", err)
		}
	}

	if len(names.d3dcompiler) > 0 {
		if lib, err := abi.LoadFirst(names.d3dcompiler...); err == nil {
			r.legacy = lib
			if proc, err := lib.Proc("D3DCompile"); err == nil {
				r.legacyCompile = proc
				r.caps |= CapDXBC
				log.Info("loader: legacy D3DCompiler loaded", "names", names.d3dcompiler)
			} else {
				log.Warn("loader: legacy compiler loaded but D3DCompile missing", "err", err)
				r.legacy = nil
			}
		} else {
			log.Info("loader: legacy D3DCompiler not available", "err", err)
		}
	}

	if lib, err := abi.LoadFirst(names.spirvCross...); err == nil {
		r.spirvCross = lib
		r.caps |= CapMSL
		log.Info("loader: SPIRV-Cross loaded", "names", names.spirvCross)
	} else {
		log.Info("loader: SPIRV-Cross not available", "names", names.spirvCross, "err", err)
	}

	// SPIR-V (parsed/produced by this repo's own reflection code) and
	// JSON (this repo's own reflection output) are always available,
	// per spec.md §4.1.
	r.caps |= CapSPIRV | CapJSON

	return r, nil
}

// Quit releases every loaded native library. Must not be called
// concurrently with any other Registry operation.
func (r *Registry) Quit() {
	if r == nil {
		return
	}
	r.dxc.Unload()
	r.legacy.Unload()
	r.spirvCross.Unload()
	r.dxc = nil
	r.legacy = nil
	r.spirvCross = nil
	r.dxcCreateInstance = nil
	r.legacyCompile = nil
	r.caps = 0
	corelog.Logger().Info("loader: quit")
}

// Capabilities returns the full capability bitset.
func (r *Registry) Capabilities() Capabilities {
	if r == nil {
		return 0
	}
	return r.caps
}

// GetSpirvShaderFormats returns the destination formats reachable from a
// SPIR-V source: always SPIR-V, MSL and JSON, plus DXIL if the HLSL
// compiler loaded, plus DXBC if the legacy compiler loaded.
func (r *Registry) GetSpirvShaderFormats() []Format {
	caps := CapSPIRV | CapMSL | CapJSON
	if r != nil {
		if r.caps.Contains(FormatDXIL) {
			caps |= CapDXIL
		}
		if r.caps.Contains(FormatDXBC) {
			caps |= CapDXBC
		}
	}
	return caps.Formats()
}

// GetHlslShaderFormats returns the destination formats reachable from an
// HLSL source: SPIR-V and DXIL if the HLSL compiler loaded, plus DXBC if
// the legacy compiler loaded. Per spec.md §4.1 this function carries no
// unconditional members (contrast GetSpirvShaderFormats).
func (r *Registry) GetHlslShaderFormats() []Format {
	var caps Capabilities
	if r != nil {
		if r.dxc != nil {
			caps |= CapSPIRV
			if r.caps.Contains(FormatDXIL) {
				caps |= CapDXIL
			}
		}
		if r.caps.Contains(FormatDXBC) {
			caps |= CapDXBC
		}
	}
	return caps.Formats()
}
