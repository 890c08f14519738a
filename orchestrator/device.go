package orchestrator

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/shadercross/loader"
	"github.com/gogpu/shadercross/reflect"
	"github.com/gogpu/shadercross/shader"
	"github.com/gogpu/shadercross/shaderbytes"
	"github.com/gogpu/shadercross/xerrors"
)

// formatPreference is the device-preferred destination order per spec.md
// §4.6: native SPIR-V needs no extra backend call, DXIL is next cheapest
// on DX12 (no FXC round trip), then legacy DXBC, then MSL.
var formatPreference = []loader.Format{
	loader.FormatSPIRV,
	loader.FormatDXIL,
	loader.FormatDXBC,
	loader.FormatMSL,
}

// backendFormats reports which shader formats a hal backend accepts
// directly in hal.ShaderSource, independent of whether this process's
// Registry can actually produce them.
func backendFormats(backend gputypes.Backend) []loader.Format {
	switch backend {
	case gputypes.BackendVulkan, gputypes.BackendGL, gputypes.BackendBrowserWebGPU:
		return []loader.Format{loader.FormatSPIRV}
	case gputypes.BackendDX12:
		return []loader.Format{loader.FormatDXIL, loader.FormatDXBC}
	case gputypes.BackendMetal:
		return []loader.Format{loader.FormatMSL}
	default:
		return nil
	}
}

// PreferredFormat picks the best destination format for backend, among
// the formats reg's loaded native compilers can actually produce,
// following formatPreference's order. It returns UnsupportedRoute if the
// backend accepts nothing reg can produce.
func PreferredFormat(reg *loader.Registry, backend gputypes.Backend) (loader.Format, error) {
	accepted := backendFormats(backend)
	// SPIR-V needs no native compiler, so it is producible whatever reg loaded.
	caps := reg.Capabilities() | loader.CapSPIRV
	for _, want := range formatPreference {
		for _, have := range accepted {
			if have != want {
				continue
			}
			if caps.Contains(want) {
				return want, nil
			}
		}
	}
	return 0, xerrors.Newf(xerrors.UnsupportedRoute, "no loaded backend can produce a format %s accepts", backend)
}

// ShaderModuleResult is the outcome of BuildShaderModule: the device
// handle plus the reflection metadata of the SPIR-V, so a caller can go
// on to build matching bind group layouts without reflecting again.
type ShaderModuleResult struct {
	Module   hal.ShaderModule
	Graphics *reflect.GraphicsShaderMetadata
	Compute  *reflect.ComputePipelineMetadata
}

// BuildShaderModule reflects the SPIR-V, runs Translate from
// sourceFormat to backend's preferred destination format, and hands the
// resulting code to device's CreateShaderModule. The creation
// descriptor carries only the label and the code: the reflected
// resource counts, threadgroup size and stage are not passed to the
// device, only returned in the result. Per spec.md §4.6, device is received
// from the host application, never created here; backend identifies the
// native API device's adapter runs on, which the caller already knows
// from its own gpucontext wiring.
func BuildShaderModule(reg *loader.Registry, device gpucontext.DeviceProvider, backend gputypes.Backend, label string, spirv []byte, sourceFormat loader.Format, opts Options) (*ShaderModuleResult, error) {
	dev := device.Device()
	if dev == nil {
		return nil, xerrors.New(xerrors.BackendUnavailable, "device handle has no GPU device")
	}

	destFormat, err := PreferredFormat(reg, backend)
	if err != nil {
		return nil, err
	}

	result := &ShaderModuleResult{}
	if opts.Stage == shader.Compute {
		result.Compute, err = reflect.ComputeWithConvention(spirv, opts.Convention)
	} else {
		result.Graphics, err = reflect.GraphicsWithConvention(spirv, opts.Convention)
	}
	if err != nil {
		return nil, err
	}

	var source hal.ShaderSource
	if destFormat == sourceFormat && destFormat == loader.FormatSPIRV {
		source = hal.ShaderSource{SPIRV: packSPIRVWords(spirv)}
	} else {
		out, err := Translate(reg, shaderbytes.Binary(spirv), sourceFormat, destFormat, opts)
		if err != nil {
			return nil, err
		}
		source, err = shaderSourceFor(destFormat, out)
		if err != nil {
			return nil, err
		}
	}

	module, err := dev.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: source,
	})
	if err != nil {
		return nil, xerrors.Newf(xerrors.CompilationFailed, "device rejected shader module: %v", err)
	}
	result.Module = module
	return result, nil
}

func shaderSourceFor(format loader.Format, out shaderbytes.Bytes) (hal.ShaderSource, error) {
	switch format {
	case loader.FormatSPIRV:
		return hal.ShaderSource{SPIRV: packSPIRVWords(out.Peek())}, nil
	case loader.FormatMSL:
		return hal.ShaderSource{MSL: string(out.Peek())}, nil
	case loader.FormatHLSL:
		return hal.ShaderSource{HLSL: string(out.Peek())}, nil
	case loader.FormatDXIL, loader.FormatDXBC:
		return hal.ShaderSource{DXBC: out.Peek()}, nil
	default:
		return hal.ShaderSource{}, xerrors.Newf(xerrors.UnsupportedRoute, "no hal.ShaderSource field for %s", format)
	}
}

// packSPIRVWords converts a SPIR-V byte stream (as produced everywhere
// else in this module) to the []uint32 word slice hal.ShaderSource
// expects, matching gogpu-gg's own SPIR-V byte-to-word conversion.
func packSPIRVWords(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words
}
