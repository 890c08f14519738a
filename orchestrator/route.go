package orchestrator

import (
	"github.com/gogpu/shadercross/hlslfrontend"
	"github.com/gogpu/shadercross/loader"
	"github.com/gogpu/shadercross/reflect"
	"github.com/gogpu/shadercross/shader"
	"github.com/gogpu/shadercross/shaderbytes"
	"github.com/gogpu/shadercross/transpile"
	"github.com/gogpu/shadercross/xerrors"
)

// Translate drives the fixed backend sequence for (source format,
// destination format, stage) per spec.md §4.5. source is consumed:
// Translate takes ownership and releases it once it has been copied or
// parsed by the first stage that needs it, on every exit path.
func Translate(reg *loader.Registry, source shaderbytes.Bytes, sourceFormat, destFormat loader.Format, opts Options) (shaderbytes.Bytes, error) {
	switch sourceFormat {
	case loader.FormatSPIRV:
		return translateFromSPIRV(reg, source, destFormat, opts)
	case loader.FormatHLSL:
		return translateFromHLSL(reg, source, destFormat, opts)
	default:
		source.Release()
		return shaderbytes.Bytes{}, xerrors.Newf(xerrors.UnsupportedRoute, "unsupported source format %s", sourceFormat)
	}
}

func translateFromSPIRV(reg *loader.Registry, source shaderbytes.Bytes, destFormat loader.Format, opts Options) (shaderbytes.Bytes, error) {
	spirv := source.Take()

	switch destFormat {
	case loader.FormatSPIRV:
		return shaderbytes.Bytes{}, xerrors.New(xerrors.UnsupportedRoute, "Input and output are both SPIRV")

	case loader.FormatMSL:
		result, err := transpile.ToMSL(reg, spirv, opts.Stage, opts.Convention, opts.EnableDebug)
		if err != nil {
			return shaderbytes.Bytes{}, err
		}
		return shaderbytes.Text(result.Source), nil

	case loader.FormatHLSL:
		result, err := transpile.ToHLSL(reg, spirv, opts.Stage, opts.Model, opts.EnableDebug)
		if err != nil {
			return shaderbytes.Bytes{}, err
		}
		return shaderbytes.Text(result.Source), nil

	case loader.FormatDXBC:
		hlslResult, err := transpile.ToHLSL(reg, spirv, opts.Stage, shader.SM5, opts.EnableDebug)
		if err != nil {
			return shaderbytes.Bytes{}, err
		}
		out, err := hlslfrontend.CompileFromHLSLLegacy(reg, hlslResult.Source, hlslResult.CleansedEntryPoint, opts.Stage, shader.SM5, opts.EnableDebug)
		if err != nil {
			return shaderbytes.Bytes{}, err
		}
		return out, nil

	case loader.FormatDXIL:
		hlslResult, err := transpile.ToHLSL(reg, spirv, opts.Stage, shader.SM6, opts.EnableDebug)
		if err != nil {
			return shaderbytes.Bytes{}, err
		}
		out, err := hlslfrontend.CompileFromHLSLDXC(reg, hlslResult.Source, hlslOpts(opts, hlslResult.CleansedEntryPoint, hlslfrontend.EmitDXIL))
		if err != nil {
			return shaderbytes.Bytes{}, err
		}
		return out, nil

	case loader.FormatJSON:
		return reflectToJSON(spirv, opts)

	default:
		return shaderbytes.Bytes{}, xerrors.Newf(xerrors.UnsupportedRoute, "unsupported destination format %s", destFormat)
	}
}

func translateFromHLSL(reg *loader.Registry, source shaderbytes.Bytes, destFormat loader.Format, opts Options) (shaderbytes.Bytes, error) {
	hlslSource := string(source.Take())

	if destFormat == loader.FormatSPIRV {
		return hlslfrontend.CompileFromHLSLDXC(reg, hlslSource, hlslOpts(opts, opts.Entrypoint, hlslfrontend.EmitSPIRV))
	}

	spirvBytes, err := hlslfrontend.CompileFromHLSLDXC(reg, hlslSource, hlslOpts(opts, opts.Entrypoint, hlslfrontend.EmitSPIRV))
	if err != nil {
		return shaderbytes.Bytes{}, err
	}
	spirv := spirvBytes.Take()

	switch destFormat {
	case loader.FormatMSL:
		result, err := transpile.ToMSL(reg, spirv, opts.Stage, opts.Convention, opts.EnableDebug)
		if err != nil {
			return shaderbytes.Bytes{}, err
		}
		return shaderbytes.Text(result.Source), nil

	case loader.FormatHLSL:
		// Per spec.md §4.5: even an HLSL-to-HLSL route goes through
		// SPIR-V and the transpiler, normalizing the bindings DXC would
		// otherwise have emitted in HLSL-native convention.
		result, err := transpile.ToHLSL(reg, spirv, opts.Stage, opts.Model, opts.EnableDebug)
		if err != nil {
			return shaderbytes.Bytes{}, err
		}
		return shaderbytes.Text(result.Source), nil

	case loader.FormatDXBC:
		hlslResult, err := transpile.ToHLSL(reg, spirv, opts.Stage, shader.SM5, opts.EnableDebug)
		if err != nil {
			return shaderbytes.Bytes{}, err
		}
		return hlslfrontend.CompileFromHLSLLegacy(reg, hlslResult.Source, hlslResult.CleansedEntryPoint, opts.Stage, shader.SM5, opts.EnableDebug)

	case loader.FormatDXIL:
		// Forced round-trip, per spec.md §4.5: DXC-native DXIL binding
		// conventions would otherwise disagree with the reflection
		// scheme, so HLSL always passes through SPIR-V and the
		// transpiler before the final DXIL compile.
		hlslResult, err := transpile.ToHLSL(reg, spirv, opts.Stage, shader.SM6, opts.EnableDebug)
		if err != nil {
			return shaderbytes.Bytes{}, err
		}
		return hlslfrontend.CompileFromHLSLDXC(reg, hlslResult.Source, hlslOpts(opts, hlslResult.CleansedEntryPoint, hlslfrontend.EmitDXIL))

	case loader.FormatJSON:
		return reflectToJSON(spirv, opts)

	default:
		return shaderbytes.Bytes{}, xerrors.Newf(xerrors.UnsupportedRoute, "unsupported destination format %s", destFormat)
	}
}

func hlslOpts(opts Options, entrypoint string, emit hlslfrontend.Emit) hlslfrontend.Options {
	return hlslfrontend.Options{
		Entrypoint:  entrypoint,
		IncludeDir:  opts.IncludeDir,
		Defines:     opts.Defines,
		Stage:       opts.Stage,
		Emit:        emit,
		EnableDebug: opts.EnableDebug,
	}
}

func reflectToJSON(spirv []byte, opts Options) (shaderbytes.Bytes, error) {
	if opts.Stage == shader.Compute {
		meta, err := reflect.ComputeWithConvention(spirv, opts.Convention)
		if err != nil {
			return shaderbytes.Bytes{}, err
		}
		out, err := meta.MarshalCompact()
		if err != nil {
			return shaderbytes.Bytes{}, xerrors.Newf(xerrors.CompilationFailed, "marshaling reflection json: %v", err)
		}
		return shaderbytes.Text(string(out)), nil
	}

	meta, err := reflect.GraphicsWithConvention(spirv, opts.Convention)
	if err != nil {
		return shaderbytes.Bytes{}, err
	}
	out, err := meta.MarshalCompact()
	if err != nil {
		return shaderbytes.Bytes{}, xerrors.Newf(xerrors.CompilationFailed, "marshaling reflection json: %v", err)
	}
	return shaderbytes.Text(string(out)), nil
}
