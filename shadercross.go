// Package shadercross is a shader translation pipeline: it accepts SPIR-V
// bytecode or HLSL text and produces equivalent artifacts in SPIR-V,
// DXBC, DXIL, MSL, HLSL text, or JSON reflection metadata.
//
// Cross-compilation is driven by three native compiler backends: an HLSL
// front end (DXC), a legacy DXBC back end (D3DCompile), and a SPIR-V
// transpiler (SPIRV-Cross). None of them parse WGSL or any other shading
// language from scratch — they are bound through their C ABIs and
// invoked in the sequence the requested (source, destination, stage)
// tuple calls for.
//
// Example usage:
//
//	reg, err := shadercross.Init()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer shadercross.Quit(reg)
//
//	out, err := shadercross.Translate(reg, shaderbytes.Binary(spirv),
//	    loader.FormatSPIRV, loader.FormatMSL, shadercross.DefaultOptions())
package shadercross

import (
	"log/slog"
	"strings"

	"github.com/gogpu/shadercross/internal/corelog"
	"github.com/gogpu/shadercross/loader"
	"github.com/gogpu/shadercross/orchestrator"
	"github.com/gogpu/shadercross/shader"
	"github.com/gogpu/shadercross/shaderbytes"
)

// Options configures one Translate call; see orchestrator.Options.
type Options = orchestrator.Options

// DefaultOptions returns the default descriptor-set convention and sm5,
// suitable as a starting point for a caller that only needs to override
// Stage and Entrypoint.
func DefaultOptions() Options { return orchestrator.DefaultOptions() }

// SetLogger configures the logger every shadercross component shares.
// Pass nil to restore the default silent behavior.
func SetLogger(l *slog.Logger) { corelog.SetLogger(l) }

// Logger returns the current process-wide logger.
func Logger() *slog.Logger { return corelog.Logger() }

// Init discovers and binds the native compiler libraries. Must be called
// from a single thread and never concurrently with any other call in
// this package. A missing native library only narrows the returned
// Registry's capability set — it never fails Init outright.
func Init() (*loader.Registry, error) { return loader.Init() }

// Quit releases every library Init loaded. Must be called from a single
// thread and never concurrently with any other call in this package.
func Quit(reg *loader.Registry) { reg.Quit() }

// Capabilities reports the destination formats reg's loaded backends can
// currently produce.
func Capabilities(reg *loader.Registry) loader.Capabilities { return reg.Capabilities() }

// Translate runs the fixed backend sequence for (sourceFormat,
// destFormat, opts.Stage); see orchestrator.Translate for the full route
// table. Translate takes ownership of source and releases it.
func Translate(reg *loader.Registry, source shaderbytes.Bytes, sourceFormat, destFormat loader.Format, opts Options) (shaderbytes.Bytes, error) {
	return orchestrator.Translate(reg, source, sourceFormat, destFormat, opts)
}

// InferFromFilename derives a (Format, Stage) pair from a shader file's
// suffix, per spec.md §6: `.spv` → SPIRV, `.hlsl` → HLSL, `.dxbc` →
// DXBC, `.dxil` → DXIL, `.msl` → MSL, `.json` → JSON; stage suffixes
// `.vert`/`.frag`/`.comp` apply independently of the format suffix (a
// file can be named e.g. "blur.comp.hlsl"). Either return value's ok
// bool is false when no matching suffix is present.
func InferFromFilename(name string) (format loader.Format, formatOK bool, stage shader.Stage, stageOK bool) {
	lower := strings.ToLower(name)

	switch {
	case strings.HasSuffix(lower, ".spv"):
		format, formatOK = loader.FormatSPIRV, true
	case strings.HasSuffix(lower, ".hlsl"):
		format, formatOK = loader.FormatHLSL, true
	case strings.HasSuffix(lower, ".dxbc"):
		format, formatOK = loader.FormatDXBC, true
	case strings.HasSuffix(lower, ".dxil"):
		format, formatOK = loader.FormatDXIL, true
	case strings.HasSuffix(lower, ".msl"):
		format, formatOK = loader.FormatMSL, true
	case strings.HasSuffix(lower, ".json"):
		format, formatOK = loader.FormatJSON, true
	}

	base := strings.TrimSuffix(lower, suffixOf(lower))
	stage, stageOK = shader.InferStageFromFilename(base)
	return
}

// suffixOf returns the format suffix lower already matched, so
// InferFromFilename can strip it before checking for a stage suffix
// underneath (e.g. "blur.comp.hlsl" has format suffix ".hlsl" and stage
// suffix ".comp").
func suffixOf(lower string) string {
	for _, s := range []string{".spv", ".hlsl", ".dxbc", ".dxil", ".msl", ".json"} {
		if strings.HasSuffix(lower, s) {
			return s
		}
	}
	return ""
}
