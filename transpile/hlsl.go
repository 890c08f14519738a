package transpile

import (
	"github.com/gogpu/shadercross/loader"
	"github.com/gogpu/shadercross/reflect"
	"github.com/gogpu/shadercross/shader"
	"github.com/gogpu/shadercross/xerrors"
)

// SPIRV-Cross HLSL backend option identifiers (spirv_cross_c.h's
// spvc_compiler_option enum, HLSL-specific subset).
const (
	optionHLSLShaderModel                          = 51
	optionHLSLPointSizeCompat                      = 52
	optionHLSLPointCoordCompat                     = 53
	optionHLSLSupportNonzeroBaseVertexBaseInstance = 65
	optionHLSLNonwritableUAVAsSRV                  = 144
	optionHLSLFlattenMatrixVertexInputSemantics    = 145
)

// HLSLResult is the outcome of a SPIR-V-to-HLSL transpile.
type HLSLResult struct {
	Source             string
	CleansedEntryPoint string
}

// ToHLSL transpiles a SPIR-V module to HLSL source text, per spec.md
// §4.4: shader-model 50 or 60, non-writable UAV textures treated as SRVs,
// and vertex-input matrices flattened into individual vector semantics
// (HLSL has no native matrix vertex-input binding). debug requests
// SPIRV-Cross's line-directive annotations, the closest this backend
// comes to the -g debug toggle the DXC/legacy drivers honor natively.
func ToHLSL(reg *loader.Registry, spirv []byte, stage shader.Stage, model shader.Model, debug bool) (*HLSLResult, error) {
	if reg == nil || reg.SpirvCross() == nil {
		return nil, xerrors.New(xerrors.BackendUnavailable, "spirv-cross not loaded")
	}

	ctx, err := newContext(reg, spirv)
	if err != nil {
		return nil, err
	}
	defer ctx.Release()

	if err := ctx.acquireCompiler(spvcBackendHLSL); err != nil {
		return nil, err
	}

	opts, err := ctx.createOptions()
	if err != nil {
		return nil, err
	}

	shaderModel := uint32(50)
	if model == shader.SM6 {
		shaderModel = 60
	}
	if err := ctx.setOptionUint(opts, optionHLSLShaderModel, shaderModel); err != nil {
		return nil, err
	}
	if err := ctx.setOptionBool(opts, optionHLSLNonwritableUAVAsSRV, true); err != nil {
		return nil, err
	}
	if err := ctx.setOptionBool(opts, optionHLSLFlattenMatrixVertexInputSemantics, true); err != nil {
		return nil, err
	}
	if debug {
		if err := ctx.setOptionBool(opts, optionCommonEmitLineDirectives, true); err != nil {
			return nil, err
		}
	}
	if err := ctx.installOptions(opts); err != nil {
		return nil, err
	}

	source, err := ctx.compile()
	if err != nil {
		return nil, err
	}

	_, entryName, err := reflect.EntryPoint(spirv)
	if err != nil {
		return nil, err
	}
	cleansed, err := ctx.cleansedEntryPoint(entryName, spvcExecutionModel(stage))
	if err != nil {
		return nil, err
	}

	return &HLSLResult{Source: source, CleansedEntryPoint: cleansed}, nil
}
