package transpile

import (
	"github.com/gogpu/shadercross/loader"
	"github.com/gogpu/shadercross/reflect"
	"github.com/gogpu/shadercross/shader"
	"github.com/gogpu/shadercross/xerrors"
)

// SPIRV-Cross compiler-option identifiers this package sets on the MSL
// backend (spirv_cross_c.h's spvc_compiler_option enum, trimmed to the
// options this driver touches).
const (
	optionMSLVersion             = 56
	optionMSLPlatform            = 57
	optionMSLTextureBufferNative = 64
	optionMSLArgumentBuffers     = 72
)

// spvcExecutionModel mirrors SpvExecutionModel, the value the cleansed
// entry-point lookup needs.
func spvcExecutionModel(stage shader.Stage) uint32 {
	switch stage {
	case shader.Vertex:
		return 0
	case shader.Fragment:
		return 4
	case shader.Compute:
		return 5
	default:
		return 0
	}
}

// MSLResult is the outcome of a SPIR-V-to-MSL transpile: the translated
// source text plus the entry-point name SPIRV-Cross actually emitted
// (which may differ from the input name — see CleansedEntryPoint).
type MSLResult struct {
	Source             string
	CleansedEntryPoint string
}

// ToMSL transpiles a SPIR-V module to Metal Shading Language source, per
// spec.md §4.4: resources are remapped from (set, binding) to Metal's
// flat (texture, sampler, buffer) index spaces before compilation, using
// the convention-driven rules in remap.go. debug requests SPIRV-Cross's
// line-directive annotations, the closest this backend comes to the
// -g debug toggle the DXC/legacy drivers honor natively.
func ToMSL(reg *loader.Registry, spirv []byte, stage shader.Stage, conv reflect.DescriptorConvention, debug bool) (*MSLResult, error) {
	if reg == nil || reg.SpirvCross() == nil {
		return nil, xerrors.New(xerrors.BackendUnavailable, "spirv-cross not loaded")
	}

	resources, err := reflect.ClassifyResources(spirv)
	if err != nil {
		return nil, err
	}

	var bindings map[uint32]MSLBinding
	if stage == shader.Compute {
		bindings, err = RemapCompute(resources, conv)
	} else {
		bindings, err = RemapGraphics(resources, conv)
	}
	if err != nil {
		return nil, err
	}

	ctx, err := newContext(reg, spirv)
	if err != nil {
		return nil, err
	}
	defer ctx.Release()

	if err := ctx.acquireCompiler(spvcBackendMSL); err != nil {
		return nil, err
	}

	opts, err := ctx.createOptions()
	if err != nil {
		return nil, err
	}
	if err := ctx.setOptionUint(opts, optionMSLVersion, mslLanguageVersion(2, 0, 0)); err != nil {
		return nil, err
	}
	if err := ctx.setOptionBool(opts, optionMSLTextureBufferNative, true); err != nil {
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

	execModel := spvcExecutionModel(stage)
	for id, resource := range indexResourcesByID(resources) {
		binding, ok := bindings[id]
		if !ok {
			continue
		}
		if err := ctx.addMSLResourceBinding(execModel, resource.Set, resource.Binding, binding); err != nil {
			return nil, err
		}
	}

	source, err := ctx.compile()
	if err != nil {
		return nil, err
	}

	_, entryName, err := reflect.EntryPoint(spirv)
	if err != nil {
		return nil, err
	}
	cleansed, err := ctx.cleansedEntryPoint(entryName, execModel)
	if err != nil {
		return nil, err
	}

	return &MSLResult{Source: source, CleansedEntryPoint: cleansed}, nil
}

// mslLanguageVersion packs (major, minor, patch) the way
// spirv_cross_c.h's SPVC_MAKE_MSL_VERSION macro does.
func mslLanguageVersion(major, minor, patch uint32) uint32 {
	return major*10000 + minor*100 + patch
}

func indexResourcesByID(resources []reflect.Resource) map[uint32]reflect.Resource {
	out := make(map[uint32]reflect.Resource, len(resources))
	for _, r := range resources {
		out[r.ID] = r
	}
	return out
}
