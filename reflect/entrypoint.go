package reflect

import (
	"github.com/gogpu/shadercross/shader"
	"github.com/gogpu/shadercross/xerrors"
)

// EntryPoint reports the stage and entrypoint name of a SPIR-V module's
// first entry point. The transpile package uses the name to look up the
// backend's cleansed entry-point name; the MSL remap rule set is chosen
// from the caller's declared stage, not from the stage reported here.
func EntryPoint(spirv []byte) (shader.Stage, string, error) {
	m, err := parseModule(spirv)
	if err != nil {
		return 0, "", err
	}
	if len(m.entryPoints) == 0 {
		return 0, "", xerrors.New(xerrors.CompilationFailed, "spirv: module declares no entry point")
	}

	ep := m.entryPoints[0]
	switch ep.model {
	case ExecutionModelVertex:
		return shader.Vertex, ep.name, nil
	case ExecutionModelFragment:
		return shader.Fragment, ep.name, nil
	case ExecutionModelGLCompute:
		return shader.Compute, ep.name, nil
	default:
		return 0, "", xerrors.Newf(xerrors.CompilationFailed, "spirv: unsupported execution model %d", ep.model)
	}
}
