package transpile

import (
	"testing"

	"github.com/gogpu/shadercross/loader"
	"github.com/gogpu/shadercross/shader"
	"github.com/gogpu/shadercross/xerrors"
)

func TestToHLSLRequiresLoadedBackend(t *testing.T) {
	reg := &loader.Registry{}
	_, err := ToHLSL(reg, []byte{1, 2, 3, 4}, shader.Vertex, shader.SM5, false)
	if !xerrors.Is(err, xerrors.BackendUnavailable) {
		t.Fatalf("ToHLSL with no spirv-cross loaded: got %v, want BackendUnavailable", err)
	}
}
