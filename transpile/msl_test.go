package transpile

import (
	"testing"

	"github.com/gogpu/shadercross/loader"
	"github.com/gogpu/shadercross/reflect"
	"github.com/gogpu/shadercross/shader"
	"github.com/gogpu/shadercross/xerrors"
)

func TestToMSLRequiresLoadedBackend(t *testing.T) {
	reg := &loader.Registry{}
	_, err := ToMSL(reg, []byte{1, 2, 3, 4}, shader.Fragment, reflect.DefaultConvention(), false)
	if !xerrors.Is(err, xerrors.BackendUnavailable) {
		t.Fatalf("ToMSL with no spirv-cross loaded: got %v, want BackendUnavailable", err)
	}
}

func TestMSLLanguageVersionPacking(t *testing.T) {
	if got, want := mslLanguageVersion(2, 0, 0), uint32(20000); got != want {
		t.Errorf("mslLanguageVersion(2,0,0) = %d, want %d", got, want)
	}
	if got, want := mslLanguageVersion(2, 3, 0), uint32(20300); got != want {
		t.Errorf("mslLanguageVersion(2,3,0) = %d, want %d", got, want)
	}
}
