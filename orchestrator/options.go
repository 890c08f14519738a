package orchestrator

import (
	"github.com/gogpu/shadercross/reflect"
	"github.com/gogpu/shadercross/shader"
)

// Options configures one Translate call. Not every field applies to
// every route: Entrypoint/IncludeDir/Defines only matter when an
// HLSL-compile stage runs somewhere in the route; EnableDebug is passed
// to every HLSL-compile and SPIR-V transpile stage; Model only matters
// when the destination is HLSL text (DXBC routes always use sm5 and
// DXIL routes sm6).
type Options struct {
	Stage shader.Stage
	Model shader.Model

	Entrypoint  string
	IncludeDir  string
	Defines     []string
	EnableDebug bool

	Convention reflect.DescriptorConvention
}

// DefaultOptions returns an Options with the default descriptor-set
// convention and sm5, suitable as a starting point for a caller that
// only needs to override Stage and Entrypoint.
func DefaultOptions() Options {
	return Options{Model: shader.SM5, Convention: reflect.DefaultConvention()}
}
