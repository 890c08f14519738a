package hlslfrontend

import (
	"fmt"

	"github.com/gogpu/shadercross/shader"
)

// Emit selects what compile_from_hlsl_dxc produces.
type Emit uint8

const (
	EmitDXIL Emit = iota
	EmitSPIRV
)

// Options configures compile_from_hlsl_dxc.
type Options struct {
	Entrypoint  string
	IncludeDir  string // optional; empty means no -I
	Defines     []string
	Stage       shader.Stage
	Emit        Emit
	EnableDebug bool
}

// buildDxcArgs constructs the DXC command-line argument list per
// spec.md §4.2: -E <entrypoint>, -T <profile>, optional -I <dir>,
// optional -spirv, one -D<define> per define, optional -Od for debug.
func buildDxcArgs(opts Options) ([]string, error) {
	profile, err := opts.Stage.DXCProfile()
	if err != nil {
		return nil, err
	}

	args := []string{"-E", opts.Entrypoint, "-T", profile}

	if opts.IncludeDir != "" {
		args = append(args, "-I", opts.IncludeDir)
	}
	if opts.Emit == EmitSPIRV {
		args = append(args, "-spirv")
	}
	for _, define := range opts.Defines {
		args = append(args, "-D"+define)
	}
	if opts.EnableDebug {
		args = append(args, "-Od")
	}
	return args, nil
}

// utf16FromString converts s to a NUL-terminated UTF-16 buffer, matching
// DXC's wide-string argv (IDxcCompiler3::Compile takes wchar_t* argv
// entries on Windows, and the cross-platform dxcompiler build mirrors
// the same ABI).
func utf16FromString(s string) []uint16 {
	out := make([]uint16, 0, len(s)+1)
	for _, r := range s {
		if r <= 0xFFFF {
			out = append(out, uint16(r))
			continue
		}
		r -= 0x10000
		out = append(out, uint16(0xD800+(r>>10)), uint16(0xDC00+(r&0x3FF)))
	}
	return append(out, 0)
}

func (e Emit) String() string {
	switch e {
	case EmitDXIL:
		return "DXIL"
	case EmitSPIRV:
		return "SPIRV"
	default:
		return fmt.Sprintf("Emit(%d)", uint8(e))
	}
}
