package loader

import "fmt"

// Format identifies a shader artifact format the core can produce or
// consume.
type Format uint8

const (
	FormatSPIRV Format = iota
	FormatHLSL
	FormatDXBC
	FormatDXIL
	FormatMSL
	FormatJSON
)

// String returns the format's canonical name.
func (f Format) String() string {
	switch f {
	case FormatSPIRV:
		return "SPIRV"
	case FormatHLSL:
		return "HLSL"
	case FormatDXBC:
		return "DXBC"
	case FormatDXIL:
		return "DXIL"
	case FormatMSL:
		return "MSL"
	case FormatJSON:
		return "JSON"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// ParseFormat maps a format name (case-sensitive, as used on the CLI) to
// a Format. The bool is false for an unrecognized name.
func ParseFormat(name string) (Format, bool) {
	switch name {
	case "SPIRV":
		return FormatSPIRV, true
	case "HLSL":
		return FormatHLSL, true
	case "DXBC":
		return FormatDXBC, true
	case "DXIL":
		return FormatDXIL, true
	case "MSL":
		return FormatMSL, true
	case "JSON":
		return FormatJSON, true
	default:
		return 0, false
	}
}

// Capabilities is a set of output format bits, following the
// 1<<iota bitset convention used by gogpu/wgpu's types.Backends.
type Capabilities uint8

const (
	CapSPIRV Capabilities = 1 << FormatSPIRV
	CapHLSL  Capabilities = 1 << FormatHLSL
	CapDXBC  Capabilities = 1 << FormatDXBC
	CapDXIL  Capabilities = 1 << FormatDXIL
	CapMSL   Capabilities = 1 << FormatMSL
	CapJSON  Capabilities = 1 << FormatJSON
)

// Contains reports whether the capability set includes format f.
func (c Capabilities) Contains(f Format) bool {
	return c&(1<<f) != 0
}

// Formats returns the set's members as a slice, in Format enum order.
func (c Capabilities) Formats() []Format {
	var out []Format
	for f := FormatSPIRV; f <= FormatJSON; f++ {
		if c.Contains(f) {
			out = append(out, f)
		}
	}
	return out
}
