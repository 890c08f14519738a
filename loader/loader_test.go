package loader

import "testing"

func TestCapabilitiesContains(t *testing.T) {
	c := CapSPIRV | CapMSL
	if !c.Contains(FormatSPIRV) {
		t.Error("expected SPIRV in capability set")
	}
	if !c.Contains(FormatMSL) {
		t.Error("expected MSL in capability set")
	}
	if c.Contains(FormatDXIL) {
		t.Error("did not expect DXIL in capability set")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
		ok   bool
	}{
		{"SPIRV", FormatSPIRV, true},
		{"MSL", FormatMSL, true},
		{"JSON", FormatJSON, true},
		{"bogus", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseFormat(tt.name)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseFormat(%q) = (%v, %v), want (%v, %v)", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

// TestInitQuitLeavesNoCapabilities exercises invariant 5 from spec.md
// §8: Init followed immediately by Quit leaves no observable state.
func TestInitQuitLeavesNoCapabilities(t *testing.T) {
	r, err := Init()
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	r.Quit()
	if r.Capabilities() != 0 {
		t.Errorf("expected zero capabilities after Quit, got %v", r.Capabilities())
	}
	if r.DXC() != nil || r.Legacy() != nil || r.SpirvCross() != nil {
		t.Error("expected all library handles cleared after Quit")
	}
}

// TestSpirvShaderFormatsAlwaysContainsSpirvAndMSL exercises invariant 6
// from spec.md §8: GetSpirvShaderFormats monotonically contains
// {SPIR-V, MSL} regardless of which native libraries loaded. On a test
// host with no native compiler libraries installed, this is the only
// way to observe the unconditional members.
func TestSpirvShaderFormatsAlwaysContainsSpirvAndMSL(t *testing.T) {
	r, err := Init()
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer r.Quit()

	formats := r.GetSpirvShaderFormats()
	has := func(f Format) bool {
		for _, got := range formats {
			if got == f {
				return true
			}
		}
		return false
	}
	if !has(FormatSPIRV) {
		t.Error("GetSpirvShaderFormats must always contain SPIRV")
	}
	if !has(FormatMSL) {
		t.Error("GetSpirvShaderFormats must always contain MSL")
	}
}

func TestHlslShaderFormatsEmptyWithoutBackends(t *testing.T) {
	var r *Registry
	formats := r.GetHlslShaderFormats()
	if len(formats) != 0 {
		t.Errorf("expected no formats from a nil registry, got %v", formats)
	}
}
