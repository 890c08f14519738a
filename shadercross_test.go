package shadercross

import (
	"testing"

	"github.com/gogpu/shadercross/loader"
	"github.com/gogpu/shadercross/shader"
)

func TestInferFromFilenameFormat(t *testing.T) {
	cases := []struct {
		name string
		want loader.Format
	}{
		{"shader.spv", loader.FormatSPIRV},
		{"shader.hlsl", loader.FormatHLSL},
		{"shader.dxbc", loader.FormatDXBC},
		{"shader.dxil", loader.FormatDXIL},
		{"shader.msl", loader.FormatMSL},
		{"reflection.json", loader.FormatJSON},
	}
	for _, c := range cases {
		got, ok := func() (loader.Format, bool) {
			f, ok, _, _ := InferFromFilename(c.name)
			return f, ok
		}()
		if !ok {
			t.Errorf("InferFromFilename(%q): format not recognized", c.name)
			continue
		}
		if got != c.want {
			t.Errorf("InferFromFilename(%q) format = %s, want %s", c.name, got, c.want)
		}
	}
}

func TestInferFromFilenameStage(t *testing.T) {
	cases := []struct {
		name string
		want shader.Stage
	}{
		{"blur.vert.spv", shader.Vertex},
		{"blur.frag.hlsl", shader.Fragment},
		{"blur.comp.dxil", shader.Compute},
	}
	for _, c := range cases {
		_, _, got, ok := InferFromFilename(c.name)
		if !ok {
			t.Errorf("InferFromFilename(%q): stage not recognized", c.name)
			continue
		}
		if got != c.want {
			t.Errorf("InferFromFilename(%q) stage = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestInferFromFilenameNoMatch(t *testing.T) {
	_, formatOK, _, stageOK := InferFromFilename("shader.txt")
	if formatOK || stageOK {
		t.Errorf("InferFromFilename(%q) should not match any format or stage", "shader.txt")
	}
}

func TestCapabilitiesNilRegistry(t *testing.T) {
	if got := Capabilities(nil); got != 0 {
		t.Errorf("Capabilities(nil) = %v, want 0", got)
	}
}
