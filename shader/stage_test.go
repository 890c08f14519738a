package shader

import "testing"

func TestDXCProfile(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
	}{
		{Vertex, "vs_6_0"},
		{Fragment, "ps_6_0"},
		{Compute, "cs_6_0"},
	}
	for _, tt := range tests {
		got, err := tt.stage.DXCProfile()
		if err != nil {
			t.Fatalf("DXCProfile(%v): %v", tt.stage, err)
		}
		if got != tt.want {
			t.Errorf("DXCProfile(%v) = %q, want %q", tt.stage, got, tt.want)
		}
	}
}

func TestInferStageFromFilename(t *testing.T) {
	tests := []struct {
		name string
		want Stage
		ok   bool
	}{
		{"shader.vert", Vertex, true},
		{"shader.frag", Fragment, true},
		{"shader.comp", Compute, true},
		{"dir.vert/shader.spv", 0, false},
		{"shader.txt", 0, false},
	}
	for _, tt := range tests {
		got, ok := InferStageFromFilename(tt.name)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("InferStageFromFilename(%q) = (%v, %v), want (%v, %v)", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}
