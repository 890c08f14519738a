package shader

import "testing"

func TestLegacyProfile(t *testing.T) {
	tests := []struct {
		model Model
		stage Stage
		want  string
	}{
		{SM5, Vertex, "vs_5_0"},
		{SM5, Fragment, "ps_5_0"},
		{SM5, Compute, "cs_5_0"},
		{SM6, Vertex, "vs_6_0"},
	}
	for _, tt := range tests {
		got, err := tt.model.LegacyProfile(tt.stage)
		if err != nil {
			t.Fatalf("LegacyProfile(%v, %v): %v", tt.model, tt.stage, err)
		}
		if got != tt.want {
			t.Errorf("LegacyProfile(%v, %v) = %q, want %q", tt.model, tt.stage, got, tt.want)
		}
	}
}
