package reflect

import (
	"testing"

	"github.com/gogpu/shadercross/shader"
)

func TestEntryPoint(t *testing.T) {
	stage, name, err := EntryPoint(vertexFixture(t))
	if err != nil {
		t.Fatalf("EntryPoint: %v", err)
	}
	if stage != shader.Vertex || name != "main" {
		t.Errorf("EntryPoint() = (%v, %q), want (%v, \"main\")", stage, name, shader.Vertex)
	}

	stage, name, err = EntryPoint(computeFixture(t))
	if err != nil {
		t.Fatalf("EntryPoint: %v", err)
	}
	if stage != shader.Compute || name != "main" {
		t.Errorf("EntryPoint() = (%v, %q), want (%v, \"main\")", stage, name, shader.Compute)
	}
}
