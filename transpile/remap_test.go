package transpile

import (
	"testing"

	"github.com/gogpu/shadercross/reflect"
)

func TestRemapGraphics(t *testing.T) {
	conv := reflect.DefaultConvention()
	resources := []reflect.Resource{
		{ID: 1, Kind: reflect.KindSampledImage, Set: 0, Binding: 0},
		{ID: 2, Kind: reflect.KindSampledImage, Set: 0, Binding: 1},
		{ID: 3, Kind: reflect.KindStorageImage, Set: 2, Binding: 0},
		{ID: 4, Kind: reflect.KindStorageBuffer, Set: 0, Binding: 2},
		{ID: 5, Kind: reflect.KindUniformBuffer, Set: 1, Binding: 0},
	}

	out, err := RemapGraphics(resources, conv)
	if err != nil {
		t.Fatalf("RemapGraphics: %v", err)
	}

	if b := out[1]; !b.HasTexture || b.Texture != 0 || !b.HasSampler || b.Sampler != 0 {
		t.Errorf("resource 1 = %+v, want texture=sampler=0", b)
	}
	if b := out[2]; !b.HasTexture || b.Texture != 1 || !b.HasSampler || b.Sampler != 1 {
		t.Errorf("resource 2 = %+v, want texture=sampler=1", b)
	}
	// Storage image offset by N_ts (2 texture-samplers).
	if b := out[3]; !b.HasTexture || b.Texture != 2 {
		t.Errorf("resource 3 = %+v, want texture=2", b)
	}
	if b := out[4]; !b.HasBuffer || b.Buffer != 2 {
		t.Errorf("resource 4 = %+v, want buffer=2", b)
	}
	// Uniform buffer offset by N_sb (1 storage buffer).
	if b := out[5]; !b.HasBuffer || b.Buffer != 1 {
		t.Errorf("resource 5 = %+v, want buffer=1", b)
	}
}

func TestRemapGraphicsRejectsBadSet(t *testing.T) {
	conv := reflect.DefaultConvention()
	resources := []reflect.Resource{
		{ID: 1, Kind: reflect.KindSampledImage, Set: 1, Binding: 0},
	}
	if _, err := RemapGraphics(resources, conv); err == nil {
		t.Fatal("expected an error for a texture-sampler outside the resource sets")
	}
}

func TestRemapComputeDistinctIndices(t *testing.T) {
	conv := reflect.DefaultConvention()
	resources := []reflect.Resource{
		{ID: 1, Kind: reflect.KindSampledImage, Set: conv.ComputeReadonlySet, Binding: 0},
		{ID: 2, Kind: reflect.KindSampledImage, Set: conv.ComputeReadonlySet, Binding: 1},
		{ID: 3, Kind: reflect.KindStorageImage, Set: conv.ComputeReadonlySet, Binding: 0},
		{ID: 4, Kind: reflect.KindStorageImage, Set: conv.ComputeReadwriteSet, Binding: 0},
		{ID: 5, Kind: reflect.KindStorageBuffer, Set: conv.ComputeReadonlySet, Binding: 0},
		{ID: 6, Kind: reflect.KindStorageBuffer, Set: conv.ComputeReadwriteSet, Binding: 0},
		{ID: 7, Kind: reflect.KindUniformBuffer, Set: conv.ComputeUniformSet, Binding: 0},
	}

	out, err := RemapCompute(resources, conv)
	if err != nil {
		t.Fatalf("RemapCompute: %v", err)
	}

	textureIdx := map[uint32]bool{}
	for _, id := range []uint32{1, 2, 3, 4} {
		b := out[id]
		if !b.HasTexture {
			t.Fatalf("resource %d: expected a texture index", id)
		}
		if textureIdx[b.Texture] {
			t.Errorf("resource %d: duplicate texture index %d", id, b.Texture)
		}
		textureIdx[b.Texture] = true
	}

	bufferIdx := map[uint32]bool{}
	for _, id := range []uint32{5, 6, 7} {
		b := out[id]
		if !b.HasBuffer {
			t.Fatalf("resource %d: expected a buffer index", id)
		}
		if bufferIdx[b.Buffer] {
			t.Errorf("resource %d: duplicate buffer index %d", id, b.Buffer)
		}
		bufferIdx[b.Buffer] = true
	}
}

func TestRemapComputeRejectsBadSet(t *testing.T) {
	conv := reflect.DefaultConvention()
	resources := []reflect.Resource{
		{ID: 1, Kind: reflect.KindUniformBuffer, Set: 7, Binding: 0},
	}
	if _, err := RemapCompute(resources, conv); err == nil {
		t.Fatal("expected an error for a uniform buffer outside the uniform set")
	}
}
