package transpile

import (
	"sort"

	"github.com/gogpu/shadercross/reflect"
	"github.com/gogpu/shadercross/xerrors"
)

// MSLBinding is the flat Metal index space a single SPIR-V resource maps
// onto. Metal has no descriptor sets: every resource lives in one of
// three independent flat ranges, and at most two of the three fields
// here are ever populated for a single resource (a combined
// texture-sampler gets both Texture and Sampler; everything else gets
// exactly one of Texture, Sampler, Buffer).
type MSLBinding struct {
	Texture    uint32
	HasTexture bool
	Sampler    uint32
	HasSampler bool
	Buffer     uint32
	HasBuffer  bool
}

// RemapGraphics computes Metal flat indices for a vertex or fragment
// module's resources, per spec.md §4.4's graphics remapping rules,
// applied in the stated order:
//  1. texture-samplers on the resource sets: msl_texture = msl_sampler = binding.
//  2. storage-textures on the resource sets: msl_texture = N_ts + binding.
//  3. storage-buffers on the resource sets: msl_buffer = binding.
//  4. uniform-buffers on the uniform sets: msl_buffer = N_sb + binding.
//
// N_ts and N_sb are fixed totals (the texture-sampler and storage-buffer
// counts respectively), not running counters, so rules 2 and 4 do not
// depend on processing order — every resource's final index is a pure
// function of its own binding plus a constant.
func RemapGraphics(resources []reflect.Resource, conv reflect.DescriptorConvention) (map[uint32]MSLBinding, error) {
	out := make(map[uint32]MSLBinding, len(resources))

	var nTextureSamplers, nStorageBuffers uint32
	for _, r := range resources {
		switch r.Kind {
		case reflect.KindSampledImage:
			nTextureSamplers++
		case reflect.KindStorageBuffer:
			if err := requireResourceSet(conv.GraphicsResourceSets[:], r); err != nil {
				return nil, err
			}
			nStorageBuffers++
		}
	}

	for _, r := range resources {
		switch r.Kind {
		case reflect.KindSampledImage:
			if err := requireResourceSet(conv.GraphicsResourceSets[:], r); err != nil {
				return nil, err
			}
			out[r.ID] = MSLBinding{Texture: r.Binding, HasTexture: true, Sampler: r.Binding, HasSampler: true}

		case reflect.KindSeparateSampler:
			if err := requireResourceSet(conv.GraphicsResourceSets[:], r); err != nil {
				return nil, err
			}
			out[r.ID] = MSLBinding{Sampler: r.Binding, HasSampler: true}

		case reflect.KindStorageImage:
			if err := requireResourceSet(conv.GraphicsResourceSets[:], r); err != nil {
				return nil, err
			}
			out[r.ID] = MSLBinding{Texture: nTextureSamplers + r.Binding, HasTexture: true}

		case reflect.KindStorageBuffer:
			out[r.ID] = MSLBinding{Buffer: r.Binding, HasBuffer: true}

		case reflect.KindUniformBuffer:
			if err := requireResourceSet(conv.GraphicsUniformSets[:], r); err != nil {
				return nil, err
			}
			out[r.ID] = MSLBinding{Buffer: nStorageBuffers + r.Binding, HasBuffer: true}
		}
	}

	return out, nil
}

// RemapCompute computes Metal flat indices for a compute module's
// resources, per spec.md §4.4's compute remapping rules. Unlike
// graphics, the texture counter T and buffer counter B here are running
// counters that the rule order (1 through 6) genuinely determines —
// within a rule, resources are visited in ascending binding order so
// the result is deterministic.
func RemapCompute(resources []reflect.Resource, conv reflect.DescriptorConvention) (map[uint32]MSLBinding, error) {
	byBinding := append([]reflect.Resource(nil), resources...)
	sort.Slice(byBinding, func(i, j int) bool { return byBinding[i].Binding < byBinding[j].Binding })

	out := make(map[uint32]MSLBinding, len(resources))
	var textureCount, bufferCount uint32

	filter := func(kind reflect.ResourceKind, set uint32) []reflect.Resource {
		var matched []reflect.Resource
		for _, r := range byBinding {
			if r.Kind == kind && r.Set == set {
				matched = append(matched, r)
			}
		}
		return matched
	}

	// Rule 1: texture-samplers on the readonly set.
	for _, r := range filter(reflect.KindSampledImage, conv.ComputeReadonlySet) {
		out[r.ID] = MSLBinding{Texture: textureCount, HasTexture: true, Sampler: textureCount, HasSampler: true}
		textureCount++
	}

	// Rule 2: storage-textures on the readonly set.
	for _, r := range filter(reflect.KindStorageImage, conv.ComputeReadonlySet) {
		out[r.ID] = MSLBinding{Texture: textureCount + r.Binding, HasTexture: true}
		textureCount++
	}

	// Rule 3: storage-textures on the readwrite set.
	for _, r := range filter(reflect.KindStorageImage, conv.ComputeReadwriteSet) {
		out[r.ID] = MSLBinding{Texture: textureCount + r.Binding, HasTexture: true}
		textureCount++
	}

	// Rule 4: storage-buffers on the readonly set.
	for _, r := range filter(reflect.KindStorageBuffer, conv.ComputeReadonlySet) {
		out[r.ID] = MSLBinding{Buffer: r.Binding, HasBuffer: true}
		bufferCount++
	}

	// Rule 5: storage-buffers on the readwrite set.
	for _, r := range filter(reflect.KindStorageBuffer, conv.ComputeReadwriteSet) {
		out[r.ID] = MSLBinding{Buffer: bufferCount + r.Binding, HasBuffer: true}
		bufferCount++
	}

	// Rule 6: uniform-buffers on the uniform set.
	for _, r := range filter(reflect.KindUniformBuffer, conv.ComputeUniformSet) {
		out[r.ID] = MSLBinding{Buffer: bufferCount + r.Binding, HasBuffer: true}
		bufferCount++
	}

	for _, r := range resources {
		if _, ok := out[r.ID]; ok {
			continue
		}
		return nil, xerrors.NewInvalidDescriptorSet(r.Kind.String(), int(r.Set))
	}

	return out, nil
}

func requireResourceSet(allowed []uint32, r reflect.Resource) error {
	for _, s := range allowed {
		if r.Set == s {
			return nil
		}
	}
	return xerrors.NewInvalidDescriptorSet(r.Kind.String(), int(r.Set))
}
