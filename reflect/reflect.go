package reflect

import "github.com/gogpu/shadercross/xerrors"

// DescriptorConvention names the descriptor-set indices this reflector
// (and the MSL resource remapper, which reuses classifyResources)
// expects shader authors to use. DefaultConvention matches the
// hard-wired values in the external interface; it is exposed as a value
// rather than a package constant so a caller can adapt to a different
// convention without forking this package.
type DescriptorConvention struct {
	// GraphicsResourceSets holds the two sets allowed for graphics
	// texture/sampler/storage-buffer resources (vertex, fragment).
	GraphicsResourceSets [2]uint32
	// GraphicsUniformSets holds the two sets allowed for graphics uniform
	// buffers (vertex, fragment).
	GraphicsUniformSets [2]uint32

	ComputeReadonlySet  uint32
	ComputeReadwriteSet uint32
	ComputeUniformSet   uint32
}

// DefaultConvention is the descriptor-set convention fixed by the
// external interface.
func DefaultConvention() DescriptorConvention {
	return DescriptorConvention{
		GraphicsResourceSets: [2]uint32{0, 2},
		GraphicsUniformSets:  [2]uint32{1, 3},
		ComputeReadonlySet:   0,
		ComputeReadwriteSet:  1,
		ComputeUniformSet:    2,
	}
}

// GraphicsShaderMetadata is the reflection result for a vertex or
// fragment SPIR-V module.
type GraphicsShaderMetadata struct {
	Samplers        int `json:"samplers"`
	StorageTextures int `json:"storage_textures"`
	StorageBuffers  int `json:"storage_buffers"`
	UniformBuffers  int `json:"uniform_buffers"`
}

// ComputePipelineMetadata is the reflection result for a compute SPIR-V
// module.
type ComputePipelineMetadata struct {
	Samplers                int `json:"samplers"`
	ReadonlyStorageTextures int `json:"readonly_storage_textures"`
	ReadonlyStorageBuffers  int `json:"readonly_storage_buffers"`
	ReadwriteStorageTextures int `json:"readwrite_storage_textures"`
	ReadwriteStorageBuffers  int `json:"readwrite_storage_buffers"`
	UniformBuffers          int `json:"uniform_buffers"`
	ThreadcountX            uint32 `json:"threadcount_x"`
	ThreadcountY            uint32 `json:"threadcount_y"`
	ThreadcountZ            uint32 `json:"threadcount_z"`
}

// Graphics reflects a vertex or fragment SPIR-V module using the default
// descriptor-set convention.
func Graphics(spirv []byte) (*GraphicsShaderMetadata, error) {
	return GraphicsWithConvention(spirv, DefaultConvention())
}

// GraphicsWithConvention reflects a vertex or fragment SPIR-V module, per
// spec.md §4.3's reflect_graphics: count sampled-images (or, if there are
// none, separate-samplers instead — HLSL-origin modules split the two),
// then storage-images, storage-buffers, and uniform-buffers.
func GraphicsWithConvention(spirv []byte, conv DescriptorConvention) (*GraphicsShaderMetadata, error) {
	m, err := parseModule(spirv)
	if err != nil {
		return nil, err
	}

	var sampledImages, separateSamplers, storageImages, storageBuffers, uniformBuffers int
	for _, r := range m.classifyResources() {
		if !r.hasSet || !r.hasBind {
			return nil, xerrors.NewMissingDecoration(r.kind.String())
		}

		switch r.kind {
		case KindSampledImage:
			if err := requireSet(conv.GraphicsResourceSets[:], r); err != nil {
				return nil, err
			}
			sampledImages++
		case KindSeparateSampler:
			if err := requireSet(conv.GraphicsResourceSets[:], r); err != nil {
				return nil, err
			}
			separateSamplers++
		case KindStorageImage:
			if err := requireSet(conv.GraphicsResourceSets[:], r); err != nil {
				return nil, err
			}
			storageImages++
		case KindStorageBuffer:
			if err := requireSet(conv.GraphicsResourceSets[:], r); err != nil {
				return nil, err
			}
			storageBuffers++
		case KindUniformBuffer:
			if err := requireSet(conv.GraphicsUniformSets[:], r); err != nil {
				return nil, err
			}
			uniformBuffers++
		}
	}

	samplers := sampledImages
	if samplers == 0 {
		samplers = separateSamplers
	}

	return &GraphicsShaderMetadata{
		Samplers:        samplers,
		StorageTextures: storageImages,
		StorageBuffers:  storageBuffers,
		UniformBuffers:  uniformBuffers,
	}, nil
}

// Compute reflects a compute SPIR-V module using the default
// descriptor-set convention.
func Compute(spirv []byte) (*ComputePipelineMetadata, error) {
	return ComputeWithConvention(spirv, DefaultConvention())
}

// ComputeWithConvention reflects a compute SPIR-V module per spec.md
// §4.3's reflect_compute: samplers are counted the same way as graphics;
// storage images and storage buffers are partitioned readonly/readwrite
// by descriptor-set index; uniform buffers are counted; and the
// LocalSize execution mode supplies the threadgroup dimensions.
func ComputeWithConvention(spirv []byte, conv DescriptorConvention) (*ComputePipelineMetadata, error) {
	m, err := parseModule(spirv)
	if err != nil {
		return nil, err
	}

	var sampledImages, separateSamplers int
	var readonlyImages, readwriteImages int
	var readonlyBuffers, readwriteBuffers int
	var uniformBuffers int

	for _, r := range m.classifyResources() {
		if !r.hasSet || !r.hasBind {
			return nil, xerrors.NewMissingDecoration(r.kind.String())
		}

		switch r.kind {
		case KindSampledImage:
			sampledImages++
		case KindSeparateSampler:
			separateSamplers++
		case KindStorageImage:
			switch r.set {
			case conv.ComputeReadonlySet:
				readonlyImages++
			case conv.ComputeReadwriteSet:
				readwriteImages++
			default:
				return nil, xerrors.NewInvalidDescriptorSet(r.kind.String(), int(r.set))
			}
		case KindStorageBuffer:
			switch r.set {
			case conv.ComputeReadonlySet:
				readonlyBuffers++
			case conv.ComputeReadwriteSet:
				readwriteBuffers++
			default:
				return nil, xerrors.NewInvalidDescriptorSet(r.kind.String(), int(r.set))
			}
		case KindUniformBuffer:
			if r.set != conv.ComputeUniformSet {
				return nil, xerrors.NewInvalidDescriptorSet(r.kind.String(), int(r.set))
			}
			uniformBuffers++
		}
	}

	samplers := sampledImages
	if samplers == 0 {
		samplers = separateSamplers
	}

	meta := &ComputePipelineMetadata{
		Samplers:                 samplers,
		ReadonlyStorageTextures:  readonlyImages,
		ReadonlyStorageBuffers:   readonlyBuffers,
		ReadwriteStorageTextures: readwriteImages,
		ReadwriteStorageBuffers:  readwriteBuffers,
		UniformBuffers:           uniformBuffers,
	}
	if m.hasLocalSize {
		meta.ThreadcountX, meta.ThreadcountY, meta.ThreadcountZ = m.localSize[0], m.localSize[1], m.localSize[2]
	}
	return meta, nil
}

func requireSet(allowed []uint32, r resource) error {
	for _, s := range allowed {
		if r.set == s {
			return nil
		}
	}
	return xerrors.NewInvalidDescriptorSet(r.kind.String(), int(r.set))
}
