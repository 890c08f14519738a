package reflect

import (
	"sort"

	"github.com/gogpu/shadercross/xerrors"
)

// ResourceKind categorizes a reflected shader resource.
type ResourceKind uint8

const (
	KindSampledImage ResourceKind = iota
	KindSeparateSampler
	KindStorageImage
	KindStorageBuffer
	KindUniformBuffer
)

func (k ResourceKind) String() string {
	switch k {
	case KindSampledImage:
		return "sampled image"
	case KindSeparateSampler:
		return "separate sampler"
	case KindStorageImage:
		return "storage image"
	case KindStorageBuffer:
		return "storage buffer"
	case KindUniformBuffer:
		return "uniform buffer"
	default:
		return "unknown resource"
	}
}

// resource is one classified (set, binding) variable found in a module.
type resource struct {
	id      uint32
	kind    ResourceKind
	set     uint32
	binding uint32
	hasSet  bool
	hasBind bool
}

// Resource is the exported form of a classified shader resource, used by
// the MSL remapper (which needs every resource's (kind, set, binding)
// triple before it can assign flat Metal indices).
type Resource struct {
	ID      uint32
	Kind    ResourceKind
	Set     uint32
	Binding uint32
}

// ClassifyResources parses spirv and returns every resource this package
// recognizes, in ascending result-id order (a stable, deterministic
// order — SPIR-V assigns ids in module declaration order, so this
// matches the shader author's declaration order in practice). Returns
// MissingDecoration if any recognized resource lacks a set or binding.
func ClassifyResources(spirv []byte) ([]Resource, error) {
	m, err := parseModule(spirv)
	if err != nil {
		return nil, err
	}

	raw := m.classifyResources()
	sort.Slice(raw, func(i, j int) bool { return raw[i].id < raw[j].id })

	out := make([]Resource, 0, len(raw))
	for _, r := range raw {
		if !r.hasSet || !r.hasBind {
			return nil, xerrors.NewMissingDecoration(r.kind.String())
		}
		out = append(out, Resource{ID: r.id, Kind: r.kind, Set: r.set, Binding: r.binding})
	}
	return out, nil
}

// classifyResources walks every OpVariable in m and classifies the ones
// that name shader resources (UniformConstant, Uniform, or StorageBuffer
// storage class pointees), skipping plain private/function-local
// variables. The result preserves no particular order; callers sort or
// group as needed.
func (m *module) classifyResources() []resource {
	var out []resource
	for id, v := range m.variables {
		ptr, ok := m.types[v.pointerType]
		if !ok || ptr.kind != typePointer {
			continue
		}
		pointee, ok := m.types[ptr.pointeeType]
		if !ok {
			continue
		}

		var kind ResourceKind
		switch {
		case pointee.kind == typeSampledImage:
			kind = KindSampledImage
		case pointee.kind == typeSampler:
			kind = KindSeparateSampler
		case pointee.kind == typeImage && pointee.imageSampled == 2:
			kind = KindStorageImage
		case pointee.kind == typeImage && pointee.imageSampled == 1:
			kind = KindSampledImage
		case pointee.kind == typeStruct && pointee.hasBlock && v.storageClass == StorageClassStorageBuffer:
			kind = KindStorageBuffer
		case pointee.kind == typeStruct && pointee.hasBlock && v.storageClass == StorageClassUniform:
			kind = KindUniformBuffer
		default:
			continue
		}

		set, hasSet := m.sets[id]
		binding, hasBind := m.bindings[id]
		out = append(out, resource{id: id, kind: kind, set: set, binding: binding, hasSet: hasSet, hasBind: hasBind})
	}
	return out
}
