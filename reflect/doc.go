// Package reflect walks a parsed SPIR-V module and classifies its
// resources by the descriptor-set conventions fixed in the external
// interface: texture/sampler/storage resources on sets {0, 2}, uniform
// buffers on sets {1, 3} for graphics stages; readonly resources on set
// 0, readwrite on set 1, uniform buffers on set 2 for compute. The
// classification helpers here are shared with the MSL resource
// remapper, which needs the same per-resource (kind, set, binding)
// triples before it can assign flat Metal indices.
package reflect
