// Package transpile implements the SPIR-V Transpiler + Resource
// Remapper: driving the SPIRV-Cross native library to emit MSL or HLSL
// text, and — for MSL — computing the flat Metal (texture, sampler,
// buffer) index every Vulkan-style (set, binding) resource maps onto.
package transpile
