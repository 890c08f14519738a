// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package shader holds the small, shared vocabulary types used across
// every shadercross component: the shader stage and shader model enums
// that spec.md §3 calls ShaderStage and ShaderModel.
package shader

import "fmt"

// Stage is a shader stage.
type Stage uint8

const (
	Vertex Stage = iota
	Fragment
	Compute
)

// String returns the stage's canonical lowercase name.
func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	case Compute:
		return "compute"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// DXCProfile returns the DXC shader-target profile for this stage, e.g.
// "vs_6_0". DXC always targets shader model 6.0 profiles regardless of
// the caller's requested destination shader model (spec.md §4.2).
func (s Stage) DXCProfile() (string, error) {
	switch s {
	case Vertex:
		return "vs_6_0", nil
	case Fragment:
		return "ps_6_0", nil
	case Compute:
		return "cs_6_0", nil
	default:
		return "", fmt.Errorf("shader: unknown stage %v", s)
	}
}

// InferStageFromFilename maps a filename suffix (.vert, .frag, .comp) to
// a Stage, per spec.md §6. The bool is false if the suffix is not one of
// the three recognized stage suffixes.
func InferStageFromFilename(name string) (Stage, bool) {
	switch suffix(name) {
	case ".vert":
		return Vertex, true
	case ".frag":
		return Fragment, true
	case ".comp":
		return Compute, true
	default:
		return 0, false
	}
}

func suffix(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[i:]
		}
		if name[i] == '/' {
			break
		}
	}
	return ""
}
