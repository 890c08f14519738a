// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package shader

import "fmt"

// Model is an HLSL shader model: sm5 routes to legacy DXBC, sm6 routes
// to DXIL (spec.md §2 GLOSSARY).
type Model uint8

const (
	SM5 Model = iota
	SM6
)

// String returns e.g. "SM 5.0".
func (m Model) String() string {
	switch m {
	case SM5:
		return "SM 5.0"
	case SM6:
		return "SM 6.0"
	default:
		return fmt.Sprintf("Model(%d)", uint8(m))
	}
}

// LegacyProfile returns the legacy D3DCompile target profile for
// (stage, model), e.g. "vs_5_0": sm5 yields the _5_0 profiles and sm6
// the _6_0 profiles. There is no sm 5.1 model, so no _5_1 profile is
// ever produced.
func (m Model) LegacyProfile(stage Stage) (string, error) {
	var modelSuffix string
	switch m {
	case SM5:
		modelSuffix = "5_0"
	case SM6:
		modelSuffix = "6_0"
	default:
		return "", fmt.Errorf("shader: unknown shader model %v", m)
	}

	var stagePrefix string
	switch stage {
	case Vertex:
		stagePrefix = "vs"
	case Fragment:
		stagePrefix = "ps"
	case Compute:
		stagePrefix = "cs"
	default:
		return "", fmt.Errorf("shader: unknown stage %v", stage)
	}

	return fmt.Sprintf("%s_%s", stagePrefix, modelSuffix), nil
}
