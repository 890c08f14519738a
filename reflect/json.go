package reflect

import "encoding/json"

// MarshalCompact renders m as the one-line compact JSON object named in
// the external interface. json.Marshal already emits no insignificant
// whitespace, so this is a thin, named wrapper rather than a
// reimplementation.
func (m *GraphicsShaderMetadata) MarshalCompact() ([]byte, error) {
	return json.Marshal(m)
}

// MarshalCompact renders m as the one-line compact JSON object named in
// the external interface.
func (m *ComputePipelineMetadata) MarshalCompact() ([]byte, error) {
	return json.Marshal(m)
}
