package llm

import (
	"bytes"
	"encoding/json"
)

// UnmarshalModelJSON parses a model response into out, tolerating the
// markdown code fences some models wrap around JSON output.
func UnmarshalModelJSON(raw string, out any) error {
	responseBytes := []byte(raw)
	responseBytes = bytes.TrimSpace(responseBytes)
	responseBytes = bytes.TrimPrefix(responseBytes, []byte("```json"))
	responseBytes = bytes.TrimPrefix(responseBytes, []byte("```"))
	responseBytes = bytes.TrimSuffix(responseBytes, []byte("```"))
	responseBytes = bytes.TrimSpace(responseBytes)

	if err := json.Unmarshal(responseBytes, out); err != nil {
		return NewAIError(KindParseError, "response does not match expected schema", err)
	}
	return nil
}
