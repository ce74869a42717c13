package validate

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/ai-village-agents/collabgraph/internal/domain/graph"
)

// Schema renders the JSON Schema describing a graph document, generated
// from the Go types so it never drifts from what the builder emits.
// The output is pretty-printed with a trailing newline, ready to write
// to a file.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(&graph.Document{})
	schema.Title = "Collaboration graph document"
	schema.Description = "Privacy-filtered collaboration graph derived from the village event log."

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	return append(data, '\n'), nil
}
