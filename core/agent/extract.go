// ABOUTME: Markdown extraction from one-shot runtime reply bodies
// ABOUTME: Pulls a human string out of conventional JSON keys, else code-fences the payload

package agent

import "encoding/json"

// responseKeys are the conventional fields carrying the human-readable reply.
var responseKeys = []string{"response", "output", "message"}

// ExtractMarkdown converts a one-shot reply body into displayable markdown.
// A JSON string becomes itself; an object with a conventional string field
// becomes that field; any other JSON value is pretty-printed inside a fenced
// json block; a body that is not JSON passes through unchanged.
func ExtractMarkdown(raw string) string {
	var data interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return raw
	}

	switch v := data.(type) {
	case string:
		return v
	case map[string]interface{}:
		for _, key := range responseKeys {
			if s, ok := v[key].(string); ok {
				return s
			}
		}
	}

	pretty, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return raw
	}
	return "```json\n" + string(pretty) + "\n```"
}
