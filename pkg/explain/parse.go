package explain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseJSON decodes EXPLAIN (FORMAT JSON) output. PostgreSQL emits a list of
// wrapper objects; a single bare wrapper object and a JSON string holding
// either form are accepted as well.
func ParseJSON(data []byte) ([]Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("invalid EXPLAIN JSON: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("invalid EXPLAIN JSON: unexpected data after plan")
	}

	if s, ok := payload.(string); ok {
		trimmed := strings.TrimSpace(s)
		if strings.HasPrefix(trimmed, `"`) {
			return nil, fmt.Errorf("invalid EXPLAIN JSON: nested string payload")
		}
		return ParseJSON([]byte(trimmed))
	}

	return documents(payload)
}

// ParseYAML decodes EXPLAIN (FORMAT YAML) output.
func ParseYAML(data []byte) ([]Document, error) {
	var payload any
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("invalid EXPLAIN YAML: %w", err)
	}
	return documents(payload)
}

// Parse detects the format of data and returns the first document.
func Parse(data []byte) (Document, error) {
	var (
		docs []Document
		err  error
	)

	switch detectFormat(data) {
	case "json":
		docs, err = ParseJSON(data)
	case "yaml":
		docs, err = ParseYAML(data)
	case "text":
		return Document{}, fmt.Errorf(`text format not supported - use JSON format:

EXPLAIN (ANALYZE, BUFFERS, FORMAT JSON) <your query>`)
	case "empty":
		return Document{}, fmt.Errorf("empty EXPLAIN output")
	default:
		return Document{}, fmt.Errorf("unable to detect EXPLAIN format: expected JSON or YAML plan")
	}

	if err != nil {
		return Document{}, err
	}
	return docs[0], nil
}

func documents(payload any) ([]Document, error) {
	switch v := payload.(type) {
	case []any:
		if len(v) == 0 {
			return nil, fmt.Errorf("empty EXPLAIN output")
		}
		docs := make([]Document, 0, len(v))
		for i, entry := range v {
			doc, err := newDocument(entry, fmt.Sprintf("[%d]", i))
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
		return docs, nil
	case map[string]any:
		doc, err := newDocument(v, "")
		if err != nil {
			return nil, err
		}
		return []Document{doc}, nil
	case nil:
		return nil, fmt.Errorf("empty EXPLAIN output")
	default:
		return nil, fmt.Errorf("unexpected EXPLAIN payload of type %T", payload)
	}
}

func detectFormat(data []byte) string {
	trimmed := strings.TrimSpace(string(data))
	if rest, ok := strings.CutPrefix(trimmed, "---"); ok {
		trimmed = strings.TrimSpace(rest)
	}

	switch {
	case trimmed == "":
		return "empty"
	case strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, `"`):
		return "json"
	case strings.HasPrefix(trimmed, "- Plan:") || strings.HasPrefix(trimmed, "Plan:"):
		return "yaml"
	case strings.Contains(trimmed, "(cost="):
		return "text"
	default:
		return "unknown"
	}
}
