package explain

import (
	"fmt"
)

// FromValue builds a document from an EXPLAIN result already fetched by a
// database driver. Drivers hand back the json column either decoded
// ([]any or map[string]any) or as text (string or []byte); text is parsed
// with Parse.
func FromValue(v any) (Document, error) {
	switch val := v.(type) {
	case string:
		return Parse([]byte(val))
	case []byte:
		return Parse(val)
	case []any, map[string]any:
		docs, err := documents(val)
		if err != nil {
			return Document{}, err
		}
		return docs[0], nil
	case nil:
		return Document{}, fmt.Errorf("empty EXPLAIN output")
	default:
		return Document{}, fmt.Errorf("unsupported EXPLAIN value of type %T", v)
	}
}
