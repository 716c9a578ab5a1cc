package news

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// envelopeFields are the object keys providers wrap their item lists in
var envelopeFields = []string{"feed", "articles"}

// DecodeEnvelope extracts the raw item list from a provider payload.
// A JSON array is the list itself; an object yields its feed/articles field.
// Any other valid shape means "no data" and returns nil without error.
// Invalid JSON is reported as ErrUnexpectedPayload.
func DecodeEnvelope(body []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrUnexpectedPayload)
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedPayload, err)
		}
		return items, nil

	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedPayload, err)
		}
		for _, field := range envelopeFields {
			raw, ok := obj[field]
			if !ok {
				continue
			}
			var items []json.RawMessage
			if err := json.Unmarshal(raw, &items); err == nil {
				return items, nil
			}
		}
	}

	return nil, nil
}

// decodeItems unmarshals each raw item into T, skipping items of the wrong shape
func decodeItems[T any](raw []json.RawMessage) ([]T, int) {
	items := make([]T, 0, len(raw))
	skipped := 0
	for _, r := range raw {
		var item T
		if err := json.Unmarshal(r, &item); err != nil {
			skipped++
			continue
		}
		items = append(items, item)
	}
	return items, skipped
}
