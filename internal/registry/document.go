package registry

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vk/xrprofiles/internal/profile"
)

// Document is a parsed but not yet expanded registry profile document. It
// preserves the declaration order of each layout's components because the
// index-assignment convention is order-sensitive.
type Document struct {
	ProfileID string                            `json:"profileId"`
	Layouts   map[profile.Handedness]*RawLayout `json:"layouts"`
}

// RawLayout is one handedness variant as authored in the registry.
type RawLayout struct {
	SelectComponentID string
	GamepadMapping    profile.GamepadMapping
	Components        map[string]RawComponent
	ComponentOrder    []string
}

// RawComponent is a component as authored in the registry, with indices
// possibly left implicit.
type RawComponent struct {
	Type               profile.ComponentType             `json:"type"`
	Reserved           bool                              `json:"reserved,omitempty"`
	TouchPointNodeName string                            `json:"touchPointNodeName,omitempty"`
	GamepadIndices     profile.GamepadIndices            `json:"gamepadIndices,omitempty"`
	VisualResponses    map[string]profile.VisualResponse `json:"visualResponses,omitempty"`
}

// UnmarshalJSON decodes the layout and additionally captures the declaration
// order of the components object, which encoding/json's map decoding drops.
func (l *RawLayout) UnmarshalJSON(data []byte) error {
	var aux struct {
		SelectComponentID string          `json:"selectComponentId"`
		GamepadMapping    string          `json:"gamepadMapping"`
		Components        json.RawMessage `json:"components"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	l.SelectComponentID = aux.SelectComponentID
	l.GamepadMapping = profile.GamepadMapping(aux.GamepadMapping)

	if len(aux.Components) == 0 {
		return nil
	}
	if err := json.Unmarshal(aux.Components, &l.Components); err != nil {
		return err
	}
	order, err := objectKeys(aux.Components)
	if err != nil {
		return err
	}
	l.ComponentOrder = order
	return nil
}

// ParseDocument decodes a raw registry document. Callers are expected to have
// schema-validated the bytes first; this only guards against malformed JSON.
func ParseDocument(raw []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode registry document: %w", err)
	}
	return &doc, nil
}

// objectKeys returns the top-level keys of a JSON object in declaration order.
func objectKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		keys = append(keys, tok.(string))
		if err := skipValue(dec); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// skipValue consumes one complete JSON value from the decoder.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || (d != '{' && d != '[') {
		return nil
	}
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}
