// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"encoding/json"
	"fmt"
)

// Style is a cell style descriptor. It is either a reference into the
// workbook's shared style table (Ref) or an inline property tree (Props).
type Style struct {
	Ref   string
	Props map[string]any
}

// StyleRef returns a style referencing the shared style table.
func StyleRef(ref string) *Style { return &Style{Ref: ref} }

// StyleProps returns an inline style.
func StyleProps(props map[string]any) *Style { return &Style{Props: props} }

// IsRef reports whether the style points into the shared style table.
func (s *Style) IsRef() bool { return s != nil && s.Ref != "" }

func (s *Style) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	if s.Ref != "" {
		return json.Marshal(s.Ref)
	}
	if s.Props == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.Props)
}

func (s *Style) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case string:
		*s = Style{Ref: t}
	case map[string]any:
		*s = Style{Props: t}
	default:
		return fmt.Errorf("unsupported style payload: %T", raw)
	}
	return nil
}

func (s *Style) MarshalYAML() (interface{}, error) {
	if s == nil {
		return nil, nil
	}
	if s.Ref != "" {
		return s.Ref, nil
	}
	return s.Props, nil
}
