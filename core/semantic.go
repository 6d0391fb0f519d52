// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"encoding/json"
)

// Recognized SemanticMetadata field names, in schema order.
const (
	FieldKeywords             = "keywords"
	FieldCapabilities         = "capabilities"
	FieldSideEffects          = "side_effects"
	FieldInputs               = "inputs"
	FieldOutputs              = "outputs"
	FieldRisks                = "risks"
	FieldPatterns             = "patterns"
	FieldDataEntities         = "data_entities"
	FieldExternalDependencies = "external_dependencies"
)

// SemanticFields lists every recognized field in schema order.
var SemanticFields = []string{
	FieldKeywords,
	FieldCapabilities,
	FieldSideEffects,
	FieldInputs,
	FieldOutputs,
	FieldRisks,
	FieldPatterns,
	FieldDataEntities,
	FieldExternalDependencies,
}

// SemanticMetadata is the structured description of a file or task produced
// by the extraction model. Every field may be absent; absent fields read as
// empty lists. Unrecognized fields are kept in Extra and written back out
// unchanged.
type SemanticMetadata struct {
	Keywords             []string
	Capabilities         []string
	SideEffects          []string
	Inputs               []string
	Outputs              []string
	Risks                []string
	Patterns             []string
	DataEntities         []string
	ExternalDependencies []string

	Extra map[string]json.RawMessage
}

// Fallback returns the canonical degraded object: an empty keyword list and
// nothing else.
func Fallback() SemanticMetadata {
	return SemanticMetadata{Keywords: []string{}}
}

// field returns a pointer to the list backing a recognized field name.
func (m *SemanticMetadata) field(name string) *[]string {
	switch name {
	case FieldKeywords:
		return &m.Keywords
	case FieldCapabilities:
		return &m.Capabilities
	case FieldSideEffects:
		return &m.SideEffects
	case FieldInputs:
		return &m.Inputs
	case FieldOutputs:
		return &m.Outputs
	case FieldRisks:
		return &m.Risks
	case FieldPatterns:
		return &m.Patterns
	case FieldDataEntities:
		return &m.DataEntities
	case FieldExternalDependencies:
		return &m.ExternalDependencies
	}
	return nil
}

// Signal returns the combined descriptive terms used for relevance scoring:
// keywords, capabilities, side effects, inputs, outputs, risks and patterns,
// in that order. Data entities and external dependencies are not part of it.
func (m *SemanticMetadata) Signal() []string {
	n := len(m.Keywords) + len(m.Capabilities) + len(m.SideEffects) +
		len(m.Inputs) + len(m.Outputs) + len(m.Risks) + len(m.Patterns)
	out := make([]string, 0, n)
	out = append(out, m.Keywords...)
	out = append(out, m.Capabilities...)
	out = append(out, m.SideEffects...)
	out = append(out, m.Inputs...)
	out = append(out, m.Outputs...)
	out = append(out, m.Risks...)
	out = append(out, m.Patterns...)
	return out
}

// IsEmpty reports whether no recognized field holds any entry.
func (m *SemanticMetadata) IsEmpty() bool {
	for _, name := range SemanticFields {
		if len(*m.field(name)) > 0 {
			return false
		}
	}
	return true
}

// UnmarshalJSON decodes a metadata object leniently. A recognized field that
// holds a bare string becomes a one-element list. Non-string list elements
// are dropped. Any other shape reads as an empty list.
func (m *SemanticMetadata) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = SemanticMetadata{}
	for key, value := range raw {
		dst := m.field(key)
		if dst == nil {
			if m.Extra == nil {
				m.Extra = make(map[string]json.RawMessage)
			}
			m.Extra[key] = value
			continue
		}
		*dst = decodeStringList(value)
	}
	return nil
}

// MarshalJSON writes all recognized fields as lists (empty when absent)
// merged with any preserved unrecognized fields.
func (m SemanticMetadata) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(SemanticFields)+len(m.Extra))
	for key, value := range m.Extra {
		out[key] = value
	}
	for _, name := range SemanticFields {
		list := *m.field(name)
		if list == nil {
			list = []string{}
		}
		out[name] = list
	}
	return json.Marshal(out)
}

func decodeStringList(value json.RawMessage) []string {
	var list []any
	if err := json.Unmarshal(value, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	var single string
	if err := json.Unmarshal(value, &single); err == nil {
		return []string{single}
	}
	return []string{}
}
