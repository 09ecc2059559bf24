package grid

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Well-known metadata keys, following the LHAPDF .info vocabulary so grid
// files converted from that format keep their header verbatim.
const (
	KeySetDesc       = "SetDesc"
	KeySetIndex      = "SetIndex"
	KeyNumMembers    = "NumMembers"
	KeyXMin          = "XMin"
	KeyXMax          = "XMax"
	KeyQMin          = "QMin"
	KeyQMax          = "QMax"
	KeyFlavors       = "Flavors"
	KeyFormat        = "Format"
	KeyFlavorScheme  = "FlavorScheme"
	KeyOrderQCD      = "OrderQCD"
	KeyErrorType     = "ErrorType"
	KeyAlphasQs      = "AlphaS_Qs"
	KeyAlphasVals    = "AlphaS_Vals"
	KeyAlphasOrder   = "AlphaS_OrderQCD"
	KeyAlphasType    = "AlphaS_Type"
	KeyParticle      = "Particle"
	KeyPolarized     = "Polarized"
	KeySetType       = "SetType"
	KeyInterpolator  = "InterpolatorType"
	KeyNumFlavors    = "NumFlavors"
	KeyGitVersion    = "GitVersion"
	KeyCodeVersion   = "CodeVersion"
	KeyMW            = "MW"
	KeyMZ            = "MZ"
	KeyMUp           = "MUp"
	KeyMDown         = "MDown"
	KeyMStrange      = "MStrange"
	KeyMCharm        = "MCharm"
	KeyMBottom       = "MBottom"
	KeyMTop          = "MTop"
)

// Metadata is the ordered string key/value header of a grid set.
//
// The schema is open: setting an unknown key inserts it. Keys keep their
// insertion order so encode/decode round-trips are byte-stable.
//
// Metadata attached to a decoded GridSet follows the set's immutability
// contract; mutate only copies obtained via Clone.
type Metadata struct {
	keys   []string
	values map[string]string
}

// NewMetadata creates an empty metadata table.
func NewMetadata() *Metadata {
	return &Metadata{values: make(map[string]string)}
}

// Len returns the number of entries.
func (m *Metadata) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (m *Metadata) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)

	return out
}

// Get returns the value for key and whether it is present.
func (m *Metadata) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// GetDefault returns the value for key, or def when absent.
func (m *Metadata) GetDefault(key, def string) string {
	if v, ok := m.values[key]; ok {
		return v
	}

	return def
}

// Set inserts or replaces the value for key. Unknown keys insert; the schema
// is open by design.
func (m *Metadata) Set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Int returns the value for key parsed as an integer.
func (m *Metadata) Int(key string) (int64, bool) {
	v, ok := m.values[key]
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, false
	}

	return n, true
}

// Float returns the value for key parsed as a float.
func (m *Metadata) Float(key string) (float64, bool) {
	v, ok := m.values[key]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}

	return f, true
}

// Ints returns the value for key parsed as a list of integers. List values
// are stored in YAML flow style, e.g. "[21, 1, -1]".
func (m *Metadata) Ints(key string) ([]int64, bool) {
	fields, ok := m.listFields(key)
	if !ok {
		return nil, false
	}
	out := make([]int64, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, false
		}
		out = append(out, n)
	}

	return out, true
}

// Floats returns the value for key parsed as a list of floats.
func (m *Metadata) Floats(key string) ([]float64, bool) {
	fields, ok := m.listFields(key)
	if !ok {
		return nil, false
	}
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false
		}
		out = append(out, v)
	}

	return out, true
}

func (m *Metadata) listFields(key string) ([]string, bool) {
	v, ok := m.values[key]
	if !ok {
		return nil, false
	}
	fields := strings.FieldsFunc(v, func(r rune) bool {
		return r == '[' || r == ']' || r == ',' || r == ' ' || r == '\t'
	})

	return fields, true
}

// SetInts stores a list of integers in YAML flow style.
func (m *Metadata) SetInts(key string, values []int64) {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatInt(v, 10)
	}
	m.Set(key, "["+strings.Join(parts, ", ")+"]")
}

// SetFloats stores a list of floats in YAML flow style.
func (m *Metadata) SetFloats(key string, values []float64) {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	m.Set(key, "["+strings.Join(parts, ", ")+"]")
}

// Clone returns a deep copy of the metadata table.
func (m *Metadata) Clone() *Metadata {
	out := &Metadata{
		keys:   make([]string, len(m.keys)),
		values: make(map[string]string, len(m.values)),
	}
	copy(out.keys, m.keys)
	for k, v := range m.values {
		out.values[k] = v
	}

	return out
}

// ParseInfoYAML parses an LHAPDF-style .info YAML mapping into a Metadata
// table, preserving key order. Scalar values keep their literal text;
// sequence values are rendered in flow style so Ints/Floats can read them
// back.
func ParseInfoYAML(data []byte) (*Metadata, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing info YAML: %w", err)
	}

	meta := NewMetadata()
	if root.Kind == 0 || len(root.Content) == 0 {
		return meta, nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing info YAML: top level is not a mapping")
	}

	for i := 0; i+1 < len(doc.Content); i += 2 {
		key := doc.Content[i]
		val := doc.Content[i+1]
		rendered, err := renderInfoValue(val)
		if err != nil {
			return nil, fmt.Errorf("parsing info YAML key %q: %w", key.Value, err)
		}
		meta.Set(key.Value, rendered)
	}

	return meta, nil
}

func renderInfoValue(node *yaml.Node) (string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Value, nil
	case yaml.SequenceNode:
		parts := make([]string, 0, len(node.Content))
		for _, child := range node.Content {
			if child.Kind != yaml.ScalarNode {
				return "", fmt.Errorf("nested non-scalar sequence element")
			}
			parts = append(parts, child.Value)
		}

		return "[" + strings.Join(parts, ", ") + "]", nil
	default:
		return "", fmt.Errorf("unsupported node kind %d", node.Kind)
	}
}

// InfoYAML renders the metadata table as an LHAPDF-style .info YAML mapping
// in key order. List values stored in flow style are emitted as sequences.
func (m *Metadata) InfoYAML() ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range m.keys {
		val := m.values[key]
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}
		valNode := infoValueNode(val)
		doc.Content = append(doc.Content, keyNode, valNode)
	}

	return yaml.Marshal(doc)
}

func infoValueNode(val string) *yaml.Node {
	trimmed := strings.TrimSpace(val)
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		inner := strings.TrimSuffix(strings.TrimPrefix(trimmed, "["), "]")
		for _, part := range strings.Split(inner, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: part})
		}

		return seq
	}

	return &yaml.Node{Kind: yaml.ScalarNode, Value: val}
}
