// Package schema provides the Model/Data field registry that kernel
// parameters are checked against.
//
// The registry maps canonical field names to their declared type text,
// exactly as the type would appear in a parameter annotation (for example
// "wp.array(dtype=wp.float32, ndim=2)"). Rule checks compare annotation
// renderings against these strings by exact equality.
package schema

import (
	_ "embed"
	"fmt"
	"maps"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed newton.yaml
var defaultYAML []byte

// Suffixes that distinguish the read-only input and write-only output
// variants of a Data field.
const (
	SuffixIn  = "_in"
	SuffixOut = "_out"
)

// Schema holds the field registry for the two schema entities. It is
// immutable after construction; a single Schema may be shared across
// goroutines.
type Schema struct {
	model map[string]string
	data  map[string]string

	// canonical data field names, sorted, for deterministic prefix scans
	dataNames []string
}

// file is the on-disk YAML layout.
type file struct {
	Model map[string]string `yaml:"model"`
	Data  map[string]string `yaml:"data"`
}

// New builds a Schema from explicit field tables. The maps are copied.
func New(model, data map[string]string) *Schema {
	s := &Schema{
		model: maps.Clone(model),
		data:  maps.Clone(data),
	}
	if s.model == nil {
		s.model = map[string]string{}
	}
	if s.data == nil {
		s.data = map[string]string{}
	}
	s.dataNames = make([]string, 0, len(s.data))
	for name := range s.data {
		s.dataNames = append(s.dataNames, name)
	}
	sort.Strings(s.dataNames)
	return s
}

// Parse decodes a YAML schema document. Both the model and data sections
// must be present and non-empty: an analyzer without field metadata cannot
// classify anything, so an incomplete schema is a configuration error.
func Parse(src []byte) (*Schema, error) {
	var f file
	if err := yaml.Unmarshal(src, &f); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	if len(f.Model) == 0 {
		return nil, fmt.Errorf("invalid schema: no model fields defined")
	}
	if len(f.Data) == 0 {
		return nil, fmt.Errorf("invalid schema: no data fields defined")
	}
	return New(f.Model, f.Data), nil
}

// Load reads a YAML schema file.
func Load(path string) (*Schema, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", path, err)
	}
	s, err := Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

var defaultSchema = sync.OnceValue(func() *Schema {
	s, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("schema: embedded default is invalid: %v", err))
	}
	return s
})

// Default returns the embedded field registry of the kernel library.
func Default() *Schema {
	return defaultSchema()
}

// ModelFields returns the canonical Model field table.
func (s *Schema) ModelFields() map[string]string {
	return maps.Clone(s.model)
}

// DataFields returns the canonical Data field table.
func (s *Schema) DataFields() map[string]string {
	return maps.Clone(s.data)
}

// ExpandedDataFields returns the Data field table with the _in and _out
// variants of every canonical field added, each mapped to the canonical
// field's type text.
func (s *Schema) ExpandedDataFields() map[string]string {
	out := make(map[string]string, 3*len(s.data))
	for name, typ := range s.data {
		out[name] = typ
		out[name+SuffixIn] = typ
		out[name+SuffixOut] = typ
	}
	return out
}

// ModelType returns the declared type text of a canonical Model field.
func (s *Schema) ModelType(name string) (string, bool) {
	t, ok := s.model[name]
	return t, ok
}

// DataType returns the declared type text of a canonical Data field.
func (s *Schema) DataType(name string) (string, bool) {
	t, ok := s.data[name]
	return t, ok
}

// IsModelField reports whether name is a canonical Model field.
func (s *Schema) IsModelField(name string) bool {
	_, ok := s.model[name]
	return ok
}

// IsDataField reports whether name is a canonical Data field.
func (s *Schema) IsDataField(name string) bool {
	_, ok := s.data[name]
	return ok
}

// DataPrefixMatch reports the canonical Data field f for which name begins
// with "f_", if any. The match is a plain prefix test, not an identifier
// boundary check; when several canonical fields match, the alphabetically
// first wins so that results are deterministic. Used by the loose-suffix
// heuristic.
func (s *Schema) DataPrefixMatch(name string) (string, bool) {
	for _, f := range s.dataNames {
		if strings.HasPrefix(name, f+"_") {
			return f, true
		}
	}
	return "", false
}

// Canonical strips one trailing _in or _out suffix from name. The second
// result reports the suffix removed, or "" when name carried neither.
func Canonical(name string) (string, string) {
	if base, ok := strings.CutSuffix(name, SuffixIn); ok {
		return base, SuffixIn
	}
	if base, ok := strings.CutSuffix(name, SuffixOut); ok {
		return base, SuffixOut
	}
	return name, ""
}
