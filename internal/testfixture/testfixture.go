// Copyright 2020-2021 Dolthub, Inc.
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

// Package testfixture builds sql.FieldSpace implementations from small YAML
// documents, for table-driven tests across sql/expression and compiler. It
// is not exported outside the module: production code never depends on a
// fixture-backed FieldSpace.
package testfixture

import (
	"fmt"

	"gopkg.in/yaml.v2"

	"github.com/dolthub/malloy-core/sql"
)

// FilterDef is one filter condition attached to a fixture field, expressed
// as raw SQL text rather than a parsed AST (the fixtures exist to exercise
// the compiler, not a parser).
type FilterDef struct {
	Text      string `yaml:"text"`
	Aggregate bool   `yaml:"aggregate"`
}

// FieldDef describes one field in a fixture FieldSpace document.
type FieldDef struct {
	Name      string      `yaml:"name"`
	DataType  string      `yaml:"dataType"`
	Aggregate bool        `yaml:"aggregate"`
	Struct    bool        `yaml:"struct"`
	Filters   []FilterDef `yaml:"filters"`
}

type document struct {
	Fields []FieldDef `yaml:"fields"`
}

// FieldSpace is a static, in-memory sql.FieldSpace built from FieldDefs.
type FieldSpace struct {
	fields map[string]*fieldEntry
}

type fieldEntry struct {
	dataType  sql.DataType
	aggregate bool
	isStruct  bool
	filters   []sql.FilterCond
}

func (e *fieldEntry) Type() (sql.DataType, bool) { return e.dataType, e.aggregate }

func (e *fieldEntry) FilterList() ([]sql.FilterCond, bool) {
	if len(e.filters) == 0 {
		return nil, false
	}
	return e.filters, true
}

// IsStruct satisfies aggregation's optional structEntry capability.
func (e *fieldEntry) IsStruct() bool { return e.isStruct }

// Field implements sql.FieldSpace.
func (fs *FieldSpace) Field(name string) (sql.FieldEntry, bool) {
	e, ok := fs.fields[name]
	if !ok {
		return nil, false
	}
	return e, true
}

// New builds a FieldSpace directly from FieldDefs, for tests that would
// rather not round-trip through YAML.
func New(defs ...FieldDef) (*FieldSpace, error) {
	fs := &FieldSpace{fields: make(map[string]*fieldEntry, len(defs))}
	for _, d := range defs {
		entry, err := toEntry(d)
		if err != nil {
			return nil, err
		}
		fs.fields[d.Name] = entry
	}
	return fs, nil
}

// Load parses a YAML fixture document of the form:
//
//	fields:
//	  - name: orders.amount
//	    dataType: number
//	  - name: orders.total
//	    dataType: number
//	    aggregate: true
func Load(data []byte) (*FieldSpace, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("testfixture: %w", err)
	}
	return New(doc.Fields...)
}

func toEntry(d FieldDef) (*fieldEntry, error) {
	dt := sql.DataType(d.DataType)
	switch dt {
	case sql.String, sql.Number, sql.Boolean, sql.Date, sql.Timestamp, sql.Null, sql.RegExp, sql.ErrorType, "":
	default:
		return nil, fmt.Errorf("testfixture: field %q: unknown dataType %q", d.Name, d.DataType)
	}
	filters := make([]sql.FilterCond, 0, len(d.Filters))
	for _, f := range d.Filters {
		filters = append(filters, sql.FilterCond{Value: sql.Text(f.Text), Aggregate: f.Aggregate})
	}
	return &fieldEntry{dataType: dt, aggregate: d.Aggregate, isStruct: d.Struct, filters: filters}, nil
}
