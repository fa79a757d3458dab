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

package expression

import "github.com/dolthub/malloy-core/sql"

// ExprField resolves a dotted field name against a FieldSpace.
type ExprField struct {
	sql.Base
	Name string
}

// NewExprField builds a field reference to name at loc.
func NewExprField(loc sql.SourceLocation, name string) *ExprField {
	return &ExprField{Base: sql.Base{Element: "field reference", Loc: loc}, Name: name}
}

func (e *ExprField) Translate(fs sql.FieldSpace, sink *sql.Sink) (sql.ExprValue, bool) {
	entry, ok := fs.Field(e.Name)
	if !ok {
		sink.Log(e.Loc, sql.ErrUndefinedField.New(sql.FirstMissingSegment(fs, e.Name)).Error())
		return sql.ErrorFor("undefined field"), true
	}
	dataType, aggregate := entry.Type()
	return sql.ExprValue{
		DataType:  dataType,
		Aggregate: aggregate,
		Value:     sql.FragmentSeq{sql.FieldFragment{Path: e.Name}},
	}, true
}

func (e *ExprField) Apply(fs sql.FieldSpace, sink *sql.Sink, op sql.Operator, left sql.Node) sql.ExprValue {
	return sql.DefaultApply(fs, sink, left, op, e)
}
