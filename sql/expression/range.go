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

// Range is `first to last`. It has no value by itself; Apply implements the
// deliberately asymmetric comparison rules described in spec.md §4.E: `x >
// A to B` means "past the whole range", not "greater than the low end".
type Range struct {
	sql.Base
	First sql.Node
	Last  sql.Node
}

func NewRange(loc sql.SourceLocation, first, last sql.Node) *Range {
	return &Range{Base: sql.Base{Element: "range expression", Loc: loc}, First: first, Last: last}
}

func (r *Range) Children() []sql.Node { return []sql.Node{r.First, r.Last} }

func (r *Range) Translate(fs sql.FieldSpace, sink *sql.Sink) (sql.ExprValue, bool) {
	return sql.ExprValue{}, false
}

// Apply implements, for `other` as the left-hand operand:
//
//	=  -> other >= first AND other < last
//	!= -> other < first  OR  other >= last
//	>  -> other >= last
//	>= -> other >= first
//	<  -> other < first
//	<= -> other < last
func (r *Range) Apply(fs sql.FieldSpace, sink *sql.Sink, op sql.Operator, other sql.Node) sql.ExprValue {
	switch op {
	case sql.Eq:
		otherGteFirst := r.First.Apply(fs, sink, sql.Gte, other)
		otherLtLast := r.Last.Apply(fs, sink, sql.Lt, other)
		return sql.ApplyBinary(fs, sink, r, otherGteFirst, sql.And, otherLtLast)
	case sql.Neq:
		otherLtFirst := r.First.Apply(fs, sink, sql.Lt, other)
		otherGteLast := r.Last.Apply(fs, sink, sql.Gte, other)
		return sql.ApplyBinary(fs, sink, r, otherLtFirst, sql.Or, otherGteLast)
	case sql.Gt:
		return r.Last.Apply(fs, sink, sql.Gte, other)
	case sql.Gte:
		return r.First.Apply(fs, sink, sql.Gte, other)
	case sql.Lt:
		return r.First.Apply(fs, sink, sql.Lt, other)
	case sql.Lte:
		return r.Last.Apply(fs, sink, sql.Lt, other)
	default:
		sql.PanicUnreachable("sql/expression: Range.Apply: unreachable operator")
		panic("unreachable")
	}
}
