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

// ExprNot is boolean negation. It is the only node that null-propagates
// (spec.md §9, Open Question (b)) — other boolean combinators must not be
// given this treatment.
type ExprNot struct {
	sql.Base
	Inner sql.Node
}

func NewExprNot(loc sql.SourceLocation, inner sql.Node) *ExprNot {
	return &ExprNot{
		Base:  sql.Base{Element: "not expression", Loc: loc, LegalChildTypes: append(sql.BooleanShapes, sql.Shape(sql.Null))},
		Inner: inner,
	}
}

func (e *ExprNot) Children() []sql.Node { return []sql.Node{e.Inner} }

func (e *ExprNot) Translate(fs sql.FieldSpace, sink *sql.Sink) (sql.ExprValue, bool) {
	v, ok := e.Inner.Translate(fs, sink)
	if !ok {
		sink.Log(e.Inner.Location(), sql.ErrPartialExpressionAsValue.New(e.Inner.ElementType()).Error())
		return sql.ErrorFor("partial expression used as value"), true
	}
	if !sql.TypeCheck(e, sink, v, e.Base.LegalChildTypes) {
		return sql.ErrorFor("not operand not boolean"), true
	}
	return sql.ExprValue{
		DataType:  sql.Boolean,
		Aggregate: v.Aggregate,
		Value:     sql.NullsafeNot(v.Value),
	}, true
}

func (e *ExprNot) Apply(fs sql.FieldSpace, sink *sql.Sink, op sql.Operator, left sql.Node) sql.ExprValue {
	return sql.DefaultApply(fs, sink, left, op, e)
}
