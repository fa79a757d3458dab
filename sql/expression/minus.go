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

// ExprMinus is unary negation. A multi-fragment inner sequence is
// parenthesized before the minus sign so the emitted SQL never depends on
// the operator precedence of whatever the downstream writer renders it into.
type ExprMinus struct {
	sql.Base
	Inner sql.Node
}

func NewExprMinus(loc sql.SourceLocation, inner sql.Node) *ExprMinus {
	return &ExprMinus{
		Base:  sql.Base{Element: "unary minus", Loc: loc, LegalChildTypes: sql.NumericShapes},
		Inner: inner,
	}
}

func (e *ExprMinus) Children() []sql.Node { return []sql.Node{e.Inner} }

func (e *ExprMinus) Translate(fs sql.FieldSpace, sink *sql.Sink) (sql.ExprValue, bool) {
	v, ok := e.Inner.Translate(fs, sink)
	if !ok {
		sink.Log(e.Inner.Location(), sql.ErrPartialExpressionAsValue.New(e.Inner.ElementType()).Error())
		return sql.ErrorFor("partial expression used as value"), true
	}
	if !sql.TypeCheck(e, sink, v, sql.NumericShapes) {
		return sql.ErrorFor("unary minus operand not numeric"), true
	}
	var text sql.FragmentSeq
	if len(v.Value) > 1 {
		text = sql.Join(sql.Text("-("), v.Value, sql.Text(")"))
	} else {
		text = sql.Join(sql.Text("-"), v.Value)
	}
	return sql.ExprValue{DataType: sql.Number, Aggregate: v.Aggregate, Value: text}, true
}

func (e *ExprMinus) Apply(fs sql.FieldSpace, sink *sql.Sink, op sql.Operator, left sql.Node) sql.ExprValue {
	return sql.DefaultApply(fs, sink, left, op, e)
}
