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

// ExprParens is a parenthesized sub-expression. It is transparent: both
// Translate and Apply simply forward to the wrapped node, wrapping only the
// emitted fragment sequence in literal parens.
type ExprParens struct {
	sql.Base
	Inner sql.Node
}

func NewExprParens(loc sql.SourceLocation, inner sql.Node) *ExprParens {
	return &ExprParens{Base: sql.Base{Element: "parenthesized expression", Loc: loc}, Inner: inner}
}

func (e *ExprParens) Children() []sql.Node { return []sql.Node{e.Inner} }

func (e *ExprParens) Translate(fs sql.FieldSpace, sink *sql.Sink) (sql.ExprValue, bool) {
	v, ok := e.Inner.Translate(fs, sink)
	if !ok {
		return v, false
	}
	if v.IsError() {
		return v, true
	}
	return sql.ExprValue{
		DataType:  v.DataType,
		Aggregate: v.Aggregate,
		Timeframe: v.Timeframe,
		Value:     sql.Join(sql.Text("("), v.Value, sql.Text(")")),
	}, true
}

// Apply is transparent: parens delegate apply to the wrapped node, per
// spec.md's "apply and requestTranslation are transparent" rule, so that
// `(a | b) = x` still distributes through the alternation tree inside.
func (e *ExprParens) Apply(fs sql.FieldSpace, sink *sql.Sink, op sql.Operator, left sql.Node) sql.ExprValue {
	return e.Inner.Apply(fs, sink, op, left)
}
