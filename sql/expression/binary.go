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

// BinaryNumeric is `l op r` for the arithmetic operators. Translation is
// implemented entirely via r.Apply(fs, sink, op, l) — the right-biased
// dispatch that lets Range, ExprAlternationTree and Pick override behavior
// when they appear as the right-hand operand.
type BinaryNumeric struct {
	sql.Base
	Left  sql.Node
	Op    sql.Operator
	Right sql.Node
}

func NewBinaryNumeric(loc sql.SourceLocation, left sql.Node, op sql.Operator, right sql.Node) *BinaryNumeric {
	return &BinaryNumeric{Base: sql.Base{Element: "arithmetic expression", Loc: loc}, Left: left, Op: op, Right: right}
}

func (e *BinaryNumeric) Children() []sql.Node { return []sql.Node{e.Left, e.Right} }

func (e *BinaryNumeric) Translate(fs sql.FieldSpace, sink *sql.Sink) (sql.ExprValue, bool) {
	return e.Right.Apply(fs, sink, e.Op, e.Left), true
}

func (e *BinaryNumeric) Apply(fs sql.FieldSpace, sink *sql.Sink, op sql.Operator, left sql.Node) sql.ExprValue {
	return sql.DefaultApply(fs, sink, left, op, e)
}

// BinaryBoolean is `l op r` for comparisons, `and`/`or`, and the regex-match
// operators — every binary form that is not arithmetic. Dispatch is the
// same right-biased pattern as BinaryNumeric.
type BinaryBoolean struct {
	sql.Base
	Left  sql.Node
	Op    sql.Operator
	Right sql.Node
}

func NewBinaryBoolean(loc sql.SourceLocation, left sql.Node, op sql.Operator, right sql.Node) *BinaryBoolean {
	return &BinaryBoolean{Base: sql.Base{Element: "boolean expression", Loc: loc}, Left: left, Op: op, Right: right}
}

func (e *BinaryBoolean) Children() []sql.Node { return []sql.Node{e.Left, e.Right} }

func (e *BinaryBoolean) Translate(fs sql.FieldSpace, sink *sql.Sink) (sql.ExprValue, bool) {
	return e.Right.Apply(fs, sink, e.Op, e.Left), true
}

func (e *BinaryBoolean) Apply(fs sql.FieldSpace, sink *sql.Sink, op sql.Operator, left sql.Node) sql.ExprValue {
	return sql.DefaultApply(fs, sink, left, op, e)
}
