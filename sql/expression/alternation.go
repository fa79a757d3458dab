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

// AltOperator is the alternation combinator, `|` (or) or `&` (and).
type AltOperator string

const (
	AltOr  AltOperator = "|"
	AltAnd AltOperator = "&"
)

// ExprAlternationTree is `l | r` or `l & r`. It has no value of its own:
// Translate always denies (ok=false). Its Apply distributes the operator
// across both branches and combines the results with the alternation's own
// combinator (`or` for `|`, `and` for `&`).
type ExprAlternationTree struct {
	sql.Base
	Left  sql.Node
	Op    AltOperator
	Right sql.Node
}

func NewExprAlternationTree(loc sql.SourceLocation, left sql.Node, op AltOperator, right sql.Node) *ExprAlternationTree {
	return &ExprAlternationTree{Base: sql.Base{Element: "alternation tree", Loc: loc}, Left: left, Op: op, Right: right}
}

func (e *ExprAlternationTree) Children() []sql.Node { return []sql.Node{e.Left, e.Right} }

// Translate always denies: an alternation tree has no value by itself.
func (e *ExprAlternationTree) Translate(fs sql.FieldSpace, sink *sql.Sink) (sql.ExprValue, bool) {
	return sql.ExprValue{}, false
}

// Apply distributes: (other op l) <combinator> (other op r).
func (e *ExprAlternationTree) Apply(fs sql.FieldSpace, sink *sql.Sink, op sql.Operator, other sql.Node) sql.ExprValue {
	left := e.Left.Apply(fs, sink, op, other)
	right := e.Right.Apply(fs, sink, op, other)
	combinator := sql.Or
	if e.Op == AltAnd {
		combinator = sql.And
	}
	return sql.ApplyBinary(fs, sink, e, left, combinator, right)
}
