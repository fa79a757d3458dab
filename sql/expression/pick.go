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

// PickWhen is one `when ... pick ...` arm of a Pick. Pick is nil when the
// arm omits its then-branch, which is only legal in apply mode (where the
// then-branch defaults to the left-hand operand).
type PickWhen struct {
	When sql.Node
	Pick sql.Node
}

// Pick is Malloy's `pick ... when ... else ...` construct. It is two-modal:
// value mode requires an else and every when to be a full boolean value
// (lowers directly to CASE WHEN ... THEN ... ELSE ... END); apply mode
// compares each when against the left-hand operand of an enclosing apply.
type Pick struct {
	sql.Base
	Choices []PickWhen
	Else    sql.Node // nil when absent
}

func NewPick(loc sql.SourceLocation, choices []PickWhen, elseNode sql.Node) *Pick {
	return &Pick{Base: sql.Base{Element: "pick expression", Loc: loc}, Choices: choices, Else: elseNode}
}

func (p *Pick) Children() []sql.Node {
	children := make([]sql.Node, 0, len(p.Choices)*2+1)
	for _, c := range p.Choices {
		children = append(children, c.When)
		if c.Pick != nil {
			children = append(children, c.Pick)
		}
	}
	if p.Else != nil {
		children = append(children, p.Else)
	}
	return children
}

// Translate implements value mode. It denies (returns ok=false) whenever
// the pick cannot self-evaluate: missing else, a choice with no explicit
// then-branch, or a when that is itself partial.
func (p *Pick) Translate(fs sql.FieldSpace, sink *sql.Sink) (sql.ExprValue, bool) {
	if p.Else == nil {
		return sql.ExprValue{}, false
	}

	whenVals := make([]sql.ExprValue, len(p.Choices))
	thenVals := make([]sql.ExprValue, len(p.Choices))
	for i, c := range p.Choices {
		if c.Pick == nil {
			return sql.ExprValue{}, false
		}
		whenVal, ok := c.When.Translate(fs, sink)
		if !ok {
			return sql.ExprValue{}, false
		}
		whenVals[i] = whenVal
		thenVal, ok := c.Pick.Translate(fs, sink)
		if !ok {
			sink.Log(c.Pick.Location(), sql.ErrPartialExpressionAsValue.New(c.Pick.ElementType()).Error())
			thenVal = sql.ErrorFor("partial then-branch")
		}
		thenVals[i] = thenVal
	}

	elseVal, ok := p.Else.Translate(fs, sink)
	if !ok {
		sink.Log(p.Else.Location(), sql.ErrPartialExpressionAsValue.New(p.Else.ElementType()).Error())
		elseVal = sql.ErrorFor("partial else-branch")
	}

	anyError := elseVal.IsError()
	for i := range p.Choices {
		if !sql.TypeCheck(p, sink, whenVals[i], sql.BooleanShapes) {
			anyError = true
		}
		if thenVals[i].IsError() {
			anyError = true
		}
	}
	if anyError {
		return sql.ErrorFor("pick branch translation failed"), true
	}

	resultType, aggregate, ok := pickResultType(p, sink, append(append([]sql.ExprValue{}, thenVals...), elseVal))
	if !ok {
		return sql.ErrorFor("mismatched pick clause types"), true
	}
	for _, w := range whenVals {
		aggregate = aggregate || w.Aggregate
	}

	seq := sql.Text("CASE")
	for i := range p.Choices {
		seq = sql.Join(seq, sql.Text(" WHEN "), whenVals[i].Value, sql.Text(" THEN "), thenVals[i].Value)
	}
	seq = sql.Join(seq, sql.Text(" ELSE "), elseVal.Value, sql.Text(" END"))

	return sql.ExprValue{DataType: resultType, Aggregate: aggregate, Value: seq}, true
}

// Apply implements apply mode: each when is compared against other via
// `when.Apply(fs, sink, "=", other)`, and each pick (or other itself, when
// omitted) becomes the then-branch. The else defaults to other as well.
func (p *Pick) Apply(fs sql.FieldSpace, sink *sql.Sink, op sql.Operator, other sql.Node) sql.ExprValue {
	otherVal, ok := other.Translate(fs, sink)
	if !ok {
		sink.Log(other.Location(), sql.ErrPartialExpressionAsValue.New(other.ElementType()).Error())
		return sql.ErrorFor("partial expression used as value")
	}

	whenVals := make([]sql.ExprValue, len(p.Choices))
	thenVals := make([]sql.ExprValue, len(p.Choices))
	anyError := otherVal.IsError()
	for i, c := range p.Choices {
		whenVals[i] = c.When.Apply(fs, sink, sql.Eq, other)
		if whenVals[i].IsError() {
			anyError = true
		}
		if c.Pick != nil {
			thenVal, ok := c.Pick.Translate(fs, sink)
			if !ok {
				sink.Log(c.Pick.Location(), sql.ErrPartialExpressionAsValue.New(c.Pick.ElementType()).Error())
				thenVal = sql.ErrorFor("partial then-branch")
			}
			thenVals[i] = thenVal
		} else {
			thenVals[i] = otherVal
		}
		if thenVals[i].IsError() {
			anyError = true
		}
	}

	elseVal := otherVal
	if p.Else != nil {
		v, ok := p.Else.Translate(fs, sink)
		if !ok {
			sink.Log(p.Else.Location(), sql.ErrPartialExpressionAsValue.New(p.Else.ElementType()).Error())
			v = sql.ErrorFor("partial else-branch")
		}
		elseVal = v
	}
	if elseVal.IsError() {
		anyError = true
	}
	if anyError {
		return sql.ErrorFor("pick apply-mode translation failed")
	}

	resultType, aggregate, ok := pickResultType(p, sink, append(append([]sql.ExprValue{}, thenVals...), elseVal))
	if !ok {
		return sql.ErrorFor("mismatched pick clause types")
	}
	for _, w := range whenVals {
		aggregate = aggregate || w.Aggregate
	}

	seq := sql.Text("CASE")
	for i := range p.Choices {
		seq = sql.Join(seq, sql.Text(" WHEN "), whenVals[i].Value, sql.Text(" THEN "), thenVals[i].Value)
	}
	seq = sql.Join(seq, sql.Text(" ELSE "), elseVal.Value, sql.Text(" END"))

	return sql.ExprValue{DataType: resultType, Aggregate: aggregate, Value: seq}
}

// pickResultType finds the first non-null data type among values and
// verifies every other non-null value is loosely type-equal to it.
func pickResultType(p *Pick, sink *sql.Sink, values []sql.ExprValue) (sql.DataType, bool, bool) {
	resultType := sql.DataType("")
	aggregate := false
	for _, v := range values {
		aggregate = aggregate || v.Aggregate
		if v.DataType == sql.Null {
			continue
		}
		if resultType == "" {
			resultType = v.DataType
			continue
		}
		if v.DataType != resultType {
			sink.Log(p.Loc, sql.ErrBranchTypeMismatch.New("pick").Error())
			return "", aggregate, false
		}
	}
	if resultType == "" {
		sink.Log(p.Loc, sql.ErrUntypable.New().Error())
		return "", aggregate, false
	}
	return resultType, aggregate, true
}
