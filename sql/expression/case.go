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

// CaseBranch is one `WHEN cond THEN then` arm of an ExprCase.
type CaseBranch struct {
	Cond sql.Node
	Then sql.Node
}

// ExprCase is standard SQL CASE WHEN ... THEN ... ELSE ... END. The result
// type is the first non-null THEN/ELSE branch; every other non-null branch
// must agree with it.
type ExprCase struct {
	sql.Base
	Whens []CaseBranch
	Else  sql.Node // nil when absent
}

func NewExprCase(loc sql.SourceLocation, whens []CaseBranch, elseNode sql.Node) *ExprCase {
	return &ExprCase{Base: sql.Base{Element: "case expression", Loc: loc}, Whens: whens, Else: elseNode}
}

func (e *ExprCase) Children() []sql.Node {
	children := make([]sql.Node, 0, len(e.Whens)*2+1)
	for _, w := range e.Whens {
		children = append(children, w.Cond, w.Then)
	}
	if e.Else != nil {
		children = append(children, e.Else)
	}
	return children
}

func (e *ExprCase) Translate(fs sql.FieldSpace, sink *sql.Sink) (sql.ExprValue, bool) {
	type branchValue struct {
		cond *sql.ExprValue // nil for the else branch
		then sql.ExprValue
	}

	values := make([]branchValue, 0, len(e.Whens)+1)
	anyError := false
	aggregate := false

	for _, w := range e.Whens {
		cond, ok := w.Cond.Translate(fs, sink)
		if !ok {
			sink.Log(w.Cond.Location(), sql.ErrPartialExpressionAsValue.New(w.Cond.ElementType()).Error())
			anyError = true
		} else if !sql.TypeCheck(e, sink, cond, sql.BooleanShapes) {
			anyError = true
		}
		then, ok := w.Then.Translate(fs, sink)
		if !ok {
			sink.Log(w.Then.Location(), sql.ErrPartialExpressionAsValue.New(w.Then.ElementType()).Error())
			anyError = true
		}
		if cond.IsError() || then.IsError() {
			anyError = true
		}
		aggregate = aggregate || cond.Aggregate || then.Aggregate
		values = append(values, branchValue{cond: &cond, then: then})
	}

	var elseValue sql.ExprValue
	if e.Else != nil {
		v, ok := e.Else.Translate(fs, sink)
		if !ok {
			sink.Log(e.Else.Location(), sql.ErrPartialExpressionAsValue.New(e.Else.ElementType()).Error())
			anyError = true
		}
		if v.IsError() {
			anyError = true
		}
		aggregate = aggregate || v.Aggregate
		elseValue = v
		values = append(values, branchValue{cond: nil, then: v})
	}

	if anyError {
		return sql.ErrorFor("case branch translation failed"), true
	}

	resultType := sql.DataType("")
	for _, v := range values {
		if v.then.DataType == sql.Null {
			continue
		}
		if resultType == "" {
			resultType = v.then.DataType
			continue
		}
		if v.then.DataType != resultType {
			sink.Log(e.Loc, sql.ErrBranchTypeMismatch.New("case").Error())
			return sql.ErrorFor("mismatched case clause types"), true
		}
	}
	if resultType == "" {
		sink.Log(e.Loc, sql.ErrUntypable.New().Error())
		return sql.ErrorFor("case statement type not computable"), true
	}

	seq := sql.Text("CASE")
	for _, w := range e.Whens {
		cond, _ := w.Cond.Translate(fs, sink)
		then, _ := w.Then.Translate(fs, sink)
		seq = sql.Join(seq, sql.Text(" WHEN "), cond.Value, sql.Text(" THEN "), then.Value)
	}
	if e.Else != nil {
		seq = sql.Join(seq, sql.Text(" ELSE "), elseValue.Value)
	}
	seq = sql.Join(seq, sql.Text(" END"))

	return sql.ExprValue{DataType: resultType, Aggregate: aggregate, Value: seq}, true
}

func (e *ExprCase) Apply(fs sql.FieldSpace, sink *sql.Sink, op sql.Operator, left sql.Node) sql.ExprValue {
	return sql.DefaultApply(fs, sink, left, op, e)
}
