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

// ExprFilter applies a list of boolean conditions to an inner expression.
// Over a non-aggregate inner expression, filtering is a no-op (the filter
// only has meaning where the inner value is computed across a GROUP BY);
// over an aggregate it wraps the inner expression in a filterExpression
// fragment for the downstream writer to lower into a dialect-specific
// FILTER clause or CASE-guarded aggregate.
type ExprFilter struct {
	sql.Base
	Inner      sql.Node
	Conditions []sql.Node
}

func NewExprFilter(loc sql.SourceLocation, inner sql.Node, conditions []sql.Node) *ExprFilter {
	return &ExprFilter{Base: sql.Base{Element: "filter expression", Loc: loc}, Inner: inner, Conditions: conditions}
}

func (e *ExprFilter) Children() []sql.Node {
	return append([]sql.Node{e.Inner}, e.Conditions...)
}

func (e *ExprFilter) Translate(fs sql.FieldSpace, sink *sql.Sink) (sql.ExprValue, bool) {
	inner, ok := e.Inner.Translate(fs, sink)
	if !ok {
		sink.Log(e.Inner.Location(), sql.ErrPartialExpressionAsValue.New(e.Inner.ElementType()).Error())
		return sql.ErrorFor("partial expression used as value"), true
	}
	if inner.IsError() {
		return inner, true
	}

	conds := make([]sql.FilterCond, 0, len(e.Conditions))
	anyError := false
	for _, c := range e.Conditions {
		v, ok := c.Translate(fs, sink)
		if !ok {
			sink.Log(c.Location(), sql.ErrPartialExpressionAsValue.New(c.ElementType()).Error())
			anyError = true
			continue
		}
		if v.IsError() {
			anyError = true
			continue
		}
		if v.Aggregate {
			sink.Log(c.Location(), sql.ErrAggregateFilterMisuse.New().Error())
			anyError = true
			continue
		}
		conds = append(conds, sql.FilterCond{Value: v.Value, Aggregate: v.Aggregate})
	}
	if anyError {
		return sql.ErrorFor("filter condition invalid"), true
	}

	if !inner.Aggregate {
		return inner, true
	}

	return sql.ExprValue{
		DataType:  inner.DataType,
		Aggregate: true,
		Timeframe: inner.Timeframe,
		Value:     sql.FragmentSeq{sql.FilterExpressionFragment{E: inner.Value, FilterList: conds}},
	}, true
}

func (e *ExprFilter) Apply(fs sql.FieldSpace, sink *sql.Sink, op sql.Operator, left sql.Node) sql.ExprValue {
	return sql.DefaultApply(fs, sink, left, op, e)
}
