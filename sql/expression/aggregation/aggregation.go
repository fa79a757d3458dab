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

// Package aggregation holds the concrete aggregate functions: count,
// count_distinct, sum, avg, min and max. They share one translation
// contract (AggregateFunction), parameterized per function by its legal
// child types, whether it requires a child at all, and how its result type
// is derived from the child's.
package aggregation

import (
	"fmt"

	"github.com/dolthub/malloy-core/sql"
)

// structEntry is an optional capability a FieldSpace's FieldEntry may
// implement to mark itself as a struct (a nested relation) rather than an
// atomic field. Resolving an aggregate's source to a struct is a
// diagnosable error (spec's Open Question (a)); FieldEntry implementations
// that never hold structs need not implement this.
type structEntry interface {
	IsStruct() bool
}

// AggregateFunction is the shared implementation behind count,
// count_distinct, sum, avg, min and max. Expr and Source are mutually
// exclusive in practice but both optional; Count is the only function that
// legally has neither (it aggregates `*`).
type AggregateFunction struct {
	sql.Base
	Function string
	Expr     sql.Node // optional explicit expression
	Source   string   // optional field path the aggregate is local to

	legalTypes    []sql.TypeShape
	requiresChild bool
	returns       func(childType sql.DataType) sql.DataType
	fieldPrefix   string // "total_"/"avg_" for sum/avg; "" otherwise
}

func (a *AggregateFunction) Children() []sql.Node {
	if a.Expr == nil {
		return nil
	}
	return []sql.Node{a.Expr}
}

// DefaultFieldName reports the default output column name sum/avg supply
// when computed against a named source with no explicit expression
// (spec.md §4.E's asymmetric-naming rule). ok is false for every other
// function, or whenever an explicit Expr was given instead of a Source.
func (a *AggregateFunction) DefaultFieldName() (name string, ok bool) {
	if a.fieldPrefix == "" || a.Source == "" || a.Expr != nil {
		return "", false
	}
	_, leaf := sql.SplitLeaf(a.Source)
	return a.fieldPrefix + leaf, true
}

func (a *AggregateFunction) resolveChild(fs sql.FieldSpace, sink *sql.Sink) (value sql.ExprValue, structPath string, ok bool) {
	if a.Expr != nil {
		v, translated := a.Expr.Translate(fs, sink)
		if !translated {
			sink.Log(a.Expr.Location(), sql.ErrPartialExpressionAsValue.New(a.Expr.ElementType()).Error())
			return sql.ErrorFor("partial expression used as value"), "", false
		}
		return v, "", true
	}

	if a.Source != "" {
		entry, found := fs.Field(a.Source)
		if !found {
			sink.Log(a.Loc, sql.ErrUndefinedField.New(sql.FirstMissingSegment(fs, a.Source)).Error())
			return sql.ErrorFor("undefined aggregate source"), "", false
		}
		if se, implements := entry.(structEntry); implements && se.IsStruct() {
			sink.Log(a.Loc, sql.ErrAggregateMisuse.New(
				fmt.Sprintf("'%s' is a struct and cannot be used as an aggregate source", a.Source)).Error())
			sink.WarnAggregateSourceIsStruct(a.Loc, a.Source)
			return sql.ErrorFor("aggregate source is a struct"), "", false
		}
		dataType, aggregate := entry.Type()
		prefix, leaf := sql.SplitLeaf(a.Source)
		return sql.ExprValue{
			DataType:  dataType,
			Aggregate: aggregate,
			Value:     sql.FragmentSeq{sql.FieldFragment{Path: leaf}},
		}, prefix, true
	}

	if a.requiresChild {
		sink.Log(a.Loc, sql.ErrMissingAggregateExpression.New().Error())
		return sql.ErrorFor("missing aggregate expression"), "", false
	}

	return sql.ExprValue{DataType: sql.Number, Value: sql.FragmentSeq{sql.TextFragment{Text: "*"}}}, "", true
}

func (a *AggregateFunction) Translate(fs sql.FieldSpace, sink *sql.Sink) (sql.ExprValue, bool) {
	child, structPath, ok := a.resolveChild(fs, sink)
	if !ok {
		return sql.ErrorFor("aggregate child unresolved"), true
	}
	if child.IsError() {
		return child, true
	}

	if len(a.legalTypes) > 0 && !sql.TypeCheck(a, sink, child, a.legalTypes) {
		return sql.ErrorFor("aggregate child wrong type"), true
	}

	fragment := sql.AggregateFragment{Function: a.Function, E: child.Value, StructPath: structPath}
	resultType := child.DataType
	if a.returns != nil {
		resultType = a.returns(child.DataType)
	}

	return sql.ExprValue{DataType: resultType, Aggregate: true, Value: sql.FragmentSeq{fragment}}, true
}

func (a *AggregateFunction) Apply(fs sql.FieldSpace, sink *sql.Sink, op sql.Operator, left sql.Node) sql.ExprValue {
	return sql.DefaultApply(fs, sink, left, op, a)
}

func alwaysNumber(sql.DataType) sql.DataType { return sql.Number }

func sameAsChild(dt sql.DataType) sql.DataType { return dt }

// aggregableTypes builds the legalChildTypes set for an aggregate's
// operand: the listed data types, each forced to non-aggregate — an
// aggregate of an aggregate is illegal regardless of its data type.
func aggregableTypes(types ...sql.DataType) []sql.TypeShape {
	shapes := make([]sql.TypeShape, len(types))
	for i, t := range types {
		shapes[i] = sql.ShapeAgg(t, false)
	}
	return shapes
}

// NewCount builds `count` / `count(expr)`. expr may be nil for `count(*)`.
func NewCount(loc sql.SourceLocation, expr sql.Node) *AggregateFunction {
	return &AggregateFunction{
		Base:     sql.Base{Element: "count", Loc: loc},
		Function: "count",
		Expr:     expr,
		returns:  alwaysNumber,
	}
}

// NewCountDistinct builds `count_distinct(expr|source)`.
func NewCountDistinct(loc sql.SourceLocation, expr sql.Node, source string) *AggregateFunction {
	return &AggregateFunction{
		Base:          sql.Base{Element: "count_distinct", Loc: loc},
		Function:      "count_distinct",
		Expr:          expr,
		Source:        source,
		legalTypes:    aggregableTypes(sql.Number, sql.String, sql.Date, sql.Timestamp),
		requiresChild: true,
		returns:       alwaysNumber,
	}
}

// NewSum builds `sum(expr|source)`.
func NewSum(loc sql.SourceLocation, expr sql.Node, source string) *AggregateFunction {
	return &AggregateFunction{
		Base:          sql.Base{Element: "sum", Loc: loc},
		Function:      "sum",
		Expr:          expr,
		Source:        source,
		legalTypes:    aggregableTypes(sql.Number),
		requiresChild: true,
		returns:       alwaysNumber,
		fieldPrefix:   "total_",
	}
}

// NewAvg builds `avg(expr|source)`.
func NewAvg(loc sql.SourceLocation, expr sql.Node, source string) *AggregateFunction {
	return &AggregateFunction{
		Base:          sql.Base{Element: "avg", Loc: loc},
		Function:      "avg",
		Expr:          expr,
		Source:        source,
		legalTypes:    aggregableTypes(sql.Number),
		requiresChild: true,
		returns:       alwaysNumber,
		fieldPrefix:   "avg_",
	}
}

// NewMin builds `min(expr|source)`.
func NewMin(loc sql.SourceLocation, expr sql.Node, source string) *AggregateFunction {
	return &AggregateFunction{
		Base:          sql.Base{Element: "min", Loc: loc},
		Function:      "min",
		Expr:          expr,
		Source:        source,
		legalTypes:    aggregableTypes(sql.Number, sql.String, sql.Date, sql.Timestamp),
		requiresChild: true,
		returns:       sameAsChild,
	}
}

// NewMax builds `max(expr|source)`.
func NewMax(loc sql.SourceLocation, expr sql.Node, source string) *AggregateFunction {
	return &AggregateFunction{
		Base:          sql.Base{Element: "max", Loc: loc},
		Function:      "max",
		Expr:          expr,
		Source:        source,
		legalTypes:    aggregableTypes(sql.Number, sql.String, sql.Date, sql.Timestamp),
		requiresChild: true,
		returns:       sameAsChild,
	}
}
