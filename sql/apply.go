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

package sql

import "fmt"

// ApplyBinary is the single entry point for binary composition. It
// dispatches on op and the operands' data types; node is the node to
// attach any type-mismatch diagnostics to (per spec.md's right-biased
// apply, this is ordinarily the right-hand node).
func ApplyBinary(fs FieldSpace, sink *Sink, node Node, left ExprValue, op Operator, right ExprValue) ExprValue {
	if left.IsError() || right.IsError() {
		return ErrorFor("operand already in error")
	}

	switch op {
	case Add, Sub, Mul, Div:
		return applyArithmetic(node, sink, left, op, right)
	case Eq, Neq, Lt, Lte, Gt, Gte:
		return applyComparison(node, sink, left, op, right)
	case And, Or:
		return applyBoolean(node, sink, left, op, right)
	case Match, NotMatch:
		return applyMatch(node, sink, left, op, right)
	default:
		PanicUnreachable(fmt.Sprintf("sql: ApplyBinary: unreachable operator %q", op))
		panic("unreachable")
	}
}

func applyArithmetic(node Node, sink *Sink, left ExprValue, op Operator, right ExprValue) ExprValue {
	if !TypeCheck(node, sink, left, NumericShapes) || !TypeCheck(node, sink, right, NumericShapes) {
		return ErrorFor("arithmetic operand not numeric")
	}
	return ExprValue{
		DataType:  Number,
		Aggregate: left.Aggregate || right.Aggregate,
		Value:     Compose(left.Value, string(op), right.Value),
	}
}

func applyBoolean(node Node, sink *Sink, left ExprValue, op Operator, right ExprValue) ExprValue {
	if !TypeCheck(node, sink, left, BooleanShapes) || !TypeCheck(node, sink, right, BooleanShapes) {
		return ErrorFor("boolean operand not boolean")
	}
	return ExprValue{
		DataType:  Boolean,
		Aggregate: left.Aggregate || right.Aggregate,
		Value:     Compose(left.Value, string(op), right.Value),
	}
}

func applyMatch(node Node, sink *Sink, left ExprValue, op Operator, right ExprValue) ExprValue {
	if !TypeCheck(node, sink, left, []TypeShape{Shape(String)}) {
		return ErrorFor("match operand not string")
	}
	if !TypeCheck(node, sink, right, []TypeShape{Shape(RegExp), Shape(String)}) {
		return ErrorFor("match operand not a regular expression")
	}
	aggregate := left.Aggregate || right.Aggregate
	positive := Compose(left.Value, "regexp", right.Value)
	if op == Match {
		return ExprValue{DataType: Boolean, Aggregate: aggregate, Value: positive}
	}
	return ExprValue{DataType: Boolean, Aggregate: aggregate, Value: nullsafeNot(positive)}
}

// applyComparison implements same-type direct comparison, mixed-temporal
// promotion (the coarser side is cast to the finer one's type) and
// granular-equality truncation.
func applyComparison(node Node, sink *Sink, left ExprValue, op Operator, right ExprValue) ExprValue {
	leftVal, rightVal := left, right

	if left.DataType.IsTemporal() && right.DataType.IsTemporal() && left.DataType != right.DataType {
		leftVal, rightVal = promoteTemporal(left, right)
	}

	if op == Eq && leftVal.DataType.IsTemporal() && rightVal.DataType.IsTemporal() {
		leftVal, rightVal = truncateForGranularEquality(leftVal, rightVal)
	}

	if !TypeCheck(node, sink, leftVal, ComparableShapes) || !TypeCheck(node, sink, rightVal, ComparableShapes) {
		return ErrorFor("comparison operand not comparable")
	}
	if leftVal.DataType != rightVal.DataType {
		sink.Log(node.Location(), ErrTypeMismatch.New(node.ElementType(), rightVal.DataType).Error())
		return ErrorFor("comparison operands have different types")
	}

	return ExprValue{
		DataType:  Boolean,
		Aggregate: leftVal.Aggregate || rightVal.Aggregate,
		Value:     Compose(leftVal.Value, string(op), rightVal.Value),
	}
}

// promoteTemporal implements spec.md's thisValueToTimestamp rule: the
// coarser of a mixed date/timestamp pair is promoted (wrapped in a
// TIMESTAMP(...) cast, the same text ExprCast uses for a date->timestamp
// cast) to the finer type before comparison.
func promoteTemporal(left, right ExprValue) (ExprValue, ExprValue) {
	if left.DataType == Date && right.DataType == Timestamp {
		return castDateToTimestamp(left), right
	}
	if left.DataType == Timestamp && right.DataType == Date {
		return left, castDateToTimestamp(right)
	}
	return left, right
}

func castDateToTimestamp(v ExprValue) ExprValue {
	return ExprValue{
		DataType:  Timestamp,
		Aggregate: v.Aggregate,
		Value:     Join(Text("TIMESTAMP("), v.Value, Text(")")),
	}
}

// truncateForGranularEquality implements spec.md's "Granular equality"
// rule: equality between a granular temporal and a non-granular temporal
// truncates the non-granular side to the granular side's timeframe before
// comparing.
func truncateForGranularEquality(left, right ExprValue) (ExprValue, ExprValue) {
	if left.IsGranular() && !right.IsGranular() {
		return left, truncate(right, left.Timeframe)
	}
	if right.IsGranular() && !left.IsGranular() {
		return truncate(left, right.Timeframe), right
	}
	return left, right
}

func truncate(v ExprValue, tf Timeframe) ExprValue {
	return ExprValue{
		DataType:  v.DataType,
		Aggregate: v.Aggregate,
		Timeframe: tf,
		Value:     Join(Text(fmt.Sprintf("date_trunc('%s', ", tf)), v.Value, Text(")")),
	}
}

// nullsafeNot emits SQL that yields true when the inner expression is
// null, preserving Malloy's three-valued-logic intent that
// `not null == null` does not suppress rows. This helper is applied only
// at explicit Not nodes in the source language — other boolean combinators
// do not null-propagate, and this implementation must not be generalized
// to them (spec.md §9, Open Question (b)).
func nullsafeNot(e FragmentSeq) FragmentSeq {
	return Join(
		Text("("), e, Text(") is null or not ("), e, Text(")"),
	)
}

// NullsafeNot is the exported form used by sql/expression.ExprNot.
func NullsafeNot(e FragmentSeq) FragmentSeq { return nullsafeNot(e) }
