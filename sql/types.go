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

// Package sql holds the expression compiler's core data model: the
// fragment ABI, the ExprValue type algebra, field-path utilities, the
// applyBinary engine and the diagnostics sink. It depends on nothing in
// sql/expression; sql/expression depends on it.
package sql

// DataType is the closed set of scalar types an ExprValue can carry.
type DataType string

const (
	String    DataType = "string"
	Number    DataType = "number"
	Boolean   DataType = "boolean"
	Date      DataType = "date"
	Timestamp DataType = "timestamp"
	Null      DataType = "null"
	RegExp    DataType = "regular expression"
	ErrorType DataType = "error"
)

// Timeframe is the optional granularity a date or timestamp value may
// carry. The zero value "" means the value is not granular.
type Timeframe string

const (
	NoTimeframe Timeframe = ""
	Second      Timeframe = "second"
	Minute      Timeframe = "minute"
	Hour        Timeframe = "hour"
	Day         Timeframe = "day"
	Week        Timeframe = "week"
	Month       Timeframe = "month"
	Quarter     Timeframe = "quarter"
	Year        Timeframe = "year"
)

// timeframeRank orders timeframes from finest to coarsest; CoarserThan
// compares two timeframes by it.
var timeframeRank = map[Timeframe]int{
	Second:  0,
	Minute:  1,
	Hour:    2,
	Day:     3,
	Week:    4,
	Month:   5,
	Quarter: 6,
	Year:    7,
}

// CoarserThan reports whether tf is strictly coarser than other. Unranked
// (empty) timeframes are never coarser than anything.
func (tf Timeframe) CoarserThan(other Timeframe) bool {
	a, aok := timeframeRank[tf]
	b, bok := timeframeRank[other]
	if !aok || !bok {
		return false
	}
	return a > b
}

// TypeShape is one entry in a node's legalChildTypes set: an acceptable
// {dataType, aggregate?} shape for an operand. A nil Aggregate means the
// aggregate-ness of the operand is unconstrained.
type TypeShape struct {
	DataType  DataType
	Aggregate *bool
}

func boolPtr(b bool) *bool { return &b }

// Shape builds a TypeShape with an unconstrained aggregate-ness.
func Shape(dt DataType) TypeShape {
	return TypeShape{DataType: dt}
}

// ShapeAgg builds a TypeShape that additionally requires a specific
// aggregate-ness.
func ShapeAgg(dt DataType, aggregate bool) TypeShape {
	return TypeShape{DataType: dt, Aggregate: boolPtr(aggregate)}
}

// Numeric, comparable, and boolean shape sets used throughout
// sql/expression's legalChildTypes declarations.
var (
	NumericShapes    = []TypeShape{Shape(Number)}
	ComparableShapes = []TypeShape{Shape(Number), Shape(String), Shape(Date), Shape(Timestamp)}
	BooleanShapes    = []TypeShape{Shape(Boolean)}
)

// IsTemporal reports whether dt is date or timestamp.
func (dt DataType) IsTemporal() bool {
	return dt == Date || dt == Timestamp
}
