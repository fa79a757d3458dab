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

// Package expression holds the expression AST: one node variant per
// syntactic form, each implementing sql.Node. Shared helpers (compose,
// compressExpr, typeCheck, applyBinary) live in the parent sql package;
// this package is the "tagged union of variants" spec.md §9 calls for.
package expression

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/dolthub/malloy-core/sql"
)

// ExprString is a string literal.
type ExprString struct {
	sql.Base
	Literal string
}

// NewExprString builds a string literal at loc.
func NewExprString(loc sql.SourceLocation, literal string) *ExprString {
	return &ExprString{Base: sql.Base{Element: "string literal", Loc: loc}, Literal: literal}
}

func (e *ExprString) Translate(fs sql.FieldSpace, sink *sql.Sink) (sql.ExprValue, bool) {
	return sql.ExprValue{DataType: sql.String, Value: sql.Text(strconv.Quote(e.Literal))}, true
}

func (e *ExprString) Apply(fs sql.FieldSpace, sink *sql.Sink, op sql.Operator, left sql.Node) sql.ExprValue {
	return sql.DefaultApply(fs, sink, left, op, e)
}

// ExprNumber is a numeric literal. The literal is parsed to a float64 via
// spf13/cast, which validates it, and the emitted fragment is that value
// re-rendered in strconv's shortest 'g' form (so "1.50" is emitted as
// "1.5"); no arithmetic is folded.
type ExprNumber struct {
	sql.Base
	Literal string
}

// NewExprNumber builds a numeric literal at loc.
func NewExprNumber(loc sql.SourceLocation, literal string) *ExprNumber {
	return &ExprNumber{Base: sql.Base{Element: "numeric literal", Loc: loc}, Literal: literal}
}

func (e *ExprNumber) Translate(fs sql.FieldSpace, sink *sql.Sink) (sql.ExprValue, bool) {
	f, err := cast.ToFloat64E(e.Literal)
	if err != nil {
		sink.Log(e.Loc, fmt.Sprintf("'%s' is not a valid number literal", e.Literal))
		return sql.ErrorFor("malformed number literal"), true
	}
	text := strconv.FormatFloat(f, 'g', -1, 64)
	return sql.ExprValue{DataType: sql.Number, Value: sql.Text(text)}, true
}

func (e *ExprNumber) Apply(fs sql.FieldSpace, sink *sql.Sink, op sql.Operator, left sql.Node) sql.ExprValue {
	return sql.DefaultApply(fs, sink, left, op, e)
}

// ExprRegEx is a regular-expression literal, the right-hand operand of a
// `~`/`!~` match.
type ExprRegEx struct {
	sql.Base
	Pattern string
}

func NewExprRegEx(loc sql.SourceLocation, pattern string) *ExprRegEx {
	return &ExprRegEx{Base: sql.Base{Element: "regex literal", Loc: loc}, Pattern: pattern}
}

func (e *ExprRegEx) Translate(fs sql.FieldSpace, sink *sql.Sink) (sql.ExprValue, bool) {
	return sql.ExprValue{DataType: sql.RegExp, Value: sql.Text(strconv.Quote(e.Pattern))}, true
}

func (e *ExprRegEx) Apply(fs sql.FieldSpace, sink *sql.Sink, op sql.Operator, left sql.Node) sql.ExprValue {
	return sql.DefaultApply(fs, sink, left, op, e)
}

// Boolean is a `true`/`false` literal.
type Boolean struct {
	sql.Base
	Literal bool
}

func NewBoolean(loc sql.SourceLocation, literal bool) *Boolean {
	return &Boolean{Base: sql.Base{Element: "boolean literal", Loc: loc}, Literal: literal}
}

func (e *Boolean) Translate(fs sql.FieldSpace, sink *sql.Sink) (sql.ExprValue, bool) {
	text := "false"
	if e.Literal {
		text = "true"
	}
	return sql.ExprValue{DataType: sql.Boolean, Value: sql.Text(text)}, true
}

func (e *Boolean) Apply(fs sql.FieldSpace, sink *sql.Sink, op sql.Operator, left sql.Node) sql.ExprValue {
	return sql.DefaultApply(fs, sink, left, op, e)
}

// ExprNULL is the `null` literal.
type ExprNULL struct {
	sql.Base
}

func NewExprNULL(loc sql.SourceLocation) *ExprNULL {
	return &ExprNULL{Base: sql.Base{Element: "null literal", Loc: loc}}
}

func (e *ExprNULL) Translate(fs sql.FieldSpace, sink *sql.Sink) (sql.ExprValue, bool) {
	return sql.ExprValue{DataType: sql.Null, Value: sql.Text("NULL")}, true
}

func (e *ExprNULL) Apply(fs sql.FieldSpace, sink *sql.Sink, op sql.Operator, left sql.Node) sql.ExprValue {
	return sql.DefaultApply(fs, sink, left, op, e)
}

// ExprTime is a `date` or `timestamp` literal. Kind is always sql.Date or
// sql.Timestamp; Timeframe is optional and, when set, makes the literal
// granular — it flows straight through to the resulting ExprValue, so a
// granular time literal compares via the same truncating equality rule as
// any other granular temporal (spec.md §4.D).
type ExprTime struct {
	sql.Base
	Kind      sql.DataType
	Literal   string
	Timeframe sql.Timeframe
}

// NewExprTime builds a date/timestamp literal at loc. The literal text is
// validated against kind's accepted formats via sql.ParseTimeLiteral up
// front, so a malformed literal is rejected at construction time with a
// diagnosable error rather than surfacing later as an inexplicable
// translation failure. kind must be sql.Date or sql.Timestamp.
func NewExprTime(loc sql.SourceLocation, kind sql.DataType, literal string, timeframe sql.Timeframe) (*ExprTime, error) {
	if _, err := sql.ParseTimeLiteral(kind, literal); err != nil {
		return nil, err
	}
	return &ExprTime{
		Base:      sql.Base{Element: "time literal", Loc: loc},
		Kind:      kind,
		Literal:   literal,
		Timeframe: timeframe,
	}, nil
}

func (e *ExprTime) Translate(fs sql.FieldSpace, sink *sql.Sink) (sql.ExprValue, bool) {
	text := fmt.Sprintf("%s '%s'", strings.ToUpper(string(e.Kind)), e.Literal)
	return sql.ExprValue{DataType: e.Kind, Timeframe: e.Timeframe, Value: sql.Text(text)}, true
}

func (e *ExprTime) Apply(fs sql.FieldSpace, sink *sql.Sink, op sql.Operator, left sql.Node) sql.ExprValue {
	return sql.DefaultApply(fs, sink, left, op, e)
}

// Star is the `*` pseudo-literal. Translate yields the text `*`, so passing
// it as count's expression emits count(*), the same as a nil expression;
// Apply logs a diagnostic and returns an error value.
type Star struct {
	sql.Base
}

func NewStar(loc sql.SourceLocation) *Star {
	return &Star{Base: sql.Base{Element: "star", Loc: loc}}
}

func (e *Star) Translate(fs sql.FieldSpace, sink *sql.Sink) (sql.ExprValue, bool) {
	return sql.ExprValue{DataType: sql.Number, Value: sql.Text("*")}, true
}

func (e *Star) Apply(fs sql.FieldSpace, sink *sql.Sink, op sql.Operator, left sql.Node) sql.ExprValue {
	sink.Log(e.Loc, "* has no value")
	return sql.ErrorFor("star used as value")
}
