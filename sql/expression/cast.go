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

// ExprCast is `cast(e as type)` / `safe_cast(e as type)`. date->timestamp
// and timestamp->date get their own SQL function forms instead of a
// generic cast, matching the two special cases spec.md calls out; the
// timestamp->date direction additionally stamps the fixed `day` timeframe
// on its result.
type ExprCast struct {
	sql.Base
	Inner sql.Node
	To    sql.DataType
	Safe  bool
}

func NewExprCast(loc sql.SourceLocation, inner sql.Node, to sql.DataType, safe bool) *ExprCast {
	return &ExprCast{Base: sql.Base{Element: "cast expression", Loc: loc}, Inner: inner, To: to, Safe: safe}
}

func (e *ExprCast) Children() []sql.Node { return []sql.Node{e.Inner} }

func (e *ExprCast) Translate(fs sql.FieldSpace, sink *sql.Sink) (sql.ExprValue, bool) {
	v, ok := e.Inner.Translate(fs, sink)
	if !ok {
		sink.Log(e.Inner.Location(), sql.ErrPartialExpressionAsValue.New(e.Inner.ElementType()).Error())
		return sql.ErrorFor("partial expression used as value"), true
	}
	if v.IsError() {
		return v, true
	}

	if v.DataType == sql.Date && e.To == sql.Timestamp {
		return sql.ExprValue{
			DataType:  sql.Timestamp,
			Aggregate: v.Aggregate,
			Value:     sql.Join(sql.Text("TIMESTAMP("), v.Value, sql.Text(")")),
		}, true
	}
	if v.DataType == sql.Timestamp && e.To == sql.Date {
		return sql.ExprValue{
			DataType:  sql.Date,
			Aggregate: v.Aggregate,
			Timeframe: sql.Day,
			Value:     sql.Join(sql.Text("DATE("), v.Value, sql.Text(")")),
		}, true
	}

	function := "cast"
	if e.Safe {
		function = "safe_cast"
	}
	seq := sql.Join(sql.Text(function+"("), v.Value, sql.Text(" as "+string(e.To)+")"))
	return sql.ExprValue{DataType: e.To, Aggregate: v.Aggregate, Value: seq}, true
}

func (e *ExprCast) Apply(fs sql.FieldSpace, sink *sql.Sink, op sql.Operator, left sql.Node) sql.ExprValue {
	return sql.DefaultApply(fs, sink, left, op, e)
}
