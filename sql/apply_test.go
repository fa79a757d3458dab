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

package sql_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/malloy-core/sql"
)

type stubNode struct {
	sql.Base
}

func (n *stubNode) Translate(sql.FieldSpace, *sql.Sink) (sql.ExprValue, bool) {
	return sql.ExprValue{}, true
}
func (n *stubNode) Apply(fs sql.FieldSpace, sink *sql.Sink, op sql.Operator, left sql.Node) sql.ExprValue {
	return sql.DefaultApply(fs, sink, left, op, n)
}

func node() *stubNode { return &stubNode{Base: sql.Base{Element: "stub"}} }

func TestApplyBinaryArithmetic(t *testing.T) {
	sink := sql.NewSink(nil)
	left := sql.ExprValue{DataType: sql.Number, Value: sql.Text("1")}
	right := sql.ExprValue{DataType: sql.Number, Aggregate: true, Value: sql.Text("2")}
	result := sql.ApplyBinary(nil, sink, node(), left, sql.Add, right)
	require.Equal(t, sql.Number, result.DataType)
	require.True(t, result.Aggregate)
	require.Equal(t, "1 + 2", result.Value.String())
	require.True(t, sink.Empty())
}

func TestApplyBinaryArithmeticTypeMismatch(t *testing.T) {
	sink := sql.NewSink(nil)
	left := sql.ExprValue{DataType: sql.String, Value: sql.Text("'a'")}
	right := sql.ExprValue{DataType: sql.Number, Value: sql.Text("1")}
	result := sql.ApplyBinary(nil, sink, node(), left, sql.Add, right)
	require.True(t, result.IsError())
	require.False(t, sink.Empty())
}

func TestApplyBinaryComparisonPromotesTemporal(t *testing.T) {
	sink := sql.NewSink(nil)
	left := sql.ExprValue{DataType: sql.Date, Value: sql.Text("d")}
	right := sql.ExprValue{DataType: sql.Timestamp, Value: sql.Text("t")}
	result := sql.ApplyBinary(nil, sink, node(), left, sql.Lt, right)
	require.Equal(t, sql.Boolean, result.DataType)
	require.Equal(t, "TIMESTAMP(d) < t", result.Value.String())
}

func TestApplyBinaryGranularEqualityTruncates(t *testing.T) {
	sink := sql.NewSink(nil)
	left := sql.ExprValue{DataType: sql.Timestamp, Timeframe: sql.Day, Value: sql.Text("d")}
	right := sql.ExprValue{DataType: sql.Timestamp, Value: sql.Text("t")}
	result := sql.ApplyBinary(nil, sink, node(), left, sql.Eq, right)
	require.Equal(t, "d = date_trunc('day', t)", result.Value.String())
}

func TestApplyBinaryMatchAndNotMatch(t *testing.T) {
	sink := sql.NewSink(nil)
	left := sql.ExprValue{DataType: sql.String, Value: sql.Text("s")}
	right := sql.ExprValue{DataType: sql.RegExp, Value: sql.Text("'^a'")}

	match := sql.ApplyBinary(nil, sink, node(), left, sql.Match, right)
	require.Equal(t, "s regexp '^a'", match.Value.String())

	notMatch := sql.ApplyBinary(nil, sink, node(), left, sql.NotMatch, right)
	require.Equal(t, "(s regexp '^a') is null or not (s regexp '^a')", notMatch.Value.String())
}

func TestApplyBinaryErrorOperandIsInert(t *testing.T) {
	sink := sql.NewSink(nil)
	left := sql.ErrorFor("boom")
	right := sql.ExprValue{DataType: sql.Number, Value: sql.Text("1")}
	result := sql.ApplyBinary(nil, sink, node(), left, sql.Add, right)
	require.True(t, result.IsError())
	require.True(t, sink.Empty())
}

func TestApplyBinaryUnreachableOperatorPanics(t *testing.T) {
	sink := sql.NewSink(nil)
	require.Panics(t, func() {
		sql.ApplyBinary(nil, sink, node(), sql.ExprValue{}, sql.Operator("??"), sql.ExprValue{})
	})
}
