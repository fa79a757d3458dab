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

package expression_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/malloy-core/sql"
	"github.com/dolthub/malloy-core/sql/expression"
)

func TestLiterals(t *testing.T) {
	sink := sql.NewSink(nil)

	str, ok := expression.NewExprString(sql.SourceLocation{}, "hi").Translate(nil, sink)
	require.True(t, ok)
	require.Equal(t, sql.String, str.DataType)
	require.Equal(t, `"hi"`, str.Value.String())

	num, ok := expression.NewExprNumber(sql.SourceLocation{}, "3.5").Translate(nil, sink)
	require.True(t, ok)
	require.Equal(t, sql.Number, num.DataType)
	require.Equal(t, "3.5", num.Value.String())

	b, ok := expression.NewBoolean(sql.SourceLocation{}, false).Translate(nil, sink)
	require.True(t, ok)
	require.Equal(t, sql.Boolean, b.DataType)
	require.Equal(t, "false", b.Value.String())

	n, ok := expression.NewExprNULL(sql.SourceLocation{}).Translate(nil, sink)
	require.True(t, ok)
	require.Equal(t, sql.Null, n.DataType)

	require.True(t, sink.Empty())
}

func TestExprNumberMalformed(t *testing.T) {
	sink := sql.NewSink(nil)
	v, ok := expression.NewExprNumber(sql.SourceLocation{}, "not-a-number").Translate(nil, sink)
	require.True(t, ok)
	require.True(t, v.IsError())
	require.False(t, sink.Empty())
}

func TestExprTimeLiteral(t *testing.T) {
	sink := sql.NewSink(nil)

	d, err := expression.NewExprTime(sql.SourceLocation{}, sql.Date, "2024-01-01", sql.NoTimeframe)
	require.NoError(t, err)
	v, ok := d.Translate(nil, sink)
	require.True(t, ok)
	require.Equal(t, sql.Date, v.DataType)
	require.Equal(t, sql.NoTimeframe, v.Timeframe)
	require.Equal(t, "DATE '2024-01-01'", v.Value.String())
	require.True(t, sink.Empty())
}

func TestExprTimeLiteralGranular(t *testing.T) {
	ts, err := expression.NewExprTime(sql.SourceLocation{}, sql.Timestamp, "2024-01-01 12:00:00", sql.Day)
	require.NoError(t, err)
	v, ok := ts.Translate(nil, sql.NewSink(nil))
	require.True(t, ok)
	require.Equal(t, sql.Timestamp, v.DataType)
	require.Equal(t, sql.Day, v.Timeframe)
	require.True(t, v.IsGranular())
	require.Equal(t, "TIMESTAMP '2024-01-01 12:00:00'", v.Value.String())
}

func TestExprTimeRejectsMalformedLiteralAtConstruction(t *testing.T) {
	_, err := expression.NewExprTime(sql.SourceLocation{}, sql.Date, "not-a-date", sql.NoTimeframe)
	require.Error(t, err)
	require.Equal(t, "malformed date literal: \"not-a-date\"", err.Error())
}

func TestExprMinusWrapsMultiFragment(t *testing.T) {
	sink := sql.NewSink(nil)
	x := expression.NewExprField(sql.SourceLocation{}, "x")
	one := expression.NewExprNumber(sql.SourceLocation{}, "1")
	add := expression.NewBinaryNumeric(sql.SourceLocation{}, x, sql.Add, one)
	minus := expression.NewExprMinus(sql.SourceLocation{}, add)

	v, ok := minus.Translate(numberSpace(t), sink)
	require.True(t, ok)
	require.Equal(t, sql.Number, v.DataType)
	require.Equal(t, "-(x + 1)", v.Value.String())
	require.True(t, sink.Empty())
}
