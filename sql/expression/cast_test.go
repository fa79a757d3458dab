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

	"github.com/dolthub/malloy-core/internal/testfixture"
	"github.com/dolthub/malloy-core/sql"
	"github.com/dolthub/malloy-core/sql/expression"
)

func TestExprCastDateToTimestamp(t *testing.T) {
	fs, err := testfixture.New(testfixture.FieldDef{Name: "d", DataType: "date"})
	require.NoError(t, err)
	sink := sql.NewSink(nil)

	cast := expression.NewExprCast(sql.SourceLocation{}, expression.NewExprField(sql.SourceLocation{}, "d"), sql.Timestamp, false)
	v, ok := cast.Translate(fs, sink)
	require.True(t, ok)
	require.Equal(t, sql.Timestamp, v.DataType)
	require.Equal(t, "TIMESTAMP(d)", v.Value.String())
}

func TestExprCastTimestampToDateSetsDayTimeframe(t *testing.T) {
	fs, err := testfixture.New(testfixture.FieldDef{Name: "t", DataType: "timestamp"})
	require.NoError(t, err)
	sink := sql.NewSink(nil)

	cast := expression.NewExprCast(sql.SourceLocation{}, expression.NewExprField(sql.SourceLocation{}, "t"), sql.Date, false)
	v, ok := cast.Translate(fs, sink)
	require.True(t, ok)
	require.Equal(t, sql.Date, v.DataType)
	require.Equal(t, sql.Day, v.Timeframe)
	require.Equal(t, "DATE(t)", v.Value.String())
}

func TestExprCastGeneric(t *testing.T) {
	fs, err := testfixture.New(testfixture.FieldDef{Name: "n", DataType: "number"})
	require.NoError(t, err)
	sink := sql.NewSink(nil)

	cast := expression.NewExprCast(sql.SourceLocation{}, expression.NewExprField(sql.SourceLocation{}, "n"), sql.String, true)
	v, ok := cast.Translate(fs, sink)
	require.True(t, ok)
	require.Equal(t, "safe_cast(n as string)", v.Value.String())
}
