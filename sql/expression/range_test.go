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

// S3: Range(1, 10).apply(fs, "=", ExprField("x")).
func TestRangeApplyEquals(t *testing.T) {
	fs, err := testfixture.New(testfixture.FieldDef{Name: "x", DataType: "number"})
	require.NoError(t, err)
	sink := sql.NewSink(nil)

	r := expression.NewRange(sql.SourceLocation{},
		expression.NewExprNumber(sql.SourceLocation{}, "1"),
		expression.NewExprNumber(sql.SourceLocation{}, "10"))
	x := expression.NewExprField(sql.SourceLocation{}, "x")

	v := r.Apply(fs, sink, sql.Eq, x)
	require.Equal(t, sql.Boolean, v.DataType)
	require.Equal(t, "x >= 1 and x < 10", v.Value.String())
}

func TestRangeApplyGreaterThanMeansPastWholeRange(t *testing.T) {
	fs, err := testfixture.New(testfixture.FieldDef{Name: "x", DataType: "number"})
	require.NoError(t, err)
	sink := sql.NewSink(nil)

	r := expression.NewRange(sql.SourceLocation{},
		expression.NewExprNumber(sql.SourceLocation{}, "1"),
		expression.NewExprNumber(sql.SourceLocation{}, "10"))
	x := expression.NewExprField(sql.SourceLocation{}, "x")

	v := r.Apply(fs, sink, sql.Gt, x)
	require.Equal(t, "x >= 10", v.Value.String())
}

func TestRangeTranslateDenies(t *testing.T) {
	r := expression.NewRange(sql.SourceLocation{},
		expression.NewExprNumber(sql.SourceLocation{}, "1"),
		expression.NewExprNumber(sql.SourceLocation{}, "10"))
	_, ok := r.Translate(nil, sql.NewSink(nil))
	require.False(t, ok)
}
