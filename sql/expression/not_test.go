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

// ExprNot emits the null-safe form `(e) is null or not (e)`.
func TestNotIsNullSafe(t *testing.T) {
	sink := sql.NewSink(nil)
	b := expression.NewBoolean(sql.SourceLocation{}, true)
	not := expression.NewExprNot(sql.SourceLocation{}, b)

	v, ok := not.Translate(nil, sink)
	require.True(t, ok)
	require.Equal(t, sql.Boolean, v.DataType)
	require.Equal(t, "(true) is null or not (true)", v.Value.String())
}

// Not(Not(e)) does not collapse to a bare `e`: each ExprNot applies the
// null-safe form, so it appears twice. For a null e the result is false,
// not null.
func TestDoubleNot(t *testing.T) {
	sink := sql.NewSink(nil)
	b := expression.NewBoolean(sql.SourceLocation{}, true)
	not := expression.NewExprNot(sql.SourceLocation{}, b)
	notNot := expression.NewExprNot(sql.SourceLocation{}, not)

	v, ok := notNot.Translate(nil, sink)
	require.True(t, ok)
	require.Equal(t, sql.Boolean, v.DataType)
	require.Contains(t, v.Value.String(), "is null or not")
}
