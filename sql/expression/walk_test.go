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

func TestWalkVisitsEveryNode(t *testing.T) {
	x := expression.NewExprField(sql.SourceLocation{}, "x")
	one := expression.NewExprNumber(sql.SourceLocation{}, "1")
	add := expression.NewBinaryNumeric(sql.SourceLocation{}, x, sql.Add, one)
	parens := expression.NewExprParens(sql.SourceLocation{}, add)

	nodes := expression.Inspect(parens)
	require.Len(t, nodes, 4)
	require.Same(t, sql.Node(parens), nodes[0])
}

func TestWalkStopsDescendingWhenFnReturnsFalse(t *testing.T) {
	x := expression.NewExprField(sql.SourceLocation{}, "x")
	one := expression.NewExprNumber(sql.SourceLocation{}, "1")
	add := expression.NewBinaryNumeric(sql.SourceLocation{}, x, sql.Add, one)

	var visited int
	expression.Walk(add, func(sql.Node) bool {
		visited++
		return false
	})
	require.Equal(t, 1, visited)
}
