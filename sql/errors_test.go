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

func TestClassifyDiagnostic(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{sql.ErrUndefinedField.New("x").Error(), "undefined_field"},
		{sql.ErrTypeMismatch.New("sum", sql.Number).Error(), "type_mismatch"},
		{sql.ErrPartialExpressionAsValue.New("Range").Error(), "partial_expression_as_value"},
		{sql.ErrBranchTypeMismatch.New("case").Error(), "branch_type_mismatch"},
		{sql.ErrUntypable.New().Error(), "untypable"},
		{sql.ErrMissingAggregateExpression.New().Error(), "missing_aggregate_expression"},
		{sql.ErrAggregateFilterMisuse.New().Error(), "aggregate_filter_misuse"},
		{sql.ErrMalformedTimeLiteral.New("date", "not-a-date").Error(), "malformed_time_literal"},
		{sql.ErrAggregateMisuse.New("orders is a struct").Error(), "aggregate_misuse"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, sql.ClassifyDiagnostic(tc.message), tc.message)
	}
}
