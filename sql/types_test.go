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

func TestTimeframeCoarserThan(t *testing.T) {
	require.True(t, sql.Year.CoarserThan(sql.Day))
	require.False(t, sql.Day.CoarserThan(sql.Year))
	require.False(t, sql.NoTimeframe.CoarserThan(sql.Day))
}

func TestIsTemporal(t *testing.T) {
	require.True(t, sql.Date.IsTemporal())
	require.True(t, sql.Timestamp.IsTemporal())
	require.False(t, sql.Number.IsTemporal())
}

func TestShapeAgg(t *testing.T) {
	shape := sql.ShapeAgg(sql.Number, true)
	require.Equal(t, sql.Number, shape.DataType)
	require.NotNil(t, shape.Aggregate)
	require.True(t, *shape.Aggregate)
}
