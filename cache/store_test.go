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

package cache_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/malloy-core/cache"
	"github.com/dolthub/malloy-core/sql"
)

func openTestStore(t *testing.T) *cache.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "compile-cache.db")
	store, err := cache.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })
	return store
}

func TestKeyIsStableForEqualIdentity(t *testing.T) {
	id := cache.Identity{ASTFingerprint: "0xdeadbeef", FieldSpaceVersion: "v1"}
	k1, err := cache.Key(id)
	require.NoError(t, err)
	k2, err := cache.Key(id)
	require.NoError(t, err)
	require.Equal(t, k1, k2)

	k3, err := cache.Key(cache.Identity{ASTFingerprint: "0xdeadbeef", FieldSpaceVersion: "v2"})
	require.NoError(t, err)
	require.NotEqual(t, k1, k3)
}

func TestGetMissDoesNotError(t *testing.T) {
	store := openTestStore(t)
	_, ok, err := store.Get(12345)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPutGetRoundTripsAllFragmentTags(t *testing.T) {
	store := openTestStore(t)

	value := sql.ExprValue{
		DataType:  sql.Number,
		Aggregate: true,
		Timeframe: sql.Day,
		Value: sql.FragmentSeq{
			sql.TextFragment{Text: "sum("},
			sql.AggregateFragment{
				Function:   "sum",
				StructPath: "orders",
				E:          sql.FragmentSeq{sql.FieldFragment{Path: "amount"}},
			},
			sql.FilterExpressionFragment{
				E: sql.FragmentSeq{sql.FieldFragment{Path: "total"}},
				FilterList: []sql.FilterCond{
					{Value: sql.Text("status = 'shipped'"), Aggregate: false},
				},
			},
			sql.TextFragment{Text: ")"},
		},
	}
	diags := []sql.Diagnostic{
		{Location: sql.SourceLocation{File: "q.malloy", Line: 3, Column: 7}, Message: "reference to undefined field 'x'"},
	}

	key, err := cache.Key(cache.Identity{ASTFingerprint: "root-1", FieldSpaceVersion: "v1"})
	require.NoError(t, err)
	require.NoError(t, store.Put(key, cache.Entry{Value: value, Diagnostics: diags}))

	got, ok, err := store.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, value.DataType, got.Value.DataType)
	require.Equal(t, value.Aggregate, got.Value.Aggregate)
	require.Equal(t, value.Timeframe, got.Value.Timeframe)
	require.Equal(t, value.Value, got.Value.Value)
	require.Equal(t, diags, got.Diagnostics)
}

func TestPutOverwritesPriorEntry(t *testing.T) {
	store := openTestStore(t)
	key, err := cache.Key(cache.Identity{ASTFingerprint: "root-2"})
	require.NoError(t, err)

	require.NoError(t, store.Put(key, cache.Entry{Value: sql.ExprValue{DataType: sql.Number}}))
	require.NoError(t, store.Put(key, cache.Entry{Value: sql.ExprValue{DataType: sql.String}}))

	got, ok, err := store.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, sql.String, got.Value.DataType)
}
