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

package sql

import "strings"

// SplitFieldPath splits a dotted field name ("orders.customer.name") into
// its segments.
func SplitFieldPath(name string) []string {
	if name == "" {
		return nil
	}
	return strings.Split(name, ".")
}

// JoinFieldPath is the inverse of SplitFieldPath.
func JoinFieldPath(segments []string) string {
	return strings.Join(segments, ".")
}

// SplitLeaf splits a dotted field name into its struct-path prefix and its
// leaf segment. For a single-segment name, prefix is "". This is the
// primitive spec.md's aggregate-function contract uses to turn a
// `source` field path into a default expression plus a structPath.
func SplitLeaf(name string) (prefix string, leaf string) {
	segments := SplitFieldPath(name)
	if len(segments) == 0 {
		return "", ""
	}
	leaf = segments[len(segments)-1]
	prefix = JoinFieldPath(segments[:len(segments)-1])
	return prefix, leaf
}

// FirstMissingSegment walks name's dotted segments as cumulative prefixes
// against fs, returning the first prefix with no FieldSpace entry. An
// undefined multi-segment path ("orders.customer.name") is ambiguous as to
// which segment the caller got wrong; this pinpoints it instead of
// reporting only the full, unresolved name. It returns name unchanged when
// every strict prefix resolves — the leaf itself is what's missing.
func FirstMissingSegment(fs FieldSpace, name string) string {
	segments := SplitFieldPath(name)
	for i := 1; i < len(segments); i++ {
		prefix := JoinFieldPath(segments[:i])
		if _, ok := fs.Field(prefix); !ok {
			return prefix
		}
	}
	return name
}
