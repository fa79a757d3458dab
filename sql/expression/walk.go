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

package expression

import "github.com/dolthub/malloy-core/sql"

// parent is implemented by every node variant with children. It is kept
// unexported and structural (rather than part of sql.Node) so that nodes
// defined outside this package — aggregation.AggregateFunction included — can
// still participate in Walk by implementing it themselves.
type parent interface {
	Children() []sql.Node
}

// Walk visits node and every descendant, depth-first, pre-order. fn is
// called once per node; when fn returns false, Walk does not descend into
// that node's children (but continues with its siblings).
func Walk(node sql.Node, fn func(sql.Node) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	if p, ok := node.(parent); ok {
		for _, child := range p.Children() {
			Walk(child, fn)
		}
	}
}

// Inspect collects every node in the tree rooted at node, in the same order
// Walk visits them.
func Inspect(node sql.Node) []sql.Node {
	var out []sql.Node
	Walk(node, func(n sql.Node) bool {
		out = append(out, n)
		return true
	})
	return out
}
