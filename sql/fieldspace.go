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

// FieldSpace is the symbol table the compiler depends on but never
// implements. Lexing, parsing, namespace resolution and query planning all
// live outside this module; FieldSpace is their handle into it.
type FieldSpace interface {
	// Field looks up a dotted name. ok is false when the name is
	// undefined in this space.
	Field(name string) (entry FieldEntry, ok bool)
}

// FieldEntry describes one resolved field.
type FieldEntry interface {
	// Type reports the field's data type and whether it is aggregate.
	Type() (dataType DataType, aggregate bool)

	// FilterList returns the filter conditions attached to this field, if
	// any. ok is false for fields that carry no filter.
	FilterList() (filters []FilterCond, ok bool)
}

// FilterCond is one boolean condition in a filter list, as produced by a
// FieldEntry or attached directly to an ExprFilter node.
type FilterCond struct {
	Value     FragmentSeq
	Aggregate bool
}
