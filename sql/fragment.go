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

// Fragment is one element of a FragmentSeq. The tag strings and field
// names of the concrete types below are part of the stable ABI the
// downstream SQL writer consumes; do not rename them.
type Fragment interface {
	// Tag returns the fragment's wire tag ("text", "field", "aggregate",
	// or "filterExpression").
	Tag() string
	isFragment()
}

// FragmentSeq is an ordered list of fragments. Concatenating the literal
// text portions with the downstream writer's rendering of placeholders
// yields well-formed SQL for the target dialect.
type FragmentSeq []Fragment

// TextFragment is a literal, opaque piece of SQL text.
type TextFragment struct {
	Text string
}

func (TextFragment) isFragment() {}
func (TextFragment) Tag() string { return "text" }

// FieldFragment references a dotted field name resolved by the FieldSpace.
type FieldFragment struct {
	Path string
}

func (FieldFragment) isFragment() {}
func (FieldFragment) Tag() string { return "field" }

// AggregateFragment is an aggregate-function call over an inner fragment
// sequence, optionally scoped to a struct via StructPath.
type AggregateFragment struct {
	Function   string
	E          FragmentSeq
	StructPath string // empty when not scoped to a relation
}

func (AggregateFragment) isFragment() {}
func (AggregateFragment) Tag() string { return "aggregate" }

// FilterExpressionFragment wraps an aggregate expression with a list of
// filter conditions applied only to that aggregate's computation.
type FilterExpressionFragment struct {
	E          FragmentSeq
	FilterList []FilterCond
}

func (FilterExpressionFragment) isFragment() {}
func (FilterExpressionFragment) Tag() string { return "filterExpression" }

// Text is a convenience constructor for a one-fragment literal sequence.
func Text(s string) FragmentSeq {
	return FragmentSeq{TextFragment{Text: s}}
}

// Join concatenates fragment sequences in order.
func Join(seqs ...FragmentSeq) FragmentSeq {
	var out FragmentSeq
	for _, s := range seqs {
		out = append(out, s...)
	}
	return out
}

// Compose builds [...left, " op ", ...right], the standard binary-operator
// fragment shape used throughout the applyBinary engine and the AST nodes.
func Compose(left FragmentSeq, op string, right FragmentSeq) FragmentSeq {
	return Join(left, Text(" "+op+" "), right)
}

// Compress merges adjacent literal-text fragments in seq into one.
// Compress is idempotent and preserves placeholder positions.
func Compress(seq FragmentSeq) FragmentSeq {
	if len(seq) == 0 {
		return seq
	}
	out := make(FragmentSeq, 0, len(seq))
	var pending *strings.Builder
	flush := func() {
		if pending != nil {
			out = append(out, TextFragment{Text: pending.String()})
			pending = nil
		}
	}
	for _, f := range seq {
		if t, ok := f.(TextFragment); ok {
			if pending == nil {
				pending = &strings.Builder{}
			}
			pending.WriteString(t.Text)
			continue
		}
		flush()
		out = append(out, f)
	}
	flush()
	return out
}

// String renders seq as approximate SQL for logging and test failure
// output. This is never used to produce real executable SQL — dialect
// emission is the downstream writer's job.
func (seq FragmentSeq) String() string {
	var b strings.Builder
	for _, f := range seq {
		switch v := f.(type) {
		case TextFragment:
			b.WriteString(v.Text)
		case FieldFragment:
			b.WriteString(v.Path)
		case AggregateFragment:
			b.WriteString(v.Function)
			b.WriteString("(")
			b.WriteString(v.E.String())
			b.WriteString(")")
		case FilterExpressionFragment:
			b.WriteString(v.E.String())
			b.WriteString("{? ")
			for i, c := range v.FilterList {
				if i > 0 {
					b.WriteString(" and ")
				}
				b.WriteString(c.Value.String())
			}
			b.WriteString("}")
		default:
			b.WriteString("?")
		}
	}
	return b.String()
}
