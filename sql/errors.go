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

import (
	"strings"

	pkgerrors "github.com/pkg/errors"
	"gopkg.in/src-d/go-errors.v1"
)

// User-level diagnosable error kinds. Every one of these is recoverable:
// it is recorded against a Sink via Diagnostic and surfaces as an
// error-typed ExprValue, never as a panic. See errorTaxonomy in spec for
// the full list.
var (
	// ErrUndefinedField is logged by ExprField when a name has no entry
	// in the FieldSpace.
	ErrUndefinedField = errors.NewKind("reference to undefined field '%s'")

	// ErrTypeMismatch is logged by typeCheck when an operand's data type
	// is not in the node's legalChildTypes.
	ErrTypeMismatch = errors.NewKind("'%s' can't use type %s")

	// ErrAggregateMisuse covers aggregate-of-an-aggregate and any other
	// "this aggregate call is itself invalid" condition that isn't a
	// plain type mismatch.
	ErrAggregateMisuse = errors.NewKind("%s")

	// ErrPartialExpressionAsValue is logged when a partial expression
	// (alternation tree, range, else-less pick) is asked to translate as
	// a value.
	ErrPartialExpressionAsValue = errors.NewKind("%s has no value")

	// ErrBranchTypeMismatch is logged by ExprCase/Pick when branches
	// disagree on type.
	ErrBranchTypeMismatch = errors.NewKind("mismatched %s clause types")

	// ErrUntypable is logged by ExprCase when every branch is null and no
	// result type can be inferred.
	ErrUntypable = errors.NewKind("case statement type not computable")

	// ErrMissingAggregateExpression is logged when an aggregate function
	// has neither an explicit expression nor a resolvable source.
	ErrMissingAggregateExpression = errors.NewKind("missing expression for aggregate function")

	// ErrAggregateFilterMisuse is logged by ExprFilter when one of its
	// conditions is itself aggregate.
	ErrAggregateFilterMisuse = errors.NewKind("cannot filter a field with an aggregate computation")

	// ErrMalformedTimeLiteral is returned (not logged to a Sink) by
	// ParseTimeLiteral, and so by NewExprTime, when a literal
	// date/timestamp string cannot be parsed.
	ErrMalformedTimeLiteral = errors.NewKind("malformed %s literal: %q")
)

// namedKinds pairs the fixed, non-interpolated prefix of each diagnosable
// Kind's format string with a short, bounded label for use as a metrics
// dimension. Once a Kind.New(...) call fills in its %s/%q verbs the
// resulting message is free-form (it can embed a field name of arbitrary
// length), which makes the message unsuitable as a Prometheus label
// directly — ClassifyDiagnostic maps a message back to the stable Kind
// name it was produced from by matching on that prefix.
var namedKinds = []struct {
	prefix string
	name   string
}{
	{"reference to undefined field", "undefined_field"},
	{"can't use type", "type_mismatch"},
	{"has no value", "partial_expression_as_value"},
	{"mismatched", "branch_type_mismatch"},
	{"case statement type not computable", "untypable"},
	{"missing expression for aggregate function", "missing_aggregate_expression"},
	{"cannot filter a field with an aggregate computation", "aggregate_filter_misuse"},
	{"malformed", "malformed_time_literal"},
}

// ClassifyDiagnostic maps a recorded Diagnostic's message back to the
// stable Kind name it was logged from, for use as a bounded-cardinality
// metrics label. ErrAggregateMisuse messages are themselves free-form
// (the Kind is just "%s") and always classify as "aggregate_misuse" by
// elimination.
func ClassifyDiagnostic(message string) string {
	for _, nk := range namedKinds {
		if strings.Contains(message, nk.prefix) {
			return nk.name
		}
	}
	return "aggregate_misuse"
}

// PanicUnreachable panics with a stack-carrying error for conditions the
// type system is supposed to make impossible — an Operator value
// ApplyBinary's switch doesn't recognize, a node reached in a code path
// its own apply-mode override should have intercepted. A recovering
// caller (there isn't one in this module; a host process wrapping
// CompileExpression might add one) gets a real stack trace via
// github.com/pkg/errors instead of a bare string.
func PanicUnreachable(message string) {
	panic(pkgerrors.New(message))
}
