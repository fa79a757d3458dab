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

// Operator is a binary operator recognized by the applyBinary engine.
type Operator string

const (
	Eq       Operator = "="
	Neq      Operator = "!="
	Lt       Operator = "<"
	Lte      Operator = "<="
	Gt       Operator = ">"
	Gte      Operator = ">="
	Add      Operator = "+"
	Sub      Operator = "-"
	Mul      Operator = "*"
	Div      Operator = "/"
	And      Operator = "and"
	Or       Operator = "or"
	Match    Operator = "~"
	NotMatch Operator = "!~"
)

// Node is the contract every expression AST variant implements. The AST
// is a tree: each node owns its children and there are no cycles.
//
// Translate attempts to produce this node's value under fs, recording any
// diagnosable condition to sink. ok is false exactly for partial
// expressions (alternation trees, ranges, else-less picks) that cannot
// self-evaluate; callers must not treat ok==false as an error — a partial
// expression is only an error if something tries to use it as a value
// without first combining it via Apply.
//
// Apply composes this node as the right-hand operand of op against left,
// implementing spec.md's right-biased "apply is a method on the
// right-hand node" dispatch rule. The default behavior (BinaryNumeric,
// BinaryBoolean and friends) simply delegates to ApplyBinary; Range,
// ExprAlternationTree and Pick override it to implement partial-expression
// semantics.
type Node interface {
	ElementType() string
	Location() SourceLocation
	Translate(fs FieldSpace, sink *Sink) (ExprValue, bool)
	Apply(fs FieldSpace, sink *Sink, op Operator, left Node) ExprValue
}

// Base is embedded by every concrete node and supplies the bookkeeping
// common to all of them: a human-readable element-type tag, a source
// location for diagnostics, and the acceptable operand shapes. Base itself
// implements neither Translate nor Apply — concrete nodes must supply
// both, even if only by delegating to DefaultApply.
type Base struct {
	Element         string
	Loc             SourceLocation
	LegalChildTypes []TypeShape
}

func (b Base) ElementType() string      { return b.Element }
func (b Base) Location() SourceLocation { return b.Loc }

// Log records a diagnostic against this node's source location.
func (b Base) Log(sink *Sink, message string) {
	sink.Log(b.Loc, message)
}

// DefaultApply is the behavior every node gets for Apply unless it
// overrides it to implement partial-expression semantics: translate both
// sides as plain values and hand them to ApplyBinary. rightNode is the
// receiver (the node Apply was called on); it is used to attach
// diagnostics raised by ApplyBinary's type checks.
func DefaultApply(fs FieldSpace, sink *Sink, leftNode Node, op Operator, rightNode Node) ExprValue {
	left, leftOK := leftNode.Translate(fs, sink)
	if !leftOK {
		sink.Log(leftNode.Location(), ErrPartialExpressionAsValue.New(leftNode.ElementType()).Error())
		return ErrorFor("partial expression used as value")
	}
	right, rightOK := rightNode.Translate(fs, sink)
	if !rightOK {
		sink.Log(rightNode.Location(), ErrPartialExpressionAsValue.New(rightNode.ElementType()).Error())
		return ErrorFor("partial expression used as value")
	}
	return ApplyBinary(fs, sink, rightNode, left, op, right)
}
