/*
 * buildexpr
 *
 * Copyright 2024 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package ast

import "fmt"

/*
Equals checks whether a and b are structurally identical (same node kinds,
same child structure, same literal/text values). If ignoreSpans is true,
source positions are not compared - useful when comparing two parses of
differently-offset but textually-identical sub-expressions. It also
returns a message describing the first difference found.
*/
func Equals(a, b Node, ignoreSpans bool) (bool, string) {
	if a == nil || b == nil {
		if a == nil && b == nil {
			return true, ""
		}
		return false, fmt.Sprintf("one side is nil: %v vs %v", a, b)
	}

	if !ignoreSpans && a.Span() != b.Span() {
		return false, fmt.Sprintf("span differs: %v vs %v", a.Span(), b.Span())
	}

	switch x := a.(type) {
	case *StringLiteral:
		y, ok := b.(*StringLiteral)
		if !ok {
			return false, kindMismatch(a, b)
		}
		if x.ValueSpan.Text != y.ValueSpan.Text {
			return false, fmt.Sprintf("string value differs: %q vs %q", x.ValueSpan.Text, y.ValueSpan.Text)
		}
		return true, ""

	case *NumericLiteral:
		y, ok := b.(*NumericLiteral)
		if !ok {
			return false, kindMismatch(a, b)
		}
		if x.Sp.Text != y.Sp.Text {
			return false, fmt.Sprintf("number text differs: %q vs %q", x.Sp.Text, y.Sp.Text)
		}
		return true, ""

	case *SimpleText:
		y, ok := b.(*SimpleText)
		if !ok {
			return false, kindMismatch(a, b)
		}
		if x.Sp.Text != y.Sp.Text {
			return false, fmt.Sprintf("text differs: %q vs %q", x.Sp.Text, y.Sp.Text)
		}
		return true, ""

	case *EscapedText:
		y, ok := b.(*EscapedText)
		if !ok {
			return false, kindMismatch(a, b)
		}
		if x.UnescapedText != y.UnescapedText {
			return false, fmt.Sprintf("unescaped text differs: %q vs %q", x.UnescapedText, y.UnescapedText)
		}
		return true, ""

	case *CompositeString:
		y, ok := b.(*CompositeString)
		if !ok {
			return false, kindMismatch(a, b)
		}
		return equalsNodeSlices(x.Parts, y.Parts, ignoreSpans)

	case *PropertyReference:
		y, ok := b.(*PropertyReference)
		if !ok {
			return false, kindMismatch(a, b)
		}
		return Equals(x.Inner, y.Inner, ignoreSpans)

	case *Transform:
		y, ok := b.(*Transform)
		if !ok {
			return false, kindMismatch(a, b)
		}
		return Equals(x.Expr, y.Expr, ignoreSpans)

	case *ItemVector:
		y, ok := b.(*ItemVector)
		if !ok {
			return false, kindMismatch(a, b)
		}
		if x.ItemType.Span.Text != y.ItemType.Span.Text {
			return false, fmt.Sprintf("item type differs: %q vs %q", x.ItemType.Span.Text, y.ItemType.Span.Text)
		}
		if len(x.Transforms) != len(y.Transforms) {
			return false, "transform count differs"
		}
		for i := range x.Transforms {
			if ok, msg := Equals(x.Transforms[i], y.Transforms[i], ignoreSpans); !ok {
				return false, msg
			}
		}
		if (x.Separator == nil) != (y.Separator == nil) {
			return false, "separator presence differs"
		}
		if x.Separator != nil {
			return Equals(x.Separator, y.Separator, ignoreSpans)
		}
		return true, ""

	case *MetadataReference:
		y, ok := b.(*MetadataReference)
		if !ok {
			return false, kindMismatch(a, b)
		}
		if (x.ItemType == nil) != (y.ItemType == nil) {
			return false, "item-type presence differs"
		}
		if x.ItemType != nil && x.ItemType.Span.Text != y.ItemType.Span.Text {
			return false, "item-type differs"
		}
		if x.MetadataName.Span.Text != y.MetadataName.Span.Text {
			return false, "metadata name differs"
		}
		return true, ""

	case *Identifier:
		y, ok := b.(*Identifier)
		if !ok {
			return false, kindMismatch(a, b)
		}
		if x.NameToken.Span.Text != y.NameToken.Span.Text {
			return false, fmt.Sprintf("identifier differs: %q vs %q", x.NameToken.Span.Text, y.NameToken.Span.Text)
		}
		return true, ""

	case *MemberAccess:
		y, ok := b.(*MemberAccess)
		if !ok {
			return false, kindMismatch(a, b)
		}
		if x.MemberName.Span.Text != y.MemberName.Span.Text {
			return false, "member name differs"
		}
		return Equals(x.Target, y.Target, ignoreSpans)

	case *StaticMemberAccess:
		y, ok := b.(*StaticMemberAccess)
		if !ok {
			return false, kindMismatch(a, b)
		}
		if x.Type.Name.Span.Text != y.Type.Name.Span.Text || x.Type.Qualified != y.Type.Qualified ||
			x.Type.Namespace.Text != y.Type.Namespace.Text {
			return false, "static type differs"
		}
		if x.MemberName.Span.Text != y.MemberName.Span.Text {
			return false, "static member name differs"
		}
		return true, ""

	case *FunctionCall:
		y, ok := b.(*FunctionCall)
		if !ok {
			return false, kindMismatch(a, b)
		}
		if ok, msg := Equals(x.Receiver, y.Receiver, ignoreSpans); !ok {
			return false, msg
		}
		return equalsNodeSlices(x.Arguments, y.Arguments, ignoreSpans)

	case *BinaryOperator:
		y, ok := b.(*BinaryOperator)
		if !ok {
			return false, kindMismatch(a, b)
		}
		if x.Kind != y.Kind {
			return false, fmt.Sprintf("operator differs: %v vs %v", x.Kind, y.Kind)
		}
		if ok, msg := Equals(x.Left, y.Left, ignoreSpans); !ok {
			return false, msg
		}
		return Equals(x.Right, y.Right, ignoreSpans)

	case *UnaryOperator:
		y, ok := b.(*UnaryOperator)
		if !ok {
			return false, kindMismatch(a, b)
		}
		return Equals(x.Operand, y.Operand, ignoreSpans)
	}

	return false, fmt.Sprintf("unhandled node kind %T", a)
}

func equalsNodeSlices(xs, ys []Node, ignoreSpans bool) (bool, string) {
	if len(xs) != len(ys) {
		return false, fmt.Sprintf("child count differs: %d vs %d", len(xs), len(ys))
	}
	for i := range xs {
		if ok, msg := Equals(xs[i], ys[i], ignoreSpans); !ok {
			return false, msg
		}
	}
	return true, ""
}

func kindMismatch(a, b Node) string {
	return fmt.Sprintf("node kind differs: %T vs %T", a, b)
}
