/*
 * buildexpr
 *
 * Copyright 2024 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

/*
Package shred implements spec.md §4.6's read-only projections over a parsed
expression: narrow views that answer one question about an expression
without handing the caller a full AST to walk themselves. Every projection
here is built on top of a real parser.Parse call, so by construction it
agrees with the full parser for any well-formed input - there is no
second, independently-maintained scan to drift out of sync.
*/
package shred

import (
	"devt.de/krotik/buildexpr/ast"
	"devt.de/krotik/buildexpr/parser"
)

/*
TransformCapture describes one "-> expression" step of an item vector. If
the transform expression is a bare identifier call (e.g. "-> Foo(a, b)"),
FunctionName and ArgumentTexts are populated; otherwise FunctionName is
empty and the transform's raw text is all a caller gets.
*/
type TransformCapture struct {
	Start         int
	Len           int
	Text          string
	FunctionName  string
	ArgumentTexts []string
}

/*
ItemExpression describes one @( … ) occurrence found anywhere in an
expression, in source order.
*/
type ItemExpression struct {
	Start          int
	Len            int
	Text           string
	ItemType       string
	Transforms     []TransformCapture
	HasSeparator   bool
	SeparatorStart int
	SeparatorText  string
}

/*
ReferencedItemExpressions enumerates every item vector in source, in the
order it appears. It fails exactly when parser.Parse fails.
*/
func ReferencedItemExpressions(source string) ([]ItemExpression, *parser.ParseError) {
	root, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}

	var out []ItemExpression
	collectItemVectors(root, &out)
	return out, nil
}

func collectItemVectors(n ast.Node, out *[]ItemExpression) {
	if n == nil {
		return
	}

	switch v := n.(type) {
	case *ast.ItemVector:
		*out = append(*out, captureItemVector(v))
		for _, tr := range v.Transforms {
			collectItemVectors(tr.Expr, out)
		}
		if v.Separator != nil {
			collectItemVectors(v.Separator, out)
		}

	case *ast.CompositeString:
		for _, part := range v.Parts {
			collectItemVectors(part, out)
		}

	case *ast.PropertyReference:
		collectItemVectors(v.Inner, out)

	case *ast.Transform:
		collectItemVectors(v.Expr, out)

	case *ast.MemberAccess:
		collectItemVectors(v.Target, out)

	case *ast.FunctionCall:
		collectItemVectors(v.Receiver, out)
		for _, arg := range v.Arguments {
			collectItemVectors(arg, out)
		}

	case *ast.BinaryOperator:
		collectItemVectors(v.Left, out)
		collectItemVectors(v.Right, out)

	case *ast.UnaryOperator:
		collectItemVectors(v.Operand, out)
	}
}

func captureItemVector(v *ast.ItemVector) ItemExpression {
	sp := v.Sp

	ie := ItemExpression{
		Start:    sp.Start,
		Len:      sp.Len,
		Text:     sp.Text,
		ItemType: v.ItemType.Span.Text,
	}

	for _, tr := range v.Transforms {
		ie.Transforms = append(ie.Transforms, captureTransform(tr))
	}

	if v.Separator != nil {
		sepSpan := v.Separator.Span()
		ie.HasSeparator = true
		ie.SeparatorStart = sepSpan.Start
		ie.SeparatorText = sepSpan.Text
	}

	return ie
}

func captureTransform(tr *ast.Transform) TransformCapture {
	exprSpan := tr.Expr.Span()

	capture := TransformCapture{
		Start: exprSpan.Start,
		Len:   exprSpan.Len,
		Text:  exprSpan.Text,
	}

	call, ok := tr.Expr.(*ast.FunctionCall)
	if !ok {
		return capture
	}

	ident, ok := call.Receiver.(*ast.Identifier)
	if !ok {
		return capture
	}

	capture.FunctionName = ident.NameToken.Span.Text
	for _, arg := range call.Arguments {
		capture.ArgumentTexts = append(capture.ArgumentTexts, arg.Span().Text)
	}

	return capture
}
