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

import (
	"strings"
	"testing"

	"devt.de/krotik/buildexpr/lexer"
	"devt.de/krotik/buildexpr/span"
)

func TestPrintIdentifier(t *testing.T) {
	got := Print(ident("Configuration"))
	if !strings.Contains(got, "identifier: Configuration") {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestPrintBinaryOperatorNestsChildren(t *testing.T) {
	n := &BinaryOperator{
		Kind:  OpEq,
		Left:  ident("A"),
		Right: ident("B"),
		Op:    lexer.Token{Kind: lexer.Eq, Span: span.New("==", 0, 2)},
		Sp:    span.New("A==B", 0, 4),
	}
	got := Print(n)
	if !strings.Contains(got, "==") {
		t.Fatalf("expected operator spelling in output, got: %q", got)
	}
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (operator + two operands), got %d: %q", len(lines), got)
	}
	if !strings.HasPrefix(lines[1], "  ") || !strings.HasPrefix(lines[2], "  ") {
		t.Fatalf("expected operand lines to be indented, got: %q", got)
	}
}

func TestPrintUnaryOperator(t *testing.T) {
	n := &UnaryOperator{
		Op:      lexer.Token{Kind: lexer.Not, Span: span.New("!", 0, 1)},
		Operand: ident("X"),
		Sp:      span.New("!X", 0, 2),
	}
	got := Print(n)
	if !strings.Contains(got, "not") {
		t.Fatalf("expected 'not' in output, got: %q", got)
	}
}

func TestPrintItemVectorWithTransformAndSeparator(t *testing.T) {
	n := &ItemVector{
		ItemType: lexer.Token{Kind: lexer.Identifier, Span: span.New("Compile", 0, 7)},
		Transforms: []*Transform{
			{Expr: ident("X"), Sp: span.New("->X", 0, 3)},
		},
		Separator: &StringLiteral{OuterSpan: span.New("';'", 0, 3), ValueSpan: span.New("';'", 1, 1)},
		Sp:        span.New("@(Compile->X, ';')", 0, 18),
	}
	got := Print(n)
	if !strings.Contains(got, "item-vector: Compile") {
		t.Fatalf("expected item-vector header, got: %q", got)
	}
	if !strings.Contains(got, "separator") {
		t.Fatalf("expected separator section, got: %q", got)
	}
}

func TestStringMethodDelegatesToPrint(t *testing.T) {
	n := ident("Foo")
	if n.String() != Print(n) {
		t.Fatalf("String() should delegate to Print")
	}
}
