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
	"encoding/json"
	"testing"

	"devt.de/krotik/buildexpr/lexer"
	"devt.de/krotik/buildexpr/span"
)

func roundTrip(t *testing.T, n Node) Node {
	t.Helper()

	obj := ToJSONObject(n)

	raw, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	got, err := FromJSONObject(decoded)
	if err != nil {
		t.Fatalf("FromJSONObject failed: %v", err)
	}
	return got
}

func TestJSONRoundTripIdentifier(t *testing.T) {
	orig := ident("Configuration")
	got := roundTrip(t, orig)
	if ok, msg := Equals(orig, got, false); !ok {
		t.Fatalf("round trip mismatch: %s", msg)
	}
}

func TestJSONRoundTripBinaryOperator(t *testing.T) {
	orig := &BinaryOperator{
		Kind:  OpAnd,
		Left:  ident("A"),
		Right: ident("B"),
		Op:    lexer.Token{Kind: lexer.And, Span: span.New("and", 0, 3)},
		Sp:    span.New("A and B", 0, 7),
	}
	got := roundTrip(t, orig)
	if ok, msg := Equals(orig, got, false); !ok {
		t.Fatalf("round trip mismatch: %s", msg)
	}
}

func TestJSONRoundTripItemVectorWithSeparator(t *testing.T) {
	orig := &ItemVector{
		ItemType: lexer.Token{Kind: lexer.Identifier, Span: span.New("Compile", 0, 7)},
		Transforms: []*Transform{
			{Expr: ident("X"), Sp: span.New("->X", 0, 3)},
		},
		Separator: &StringLiteral{OuterSpan: span.New("';'", 0, 3), ValueSpan: span.New("';'", 1, 1)},
		Sp:        span.New("@(Compile->X, ';')", 0, 18),
	}
	got := roundTrip(t, orig)
	if ok, msg := Equals(orig, got, false); !ok {
		t.Fatalf("round trip mismatch: %s", msg)
	}
}

func TestJSONRoundTripFunctionCallOnMemberAccess(t *testing.T) {
	target := &MemberAccess{
		Target:     ident("Path"),
		MemberName: lexer.Token{Kind: lexer.Identifier, Span: span.New("GetFullPath", 0, 11)},
		Sp:         span.New("Path.GetFullPath", 0, 16),
	}
	orig := &FunctionCall{
		Receiver:  target,
		Arguments: []Node{&StringLiteral{OuterSpan: span.New("'x'", 0, 3), ValueSpan: span.New("'x'", 1, 1)}},
		Sp:        span.New("Path.GetFullPath('x')", 0, 21),
	}
	got := roundTrip(t, orig)
	if ok, msg := Equals(orig, got, false); !ok {
		t.Fatalf("round trip mismatch: %s", msg)
	}
}

func TestJSONRoundTripStaticMemberAccess(t *testing.T) {
	orig := &StaticMemberAccess{
		Type: TypeName{
			Namespace: span.New("System.IO", 0, 9),
			Name:      lexer.Token{Kind: lexer.Identifier, Span: span.New("System.IO.Path", 10, 4)},
			Sp:        span.New("System.IO.Path", 0, 14),
			Qualified: true,
		},
		MemberName: lexer.Token{Kind: lexer.Identifier, Span: span.New("[System.IO.Path]::DirectorySeparatorChar", 18, 22)},
		Sp:         span.New("[System.IO.Path]::DirectorySeparatorChar", 0, 40),
	}
	got := roundTrip(t, orig)
	if ok, msg := Equals(orig, got, false); !ok {
		t.Fatalf("round trip mismatch: %s", msg)
	}
}

func TestJSONRoundTripMetadataReferenceUnqualified(t *testing.T) {
	orig := &MetadataReference{
		MetadataName: lexer.Token{Kind: lexer.Identifier, Span: span.New("FullPath", 0, 8)},
		Sp:           span.New("%(FullPath)", 0, 11),
	}
	got := roundTrip(t, orig)
	if ok, msg := Equals(orig, got, false); !ok {
		t.Fatalf("round trip mismatch: %s", msg)
	}
}

func TestFromJSONObjectRejectsUnknownKind(t *testing.T) {
	_, err := FromJSONObject(map[string]interface{}{"kind": "not-a-real-kind"})
	if err == nil {
		t.Fatalf("expected an error for an unrecognised kind")
	}
}
