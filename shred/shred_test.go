/*
 * buildexpr
 *
 * Copyright 2024 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package shred

import (
	"reflect"
	"testing"
)

func TestReferencedItemExpressionsSingleVector(t *testing.T) {
	items, err := ReferencedItemExpressions(`@(Compile->'%(FullPath)', ';')`)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one item expression, got %d", len(items))
	}

	ie := items[0]
	if ie.ItemType != "Compile" {
		t.Errorf("unexpected item type: %q", ie.ItemType)
	}
	if ie.Text != `@(Compile->'%(FullPath)', ';')` {
		t.Errorf("unexpected raw text: %q", ie.Text)
	}
	if len(ie.Transforms) != 1 {
		t.Fatalf("expected one transform capture, got %d", len(ie.Transforms))
	}
	if !ie.HasSeparator || ie.SeparatorText != "';'" {
		t.Errorf("expected a separator spanning ';', got %+v", ie)
	}
}

func TestReferencedItemExpressionsCapturesBareFunctionCall(t *testing.T) {
	items, err := ReferencedItemExpressions(`@(Compile->Filter(Extension, '.cs'))`)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || len(items[0].Transforms) != 1 {
		t.Fatalf("unexpected shape: %+v", items)
	}

	tr := items[0].Transforms[0]
	if tr.FunctionName != "Filter" {
		t.Errorf("unexpected function name: %q", tr.FunctionName)
	}
	if !reflect.DeepEqual(tr.ArgumentTexts, []string{"Extension", "'.cs'"}) {
		t.Errorf("unexpected argument texts: %v", tr.ArgumentTexts)
	}
}

func TestReferencedItemExpressionsFindsNestedVectors(t *testing.T) {
	items, err := ReferencedItemExpressions(`'$(A)' == 'x' and @(B)`)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ItemType != "B" {
		t.Fatalf("expected to find the nested item vector @(B), got %+v", items)
	}
}

func TestContainsMetadataOutsideTransformTrueAtTopLevel(t *testing.T) {
	found, err := ContainsMetadataOutsideTransform(`'$(X)' == '%(Foo)'`)
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Error("expected a top-level metadata reference to be found")
	}
}

func TestContainsMetadataOutsideTransformFalseInsideTransform(t *testing.T) {
	found, err := ContainsMetadataOutsideTransform(`@(Compile->'%(FullPath)')`)
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("expected a metadata reference inside a transform to not count")
	}
}

func TestReferencedNamesDeduplicatesCaseInsensitively(t *testing.T) {
	items, metadata, err := ReferencedNames(`@(Compile) == @(compile) and '%(Compile.FullPath)'`)
	if err != nil {
		t.Fatal(err)
	}

	if len(items) != 1 || items[0] != "Compile" {
		t.Errorf("expected one deduplicated item name 'Compile', got %v", items)
	}

	ref, ok := metadata["compile.fullpath"]
	if !ok {
		t.Fatalf("expected a metadata entry for compile.fullpath, got %v", metadata)
	}
	if ref.ItemName != "Compile" || ref.MetadataName != "FullPath" {
		t.Errorf("unexpected metadata entry: %+v", ref)
	}
}

func TestReferencedNamesAcrossSourcesDeduplicatesAcrossTheWholeList(t *testing.T) {
	items, metadata, err := ReferencedNamesAcrossSources([]string{
		`@(Compile)`,
		`@(compile) == '%(Compile.FullPath)'`,
		`@(Link)`,
	})
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(items, []string{"Compile", "Link"}) {
		t.Errorf("expected item names deduplicated across sources, got %v", items)
	}

	if ref, ok := metadata["compile.fullpath"]; !ok || ref.ItemName != "Compile" {
		t.Errorf("expected a metadata entry carried over from the second source, got %v", metadata)
	}
}

func TestReferencedNamesAcrossSourcesFailsOnFirstBadSource(t *testing.T) {
	_, _, err := ReferencedNamesAcrossSources([]string{`@(A)`, `@(`})
	if err == nil {
		t.Fatal("expected a parse error from the second, malformed source")
	}
}

func TestSplitOnTopLevelSemicolons(t *testing.T) {
	got := SplitOnTopLevelSemicolons(`a;@(B, ';');c`)
	want := []string{"a", "@(B, ';')", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSplitOnTopLevelSemicolonsSingleSliceWhenNoSemicolon(t *testing.T) {
	got := SplitOnTopLevelSemicolons(`a == b`)
	if len(got) != 1 || got[0] != "a == b" {
		t.Errorf("expected a single slice for input with no semicolons, got %v", got)
	}
}

func TestSplitOnTopLevelSemicolonsWhitespaceOnlyTokenYieldedVerbatim(t *testing.T) {
	got := SplitOnTopLevelSemicolons(`a;   ;b`)
	want := []string{"a", "   ", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
