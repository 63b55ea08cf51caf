/*
 * buildexpr
 *
 * Copyright 2024 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package classify

import "testing"

func TestIdentifierPredicates(t *testing.T) {
	if !IsIdentifierStart('_') || !IsIdentifierStart('A') || !IsIdentifierStart('é') {
		t.Error("identifier start predicate rejected a valid start rune")
	}
	if IsIdentifierStart('1') || IsIdentifierStart('-') {
		t.Error("identifier start predicate accepted an invalid start rune")
	}
	if !IsIdentifierContinue('-') || !IsIdentifierContinue('9') {
		t.Error("identifier continue predicate rejected a valid continue rune")
	}
}

func TestNumberStart(t *testing.T) {
	for _, r := range []rune{'0', '9', '+', '-', '.'} {
		if !IsNumberStart(r) {
			t.Errorf("expected %q to start a number", r)
		}
	}
	if IsNumberStart('a') {
		t.Error("letter should not start a number")
	}
}

func TestHexValue(t *testing.T) {
	cases := map[rune]int{'0': 0, '9': 9, 'a': 10, 'f': 15, 'A': 10, 'F': 15}
	for r, want := range cases {
		got, ok := HexValue(r)
		if !ok || got != want {
			t.Errorf("HexValue(%q) = %v, %v; want %v, true", r, got, ok, want)
		}
	}
	if _, ok := HexValue('g'); ok {
		t.Error("expected 'g' to not be a hex digit")
	}
}

func TestDecodeHexByte(t *testing.T) {
	b, ok := DecodeHexByte('2', '0')
	if !ok || b != 0x20 {
		t.Errorf("DecodeHexByte('2','0') = %v, %v; want 0x20, true", b, ok)
	}
	if _, ok := DecodeHexByte('z', '0'); ok {
		t.Error("expected invalid hex digit to fail")
	}
}
