/*
 * buildexpr
 *
 * Copyright 2024 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package span

import "testing"

func TestNewAndEnd(t *testing.T) {
	src := "hello world"
	s := New(src, 6, 5)

	if s.Text != "world" {
		t.Error("unexpected text:", s.Text)
	}
	if s.End() != 11 {
		t.Error("unexpected end:", s.End())
	}
}

func TestSlice(t *testing.T) {
	src := "$(Foo)"
	s := New(src, 0, 6)

	inner := s.Slice(2)
	if inner.Text != "Foo)" || inner.Start != 2 {
		t.Error("unexpected slice:", inner)
	}

	innerLen := s.SliceLen(2, 3)
	if innerLen.Text != "Foo" || innerLen.Start != 2 || innerLen.Len != 3 {
		t.Error("unexpected slice len:", innerLen)
	}
}

func TestCover(t *testing.T) {
	src := "a == b"
	left := New(src, 0, 1)
	right := New(src, 5, 1)

	c := left.Cover(src, right)

	if c.Start != 0 || c.Len != 6 || c.Text != src {
		t.Error("unexpected cover:", c)
	}

	// Order independence

	c2 := right.Cover(src, left)
	if c2 != c {
		t.Error("cover should be symmetric:", c2, "vs", c)
	}
}
