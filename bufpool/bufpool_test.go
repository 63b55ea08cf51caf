/*
 * buildexpr
 *
 * Copyright 2024 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package bufpool

import "testing"

func TestAddAndGrow(t *testing.T) {
	b := New(2)
	defer b.Dispose()

	for i := 0; i < 10; i++ {
		b.Add(i)
	}

	if b.Len() != 10 {
		t.Fatalf("expected length 10, got %d", b.Len())
	}
	for i := 0; i < 10; i++ {
		if b.At(i) != i {
			t.Errorf("At(%d) = %v, want %v", i, b.At(i), i)
		}
	}
}

func TestInsertPreservesGap(t *testing.T) {
	b := New(0)
	defer b.Dispose()

	b.AddRange([]interface{}{1, 2, 4, 5})
	b.Insert(2, 3)

	want := []interface{}{1, 2, 3, 4, 5}
	got := b.Detach()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: %v vs %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRemoveAt(t *testing.T) {
	b := New(0)
	defer b.Dispose()

	b.AddRange([]interface{}{1, 2, 3})
	b.RemoveAt(1)

	got := b.Detach()
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("unexpected contents after RemoveAt: %v", got)
	}
}

func TestClearKeepsBacking(t *testing.T) {
	b := New(4)
	b.AddRange([]interface{}{1, 2, 3})
	b.Clear()

	if b.Len() != 0 {
		t.Errorf("expected empty buffer after Clear, got len %d", b.Len())
	}
	b.Add(9)
	if b.Len() != 1 || b.At(0) != 9 {
		t.Errorf("buffer unusable after Clear")
	}
	b.Dispose()
}

func TestDetachIsIndependent(t *testing.T) {
	b := New(0)
	b.AddRange([]interface{}{1, 2, 3})

	copy1 := b.Detach()
	b.Add(4)

	if len(copy1) != 3 {
		t.Errorf("Detach snapshot mutated by later Add: %v", copy1)
	}
	b.Dispose()
}

func TestBorrowDoesNotReturnScratchToPool(t *testing.T) {
	scratch := make([]interface{}, 0, 4)
	b := Borrow(scratch)
	b.AddRange([]interface{}{1, 2})

	if b.Len() != 2 {
		t.Fatalf("expected 2 elements, got %d", b.Len())
	}

	b.Dispose()
}

func TestScopeDisposesOnPanic(t *testing.T) {
	var scoped *Buffer

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic to propagate through Scope")
		}
		if scoped == nil || scoped.data != nil {
			t.Error("expected Scope to dispose the buffer while the panic unwound")
		}
	}()

	Scope(2, func(b *Buffer) {
		scoped = b
		b.Add(1)
		panic("boom")
	})
}
