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
Package bufpool provides a scoped, growable buffer backed by a size-class
pool of backing arrays, so the parser can collect child nodes without a
fresh allocation for every production. Every Buffer is single-owner and not
safe to share across goroutines - that is the scope the teacher's own
LABuffer observes, just applied to a growable (not ring-bounded) array.
*/
package bufpool

import (
	"sync"
)

/*
maxCapacity caps the doubling growth strategy. It is far below the 2^31
ceiling spec.md allows, but there is no realistic AST production that
collects anywhere near this many children in one parse.
*/
const maxCapacity = 1 << 20

/*
numClasses is the number of power-of-two size classes the pool keeps
separate free lists for.
*/
const numClasses = 24 // covers capacities 1 .. 1<<23

/*
classPools holds one sync.Pool per size class, indexed by class (0 means
capacity 1, 1 means capacity 2, and so on).
*/
var classPools [numClasses]sync.Pool

func init() {
	for i := range classPools {
		capacity := 1 << uint(i)
		classPools[i] = sync.Pool{
			New: func() interface{} {
				return make([]interface{}, 0, capacity)
			},
		}
	}
}

func classFor(capacity int) int {
	class := 0
	size := 1
	for size < capacity && class < numClasses-1 {
		size <<= 1
		class++
	}
	return class
}

func acquireBacking(capacity int) []interface{} {
	if capacity <= 0 {
		capacity = 1
	}
	class := classFor(capacity)
	buf := classPools[class].Get().([]interface{})
	return buf[:0]
}

func releaseBacking(buf []interface{}) {
	if cap(buf) == 0 {
		return
	}

	// Clear references so pooled storage does not keep element values
	// alive past the buffer's lifetime.

	for i := range buf {
		buf[i] = nil
	}

	class := classFor(cap(buf))
	if cap(buf) == 1<<uint(class) {
		classPools[class].Put(buf[:0])
	}
}

/*
Buffer is a single-owner, growable dynamic array of values. The zero value
is an empty buffer that acquires pooled storage on its first Add (New(0)
returns exactly that); New with a positive capacity or Borrow gives it
initial storage.
*/
type Buffer struct {
	data    []interface{}
	borrowed bool
}

/*
New creates a Buffer with the given initial capacity. Capacity 0 defers
allocation until the first Add.
*/
func New(capacity int) *Buffer {
	if capacity <= 0 {
		return &Buffer{}
	}
	return &Buffer{data: acquireBacking(capacity)}
}

/*
Borrow creates a Buffer backed by a caller-owned scratch slice. The buffer
will only allocate pooled storage once the scratch slice overflows; Dispose
on a borrowed buffer never returns the scratch slice to the pool.
*/
func Borrow(scratch []interface{}) *Buffer {
	return &Buffer{data: scratch[:0], borrowed: true}
}

/*
Len returns the number of live elements.
*/
func (b *Buffer) Len() int {
	return len(b.data)
}

/*
At returns the element at index i. Any index below Len is always valid;
any other use is a programmer error and panics, matching spec.md's
failure semantics for this component.
*/
func (b *Buffer) At(i int) interface{} {
	return b.data[i]
}

/*
Slice returns a read-only view of the live elements. The returned slice
aliases the buffer's backing storage and is invalidated by the next Add,
Insert, RemoveAt, or Dispose call.
*/
func (b *Buffer) Slice() []interface{} {
	return b.data
}

/*
Add appends a single value, growing the backing storage if needed.
*/
func (b *Buffer) Add(v interface{}) {
	b.growFor(1)
	b.data = append(b.data, v)
}

/*
AddRange appends every value in vs.
*/
func (b *Buffer) AddRange(vs []interface{}) {
	b.growFor(len(vs))
	b.data = append(b.data, vs...)
}

/*
Insert inserts v at index i, shifting later elements up by one.
*/
func (b *Buffer) Insert(i int, v interface{}) {
	b.InsertRange(i, []interface{}{v})
}

/*
InsertRange inserts vs starting at index i, shifting later elements up by
len(vs). The insertion gap is preserved across a growth reallocation.
*/
func (b *Buffer) InsertRange(i int, vs []interface{}) {
	if len(vs) == 0 {
		return
	}

	n := len(b.data)
	needed := n + len(vs)

	if needed > cap(b.data) {
		newData := acquireBacking(growCapacity(cap(b.data), needed))
		newData = newData[:needed]
		copy(newData, b.data[:i])
		copy(newData[i:], vs)
		copy(newData[i+len(vs):], b.data[i:])
		old := b.data
		b.data = newData
		b.release(old)
		return
	}

	b.data = b.data[:needed]
	copy(b.data[i+len(vs):], b.data[i:n])
	copy(b.data[i:], vs)
}

/*
RemoveAt removes the element at index i, shifting later elements down by
one.
*/
func (b *Buffer) RemoveAt(i int) {
	b.data[i] = nil
	copy(b.data[i:], b.data[i+1:])
	b.data = b.data[:len(b.data)-1]
}

/*
Clear empties the buffer without releasing its backing storage.
*/
func (b *Buffer) Clear() {
	for i := range b.data {
		b.data[i] = nil
	}
	b.data = b.data[:0]
}

/*
Detach materialises an immutable copy of the live elements, independent of
this buffer's backing storage. This is the spec's to_immutable().
*/
func (b *Buffer) Detach() []interface{} {
	if len(b.data) == 0 {
		return nil
	}
	out := make([]interface{}, len(b.data))
	copy(out, b.data)
	return out
}

/*
Dispose returns this buffer's backing storage to the pool. The buffer must
not be used after Dispose. Disposing a borrowed buffer is a no-op beyond
clearing element references.
*/
func (b *Buffer) Dispose() {
	if b.borrowed {
		b.Clear()
		return
	}
	b.release(b.data)
	b.data = nil
}

func (b *Buffer) release(data []interface{}) {
	if b.borrowed {
		return
	}
	releaseBacking(data)
}

func (b *Buffer) growFor(extra int) {
	needed := len(b.data) + extra
	if needed <= cap(b.data) {
		return
	}

	newData := acquireBacking(growCapacity(cap(b.data), needed))
	newData = append(newData, b.data...)
	old := b.data
	b.data = newData
	b.release(old)
}

/*
growCapacity computes the next backing size as max(2*old, needed, 4),
where needed is the total number of elements the buffer must hold after
the addition, capped at maxCapacity. It does not add old to needed, so
growing a partly filled buffer by more than old elements yields needed
rather than old plus the added count (acquireBacking then rounds up to
the next power-of-two size class). A needed above the cap is an
out-of-memory failure from the pool's perspective, per spec.md's failure
semantics.
*/
func growCapacity(old, needed int) int {
	doubled := old * 2
	if doubled < needed {
		doubled = needed
	}
	if doubled < 4 {
		doubled = 4
	}
	if doubled > maxCapacity {
		if needed > maxCapacity {
			panic(ErrPoolExhausted)
		}
		doubled = maxCapacity
	}
	return doubled
}

/*
ErrPoolExhausted is the pool's abnormal-termination error: a capacity
request exceeded the implementation-defined maximum. Spec.md allows this to
propagate rather than be handled as a normal parse failure.
*/
var ErrPoolExhausted = poolExhaustedError{}

type poolExhaustedError struct{}

func (poolExhaustedError) Error() string {
	return "bufpool: requested capacity exceeds the implementation-defined maximum"
}

/*
Scope runs fn with a freshly acquired Buffer of the given initial capacity
and guarantees the buffer is disposed on every exit path, including a
panic unwinding through fn.
*/
func Scope(capacity int, fn func(*Buffer)) {
	b := New(capacity)
	defer b.Dispose()
	fn(b)
}
