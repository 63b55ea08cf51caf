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
Package span defines the immutable source-position handle shared by every
token and AST node produced by this module.
*/
package span

import "fmt"

/*
Span is an immutable handle over a region of a source string. It never
holds a copy of the text - Text is always a sub-slice of the string that
was originally handed to the lexer, so the source must outlive every Span
derived from it.
*/
type Span struct {
	Start int    // Start offset in the source (bytes)
	Len    int    // Length of the region (bytes)
	Text  string // The region's text (Text == source[Start:Start+Len])
}

/*
New creates a Span describing source[start : start+length].
*/
func New(source string, start int, length int) Span {
	return Span{start, length, source[start : start+length]}
}

/*
End returns the exclusive end offset of this span.
*/
func (s Span) End() int {
	return s.Start + s.Len
}

/*
Slice returns a sub-span whose start is offset bytes into this span and
which runs to the end of this span.
*/
func (s Span) Slice(offset int) Span {
	return Span{s.Start + offset, s.Len - offset, s.Text[offset:]}
}

/*
SliceLen returns a sub-span whose start is offset bytes into this span and
whose length is the given length.
*/
func (s Span) SliceLen(offset int, length int) Span {
	return Span{s.Start + offset, length, s.Text[offset : offset+length]}
}

/*
Cover returns the smallest Span which contains both s and other. source must
be the same source string both spans were derived from - a string's
sub-slices cannot be re-sliced wider than themselves, so recovering the
combined text requires going back to the original.
*/
func (s Span) Cover(source string, other Span) Span {
	start := s.Start
	if other.Start < start {
		start = other.Start
	}

	end := s.End()
	if other.End() > end {
		end = other.End()
	}

	return New(source, start, end-start)
}

/*
String returns a debug representation of this span.
*/
func (s Span) String() string {
	return fmt.Sprintf("%d:%d %q", s.Start, s.Len, s.Text)
}
