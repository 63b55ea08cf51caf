/*
 * buildexpr
 *
 * Copyright 2024 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package parser

import (
	"devt.de/krotik/buildexpr/bufpool"
	"devt.de/krotik/buildexpr/config"
	"devt.de/krotik/buildexpr/lexer"
)

/*
laBuffer is a look-ahead window over a Lexer's token stream, in the
spirit of the teacher's LABuffer. Where the teacher's buffer wraps a
fixed-size devt.de/krotik/common/datautil.RingBuffer fed by a goroutine
over a channel, this one is fed by direct, synchronous calls to Lexer.Next
and grows on demand: consumed entries are never dropped, so the buffer
holds every token read so far and grows with the input, which a ring of
fixed size cannot do. The parser itself only reads the current token
(peek(0)). bufpool.Buffer already gives
this module a pooled growable array - reusing it here keeps the
look-ahead window itself allocation-light.
*/
/*
laEntry pairs a token with the lexical error (if any) that Next() reported
while producing it. The lexer only keeps the error from its most recent
Next() call, which read-ahead would otherwise clobber by the time the
parser gets around to consuming an earlier buffered token - so the
buffer captures it eagerly, right next to the token it belongs to.
*/
type laEntry struct {
	tok lexer.Token
	err error
}

type laBuffer struct {
	lex *lexer.Lexer
	buf *bufpool.Buffer // holds laEntry, oldest (already consumed) first
	pos int             // index into buf of the next unconsumed token
}

func newLABuffer(lex *lexer.Lexer) *laBuffer {
	b := &laBuffer{lex: lex, buf: bufpool.New(config.Int(config.LookAheadSize))}
	b.fill()
	return b
}

func (b *laBuffer) fill() {
	tok := b.lex.Next()
	b.buf.Add(laEntry{tok: tok, err: b.lex.Err()})
}

func (b *laBuffer) fillTo(offset int) {
	for b.buf.Len()-b.pos <= offset {
		b.fill()
	}
}

/*
peek returns the token offset positions ahead of the next unconsumed
token, without consuming anything. peek(0) is the current token.
*/
func (b *laBuffer) peek(offset int) lexer.Token {
	b.fillTo(offset)
	return b.buf.At(b.pos + offset).(laEntry).tok
}

/*
peekErr returns the lexical error (if any) associated with the token
offset positions ahead of the next unconsumed token.
*/
func (b *laBuffer) peekErr(offset int) error {
	b.fillTo(offset)
	return b.buf.At(b.pos + offset).(laEntry).err
}

/*
current is shorthand for peek(0).
*/
func (b *laBuffer) current() lexer.Token {
	return b.peek(0)
}

/*
currentErr is shorthand for peekErr(0).
*/
func (b *laBuffer) currentErr() error {
	return b.peekErr(0)
}

/*
advance consumes and returns the current token.
*/
func (b *laBuffer) advance() lexer.Token {
	tok := b.current()
	b.pos++
	return tok
}

func (b *laBuffer) dispose() {
	b.buf.Dispose()
}
