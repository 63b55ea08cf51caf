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
	"devt.de/krotik/buildexpr/ast"
	"devt.de/krotik/buildexpr/classify"
	"devt.de/krotik/buildexpr/lexer"
	"devt.de/krotik/buildexpr/span"
)

/*
parseStringToken turns a lexed String token into either a plain StringLiteral
or, if its interior holds an embedded reference or escape run, a
CompositeString - spec.md §4.5's expandable-string sub-parser. Token.Flags
lets most literals skip this entirely: a String token with no sigil in its
interior is always a StringLiteral.
*/
func (p *parser) parseStringToken(tok lexer.Token) (ast.Node, *ParseError) {
	outer := tok.Span
	interior := outer.SliceLen(1, outer.Len-2)

	if !tok.Flags.Has(lexer.ContainsDollar) &&
		!tok.Flags.Has(lexer.ContainsAtSign) &&
		!tok.Flags.Has(lexer.ContainsPercent) {
		return &ast.StringLiteral{OuterSpan: outer, ValueSpan: interior}, nil
	}

	parts := p.scanExpandableParts(interior)

	if allSimpleText(parts) {
		return &ast.StringLiteral{OuterSpan: outer, ValueSpan: interior}, nil
	}

	return &ast.CompositeString{OuterSpan: outer, Parts: parts}, nil
}

/*
scanExpandableParts walks interior's text left to right, alternating literal
runs and embedded constructs per spec.md §4.5's five-step algorithm. It never
fails outright: an embedded construct that does not parse just falls back to
a single-character SimpleText part and the scan continues.
*/
func (p *parser) scanExpandableParts(interior span.Span) []ast.Node {
	var parts []ast.Node
	text := interior.Text
	pos := 0

	flushSimple := func(from, to int) {
		if to > from {
			parts = append(parts, &ast.SimpleText{Sp: interior.SliceLen(from, to-from)})
		}
	}

	for pos < len(text) {
		next := indexOfSigil(text, pos)
		if next == -1 {
			flushSimple(pos, len(text))
			break
		}

		flushSimple(pos, next)
		pos = next
		sigil := text[pos]

		if sigil == '%' {
			if decoded, consumed := scanEscapeRun(text, pos); consumed > 0 {
				parts = append(parts, &ast.EscapedText{
					UnescapedText: decoded,
					Sp:            interior.SliceLen(pos, consumed),
				})
				pos += consumed
				continue
			}
		}

		if node, consumed, ok := p.trySubParse(interior, pos, sigil); ok {
			parts = append(parts, node)
			pos += consumed
			continue
		}

		parts = append(parts, &ast.SimpleText{Sp: interior.SliceLen(pos, 1)})
		pos++
	}

	return parts
}

/*
trySubParse attempts to parse the construct starting at the sigil byte at
pos (PropertyReference at '$', ItemVector at '@', MetadataReference at '%')
using a fresh sub-parser rooted at the same source string but offset to
pos's absolute position, per spec.md §4.4's span-offset propagation rule.
*/
func (p *parser) trySubParse(interior span.Span, pos int, sigil byte) (ast.Node, int, bool) {
	remainder := interior.Slice(pos)
	sub := newSubParser(p.root, remainder, p.maxDepth, p.log)
	defer sub.dispose()

	var node ast.Node
	var err *ParseError

	switch sigil {
	case '$':
		node, err = sub.parsePropertyReference()
	case '@':
		node, err = sub.parseItemVector()
	case '%':
		node, err = sub.parseMetadataReference()
	default:
		return nil, 0, false
	}

	if err != nil {
		return nil, 0, false
	}

	return node, node.Span().Len, true
}

/*
scanEscapeRun decodes as many consecutive valid %HH triples as it can
starting at pos, returning the concatenated decoded bytes and the number of
source bytes consumed. It returns ("", 0) if text[pos] is not the start of a
valid %HH triple.
*/
func scanEscapeRun(text string, pos int) (string, int) {
	var decoded []byte
	i := pos

	for i+3 <= len(text) && text[i] == '%' {
		b, ok := classify.DecodeHexByte(rune(text[i+1]), rune(text[i+2]))
		if !ok {
			break
		}
		decoded = append(decoded, b)
		i += 3
	}

	if len(decoded) == 0 {
		return "", 0
	}

	return string(decoded), i - pos
}

func indexOfSigil(text string, from int) int {
	for i := from; i < len(text); i++ {
		switch text[i] {
		case '$', '@', '%':
			return i
		}
	}
	return -1
}

func allSimpleText(parts []ast.Node) bool {
	for _, part := range parts {
		if _, ok := part.(*ast.SimpleText); !ok {
			return false
		}
	}
	return true
}
