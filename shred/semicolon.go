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
	"devt.de/krotik/buildexpr/lexer"
)

/*
SemicolonTokenizer lazily yields the substrings of an input between
top-level ';' characters, per spec.md §4.6. It runs directly off the
lexer's token stream rather than a full parse: a ';' only splits at
paren/bracket nesting depth zero, and the lexer already folds quoted
literals (which may contain their own ';') into single String tokens, so
tracking depth over LParen/RParen/LBracket/RBracket is sufficient - no
separate quote-awareness is needed here.
*/
type SemicolonTokenizer struct {
	source string
	lex    *lexer.Lexer
	pos    int
	done   bool
}

/*
NewSemicolonTokenizer creates a forward-only tokeniser over source.
*/
func NewSemicolonTokenizer(source string) *SemicolonTokenizer {
	return &SemicolonTokenizer{source: source, lex: lexer.New(source)}
}

/*
Next returns the next top-level slice and true, or ("", false) once every
slice (including the final one, up to end of input) has been yielded.
*/
func (s *SemicolonTokenizer) Next() (string, bool) {
	if s.done {
		return "", false
	}

	start := s.pos
	depth := 0

	for {
		tok := s.lex.Next()

		switch tok.Kind {
		case lexer.LParen, lexer.LBracket:
			depth++

		case lexer.RParen, lexer.RBracket:
			depth--

		case lexer.Semicolon:
			if depth == 0 {
				piece := s.source[start:tok.Span.Start]
				s.pos = tok.Span.End()
				return piece, true
			}

		case lexer.EndOfInput:
			s.done = true
			return s.source[start:], true
		}
	}
}

/*
SplitOnTopLevelSemicolons drains a SemicolonTokenizer into a slice, for
callers that want every slice at once rather than an iterator.
*/
func SplitOnTopLevelSemicolons(source string) []string {
	tok := NewSemicolonTokenizer(source)

	var out []string
	for {
		piece, ok := tok.Next()
		if !ok {
			return out
		}
		out = append(out, piece)
	}
}
