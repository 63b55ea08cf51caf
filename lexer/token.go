/*
 * buildexpr
 *
 * Copyright 2024 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package lexer

import (
	"fmt"

	"devt.de/krotik/buildexpr/span"
)

/*
Kind identifies the kind of a Token. The set is closed - spec.md §3 lists
every member.
*/
type Kind int

/*
Token kinds.
*/
const (
	Unknown Kind = iota
	EndOfInput

	// Structural

	LParen
	RParen
	LBracket
	RBracket
	Comma
	Semicolon
	Dot
	Arrow
	DoubleColon

	// Sigils

	Dollar
	At
	Percent

	// Relational

	Eq
	Ne
	Lt
	Le
	Gt
	Ge

	// Logical

	Not
	And
	Or

	// Literals

	String
	Number

	// Identifier

	Identifier
)

var kindNames = map[Kind]string{
	Unknown:     "Unknown",
	EndOfInput:  "EndOfInput",
	LParen:      "LParen",
	RParen:      "RParen",
	LBracket:    "LBracket",
	RBracket:    "RBracket",
	Comma:       "Comma",
	Semicolon:   "Semicolon",
	Dot:         "Dot",
	Arrow:       "Arrow",
	DoubleColon: "DoubleColon",
	Dollar:      "Dollar",
	At:          "At",
	Percent:     "Percent",
	Eq:          "Eq",
	Ne:          "Ne",
	Lt:          "Lt",
	Le:          "Le",
	Gt:          "Gt",
	Ge:          "Ge",
	Not:         "Not",
	And:         "And",
	Or:          "Or",
	String:      "String",
	Number:      "Number",
	Identifier:  "Identifier",
}

/*
String returns the token kind's name, used in error messages and tests.
*/
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

/*
Flags is a bit-set of presence flags carried by String tokens.
*/
type Flags uint8

/*
Flag bits. A String token's Flags report which sigils appear somewhere in
its interior, so the parser can skip the expandable-string sub-parser
entirely for literals with no embedded reference or escape.
*/
const (
	ContainsPercent Flags = 1 << iota
	ContainsDollar
	ContainsAtSign
)

/*
Has reports whether f includes the bit other.
*/
func (f Flags) Has(other Flags) bool {
	return f&other != 0
}

/*
Token is an immutable atomic lexer token: a kind, a source span, and a
flag set (meaningful only for String tokens).
*/
type Token struct {
	Kind  Kind
	Span  span.Span
	Flags Flags
}

/*
String returns a debug representation of this token.
*/
func (t Token) String() string {
	if t.Kind == String || t.Kind == Number || t.Kind == Identifier {
		return fmt.Sprintf("%s(%q)", t.Kind, t.Span.Text)
	}
	return t.Kind.String()
}
