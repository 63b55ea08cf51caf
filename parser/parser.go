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
Package parser implements the recursive-descent grammar of spec.md §4.4: a
single boolean/error result bubbles up through each production, and on
failure nothing partial escapes - the caller gets a *ParseError and no
tree at all.

Where the teacher (ecal/parser) drives one Pratt-style table of binding
powers shared by every construct, this grammar is small and fixed enough
that each production gets its own function, in the usual recursive-descent
shape; the teacher's influence shows in the error plumbing (newParserError
-> *ParseError), the look-ahead buffer, and the span-rebasing discipline
for sub-parses (spec.md §9's "keep the offset as a field on the parser").
*/
package parser

import (
	"fmt"

	"devt.de/krotik/buildexpr/ast"
	"devt.de/krotik/buildexpr/config"
	"devt.de/krotik/buildexpr/internal/telemetry"
	"devt.de/krotik/buildexpr/lexer"
	"devt.de/krotik/buildexpr/span"
)

/*
parser holds one parse's mutable state: the look-ahead buffer, the root
source string every constructed span is rooted in, this instance's byte
offset into that root (zero unless this parser was spun up to parse a
slice - see spec.md §4.4's "propagating span offsets into sub-parses"),
and the current nesting depth guard.
*/
type parser struct {
	root     string
	offset   int
	la       *laBuffer
	depth    int
	maxDepth int
	log      telemetry.Logger
}

func newParser(source string, log telemetry.Logger) *parser {
	return &parser{
		root:     source,
		offset:   0,
		la:       newLABuffer(lexer.New(source)),
		maxDepth: config.Int(config.MaxNestingDepth),
		log:      log,
	}
}

/*
newSubParser creates a parser over interior (a slice of root), rebasing
every span it produces back into root's coordinate system. It inherits the
parent's Logger, so a sub-parse traces through the same sink as the parse
that spawned it.
*/
func newSubParser(root string, interior span.Span, maxDepth int, log telemetry.Logger) *parser {
	return &parser{
		root:     root,
		offset:   interior.Start,
		la:       newLABuffer(lexer.New(interior.Text)),
		maxDepth: maxDepth,
		log:      log,
	}
}

/*
enter logs entry into the named grammar production and returns a function
that logs its exit; call as "defer p.enter(name)()". With the default
NullLogger this costs two no-op interface calls per production (enter and
leave), not a formatted string - the zero-overhead default SPEC_FULL.md's §2.2 promises.
*/
func (p *parser) enter(production string) func() {
	p.log.LogDebug(production, "enter")
	return func() { p.log.LogDebug(production, "leave") }
}

func (p *parser) rebase(s span.Span) span.Span {
	if p.offset == 0 {
		return s
	}
	return span.New(p.root, p.offset+s.Start, s.Len)
}

func (p *parser) cover(a, b span.Span) span.Span {
	return a.Cover(p.root, b)
}

func (p *parser) current() lexer.Token {
	tok := p.la.current()
	tok.Span = p.rebase(tok.Span)
	return tok
}

func (p *parser) advance() lexer.Token {
	tok := p.la.advance()
	tok.Span = p.rebase(tok.Span)
	return tok
}

func (p *parser) dispose() {
	p.la.dispose()
}

/*
Parse parses source as a complete conditional expression (spec.md §6's
parse entry point). On success it returns the root node and a nil error;
on any failure it returns a nil node and a *ParseError describing the
failing token and its source position. Diagnostic traces go to a
telemetry.NullLogger - zero overhead, and nothing a caller needs to
provide. Use ParseWithLogger to observe them.
*/
func Parse(source string) (ast.Node, *ParseError) {
	return ParseWithLogger(source, telemetry.NewNullLogger())
}

/*
ParseWithLogger is Parse with an explicit Logger. The parser never requires
one - logging is purely an optional tracing aid for embedders (spec.md §7's
propagation policy keeps it separate from the *ParseError returned to the
caller) - but when one is given, every grammar production entered/left is
traced at LogDebug, and a failed parse is reported once at LogError.
*/
func ParseWithLogger(source string, log telemetry.Logger) (ast.Node, *ParseError) {
	if log == nil {
		log = telemetry.NewNullLogger()
	}

	p := newParser(source, log)
	defer p.dispose()

	node, err := p.parseConditional()
	if err == nil {
		if tok := p.current(); tok.Kind != lexer.EndOfInput {
			err = p.failCurrent(ErrUnexpectedToken, "trailing input after expression")
		}
	}

	if err != nil {
		log.LogError(err.Error())
		return nil, err
	}

	return node, nil
}

func (p *parser) failCurrent(structuralErr error, detail string) *ParseError {
	tok := p.current()

	if tok.Kind == lexer.Unknown {
		if lexErr := p.la.currentErr(); lexErr != nil {
			return newParseError(ErrLexicalFailure, lexErr.Error(), tok)
		}
	}

	if tok.Kind == lexer.EndOfInput {
		return newParseError(ErrUnexpectedEnd, detail, tok)
	}

	return newParseError(structuralErr, detail, tok)
}

func (p *parser) expect(kind lexer.Kind, structuralErr error, detail string) (lexer.Token, *ParseError) {
	if p.current().Kind != kind {
		return lexer.Token{}, p.failCurrent(structuralErr, detail)
	}
	return p.advance(), nil
}

// Conditional / Or / And / Rel
// ============================

func (p *parser) parseConditional() (ast.Node, *ParseError) {
	defer p.enter("Conditional")()

	p.depth++
	defer func() { p.depth-- }()

	if p.depth > p.maxDepth {
		return nil, newParseError(ErrNestingTooDeep,
			fmt.Sprintf("nesting exceeds the configured maximum of %d", p.maxDepth), p.current())
	}

	return p.parseOr()
}

func (p *parser) parseOr() (ast.Node, *ParseError) {
	defer p.enter("Or")()

	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.current().Kind == lexer.Or {
		opTok := p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOperator{
			Left: left, Op: opTok, Kind: ast.OpOr, Right: right,
			Sp: p.cover(left.Span(), right.Span()),
		}
	}

	return left, nil
}

func (p *parser) parseAnd() (ast.Node, *ParseError) {
	defer p.enter("And")()

	left, err := p.parseRel()
	if err != nil {
		return nil, err
	}

	for p.current().Kind == lexer.And {
		opTok := p.advance()
		right, err := p.parseRel()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOperator{
			Left: left, Op: opTok, Kind: ast.OpAnd, Right: right,
			Sp: p.cover(left.Span(), right.Span()),
		}
	}

	return left, nil
}

func relOpKind(k lexer.Kind) (ast.BinaryOperatorKind, bool) {
	switch k {
	case lexer.Eq:
		return ast.OpEq, true
	case lexer.Ne:
		return ast.OpNe, true
	case lexer.Lt:
		return ast.OpLt, true
	case lexer.Le:
		return ast.OpLe, true
	case lexer.Gt:
		return ast.OpGt, true
	case lexer.Ge:
		return ast.OpGe, true
	}
	return 0, false
}

/*
parseRel implements the grammar's non-associative relational level: at
most one relational operator is consumed per call, so "a == b == c" stops
after the first comparison and leaves the second "== c" for the caller
(which, finding no 'and'/'or'/end-of-input, reports a trailing-input
failure at the top level).
*/
func (p *parser) parseRel() (ast.Node, *ParseError) {
	defer p.enter("Rel")()

	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	kind, ok := relOpKind(p.current().Kind)
	if !ok {
		return left, nil
	}

	opTok := p.advance()
	right, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	return &ast.BinaryOperator{
		Left: left, Op: opTok, Kind: kind, Right: right,
		Sp: p.cover(left.Span(), right.Span()),
	}, nil
}

func (p *parser) parseUnary() (ast.Node, *ParseError) {
	defer p.enter("Unary")()

	if p.current().Kind == lexer.Not {
		opTok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOperator{
			Op: opTok, Operand: operand,
			Sp: p.cover(opTok.Span, operand.Span()),
		}, nil
	}

	return p.parsePostfix()
}

// Postfix / Primary
// =================

func (p *parser) parsePostfix() (ast.Node, *ParseError) {
	defer p.enter("Postfix")()

	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		recv, ok := node.(ast.Receiver)
		if !ok {
			return node, nil
		}

		switch p.current().Kind {
		case lexer.Dot:
			p.advance()
			memberTok, err := p.expect(lexer.Identifier, ErrUnexpectedToken, "expected identifier after '.'")
			if err != nil {
				return nil, err
			}
			node = &ast.MemberAccess{
				Target: recv, MemberName: memberTok,
				Sp: p.cover(node.Span(), memberTok.Span),
			}

		case lexer.LParen:
			p.advance()
			args, endTok, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			node = &ast.FunctionCall{
				Receiver: recv, Arguments: args,
				Sp: p.cover(node.Span(), endTok.Span),
			}

		default:
			return node, nil
		}
	}
}

func (p *parser) parsePrimary() (ast.Node, *ParseError) {
	defer p.enter("Primary")()

	tok := p.current()

	switch tok.Kind {
	case lexer.String:
		p.advance()
		return p.parseStringToken(tok)

	case lexer.Number:
		p.advance()
		return &ast.NumericLiteral{Sp: tok.Span}, nil

	case lexer.Dollar:
		return p.parsePropertyReference()

	case lexer.At:
		return p.parseItemVector()

	case lexer.Percent:
		return p.parseMetadataReference()

	case lexer.LBracket:
		return p.parseStaticCall()

	case lexer.LParen:
		p.advance()
		inner, err := p.parseConditional()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen, ErrUnclosedGroup, "missing closing ')'"); err != nil {
			return nil, err
		}
		return inner, nil

	case lexer.Identifier:
		p.advance()
		var node ast.Node = &ast.Identifier{NameToken: tok}
		if p.current().Kind == lexer.LParen {
			p.advance()
			args, endTok, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			node = &ast.FunctionCall{
				Receiver: node.(ast.Receiver), Arguments: args,
				Sp: p.cover(tok.Span, endTok.Span),
			}
		}
		return node, nil
	}

	return nil, p.failCurrent(ErrUnexpectedToken, "expected a literal, reference, identifier, or '('")
}

func (p *parser) parseArgList() ([]ast.Node, lexer.Token, *ParseError) {
	defer p.enter("ArgList")()

	var args []ast.Node

	if p.current().Kind != lexer.RParen {
		for {
			arg, err := p.parseConditional()
			if err != nil {
				return nil, lexer.Token{}, err
			}
			args = append(args, arg)

			if p.current().Kind != lexer.Comma {
				break
			}
			p.advance()

			if p.current().Kind == lexer.RParen {
				return nil, lexer.Token{}, p.failCurrent(ErrMissingArgument, "expected an argument after ','")
			}
		}
	}

	endTok, err := p.expect(lexer.RParen, ErrUnclosedGroup, "missing closing ')'")
	if err != nil {
		return nil, lexer.Token{}, err
	}

	return args, endTok, nil
}

// Property / item / metadata references, static calls
// =====================================================

func (p *parser) parsePropertyReference() (ast.Node, *ParseError) {
	defer p.enter("PropertyReference")()

	dollarTok := p.advance()

	if _, err := p.expect(lexer.LParen, ErrUnexpectedToken, "expected '(' after '$'"); err != nil {
		return nil, err
	}

	if p.current().Kind == lexer.RParen {
		return nil, p.failCurrent(ErrEmptyPropertyBody, "property reference body must not be empty")
	}

	inner, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}

	endTok, err := p.expect(lexer.RParen, ErrUnclosedGroup, "missing closing ')' for property reference")
	if err != nil {
		return nil, err
	}

	return &ast.PropertyReference{Inner: inner, Sp: p.cover(dollarTok.Span, endTok.Span)}, nil
}

func (p *parser) parseItemVector() (ast.Node, *ParseError) {
	defer p.enter("ItemVector")()

	atTok := p.advance()

	if _, err := p.expect(lexer.LParen, ErrUnexpectedToken, "expected '(' after '@'"); err != nil {
		return nil, err
	}

	itemTypeTok, err := p.expect(lexer.Identifier, ErrInvalidItemType, "item vector requires a leading identifier")
	if err != nil {
		return nil, err
	}

	var transforms []*ast.Transform
	for p.current().Kind == lexer.Arrow {
		arrowTok := p.advance()
		expr, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, &ast.Transform{Expr: expr, Sp: p.cover(arrowTok.Span, expr.Span())})
	}

	var separator ast.Node
	if p.current().Kind == lexer.Comma {
		p.advance()
		separator, err = p.parsePrimary()
		if err != nil {
			return nil, err
		}
	}

	endTok, err := p.expect(lexer.RParen, ErrUnclosedGroup, "missing closing ')' for item vector")
	if err != nil {
		return nil, err
	}

	return &ast.ItemVector{
		ItemType: itemTypeTok, Transforms: transforms, Separator: separator,
		Sp: p.cover(atTok.Span, endTok.Span),
	}, nil
}

func (p *parser) parseMetadataReference() (ast.Node, *ParseError) {
	defer p.enter("MetadataReference")()

	pctTok := p.advance()

	if _, err := p.expect(lexer.LParen, ErrUnexpectedToken, "expected '(' after '%'"); err != nil {
		return nil, err
	}

	firstTok, err := p.expect(lexer.Identifier, ErrEmptyMetadataBody, "metadata reference requires an identifier")
	if err != nil {
		return nil, err
	}

	ref := &ast.MetadataReference{MetadataName: firstTok}

	if p.current().Kind == lexer.Dot {
		p.advance()
		secondTok, err := p.expect(lexer.Identifier, ErrEmptyMetadataBody, "expected identifier after '.' in metadata reference")
		if err != nil {
			return nil, err
		}
		itemType := firstTok
		ref.ItemType = &itemType
		ref.MetadataName = secondTok
	}

	endTok, err := p.expect(lexer.RParen, ErrUnclosedGroup, "missing closing ')' for metadata reference")
	if err != nil {
		return nil, err
	}

	ref.Sp = p.cover(pctTok.Span, endTok.Span)
	return ref, nil
}

func (p *parser) parseStaticCall() (ast.Node, *ParseError) {
	defer p.enter("StaticCall")()

	lbTok := p.advance()

	typeName, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.RBracket, ErrUnclosedGroup, "missing closing ']' in static member access"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.DoubleColon, ErrMalformedStaticCall, "expected '::' after ']'"); err != nil {
		return nil, err
	}

	memberTok, err := p.expect(lexer.Identifier, ErrMalformedStaticCall, "expected a member name after '::'")
	if err != nil {
		return nil, err
	}

	sma := &ast.StaticMemberAccess{
		Type: typeName, MemberName: memberTok,
		Sp: p.cover(lbTok.Span, memberTok.Span),
	}

	if _, err := p.expect(lexer.LParen, ErrMalformedStaticCall, "expected '(' after static member name"); err != nil {
		return nil, err
	}

	args, endTok, err := p.parseArgList()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionCall{
		Receiver: sma, Arguments: args,
		Sp: p.cover(lbTok.Span, endTok.Span),
	}, nil
}

func (p *parser) parseTypeName() (ast.TypeName, *ParseError) {
	defer p.enter("TypeName")()

	first, err := p.expect(lexer.Identifier, ErrMalformedStaticCall, "expected a type name")
	if err != nil {
		return ast.TypeName{}, err
	}

	segments := []lexer.Token{first}

	for p.current().Kind == lexer.Dot {
		p.advance()
		next, err := p.expect(lexer.Identifier, ErrMalformedStaticCall, "expected identifier after '.' in type name")
		if err != nil {
			return ast.TypeName{}, err
		}
		segments = append(segments, next)
	}

	last := segments[len(segments)-1]
	sp := p.cover(segments[0].Span, last.Span)

	if len(segments) == 1 {
		return ast.TypeName{Name: last, Sp: sp, Qualified: false}, nil
	}

	nsEnd := segments[len(segments)-2].Span.End()
	namespace := span.New(p.root, segments[0].Span.Start, nsEnd-segments[0].Span.Start)

	return ast.TypeName{Namespace: namespace, Name: last, Sp: sp, Qualified: true}, nil
}
