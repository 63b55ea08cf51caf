/*
 * buildexpr
 *
 * Copyright 2024 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package ast

import (
	"bytes"
	"fmt"

	"devt.de/krotik/common/stringutil"
)

/*
Print renders n as an indented tree, in the spirit of the teacher's
levelString - a debugging and test aid only, never consulted by the
parser itself.
*/
func Print(n Node) string {
	var buf bytes.Buffer
	writeNode(&buf, n, 0)
	return buf.String()
}

func indent(buf *bytes.Buffer, level int) {
	buf.WriteString(stringutil.GenerateRollingString(" ", level*2))
}

func writeNode(buf *bytes.Buffer, n Node, level int) {
	indent(buf, level)

	switch v := n.(type) {
	case *StringLiteral:
		fmt.Fprintf(buf, "string: %q\n", v.ValueSpan.Text)

	case *NumericLiteral:
		fmt.Fprintf(buf, "number: %s\n", v.Sp.Text)

	case *SimpleText:
		fmt.Fprintf(buf, "text: %q\n", v.Sp.Text)

	case *EscapedText:
		fmt.Fprintf(buf, "escaped: %q (%s)\n", v.UnescapedText, v.Sp.Text)

	case *CompositeString:
		buf.WriteString("composite-string\n")
		for _, p := range v.Parts {
			writeNode(buf, p, level+1)
		}

	case *PropertyReference:
		buf.WriteString("property\n")
		writeNode(buf, v.Inner, level+1)

	case *Transform:
		buf.WriteString("transform\n")
		writeNode(buf, v.Expr, level+1)

	case *ItemVector:
		fmt.Fprintf(buf, "item-vector: %s\n", v.ItemType.Span.Text)
		for _, tr := range v.Transforms {
			writeNode(buf, tr, level+1)
		}
		if v.Separator != nil {
			indent(buf, level+1)
			buf.WriteString("separator\n")
			writeNode(buf, v.Separator, level+2)
		}

	case *MetadataReference:
		if v.ItemType != nil {
			fmt.Fprintf(buf, "metadata: %s.%s\n", v.ItemType.Span.Text, v.MetadataName.Span.Text)
		} else {
			fmt.Fprintf(buf, "metadata: %s\n", v.MetadataName.Span.Text)
		}

	case *Identifier:
		fmt.Fprintf(buf, "identifier: %s\n", v.NameToken.Span.Text)

	case *MemberAccess:
		fmt.Fprintf(buf, "member: %s\n", v.MemberName.Span.Text)
		writeNode(buf, v.Target, level+1)

	case *StaticMemberAccess:
		fmt.Fprintf(buf, "static-member: %s::%s\n", v.Type.Sp.Text, v.MemberName.Span.Text)

	case *FunctionCall:
		buf.WriteString("call\n")
		writeNode(buf, v.Receiver, level+1)
		for _, a := range v.Arguments {
			writeNode(buf, a, level+1)
		}

	case *BinaryOperator:
		fmt.Fprintf(buf, "%s\n", v.Kind)
		writeNode(buf, v.Left, level+1)
		writeNode(buf, v.Right, level+1)

	case *UnaryOperator:
		buf.WriteString("not\n")
		writeNode(buf, v.Operand, level+1)

	default:
		fmt.Fprintf(buf, "<unknown node %T>\n", n)
	}
}

func (n *StringLiteral) String() string      { return Print(n) }
func (n *NumericLiteral) String() string     { return Print(n) }
func (n *SimpleText) String() string         { return Print(n) }
func (n *EscapedText) String() string        { return Print(n) }
func (n *CompositeString) String() string    { return Print(n) }
func (n *PropertyReference) String() string  { return Print(n) }
func (n *Transform) String() string          { return Print(n) }
func (n *ItemVector) String() string         { return Print(n) }
func (n *MetadataReference) String() string  { return Print(n) }
func (n *Identifier) String() string         { return Print(n) }
func (n *MemberAccess) String() string       { return Print(n) }
func (n *StaticMemberAccess) String() string { return Print(n) }
func (n *FunctionCall) String() string       { return Print(n) }
func (n *BinaryOperator) String() string     { return Print(n) }
func (n *UnaryOperator) String() string      { return Print(n) }
