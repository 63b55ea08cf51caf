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
	"fmt"

	"devt.de/krotik/buildexpr/lexer"
	"devt.de/krotik/buildexpr/span"
)

/*
ToJSONObject returns n and all its children as a nested JSON-friendly map,
in the spirit of the teacher's ASTNode.ToJSONObject. Spans travel as plain
{start, len, text} triples rather than offsets into a source string handed
back separately, so the result round-trips through FromJSONObject without
needing the original source text.
*/
func ToJSONObject(n Node) map[string]interface{} {
	if n == nil {
		return nil
	}

	switch v := n.(type) {
	case *StringLiteral:
		return map[string]interface{}{
			"kind":       "string-literal",
			"span":       spanToJSON(v.OuterSpan),
			"value_span": spanToJSON(v.ValueSpan),
		}

	case *NumericLiteral:
		return map[string]interface{}{
			"kind": "numeric-literal",
			"span": spanToJSON(v.Sp),
		}

	case *SimpleText:
		return map[string]interface{}{
			"kind": "simple-text",
			"span": spanToJSON(v.Sp),
		}

	case *EscapedText:
		return map[string]interface{}{
			"kind":       "escaped-text",
			"span":       spanToJSON(v.Sp),
			"unescaped":  v.UnescapedText,
		}

	case *CompositeString:
		return map[string]interface{}{
			"kind":  "composite-string",
			"span":  spanToJSON(v.OuterSpan),
			"parts": nodesToJSON(v.Parts),
		}

	case *PropertyReference:
		return map[string]interface{}{
			"kind":  "property-reference",
			"span":  spanToJSON(v.Sp),
			"inner": ToJSONObject(v.Inner),
		}

	case *Transform:
		return map[string]interface{}{
			"kind": "transform",
			"span": spanToJSON(v.Sp),
			"expr": ToJSONObject(v.Expr),
		}

	case *ItemVector:
		transforms := make([]interface{}, len(v.Transforms))
		for i, tr := range v.Transforms {
			transforms[i] = ToJSONObject(tr)
		}
		obj := map[string]interface{}{
			"kind":       "item-vector",
			"span":       spanToJSON(v.Sp),
			"item_type":  tokenToJSON(v.ItemType),
			"transforms": transforms,
		}
		if v.Separator != nil {
			obj["separator"] = ToJSONObject(v.Separator)
		}
		return obj

	case *MetadataReference:
		obj := map[string]interface{}{
			"kind":          "metadata-reference",
			"span":          spanToJSON(v.Sp),
			"metadata_name": tokenToJSON(v.MetadataName),
		}
		if v.ItemType != nil {
			obj["item_type"] = tokenToJSON(*v.ItemType)
		}
		return obj

	case *Identifier:
		return map[string]interface{}{
			"kind": "identifier",
			"span": spanToJSON(v.NameToken.Span),
			"name": tokenToJSON(v.NameToken),
		}

	case *MemberAccess:
		return map[string]interface{}{
			"kind":        "member-access",
			"span":        spanToJSON(v.Sp),
			"target":      ToJSONObject(v.Target),
			"member_name": tokenToJSON(v.MemberName),
		}

	case *StaticMemberAccess:
		return map[string]interface{}{
			"kind": "static-member-access",
			"span": spanToJSON(v.Sp),
			"type": map[string]interface{}{
				"namespace": spanToJSON(v.Type.Namespace),
				"name":      tokenToJSON(v.Type.Name),
				"span":      spanToJSON(v.Type.Sp),
				"qualified": v.Type.Qualified,
			},
			"member_name": tokenToJSON(v.MemberName),
		}

	case *FunctionCall:
		return map[string]interface{}{
			"kind":      "function-call",
			"span":      spanToJSON(v.Sp),
			"receiver":  ToJSONObject(v.Receiver),
			"arguments": nodesToJSON(v.Arguments),
		}

	case *BinaryOperator:
		return map[string]interface{}{
			"kind":     "binary-operator",
			"span":     spanToJSON(v.Sp),
			"op_kind":  int(v.Kind),
			"op":       tokenToJSON(v.Op),
			"left":     ToJSONObject(v.Left),
			"right":    ToJSONObject(v.Right),
		}

	case *UnaryOperator:
		return map[string]interface{}{
			"kind":    "unary-operator",
			"span":    spanToJSON(v.Sp),
			"op":      tokenToJSON(v.Op),
			"operand": ToJSONObject(v.Operand),
		}
	}

	return map[string]interface{}{"kind": fmt.Sprintf("unknown(%T)", n)}
}

func nodesToJSON(ns []Node) []interface{} {
	out := make([]interface{}, len(ns))
	for i, n := range ns {
		out[i] = ToJSONObject(n)
	}
	return out
}

func spanToJSON(s span.Span) map[string]interface{} {
	return map[string]interface{}{
		"start": s.Start,
		"len":   s.Len,
		"text":  s.Text,
	}
}

func tokenToJSON(t lexer.Token) map[string]interface{} {
	return map[string]interface{}{
		"kind":  int(t.Kind),
		"span":  spanToJSON(t.Span),
		"flags": int(t.Flags),
	}
}

/*
FromJSONObject reconstructs a Node tree from the map produced by
ToJSONObject. Reconstructed spans carry their own text independently of
any original source string - source does not need to stay alive for
FromJSONObject's result to be valid.
*/
func FromJSONObject(obj map[string]interface{}) (Node, error) {
	if obj == nil {
		return nil, nil
	}

	kind, _ := obj["kind"].(string)

	switch kind {
	case "string-literal":
		outer, err := spanFromJSON(obj["span"])
		if err != nil {
			return nil, err
		}
		val, err := spanFromJSON(obj["value_span"])
		if err != nil {
			return nil, err
		}
		return &StringLiteral{OuterSpan: outer, ValueSpan: val}, nil

	case "numeric-literal":
		sp, err := spanFromJSON(obj["span"])
		if err != nil {
			return nil, err
		}
		return &NumericLiteral{Sp: sp}, nil

	case "simple-text":
		sp, err := spanFromJSON(obj["span"])
		if err != nil {
			return nil, err
		}
		return &SimpleText{Sp: sp}, nil

	case "escaped-text":
		sp, err := spanFromJSON(obj["span"])
		if err != nil {
			return nil, err
		}
		unescaped, _ := obj["unescaped"].(string)
		return &EscapedText{Sp: sp, UnescapedText: unescaped}, nil

	case "composite-string":
		sp, err := spanFromJSON(obj["span"])
		if err != nil {
			return nil, err
		}
		parts, err := nodesFromJSON(obj["parts"])
		if err != nil {
			return nil, err
		}
		return &CompositeString{OuterSpan: sp, Parts: parts}, nil

	case "property-reference":
		sp, err := spanFromJSON(obj["span"])
		if err != nil {
			return nil, err
		}
		inner, err := nodeFromJSONField(obj, "inner")
		if err != nil {
			return nil, err
		}
		return &PropertyReference{Sp: sp, Inner: inner}, nil

	case "transform":
		sp, err := spanFromJSON(obj["span"])
		if err != nil {
			return nil, err
		}
		expr, err := nodeFromJSONField(obj, "expr")
		if err != nil {
			return nil, err
		}
		return &Transform{Sp: sp, Expr: expr}, nil

	case "item-vector":
		sp, err := spanFromJSON(obj["span"])
		if err != nil {
			return nil, err
		}
		itemType, err := tokenFromJSON(obj["item_type"])
		if err != nil {
			return nil, err
		}

		rawTransforms, _ := obj["transforms"].([]interface{})
		transforms := make([]*Transform, len(rawTransforms))
		for i, rt := range rawTransforms {
			m, ok := rt.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("transform entry %d is not an object", i)
			}
			n, err := FromJSONObject(m)
			if err != nil {
				return nil, err
			}
			tr, ok := n.(*Transform)
			if !ok {
				return nil, fmt.Errorf("transform entry %d did not decode to a transform", i)
			}
			transforms[i] = tr
		}

		var separator Node
		if sepObj, ok := obj["separator"]; ok && sepObj != nil {
			separator, err = nodeFromJSONField(obj, "separator")
			if err != nil {
				return nil, err
			}
		}

		return &ItemVector{Sp: sp, ItemType: itemType, Transforms: transforms, Separator: separator}, nil

	case "metadata-reference":
		sp, err := spanFromJSON(obj["span"])
		if err != nil {
			return nil, err
		}
		name, err := tokenFromJSON(obj["metadata_name"])
		if err != nil {
			return nil, err
		}
		ref := &MetadataReference{Sp: sp, MetadataName: name}
		if itObj, ok := obj["item_type"]; ok && itObj != nil {
			it, err := tokenFromJSON(itObj)
			if err != nil {
				return nil, err
			}
			ref.ItemType = &it
		}
		return ref, nil

	case "identifier":
		nameTok, err := tokenFromJSON(obj["name"])
		if err != nil {
			return nil, err
		}
		return &Identifier{NameToken: nameTok}, nil

	case "member-access":
		sp, err := spanFromJSON(obj["span"])
		if err != nil {
			return nil, err
		}
		memberName, err := tokenFromJSON(obj["member_name"])
		if err != nil {
			return nil, err
		}
		target, err := receiverFromJSONField(obj, "target")
		if err != nil {
			return nil, err
		}
		return &MemberAccess{Sp: sp, MemberName: memberName, Target: target}, nil

	case "static-member-access":
		sp, err := spanFromJSON(obj["span"])
		if err != nil {
			return nil, err
		}
		memberName, err := tokenFromJSON(obj["member_name"])
		if err != nil {
			return nil, err
		}
		typeObj, ok := obj["type"].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("static-member-access missing type object")
		}
		namespace, err := spanFromJSON(typeObj["namespace"])
		if err != nil {
			return nil, err
		}
		typeName, err := tokenFromJSON(typeObj["name"])
		if err != nil {
			return nil, err
		}
		typeSpan, err := spanFromJSON(typeObj["span"])
		if err != nil {
			return nil, err
		}
		qualified, _ := typeObj["qualified"].(bool)
		return &StaticMemberAccess{
			Sp:         sp,
			MemberName: memberName,
			Type: TypeName{
				Namespace: namespace,
				Name:      typeName,
				Sp:        typeSpan,
				Qualified: qualified,
			},
		}, nil

	case "function-call":
		sp, err := spanFromJSON(obj["span"])
		if err != nil {
			return nil, err
		}
		receiver, err := receiverFromJSONField(obj, "receiver")
		if err != nil {
			return nil, err
		}
		args, err := nodesFromJSON(obj["arguments"])
		if err != nil {
			return nil, err
		}
		return &FunctionCall{Sp: sp, Receiver: receiver, Arguments: args}, nil

	case "binary-operator":
		sp, err := spanFromJSON(obj["span"])
		if err != nil {
			return nil, err
		}
		op, err := tokenFromJSON(obj["op"])
		if err != nil {
			return nil, err
		}
		left, err := nodeFromJSONField(obj, "left")
		if err != nil {
			return nil, err
		}
		right, err := nodeFromJSONField(obj, "right")
		if err != nil {
			return nil, err
		}
		opKind, _ := obj["op_kind"].(float64)
		return &BinaryOperator{Sp: sp, Op: op, Left: left, Right: right, Kind: BinaryOperatorKind(int(opKind))}, nil

	case "unary-operator":
		sp, err := spanFromJSON(obj["span"])
		if err != nil {
			return nil, err
		}
		op, err := tokenFromJSON(obj["op"])
		if err != nil {
			return nil, err
		}
		operand, err := nodeFromJSONField(obj, "operand")
		if err != nil {
			return nil, err
		}
		return &UnaryOperator{Sp: sp, Op: op, Operand: operand}, nil
	}

	return nil, fmt.Errorf("unrecognised node kind in JSON: %q", kind)
}

func nodeFromJSONField(obj map[string]interface{}, key string) (Node, error) {
	m, ok := obj[key].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("field %q is not an object", key)
	}
	return FromJSONObject(m)
}

func receiverFromJSONField(obj map[string]interface{}, key string) (Receiver, error) {
	n, err := nodeFromJSONField(obj, key)
	if err != nil {
		return nil, err
	}
	r, ok := n.(Receiver)
	if !ok {
		return nil, fmt.Errorf("field %q did not decode to a receiver node", key)
	}
	return r, nil
}

func nodesFromJSON(raw interface{}) ([]Node, error) {
	list, _ := raw.([]interface{})
	out := make([]Node, len(list))
	for i, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("element %d is not an object", i)
		}
		n, err := FromJSONObject(m)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func spanFromJSON(raw interface{}) (span.Span, error) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return span.Span{}, fmt.Errorf("span value is not an object")
	}
	start, _ := m["start"].(float64)
	length, _ := m["len"].(float64)
	text, _ := m["text"].(string)
	return span.Span{Start: int(start), Len: int(length), Text: text}, nil
}

func tokenFromJSON(raw interface{}) (lexer.Token, error) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return lexer.Token{}, fmt.Errorf("token value is not an object")
	}
	kindVal, _ := m["kind"].(float64)
	flagsVal, _ := m["flags"].(float64)
	sp, err := spanFromJSON(m["span"])
	if err != nil {
		return lexer.Token{}, err
	}
	return lexer.Token{Kind: lexer.Kind(int(kindVal)), Span: sp, Flags: lexer.Flags(int(flagsVal))}, nil
}
