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
	"strings"

	"devt.de/krotik/buildexpr/ast"
	"devt.de/krotik/buildexpr/parser"
)

/*
ContainsMetadataOutsideTransform reports whether source contains a %( … )
reference that is not nested inside an item vector's "-> …" transform, per
spec.md §4.6. It fails exactly when parser.Parse fails.
*/
func ContainsMetadataOutsideTransform(source string) (bool, *parser.ParseError) {
	root, err := parser.Parse(source)
	if err != nil {
		return false, err
	}
	return hasMetadataOutsideTransform(root, false), nil
}

func hasMetadataOutsideTransform(n ast.Node, insideTransform bool) bool {
	if n == nil {
		return false
	}

	switch v := n.(type) {
	case *ast.MetadataReference:
		return !insideTransform

	case *ast.CompositeString:
		for _, part := range v.Parts {
			if hasMetadataOutsideTransform(part, insideTransform) {
				return true
			}
		}

	case *ast.PropertyReference:
		return hasMetadataOutsideTransform(v.Inner, insideTransform)

	case *ast.ItemVector:
		for _, tr := range v.Transforms {
			if hasMetadataOutsideTransform(tr.Expr, true) {
				return true
			}
		}
		if v.Separator != nil {
			return hasMetadataOutsideTransform(v.Separator, insideTransform)
		}

	case *ast.Transform:
		return hasMetadataOutsideTransform(v.Expr, true)

	case *ast.MemberAccess:
		return hasMetadataOutsideTransform(v.Target, insideTransform)

	case *ast.FunctionCall:
		if hasMetadataOutsideTransform(v.Receiver, insideTransform) {
			return true
		}
		for _, arg := range v.Arguments {
			if hasMetadataOutsideTransform(arg, insideTransform) {
				return true
			}
		}

	case *ast.BinaryOperator:
		return hasMetadataOutsideTransform(v.Left, insideTransform) ||
			hasMetadataOutsideTransform(v.Right, insideTransform)

	case *ast.UnaryOperator:
		return hasMetadataOutsideTransform(v.Operand, insideTransform)
	}

	return false
}

/*
MetadataName identifies one %( … ) reference by its original (non-canonical)
spelling.
*/
type MetadataName struct {
	ItemName     string
	MetadataName string
}

/*
ReferencedNames returns the set of item-type identifiers referenced by
source (case-insensitive deduplication, first-seen spelling preserved) and
a mapping from canonical metadata key - "name" or "itemtype.name", both
lowercased - to the original spelling, per spec.md §4.6.
*/
func ReferencedNames(source string) ([]string, map[string]MetadataName, *parser.ParseError) {
	root, err := parser.Parse(source)
	if err != nil {
		return nil, nil, err
	}

	c := &nameCollector{metadata: make(map[string]MetadataName)}
	c.walk(root)

	return c.itemNames, c.metadata, nil
}

type nameCollector struct {
	seenItems map[string]bool
	itemNames []string
	metadata  map[string]MetadataName
}

/*
ReferencedNamesAcrossSources is ReferencedNames aggregated over a list of
expressions (spec.md §6 interface 4: "shred_item_and_metadata_names(sources)
-> aggregate over a list of expressions"). Item names and metadata keys are
deduplicated across the whole list, not per source - first-seen spelling
wins the same way it would if every source had been concatenated into one
traversal. It fails on the first source that fails to parse.
*/
func ReferencedNamesAcrossSources(sources []string) ([]string, map[string]MetadataName, *parser.ParseError) {
	c := &nameCollector{metadata: make(map[string]MetadataName)}

	for _, source := range sources {
		root, err := parser.Parse(source)
		if err != nil {
			return nil, nil, err
		}
		c.walk(root)
	}

	return c.itemNames, c.metadata, nil
}

func (c *nameCollector) addItemName(name string) {
	if c.seenItems == nil {
		c.seenItems = make(map[string]bool)
	}
	key := strings.ToLower(name)
	if c.seenItems[key] {
		return
	}
	c.seenItems[key] = true
	c.itemNames = append(c.itemNames, name)
}

func (c *nameCollector) walk(n ast.Node) {
	if n == nil {
		return
	}

	switch v := n.(type) {
	case *ast.ItemVector:
		c.addItemName(v.ItemType.Span.Text)
		for _, tr := range v.Transforms {
			c.walk(tr.Expr)
		}
		if v.Separator != nil {
			c.walk(v.Separator)
		}

	case *ast.MetadataReference:
		metaName := v.MetadataName.Span.Text
		itemName := ""
		canonical := strings.ToLower(metaName)

		if v.ItemType != nil {
			itemName = v.ItemType.Span.Text
			canonical = strings.ToLower(itemName) + "." + strings.ToLower(metaName)
		}

		if _, ok := c.metadata[canonical]; !ok {
			c.metadata[canonical] = MetadataName{ItemName: itemName, MetadataName: metaName}
		}

	case *ast.CompositeString:
		for _, part := range v.Parts {
			c.walk(part)
		}

	case *ast.PropertyReference:
		c.walk(v.Inner)

	case *ast.Transform:
		c.walk(v.Expr)

	case *ast.MemberAccess:
		c.walk(v.Target)

	case *ast.FunctionCall:
		c.walk(v.Receiver)
		for _, arg := range v.Arguments {
			c.walk(arg)
		}

	case *ast.BinaryOperator:
		c.walk(v.Left)
		c.walk(v.Right)

	case *ast.UnaryOperator:
		c.walk(v.Operand)
	}
}
