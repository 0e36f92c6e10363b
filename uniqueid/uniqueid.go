// Package uniqueid names fragment files after the element they hold.
//
// Callers configure an ordered list of identifying field names. A field
// found directly on the element wins; otherwise a depth-first search
// resolves nested children with the same fields, preferring any genuine
// match over a content-hash fallback bubbled up from a sibling subtree.
// With no configured fields, or no match anywhere, the element's short
// content hash is the identifier.
package uniqueid

import (
	"strings"

	"github.com/signadot/xmlsplit/go-xmlsplit/ir"
)

// ParseFields splits a comma-separated field list, trimming whitespace.
// Returns nil for an empty input.
func ParseFields(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		fields = append(fields, strings.TrimSpace(p))
	}
	return fields
}

// Resolve returns the identifier for element under the configured
// identifying fields. The result is never empty.
func Resolve(element *ir.Node, fields []string) string {
	if len(fields) == 0 {
		return element.ShortHash()
	}
	if id := directMatch(element, fields); id != "" {
		return id
	}
	if id := nestedMatch(element, fields); id != "" {
		return id
	}
	return element.ShortHash()
}

func directMatch(element *ir.Node, fields []string) string {
	if element == nil || element.Type != ir.ObjectType {
		return ""
	}
	for _, f := range fields {
		if v := element.Get(f); v != nil && v.Type == ir.StringType {
			return v.String
		}
	}
	return ""
}

// nestedMatch searches children in insertion order. A hash-shaped result
// from one subtree must not shadow a real identifying field in a later
// one, so the first hash is held back as a fallback and only returned
// when every candidate is hash-shaped.
func nestedMatch(element *ir.Node, fields []string) string {
	if element == nil || element.Type != ir.ObjectType {
		return ""
	}
	hashFallback := ""
	consider := func(child *ir.Node) string {
		if child == nil || child.Type != ir.ObjectType {
			return ""
		}
		res := Resolve(child, fields)
		if ir.LooksLikeShortHash(res) {
			if hashFallback == "" {
				hashFallback = res
			}
			return ""
		}
		return res
	}
	for _, child := range element.Values {
		if child.Type == ir.ArrayType {
			for _, item := range child.Values {
				if res := consider(item); res != "" {
					return res
				}
			}
			continue
		}
		if res := consider(child); res != "" {
			return res
		}
	}
	return hashFallback
}
