package disassemble

import (
	"strings"

	"github.com/signadot/xmlsplit/go-xmlsplit/debug"
	"github.com/signadot/xmlsplit/go-xmlsplit/format"
	"github.com/signadot/xmlsplit/go-xmlsplit/manifest"
)

const (
	StrategyUniqueID     = "unique-id"
	StrategyGroupedByTag = "grouped-by-tag"

	// DefaultIgnoreFile lists fragments sources to skip, gitignore syntax.
	DefaultIgnoreFile = ".xmlsplitignore"

	defaultConcurrency = 20
)

// DecomposeRule refines the grouped-by-tag strategy for one tag: "split"
// writes one file per element named by the field's value, "group" buckets
// elements by the field's value and writes one file per bucket.
type DecomposeRule struct {
	Tag         string
	PathSegment string
	Mode        string
	Field       string
}

// ParseDecomposeRules reads a comma-separated rule spec. Each rule is
// tag:mode:field or tag:path:mode:field; malformed entries are skipped.
func ParseDecomposeRules(spec string) []DecomposeRule {
	var rules []DecomposeRule
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		segs := strings.SplitN(part, ":", 4)
		if len(segs) < 3 {
			continue
		}
		r := DecomposeRule{Tag: segs[0]}
		if len(segs) == 3 {
			r.PathSegment, r.Mode, r.Field = segs[0], segs[1], segs[2]
		} else {
			r.PathSegment, r.Mode, r.Field = segs[1], segs[2], segs[3]
		}
		if r.Tag == "" || r.Mode == "" || r.Field == "" {
			continue
		}
		rules = append(rules, r)
	}
	return rules
}

// ParseMultiLevelRule reads a file_pattern:root_to_strip:unique_id_elements
// spec into a manifest rule, or nil when the spec is malformed.
func ParseMultiLevelRule(spec string) *manifest.Rule {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return nil
	}
	return &manifest.Rule{
		FilePattern:      parts[0],
		RootToStrip:      parts[1],
		UniqueIDElements: parts[2],
		PathSegment:      manifest.PathSegmentFromFilePattern(parts[0]),
		WrapRootElement:  parts[1],
	}
}

// Options configure one disassembly run.
type Options struct {
	// UniqueIDElements is a comma-separated list of identifying field
	// names for fragment file naming under the unique-id strategy.
	UniqueIDElements string
	// Strategy is unique-id or grouped-by-tag. Unsupported values fall
	// back to unique-id with a warning.
	Strategy string
	// PrePurge removes existing disassembly output before running.
	PrePurge bool
	// PostPurge deletes the source file after disassembling it.
	PostPurge bool
	// IgnorePath points at a gitignore-style file of sources to skip.
	IgnorePath string
	// Format selects the fragment file format.
	Format format.Format
	// MultiLevel, when set, re-decomposes matching fragments a second
	// time and persists the rule for reassembly.
	MultiLevel *manifest.Rule
	// DecomposeRules refine grouped-by-tag output per tag.
	DecomposeRules []DecomposeRule
	// Concurrency bounds parallel fragment writes; 0 means the default.
	Concurrency int
}

func (o Options) withDefaults() Options {
	switch o.Strategy {
	case StrategyUniqueID, StrategyGroupedByTag:
	case "":
		o.Strategy = StrategyUniqueID
	default:
		debug.Warnf("unsupported strategy %q, defaulting to %q", o.Strategy, StrategyUniqueID)
		o.Strategy = StrategyUniqueID
	}
	if o.IgnorePath == "" {
		o.IgnorePath = DefaultIgnoreFile
	}
	if o.Concurrency <= 0 {
		o.Concurrency = defaultConcurrency
	}
	return o
}
