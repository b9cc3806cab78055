// Package safety provides the operation filter and audit log guarding the
// remote calls and page mutations exposed over MCP.
package safety

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Filter controls access to named remote operations using an allowlist and a
// denylist of glob patterns.
//
// Rules:
//   - If both lists are empty (or nil), every operation is allowed.
//   - Denylist always takes priority over the allowlist.
//   - If a non-empty allowlist is present, an operation must match at least
//     one allowlist pattern to be permitted (after the denylist check).
type Filter struct {
	allowlist []glob.Glob
	denylist  []glob.Glob
}

// NewFilter compiles the allowlist and denylist patterns. Either or both may
// be nil or empty. A malformed pattern is an error.
func NewFilter(allowlist, denylist []string) (*Filter, error) {
	allow, err := compileAll(allowlist)
	if err != nil {
		return nil, fmt.Errorf("safety: allowlist: %w", err)
	}
	deny, err := compileAll(denylist)
	if err != nil {
		return nil, fmt.Errorf("safety: denylist: %w", err)
	}
	return &Filter{allowlist: allow, denylist: deny}, nil
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// IsAllowed reports whether name is permitted by this filter. A nil Filter
// allows everything.
func (f *Filter) IsAllowed(name string) bool {
	if f == nil {
		return true
	}
	for _, g := range f.denylist {
		if g.Match(name) {
			return false
		}
	}
	if len(f.allowlist) == 0 {
		return true
	}
	for _, g := range f.allowlist {
		if g.Match(name) {
			return true
		}
	}
	return false
}
