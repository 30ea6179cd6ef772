// Package exclude decides whether filesystem paths are excluded from a
// listing, driven by glob patterns compiled through the translator.
package exclude

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/pathsieve/pathsieve/internal/glob"
)

// Warning ties a translation warning to the pattern that produced it.
type Warning struct {
	Pattern string
	glob.Warning
}

type compiled struct {
	pattern string
	re      *regexp2.Regexp
}

// Matcher holds exclusion patterns compiled for one path separator. The
// compiled state is read-only after construction, so a Matcher is safe for
// concurrent use.
type Matcher struct {
	sep      rune
	compiled []compiled
}

// NewMatcher translates and compiles patterns targeting sep-separated
// paths. Degraded constructs do not fail construction; their warnings are
// returned for the caller to surface. A structural pattern error or an
// expression the regex engine rejects fails construction.
func NewMatcher(sep rune, patterns ...string) (*Matcher, []Warning, error) {
	m := &Matcher{sep: sep}
	var warns []Warning
	for _, p := range patterns {
		expr, ws, err := glob.Translate(p, sep)
		if err != nil {
			return nil, nil, err
		}
		for _, w := range ws {
			warns = append(warns, Warning{Pattern: p, Warning: w})
		}
		re, err := regexp2.Compile(expr, regexp2.None)
		if err != nil {
			return nil, nil, fmt.Errorf("compile pattern %q as %q: %v", p, expr, err)
		}
		m.compiled = append(m.compiled, compiled{pattern: p, re: re})
	}
	return m, warns, nil
}

// Excluded reports whether any pattern matches somewhere in path. Patterns
// starting with / only match from the path root; the rest match any whole
// segment run. path must be rooted and use the Matcher's separator.
func (m *Matcher) Excluded(path string) bool {
	for _, c := range m.compiled {
		if ok, _ := c.re.MatchString(path); ok {
			return true
		}
	}
	return false
}

// Walk lists the tree under root, skipping excluded entries. Excluded
// directories are pruned whole: nothing beneath them is visited. Entries
// come back as rooted paths relative to root, in lexical walk order.
func (m *Matcher) Walk(root string) ([]string, error) {
	var kept []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rooted := m.rooted(rel)
		if m.Excluded(rooted) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		kept = append(kept, rooted)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return kept, nil
}

// rooted converts an OS-native relative path to a rooted candidate path in
// the Matcher's separator.
func (m *Matcher) rooted(rel string) string {
	sep := string(m.sep)
	parts := strings.Split(filepath.ToSlash(rel), "/")
	return sep + strings.Join(parts, sep)
}
