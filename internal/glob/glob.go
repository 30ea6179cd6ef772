// Package glob translates shell-style glob patterns into regular-expression
// text. Patterns use / as their segment separator regardless of platform; the
// separator of the paths the regex will run against is a parameter, escaped
// consistently wherever it appears in the output. Translation is pure and
// deterministic: identical inputs produce identical regex text and identical
// warning sequences.
//
// Supported syntax: * (any run of non-separator characters), ** (any run of
// any characters), ? (one non-separator character), {a,b} alternation,
// [...] character sets with ! negation and [:name:] POSIX classes, and
// backslash escapes. Constructs a regular expression cannot express
// faithfully (collating symbols, equivalence classes, unknown class names)
// degrade: the enclosing character set becomes the single-character wildcard
// "." and a Warning records the construct, so a degraded pattern never
// matches less than intended.
package glob

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pathsieve/pathsieve/internal/scanner"
)

// Warning records a pattern construct that was translated more permissively
// than written.
type Warning struct {
	Pos       int    // byte offset of the construct in the pattern
	Construct string // the offending sub-pattern text
	Message   string
}

// run is the per-translation context threaded through the shared states.
type run struct {
	sep   string // regex-escaped target separator
	warns []Warning
}

// Translate converts pattern into regular-expression text targeting paths
// separated by sep. The pattern's own separator is always /. The returned
// expression is anchored: patterns starting with / match from the path root
// (^), others match any whole segment run, and every match must end at a
// segment boundary (sep or end of input).
//
// Errors are structural only: an unterminated bracket or brace expression,
// or a malformed state machine. Unsupported sub-constructs are not errors;
// they degrade and are reported through the returned warnings.
func Translate(pattern string, sep rune) (string, []Warning, error) {
	c := &run{sep: escapeLiteral(string(sep))}
	frags, err := scanner.New[*run](pattern).Run(rootState, c)
	if err != nil {
		return "", c.warns, fmt.Errorf("translate %q: %w", pattern, err)
	}

	var b strings.Builder
	if strings.HasPrefix(pattern, "/") {
		b.WriteByte('^')
	} else {
		b.WriteString(c.sep)
	}
	for _, f := range frags {
		b.WriteString(f)
	}
	b.WriteByte('(')
	b.WriteString(c.sep)
	b.WriteString("|$)")
	return b.String(), c.warns, nil
}

// escapeLiteral renders one literal character as regex text. NUL gets the
// explicit \u0000 escape because a raw NUL inside an expression is invalid
// in most engines.
func escapeLiteral(s string) string {
	if s == "\x00" {
		return `\u0000`
	}
	return regexp.QuoteMeta(s)
}

// memberText renders one character set member. Members pass through raw so
// ranges like a-z survive; only characters that would change the set's
// structure are escaped. first marks the member right after [ or [!, where
// ^ would read as negation.
func memberText(s string, first bool) string {
	switch s {
	case "\x00":
		return `\u0000`
	case `\`:
		return `\\`
	case "[":
		return `\[`
	case "^":
		if first {
			return `\^`
		}
	}
	return s
}

// closingBracket returns the index in s of the ] that closes the current
// character set, skipping escaped characters and [:..:], [...], [=..=]
// sub-constructs, or -1 if the set never closes.
func closingBracket(s string) int {
	i := 0
	for i < len(s) {
		switch {
		case s[i] == ']':
			return i
		case s[i] == '\\' && i+1 < len(s):
			i += 2
		case s[i] == '[' && i+1 < len(s) && (s[i+1] == ':' || s[i+1] == '.' || s[i+1] == '='):
			delim := string(s[i+1]) + "]"
			if end := strings.Index(s[i+2:], delim); end >= 0 {
				i += 2 + end + len(delim)
			} else {
				i++
			}
		default:
			i++
		}
	}
	return -1
}
