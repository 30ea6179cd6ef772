package glob

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pathsieve/pathsieve/internal/scanner"
)

// The three states are built once and shared by every translation; per-run
// data travels in the *run context, never in the states.
var (
	rootState    = &scanner.State[*run]{Name: "glob"}
	braceState   = &scanner.State[*run]{Name: "brace group"}
	bracketState = &scanner.State[*run]{Name: "bracket expression"}
)

func init() {
	common := []scanner.Rule[*run]{
		{Match: text("**"), Handle: emitText(".*")},
		{Match: text("*"), Handle: anyRun},
		{Match: text("?"), Handle: anyChar},
		{Match: text("{"), Handle: openGroup},
		{Match: text("["), Handle: openSet},
		{Match: escapeTok, Handle: escaped},
		{Match: text("/"), Handle: emitSep},
	}

	rootState.Rules = common
	rootState.Fallback = literal

	// No fallback here: literal characters inside a group resolve through
	// the scanner's nearest-fallback search to the root literal handler.
	braceState.Rules = append([]scanner.Rule[*run]{
		{Match: text(","), Handle: emitText("|")},
		{Match: text("}"), Handle: closeGroup},
	}, common...)

	bracketState.Rules = []scanner.Rule[*run]{
		{Match: delimited("[:", ":]"), Handle: posixClass},
		{Match: delimited("[.", ".]"), Handle: collating},
		{Match: delimited("[=", "=]"), Handle: equivalence},
		{Match: negation, Handle: emitText("^")},
		{Match: leadingCloser, Handle: emitText(`\]`)},
		{Match: text("]"), Handle: closeSet},
		{Match: text("/"), Handle: emitSep},
		{Match: escapeTok, Handle: memberEscaped},
	}
	bracketState.Fallback = member
}

// text matches a fixed token.
func text(s string) scanner.Matcher {
	return func(rest, _ string) int {
		if strings.HasPrefix(rest, s) {
			return len(s)
		}
		return 0
	}
}

// escapeTok matches a backslash plus the following rune.
func escapeTok(rest, _ string) int {
	if len(rest) >= 2 && rest[0] == '\\' {
		_, n := utf8.DecodeRuneInString(rest[1:])
		return 1 + n
	}
	return 0
}

// delimited matches open..close constructs such as [:alpha:].
func delimited(open, close string) scanner.Matcher {
	return func(rest, _ string) int {
		if !strings.HasPrefix(rest, open) {
			return 0
		}
		if i := strings.Index(rest[len(open):], close); i >= 0 {
			return len(open) + i + len(close)
		}
		return 0
	}
}

// negation matches ! only as the set's first member position.
func negation(rest, prefix string) int {
	if prefix == "" && strings.HasPrefix(rest, "!") {
		return 1
	}
	return 0
}

// leadingCloser matches a ] occurring where no member precedes it (right
// after [ or [!), where POSIX reads it as a literal member.
func leadingCloser(rest, prefix string) int {
	if (prefix == "" || prefix == "!") && strings.HasPrefix(rest, "]") {
		return 1
	}
	return 0
}

func emitText(out string) scanner.Handler[*run] {
	return func(_ *run, _ scanner.Token, _ string) scanner.Step[*run] {
		return scanner.Step[*run]{Emit: []string{out}}
	}
}

func emitSep(c *run, _ scanner.Token, _ string) scanner.Step[*run] {
	return scanner.Step[*run]{Emit: []string{c.sep}}
}

func anyRun(c *run, _ scanner.Token, _ string) scanner.Step[*run] {
	return scanner.Step[*run]{Emit: []string{"[^" + c.sep + "]*"}}
}

func anyChar(c *run, _ scanner.Token, _ string) scanner.Step[*run] {
	return scanner.Step[*run]{Emit: []string{"[^" + c.sep + "]"}}
}

func openGroup(_ *run, _ scanner.Token, _ string) scanner.Step[*run] {
	return scanner.Step[*run]{Emit: []string{"("}, Op: scanner.Push, Next: braceState}
}

func closeGroup(_ *run, _ scanner.Token, _ string) scanner.Step[*run] {
	return scanner.Step[*run]{Emit: []string{")"}, Op: scanner.Pop}
}

func openSet(_ *run, _ scanner.Token, _ string) scanner.Step[*run] {
	return scanner.Step[*run]{Emit: []string{"["}, Op: scanner.Push, Next: bracketState}
}

func closeSet(_ *run, _ scanner.Token, _ string) scanner.Step[*run] {
	return scanner.Step[*run]{Emit: []string{"]"}, Op: scanner.Pop}
}

func literal(_ *run, tok scanner.Token, _ string) scanner.Step[*run] {
	return scanner.Step[*run]{Emit: []string{escapeLiteral(tok.Text)}}
}

func escaped(_ *run, tok scanner.Token, _ string) scanner.Step[*run] {
	return scanner.Step[*run]{Emit: []string{escapeLiteral(tok.Text[1:])}}
}

func member(_ *run, tok scanner.Token, _ string) scanner.Step[*run] {
	return scanner.Step[*run]{Emit: []string{memberText(tok.Text, tok.Local == 0)}}
}

// memberEscaped keeps an escaped member literal. An escaped dash stays
// escaped so it cannot form a range.
func memberEscaped(_ *run, tok scanner.Token, _ string) scanner.Step[*run] {
	ch := tok.Text[1:]
	if ch == "-" {
		return scanner.Step[*run]{Emit: []string{`\-`}}
	}
	return scanner.Step[*run]{Emit: []string{escapeLiteral(ch)}}
}

func posixClass(c *run, tok scanner.Token, rest string) scanner.Step[*run] {
	name := tok.Text[2 : len(tok.Text)-2]
	if frag, ok := posixClasses[name]; ok {
		return scanner.Step[*run]{Emit: []string{frag}}
	}
	return degrade(c, tok, rest, fmt.Sprintf("unknown character class %q", name))
}

func collating(c *run, tok scanner.Token, rest string) scanner.Step[*run] {
	return degrade(c, tok, rest, "collating symbols are not supported")
}

func equivalence(c *run, tok scanner.Token, rest string) scanner.Step[*run] {
	return degrade(c, tok, rest, "equivalence classes are not supported")
}

// degrade records one warning and replaces the whole enclosing character
// set with the single-character wildcard, consuming through the set's
// closing bracket. A set that never closes consumes the rest of the input;
// the run then ends with the usual unterminated-construct error.
func degrade(c *run, tok scanner.Token, rest string, msg string) scanner.Step[*run] {
	c.warns = append(c.warns, Warning{Pos: tok.Pos, Construct: tok.Text, Message: msg})
	n := len(tok.Text)
	if end := closingBracket(rest[n:]); end >= 0 {
		return scanner.Step[*run]{Emit: []string{"."}, Skip: n + end + 1, Op: scanner.Cancel}
	}
	return scanner.Step[*run]{Skip: len(rest)}
}
