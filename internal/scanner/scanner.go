// Package scanner provides a small, syntax-agnostic state machine for
// string-to-string transforms. A specializing package declares immutable
// States whose rules recognize tokens and emit output fragments; the
// scanner walks the input once, keeping a stack of active states for
// nested constructs. The context type C threads per-run data (options,
// diagnostics) through handlers so the State definitions themselves can
// be built once and shared.
package scanner

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrNoFallback is returned by Nearest when no active state exposes a
// fallback handler, or when the state stack is empty.
var ErrNoFallback = errors.New("no active state provides a fallback handler")

// ErrUnterminated is returned by Run when the input ends while a nested
// state is still open.
var ErrUnterminated = errors.New("unterminated construct")

// Op tells the scanner how to adjust the state stack after a step.
type Op int

const (
	// Hold keeps the current state; fragments append to its output.
	Hold Op = iota
	// Push enters a nested state; fragments seed the new state's output.
	Push
	// Pop closes the current state, merging its output into the parent
	// before appending the step's fragments.
	Pop
	// Cancel closes the current state, discarding its accumulated output;
	// the step's fragments append to the parent instead.
	Cancel
)

// Token is the slice of input a rule matched.
type Token struct {
	Text  string // matched text
	Pos   int    // byte offset in the full input
	Local int    // byte offset relative to where the active state was entered
}

// Step is a handler's verdict for one token: fragments to emit, how many
// input bytes were consumed (0 means the token's own length), and a stack
// adjustment.
type Step[C any] struct {
	Emit []string
	Skip int
	Op   Op
	Next *State[C] // target state when Op == Push
}

// Matcher reports how many bytes at the start of rest form this rule's
// token, or 0 if the rule does not apply. prefix is the input consumed
// since the active state was entered, for rules that only apply at a
// given position inside their construct.
type Matcher func(rest, prefix string) int

// Handler turns a matched token into a Step. rest starts at the token.
type Handler[C any] func(c C, tok Token, rest string) Step[C]

// Rule pairs a token recognizer with its handler. Rules are tried in
// declaration order; the first match wins.
type Rule[C any] struct {
	Match  Matcher
	Handle Handler[C]
}

// State is an immutable bundle of rules plus an optional fallback
// handler consulted through Nearest when no rule matches.
type State[C any] struct {
	Name     string
	Rules    []Rule[C]
	Fallback Handler[C]
}

type frame[C any] struct {
	state   *State[C]
	opened  int // byte offset of the token that opened this state
	entered int // byte offset of the first input inside this state
	frags   []string
}

// Scanner is a single-use run over one input string.
type Scanner[C any] struct {
	input  string
	cursor int
	stack  []frame[C]
}

// New returns a Scanner for input with no active states. Run installs
// the root state; until then Nearest fails with ErrNoFallback.
func New[C any](input string) *Scanner[C] {
	return &Scanner[C]{input: input}
}

// Nearest returns the innermost active state exposing a fallback
// handler, searching the stack top to bottom. It fails with
// ErrNoFallback when the stack is empty or no active state has one.
func (s *Scanner[C]) Nearest() (*State[C], error) {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if st := s.stack[i].state; st.Fallback != nil {
			return st, nil
		}
	}
	return nil, ErrNoFallback
}

// Run consumes the whole input, dispatching each token to the active
// state's rules and collecting emitted fragments. It fails if the input
// ends inside a nested state, or if the state set is malformed (no rule
// or fallback applies, a handler consumes nothing, or a handler pops the
// root state).
func (s *Scanner[C]) Run(root *State[C], c C) ([]string, error) {
	s.cursor = 0
	s.stack = append(s.stack[:0], frame[C]{state: root})

	for s.cursor < len(s.input) {
		top := s.stack[len(s.stack)-1]
		rest := s.input[s.cursor:]
		tok := Token{Pos: s.cursor, Local: s.cursor - top.entered}

		var handle Handler[C]
		for _, r := range top.state.Rules {
			if n := r.Match(rest, s.input[top.entered:s.cursor]); n > 0 {
				tok.Text = rest[:n]
				handle = r.Handle
				break
			}
		}
		if handle == nil {
			st, err := s.Nearest()
			if err != nil {
				return nil, fmt.Errorf("state %q has no rule for input at byte %d: %w", top.state.Name, s.cursor, err)
			}
			_, size := utf8.DecodeRuneInString(rest)
			tok.Text = rest[:size]
			handle = st.Fallback
		}

		step := handle(c, tok, rest)
		skip := step.Skip
		if skip == 0 {
			skip = len(tok.Text)
		}
		if skip < 1 {
			return nil, fmt.Errorf("state %q consumed no input at byte %d", top.state.Name, s.cursor)
		}

		switch step.Op {
		case Hold:
			cur := &s.stack[len(s.stack)-1]
			cur.frags = append(cur.frags, step.Emit...)
		case Push:
			if step.Next == nil {
				return nil, fmt.Errorf("state %q pushed a nil state at byte %d", top.state.Name, s.cursor)
			}
			s.stack = append(s.stack, frame[C]{
				state:   step.Next,
				opened:  s.cursor,
				entered: s.cursor + skip,
				frags:   append([]string(nil), step.Emit...),
			})
		case Pop, Cancel:
			if len(s.stack) == 1 {
				return nil, fmt.Errorf("state %q popped the root state at byte %d", top.state.Name, s.cursor)
			}
			closing := s.stack[len(s.stack)-1]
			s.stack = s.stack[:len(s.stack)-1]
			parent := &s.stack[len(s.stack)-1]
			if step.Op == Pop {
				parent.frags = append(parent.frags, closing.frags...)
			}
			parent.frags = append(parent.frags, step.Emit...)
		default:
			return nil, fmt.Errorf("state %q returned unknown stack op %d at byte %d", top.state.Name, step.Op, s.cursor)
		}

		s.cursor += skip
	}

	if len(s.stack) > 1 {
		top := s.stack[len(s.stack)-1]
		return nil, fmt.Errorf("%w: %s opened at byte %d", ErrUnterminated, top.state.Name, top.opened)
	}
	return s.stack[0].frags, nil
}
