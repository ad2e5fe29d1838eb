package ruletext

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/grammatch"
	"github.com/npillmayer/grammatch/grammar"
	"github.com/npillmayer/grammatch/scanner"
)

// SyntaxError is returned for malformed rule lines. Line is 0 for rules not
// read from a file, e.g. overrides. Col counts bytes, starting at 1.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("col %d: %s", e.Col, e.Msg)
	}
	return fmt.Sprintf("line %d, col %d: %s", e.Line, e.Col, e.Msg)
}

// ParseRule parses a single rule line of the form `ID: …`.
func ParseRule(line string) (grammar.RuleID, grammar.Rule, error) {
	lm, err := Lexer()
	if err != nil {
		return 0, nil, err
	}
	sc, err := lm.Scanner(line)
	if err != nil {
		return 0, nil, err
	}
	p := &ruleParser{tok: sc}
	sc.SetErrorHandler(p.scanError)
	p.next()
	return p.parse()
}

type ruleParser struct {
	tok scanner.Tokenizer
	la  grammatch.Token // lookahead
	err *SyntaxError    // first scanner error
}

func (p *ruleParser) next() {
	p.la = p.tok.NextToken()
}

func (p *ruleParser) scanError(err error) {
	tracer().Debugf("rule text: %v", err)
	if p.err == nil {
		p.err = &SyntaxError{Col: 1, Msg: "unexpected input"}
		if p.la != nil {
			p.err.Col = int(p.la.Span().To()) + 1
		}
	}
}

func (p *ruleParser) failf(format string, args ...interface{}) *SyntaxError {
	if p.err != nil {
		return p.err
	}
	return &SyntaxError{
		Col: int(p.la.Span().From()) + 1,
		Msg: fmt.Sprintf(format, args...),
	}
}

func (p *ruleParser) parse() (grammar.RuleID, grammar.Rule, error) {
	if p.la.TokType() != tokNum {
		return 0, nil, p.failf("expected rule ID, found %s", tokenName(int(p.la.TokType())))
	}
	id, err := ruleID(p.la.Lexeme())
	if err != nil {
		return 0, nil, p.failf("%v", err)
	}
	p.next()
	if p.la.TokType() != tokColon {
		return 0, nil, p.failf("expected ':' after rule ID %d", id)
	}
	p.next()
	var alts [][]grammar.Rule
	var cur []grammar.Rule
	for {
		switch p.la.TokType() {
		case tokNum:
			ref, err := ruleID(p.la.Lexeme())
			if err != nil {
				return 0, nil, p.failf("%v", err)
			}
			cur = append(cur, grammar.Ref(ref))
		case tokChar:
			sym, err := terminal(p.la.Lexeme())
			if err != nil {
				return 0, nil, p.failf("%v", err)
			}
			cur = append(cur, grammar.T(sym))
		case tokPipe:
			if len(cur) == 0 {
				return 0, nil, p.failf("empty alternative")
			}
			alts = append(alts, cur)
			cur = nil
		case scanner.EOF:
			if len(cur) == 0 {
				return 0, nil, p.failf("empty alternative")
			}
			if p.err != nil {
				return 0, nil, p.err
			}
			alts = append(alts, cur)
			r, err := grammar.FromAlternatives(alts)
			if err != nil {
				return 0, nil, p.failf("%v", err)
			}
			return id, r, nil
		default:
			return 0, nil, p.failf("unexpected %s", tokenName(int(p.la.TokType())))
		}
		p.next()
	}
}

func ruleID(lexeme string) (grammar.RuleID, error) {
	n, err := strconv.Atoi(lexeme)
	if err != nil {
		return 0, fmt.Errorf("invalid rule ID %q", lexeme)
	}
	return grammar.RuleID(n), nil
}

func terminal(lexeme string) (rune, error) {
	sym := strings.TrimSuffix(strings.TrimPrefix(lexeme, `"`), `"`)
	if utf8.RuneCountInString(sym) != 1 {
		return 0, fmt.Errorf("terminal %s is not a single symbol", lexeme)
	}
	r, _ := utf8.DecodeRuneInString(sym)
	return r, nil
}

// --- Loading ---------------------------------------------------------------

// Source is the result of loading a rule text.
type Source struct {
	Table      *grammar.Table
	Start      grammar.RuleID
	Candidates []string
	Pair       *grammar.Pair // non-nil if Start encodes a repetition pair
}

// Option configures Load.
type Option func(*loader)

type loader struct {
	name      string
	start     grammar.RuleID
	overrides []string
}

// Override replaces a rule after the grammar has been read. line is a rule
// line like `8: 42 | 42 8`. Overriding an absent rule adds it.
func Override(line string) Option {
	return func(l *loader) {
		l.overrides = append(l.overrides, line)
	}
}

// Start sets the start rule. Default is rule 0.
func Start(id grammar.RuleID) Option {
	return func(l *loader) {
		l.start = id
	}
}

// Name sets the name of the grammar. Default is "rules".
func Name(name string) Option {
	return func(l *loader) {
		l.name = name
	}
}

// Load reads rules and candidates from r. Rules end at the first empty line;
// all non-empty lines after it are candidates.
//
// Load does not check references. Unknown rules are detected when matching.
func Load(r io.Reader, opts ...Option) (*Source, error) {
	l := &loader{name: "rules"}
	for _, opt := range opts {
		opt(l)
	}
	b := grammar.NewBuilder(l.name)
	src := &Source{Start: l.start}
	lines := bufio.NewScanner(r)
	lineno, inRules := 0, true
	for lines.Scan() {
		lineno++
		line := strings.TrimRight(lines.Text(), " \t\r")
		if inRules {
			if strings.TrimSpace(line) == "" {
				inRules = false
				continue
			}
			id, rule, err := ParseRule(line)
			if err != nil {
				return nil, atLine(err, lineno)
			}
			if err := b.Define(id, rule); err != nil {
				return nil, &SyntaxError{Line: lineno, Col: 1, Msg: err.Error()}
			}
			continue
		}
		if line == "" {
			continue
		}
		src.Candidates = append(src.Candidates, line)
	}
	if err := lines.Err(); err != nil {
		return nil, fmt.Errorf("reading rule text: %w", err)
	}
	for _, o := range l.overrides {
		id, rule, err := ParseRule(o)
		if err != nil {
			return nil, fmt.Errorf("override %q: %w", o, err)
		}
		b.Replace(id, rule)
	}
	table, err := b.Table()
	if err != nil {
		return nil, err
	}
	src.Table = table
	if p, ok := table.FindPair(l.start); ok {
		src.Pair = &p
	}
	tracer().Infof("loaded grammar %s with %d rules and %d candidates", l.name,
		table.Size(), len(src.Candidates))
	return src, nil
}

func atLine(err error, lineno int) error {
	var serr *SyntaxError
	if errors.As(err, &serr) {
		serr.Line = lineno
		return serr
	}
	return fmt.Errorf("line %d: %w", lineno, err)
}
