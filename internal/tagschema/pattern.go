package tagschema

import (
	"fmt"
	"strings"

	"github.com/boyechko/pdf-autoa11y-sub001/internal/structtree"
)

// Pattern is a compiled child-sequence pattern (§4.2): whitespace-separated
// role atoms with postfix ?, *, + and parenthesized grouping; concatenation
// is implicit. Quantifiers are greedy by design (documented: a bare + could
// otherwise diverge against the atoms that follow it).
type Pattern struct {
	root patNode
	src  string
}

// patNode is the pattern AST. Each variant implements match against a
// continuation, per the backtracking walker described in §4.2.
type patNode interface {
	// match attempts to consume seq starting at pos, then calls cont with
	// the position immediately after the match. It returns true iff some
	// consumption width lets cont eventually succeed.
	match(seq []structtree.Role, pos int, cont func(int) bool) bool
}

type atomNode struct{ role structtree.Role }

func (a atomNode) match(seq []structtree.Role, pos int, cont func(int) bool) bool {
	if pos >= len(seq) || seq[pos] != a.role {
		return false
	}
	return cont(pos + 1)
}

type concatNode struct{ parts []patNode }

func (c concatNode) match(seq []structtree.Role, pos int, cont func(int) bool) bool {
	return matchSeq(c.parts, seq, pos, cont)
}

// matchSeq matches parts in order against seq starting at pos, threading a
// continuation through each so that backtracking a later part can force an
// earlier greedy quantifier to give back positions.
func matchSeq(parts []patNode, seq []structtree.Role, pos int, cont func(int) bool) bool {
	if len(parts) == 0 {
		return cont(pos)
	}
	return parts[0].match(seq, pos, func(next int) bool {
		return matchSeq(parts[1:], seq, next, cont)
	})
}

type optNode struct{ sub patNode }

func (o optNode) match(seq []structtree.Role, pos int, cont func(int) bool) bool {
	// Greedy: try consuming first, then falling back to zero-width.
	if o.sub.match(seq, pos, cont) {
		return true
	}
	return cont(pos)
}

type starNode struct{ sub patNode }

func (s starNode) match(seq []structtree.Role, pos int, cont func(int) bool) bool {
	return matchStar(s.sub, seq, pos, cont, map[int]bool{})
}

type plusNode struct{ sub patNode }

func (p plusNode) match(seq []structtree.Role, pos int, cont func(int) bool) bool {
	return p.sub.match(seq, pos, func(next int) bool {
		return matchStar(p.sub, seq, next, cont, map[int]bool{})
	})
}

// matchStar greedily consumes as many repetitions of sub as possible,
// backtracking one repetition at a time when cont fails. visited guards
// against a zero-width sub looping forever at the same position.
func matchStar(sub patNode, seq []structtree.Role, pos int, cont func(int) bool, visited map[int]bool) bool {
	if visited[pos] {
		return cont(pos)
	}
	visited[pos] = true
	if sub.match(seq, pos, func(next int) bool {
		if next == pos {
			// zero-width match of sub; don't recurse further on *.
			return false
		}
		return matchStar(sub, seq, next, cont, visited)
	}) {
		return true
	}
	return cont(pos)
}

// FullMatch reports whether seq is entirely consumed by p (§8 property 5).
func (p *Pattern) FullMatch(seq []structtree.Role) bool {
	if p == nil {
		return true
	}
	return p.root.match(seq, 0, func(pos int) bool { return pos == len(seq) })
}

// String returns the source text p was compiled from.
func (p *Pattern) String() string {
	if p == nil {
		return ""
	}
	return p.src
}

// --- recursive-descent parser ---

type token struct {
	kind string // "ident", "(", ")", "?", "*", "+"
	text string
}

func tokenize(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n':
			i++
		case c == '(' || c == ')' || c == '?' || c == '*' || c == '+':
			toks = append(toks, token{kind: string(c)})
			i++
		default:
			start := i
			for i < len(src) {
				c := src[i]
				if c == ' ' || c == '\t' || c == '\n' || c == '(' || c == ')' || c == '?' || c == '*' || c == '+' {
					break
				}
				i++
			}
			toks = append(toks, token{kind: "ident", text: src[start:i]})
		}
	}
	return toks, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() *token {
	if p.pos >= len(p.toks) {
		return nil
	}
	return &p.toks[p.pos]
}

func (p *parser) next() *token {
	t := p.peek()
	if t != nil {
		p.pos++
	}
	return t
}

// parseConcat parses a sequence of quantified terms until ")" or EOF.
func (p *parser) parseConcat() (patNode, error) {
	var parts []patNode
	for {
		t := p.peek()
		if t == nil || t.kind == ")" {
			break
		}
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		parts = append(parts, term)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return concatNode{parts: parts}, nil
}

func (p *parser) parseTerm() (patNode, error) {
	t := p.next()
	if t == nil {
		return nil, fmt.Errorf("unexpected end of pattern")
	}
	var base patNode
	switch t.kind {
	case "ident":
		base = atomNode{role: structtree.Role(t.text)}
	case "(":
		inner, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		closing := p.next()
		if closing == nil || closing.kind != ")" {
			return nil, fmt.Errorf("unclosed group")
		}
		base = inner
	default:
		return nil, fmt.Errorf("unexpected token %q", t.kind)
	}

	if q := p.peek(); q != nil {
		switch q.kind {
		case "?":
			p.next()
			return optNode{sub: base}, nil
		case "*":
			p.next()
			return starNode{sub: base}, nil
		case "+":
			p.next()
			return plusNode{sub: base}, nil
		}
	}
	return base, nil
}

// Compile parses src into a Pattern. Whitespace separates atoms;
// concatenation is implicit; ?, *, + are postfix quantifiers; parentheses
// group a sub-sequence.
func Compile(src string) (*Pattern, error) {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return &Pattern{root: concatNode{}, src: src}, nil
	}
	toks, err := tokenize(trimmed)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	root, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	if p.peek() != nil {
		return nil, fmt.Errorf("unexpected trailing token %q", p.peek().kind)
	}
	return &Pattern{root: root, src: src}, nil
}
