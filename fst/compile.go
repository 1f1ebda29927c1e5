package fst

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrSyntax is wrapped by every expression compilation error.
var ErrSyntax = errors.New("fst: syntax error")

// DefaultAlphabet is the symbol set the wildcard '.' ranges over unless
// Options says otherwise: lowercase Latin letters and the hyphen used to
// mark long vowels.
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyz-"

// Options controls expression compilation.
type Options struct {
	// Alphabet is the set of symbols matched by '.' and by negated classes.
	Alphabet string
}

// reserved lists the runes that must be escaped to be read literally.
const reserved = `()|*+?.:[]$'\-`

// Escape backslash-escapes every reserved or whitespace rune in s so that
// Compile reads it as a literal string.
func Escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(reserved, r) || unicode.IsSpace(r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Quote renders s as a quoted literal. Quote("") is the empty string ''.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// Compile builds a transducer from expr.
//
// Grammar, loosest binding first:
//
//	a | b     union
//	a b       concatenation (whitespace is insignificant)
//	a:b       cross product of the input side of a and the output side of b
//	a* a+ a?  repetition
//	(a)       grouping
//	.         any alphabet symbol, mapped to itself
//	[a-z]     symbol class, [^...] negated against the alphabet
//	'...'     quoted literal; '' is the empty string
//	\x        escaped literal rune
//	$name     a transducer from defs
//
// An unescaped '-' outside a class is rejected.
func Compile(expr string, defs map[string]*FST, opts *Options) (*FST, error) {
	alphabet := DefaultAlphabet
	if opts != nil && opts.Alphabet != "" {
		alphabet = opts.Alphabet
	}
	p := &parser{src: []rune(expr), defs: defs, alphabet: []rune(alphabet)}
	f, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	if r, ok := p.peek(); ok {
		return nil, p.errorf("unexpected %q", r)
	}
	return f, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string, defs map[string]*FST, opts *Options) *FST {
	f, err := Compile(expr, defs, opts)
	if err != nil {
		panic(err)
	}
	return f
}

type parser struct {
	src      []rune
	pos      int
	defs     map[string]*FST
	alphabet []rune
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrSyntax, p.pos, fmt.Sprintf(format, args...))
}

// peek skips whitespace and returns the next rune without consuming it.
func (p *parser) peek() (rune, bool) {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

// raw consumes the next rune as is.
func (p *parser) raw() (rune, bool) {
	if p.pos >= len(p.src) {
		return 0, false
	}
	r := p.src[p.pos]
	p.pos++
	return r, true
}

func (p *parser) parseUnion() (*FST, error) {
	left, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	for {
		r, ok := p.peek()
		if !ok || r != '|' {
			return left, nil
		}
		p.pos++
		right, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		left = Union(left, right)
	}
}

func (p *parser) parseConcat() (*FST, error) {
	var out *FST
	for {
		r, ok := p.peek()
		if !ok || r == '|' || r == ')' {
			break
		}
		item, err := p.parseCross()
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = item
		} else {
			out = Concat(out, item)
		}
	}
	if out == nil {
		return EpsilonFST(), nil
	}
	return out, nil
}

func (p *parser) parseCross() (*FST, error) {
	left, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if r, ok := p.peek(); ok && r == ':' {
		p.pos++
		right, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		return Cross(left, right), nil
	}
	return left, nil
}

func (p *parser) parsePostfix() (*FST, error) {
	f, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		r, ok := p.peek()
		if !ok {
			return f, nil
		}
		switch r {
		case '*':
			f = Star(f)
		case '+':
			f = Plus(f)
		case '?':
			f = Optional(f)
		default:
			return f, nil
		}
		p.pos++
	}
}

func (p *parser) parseAtom() (*FST, error) {
	r, ok := p.peek()
	if !ok {
		return nil, p.errorf("unexpected end of expression")
	}
	p.pos++
	switch r {
	case '(':
		f, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		if c, ok := p.peek(); !ok || c != ')' {
			return nil, p.errorf("missing ')'")
		}
		p.pos++
		return f, nil
	case '.':
		return p.anySymbol(), nil
	case '[':
		return p.parseClass()
	case '\'':
		return p.parseQuoted()
	case '\\':
		c, ok := p.raw()
		if !ok {
			return nil, p.errorf("dangling escape")
		}
		return Symbol(c, c), nil
	case '$':
		return p.parseDefinition()
	case '-':
		return nil, p.errorf("unescaped '-'")
	case ')', '|', '*', '+', '?', ':', ']':
		return nil, p.errorf("unexpected %q", r)
	}
	return Symbol(r, r), nil
}

func (p *parser) anySymbol() *FST {
	labels := make([]Label, len(p.alphabet))
	for i, r := range p.alphabet {
		labels[i] = Label{In: r, Out: r}
	}
	return symbolSet(labels)
}

func (p *parser) parseClass() (*FST, error) {
	negate := false
	if p.pos < len(p.src) && p.src[p.pos] == '^' {
		negate = true
		p.pos++
	}
	var members []rune
	for {
		r, ok := p.raw()
		if !ok {
			return nil, p.errorf("missing ']'")
		}
		if r == ']' {
			break
		}
		if r == '\\' {
			if r, ok = p.raw(); !ok {
				return nil, p.errorf("dangling escape")
			}
		}
		if p.pos+1 < len(p.src) && p.src[p.pos] == '-' && p.src[p.pos+1] != ']' {
			p.pos++
			hi, _ := p.raw()
			if hi == '\\' {
				if hi, ok = p.raw(); !ok {
					return nil, p.errorf("dangling escape")
				}
			}
			if hi < r {
				return nil, p.errorf("bad range %q-%q", r, hi)
			}
			for c := r; c <= hi; c++ {
				members = append(members, c)
			}
			continue
		}
		members = append(members, r)
	}

	in := make(map[rune]bool, len(members))
	for _, r := range members {
		in[r] = true
	}
	var labels []Label
	if negate {
		for _, r := range p.alphabet {
			if !in[r] {
				labels = append(labels, Label{In: r, Out: r})
			}
		}
	} else {
		seen := make(map[rune]bool, len(members))
		for _, r := range members {
			if !seen[r] {
				seen[r] = true
				labels = append(labels, Label{In: r, Out: r})
			}
		}
	}
	if len(labels) == 0 {
		return Empty(), nil
	}
	return symbolSet(labels), nil
}

func (p *parser) parseQuoted() (*FST, error) {
	var b strings.Builder
	for {
		r, ok := p.raw()
		if !ok {
			return nil, p.errorf("unterminated quote")
		}
		if r == '\'' {
			break
		}
		if r == '\\' {
			c, ok := p.raw()
			if !ok {
				return nil, p.errorf("dangling escape")
			}
			switch c {
			case 't':
				r = '\t'
			case 'n':
				r = '\n'
			default:
				r = c
			}
		}
		b.WriteRune(r)
	}
	return Identity(b.String()), nil
}

func (p *parser) parseDefinition() (*FST, error) {
	start := p.pos
	for p.pos < len(p.src) {
		r := p.src[p.pos]
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		p.pos++
	}
	name := string(p.src[start:p.pos])
	if name == "" {
		return nil, p.errorf("empty definition name")
	}
	f, ok := p.defs[name]
	if !ok {
		return nil, p.errorf("undefined $%s", name)
	}
	return f, nil
}
