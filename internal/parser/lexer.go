package parser

import (
	"fmt"
	"strings"
)

type tokenType int

const (
	tokEOF tokenType = iota
	tokIdent
	tokNumber
	tokString
	tokPunct
)

type token struct {
	typ  tokenType
	lit  string
	line int
	col  int
}

func (t token) String() string {
	if t.typ == tokEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.lit)
}

// twoCharPuncts are matched greedily before their single-char prefixes.
var twoCharPuncts = []string{"==", "!=", "<=", ">=", "&&", "||"}

const singleCharPuncts = "(){}[],;.=<>+-*/"

type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

// scan tokenises the whole input up front; templates are small.
func (l *lexer) scan() ([]token, error) {
	var out []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.typ == tokEOF {
			return out, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return token{typ: tokEOF, line: l.line, col: l.col}, nil
	}

	line, col := l.line, l.col
	c := l.src[l.pos]

	switch {
	case isIdentStart(c):
		start := l.pos
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.advance()
		}
		return token{typ: tokIdent, lit: l.src[start:l.pos], line: line, col: col}, nil

	case c >= '0' && c <= '9':
		start := l.pos
		seenDot := false
		for l.pos < len(l.src) {
			ch := l.src[l.pos]
			if ch == '.' && !seenDot && l.pos+1 < len(l.src) && l.src[l.pos+1] >= '0' && l.src[l.pos+1] <= '9' {
				seenDot = true
				l.advance()
				continue
			}
			if ch < '0' || ch > '9' {
				break
			}
			l.advance()
		}
		return token{typ: tokNumber, lit: l.src[start:l.pos], line: line, col: col}, nil

	case c == '"' || c == '\'':
		return l.scanString(c)
	}

	if l.pos+1 < len(l.src) {
		two := l.src[l.pos : l.pos+2]
		for _, p := range twoCharPuncts {
			if two == p {
				l.advance()
				l.advance()
				return token{typ: tokPunct, lit: two, line: line, col: col}, nil
			}
		}
	}
	if strings.IndexByte(singleCharPuncts, c) >= 0 {
		l.advance()
		return token{typ: tokPunct, lit: string(c), line: line, col: col}, nil
	}

	return token{}, &Error{Line: line, Col: col, Msg: fmt.Sprintf("unexpected character %q", string(c))}
}

func (l *lexer) scanString(quote byte) (token, error) {
	line, col := l.line, l.col
	l.advance() // opening quote
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case quote:
			l.advance()
			return token{typ: tokString, lit: b.String(), line: line, col: col}, nil
		case '\\':
			l.advance()
			if l.pos >= len(l.src) {
				break
			}
			esc := l.src[l.pos]
			l.advance()
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\\', '"', '\'':
				b.WriteByte(esc)
			default:
				return token{}, &Error{Line: l.line, Col: l.col, Msg: fmt.Sprintf("unknown escape %q", string(esc))}
			}
		case '\n':
			return token{}, &Error{Line: line, Col: col, Msg: "unterminated string"}
		default:
			b.WriteByte(c)
			l.advance()
		}
	}
	return token{}, &Error{Line: line, Col: col, Msg: "unterminated string"}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			l.advance()
			continue
		}
		// line comments
		if c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/' {
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.advance()
			}
			continue
		}
		return
	}
}

func (l *lexer) advance() {
	if l.src[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
