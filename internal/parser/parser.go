// Package parser turns snippet source text into pkg/ast trees. It is a
// hand-written recursive-descent parser with a precedence-climbing expression
// core; the grammar is the statement/expression subset templates are written
// in. Callers normally reach it through template.ParseTemplate, which adds
// source-location context to errors and sanitizes the resulting tree.
package parser

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-asttpl/pkg/ast"
)

// Error is a syntax error with the 1-based position of the offending token.
type Error struct {
	Line int
	Col  int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

// Parse parses a snippet into its Program root. Parsed nodes carry source
// positions; strip them with ast.Sanitize when canonical trees are needed.
func Parse(source string) (*ast.Program, error) {
	toks, err := newLexer(source).scan()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	prog := &ast.Program{Base: ast.Base{Line: 1, Col: 1}}
	for !p.at(tokEOF, "") {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		prog.Body = append(prog.Body, stmt)
	}
	return prog, nil
}

var precedence = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3, "!=": 3,
	"<": 4, ">": 4, "<=": 4, ">=": 4,
	"+": 5, "-": 5,
	"*": 6, "/": 6,
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) take() token {
	tok := p.toks[p.pos]
	if tok.typ != tokEOF {
		p.pos++
	}
	return tok
}

// at reports whether the next token matches. An empty lit matches any
// literal of the given type.
func (p *parser) at(typ tokenType, lit string) bool {
	tok := p.peek()
	return tok.typ == typ && (lit == "" || tok.lit == lit)
}

func (p *parser) accept(typ tokenType, lit string) bool {
	if p.at(typ, lit) {
		p.take()
		return true
	}
	return false
}

func (p *parser) expect(lit string) (token, error) {
	tok := p.peek()
	if tok.typ == tokPunct && tok.lit == lit {
		return p.take(), nil
	}
	return token{}, p.errorf(tok, "unexpected %s, expected %q", tok, lit)
}

func (p *parser) errorf(tok token, format string, args ...any) error {
	return &Error{Line: tok.line, Col: tok.col, Msg: fmt.Sprintf(format, args...)}
}

func pos(tok token) ast.Base {
	return ast.Base{Line: tok.line, Col: tok.col}
}

func (p *parser) statement() (ast.Stmt, error) {
	tok := p.peek()

	if tok.typ == tokIdent {
		switch tok.lit {
		case "return":
			p.take()
			stmt := &ast.ReturnStmt{Base: pos(tok)}
			if !p.at(tokPunct, ";") && !p.at(tokPunct, "}") && !p.at(tokEOF, "") {
				value, err := p.expression()
				if err != nil {
					return nil, err
				}
				stmt.Value = value
			}
			if err := p.terminator(); err != nil {
				return nil, err
			}
			return stmt, nil

		case "var":
			p.take()
			nameTok := p.peek()
			if nameTok.typ != tokIdent || isKeyword(nameTok.lit) {
				return nil, p.errorf(nameTok, "unexpected %s, expected variable name", nameTok)
			}
			p.take()
			if _, err := p.expect("="); err != nil {
				return nil, err
			}
			value, err := p.expression()
			if err != nil {
				return nil, err
			}
			if err := p.terminator(); err != nil {
				return nil, err
			}
			name := &ast.Identifier{Base: pos(nameTok), Name: nameTok.lit}
			return &ast.VarStmt{Base: pos(tok), Name: name, Value: value}, nil

		case "if":
			p.take()
			if _, err := p.expect("("); err != nil {
				return nil, err
			}
			cond, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(")"); err != nil {
				return nil, err
			}
			then, err := p.statement()
			if err != nil {
				return nil, err
			}
			stmt := &ast.IfStmt{Base: pos(tok), Cond: cond, Then: then}
			if p.at(tokIdent, "else") {
				p.take()
				if stmt.Else, err = p.statement(); err != nil {
					return nil, err
				}
			}
			return stmt, nil
		}
	}

	if tok.typ == tokPunct && tok.lit == "{" {
		return p.block()
	}

	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.terminator(); err != nil {
		return nil, err
	}
	return &ast.ExpressionStmt{Base: *expr.Meta(), Expr: expr}, nil
}

// terminator consumes the statement-ending semicolon. It is optional before
// a closing brace or at end of input so one-expression templates do not need
// trailing punctuation.
func (p *parser) terminator() error {
	if p.accept(tokPunct, ";") || p.at(tokPunct, "}") || p.at(tokEOF, "") {
		return nil
	}
	tok := p.peek()
	return p.errorf(tok, "unexpected %s, expected %q", tok, ";")
}

func (p *parser) block() (*ast.BlockStmt, error) {
	open, err := p.expect("{")
	if err != nil {
		return nil, err
	}
	block := &ast.BlockStmt{Base: pos(open)}
	for !p.at(tokPunct, "}") {
		if p.at(tokEOF, "") {
			return nil, p.errorf(p.peek(), "unexpected end of input, expected %q", "}")
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		block.Body = append(block.Body, stmt)
	}
	p.take() // closing brace
	return block, nil
}

func (p *parser) expression() (ast.Expr, error) {
	left, err := p.binary(0)
	if err != nil {
		return nil, err
	}
	if p.at(tokPunct, "=") {
		eq := p.take()
		switch left.(type) {
		case *ast.Identifier, *ast.MemberExpr:
		default:
			return nil, p.errorf(eq, "invalid assignment target")
		}
		value, err := p.expression() // right-associative
		if err != nil {
			return nil, err
		}
		return &ast.AssignExpr{Base: *left.Meta(), Target: left, Value: value}, nil
	}
	return left, nil
}

func (p *parser) binary(minPrec int) (ast.Expr, error) {
	left, err := p.postfix()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.typ != tokPunct {
			return left, nil
		}
		prec, ok := precedence[tok.lit]
		if !ok || prec <= minPrec {
			return left, nil
		}
		p.take()
		right, err := p.binary(prec)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Base: *left.Meta(), Op: tok.lit, Left: left, Right: right}
	}
}

func (p *parser) postfix() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.at(tokPunct, "("):
			p.take()
			call := &ast.CallExpr{Base: *expr.Meta(), Callee: expr}
			for !p.at(tokPunct, ")") {
				if len(call.Args) > 0 {
					if _, err := p.expect(","); err != nil {
						return nil, err
					}
				}
				arg, err := p.expression()
				if err != nil {
					return nil, err
				}
				call.Args = append(call.Args, arg)
			}
			p.take() // closing paren
			expr = call

		case p.at(tokPunct, "."):
			p.take()
			propTok := p.peek()
			if propTok.typ != tokIdent {
				return nil, p.errorf(propTok, "unexpected %s, expected property name", propTok)
			}
			p.take()
			prop := &ast.Identifier{Base: pos(propTok), Name: propTok.lit}
			expr = &ast.MemberExpr{Base: *expr.Meta(), Object: expr, Property: prop}

		default:
			return expr, nil
		}
	}
}

func (p *parser) primary() (ast.Expr, error) {
	tok := p.peek()

	switch tok.typ {
	case tokNumber:
		p.take()
		value, err := strconv.ParseFloat(tok.lit, 64)
		if err != nil {
			return nil, p.errorf(tok, "invalid number %q", tok.lit)
		}
		return &ast.NumberLit{Base: pos(tok), Value: value, Raw: tok.lit}, nil

	case tokString:
		p.take()
		return &ast.StringLit{Base: pos(tok), Value: tok.lit}, nil

	case tokIdent:
		switch tok.lit {
		case "true", "false":
			p.take()
			return &ast.BoolLit{Base: pos(tok), Value: tok.lit == "true"}, nil
		case "null":
			p.take()
			return &ast.NullLit{Base: pos(tok)}, nil
		case "function":
			return p.function()
		}
		if isKeyword(tok.lit) {
			return nil, p.errorf(tok, "unexpected keyword %q", tok.lit)
		}
		p.take()
		return &ast.Identifier{Base: pos(tok), Name: tok.lit}, nil

	case tokPunct:
		switch tok.lit {
		case "(":
			p.take()
			expr, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(")"); err != nil {
				return nil, err
			}
			return expr, nil
		case "[":
			p.take()
			arr := &ast.ArrayLit{Base: pos(tok)}
			for !p.at(tokPunct, "]") {
				if len(arr.Elems) > 0 {
					if _, err := p.expect(","); err != nil {
						return nil, err
					}
				}
				elem, err := p.expression()
				if err != nil {
					return nil, err
				}
				arr.Elems = append(arr.Elems, elem)
			}
			p.take() // closing bracket
			return arr, nil
		}
	}

	return nil, p.errorf(tok, "unexpected %s, expected expression", tok)
}

func (p *parser) function() (ast.Expr, error) {
	tok := p.take() // function keyword
	fn := &ast.FuncExpr{Base: pos(tok)}
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	for !p.at(tokPunct, ")") {
		if len(fn.Params) > 0 {
			if _, err := p.expect(","); err != nil {
				return nil, err
			}
		}
		paramTok := p.peek()
		if paramTok.typ != tokIdent || isKeyword(paramTok.lit) {
			return nil, p.errorf(paramTok, "unexpected %s, expected parameter name", paramTok)
		}
		p.take()
		fn.Params = append(fn.Params, &ast.Identifier{Base: pos(paramTok), Name: paramTok.lit})
	}
	p.take() // closing paren
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	fn.Body = body
	return fn, nil
}

func isKeyword(lit string) bool {
	switch lit {
	case "return", "var", "if", "else", "function", "true", "false", "null":
		return true
	}
	return false
}
