package ast

import (
	"encoding/json"
	"fmt"
)

// envelope is the wire shape shared by every node kind. Only the fields
// relevant to a given kind are populated; the Type tag drives decoding.
// Positions and traversal flags are deliberately absent so serialised
// templates are canonical.
type envelope struct {
	Type     Kind        `json:"type"`
	Name     string      `json:"name,omitempty"`
	Raw      string      `json:"raw,omitempty"`
	Op       string      `json:"op,omitempty"`
	Num      *float64    `json:"num,omitempty"`
	Str      *string     `json:"str,omitempty"`
	Bool     *bool       `json:"bool,omitempty"`
	Body     []*envelope `json:"body,omitempty"`
	Expr     *envelope   `json:"expr,omitempty"`
	Value    *envelope   `json:"value,omitempty"`
	Cond     *envelope   `json:"cond,omitempty"`
	Then     *envelope   `json:"then,omitempty"`
	Else     *envelope   `json:"else,omitempty"`
	Callee   *envelope   `json:"callee,omitempty"`
	Object   *envelope   `json:"object,omitempty"`
	Property *envelope   `json:"property,omitempty"`
	Target   *envelope   `json:"target,omitempty"`
	Left     *envelope   `json:"left,omitempty"`
	Right    *envelope   `json:"right,omitempty"`
	Args     []*envelope `json:"args,omitempty"`
	Elems    []*envelope `json:"elems,omitempty"`
	Params   []*envelope `json:"params,omitempty"`
}

// MarshalProgram serialises a template root for the precompiled cache.
func MarshalProgram(p *Program) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("ast: cannot marshal nil program")
	}
	return json.Marshal(encode(p))
}

// UnmarshalProgram decodes a cache entry produced by MarshalProgram.
func UnmarshalProgram(data []byte) (*Program, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("ast: decode program: %w", err)
	}
	node, err := decode(&env)
	if err != nil {
		return nil, err
	}
	prog, ok := node.(*Program)
	if !ok {
		return nil, fmt.Errorf("ast: decoded %s, want %s", node.Kind(), KindProgram)
	}
	return prog, nil
}

func encode(n Node) *envelope {
	if n == nil {
		return nil
	}
	env := &envelope{Type: n.Kind()}
	switch t := n.(type) {
	case *Program:
		env.Body = encodeStmts(t.Body)
	case *ExpressionStmt:
		env.Expr = encode(t.Expr)
	case *ReturnStmt:
		env.Value = encodeExpr(t.Value)
	case *VarStmt:
		env.Name = t.Name.Name
		env.Value = encodeExpr(t.Value)
	case *IfStmt:
		env.Cond = encode(t.Cond)
		env.Then = encode(t.Then)
		env.Else = encodeStmt(t.Else)
	case *BlockStmt:
		env.Body = encodeStmts(t.Body)
	case *Identifier:
		env.Name = t.Name
	case *NumberLit:
		v := t.Value
		env.Num = &v
		env.Raw = t.Raw
	case *StringLit:
		v := t.Value
		env.Str = &v
	case *BoolLit:
		v := t.Value
		env.Bool = &v
	case *NullLit:
		// tag only
	case *ArrayLit:
		env.Elems = encodeExprs(t.Elems)
	case *CallExpr:
		env.Callee = encode(t.Callee)
		env.Args = encodeExprs(t.Args)
	case *MemberExpr:
		env.Object = encode(t.Object)
		env.Property = encode(t.Property)
	case *AssignExpr:
		env.Target = encode(t.Target)
		env.Value = encode(t.Value)
	case *BinaryExpr:
		env.Op = t.Op
		env.Left = encode(t.Left)
		env.Right = encode(t.Right)
	case *FuncExpr:
		env.Params = make([]*envelope, len(t.Params))
		for i, p := range t.Params {
			env.Params[i] = encode(p)
		}
		env.Body = encodeStmts(t.Body.Body)
	}
	return env
}

func decode(env *envelope) (Node, error) {
	if env == nil {
		return nil, fmt.Errorf("ast: decode nil envelope")
	}
	switch env.Type {
	case KindProgram:
		body, err := decodeStmts(env.Body)
		if err != nil {
			return nil, err
		}
		return &Program{Body: body}, nil
	case KindExpressionStmt:
		expr, err := decodeExpr(env.Expr)
		if err != nil {
			return nil, err
		}
		return &ExpressionStmt{Expr: expr}, nil
	case KindReturnStmt:
		if env.Value == nil {
			return &ReturnStmt{}, nil
		}
		value, err := decodeExpr(env.Value)
		if err != nil {
			return nil, err
		}
		return &ReturnStmt{Value: value}, nil
	case KindVarStmt:
		value, err := decodeExpr(env.Value)
		if err != nil {
			return nil, err
		}
		return &VarStmt{Name: &Identifier{Name: env.Name}, Value: value}, nil
	case KindIfStmt:
		cond, err := decodeExpr(env.Cond)
		if err != nil {
			return nil, err
		}
		then, err := decodeStmt(env.Then)
		if err != nil {
			return nil, err
		}
		var alt Stmt
		if env.Else != nil {
			if alt, err = decodeStmt(env.Else); err != nil {
				return nil, err
			}
		}
		return &IfStmt{Cond: cond, Then: then, Else: alt}, nil
	case KindBlockStmt:
		body, err := decodeStmts(env.Body)
		if err != nil {
			return nil, err
		}
		return &BlockStmt{Body: body}, nil
	case KindIdentifier:
		return &Identifier{Name: env.Name}, nil
	case KindNumberLit:
		lit := &NumberLit{Raw: env.Raw}
		if env.Num != nil {
			lit.Value = *env.Num
		}
		return lit, nil
	case KindStringLit:
		lit := &StringLit{}
		if env.Str != nil {
			lit.Value = *env.Str
		}
		return lit, nil
	case KindBoolLit:
		lit := &BoolLit{}
		if env.Bool != nil {
			lit.Value = *env.Bool
		}
		return lit, nil
	case KindNullLit:
		return &NullLit{}, nil
	case KindArrayLit:
		elems, err := decodeExprs(env.Elems)
		if err != nil {
			return nil, err
		}
		return &ArrayLit{Elems: elems}, nil
	case KindCallExpr:
		callee, err := decodeExpr(env.Callee)
		if err != nil {
			return nil, err
		}
		args, err := decodeExprs(env.Args)
		if err != nil {
			return nil, err
		}
		return &CallExpr{Callee: callee, Args: args}, nil
	case KindMemberExpr:
		object, err := decodeExpr(env.Object)
		if err != nil {
			return nil, err
		}
		property, err := decode(env.Property)
		if err != nil {
			return nil, err
		}
		ident, ok := property.(*Identifier)
		if !ok {
			return nil, fmt.Errorf("ast: member property must be %s, got %s", KindIdentifier, property.Kind())
		}
		return &MemberExpr{Object: object, Property: ident}, nil
	case KindAssignExpr:
		target, err := decodeExpr(env.Target)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(env.Value)
		if err != nil {
			return nil, err
		}
		return &AssignExpr{Target: target, Value: value}, nil
	case KindBinaryExpr:
		left, err := decodeExpr(env.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(env.Right)
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Op: env.Op, Left: left, Right: right}, nil
	case KindFuncExpr:
		var params []*Identifier
		if len(env.Params) > 0 {
			params = make([]*Identifier, len(env.Params))
		}
		for i, p := range env.Params {
			node, err := decode(p)
			if err != nil {
				return nil, err
			}
			ident, ok := node.(*Identifier)
			if !ok {
				return nil, fmt.Errorf("ast: function parameter must be %s, got %s", KindIdentifier, node.Kind())
			}
			params[i] = ident
		}
		body, err := decodeStmts(env.Body)
		if err != nil {
			return nil, err
		}
		return &FuncExpr{Params: params, Body: &BlockStmt{Body: body}}, nil
	default:
		return nil, fmt.Errorf("ast: unknown node type %q", env.Type)
	}
}

func encodeStmt(s Stmt) *envelope {
	if s == nil {
		return nil
	}
	return encode(s)
}

func encodeExpr(e Expr) *envelope {
	if e == nil {
		return nil
	}
	return encode(e)
}

func encodeStmts(stmts []Stmt) []*envelope {
	out := make([]*envelope, len(stmts))
	for i, s := range stmts {
		out[i] = encode(s)
	}
	return out
}

func encodeExprs(exprs []Expr) []*envelope {
	out := make([]*envelope, len(exprs))
	for i, e := range exprs {
		out[i] = encode(e)
	}
	return out
}

func decodeStmt(env *envelope) (Stmt, error) {
	node, err := decode(env)
	if err != nil {
		return nil, err
	}
	stmt, ok := node.(Stmt)
	if !ok {
		return nil, fmt.Errorf("ast: %s is not a statement", node.Kind())
	}
	return stmt, nil
}

func decodeExpr(env *envelope) (Expr, error) {
	node, err := decode(env)
	if err != nil {
		return nil, err
	}
	expr, ok := node.(Expr)
	if !ok {
		return nil, fmt.Errorf("ast: %s is not an expression", node.Kind())
	}
	return expr, nil
}

// decodeStmts and decodeExprs keep absent lists nil so decoded trees compare
// equal to freshly parsed ones.
func decodeStmts(envs []*envelope) ([]Stmt, error) {
	if len(envs) == 0 {
		return nil, nil
	}
	out := make([]Stmt, len(envs))
	for i, env := range envs {
		stmt, err := decodeStmt(env)
		if err != nil {
			return nil, err
		}
		out[i] = stmt
	}
	return out, nil
}

func decodeExprs(envs []*envelope) ([]Expr, error) {
	if len(envs) == 0 {
		return nil, nil
	}
	out := make([]Expr, len(envs))
	for i, env := range envs {
		expr, err := decodeExpr(env)
		if err != nil {
			return nil, err
		}
		out[i] = expr
	}
	return out, nil
}
