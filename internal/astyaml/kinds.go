package astyaml

import (
	"gopkg.in/yaml.v3"

	"github.com/funvibe/peregrine/internal/ast"
	"github.com/funvibe/peregrine/internal/token"
)

// decodeKind decodes the body of a node whose kind key has been read.
func (d *decoder) decodeKind(kind ast.Kind, body *yaml.Node, tok token.Token) (ast.Node, error) {
	switch kind {
	// Leaves
	case ast.KindPass:
		return &ast.PassStatement{Token: tok}, nil
	case ast.KindContinue:
		return &ast.ContinueStatement{Token: tok}, nil
	case ast.KindBreak:
		return &ast.BreakStatement{Token: tok}, nil
	case ast.KindNone:
		return &ast.NoneLiteral{Token: tok}, nil
	case ast.KindNoLiteral:
		return &ast.NoLiteral{Token: tok}, nil
	case ast.KindIdentifier, ast.KindType, ast.KindInteger, ast.KindDecimal,
		ast.KindString, ast.KindBool, ast.KindCpp:
		v, err := d.leafValue(body, kind)
		if err != nil {
			return nil, err
		}
		if kind == ast.KindInteger || kind == ast.KindDecimal {
			if v, err = number(kind, v); err != nil {
				return nil, d.errorf(body, "%v", err)
			}
		}
		return leaf(kind, v, tok), nil

	// Wrappers around a single node
	case ast.KindReturn:
		rs := &ast.ReturnStatement{Token: tok}
		v, err := d.wrapped(body, "value", true)
		if err != nil {
			return nil, err
		}
		rs.Value = v
		return rs, nil
	case ast.KindRaise:
		v, err := d.wrapped(body, "value", false)
		if err != nil {
			return nil, err
		}
		return &ast.RaiseStatement{Token: tok, Value: v}, nil
	case ast.KindStatic:
		v, err := d.wrapped(body, "body", false)
		if err != nil {
			return nil, err
		}
		return &ast.StaticStatement{Token: tok, Body: v}, nil
	case ast.KindInline:
		v, err := d.wrapped(body, "body", false)
		if err != nil {
			return nil, err
		}
		return &ast.InlineStatement{Token: tok, Body: v}, nil
	case ast.KindListType:
		v, err := d.wrappedWith(body, "element", d.typeNode)
		if err != nil {
			return nil, err
		}
		return &ast.ListType{Token: tok, Element: v}, nil

	// Sequences
	case ast.KindBlock:
		block, err := d.block(d.bodyOrField(body, "statements"))
		if err != nil {
			return nil, err
		}
		block.Token = tok
		return block, nil
	case ast.KindScope:
		block, err := d.block(d.bodyOrField(body, "body"))
		if err != nil {
			return nil, err
		}
		return &ast.ScopeStatement{Token: tok, Body: block}, nil
	case ast.KindListLiteral:
		elems, err := d.nodes(d.bodyOrField(body, "elements"), d.node)
		if err != nil {
			return nil, err
		}
		return &ast.ListLiteral{Token: tok, Elements: elems}, nil
	case ast.KindImport:
		return d.importStatement(body, tok)
	}

	// Everything else has a field mapping.
	f, err := d.mapping(body)
	if err != nil {
		return nil, err
	}
	switch kind {
	case ast.KindFunctionDef:
		return d.function(f, tok)
	case ast.KindVariable:
		return d.variable(f, tok)
	case ast.KindConst:
		return d.constant(f, tok)
	case ast.KindTypeDef:
		return d.typeDefinition(f, tok)
	case ast.KindIf:
		return d.ifStatement(f, tok)
	case ast.KindWhile:
		return d.whileStatement(f, tok)
	case ast.KindFor:
		return d.forStatement(f, tok)
	case ast.KindMatch:
		return d.matchStatement(f, tok)
	case ast.KindDecorator:
		return d.decorator(f, tok)
	case ast.KindAssert:
		cond, err := d.required(f, "cond", d.node)
		if err != nil {
			return nil, err
		}
		return &ast.AssertStatement{Token: tok, Condition: cond}, nil
	case ast.KindDictLiteral:
		return d.dictLiteral(f, tok)
	case ast.KindIndex:
		container, err := d.required(f, "container", d.node)
		if err != nil {
			return nil, err
		}
		key, err := d.required(f, "key", d.node)
		if err != nil {
			return nil, err
		}
		return &ast.IndexExpression{Token: tok, Container: container, Key: key}, nil
	case ast.KindBinary:
		return d.binary(f, tok)
	case ast.KindPrefix:
		op, err := d.scalar(f.get("op"), "operator")
		if err != nil {
			return nil, err
		}
		right, err := d.required(f, "right", d.node)
		if err != nil {
			return nil, err
		}
		tok.Lexeme = op
		return &ast.PrefixExpression{Token: tok, Operator: op, Right: right}, nil
	case ast.KindCall:
		fn, err := d.required(f, "func", d.node)
		if err != nil {
			return nil, err
		}
		args, err := d.nodes(f.get("args"), d.node)
		if err != nil {
			return nil, err
		}
		return &ast.CallExpression{Token: tok, Function: fn, Arguments: args}, nil
	case ast.KindDot:
		owner, err := d.required(f, "owner", d.node)
		if err != nil {
			return nil, err
		}
		member, err := d.required(f, "member", d.node)
		if err != nil {
			return nil, err
		}
		return &ast.DotExpression{Token: tok, Owner: owner, Referenced: member}, nil
	case ast.KindDictType:
		key, err := d.required(f, "key", d.typeNode)
		if err != nil {
			return nil, err
		}
		value, err := d.required(f, "value", d.typeNode)
		if err != nil {
			return nil, err
		}
		return &ast.DictType{Token: tok, Key: key, Value: value}, nil
	case ast.KindFunctionType:
		args, err := d.nodes(f.get("args"), d.typeNode)
		if err != nil {
			return nil, err
		}
		returns, err := d.nodes(f.get("returns"), d.typeNode)
		if err != nil {
			return nil, err
		}
		return &ast.FunctionType{Token: tok, Arguments: args, Returns: returns}, nil
	case ast.KindUnion:
		return d.union(f, tok)
	case ast.KindEnum:
		return d.enum(f, tok)
	}

	return nil, d.errorf(f.node, "%s cannot appear in a document", kind)
}

func leaf(kind ast.Kind, v string, tok token.Token) ast.Node {
	if tok.Lexeme == "" {
		tok.Lexeme = v
	}
	switch kind {
	case ast.KindIdentifier:
		return &ast.Identifier{Token: tok, Value: v}
	case ast.KindType:
		return &ast.TypeExpression{Token: tok, Value: v}
	case ast.KindInteger:
		return &ast.IntegerLiteral{Token: tok, Value: v}
	case ast.KindDecimal:
		return &ast.DecimalLiteral{Token: tok, Value: v}
	case ast.KindString:
		return &ast.StringLiteral{Token: tok, Value: v}
	case ast.KindBool:
		return &ast.BoolLiteral{Token: tok, Value: v}
	default:
		return &ast.CppStatement{Token: tok, Value: v}
	}
}

// leafValue reads a leaf's text, given directly or as {value: ...}.
func (d *decoder) leafValue(body *yaml.Node, kind ast.Kind) (string, error) {
	if body != nil && body.Kind == yaml.MappingNode {
		f, err := d.mapping(body)
		if err != nil {
			return "", err
		}
		body = f.get("value")
	}
	return d.scalar(body, kind.String()+" value")
}

// bodyOrField returns body itself, or body[key] when body is a field
// mapping rather than a node.
func (d *decoder) bodyOrField(body *yaml.Node, key string) *yaml.Node {
	if body == nil || body.Kind != yaml.MappingNode || isNodeMapping(body) {
		return body
	}
	f, err := d.mapping(body)
	if err != nil {
		return nil
	}
	return f.get(key)
}

// isNodeMapping reports whether n is a one-key mapping keyed by a node kind.
func isNodeMapping(n *yaml.Node) bool {
	if len(n.Content) != 2 {
		return false
	}
	_, ok := ast.KindByName(n.Content[0].Value)
	return ok
}

// wrapped decodes the single child of a wrapper node, given directly or
// under key.
func (d *decoder) wrapped(body *yaml.Node, key string, optional bool) (ast.Node, error) {
	child := d.bodyOrField(body, key)
	if isNull(child) {
		if optional {
			return nil, nil
		}
		return nil, d.errorf(body, "missing %q", key)
	}
	return d.node(child)
}

func (d *decoder) wrappedWith(body *yaml.Node, key string, decode func(*yaml.Node) (ast.Node, error)) (ast.Node, error) {
	child := d.bodyOrField(body, key)
	if isNull(child) {
		return nil, d.errorf(body, "missing %q", key)
	}
	return decode(child)
}
