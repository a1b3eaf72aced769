package astyaml

import (
	"gopkg.in/yaml.v3"

	"github.com/funvibe/peregrine/internal/ast"
	"github.com/funvibe/peregrine/internal/token"
)

// importStatement accepts 'import: math' or
// 'import: {module: math.vec, as: v, symbols: [dot, cross]}'.
func (d *decoder) importStatement(body *yaml.Node, tok token.Token) (ast.Node, error) {
	if body != nil && body.Kind == yaml.ScalarNode {
		module, err := d.scalar(body, "module")
		if err != nil {
			return nil, err
		}
		return &ast.ImportStatement{Token: tok, Module: module}, nil
	}
	f, err := d.mapping(body)
	if err != nil {
		return nil, err
	}
	module, err := d.scalar(f.get("module"), "module")
	if err != nil {
		return nil, err
	}
	imp := &ast.ImportStatement{Token: tok, Module: module}
	if f.has("as") {
		if imp.Alias, err = d.identifier(f.get("as")); err != nil {
			return nil, err
		}
	}
	symbols, err := d.sequence(f.get("symbols"))
	if err != nil {
		return nil, err
	}
	for _, s := range symbols {
		id, err := d.identifier(s)
		if err != nil {
			return nil, err
		}
		imp.Symbols = append(imp.Symbols, id)
	}
	return imp, nil
}

func (d *decoder) function(f fields, tok token.Token) (ast.Node, error) {
	name, err := d.requiredIdentifier(f, "name")
	if err != nil {
		return nil, err
	}
	fn := &ast.FunctionDefinition{Token: tok, Name: name}

	params, err := d.sequence(f.get("params"))
	if err != nil {
		return nil, err
	}
	for _, p := range params {
		pf, err := d.mapping(p)
		if err != nil {
			return nil, err
		}
		typ, err := d.required(pf, "type", d.typeNode)
		if err != nil {
			return nil, err
		}
		pname, err := d.requiredIdentifier(pf, "name")
		if err != nil {
			return nil, err
		}
		fn.Parameters = append(fn.Parameters, ast.Parameter{Type: typ, Name: pname})
	}

	if fn.ReturnType, err = d.optional(f, "returns", d.typeNode); err != nil {
		return nil, err
	}
	if fn.Body, err = d.block(f.get("body")); err != nil {
		return nil, err
	}
	return fn, nil
}

func (d *decoder) variable(f fields, tok token.Token) (ast.Node, error) {
	vs := &ast.VariableStatement{Token: tok}
	var err error
	if vs.Type, err = d.optional(f, "type", d.typeNode); err != nil {
		return nil, err
	}
	if vs.Name, err = d.required(f, "name", d.node); err != nil {
		return nil, err
	}
	if vs.Value, err = d.optional(f, "value", d.node); err != nil {
		return nil, err
	}
	return vs, nil
}

func (d *decoder) constant(f fields, tok token.Token) (ast.Node, error) {
	cd := &ast.ConstDeclaration{Token: tok}
	var err error
	if cd.Type, err = d.optional(f, "type", d.typeNode); err != nil {
		return nil, err
	}
	if cd.Name, err = d.requiredIdentifier(f, "name"); err != nil {
		return nil, err
	}
	if cd.Value, err = d.required(f, "value", d.node); err != nil {
		return nil, err
	}
	return cd, nil
}

func (d *decoder) typeDefinition(f fields, tok token.Token) (ast.Node, error) {
	name, err := d.requiredIdentifier(f, "name")
	if err != nil {
		return nil, err
	}
	base, err := d.required(f, "base", d.typeNode)
	if err != nil {
		return nil, err
	}
	return &ast.TypeDefinition{Token: tok, Name: name, Base: base}, nil
}

func (d *decoder) ifStatement(f fields, tok token.Token) (ast.Node, error) {
	cond, err := d.required(f, "cond", d.node)
	if err != nil {
		return nil, err
	}
	body, err := d.block(f.get("body"))
	if err != nil {
		return nil, err
	}
	is := &ast.IfStatement{Token: tok, Condition: cond, Body: body}

	elifs, err := d.sequence(f.get("elifs"))
	if err != nil {
		return nil, err
	}
	for _, e := range elifs {
		ef, err := d.mapping(e)
		if err != nil {
			return nil, err
		}
		econd, err := d.required(ef, "cond", d.node)
		if err != nil {
			return nil, err
		}
		ebody, err := d.block(ef.get("body"))
		if err != nil {
			return nil, err
		}
		is.Elifs = append(is.Elifs, ast.ElifClause{Condition: econd, Body: ebody})
	}

	if is.Else, err = d.optionalBlock(f, "else"); err != nil {
		return nil, err
	}
	return is, nil
}

func (d *decoder) whileStatement(f fields, tok token.Token) (ast.Node, error) {
	cond, err := d.required(f, "cond", d.node)
	if err != nil {
		return nil, err
	}
	body, err := d.block(f.get("body"))
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}, nil
}

func (d *decoder) forStatement(f fields, tok token.Token) (ast.Node, error) {
	fs := &ast.ForStatement{Token: tok}
	vars, err := d.sequence(f.get("vars"))
	if err != nil {
		return nil, err
	}
	for _, v := range vars {
		id, err := d.identifier(v)
		if err != nil {
			return nil, err
		}
		fs.Variables = append(fs.Variables, id)
	}
	if fs.Sequence, err = d.required(f, "in", d.node); err != nil {
		return nil, err
	}
	if fs.Body, err = d.block(f.get("body")); err != nil {
		return nil, err
	}
	return fs, nil
}

func (d *decoder) matchStatement(f fields, tok token.Token) (ast.Node, error) {
	subject, err := d.required(f, "subject", d.node)
	if err != nil {
		return nil, err
	}
	ms := &ast.MatchStatement{Token: tok, Subject: subject}

	cases, err := d.sequence(f.get("cases"))
	if err != nil {
		return nil, err
	}
	for _, c := range cases {
		cf, err := d.mapping(c)
		if err != nil {
			return nil, err
		}
		patterns, err := d.nodes(cf.get("patterns"), d.pattern)
		if err != nil {
			return nil, err
		}
		if len(patterns) == 0 {
			return nil, d.errorf(c, "case without patterns")
		}
		body, err := d.block(cf.get("body"))
		if err != nil {
			return nil, err
		}
		ms.Cases = append(ms.Cases, ast.MatchCase{Patterns: patterns, Body: body})
	}

	if ms.Default, err = d.optionalBlock(f, "default"); err != nil {
		return nil, err
	}
	return ms, nil
}

func (d *decoder) decorator(f fields, tok token.Token) (ast.Node, error) {
	decorators, err := d.nodes(f.get("decorators"), d.node)
	if err != nil {
		return nil, err
	}
	body, err := d.required(f, "body", d.node)
	if err != nil {
		return nil, err
	}
	return &ast.DecoratorStatement{Token: tok, Decorators: decorators, Body: body}, nil
}

func (d *decoder) dictLiteral(f fields, tok token.Token) (ast.Node, error) {
	pairs, err := d.sequence(f.get("pairs"))
	if err != nil {
		return nil, err
	}
	dl := &ast.DictLiteral{Token: tok}
	for _, p := range pairs {
		pf, err := d.mapping(p)
		if err != nil {
			return nil, err
		}
		key, err := d.required(pf, "key", d.node)
		if err != nil {
			return nil, err
		}
		value, err := d.required(pf, "value", d.node)
		if err != nil {
			return nil, err
		}
		dl.Pairs = append(dl.Pairs, ast.DictPair{Key: key, Value: value})
	}
	return dl, nil
}

func (d *decoder) binary(f fields, tok token.Token) (ast.Node, error) {
	op, err := d.scalar(f.get("op"), "operator")
	if err != nil {
		return nil, err
	}
	left, err := d.required(f, "left", d.node)
	if err != nil {
		return nil, err
	}
	right, err := d.required(f, "right", d.node)
	if err != nil {
		return nil, err
	}
	tok.Lexeme = op
	return &ast.BinaryExpression{Token: tok, Operator: op, Left: left, Right: right}, nil
}

func (d *decoder) union(f fields, tok token.Token) (ast.Node, error) {
	name, err := d.requiredIdentifier(f, "name")
	if err != nil {
		return nil, err
	}
	ul := &ast.UnionLiteral{Token: tok, Name: name}
	items, err := d.sequence(f.get("fields"))
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		ff, err := d.mapping(item)
		if err != nil {
			return nil, err
		}
		typ, err := d.required(ff, "type", d.typeNode)
		if err != nil {
			return nil, err
		}
		fname, err := d.requiredIdentifier(ff, "name")
		if err != nil {
			return nil, err
		}
		ul.Fields = append(ul.Fields, ast.UnionField{Type: typ, Name: fname})
	}
	return ul, nil
}

// enum accepts members as plain names or as {name, value} mappings.
func (d *decoder) enum(f fields, tok token.Token) (ast.Node, error) {
	name, err := d.requiredIdentifier(f, "name")
	if err != nil {
		return nil, err
	}
	el := &ast.EnumLiteral{Token: tok, Name: name}
	items, err := d.sequence(f.get("fields"))
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.Kind == yaml.ScalarNode {
			fname, err := d.identifier(item)
			if err != nil {
				return nil, err
			}
			el.Fields = append(el.Fields, ast.EnumField{Name: fname})
			continue
		}
		ff, err := d.mapping(item)
		if err != nil {
			return nil, err
		}
		fname, err := d.requiredIdentifier(ff, "name")
		if err != nil {
			return nil, err
		}
		value, err := d.optional(ff, "value", d.node)
		if err != nil {
			return nil, err
		}
		el.Fields = append(el.Fields, ast.EnumField{Name: fname, Value: value})
	}
	return el, nil
}
