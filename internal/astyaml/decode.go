package astyaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/peregrine/internal/ast"
	"github.com/funvibe/peregrine/internal/token"
)

var ErrInvalidDocument = errors.New("invalid AST document")

// wildcardPattern is the match pattern shorthand for the wildcard case.
const wildcardPattern = "_"

// LoadFile reads an AST document from path.
func LoadFile(path string) (*ast.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Decode(bytes.NewReader(data), path)
}

// Decode reads a single AST document from r. name is used in error
// messages and as the program's file when the document does not set one.
func Decode(r io.Reader, name string) (*ast.Program, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w: empty document", name, ErrInvalidDocument)
		}
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	d := &decoder{name: name}
	return d.program(&root)
}

type decoder struct {
	name string
}

func (d *decoder) errorf(n *yaml.Node, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if n == nil {
		return fmt.Errorf("%s: %w: %s", d.name, ErrInvalidDocument, msg)
	}
	return fmt.Errorf("%s:%d: %w: %s", d.name, n.Line, ErrInvalidDocument, msg)
}

// fields is a decoded YAML mapping.
type fields struct {
	node   *yaml.Node
	values map[string]*yaml.Node
}

func (f fields) get(key string) *yaml.Node {
	return f.values[key]
}

func (f fields) has(key string) bool {
	n, ok := f.values[key]
	return ok && !isNull(n)
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && (n.Kind == yaml.DocumentNode || n.Kind == yaml.AliasNode) {
		if n.Kind == yaml.DocumentNode {
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		} else {
			n = n.Alias
		}
	}
	return n
}

func isNull(n *yaml.Node) bool {
	n = resolve(n)
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func (d *decoder) mapping(n *yaml.Node) (fields, error) {
	n = resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return fields{}, d.errorf(n, "expected a mapping")
	}
	f := fields{node: n, values: make(map[string]*yaml.Node, len(n.Content)/2)}
	for i := 0; i+1 < len(n.Content); i += 2 {
		f.values[n.Content[i].Value] = resolve(n.Content[i+1])
	}
	return f, nil
}

func (d *decoder) sequence(n *yaml.Node) ([]*yaml.Node, error) {
	if isNull(n) {
		return nil, nil
	}
	n = resolve(n)
	if n.Kind != yaml.SequenceNode {
		return nil, d.errorf(n, "expected a sequence")
	}
	out := make([]*yaml.Node, len(n.Content))
	for i, c := range n.Content {
		out[i] = resolve(c)
	}
	return out, nil
}

func (d *decoder) scalar(n *yaml.Node, what string) (string, error) {
	n = resolve(n)
	if n == nil {
		return "", d.errorf(nil, "missing %s", what)
	}
	if n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return "", d.errorf(n, "expected a scalar %s", what)
	}
	return n.Value, nil
}

// meta reads the line/col/text metadata of a node body into tok.
func (d *decoder) meta(body *yaml.Node, tok *token.Token) error {
	body = resolve(body)
	if body == nil || body.Kind != yaml.MappingNode {
		return nil
	}
	f, err := d.mapping(body)
	if err != nil {
		return err
	}
	if n := f.get("line"); n != nil {
		if err := n.Decode(&tok.Line); err != nil {
			return d.errorf(n, "line: %v", err)
		}
	}
	if n := f.get("col"); n != nil {
		if err := n.Decode(&tok.Column); err != nil {
			return d.errorf(n, "col: %v", err)
		}
	}
	if n := f.get("text"); n != nil {
		tok.Statement = n.Value
	}
	return nil
}

func (d *decoder) program(root *yaml.Node) (*ast.Program, error) {
	f, err := d.mapping(root)
	if err != nil {
		return nil, err
	}
	prog := &ast.Program{File: d.name}
	if n := f.get("file"); n != nil {
		prog.File = n.Value
	}
	block, err := d.block(f.get("statements"))
	if err != nil {
		return nil, err
	}
	prog.Statements = block.Statements
	return prog, nil
}

// block decodes a statement sequence. A missing block is empty.
func (d *decoder) block(n *yaml.Node) (*ast.BlockStatement, error) {
	items, err := d.sequence(n)
	if err != nil {
		return nil, err
	}
	block := &ast.BlockStatement{}
	for _, item := range items {
		stmt, err := d.node(item)
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	return block, nil
}

// optionalBlock decodes a block that may be absent altogether.
func (d *decoder) optionalBlock(f fields, key string) (*ast.BlockStatement, error) {
	if !f.has(key) {
		return nil, nil
	}
	return d.block(f.get(key))
}

func (d *decoder) nodes(n *yaml.Node, decode func(*yaml.Node) (ast.Node, error)) ([]ast.Node, error) {
	items, err := d.sequence(n)
	if err != nil {
		return nil, err
	}
	out := make([]ast.Node, 0, len(items))
	for _, item := range items {
		node, err := decode(item)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

// optional decodes an optional child; absent children become nil.
func (d *decoder) optional(f fields, key string, decode func(*yaml.Node) (ast.Node, error)) (ast.Node, error) {
	if !f.has(key) {
		return nil, nil
	}
	return decode(f.get(key))
}

// required decodes a child that must be present.
func (d *decoder) required(f fields, key string, decode func(*yaml.Node) (ast.Node, error)) (ast.Node, error) {
	if !f.has(key) {
		return nil, d.errorf(f.node, "missing %q", key)
	}
	return decode(f.get(key))
}

// identifier decodes a name given as a scalar or as an ident node.
func (d *decoder) identifier(n *yaml.Node) (*ast.Identifier, error) {
	n = resolve(n)
	if n != nil && n.Kind == yaml.ScalarNode {
		v, err := d.scalar(n, "name")
		if err != nil {
			return nil, err
		}
		return &ast.Identifier{Value: v}, nil
	}
	node, err := d.node(n)
	if err != nil {
		return nil, err
	}
	id, ok := node.(*ast.Identifier)
	if !ok {
		return nil, d.errorf(n, "expected an identifier, got %s", node.Kind())
	}
	return id, nil
}

func (d *decoder) requiredIdentifier(f fields, key string) (*ast.Identifier, error) {
	if !f.has(key) {
		return nil, d.errorf(f.node, "missing %q", key)
	}
	return d.identifier(f.get(key))
}

// typeNode decodes a node in type position, where a scalar names a type.
func (d *decoder) typeNode(n *yaml.Node) (ast.Node, error) {
	n = resolve(n)
	if n != nil && n.Kind == yaml.ScalarNode && n.Tag != "!!null" {
		return &ast.TypeExpression{Value: n.Value}, nil
	}
	return d.node(n)
}

// pattern decodes a match pattern, where "_" is the wildcard.
func (d *decoder) pattern(n *yaml.Node) (ast.Node, error) {
	n = resolve(n)
	if n != nil && n.Kind == yaml.ScalarNode && n.Tag == "!!str" && n.Value == wildcardPattern {
		return &ast.NoLiteral{}, nil
	}
	return d.node(n)
}

// node decodes any node, including expression shorthands.
func (d *decoder) node(n *yaml.Node) (ast.Node, error) {
	n = resolve(n)
	if n == nil {
		return nil, d.errorf(nil, "missing node")
	}

	switch n.Kind {
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!int":
			v, err := number(ast.KindInteger, n.Value)
			if err != nil {
				return nil, d.errorf(n, "%v", err)
			}
			return &ast.IntegerLiteral{Value: v}, nil
		case "!!float":
			v, err := number(ast.KindDecimal, n.Value)
			if err != nil {
				return nil, d.errorf(n, "%v", err)
			}
			return &ast.DecimalLiteral{Value: v}, nil
		case "!!bool":
			if strings.EqualFold(n.Value, "true") {
				return &ast.BoolLiteral{Value: "True"}, nil
			}
			return &ast.BoolLiteral{Value: "False"}, nil
		case "!!null":
			return &ast.NoLiteral{}, nil
		default:
			return &ast.Identifier{Value: n.Value}, nil
		}
	case yaml.MappingNode:
	default:
		return nil, d.errorf(n, "expected a node")
	}

	if len(n.Content) != 2 {
		return nil, d.errorf(n, "a node must have exactly one kind key, got %d keys", len(n.Content)/2)
	}
	tag, body := n.Content[0].Value, resolve(n.Content[1])
	kind, ok := ast.KindByName(tag)
	if !ok {
		return nil, d.errorf(n, "unknown node kind %q", tag)
	}

	// Positions come from explicit metadata only: document lines are not
	// source lines.
	var tok token.Token
	if err := d.meta(body, &tok); err != nil {
		return nil, err
	}
	return d.decodeKind(kind, body, tok)
}
