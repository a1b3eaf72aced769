// Package astyaml reads Peregrine ASTs serialized as YAML (or JSON).
//
// The parser that produces these documents lives outside this repository;
// the document format is the contract between it and the backend.
//
// A document is a mapping with the source file name and the top-level
// statements:
//
//	file: main.pe
//	statements:
//	  - enum: {name: Color, fields: [Red, {name: Green, value: 5}, Blue]}
//	  - function:
//	      name: main
//	      returns: int
//	      body:
//	        - var: {type: int, name: x, value: {dot: {owner: Color, member: Green}}}
//	        - assert:
//	            cond: {binary: {op: ">", left: x, right: 0}}
//	            line: 4
//	            text: assert x > 0
//
// Every node is a mapping with a single key naming its kind (the names
// returned by ast.Kind.String). Leaf kinds take a scalar; the others take a
// mapping of fields, which may also carry the metadata keys line, col and
// text (the statement source quoted by assert diagnostics).
//
// Shorthands: a bare scalar in expression position is a literal when its
// YAML type is int, float or bool and an identifier otherwise; in type
// position it is a type name; as a match pattern "_" is the wildcard. Blocks
// are plain sequences of statements.
package astyaml
