// Package codec serializes formula syntax trees to JSON and back.
//
// Each node is an object tagged with its type:
//
//	{"type":"BinaryOp","operator":"*",
//	 "left":{"type":"Variable","name":"gross_pay"},
//	 "right":{"type":"Literal","value":0.1}}
//
// The encoding is lossless: decoding an encoded tree yields a structurally
// identical tree, with bit-exact literal values. Decoding is strict and
// rejects unknown tags, unknown fields, invalid operators and missing
// children.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/ast"
)

// ErrInvalidTree is wrapped by every encoding and decoding failure caused by
// the shape of the tree or document.
var ErrInvalidTree = errors.New("invalid formula tree")

// jsonNode is the wire form of every node type.
type jsonNode struct {
	Type       ast.NodeType `json:"type"`
	Value      *float64     `json:"value,omitempty"`
	Name       string       `json:"name,omitempty"`
	Operator   ast.Operator `json:"operator,omitempty"`
	Left       *jsonNode    `json:"left,omitempty"`
	Right      *jsonNode    `json:"right,omitempty"`
	Operand    *jsonNode    `json:"operand,omitempty"`
	Condition  *jsonNode    `json:"condition,omitempty"`
	Consequent *jsonNode    `json:"consequent,omitempty"`
	Alternate  *jsonNode    `json:"alternate,omitempty"`
	Args       []*jsonNode  `json:"args,omitempty"`
}

// Marshal encodes node as compact JSON.
func Marshal(node ast.Node) ([]byte, error) {
	wire, err := encode(node, "$")
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("failed to encode formula tree: %w", err)
	}
	return data, nil
}

// MarshalIndent encodes node as indented JSON.
func MarshalIndent(node ast.Node, prefix, indent string) ([]byte, error) {
	wire, err := encode(node, "$")
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(wire, prefix, indent)
	if err != nil {
		return nil, fmt.Errorf("failed to encode formula tree: %w", err)
	}
	return data, nil
}

// ToJSON encodes node as a compact JSON string.
func ToJSON(node ast.Node) (string, error) {
	data, err := Marshal(node)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Unmarshal decodes a tree from JSON.
func Unmarshal(data []byte) (ast.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var wire jsonNode
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTree, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after formula tree", ErrInvalidTree)
	}
	return decode(&wire, "$")
}

// FromJSON decodes a tree from a JSON string.
func FromJSON(s string) (ast.Node, error) {
	return Unmarshal([]byte(s))
}

func invalid(path, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidTree, path, fmt.Sprintf(format, args...))
}
