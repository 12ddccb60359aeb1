// Package parser turns Python source into syntax trees and extracts the
// compute-kernel definitions the analyzer cares about.
//
// Parsing is backed by tree-sitter, which is error-tolerant: malformed
// source still yields a tree, with ERROR/MISSING nodes marking the damage.
// Callers decide how much damage they accept via Tree.HasError.
package parser

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Tree is a parsed Python source file. It owns the underlying tree-sitter
// tree and must be released with Close.
type Tree struct {
	tree *sitter.Tree
	src  []byte
}

// Parse parses src as Python source. Each call uses a fresh tree-sitter
// parser instance, so Parse is safe for concurrent use.
func Parse(ctx context.Context, src []byte) (*Tree, error) {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())

	tree, err := p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse python source: %w", err)
	}
	return &Tree{tree: tree, src: src}, nil
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	t.tree.Close()
}

// Root returns the root node of the syntax tree.
func (t *Tree) Root() *sitter.Node {
	return t.tree.RootNode()
}

// HasError reports whether the source failed to parse cleanly, i.e. the
// tree contains ERROR or MISSING nodes.
func (t *Tree) HasError() bool {
	return t.tree.RootNode().HasError()
}

// Source returns the raw source bytes the tree was parsed from.
func (t *Tree) Source() []byte {
	return t.src
}
