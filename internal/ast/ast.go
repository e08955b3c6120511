// Package ast holds the parent-linked abstract syntax tree the engine
// package assembles during a parse. Nodes are addressed by string id and
// stored in a flat map rather than by pointer, keeping the tree trivially
// acyclic and serializable (spec §3, §9 "Parent links without cycles").
package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind distinguishes a terminal leaf from a non-terminal interior node.
type Kind int

const (
	TerminalNode Kind = iota
	NonTerminalNode
)

func (k Kind) String() string {
	if k == TerminalNode {
		return "terminal"
	}
	return "non_terminal"
}

// Node is one AST node. Parent is empty for the root. ProductionIndex is
// only meaningful for non-terminal nodes, identifying the production the
// node was reduced by.
type Node struct {
	ID              string
	Symbol          string
	Kind            Kind
	Children        []string
	Parent          string
	ProductionIndex int
	HasProduction   bool
}

// Tree is the result of one parse: a flat node map plus the id of the root,
// or an empty Root if no root could be determined (spec §4.5 "AST
// assembly").
type Tree struct {
	Nodes map[string]*Node
	Root  string
}

// Builder assembles a Tree incrementally as the engine's shift-reduce
// driver runs, handing out monotonically increasing string ids (spec §3:
// "Node ids are monotonically increasing strings unique within one
// parse").
type Builder struct {
	nodes   map[string]*Node
	next    int
	created []string // ids in creation order, for root-finding fallback
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{nodes: map[string]*Node{}}
}

// NewTerminal creates a new terminal leaf node for the given token text and
// returns its id. It has no children and no parent until some later
// reduction links it.
func (b *Builder) NewTerminal(symbol string) string {
	id := b.allocID()
	b.nodes[id] = &Node{ID: id, Symbol: symbol, Kind: TerminalNode}
	b.created = append(b.created, id)
	return id
}

// NewNonTerminal creates a new non-terminal node labeled symbol, reduced by
// production productionIndex, with the given ordered child ids. Each
// child's Parent is updated to the new node's id, matching spec §4.5 step
// 3 of the reduce action ("Update each child's parent to the new node
// id"). Children are linked in left-to-right rhs order (spec §8 AST law).
func (b *Builder) NewNonTerminal(symbol string, productionIndex int, children []string) string {
	id := b.allocID()
	node := &Node{
		ID:              id,
		Symbol:          symbol,
		Kind:            NonTerminalNode,
		Children:        append([]string(nil), children...),
		ProductionIndex: productionIndex,
		HasProduction:   true,
	}
	b.nodes[id] = node
	b.created = append(b.created, id)

	for _, childID := range children {
		if child, ok := b.nodes[childID]; ok {
			child.Parent = id
		}
	}

	return id
}

func (b *Builder) allocID() string {
	id := "n" + strconv.Itoa(b.next)
	b.next++
	return id
}

// Build finalizes the tree and selects its root, per spec §4.5: the last
// node created carrying the user start symbol startSymbol; failing that,
// the last parent-less non-terminal node with children; failing that, the
// last parent-less node of any kind.
func (b *Builder) Build(startSymbol string) Tree {
	root := ""

	for i := len(b.created) - 1; i >= 0; i-- {
		n := b.nodes[b.created[i]]
		if n.Kind == NonTerminalNode && n.Symbol == startSymbol && n.Parent == "" {
			root = n.ID
			break
		}
	}

	if root == "" {
		for i := len(b.created) - 1; i >= 0; i-- {
			n := b.nodes[b.created[i]]
			if n.Kind == NonTerminalNode && n.Parent == "" && len(n.Children) > 0 {
				root = n.ID
				break
			}
		}
	}

	if root == "" {
		for i := len(b.created) - 1; i >= 0; i-- {
			n := b.nodes[b.created[i]]
			if n.Parent == "" {
				root = n.ID
				break
			}
		}
	}

	return Tree{Nodes: b.nodes, Root: root}
}

// String renders the tree depth-first for debugging/test failure output,
// in the same "(SYMBOL ...)" leveled style used elsewhere in this module's
// ancestry for tree dumps.
func (t Tree) String() string {
	if t.Root == "" {
		return "(empty)"
	}
	var sb strings.Builder
	t.writeNode(&sb, t.Root, "")
	return sb.String()
}

func (t Tree) writeNode(sb *strings.Builder, id, indent string) {
	n := t.Nodes[id]
	if n == nil {
		return
	}
	if n.Kind == TerminalNode {
		fmt.Fprintf(sb, "%s(TERM %q)\n", indent, n.Symbol)
		return
	}
	fmt.Fprintf(sb, "%s(%s)\n", indent, n.Symbol)
	for _, childID := range n.Children {
		t.writeNode(sb, childID, indent+"  ")
	}
}
