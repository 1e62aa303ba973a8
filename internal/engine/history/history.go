// Package history maintains the persistent edit graph of a buffer.
//
// Every mutating command advances the graph: a new node clones the
// current head's text and cursor, takes ownership of the old head as a
// child, and becomes the new head. Nodes are never dropped while the
// arena lives, so every past state remains readable. The parent
// relation is a plain back-index with no ownership implication; the
// head, by construction the newest state, has no parent.
//
// The graph is a tree: basing two divergent edits on the same past node
// needs no extra machinery. Current callers only ever extend the live
// head, so in practice the tree degenerates to a path. No command is
// bound to backward/forward traversal; the accessors exist for a
// future undo surface.
package history

import "github.com/dshills/modal/internal/engine/rope"

// NodeID is a stable handle into an Arena.
type NodeID int

// NoNode marks an absent node reference, such as the head's parent.
const NoNode NodeID = -1

type node struct {
	text     rope.Rope
	cursor   int
	parent   NodeID
	children []NodeID
}

// Arena owns the history nodes of a single buffer.
type Arena struct {
	nodes []node
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Start creates the root node holding the given text. The root has no
// parent and no children.
func (a *Arena) Start(text rope.Rope) NodeID {
	a.nodes = append(a.nodes, node{
		text:   text,
		cursor: 0,
		parent: NoNode,
	})
	return NodeID(len(a.nodes) - 1)
}

// Advance performs the clone-and-link step and returns the new head.
// The new node clones head's text and cursor (an O(1) structural-share
// copy), owns the old head as its child, and the old head's parent is
// set to the new node. The old head's text remains readable unchanged.
func (a *Arena) Advance(head NodeID) NodeID {
	prev := &a.nodes[head]
	next := node{
		text:     prev.text,
		cursor:   prev.cursor,
		parent:   NoNode,
		children: []NodeID{head},
	}
	a.nodes = append(a.nodes, next)
	id := NodeID(len(a.nodes) - 1)
	a.nodes[head].parent = id
	return id
}

// Text returns the text snapshot of the given node.
func (a *Arena) Text(id NodeID) rope.Rope {
	return a.nodes[id].text
}

// SetText replaces the text of the given node.
func (a *Arena) SetText(id NodeID, text rope.Rope) {
	a.nodes[id].text = text
}

// Cursor returns the char-offset cursor stored in the given node.
func (a *Arena) Cursor(id NodeID) int {
	return a.nodes[id].cursor
}

// SetCursor stores a char-offset cursor in the given node.
func (a *Arena) SetCursor(id NodeID, cursor int) {
	a.nodes[id].cursor = cursor
}

// Parent returns the node the given node advanced into, or NoNode for
// the head.
func (a *Arena) Parent(id NodeID) NodeID {
	return a.nodes[id].parent
}

// Children returns the nodes owned by the given node, oldest first.
func (a *Arena) Children(id NodeID) []NodeID {
	return a.nodes[id].children
}

// Len returns the number of nodes in the arena.
func (a *Arena) Len() int {
	return len(a.nodes)
}
