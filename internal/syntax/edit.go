package syntax

// ReplaceToken returns a new tree with token id replaced by repl. Only the
// nodes on the path from the token to the root are copied.
func (t *Tree) ReplaceToken(id TokenID, repl *Token) *Tree {
	info := t.tok(id)
	if info.green == repl {
		return t
	}
	return t.rebuild(info.parent, info.slot, repl)
}

// ReplaceNode returns a new tree with node id replaced by repl.
func (t *Tree) ReplaceNode(id NodeID, repl *Node) *Tree {
	info := t.node(id)
	if info.green == repl {
		return t
	}
	if info.parent == NoNode {
		return t.withRoot(repl)
	}
	return t.rebuild(info.parent, info.slot, repl)
}

// ReplaceTokens applies several token replacements in one pass.
func (t *Tree) ReplaceTokens(repl map[TokenID]*Token) *Tree {
	if len(repl) == 0 {
		return t
	}
	return t.withRoot(t.rewriteNode(t.Root(), repl))
}

func (t *Tree) rewriteNode(id NodeID, repl map[TokenID]*Token) *Node {
	info := t.node(id)
	// untouched subtree: share it
	touched := false
	for tk := range repl {
		if tk >= info.firstTok && tk < info.endTok {
			touched = true
			break
		}
	}
	if !touched {
		return info.green
	}
	children := make([]Element, len(info.children))
	for i, c := range info.children {
		if c.IsToken() {
			if r, ok := repl[c.Token]; ok {
				children[i] = r
			} else {
				children[i] = t.tok(c.Token).green
			}
			continue
		}
		children[i] = t.rewriteNode(c.Node, repl)
	}
	return NewNode(info.green.Kind, children...)
}

func (t *Tree) rebuild(parent NodeID, slot int, child Element) *Tree {
	for parent != NoNode {
		p := t.node(parent)
		child = p.green.WithChild(slot, child)
		slot = p.slot
		parent = p.parent
	}
	return t.withRoot(child.(*Node))
}
