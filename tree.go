package astree

// walk visits nodes in pre-order with their depths, the root at depth 0. If f
// returns false, the node's children are skipped.
func (a *AST) walk(f func(n *Node, depth int) bool) {
	var rec func(n *Node, depth int)
	rec = func(n *Node, depth int) {
		if n == nil || !f(n, depth) {
			return
		}
		rec(n.left, depth+1)
		rec(n.right, depth+1)
	}
	rec(a.root, 0)
}

// BreadthFirst returns the symbols of the tree level by level, left to right.
func (a *AST) BreadthFirst() []string {
	if a.root == nil {
		return nil
	}
	var r []string
	q := []*Node{a.root}
	for len(q) > 0 {
		n := q[0]
		q = q[1:]
		r = append(r, n.sym)
		if n.left != nil {
			q = append(q, n.left)
		}
		if n.right != nil {
			q = append(q, n.right)
		}
	}
	return r
}

// Depth returns the number of levels in the tree, 0 if it is empty.
func (a *AST) Depth() int {
	return depth(a.root)
}

func depth(n *Node) int {
	if n == nil {
		return 0
	}
	l, r := depth(n.left), depth(n.right)
	if l > r {
		return l + 1
	}
	return r + 1
}

// LevelOrder returns one slice of symbols per level of the tree, starting from
// the root.
func (a *AST) LevelOrder() [][]string {
	var levels [][]string
	a.walk(func(n *Node, depth int) bool {
		if depth >= len(levels) {
			levels = append(levels, nil)
		}
		levels[depth] = append(levels[depth], n.sym)
		return true
	})
	return levels
}

// PreOrder returns the symbols of the tree in prefix order.
func (a *AST) PreOrder() []string {
	var r []string
	a.walk(func(n *Node, depth int) bool {
		r = append(r, n.sym)
		return true
	})
	return r
}

// InOrder returns the symbols of the tree in infix order, without
// parentheses.
func (a *AST) InOrder() []string {
	var r []string
	var rec func(n *Node)
	rec = func(n *Node) {
		if n == nil {
			return
		}
		rec(n.left)
		r = append(r, n.sym)
		rec(n.right)
	}
	rec(a.root)
	return r
}

// PostOrder returns the symbols of the tree in postfix order. For a tree from
// Build, this is the sequence it was built from.
func (a *AST) PostOrder() []string {
	var r []string
	var rec func(n *Node)
	rec = func(n *Node) {
		if n == nil {
			return
		}
		rec(n.left)
		rec(n.right)
		r = append(r, n.sym)
	}
	rec(a.root)
	return r
}

// Clone creates a deep copy of the tree that shares no nodes with it.
func (a *AST) Clone() *AST {
	return &AST{root: clone(a.root), syms: a.syms}
}

func clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.left = clone(n.left)
	c.right = clone(n.right)
	return &c
}

// Subtrees returns every subtree rooted at a non-leaf node, in pre-order, down
// to but not including maxDepth, with the root at depth 0. If maxDepth is not
// positive, there is no depth limit. If roots is not empty, only subtrees whose
// root symbol is in roots are returned. The subtrees share nodes with a.
func (a *AST) Subtrees(roots []string, maxDepth int) []*AST {
	var r []*AST
	a.walk(func(n *Node, depth int) bool {
		if n.IsLeaf() || maxDepth > 0 && depth >= maxDepth {
			return false
		}
		if len(roots) == 0 || contains(roots, n.sym) {
			r = append(r, &AST{root: n, syms: a.syms})
		}
		return true
	})
	return r
}

func contains(v []string, s string) bool {
	for _, x := range v {
		if x == s {
			return true
		}
	}
	return false
}
