package astree

// Evaluate computes the value of a tree with the given variable bindings. vars
// may be nil. Special constants take precedence over variables of the same
// name. Errors are *EvaluationError.
func Evaluate(a *AST, vars map[string]float64) (float64, error) {
	return a.Eval(vars)
}

// Eval computes the value of the tree with the given variable bindings. The
// tree is not modified, so Eval may be called any number of times, including
// concurrently.
func (a *AST) Eval(vars map[string]float64) (float64, error) {
	if a.root == nil {
		return 0, &EvaluationError{Err: ErrEmpty}
	}
	return a.root.eval(a.Symbols(), vars)
}

// eval folds the subtree rooted at n.
func (n *Node) eval(syms *Symbols, vars map[string]float64) (float64, error) {
	switch n.kind {
	case NodeConst:
		name, neg := n.name()
		return negif(syms.consts[name], neg), nil
	case NodeNumber:
		return n.num, nil
	case NodeName:
		name, neg := n.name()
		v, ok := vars[name]
		if !ok {
			return 0, &EvaluationError{Symbol: name, Err: ErrUnbound}
		}
		return negif(v, neg), nil
	case NodeUnary:
		x, err := n.right.eval(syms, vars)
		if err != nil {
			return 0, err
		}
		r, err := n.fn.Call(x)
		if err != nil {
			return 0, &EvaluationError{Symbol: n.sym, Args: []float64{x}, Err: err}
		}
		return r, nil
	case NodeBinary:
		x, err := n.left.eval(syms, vars)
		if err != nil {
			return 0, err
		}
		y, err := n.right.eval(syms, vars)
		if err != nil {
			return 0, err
		}
		r, err := n.fn.Call(x, y)
		if err != nil {
			return 0, &EvaluationError{Symbol: n.sym, Args: []float64{x, y}, Err: err}
		}
		return r, nil
	default:
		panic("astree: invalid AST node " + n.kind.String())
	}
}

func negif(x float64, neg bool) float64 {
	if neg {
		return -x
	}
	return x
}

// EvalString is a shortcut to parse an expression with the default symbols and
// evaluate it.
func EvalString(src string, vars map[string]float64) (float64, error) {
	a, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return a.Eval(vars)
}

// Vars returns the sorted names of the free variables in the tree, without any
// folded signs. Special constants are not included.
func (a *AST) Vars() []string {
	seen := make(map[string]bool)
	var names []string
	a.walk(func(n *Node, depth int) bool {
		if n.kind == NodeName {
			name, _ := n.name()
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
		return true
	})
	sortstrs(names)
	return names
}

// sortstrs sorts names in place.
func sortstrs(names []string) {
	sortby(names, func(a, b string) bool { return a < b })
}

// sortby is an insertion sort of names by less.
func sortby(names []string, less func(a, b string) bool) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && less(names[j], names[j-1]); j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// IsEvaluable reports whether src parses with the default symbols and every
// name in it is a special constant, so that it evaluates without variables.
func IsEvaluable(src string) bool {
	return defaultSymbols.IsEvaluable(src)
}

// IsEvaluable reports whether src parses and has no free variables.
func (s *Symbols) IsEvaluable(src string) bool {
	a, err := s.Parse(src)
	if err != nil {
		return false
	}
	return len(a.Vars()) == 0
}
