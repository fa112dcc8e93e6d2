package symb

// Variables collects the distinct state variables referenced by an
// expression, in first-appearance order.
func Variables(e Expr) []*StateVariable {
	var out []*StateVariable
	seen := make(map[VarID]bool)
	var walk func(Expr)
	walk = func(n Expr) {
		if v, ok := n.(*StateVariable); ok {
			if !seen[v.ID()] {
				seen[v.ID()] = true
				out = append(out, v)
			}
			return
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(e)
	return out
}
