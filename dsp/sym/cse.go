package sym

import "strconv"

// Binding is one intermediate introduced by common-subexpression
// elimination: Name is the fresh variable, Expr its defining expression.
// Binding expressions may reference earlier bindings; the slice returned by
// CSE is in dependency order.
type Binding struct {
	Name string
	Expr Expr
}

// CSE eliminates common subexpressions jointly across the given expressions.
// Every composite subtree that occurs more than once is bound to a fresh
// variable named prefix0, prefix1, ...; numbering follows first occurrence
// in a post-order walk, so the result is a deterministic function of the
// input trees. The rewritten expressions reference bindings by name.
func CSE(prefix string, exprs ...Expr) ([]Binding, []Expr) {
	counts := make(map[string]int)

	var count func(Expr)
	count = func(e Expr) {
		if !isComposite(e) {
			return
		}

		for _, c := range children(e) {
			count(c)
		}

		counts[e.String()]++
	}

	for _, e := range exprs {
		count(e)
	}

	var (
		bindings []Binding
		named    = make(map[string]Expr)
	)

	var rewrite func(Expr) Expr
	rewrite = func(e Expr) Expr {
		if !isComposite(e) {
			return e
		}

		key := e.String()
		if ref, ok := named[key]; ok {
			return ref
		}

		ch := children(e)
		sub := make([]Expr, len(ch))
		for i, c := range ch {
			sub[i] = rewrite(c)
		}

		out := rebuild(e, sub)
		if counts[key] > 1 {
			name := prefix + strconv.Itoa(len(bindings))
			bindings = append(bindings, Binding{Name: name, Expr: out})

			ref := Var(name)
			named[key] = ref

			return ref
		}

		return out
	}

	rewritten := make([]Expr, len(exprs))
	for i, e := range exprs {
		rewritten[i] = rewrite(e)
	}

	return bindings, rewritten
}
