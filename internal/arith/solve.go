package arith

import "strconv"

const (
	// Target is the value the puzzle games ask for.
	Target = 24
	// MaxSearchPool bounds the exhaustive search. It grows as n! * 6^(n-1)
	// and is only meant for the four-number puzzles.
	MaxSearchPool = 4
)

type node struct {
	value Fraction
	expr  string
}

// Solve searches every way of repeatedly combining two values of the pool
// with + - * / (both operand orders for - and /) until one value is left.
// It returns a fully parenthesised expression reaching target, if any.
// Pools larger than MaxSearchPool are refused.
func Solve(numbers []int, target int64) (string, bool) {
	if len(numbers) == 0 || len(numbers) > MaxSearchPool {
		return "", false
	}
	pool := make([]node, len(numbers))
	for i, n := range numbers {
		pool[i] = node{value: Int(int64(n)), expr: strconv.Itoa(n)}
	}
	return search(pool, target)
}

// CanReach reports whether numbers can be combined into target.
func CanReach(numbers []int, target int64) bool {
	_, ok := Solve(numbers, target)
	return ok
}

func search(pool []node, target int64) (string, bool) {
	if len(pool) == 1 {
		if pool[0].value.EqualsInt(target) {
			return pool[0].expr, true
		}
		return "", false
	}

	next := make([]node, 0, len(pool)-1)
	for i := 0; i < len(pool); i++ {
		for j := i + 1; j < len(pool); j++ {
			next = next[:0]
			for k := range pool {
				if k != i && k != j {
					next = append(next, pool[k])
				}
			}
			for _, combined := range combine(pool[i], pool[j]) {
				if expr, ok := search(append(next, combined), target); ok {
					return expr, true
				}
			}
		}
	}
	return "", false
}

// combine yields a+b, a-b, b-a, a*b, a/b, b/a. Division by zero and any
// result that overflows int64 are dead ends and are skipped.
func combine(a, b node) []node {
	out := make([]node, 0, 6)
	add := func(v Fraction, ok bool, left, op, right string) {
		if ok {
			out = append(out, node{value: v, expr: "(" + left + op + right + ")"})
		}
	}
	sum, ok := a.value.Add(b.value)
	add(sum, ok, a.expr, "+", b.expr)
	diff, ok := a.value.Sub(b.value)
	add(diff, ok, a.expr, "-", b.expr)
	diff, ok = b.value.Sub(a.value)
	add(diff, ok, b.expr, "-", a.expr)
	prod, ok := a.value.Mul(b.value)
	add(prod, ok, a.expr, "*", b.expr)
	q, ok := a.value.Div(b.value)
	add(q, ok, a.expr, "/", b.expr)
	q, ok = b.value.Div(a.value)
	add(q, ok, b.expr, "/", a.expr)
	return out
}
