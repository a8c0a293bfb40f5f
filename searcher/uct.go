package searcher

import "math"

// uct scores children during selection:
//
//	UCT = w/(n+eps) + C * sqrt(ln(N+1) / (n+eps))
//
// where N is the root's visit count, shared by all comparisons in a pass.
// An unvisited child's epsilon denominator makes its score effectively
// infinite, so fresh children are explored first.
type uct struct {
	c   float64
	lnN float64
}

func newUCT(c float64, rootVisits int) uct {
	return uct{c: c, lnN: math.Log(float64(rootVisits) + 1)}
}

func (u uct) score(total float64, visits int) float64 {
	n := float64(visits) + Epsilon
	return total/n + u.c*math.Sqrt(u.lnN/n)
}
