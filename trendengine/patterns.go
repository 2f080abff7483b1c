package trendengine

import "github.com/evdnx/gots-trend/bar"

// Bar pattern predicates (spec §4.A). Pure, side-effect-free comparisons
// between a current bar c and its immediate predecessor p (and, for the
// outside-bar variants, no further history is needed).

func isLowerOHLC(c, p bar.Bar) bool {
	return c.L < p.L && c.H < p.H && c.C < p.C
}

func isHigherOHLC(c, p bar.Bar) bool {
	return c.L > p.L && c.H > p.H && c.C > p.C
}

func isLowThenHigherClose(c, p bar.Bar) bool {
	return c.L < p.L && c.H > p.H && c.C > p.C
}

func isPUSRule(c, p bar.Bar) bool {
	return c.L >= p.L && c.C > p.O
}

func isPDSRule(c, p bar.Bar) bool {
	return c.H <= p.H && c.C < p.O
}

func isSimplePUS(c, p bar.Bar) bool {
	return c.L >= p.L
}

func isSimplePDS(c, p bar.Bar) bool {
	return c.H <= p.H
}

func isHHLLDownClose(c, p bar.Bar) bool {
	return c.H > p.H && c.L < p.L && c.C < c.O
}
