package trendengine

import (
	"testing"

	"github.com/evdnx/gots-trend/bar"
)

func b(o, h, l, c float64) bar.Bar { return bar.Bar{O: o, H: h, L: l, C: c} }

func TestIsLowerOHLC(t *testing.T) {
	p := b(10, 11, 9, 10)
	c := b(9, 10, 8, 9)
	if !isLowerOHLC(c, p) {
		t.Fatal("expected lower-OHLC to match")
	}
	if isLowerOHLC(p, c) {
		t.Fatal("reversed bars should not match")
	}
}

func TestIsHigherOHLC(t *testing.T) {
	p := b(10, 11, 9, 10)
	c := b(11, 12, 10, 11.5)
	if !isHigherOHLC(c, p) {
		t.Fatal("expected higher-OHLC to match")
	}
}

func TestIsLowThenHigherClose(t *testing.T) {
	p := b(10, 12, 9, 11)
	c := b(8, 13, 7, 12)
	if !isLowThenHigherClose(c, p) {
		t.Fatal("expected low-then-higher-close to match")
	}
}

func TestIsPUSAndPDSRules(t *testing.T) {
	p := b(10, 12, 9, 11)
	c := b(9.5, 11.5, 9.2, 10.5) // c.l >= p.l, c.c > p.o
	if !isPUSRule(c, p) {
		t.Fatal("expected PUS rule to match")
	}
	c2 := b(10.5, 11.8, 9.1, 9.5) // c.h <= p.h, c.c < p.o
	if !isPDSRule(c2, p) {
		t.Fatal("expected PDS rule to match")
	}
}

func TestIsHHLLDownClose(t *testing.T) {
	p := b(10, 11, 9, 10)
	c := b(11, 12, 8, 10.5)
	if !isHHLLDownClose(c, p) {
		t.Fatal("expected HHLL-down-close to match")
	}
}
