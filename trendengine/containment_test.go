package trendengine

import "testing"

func TestContainment_OpensAndSuppressesAfterThreshold(t *testing.T) {
	eng := &EngineState{pds: &pendingCandidate{Index: 5, High: 100, Low: 90}}

	rows := []ohlc{
		{95, 96, 94, 95}, // 6  opens window (inside [90,100])
		{95, 96, 94, 95}, // 7  Δ=1
		{95, 96, 94, 95}, // 8  Δ=2
		{95, 96, 94, 95}, // 9  Δ=3
		{95, 96, 94, 95}, // 10 Δ=4
		{95, 96, 94, 95}, // 11 Δ=5
		{95, 96, 94, 95}, // 12 Δ=6 -> suppressed
	}
	bars := mkBars(rows)
	for i, bb := range bars {
		bb.Index = 6 + i // bars start at index 6 in this scenario
		gates := eng.updateContainment(bb, 5)
		delta := bb.Index - eng.containment.Start
		wantSuppress := delta > 5
		if gates.SuppressCDS != wantSuppress {
			t.Fatalf("bar %d: delta=%d got suppress=%v want=%v", bb.Index, delta, gates.SuppressCDS, wantSuppress)
		}
	}
	if eng.containment == nil {
		t.Fatal("expected containment window still active")
	}
	if eng.containment.Inside < 7 {
		t.Fatalf("expected inside count to have accumulated, got %d", eng.containment.Inside)
	}
}

func TestContainment_ClosesOnBreakout(t *testing.T) {
	eng := &EngineState{pds: &pendingCandidate{Index: 5, High: 100, Low: 90}}

	opening := mkBars([]ohlc{{95, 96, 94, 95}})[0]
	opening.Index = 6
	eng.updateContainment(opening, 5)
	if eng.containment == nil {
		t.Fatal("expected window to open")
	}

	breakout := mkBars([]ohlc{{101, 105, 100.5, 104}})[0]
	breakout.Index = 7
	eng.updateContainment(breakout, 5)
	if eng.containment != nil {
		t.Fatal("expected window to close on breakout")
	}
}

func TestContainment_ReopensOnSameBarAfterClose(t *testing.T) {
	eng := &EngineState{pds: &pendingCandidate{Index: 5, High: 100, Low: 90}}

	opening := mkBars([]ohlc{{95, 96, 94, 95}})[0]
	opening.Index = 6
	eng.updateContainment(opening, 5)
	if eng.containment == nil {
		t.Fatal("expected window to open")
	}

	// a newer PDS reference (offered on a prior bar) already sits tight
	// enough around the breakout bar's range that containment should
	// re-open immediately, with no gap bar required.
	eng.pds = &pendingCandidate{Index: 6, High: 106, Low: 99}
	next := mkBars([]ohlc{{101, 105, 100.5, 104}})[0]
	next.Index = 7
	eng.updateContainment(next, 5)
	if eng.containment == nil {
		t.Fatal("expected a new window to open on the same bar the old one closed")
	}
	if eng.containment.RefIndex != 6 {
		t.Fatalf("expected new window referencing the new PDS, got ref %d", eng.containment.RefIndex)
	}
}
