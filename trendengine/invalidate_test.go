package trendengine

import "testing"

func TestInvalidatePUS_PiercedByIntermediateLow(t *testing.T) {
	rows := []ohlc{
		{10, 11, 9, 10},  // 1
		{10, 11, 9.5, 10},// 2
		{10, 11, 9.5, 10},// 3
		{10, 11, 50, 10}, // 4  PUS candidate, low 50
		{51, 52, 50.5, 51},// 5
		{51, 52, 50.2, 51},// 6
		{51, 52, 48, 51}, // 7  undercuts 50
		{51, 52, 49, 51}, // 8
	}
	bars := mkBars(rows)
	eng := &EngineState{history: bars[:7], pus: &pendingCandidate{Index: 4, Low: 50, High: 11}}

	// Bar 7's low (48) only enters the scan window once bar 9 is being
	// processed: the window is [U.Index+1, k-2], which excludes the bar
	// immediately before the one currently being processed.
	eng.invalidatePUS(9)

	if eng.pus != nil {
		t.Fatalf("expected PUS to be invalidated, still have %+v", eng.pus)
	}
}

func TestInvalidatePUS_SurvivesWhenLowsHold(t *testing.T) {
	rows := []ohlc{
		{10, 11, 9, 10},
		{10, 11, 9.5, 10},
		{10, 11, 9.5, 10},
		{10, 11, 50, 10},  // 4 PUS candidate
		{51, 52, 50.5, 51},// 5
		{51, 52, 50.2, 51},// 6
	}
	bars := mkBars(rows)
	eng := &EngineState{history: bars, pus: &pendingCandidate{Index: 4, Low: 50, High: 11}}

	eng.invalidatePUS(7)

	if eng.pus == nil {
		t.Fatal("expected PUS to survive, got invalidated")
	}
}
