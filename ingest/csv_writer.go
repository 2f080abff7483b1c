package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/evdnx/gots-trend/bar"
)

// WriteResultsCSV writes the Results CSV format from spec.md §6 —
// `trend_start_type,bar_index,date,rule,trigger_bar_index` — sorted by
// (bar_index, trend_start_type). events need not already be sorted;
// AllSignals() already returns them that way, but this is re-sorted
// defensively so the format holds regardless of caller.
func WriteResultsCSV(w io.Writer, events []bar.TrendEvent) error {
	sorted := make([]bar.TrendEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].ConfirmedBarIndex != sorted[j].ConfirmedBarIndex {
			return sorted[i].ConfirmedBarIndex < sorted[j].ConfirmedBarIndex
		}
		return sorted[i].SignalType < sorted[j].SignalType
	})

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"trend_start_type", "bar_index", "date", "rule", "trigger_bar_index"}); err != nil {
		return fmt.Errorf("ingest: writing results header: %w", err)
	}
	for _, ev := range sorted {
		row := []string{
			string(ev.SignalType),
			fmt.Sprintf("%d", ev.ConfirmedBarIndex),
			ev.ConfirmedBarTimestamp.Format("2006-01-02T15:04:05Z07:00"),
			ev.RuleType,
			fmt.Sprintf("%d", ev.TriggeringBarIndex),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("ingest: writing results row for bar %d: %w", ev.ConfirmedBarIndex, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteResultsCSVFile creates (or truncates) path and writes events to it.
func WriteResultsCSVFile(path string, events []bar.TrendEvent) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ingest: creating %s: %w", path, err)
	}
	defer f.Close()
	return WriteResultsCSV(f, events)
}
