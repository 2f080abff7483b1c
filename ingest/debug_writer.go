package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/evdnx/gots-trend/trendengine"
)

// WriteDebugCSV exports trendengine.DebugRecords for a gated bar-index
// range, matching the original CLI's --debug-log-csv flag: one row per
// bar that produced any trace messages, the messages joined with "; ".
func WriteDebugCSV(w io.Writer, records []trendengine.DebugRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"bar_index", "messages"}); err != nil {
		return fmt.Errorf("ingest: writing debug header: %w", err)
	}
	for _, rec := range records {
		row := []string{fmt.Sprintf("%d", rec.BarIndex), strings.Join(rec.Messages, "; ")}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("ingest: writing debug row for bar %d: %w", rec.BarIndex, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDebugCSVFile creates (or truncates) path and writes records to it.
func WriteDebugCSVFile(path string, records []trendengine.DebugRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ingest: creating %s: %w", path, err)
	}
	defer f.Close()
	return WriteDebugCSV(f, records)
}
