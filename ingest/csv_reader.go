// Package ingest holds the external-collaborator file I/O the core
// trendengine never touches itself: reading OHLC bars off disk and
// writing results/debug logs back out (spec.md §6's file-format contract).
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/relvacode/iso8601"

	"github.com/evdnx/gots-trend/bar"
)

// requiredColumns are the header names a bar CSV must carry, in any order;
// "volume" is optional and defaults to 0 when absent.
var requiredColumns = []string{"timestamp", "open", "high", "low", "close"}

// ReadBarsCSV reads the OHLC CSV format from spec.md §6 — header
// `timestamp,open,high,low,close[,volume]`, chronological rows, ISO 8601
// timestamps — assigning 1-based contiguous indices in file order. It uses
// iso8601.ParseString rather than time.Parse so that the common producer
// variants (with or without fractional seconds, with a bare offset) all
// parse without per-producer format strings.
func ReadBarsCSV(r io.Reader) ([]bar.Bar, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("ingest: reading CSV header: %w", err)
	}
	col, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var bars []bar.Bar
	lineNo := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: reading CSV row %d: %w", lineNo+1, err)
		}
		lineNo++

		b, err := parseRow(row, col, lineNo)
		if err != nil {
			return nil, err
		}
		bars = append(bars, b)
	}

	for i := range bars {
		bars[i].Index = i + 1
	}
	return bars, nil
}

// ReadBarsCSVFile opens path and delegates to ReadBarsCSV.
func ReadBarsCSVFile(path string) ([]bar.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: opening %s: %w", path, err)
	}
	defer f.Close()
	return ReadBarsCSV(f)
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("ingest: CSV header missing required column %q", col)
		}
	}
	return idx, nil
}

func parseRow(row []string, col map[string]int, lineNo int) (bar.Bar, error) {
	field := func(name string) string {
		if i, ok := col[name]; ok && i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	ts, err := iso8601.ParseString(field("timestamp"))
	if err != nil {
		return bar.Bar{}, fmt.Errorf("ingest: row %d: parsing timestamp: %w", lineNo, err)
	}

	parseFloat := func(name string) (float64, error) {
		v, err := strconv.ParseFloat(field(name), 64)
		if err != nil {
			return 0, fmt.Errorf("ingest: row %d: parsing %s: %w", lineNo, name, err)
		}
		return v, nil
	}

	o, err := parseFloat("open")
	if err != nil {
		return bar.Bar{}, err
	}
	h, err := parseFloat("high")
	if err != nil {
		return bar.Bar{}, err
	}
	l, err := parseFloat("low")
	if err != nil {
		return bar.Bar{}, err
	}
	c, err := parseFloat("close")
	if err != nil {
		return bar.Bar{}, err
	}
	var vol float64
	if _, ok := col["volume"]; ok && field("volume") != "" {
		vol, err = parseFloat("volume")
		if err != nil {
			return bar.Bar{}, err
		}
	}

	b := bar.Bar{Timestamp: ts, O: o, H: h, L: l, C: c, Volume: vol}
	if err := b.Validate(); err != nil {
		return bar.Bar{}, fmt.Errorf("ingest: row %d: %w", lineNo, err)
	}
	return b, nil
}
