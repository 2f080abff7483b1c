// Command gots-trend is the thin CLI front-end around the trendengine
// core (spec.md §6's "CLI surface" collaborator): it loads an OHLC CSV,
// feeds every bar through a fresh Engine, and writes the results (and,
// optionally, a debug trace) back out to CSV.
package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/evdnx/gots-trend/bar"
	"github.com/evdnx/gots-trend/ingest"
	"github.com/evdnx/gots-trend/trendengine"
)

var (
	inputCSV  string
	outputCSV string
	debugCSV  string

	debugStart int
	debugEnd   int

	contractID string
	timeframe  string

	summaryTable bool
)

func main() {
	// .env is optional: a local .env, if present, is loaded into the process
	// environment and its absence is not an error. The --contract-id and
	// --timeframe defaults are fixed in the flag definitions and are not
	// read from the environment.
	_ = godotenv.Load()

	cobra.OnInitialize()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gots-trend",
	Short: "gots-trend detects forward-causal trend-start events in an OHLC bar stream",
	Long:  "gots-trend reads an OHLC CSV, runs it through the trend-start detector, and writes the confirmed uptrend/downtrend starts back out as CSV.",
	RunE:  runDetect,
}

func init() {
	rootCmd.Flags().StringVar(&inputCSV, "input-csv", "", "path to the input OHLC CSV (required)")
	rootCmd.Flags().StringVar(&outputCSV, "output-csv", "", "path to write the results CSV (required)")
	rootCmd.Flags().StringVar(&debugCSV, "debug-log-csv", "", "optional path to write a debug trace CSV")
	rootCmd.Flags().IntVar(&debugStart, "debug-start", 0, "first bar index to trace (0 = from the beginning)")
	rootCmd.Flags().IntVar(&debugEnd, "debug-end", 0, "last bar index to trace (0 = through the end)")
	rootCmd.Flags().StringVar(&contractID, "contract-id", "UNKNOWN", "contract identifier attached to emitted events")
	rootCmd.Flags().StringVar(&timeframe, "timeframe", "unknown", "timeframe label attached to emitted events")
	rootCmd.Flags().BoolVar(&summaryTable, "summary", false, "print a rendered summary table of emitted signals to stdout")

	rootCmd.MarkFlagRequired("input-csv")
	rootCmd.MarkFlagRequired("output-csv")
}

func runDetect(cmd *cobra.Command, args []string) error {
	bars, err := ingest.ReadBarsCSVFile(inputCSV)
	if err != nil {
		return err
	}

	var opts []trendengine.EngineOption
	if debugCSV != "" {
		opts = append(opts, trendengine.WithDebugRange(debugStart, debugEnd))
	}
	eng := trendengine.NewEngine(contractID, timeframe, opts...)

	for _, b := range bars {
		if _, err := eng.ProcessNewBar(b); err != nil {
			return fmt.Errorf("processing bar %d: %w", b.Index, err)
		}
	}

	signals := eng.AllSignals()
	if err := ingest.WriteResultsCSVFile(outputCSV, signals); err != nil {
		return err
	}

	if debugCSV != "" {
		if err := ingest.WriteDebugCSVFile(debugCSV, eng.DebugLogs()); err != nil {
			return err
		}
	}

	fmt.Printf("processed %s bars, emitted %s signals\n",
		humanize.Comma(int64(len(bars))), humanize.Comma(int64(len(signals))))

	if summaryTable {
		printSummaryTable(signals)
	}
	return nil
}

func printSummaryTable(signals []bar.TrendEvent) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("TREND-START SIGNALS")
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Signal", "Bar", "Date", "Rule", "Trigger Bar"})
	for _, ev := range signals {
		t.AppendRow(table.Row{
			string(ev.SignalType),
			ev.ConfirmedBarIndex,
			ev.ConfirmedBarTimestamp.Format("2006-01-02T15:04:05Z07:00"),
			ev.RuleType,
			ev.TriggeringBarIndex,
		})
	}
	t.Render()
}
