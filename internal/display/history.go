package display

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/edouard-claude/texscript/internal/tracking"
	"github.com/edouard-claude/texscript/internal/utils"
)

// HistoryOptions select what the history command shows.
type HistoryOptions struct {
	Last   int    // number of recent records
	Run    string // restrict to one run ID
	Format string // "table", "json" or "csv"
}

// RunHistory writes the batch history report.
func RunHistory(w io.Writer, tracker *tracking.Tracker, opts HistoryOptions) error {
	if tracker == nil {
		PrintError("no history (run a batch first)")
		return nil
	}

	summary, err := tracker.GetSummary()
	if err != nil {
		return fmt.Errorf("get summary: %w", err)
	}

	var records []tracking.Record
	if opts.Run != "" {
		records, err = tracker.GetRun(opts.Run)
	} else {
		records, err = tracker.GetRecent(opts.Last)
	}
	if err != nil {
		return err
	}

	switch opts.Format {
	case "json":
		return exportJSON(w, summary, records)
	case "csv":
		return exportCSV(w, records)
	case "", "table":
	default:
		return fmt.Errorf("unknown format %q (want table, json or csv)", opts.Format)
	}

	printSummary(w, summary)
	if len(records) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, historyTable(records))
	return nil
}

func printSummary(w io.Writer, s *tracking.Summary) {
	PrintHeader(w, "texscript history")
	if s.TotalMeshes == 0 {
		fmt.Fprintln(w, Render(DimStyle, "No meshes textured yet."))
		return
	}
	rate := float64(s.Succeeded) / float64(s.TotalMeshes) * 100
	fmt.Fprintf(w, "Runs:        %s\n", Render(StatStyle, strconv.Itoa(s.TotalRuns)))
	fmt.Fprintf(w, "Meshes:      %s\n", Render(StatStyle, strconv.Itoa(s.TotalMeshes)))
	fmt.Fprintf(w, "Succeeded:   %s (%.1f%%)\n", Render(SuccessStyle, strconv.Itoa(s.Succeeded)), rate)
	fmt.Fprintf(w, "Failed:      %s\n", Render(statusStyle("failed"), strconv.Itoa(s.Failed)))
	fmt.Fprintf(w, "Total time:  %s\n", utils.FormatDuration(s.TotalTimeMs))
}

func historyTable(records []tracking.Record) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Timestamp,
			shortRunID(r.RunID),
			utils.Truncate(filepath.Base(r.Mesh), 32),
			r.Preset,
			Status(r.Status),
			strconv.Itoa(r.Attempts),
			utils.FormatDuration(r.DurationMs),
		})
	}
	return FormatTable([]string{"Time", "Run", "Mesh", "Preset", "Status", "Tries", "Took"}, rows)
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func exportJSON(w io.Writer, summary *tracking.Summary, records []tracking.Record) error {
	if records == nil {
		records = []tracking.Record{}
	}
	data := map[string]any{
		"summary": summary,
		"records": records,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func exportCSV(w io.Writer, records []tracking.Record) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"timestamp", "run_id", "mesh", "preset", "status", "attempts", "exit_code", "duration_ms"})
	for _, r := range records {
		_ = cw.Write([]string{
			r.Timestamp,
			r.RunID,
			r.Mesh,
			r.Preset,
			r.Status,
			strconv.Itoa(r.Attempts),
			strconv.Itoa(r.ExitCode),
			strconv.FormatInt(r.DurationMs, 10),
		})
	}
	cw.Flush()
	return cw.Error()
}
