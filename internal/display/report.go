package display

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/edouard-claude/texscript/internal/engine"
	"github.com/edouard-claude/texscript/internal/utils"
)

func statusStyle(status string) lipgloss.Style {
	switch engine.Status(status) {
	case engine.StatusOK:
		return SuccessStyle
	case engine.StatusFailed:
		return ErrorStyle
	case engine.StatusSkipped, engine.StatusPlanned:
		return WarnStyle
	}
	return DimStyle
}

// Status renders a job status with its color.
func Status(status string) string {
	return Render(statusStyle(status), status)
}

// Report writes the per-mesh outcome of a batch run and a one-line tally.
func Report(w io.Writer, r *engine.Report) {
	rows := make([][]string, 0, len(r.Results))
	for _, res := range r.Results {
		detail := res.Job.Output
		if res.Err != nil {
			detail = res.Err.Error()
		}
		if res.LogPath != "" {
			detail += " [log: " + res.LogPath + "]"
		}
		rows = append(rows, []string{
			filepath.Base(res.Job.Mesh),
			Status(string(res.Status)),
			strconv.Itoa(res.Attempts),
			utils.FormatDuration(res.Duration.Milliseconds()),
			utils.Truncate(detail, 60),
		})
	}
	fmt.Fprint(w, FormatTable([]string{"Mesh", "Status", "Tries", "Took", "Output"}, rows))
	fmt.Fprintf(w, "\n%s: %d ok, %d failed, %d skipped, %d planned (run %s)\n",
		r.Preset,
		r.Count(engine.StatusOK),
		r.Count(engine.StatusFailed),
		r.Count(engine.StatusSkipped),
		r.Count(engine.StatusPlanned),
		r.RunID,
	)
}
