package display

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/edouard-claude/texscript/internal/preset"
	"github.com/edouard-claude/texscript/internal/script"
	"github.com/edouard-claude/texscript/internal/utils"
)

// PresetList writes one line per preset with its source and pipeline length.
func PresetList(w io.Writer, presets []*preset.Preset) {
	rows := make([][]string, 0, len(presets))
	for _, p := range presets {
		rows = append(rows, []string{
			p.Name,
			string(p.Source),
			strconv.Itoa(len(p.Script.Filters)),
			utils.Truncate(p.Path, 48),
		})
	}
	fmt.Fprint(w, FormatTable([]string{"Preset", "Source", "Filters", "Path"}, rows))
}

// ScriptDetail writes every filter of s with a table of its parameters.
func ScriptDetail(w io.Writer, title string, s *script.Script) {
	PrintHeader(w, title)
	for i, f := range s.Filters {
		fmt.Fprintln(w)
		name := fmt.Sprintf("%d. %s", i+1, f.Name)
		if entry, ok := script.Lookup(f.Name); ok {
			name += Render(DimStyle, " ("+entry.Function+")")
		}
		fmt.Fprintln(w, Render(lipgloss.NewStyle().Bold(true), name))
		if len(f.Params) == 0 {
			fmt.Fprintln(w, Render(DimStyle, "   no parameters"))
			continue
		}
		rows := make([][]string, 0, len(f.Params))
		for _, p := range f.Params {
			rows = append(rows, []string{p.Name, string(p.Type), ParamValue(&p), utils.Truncate(p.Description, 40)})
		}
		fmt.Fprint(w, FormatTable([]string{"Param", "Type", "Value", "Description"}, rows))
	}
}

// ParamValue renders a parameter value, naming the selected enum option.
func ParamValue(p *script.Param) string {
	if p.Type != script.TypeEnum {
		return p.Value
	}
	if _, label, err := p.Selected(); err == nil {
		return p.Value + " (" + label + ")"
	}
	return p.Value
}

// Warnings writes lint findings, or a confirmation when there are none.
func Warnings(w io.Writer, name string, warnings []script.Warning) {
	if len(warnings) == 0 {
		fmt.Fprintln(w, Render(SuccessStyle, name+": ok"))
		return
	}
	for _, warn := range warnings {
		fmt.Fprintln(w, Render(WarnStyle, name+": "+warn.String()))
	}
}
