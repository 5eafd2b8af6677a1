package display

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/edouard-claude/texscript/internal/engine"
)

func TestReport(t *testing.T) {
	r := &engine.Report{
		RunID:  "run-1",
		Preset: "vertex_color_to_texture",
		Results: []engine.JobResult{
			{Job: engine.NewJob("/scans/01_bone1_mesh.obj"), Status: engine.StatusOK, Attempts: 1, Duration: 1500 * time.Millisecond},
			{Job: engine.NewJob("/scans/02_bone2.obj"), Status: engine.StatusFailed, Attempts: 2, Err: errors.New("meshlabserver exited with code 1"), LogPath: "/tmp/x.log"},
		},
	}

	var buf bytes.Buffer
	Report(&buf, r)
	out := buf.String()
	for _, want := range []string{
		"01_bone1_mesh.obj",
		"01_bone1_mesh.pt.obj",
		"exited with code 1 [log: /tmp/x.log]",
		"1.5s",
		"1 ok, 1 failed, 0 skipped, 0 planned (run run-1)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStatusPlain(t *testing.T) {
	// Not a TTY under go test.
	if got := Status("ok"); got != "ok" {
		t.Errorf("Status = %q, want plain text", got)
	}
}
