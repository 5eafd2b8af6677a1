package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/edouard-claude/texscript/internal/log"
	"github.com/edouard-claude/texscript/internal/preset"
	"github.com/edouard-claude/texscript/internal/script"
	"github.com/edouard-claude/texscript/internal/tee"
	"github.com/edouard-claude/texscript/internal/tracking"
)

// Status is the outcome of one job.
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped" // not started because the run was cancelled
	StatusPlanned Status = "planned" // dry run
)

// Options configure a batch run.
type Options struct {
	Binary     string
	Resolution int
	Overrides  []script.Override // applied after the per-mesh texture overrides
	Jobs       int
	Timeout    time.Duration // per attempt; zero means none
	DryRun     bool
	Tee        tee.Config
}

// JobResult is the outcome of one mesh.
type JobResult struct {
	Job      Job
	Status   Status
	Attempts int
	ExitCode int
	Duration time.Duration
	LogPath  string
	Err      error
}

// Report collects the results of a run in mesh order.
type Report struct {
	RunID   string
	Preset  string
	Results []JobResult
}

// Count returns the number of results with the given status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// Batch applies one preset to many meshes through the external tool.
type Batch struct {
	Preset  *preset.Preset
	Options Options
	Tracker *tracking.Tracker
	Exec    ExecFunc // defaults to Execute
}

// Render returns the preset script with the per-mesh overrides applied.
// Texture overrides the preset does not declare are left out; user
// overrides must name a declared parameter.
func (b *Batch) Render(job Job) (*script.Script, error) {
	base := b.Preset.Script
	s, err := base.Apply(declared(base, TextureOverrides(job, b.Options.Resolution))...)
	if err != nil {
		return nil, fmt.Errorf("texture overrides: %w", err)
	}
	s, err = s.Apply(b.Options.Overrides...)
	if err != nil {
		return nil, fmt.Errorf("user overrides: %w", err)
	}
	return s, nil
}

// Run textures every mesh. Job failures are reported in the Report; the
// returned error is non-nil only when the run itself could not proceed
// or ctx was cancelled.
func (b *Batch) Run(ctx context.Context, meshes []string) (*Report, error) {
	report := &Report{
		RunID:   uuid.NewString(),
		Preset:  b.Preset.Name,
		Results: make([]JobResult, len(meshes)),
	}
	logger := log.WithComponent("engine").With().
		Str("run", report.RunID).
		Str("preset", b.Preset.Name).
		Logger()
	ctx = log.WithContext(ctx, logger)

	workDir, err := os.MkdirTemp("", "texscript-")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	jobs := b.Options.Jobs
	if jobs <= 0 {
		jobs = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	logger.Info().Int("meshes", len(meshes)).Int("jobs", jobs).Bool("dry_run", b.Options.DryRun).Msg("batch started")
	for i, mesh := range meshes {
		i, mesh := i, mesh
		g.Go(func() error {
			report.Results[i] = b.runJob(gctx, workDir, report.RunID, NewJob(mesh))
			return nil
		})
	}
	_ = g.Wait()

	logger.Info().
		Int("ok", report.Count(StatusOK)).
		Int("failed", report.Count(StatusFailed)).
		Int("skipped", report.Count(StatusSkipped)).
		Msg("batch finished")

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

func (b *Batch) runJob(ctx context.Context, workDir, runID string, job Job) JobResult {
	res := JobResult{Job: job}
	logger := log.FromContext(ctx).With().Str("mesh", filepath.Base(job.Mesh)).Logger()

	if err := ctx.Err(); err != nil {
		res.Status, res.Err = StatusSkipped, err
		return res
	}

	s, err := b.Render(job)
	if err != nil {
		res.Status, res.Err = StatusFailed, err
		logger.Error().Err(err).Msg("render failed")
		return res
	}
	if b.Options.DryRun {
		res.Status = StatusPlanned
		return res
	}

	timed := tracking.Start(b.Tracker)
	out := b.attempts(ctx, workDir, job, s, &res, logger)
	res.Duration = timed.Elapsed()

	if path, err := tee.MaybeSave(out, res.Status == StatusFailed, filepath.Base(job.Mesh), b.Options.Tee); err != nil {
		logger.Warn().Err(err).Msg("save tool output")
	} else if path != "" {
		res.LogPath = path
		logger.Info().Str("log", path).Msg("tool output saved")
	}

	if err := timed.Track(tracking.Record{
		RunID:    runID,
		Mesh:     job.Mesh,
		Preset:   b.Preset.Name,
		Status:   string(res.Status),
		Attempts: res.Attempts,
		ExitCode: res.ExitCode,
	}); err != nil {
		logger.Warn().Err(err).Msg("record history")
	}
	return res
}

// attempts runs the tool with s and, when the texture transfer asked to
// overwrite an existing texture and failed, once more without overwriting.
// It returns the captured output of the last attempt.
func (b *Batch) attempts(ctx context.Context, workDir string, job Job, s *script.Script, res *JobResult, logger zerolog.Logger) string {
	scripts := []*script.Script{s}
	if fallback, ok := overwriteFallback(s); ok {
		scripts = append(scripts, fallback)
	}

	exec := b.Exec
	if exec == nil {
		exec = Execute
	}

	// Each job gets its own directory; distinct meshes can share a sanitized name.
	jobDir, err := os.MkdirTemp(workDir, "job-")
	if err != nil {
		res.Status, res.Err = StatusFailed, fmt.Errorf("create job directory: %w", err)
		return ""
	}

	var out string
	for n, candidate := range scripts {
		res.Attempts = n + 1
		scriptPath := filepath.Join(jobDir, "attempt-"+strconv.Itoa(n)+".mlx")
		if err := script.WriteFile(scriptPath, candidate); err != nil {
			res.Status, res.Err = StatusFailed, err
			return out
		}

		actx, cancel := b.attemptContext(ctx)
		result, err := exec(actx, filepath.Dir(job.Mesh), b.Options.Binary, MeshLabArgs(job, scriptPath))
		cancel()
		if err != nil {
			// The tool could not be started or was interrupted; retrying with
			// another script does not help.
			res.Status, res.Err = StatusFailed, err
			if errors.Is(ctx.Err(), context.Canceled) {
				res.Status = StatusSkipped
			}
			logger.Error().Err(err).Int("attempt", res.Attempts).Msg("tool did not run")
			return out
		}

		out = result.Output()
		res.ExitCode = result.ExitCode
		if result.ExitCode == 0 {
			res.Status, res.Err = StatusOK, nil
			logger.Info().Int("attempt", res.Attempts).Dur("took", result.Duration).Msg("textured")
			return out
		}
		res.Status = StatusFailed
		res.Err = fmt.Errorf("%s exited with code %d", b.Options.Binary, result.ExitCode)
		logger.Warn().Int("attempt", res.Attempts).Int("exit_code", result.ExitCode).Msg("tool failed")
	}
	return out
}

func (b *Batch) attemptContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.Options.Timeout > 0 {
		return context.WithTimeout(ctx, b.Options.Timeout)
	}
	return context.WithCancel(ctx)
}

// overwriteFallback returns s with overwrite disabled on the texture
// transfer, if s currently enables it.
func overwriteFallback(s *script.Script) (*script.Script, bool) {
	f, ok := s.Filter(script.FilterColorToTexture)
	if !ok {
		return nil, false
	}
	p, ok := f.Param("overwrite")
	if !ok {
		return nil, false
	}
	if v, err := p.Bool(); err != nil || !v {
		return nil, false
	}
	fallback, err := s.WithParam(script.FilterColorToTexture, "overwrite", "false")
	if err != nil {
		return nil, false
	}
	return fallback, true
}

// Apply textures a single mesh with the tool's output streamed to the
// terminal. It returns the tool's exit code.
func (b *Batch) Apply(ctx context.Context, mesh string) (int, error) {
	job := NewJob(mesh)
	s, err := b.Render(job)
	if err != nil {
		return 1, err
	}
	scripts := []*script.Script{s}
	if fallback, ok := overwriteFallback(s); ok {
		scripts = append(scripts, fallback)
	}

	workDir, err := os.MkdirTemp("", "texscript-")
	if err != nil {
		return 1, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	logger := log.WithComponent("engine").With().Str("mesh", filepath.Base(mesh)).Logger()
	code := 1
	for n, candidate := range scripts {
		scriptPath := filepath.Join(workDir, "apply-"+strconv.Itoa(n)+".mlx")
		if err := script.WriteFile(scriptPath, candidate); err != nil {
			return 1, err
		}
		actx, cancel := b.attemptContext(ctx)
		code, err = Passthrough(actx, filepath.Dir(mesh), b.Options.Binary, MeshLabArgs(job, scriptPath))
		cancel()
		if err != nil {
			return code, err
		}
		if code == 0 {
			break
		}
		logger.Warn().Int("attempt", n+1).Int("exit_code", code).Msg("tool failed")
	}
	return code, nil
}
