package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/mdblocks/pkg/config"
	"github.com/yaklabco/mdblocks/pkg/frontmatter"
	"github.com/yaklabco/mdblocks/pkg/fsutil"
	"github.com/yaklabco/mdblocks/pkg/markdown"
	"github.com/yaklabco/mdblocks/pkg/runner"
)

const (
	messy     = "# Title\nbody with **bold**\n"
	formatted = "# Title\n\nbody with **bold**\n\n"
)

func newRunner() *runner.Runner {
	return runner.New(markdown.New(markdown.WithLanguageDetection(false)))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestNew(t *testing.T) {
	t.Parallel()

	r := runner.New(nil)
	if r.Converter == nil {
		t.Fatal("New(nil) should install a default converter")
	}
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Files) != 0 || result.Stats.FilesDiscovered != 0 {
		t.Errorf("expected no files, got %+v", result.Stats)
	}
	if result.HasChanges() || result.HasErrors() {
		t.Error("empty run should report no changes or errors")
	}
}

func TestRunner_Run_WritesChangedFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"messy.md": messy,
		"clean.md": formatted,
	})

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Backup:     fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	stats := result.Stats
	if stats.FilesProcessed != 2 || stats.FilesChanged != 1 || stats.FilesWritten != 1 || stats.BackupsCreated != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if stats.Blocks != 4 {
		t.Errorf("expected 4 blocks in total, got %d", stats.Blocks)
	}

	messyPath := filepath.Join(dir, "messy.md")
	if got := readFile(t, messyPath); got != formatted {
		t.Errorf("messy.md = %q, want %q", got, formatted)
	}
	if got := readFile(t, fsutil.BackupPath(messyPath, fsutil.BackupModeSidecar)); got != messy {
		t.Errorf("backup = %q, want original %q", got, messy)
	}
	if _, err := os.Stat(fsutil.BackupPath(filepath.Join(dir, "clean.md"), fsutil.BackupModeSidecar)); !os.IsNotExist(err) {
		t.Error("unchanged files must not get a backup")
	}

	changed := result.Changed()
	if len(changed) != 1 || changed[0].Path != messyPath {
		t.Errorf("Changed() = %+v", changed)
	}
}

func TestRunner_Run_SecondRunIsNoop(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"doc.md": "> quote\n    code line\nplain _text_"})

	r := newRunner()
	if _, err := r.Run(context.Background(), runner.Options{WorkingDir: dir}); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if result.HasChanges() {
		t.Errorf("formatting should be idempotent, got %+v", result.Changed())
	}
}

func TestRunner_Run_PreservesMode(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "private.md")
	if err := os.WriteFile(path, []byte(messy), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestRunner_Run_CheckMode(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"messy.md": messy})

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Mode:       runner.ModeCheck,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !result.HasChanges() || result.Stats.FilesWritten != 0 {
		t.Errorf("check mode should report without writing, got %+v", result.Stats)
	}
	if got := readFile(t, filepath.Join(dir, "messy.md")); got != messy {
		t.Error("check mode modified the file")
	}
	if result.Files[0].Diff != nil {
		t.Error("check mode should not compute a diff")
	}
}

func TestRunner_Run_DryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"messy.md": messy})

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Mode:       runner.ModeDryRun,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	outcome := result.Files[0]
	if !outcome.Changed || outcome.Written {
		t.Errorf("unexpected outcome %+v", outcome)
	}
	if outcome.Diff.Empty() {
		t.Fatal("expected a diff in dry-run mode")
	}
	if outcome.Diff.Insertions != 2 {
		t.Errorf("expected 2 inserted blank lines, got %d", outcome.Diff.Insertions)
	}
	if got := readFile(t, filepath.Join(dir, "messy.md")); got != messy {
		t.Error("dry run modified the file")
	}
}

func TestRunner_Run_RecordsFileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"broken.md": "---\n- not\n- a mapping\n---\n",
		"good.md":   formatted,
	})

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesErrored != 1 || result.Stats.FilesProcessed != 1 {
		t.Errorf("unexpected stats %+v", result.Stats)
	}
	if !result.HasErrors() {
		t.Error("expected HasErrors")
	}
	if !errors.Is(result.Files[0].Error, frontmatter.ErrInvalidHeader) {
		t.Errorf("expected ErrInvalidHeader, got %v", result.Files[0].Error)
	}
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	files := map[string]string{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files[name+".md"] = "# " + name + "\ntext " + name
	}

	run := func(jobs int) *runner.Result {
		dir := t.TempDir()
		writeTree(t, dir, files)
		result, err := newRunner().Run(context.Background(), runner.Options{
			WorkingDir: dir,
			Jobs:       jobs,
			Mode:       runner.ModeCheck,
		})
		if err != nil {
			t.Fatalf("Run(jobs=%d) error = %v", jobs, err)
		}
		return result
	}

	serial, parallel := run(1), run(8)
	if serial.Stats != parallel.Stats {
		t.Errorf("stats differ: serial %+v, parallel %+v", serial.Stats, parallel.Stats)
	}
	for i := range serial.Files {
		if filepath.Base(serial.Files[i].Path) != filepath.Base(parallel.Files[i].Path) {
			t.Fatalf("order differs at %d", i)
		}
	}
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.md": messy})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newRunner().Run(ctx, runner.Options{WorkingDir: dir}); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Ignore = []string{"vendor/**"}
	cfg.Jobs = 3
	cfg.DryRun = true

	opts := runner.OptionsFromConfig(cfg, []string{"docs"})
	if opts.Mode != runner.ModeDryRun {
		t.Errorf("mode = %v, want dry-run", opts.Mode)
	}
	if opts.Jobs != 3 || len(opts.ExcludeGlobs) != 1 || opts.Paths[0] != "docs" {
		t.Errorf("unexpected options %+v", opts)
	}
	if !opts.Backup.Active() {
		t.Error("default config should enable sidecar backups")
	}

	cfg.Check = true
	cfg.NoBackups = true
	opts = runner.OptionsFromConfig(cfg, nil)
	if opts.Mode != runner.ModeCheck {
		t.Errorf("check should win over dry-run, got %v", opts.Mode)
	}
	if opts.Backup.Active() {
		t.Error("--no-backups should disable backups")
	}

	if runner.ModeWrite.String() != "write" || runner.Mode(9).String() != "unknown" {
		t.Error("unexpected Mode strings")
	}
}
