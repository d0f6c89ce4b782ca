//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"l":   Lint.Default,
	"c":   Check,
	"s":   Smoke,
	"i":   Install,
	"fmt": Lint.Fmt,
	"fz":  Fuzz.Default,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
	Fuzz  st.Namespace
)

// ---------------------------------------------------------------------------
// Top-level targets
// ---------------------------------------------------------------------------

// Build compiles the mdblocks binary with version info.
// Skips recompilation when source files have not changed.
func Build() error {
	rebuild, err := target.Dir(binPath, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binPath + " is up to date")
		return nil
	}
	fmt.Println("Building mdblocks...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binPath, "./cmd/mdblocks")
}

// Check runs format, lint, and test sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build artifacts.
func Clean() error {
	fmt.Println("Cleaning build artifacts...")
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	if err := sh.Rm("coverage.out"); err != nil {
		return err
	}
	return sh.Rm("coverage.html")
}

// Install installs mdblocks to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing mdblocks...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/mdblocks")
}

// Uninstall removes mdblocks from $GOBIN or $GOPATH/bin.
func Uninstall() error {
	fmt.Println("Uninstalling mdblocks...")
	binPath, err := findInstalledBinary("mdblocks")
	if err != nil {
		return err
	}
	if err := os.Remove(binPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Println("mdblocks is not installed")
			return nil
		}
		return fmt.Errorf("remove binary: %w", err)
	}
	fmt.Printf("Removed %s\n", binPath)
	return nil
}

// Deps ensures all dependencies are downloaded.
func Deps() error {
	fmt.Println("Downloading dependencies...")
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// Coverage generates a test coverage report and opens it.
func Coverage() error {
	st.Deps(Test.Default)
	fmt.Println("Generating coverage report...")
	if err := sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html"); err != nil {
		return err
	}
	return sh.RunV("open", "coverage.html")
}

// Docs checks that the repository's own Markdown is in canonical form.
func Docs() error {
	st.Deps(Build)
	fmt.Println("Checking Markdown formatting...")
	return sh.RunV(binPath, "fmt", "--check", "--ignore", "_examples/**", ".")
}

// smokeSource exercises every block kind, every inline mark and a
// front-matter header.
const smokeSource = `---
title: Smoke
---

# Title

Some **bold**, _italic_ and ~~struck~~ text with a [link](a.md).

> A quote

    code := 1

### Closing

`

// Smoke builds the binary and round-trips a sample document through
// parse, render and fmt --check.
func Smoke() error {
	st.Deps(Build)
	fmt.Println("Running round-trip smoke test...")

	dir, err := os.MkdirTemp("", "mdblocks-smoke-")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	src := filepath.Join(dir, "in.md")
	doc := filepath.Join(dir, "doc.json")
	out := filepath.Join(dir, "out.md")
	if err := os.WriteFile(src, []byte(smokeSource), 0o600); err != nil {
		return fmt.Errorf("write sample: %w", err)
	}

	steps := [][]string{
		{"fmt", "--check", "--no-backups", src},
		{"parse", "-o", doc, src},
		{"render", "-o", out, doc},
		{"fmt", "--check", "--no-backups", out},
	}
	for _, args := range steps {
		if err := sh.RunV(binPath, args...); err != nil {
			return fmt.Errorf("mdblocks %s: %w", strings.Join(args, " "), err)
		}
	}

	rendered, err := os.ReadFile(out)
	if err != nil {
		return fmt.Errorf("read rendered output: %w", err)
	}
	if string(rendered) != smokeSource {
		return fmt.Errorf("round trip changed the document:\n%s", rendered)
	}
	fmt.Println("✓ parse/render round trip is stable")
	return nil
}

// ---------------------------------------------------------------------------
// Test namespace
// ---------------------------------------------------------------------------

// Default runs all tests with race detection and coverage.
func (Test) Default() error {
	fmt.Println("Running tests...")
	return gotestsum("pkgname-and-test-fails", "./...")
}

// Verbose runs all tests with standard-verbose output.
func (Test) Verbose() error {
	fmt.Println("Running tests (verbose)...")
	return gotestsum("standard-verbose", "./...")
}

// Convert runs the conversion pipeline packages only: grammar, codec,
// front-matter, tree and converter.
func (Test) Convert() error {
	fmt.Println("Running conversion tests...")
	return gotestsum("pkgname-and-test-fails", conversionPackages...)
}

// ---------------------------------------------------------------------------
// Lint namespace
// ---------------------------------------------------------------------------

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	fmt.Println("Running linters...")
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix (for CI pipelines).
func (Lint) CI() error {
	fmt.Println("Running linters (CI mode)...")
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	fmt.Println("Formatting code...")
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck verifies code formatting without modifying files.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nRun 'stave lint:fmt' to fix", out)
	}
	fmt.Println("✓ Code formatting OK")
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	fmt.Println("Running go vet...")
	return sh.RunV("go", "vet", "./...")
}

// ---------------------------------------------------------------------------
// CI namespace
// ---------------------------------------------------------------------------

// Gate runs all CI checks in idiomatic Go order.
func (CI) Gate() error {
	fmt.Println("Running CI gate checks...")
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		Smoke,
		CI.ModTidy,
		CI.Cross,
	)
	fmt.Println("\n✓ All CI gate checks passed!")
	return nil
}

// ModTidy checks that go.mod and go.sum are tidy.
func (CI) ModTidy() error {
	fmt.Println("Checking go.mod/go.sum are tidy...")
	modBefore, err := os.ReadFile("go.mod")
	if err != nil {
		return fmt.Errorf("read go.mod: %w", err)
	}
	sumBefore, err := os.ReadFile("go.sum")
	if err != nil {
		return fmt.Errorf("read go.sum: %w", err)
	}

	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}

	modAfter, err := os.ReadFile("go.mod")
	if err != nil {
		return fmt.Errorf("read go.mod after tidy: %w", err)
	}
	sumAfter, err := os.ReadFile("go.sum")
	if err != nil {
		return fmt.Errorf("read go.sum after tidy: %w", err)
	}

	if string(modBefore) != string(modAfter) || string(sumBefore) != string(sumAfter) {
		return errors.New("go.mod or go.sum changed after 'go mod tidy' - please commit the changes")
	}
	fmt.Println("✓ go.mod/go.sum are tidy")
	return nil
}

// Cross builds for all release platforms to catch platform-specific issues.
func (CI) Cross() error {
	fmt.Println("Cross-compiling for all release platforms...")
	platforms := []struct{ goos, goarch string }{
		{"linux", "amd64"},
		{"linux", "arm64"},
		{"darwin", "amd64"},
		{"darwin", "arm64"},
		{"windows", "amd64"},
		{"windows", "arm64"},
		{"freebsd", "amd64"},
		{"freebsd", "arm64"},
		{"openbsd", "amd64"},
		{"netbsd", "amd64"},
	}
	for _, p := range platforms {
		fmt.Printf("  Building %s/%s...\n", p.goos, p.goarch)
		env := map[string]string{
			"GOOS":        p.goos,
			"GOARCH":      p.goarch,
			"CGO_ENABLED": "0",
		}
		if err := sh.RunWith(env, "go", "build", "-o", "/dev/null", "./cmd/mdblocks"); err != nil {
			return fmt.Errorf("build failed for %s/%s: %w", p.goos, p.goarch, err)
		}
	}
	fmt.Println("✓ All platforms build successfully")
	return nil
}

// ---------------------------------------------------------------------------
// Bench namespace
// ---------------------------------------------------------------------------

// Default runs every benchmark.
func (Bench) Default() error {
	fmt.Println("Running benchmarks...")
	return bench(".", "./...")
}

// Convert benchmarks a full Markdown round trip.
func (Bench) Convert() error {
	fmt.Println("Benchmarking Normalize...")
	return bench("^BenchmarkNormalize$", "./pkg/markdown")
}

// Detect benchmarks code-block language detection.
func (Bench) Detect() error {
	fmt.Println("Benchmarking language detection...")
	return bench("^BenchmarkDetect$", "./pkg/langdetect")
}

// ---------------------------------------------------------------------------
// Fuzz namespace
// ---------------------------------------------------------------------------

// fuzzTargets lists the fuzz targets and the package that holds each.
var fuzzTargets = []struct{ pkg, name string }{
	{"./pkg/inline", "FuzzDecodeEncode"},
	{"./pkg/block", "FuzzTokenize"},
	{"./pkg/markdown", "FuzzNormalizeIdempotent"},
}

// Default runs every fuzz target for FUZZ_TIME each (default 30s).
func (Fuzz) Default() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZ_TIME"), "30s")
	for _, ft := range fuzzTargets {
		fmt.Printf("Fuzzing %s %s for %s...\n", ft.pkg, ft.name, fuzzTime)
		if err := sh.RunV("go", "test", "-run", "^$", "-fuzz", "^"+ft.name+"$", "-fuzztime", fuzzTime, ft.pkg); err != nil {
			return fmt.Errorf("fuzz %s: %w", ft.name, err)
		}
	}
	return nil
}

// Seeds runs the fuzz targets over their seed corpus only.
func (Fuzz) Seeds() error {
	fmt.Println("Running fuzz seed corpora...")
	for _, ft := range fuzzTargets {
		if err := sh.RunV("go", "test", "-run", "^"+ft.name+"$", ft.pkg); err != nil {
			return fmt.Errorf("fuzz seeds %s: %w", ft.name, err)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers (unexported, not targets)
// ---------------------------------------------------------------------------

// binPath is where Build writes the binary.
const binPath = "bin/mdblocks"

// conversionPackages holds the packages on the Markdown conversion path.
var conversionPackages = []string{
	"./pkg/block",
	"./pkg/inline",
	"./pkg/frontmatter",
	"./pkg/richdoc",
	"./pkg/mdast",
	"./pkg/markdown",
}

// gotestsum runs the given packages with race detection and coverage,
// using STAVE_NUM_PROCESSORS (default 4) for package and test parallelism.
func gotestsum(format string, pkgs ...string) error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	args := []string{
		"tool", "gotestsum",
		"-f", format,
		"--",
		"-v", "-race",
		"-p", nCores,
		"-parallel", nCores,
	}
	args = append(args, pkgs...)
	args = append(args, "-coverprofile=coverage.out", "-covermode=atomic")
	return sh.RunV("go", args...)
}

// bench runs the benchmarks matching pattern in pkg without running tests.
func bench(pattern, pkg string) error {
	return sh.RunV("go", "test", "-run", "^$", "-bench", pattern, "-benchmem", pkg)
}

// gitOutput runs a git command and returns trimmed stdout, or empty on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		version, commit, date,
	)
}

// findInstalledBinary returns the path where go install would place the binary.
func findInstalledBinary(name string) (string, error) {
	if gobin := os.Getenv("GOBIN"); gobin != "" {
		return filepath.Join(gobin, name), nil
	}
	gopath := os.Getenv("GOPATH")
	if gopath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		gopath = filepath.Join(home, "go")
	}
	return filepath.Join(gopath, "bin", name), nil
}
