package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdblocks/internal/cli"
	"github.com/yaklabco/mdblocks/pkg/fsutil"
	"github.com/yaklabco/mdblocks/pkg/richdoc"
)

// messyMarkdown normalizes to canonicalMarkdown.
const (
	messyMarkdown     = "# Title\nSome **bold** text\n"
	canonicalMarkdown = "# Title\n\nSome **bold** text\n\n"
)

// execute runs the root command with args and stdin, isolated from any user
// or project configuration by an explicit empty config file.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), ".mdblocks.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("color: never\n"), 0644))

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "test", Date: "test"})

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfgFile}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestIntegration_ParseJSON(t *testing.T) {
	t.Parallel()

	input := "---\ntitle: Notes\n---\n# Title\n\nSome **bold** and [a link](https://example.com)\n"

	stdout, _, err := execute(t, input, "parse", "--no-keys")
	require.NoError(t, err)

	var raw richdoc.RawContent
	require.NoError(t, json.Unmarshal([]byte(stdout), &raw))

	require.Len(t, raw.Blocks, 2)
	assert.Equal(t, "Notes", raw.Data["title"])

	assert.Equal(t, richdoc.RawTypeHeaderOne, raw.Blocks[0].Type)
	assert.Equal(t, "Title", raw.Blocks[0].Text)
	assert.Empty(t, raw.Blocks[0].Key)

	para := raw.Blocks[1]
	assert.Equal(t, richdoc.RawTypeUnstyled, para.Type)
	assert.Equal(t, "Some bold and a link", para.Text)
	assert.Equal(t, []richdoc.RawStyleRange{{Offset: 5, Length: 4, Style: "BOLD"}}, para.InlineStyleRanges)
	require.Len(t, para.EntityRanges, 1)
	assert.Equal(t, richdoc.RawEntityRange{Offset: 14, Length: 6, Key: 0}, para.EntityRanges[0])
	assert.Equal(t, "https://example.com", raw.EntityMap["0"].Data["url"])
}

func TestIntegration_ParseAssignsKeys(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "A\n\nB\n", "parse")
	require.NoError(t, err)

	var raw richdoc.RawContent
	require.NoError(t, json.Unmarshal([]byte(stdout), &raw))
	require.Len(t, raw.Blocks, 2)
	assert.NotEmpty(t, raw.Blocks[0].Key)
	assert.NotEqual(t, raw.Blocks[0].Key, raw.Blocks[1].Key)
}

func TestIntegration_ParseText(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "Hello **World**", "parse", "--format", "text", "--no-keys")
	require.NoError(t, err)

	assert.Contains(t, stdout, "blocks")
	assert.Contains(t, stdout, `"Hello World"`)
	assert.Contains(t, stdout, "BOLD")
}

func TestIntegration_ParseFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "doc.md", "    Hello\n    World\n")

	stdout, _, err := execute(t, "", "parse", "--no-keys", "--detect-language=false", path)
	require.NoError(t, err)

	var raw richdoc.RawContent
	require.NoError(t, json.Unmarshal([]byte(stdout), &raw))
	require.Len(t, raw.Blocks, 1)
	assert.Equal(t, richdoc.RawTypeCodeBlock, raw.Blocks[0].Type)
	assert.Equal(t, "Hello\nWorld", raw.Blocks[0].Text)
	assert.Nil(t, raw.Blocks[0].Data)
}

func TestIntegration_RenderRoundTrip(t *testing.T) {
	t.Parallel()

	parsed, _, err := execute(t, messyMarkdown, "parse")
	require.NoError(t, err)

	rendered, _, err := execute(t, parsed, "render")
	require.NoError(t, err)
	assert.Equal(t, canonicalMarkdown, rendered)
}

func TestIntegration_RenderRejectsOverlap(t *testing.T) {
	t.Parallel()

	input := `{"blocks":[{"key":"a","type":"unstyled","text":"Hello","depth":0,` +
		`"inlineStyleRanges":[{"offset":0,"length":3,"style":"BOLD"},{"offset":2,"length":2,"style":"ITALIC"}],` +
		`"entityRanges":[]}],"entityMap":{}}`

	stdout, _, err := execute(t, input, "render")
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestIntegration_RenderToFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	parsed, _, err := execute(t, "# Hello", "parse")
	require.NoError(t, err)

	out := filepath.Join(dir, "out.md")
	stdout, _, err := execute(t, parsed, "render", "-o", out)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "# Hello\n\n", string(content))
}

func TestIntegration_HTML(t *testing.T) {
	t.Parallel()

	input := "---\ntitle: x\n---\n# Hello\n\nSome ~~old~~ _new_ text\n"

	stdout, _, err := execute(t, input, "html")
	require.NoError(t, err)

	assert.Contains(t, stdout, "<h1>Hello</h1>")
	assert.Contains(t, stdout, "<del>old</del>")
	assert.Contains(t, stdout, "<em>new</em>")
	assert.NotContains(t, stdout, "title")
}

func TestIntegration_Inspect(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "> quoted [link](https://go.dev)", "inspect")
	require.NoError(t, err)

	assert.Contains(t, stdout, "blockquote")
	assert.Contains(t, stdout, "https://go.dev")
}

func TestIntegration_Import(t *testing.T) {
	t.Parallel()

	input := "#### Deep\n\n- one\n- two\n\n```go\nfmt.Println()\n```\n"

	stdout, _, err := execute(t, input, "import")
	require.NoError(t, err)

	assert.Equal(t, "### Deep\n\n- one\n\n- two\n\n    fmt.Println()\n\n", stdout)
}

func TestIntegration_ImportInvalidFlavor(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "x", "import", "--flavor", "markdown-extra")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestIntegration_FmtCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	messy := writeFile(t, dir, "messy.md", messyMarkdown)
	writeFile(t, dir, "clean.md", canonicalMarkdown)

	stdout, _, err := execute(t, "", "fmt", "--check", dir)
	require.ErrorIs(t, err, cli.ErrUnformatted)
	assert.Equal(t, cli.ExitUnformatted, cli.ExitCode(err))

	assert.Contains(t, stdout, "unformatted")
	assert.Contains(t, stdout, "messy.md")
	assert.NotContains(t, stdout, "clean.md")

	content, err := os.ReadFile(messy)
	require.NoError(t, err)
	assert.Equal(t, messyMarkdown, string(content), "check must not write")
}

func TestIntegration_FmtDryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "messy.md", messyMarkdown)

	stdout, _, err := execute(t, "", "fmt", "--dry-run", dir)
	require.ErrorIs(t, err, cli.ErrUnformatted)

	assert.Contains(t, stdout, "--- a/")
	assert.Contains(t, stdout, "+++ b/")
	assert.Contains(t, stdout, "@@")
}

func TestIntegration_FmtWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	messy := writeFile(t, dir, "messy.md", messyMarkdown)

	stdout, _, err := execute(t, "", "fmt", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "formatted")

	content, err := os.ReadFile(messy)
	require.NoError(t, err)
	assert.Equal(t, canonicalMarkdown, string(content))

	backup, err := os.ReadFile(fsutil.BackupPath(messy, fsutil.BackupModeSidecar))
	require.NoError(t, err)
	assert.Equal(t, messyMarkdown, string(backup))

	// A second run finds nothing to do.
	_, _, err = execute(t, "", "fmt", "--check", dir)
	require.NoError(t, err)
}

func TestIntegration_FmtNoBackups(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	messy := writeFile(t, dir, "messy.md", messyMarkdown)

	_, _, err := execute(t, "", "fmt", "--no-backups", dir)
	require.NoError(t, err)

	_, err = os.Stat(fsutil.BackupPath(messy, fsutil.BackupModeSidecar))
	assert.True(t, os.IsNotExist(err))
}

func TestIntegration_MissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "parse", filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))
}

func TestIntegration_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfgFile := writeFile(t, t.TempDir(), "bad.yml", "color: sometimes\n")

	_, _, err := execute(t, "x", "--config", cfgFile, "parse")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestIntegration_UnknownFlag(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "x", "parse", "--no-such-flag")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestIntegration_TooManyArgs(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "render", "a.json", "b.json")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "cfg.yml")

	_, _, err := execute(t, "", "init", "--full", "--output", out)
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# mdblocks configuration")
	assert.Contains(t, string(content), "detect_language: true")

	_, _, err = execute(t, "", "init", "--output", out)
	require.Error(t, err, "existing file needs --force")
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

	_, _, err = execute(t, "", "init", "--force", "--output", out)
	require.NoError(t, err)
}

func TestIntegration_FmtReportJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "messy.md", messyMarkdown)

	stdout, _, err := execute(t, "", "fmt", "--check", "--report", "json", dir)
	require.ErrorIs(t, err, cli.ErrUnformatted)

	var report struct {
		Mode  string `json:"mode"`
		Files []struct {
			Path    string `json:"path"`
			Changed bool   `json:"changed"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))

	assert.Equal(t, "check", report.Mode)
	require.Len(t, report.Files, 1)
	assert.True(t, report.Files[0].Changed)
	assert.True(t, strings.HasSuffix(report.Files[0].Path, "messy.md"))
}

func TestIntegration_FmtInvalidReport(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "fmt", "--report", "sarif", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}
