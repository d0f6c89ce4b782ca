// Package config defines core configuration types for mdblocks.
// These types are pure data structures with no dependency on how they are loaded.
package config

// ColorMode controls when terminal output is styled.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the color mode is recognized.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// OutputFormat specifies how the parse command prints a document.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatText OutputFormat = "text"
)

// Flavor specifies the Markdown flavor used by the import command.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// Backup modes.
const (
	BackupModeSidecar = "sidecar"
	BackupModeNone    = "none"
)

// BackupsConfig controls backup behavior when fmt rewrites files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar" or "none"
}

// HTMLConfig controls the html command.
type HTMLConfig struct {
	// Unsafe passes raw HTML through instead of omitting it.
	Unsafe bool `yaml:"unsafe"`
}

// ImportConfig controls the import command.
type ImportConfig struct {
	Flavor Flavor `yaml:"flavor"`
}

// Config is the root configuration structure for mdblocks.
type Config struct {
	// DetectLanguage records a detected language on code blocks.
	// Nil means the default (enabled).
	DetectLanguage *bool `yaml:"detect_language,omitempty"`

	// Color controls styled output: auto, always or never.
	Color ColorMode `yaml:"color"`

	// Jobs specifies the number of parallel workers; 0 means GOMAXPROCS.
	Jobs int `yaml:"jobs"`

	// Extensions lists the file extensions fmt treats as Markdown.
	Extensions []string `yaml:"extensions"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// Backups configures backup behavior when rewriting.
	Backups BackupsConfig `yaml:"backups"`

	HTML HTMLConfig `yaml:"html"`

	Import ImportConfig `yaml:"import"`

	// CLI-level options (not persisted to config files).

	// Check reports unformatted files without writing them.
	Check bool `yaml:"-"`

	// DryRun shows what would change without making changes.
	DryRun bool `yaml:"-"`

	// Format specifies the parse output format.
	Format OutputFormat `yaml:"-"`

	// NoBackups disables backup creation when rewriting.
	NoBackups bool `yaml:"-"`
}

// DefaultExtensions are the Markdown file extensions recognized by default.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	detect := true
	return &Config{
		DetectLanguage: &detect,
		Color:          ColorAuto,
		Jobs:           0,
		Extensions:     DefaultExtensions(),
		Ignore:         nil,
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    BackupModeSidecar,
		},
		Import: ImportConfig{Flavor: FlavorGFM},
		Format: FormatJSON,
	}
}

// LanguageDetection reports whether code blocks get a detected language.
func (c *Config) LanguageDetection() bool {
	if c == nil || c.DetectLanguage == nil {
		return true
	}
	return *c.DetectLanguage
}

// BackupsActive reports whether rewrites should leave a backup behind.
func (c *Config) BackupsActive() bool {
	if c == nil || c.NoBackups {
		return false
	}
	return c.Backups.Enabled && c.Backups.Mode != BackupModeNone
}
