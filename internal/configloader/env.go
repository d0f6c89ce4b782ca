package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/mdblocks/pkg/config"
)

// envVarPrefix is the prefix for all mdblocks environment variables.
const envVarPrefix = "MDBLOCKS_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines an environment variable to config field mapping.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"DETECT_LANGUAGE": {"detect_language", envTypeBool, "Record detected code languages: true or false"},
	"COLOR":           {"color", envTypeString, "Styled output: auto, always, or never"},
	"JOBS":            {"jobs", envTypeInt, "Number of parallel workers (0 = auto)"},
	"EXTENSIONS":      {"extensions", envTypeSlice, "Comma-separated list of Markdown file extensions"},
	"IGNORE":          {"ignore", envTypeSlice, "Comma-separated list of ignore patterns"},
	"BACKUPS_ENABLED": {"backups.enabled", envTypeBool, "Enable backups when rewriting: true or false"},
	"BACKUPS_MODE":    {"backups.mode", envTypeString, "Backup mode: sidecar or none"},
	"HTML_UNSAFE":     {"html.unsafe", envTypeBool, "Pass raw HTML through when rendering: true or false"},
	"IMPORT_FLAVOR":   {"import.flavor", envTypeString, "Import source flavor: commonmark or gfm"},
	"NO_BACKUPS":      {"no_backups", envTypeBool, "Disable backups: true or false"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MDBLOCKS_ (e.g., MDBLOCKS_JOBS).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "color":
		cfg.Color = config.ColorMode(value)
	case "backups.mode":
		cfg.Backups.Mode = value
	case "import.flavor":
		cfg.Import.Flavor = config.Flavor(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "detect_language":
		cfg.DetectLanguage = &value
	case "backups.enabled":
		cfg.Backups.Enabled = value
	case "html.unsafe":
		cfg.HTML.Unsafe = value
	case "no_backups":
		cfg.NoBackups = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "extensions":
		cfg.Extensions = value
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}

// SortedEnvVarNames returns the supported environment variable names in order.
func SortedEnvVarNames() []string {
	names := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		names = append(names, envVarPrefix+suffix)
	}
	sort.Strings(names)
	return names
}
