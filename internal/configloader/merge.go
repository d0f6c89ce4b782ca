package configloader

import "github.com/yaklabco/mdblocks/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointers: override overwrites base if non-nil
//   - Slices: override replaces base entirely if override is non-nil
//   - Booleans only turn on; a file layer turns them off (see loadConfigFile)
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.DetectLanguage != nil {
		detect := *override.DetectLanguage
		result.DetectLanguage = &detect
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Import.Flavor != "" {
		result.Import.Flavor = override.Import.Flavor
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	if override.Check {
		result.Check = true
	}
	if override.DryRun {
		result.DryRun = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}
	if override.HTML.Unsafe {
		result.HTML.Unsafe = true
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}

	if override.Extensions != nil {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
