package fsutil

import (
	"context"
	"fmt"
	"os"
)

// BackupMode specifies how backups are stored.
type BackupMode string

const (
	// BackupModeSidecar stores a backup next to the original file.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to the original path for sidecar backups.
const BackupSuffix = ".mdblocks.bak"

// BackupConfig controls backup behavior.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig returns the defaults: sidecar mode, disabled.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{
		Enabled: false,
		Mode:    BackupModeSidecar,
	}
}

// Active reports whether the configuration produces backups.
func (c BackupConfig) Active() bool {
	return c.Enabled && c.Mode != BackupModeNone
}

// BackupPath returns the backup path for path, or "" in BackupModeNone.
// Unknown modes fall back to sidecar.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup copies content, the original bytes of path, to its backup
// location. An existing backup is never overwritten, so repeated runs keep
// the oldest original. Returns true if a backup was written.
func CreateBackup(ctx context.Context, snap *Snapshot, content []byte, cfg BackupConfig) (bool, error) {
	if !cfg.Active() {
		return false, nil
	}

	backupPath := BackupPath(snap.Path, cfg.Mode)

	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, snap.Mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}

	return true, nil
}
