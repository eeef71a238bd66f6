package models

import (
	"time"

	dErrors "eduraksha/pkg/domain-errors"
)

// BackupVersion identifies the snapshot envelope format.
const BackupVersion = "1.0"

// Backup is a full-store snapshot suitable for export and later restore.
type Backup struct {
	Version     string       `json:"version"`
	CreatedAt   time.Time    `json:"createdAt"`
	Count       int          `json:"count"`
	Credentials []Credential `json:"credentials"`
}

// ValidateEnvelope checks the top-level backup fields before any restore work
// begins. Per-record problems are handled later as skips; envelope problems
// abort the restore before the store is touched.
func (b *Backup) ValidateEnvelope() error {
	if b == nil {
		return dErrors.New(dErrors.CodeRestoreFailed, "backup payload required")
	}
	if b.Version == "" {
		return dErrors.New(dErrors.CodeRestoreFailed, "backup version missing")
	}
	if b.Version != BackupVersion {
		return dErrors.New(dErrors.CodeRestoreFailed, "unsupported backup version: "+b.Version)
	}
	if b.Credentials == nil {
		return dErrors.New(dErrors.CodeRestoreFailed, "backup credentials missing")
	}
	return nil
}

// SkippedRecord explains why one record inside a backup was not restored.
type SkippedRecord struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// RestoreReport is the per-record outcome of a best-effort restore, so callers
// can audit what was dropped instead of collapsing to a single boolean.
type RestoreReport struct {
	Inserted []string        `json:"inserted"`
	Skipped  []SkippedRecord `json:"skipped"`
}
