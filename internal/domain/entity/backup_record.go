package entity

import "time"

// BackupRecord procedencia de un respaldo exitoso (append-only, uno por dump).
type BackupRecord struct {
	ID         string
	TenantID   string
	BackupPath string
	CreatedAt  time.Time
}
