package dto

import "time"

// SyncResponse resumen de una pasada de sincronización.
type SyncResponse struct {
	Attempted int `json:"attempted"`
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
}

// BackupResponse resultado de una solicitud de respaldo.
type BackupResponse struct {
	Success bool `json:"success"`
}

// BackupRecordResponse registro de procedencia de un respaldo.
type BackupRecordResponse struct {
	ID         string    `json:"id"`
	BackupPath string    `json:"backup_path"`
	CreatedAt  time.Time `json:"created_at"`
}
