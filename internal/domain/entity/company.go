package entity

import "time"

// Company representa una empresa dentro de un tenant. Las licencias pueden
// venir opcionalmente acotadas a una Company.
type Company struct {
	ID        string
	TenantID  string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
