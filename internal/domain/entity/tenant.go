package entity

import "time"

// Tenant representa una organización aislada del nodo. TenantID es el
// identificador externo (el que viaja en X-Tenant-ID y dentro de las
// licencias); ID es la llave interna. Todo el resto de entidades pertenece
// exclusivamente a un Tenant.
type Tenant struct {
	ID        string // uuid interno
	TenantID  string // identificador externo, único
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
