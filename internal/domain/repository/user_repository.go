package repository

import "github.com/jcastano/erp-nodo-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByUsername(username string) (*entity.User, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.User, error)
}
