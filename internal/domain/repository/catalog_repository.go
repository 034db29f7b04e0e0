package repository

import "github.com/sevamart/sevamart-backend/internal/domain/entity"

// CategoryRepository defines database operations for categories.
type CategoryRepository interface {
	Create(c *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	// List returns categories newest first; includeInactive controls
	// whether inactive rows are returned (admin reads) or filtered.
	List(includeInactive bool) ([]*entity.Category, error)
	Update(c *entity.Category) error
	Delete(id string) error
}

// ServiceRepository defines database operations for catalog services.
type ServiceRepository interface {
	Create(s *entity.Service) error
	GetByID(id string) (*entity.Service, error)
	List(includeInactive bool) ([]*entity.Service, error)
	Update(s *entity.Service) error
	Delete(id string) error
}
