package repositories

import (
	"time"

	"products/internal/models"
)

// ProductRepository defines the interface for product data access.
// Find tolerates a missing id by returning (nil, nil); FindOrFail is the
// variant that reports a models.NotFoundError instead. Enum and boolean
// queries take explicit values; callers supply any defaults themselves.
type ProductRepository interface {
	All() ([]models.Product, error)
	Find(id int) (*models.Product, error)
	FindOrFail(id int) (*models.Product, error)
	FindByName(name string) ([]models.Product, error)
	FindByAvailability(available bool) ([]models.Product, error)
	FindByCategory(category models.Category) ([]models.Product, error)
	FindByColor(color models.Color) ([]models.Product, error)
	FindBySize(size models.Size) ([]models.Product, error)
	FindByCreateDate(date time.Time) ([]models.Product, error)
	FindByLastModifyDate(date time.Time) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id int) error
}
