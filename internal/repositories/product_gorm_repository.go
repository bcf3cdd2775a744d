package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"products/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// All retrieves every product from the database.
func (r *GORMProductRepository) All() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// Find retrieves a single product by its id. A missing row is not an
// error; it yields (nil, nil).
func (r *GORMProductRepository) Find(id int) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product by id %d: %w", id, err)
	}
	return &product, nil
}

// FindOrFail retrieves a single product by its id, reporting a
// models.NotFoundError when the row does not exist.
func (r *GORMProductRepository) FindOrFail(id int) (*models.Product, error) {
	product, err := r.Find(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &models.NotFoundError{ID: id}
	}
	return product, nil
}

// FindByName retrieves all products with the given name. Names are not
// unique, so this may match many rows.
func (r *GORMProductRepository) FindByName(name string) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("name = ?", name).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products by name %q: %w", name, err)
	}
	return products, nil
}

// FindByAvailability retrieves all products with the given availability.
func (r *GORMProductRepository) FindByAvailability(available bool) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("available = ?", available).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products by availability %t: %w", available, err)
	}
	return products, nil
}

// FindByCategory retrieves all products with the given category.
func (r *GORMProductRepository) FindByCategory(category models.Category) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("category = ?", string(category)).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products by category %s: %w", category, err)
	}
	return products, nil
}

// FindByColor retrieves all products with the given color.
func (r *GORMProductRepository) FindByColor(color models.Color) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("color = ?", string(color)).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products by color %s: %w", color, err)
	}
	return products, nil
}

// FindBySize retrieves all products with the given size.
func (r *GORMProductRepository) FindBySize(size models.Size) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("size = ?", string(size)).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products by size %s: %w", size, err)
	}
	return products, nil
}

// FindByCreateDate retrieves all products created on the given calendar date.
func (r *GORMProductRepository) FindByCreateDate(date time.Time) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("create_date = ?", models.DateOf(date)).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products by create date: %w", err)
	}
	return products, nil
}

// FindByLastModifyDate retrieves all products last modified on the given
// calendar date.
func (r *GORMProductRepository) FindByLastModifyDate(date time.Time) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("last_modify_date = ?", models.DateOf(date)).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products by last modify date: %w", err)
	}
	return products, nil
}

// Create inserts a new product row. Any caller-supplied id is discarded so
// the store's sequence assigns the next primary key; unset dates default to
// today.
func (r *GORMProductRepository) Create(product *models.Product) error {
	product.ID = 0
	if product.CreateDate.IsZero() {
		product.CreateDate = models.Today()
	}
	if product.LastModifyDate.IsZero() {
		product.LastModifyDate = models.Today()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update persists the product's current field values over the existing row
// keyed by its id.
func (r *GORMProductRepository) Update(product *models.Product) error {
	if product.CreateDate.IsZero() {
		product.CreateDate = models.Today()
	}
	if product.LastModifyDate.IsZero() {
		product.LastModifyDate = models.Today()
	}
	res := r.db.Save(product) // Save writes all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// GORM's Save doesn't return ErrRecordNotFound for an update that
		// matched no rows, so we check RowsAffected.
		return &models.NotFoundError{ID: product.ID}
	}
	return nil
}

// Delete removes the product row keyed by id. Deleting an absent id is a
// successful no-op; ids are never reused by the store either way.
func (r *GORMProductRepository) Delete(id int) error {
	if err := r.db.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
