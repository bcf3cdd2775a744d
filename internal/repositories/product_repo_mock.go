package repositories

import (
	"sort"
	"sync"
	"time"

	"products/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// Ids come from a monotonic counter that is never rewound, mirroring the
// sequence guarantee of a real store: a deleted id is never handed out again.
type MockProductRepository struct {
	products map[int]models.Product
	nextID   int
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[int]models.Product),
		nextID:   1,
	}
}

// All returns every stored product, ordered by id.
func (r *MockProductRepository) All() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(models.Product) bool { return true }), nil
}

// Find returns a product by its id, or (nil, nil) when absent.
func (r *MockProductRepository) Find(id int) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

// FindOrFail returns a product by its id, or a models.NotFoundError.
func (r *MockProductRepository) FindOrFail(id int) (*models.Product, error) {
	product, err := r.Find(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &models.NotFoundError{ID: id}
	}
	return product, nil
}

// FindByName returns every product with the given name.
func (r *MockProductRepository) FindByName(name string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p models.Product) bool { return p.Name == name }), nil
}

// FindByAvailability returns every product with the given availability.
func (r *MockProductRepository) FindByAvailability(available bool) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p models.Product) bool { return p.Available == available }), nil
}

// FindByCategory returns every product with the given category.
func (r *MockProductRepository) FindByCategory(category models.Category) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p models.Product) bool { return p.Category == category }), nil
}

// FindByColor returns every product with the given color.
func (r *MockProductRepository) FindByColor(color models.Color) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p models.Product) bool { return p.Color == color }), nil
}

// FindBySize returns every product with the given size.
func (r *MockProductRepository) FindBySize(size models.Size) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p models.Product) bool { return p.Size == size }), nil
}

// FindByCreateDate returns every product created on the given calendar date.
func (r *MockProductRepository) FindByCreateDate(date time.Time) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	day := models.DateOf(date)
	return r.collect(func(p models.Product) bool { return p.CreateDate.Equal(day) }), nil
}

// FindByLastModifyDate returns every product last modified on the given
// calendar date.
func (r *MockProductRepository) FindByLastModifyDate(date time.Time) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	day := models.DateOf(date)
	return r.collect(func(p models.Product) bool { return p.LastModifyDate.Equal(day) }), nil
}

// Create adds a new product, assigning the next id from the counter.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.nextID
	r.nextID++
	if product.CreateDate.IsZero() {
		product.CreateDate = models.Today()
	}
	if product.LastModifyDate.IsZero() {
		product.LastModifyDate = models.Today()
	}
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return &models.NotFoundError{ID: product.ID}
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its id; absent ids are a no-op.
func (r *MockProductRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.products, id)
	return nil
}

// collect gathers matching products in id order. Callers must hold the lock.
func (r *MockProductRepository) collect(match func(models.Product) bool) []models.Product {
	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if match(p) {
			productList = append(productList, p)
		}
	}
	sort.Slice(productList, func(i, j int) bool { return productList[i].ID < productList[j].ID })
	return productList
}
