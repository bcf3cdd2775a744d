package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"products/internal/models"
	"products/internal/services"
	"products/pkg/rabbitmq"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) All() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Find(id int) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) FindOrFail(id int) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) FindByName(name string) ([]models.Product, error) {
	args := m.Called(name)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) FindByAvailability(available bool) ([]models.Product, error) {
	args := m.Called(available)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(category models.Category) ([]models.Product, error) {
	args := m.Called(category)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) FindByColor(color models.Color) ([]models.Product, error) {
	args := m.Called(color)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySize(size models.Size) ([]models.Product, error) {
	args := m.Called(size)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCreateDate(date time.Time) ([]models.Product, error) {
	args := m.Called(date)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) FindByLastModifyDate(date time.Time) ([]models.Product, error) {
	args := m.Called(date)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishProductEvent(event rabbitmq.ProductEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func validProduct() *models.Product {
	return &models.Product{
		Name:      "WATCH",
		Available: true,
		Category:  models.CategoryAccessories,
		Color:     models.ColorGreen,
		Size:      models.SizeL,
	}
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, zap.NewNop())

	expectedProducts := []models.Product{
		{ID: 1, Name: "WATCH", Category: models.CategoryAccessories},
		{ID: 2, Name: "BELT", Category: models.CategoryFashion},
	}

	mockRepo.On("All").Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts()

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, zap.NewNop())

	expectedProduct := &models.Product{ID: 1, Name: "WATCH"}

	// Test successful retrieval
	mockRepo.On("FindOrFail", 1).Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(1)
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)
	mockRepo.AssertExpectations(t)

	// Test product not found
	mockRepo.On("FindOrFail", 99).Return(nil, &models.NotFoundError{ID: 99}).Once()
	product, err = service.GetProductByID(99)
	assert.Error(t, err)
	assert.Nil(t, product)
	var notFound *models.NotFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, 99, notFound.ID)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPublisher, zap.NewNop())

	newProduct := validProduct()
	newProduct.ID = 999 // a caller-supplied id must be discarded

	mockRepo.On("Create", newProduct).Run(func(args mock.Arguments) {
		created := args.Get(0).(*models.Product)
		assert.Equal(t, 0, created.ID, "service must zero the id before the store assigns one")
		created.ID = 42
	}).Return(nil).Once()
	mockPublisher.On("PublishProductEvent", mock.MatchedBy(func(event rabbitmq.ProductEvent) bool {
		return event.Event == rabbitmq.EventProductCreated &&
			event.ProductID == 42 &&
			event.EventID != ""
	})).Return(nil).Once()

	err := service.CreateProduct(newProduct)

	assert.NoError(t, err)
	assert.Equal(t, 42, newProduct.ID)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestProductService_CreateProductValidation(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, zap.NewNop())

	nameless := validProduct()
	nameless.Name = ""

	err := service.CreateProduct(nameless)

	var validation *models.ValidationError
	assert.True(t, errors.As(err, &validation))
	assert.Equal(t, models.MissingField, validation.Kind)
	assert.Equal(t, "name", validation.Field)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProductService_CreateProductPublishFailureDoesNotFail(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPublisher, zap.NewNop())

	product := validProduct()
	mockRepo.On("Create", product).Return(nil).Once()
	mockPublisher.On("PublishProductEvent", mock.Anything).Return(errors.New("broker down")).Once()

	err := service.CreateProduct(product)

	assert.NoError(t, err, "a broker failure must not fail the completed mutation")
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPublisher, zap.NewNop())

	updated := validProduct()
	updated.ID = 1
	updated.Name = "SMARTWATCH"

	mockRepo.On("Update", updated).Return(nil).Once()
	mockPublisher.On("PublishProductEvent", mock.MatchedBy(func(event rabbitmq.ProductEvent) bool {
		return event.Event == rabbitmq.EventProductUpdated && event.ProductID == 1
	})).Return(nil).Once()

	err := service.UpdateProduct(updated)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)

	// Test update failure (product not found in repo)
	ghost := validProduct()
	ghost.ID = 99
	mockRepo.On("Update", ghost).Return(&models.NotFoundError{ID: 99}).Once()
	err = service.UpdateProduct(ghost)
	var notFound *models.NotFoundError
	assert.True(t, errors.As(err, &notFound))
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPublisher, zap.NewNop())

	mockRepo.On("Delete", 1).Return(nil).Once()
	mockPublisher.On("PublishProductEvent", mock.MatchedBy(func(event rabbitmq.ProductEvent) bool {
		return event.Event == rabbitmq.EventProductDeleted && event.ProductID == 1
	})).Return(nil).Once()

	err := service.DeleteProduct(1)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestProductService_GetProductsByCategory(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, zap.NewNop())

	expected := []models.Product{{ID: 1, Name: "WATCH", Category: models.CategoryAccessories}}
	mockRepo.On("FindByCategory", models.CategoryAccessories).Return(expected, nil).Once()

	products, err := service.GetProductsByCategory("ACCESSORIES")
	assert.NoError(t, err)
	assert.Equal(t, expected, products)
	mockRepo.AssertExpectations(t)

	// An unrecognized category never reaches the repository.
	freshRepo := new(MockProductRepository)
	service = services.NewProductService(freshRepo, nil, zap.NewNop())
	_, err = service.GetProductsByCategory("accessories")
	var validation *models.ValidationError
	assert.True(t, errors.As(err, &validation))
	assert.Equal(t, models.InvalidAttribute, validation.Kind)
	freshRepo.AssertNotCalled(t, "FindByCategory", mock.Anything)
}

func TestProductService_GetProductsByAvailabilityDefault(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, zap.NewNop())

	mockRepo.On("FindByAvailability", true).Return([]models.Product{}, nil).Once()
	_, err := service.GetProductsByAvailability(nil)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	unavailable := false
	mockRepo.On("FindByAvailability", false).Return([]models.Product{}, nil).Once()
	_, err = service.GetProductsByAvailability(&unavailable)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductsByCreateDate(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, zap.NewNop())

	day := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	mockRepo.On("FindByCreateDate", day).Return([]models.Product{}, nil).Once()

	_, err := service.GetProductsByCreateDate("2021-01-01")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Malformed date strings fail before any query runs.
	_, err = service.GetProductsByCreateDate("01/01/2021")
	var validation *models.ValidationError
	assert.True(t, errors.As(err, &validation))
	assert.Equal(t, models.InvalidFormat, validation.Kind)

	mockRepo.On("FindByLastModifyDate", day).Return([]models.Product{}, nil).Once()
	_, err = service.GetProductsByLastModifyDate("2021-01-01")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
