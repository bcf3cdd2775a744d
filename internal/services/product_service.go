package services

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"products/internal/models"
	"products/internal/repositories"
	"products/pkg/rabbitmq"
)

// EventPublisher publishes product lifecycle events. *rabbitmq.Client
// satisfies it; tests substitute a mock.
type EventPublisher interface {
	PublishProductEvent(event rabbitmq.ProductEvent) error
}

// ProductService handles business logic related to products: field
// validation before any mutation, the documented query defaults, and
// lifecycle event publishing.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewProductService creates a new ProductService. The publisher may be nil,
// in which case event publishing is skipped.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		validate:  validator.New(),
		logger:    logger,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.All()
}

// GetProductByID retrieves a single product by its id, reporting a
// models.NotFoundError when no row matches.
func (s *ProductService) GetProductByID(id int) (*models.Product, error) {
	return s.repo.FindOrFail(id)
}

// GetProductsByName retrieves all products with an exactly matching name.
func (s *ProductService) GetProductsByName(name string) ([]models.Product, error) {
	return s.repo.FindByName(name)
}

// GetProductsByCategory parses the external category name and retrieves all
// matching products. An unrecognized name fails with InvalidAttribute.
func (s *ProductService) GetProductsByCategory(value string) ([]models.Product, error) {
	category, err := models.ParseCategory(value)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByCategory(category)
}

// GetProductsByColor parses the external color name and retrieves all
// matching products.
func (s *ProductService) GetProductsByColor(value string) ([]models.Product, error) {
	color, err := models.ParseColor(value)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByColor(color)
}

// GetProductsBySize parses the external size name and retrieves all
// matching products.
func (s *ProductService) GetProductsBySize(value string) ([]models.Product, error) {
	size, err := models.ParseSize(value)
	if err != nil {
		return nil, err
	}
	return s.repo.FindBySize(size)
}

// GetProductsByAvailability retrieves all products with the given
// availability. A nil flag applies the documented default of true.
func (s *ProductService) GetProductsByAvailability(available *bool) ([]models.Product, error) {
	flag := true
	if available != nil {
		flag = *available
	}
	return s.repo.FindByAvailability(flag)
}

// GetProductsByCreateDate parses the ISO date string and retrieves all
// products created on that calendar date.
func (s *ProductService) GetProductsByCreateDate(value string) ([]models.Product, error) {
	date, err := models.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByCreateDate(date)
}

// GetProductsByLastModifyDate parses the ISO date string and retrieves all
// products last modified on that calendar date.
func (s *ProductService) GetProductsByLastModifyDate(value string) ([]models.Product, error) {
	date, err := models.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByLastModifyDate(date)
}

// CreateProduct validates and persists a new product. Any caller-supplied
// id is discarded; the store assigns the next one.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := s.validateProduct(product); err != nil {
		return err
	}
	product.ID = 0
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.publishEvent(rabbitmq.EventProductCreated, product)
	return nil
}

// UpdateProduct validates and persists the product's current field values
// over the existing row keyed by its id.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if err := s.validateProduct(product); err != nil {
		return err
	}
	if err := s.repo.Update(product); err != nil {
		return err
	}
	s.publishEvent(rabbitmq.EventProductUpdated, product)
	return nil
}

// DeleteProduct removes the product with the given id. Deleting an absent
// id is a successful no-op.
func (s *ProductService) DeleteProduct(id int) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publishEvent(rabbitmq.EventProductDeleted, &models.Product{ID: id})
	return nil
}

// validateProduct applies the entity's field constraints, translating
// validator failures into the domain error taxonomy.
func (s *ProductService) validateProduct(product *models.Product) error {
	err := s.validate.Struct(product)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return err
	}
	first := validationErrors[0]
	field := strings.ToLower(first.Field())
	if first.Tag() == "required" {
		return &models.ValidationError{
			Kind:    models.MissingField,
			Field:   field,
			Message: "invalid product: missing " + field,
		}
	}
	return &models.ValidationError{
		Kind:    models.InvalidAttribute,
		Field:   field,
		Message: "invalid product: field '" + field + "' failed on the '" + first.Tag() + "' constraint",
	}
}

// publishEvent sends a lifecycle event through the publisher when one is
// configured. Publishing is best effort; a broker failure never fails the
// completed mutation.
func (s *ProductService) publishEvent(event string, product *models.Product) {
	if s.publisher == nil {
		s.logger.Debug("event publisher not configured, skipping publication",
			zap.String("event", event), zap.Int("product_id", product.ID))
		return
	}
	payload := rabbitmq.ProductEvent{
		EventID:   uuid.New().String(),
		Event:     event,
		ProductID: product.ID,
		Timestamp: time.Now().UTC(),
	}
	if event != rabbitmq.EventProductDeleted {
		payload.Product = product.Serialize()
	}
	if err := s.publisher.PublishProductEvent(payload); err != nil {
		s.logger.Warn("failed to publish product event",
			zap.String("event", event), zap.Int("product_id", product.ID), zap.Error(err))
		return
	}
	s.logger.Info("published product event",
		zap.String("event", event), zap.Int("product_id", product.ID))
}
